package asmtool

import (
	"fmt"

	"mos6502/opcode"
)

// Program is the output of a successful resolve: every node carries an
// address, and every label/branch operand has been turned into a
// concrete number.
type Program struct {
	Nodes   []Node
	Addrs   []uint16          // Addrs[i] is the address Nodes[i] starts at
	Symbols map[string]uint16
}

// Resolve runs the assembler's two passes over a parsed node list.
// Pass one walks the nodes in order, tracking the location counter
// (moved by .org, advanced by directive/instruction size) and records
// where every label points. Pass two revisits every instruction and
// directive operand that named a label and substitutes its address,
// validating branch targets fit in a signed 8-bit displacement.
func Resolve(nodes []Node) (*Program, []*AssembleError) {
	addrs := make([]uint16, len(nodes))
	symbols := map[string]uint16{}
	var errs []*AssembleError

	loc := uint16(0)
	for i, n := range nodes {
		switch v := n.(type) {
		case Directive:
			if v.Name == "org" {
				loc = v.Number
			}
			addrs[i] = loc
			loc += directiveSize(v)
		case Label:
			if _, dup := symbols[v.Name]; dup {
				errs = append(errs, &AssembleError{Line: v.Line, Message: fmt.Sprintf("label %q redefined", v.Name)})
			}
			symbols[v.Name] = loc
			addrs[i] = loc
		case Instruction:
			addrs[i] = loc
			loc += uint16(v.Size())
		}
	}

	for i, n := range nodes {
		instr, ok := n.(Instruction)
		if !ok {
			dir, ok := n.(Directive)
			if ok && dir.Name == "word" && dir.Label != "" {
				target, ok := symbols[dir.Label]
				if !ok {
					errs = append(errs, &AssembleError{Line: dir.Line, Message: fmt.Sprintf("undefined label %q", dir.Label)})
				} else {
					dir.Number = target
					dir.NumberOK = true
					nodes[i] = dir
				}
			}
			continue
		}
		if instr.Operand.Kind != OperandImmediateLabel && instr.Operand.Kind != OperandAddressLabel {
			continue
		}
		target, ok := symbols[instr.Operand.Label]
		if !ok {
			errs = append(errs, &AssembleError{Line: instr.Line, Message: fmt.Sprintf("undefined label %q", instr.Operand.Label)})
			continue
		}
		labelName := instr.Operand.Label
		wasImmediate := instr.Operand.Kind == OperandImmediateLabel
		instr.Operand.Number = target
		instr.Operand.Label = ""
		if wasImmediate {
			instr.Operand.Kind = OperandImmediateNumber
		} else {
			instr.Operand.Kind = OperandAddressNumber
		}

		if wasImmediate && target > 0xFF {
			errs = append(errs, &AssembleError{Line: instr.Line, Message: fmt.Sprintf("immediate value of label %q ($%X) does not fit in one byte", labelName, target)})
			continue
		}

		if instr.Mode == opcode.Relative {
			next := int(addrs[i]) + instr.Size()
			disp := int(target) - next
			if disp < -128 || disp > 127 {
				errs = append(errs, &AssembleError{Line: instr.Line, Message: fmt.Sprintf("branch target %q out of range (%d bytes)", labelName, disp)})
				continue
			}
		}

		nodes[i] = instr
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &Program{Nodes: nodes, Addrs: addrs, Symbols: symbols}, nil
}

func directiveSize(d Directive) uint16 {
	switch d.Name {
	case "word":
		return 2
	case "byte":
		return 1
	default: // org moves the location counter but emits nothing
		return 0
	}
}
