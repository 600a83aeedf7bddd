package asmtool

import (
	"fmt"

	"mos6502/opcode"
)

// Encode walks a resolved Program and produces a sparse address->byte
// map. Gaps between emitted regions are left unset; callers that want
// a contiguous image fill them with Flatten.
func Encode(p *Program) (map[uint16]byte, []*AssembleError) {
	out := map[uint16]byte{}
	var errs []*AssembleError

	for i, n := range p.Nodes {
		addr := p.Addrs[i]
		switch v := n.(type) {
		case Label:
			continue

		case Directive:
			switch v.Name {
			case "byte":
				out[addr] = byte(v.Number)
			case "word":
				lo, hi := byte(v.Number), byte(v.Number>>8)
				out[addr] = lo
				out[addr+1] = hi
			case "org":
				// moves the location counter only
			}

		case Instruction:
			entry, ok := opcode.Encode(v.Mnemonic, v.Mode)
			if !ok {
				errs = append(errs, &AssembleError{Line: v.Line, Message: fmt.Sprintf("%s does not support %s addressing", v.Mnemonic, v.Mode)})
				continue
			}
			out[addr] = entry.Byte

			switch v.Mode {
			case opcode.Implied, opcode.Accumulator:
				// no operand bytes

			case opcode.Relative:
				next := int(addr) + v.Size()
				disp := int(v.Operand.Number) - next
				if disp < -128 || disp > 127 {
					errs = append(errs, &AssembleError{Line: v.Line, Message: fmt.Sprintf("branch target out of range (%d bytes)", disp)})
					continue
				}
				out[addr+1] = byte(int8(disp))

			case opcode.Immediate, opcode.ZeroPage, opcode.ZeroPageX, opcode.ZeroPageY,
				opcode.IndirectX, opcode.IndirectY:
				out[addr+1] = byte(v.Operand.Number)

			case opcode.Absolute, opcode.AbsoluteX, opcode.AbsoluteY, opcode.Indirect:
				out[addr+1] = byte(v.Operand.Number)
				out[addr+2] = byte(v.Operand.Number >> 8)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// Flatten turns a sparse address map into a contiguous byte slice
// spanning [lo, hi], filling unset addresses with 0x00.
func Flatten(sparse map[uint16]byte, lo, hi uint16) []byte {
	out := make([]byte, int(hi)-int(lo)+1)
	for addr, b := range sparse {
		if addr >= lo && addr <= hi {
			out[addr-lo] = b
		}
	}
	return out
}

// Bounds returns the lowest and highest addresses present in a sparse
// map. ok is false for an empty map.
func Bounds(sparse map[uint16]byte) (lo, hi uint16, ok bool) {
	first := true
	for addr := range sparse {
		if first {
			lo, hi = addr, addr
			first = false
			continue
		}
		if addr < lo {
			lo = addr
		}
		if addr > hi {
			hi = addr
		}
	}
	return lo, hi, !first
}
