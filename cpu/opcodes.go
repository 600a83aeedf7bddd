package cpu

import (
	"fmt"

	"mos6502/mem"
	"mos6502/opcode"
)

// Disassemble renders the single instruction at addr as text, e.g.
// "LDA #$0A" or "JMP ($1234)", without advancing any CPU state. The
// interactive debugger uses it to show what's about to execute.
func Disassemble(m *mem.Memory, addr uint16) (text string, length int) {
	b := m.Read(addr)
	entry, ok := opcode.Decode(b)
	if !ok {
		return fmt.Sprintf(".byte $%02X", b), 1
	}

	length = entry.Mode.Length()
	operandText := ""
	switch entry.Mode {
	case opcode.Implied:
	case opcode.Accumulator:
		operandText = "A"
	case opcode.Immediate:
		operandText = fmt.Sprintf("#$%02X", m.Read(addr+1))
	case opcode.ZeroPage:
		operandText = fmt.Sprintf("$%02X", m.Read(addr+1))
	case opcode.ZeroPageX:
		operandText = fmt.Sprintf("$%02X,X", m.Read(addr+1))
	case opcode.ZeroPageY:
		operandText = fmt.Sprintf("$%02X,Y", m.Read(addr+1))
	case opcode.Absolute:
		operandText = fmt.Sprintf("$%04X", m.ReadWord(addr+1))
	case opcode.AbsoluteX:
		operandText = fmt.Sprintf("$%04X,X", m.ReadWord(addr+1))
	case opcode.AbsoluteY:
		operandText = fmt.Sprintf("$%04X,Y", m.ReadWord(addr+1))
	case opcode.Indirect:
		operandText = fmt.Sprintf("($%04X)", m.ReadWord(addr+1))
	case opcode.IndirectX:
		operandText = fmt.Sprintf("($%02X,X)", m.Read(addr+1))
	case opcode.IndirectY:
		operandText = fmt.Sprintf("($%02X),Y", m.Read(addr+1))
	case opcode.Relative:
		offset := int8(m.Read(addr + 1))
		target := uint16(int32(addr) + 2 + int32(offset))
		operandText = fmt.Sprintf("$%04X", target)
	}

	if operandText == "" {
		return entry.Mnemonic, length
	}
	return entry.Mnemonic + " " + operandText, length
}
