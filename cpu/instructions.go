package cpu

import "mos6502/mem"
import "mos6502/opcode"

// dispatch decodes e.Mode's operand (where the instruction has one),
// performs the instruction's effect, and returns the number of cycles
// actually spent -- the table's base cost plus any page-cross or
// branch-taken penalty.
//
// https://www.nesdev.org/obelisk-6502-guide/reference.html is the
// reference used for every flag rule below.
func (c *CPU) dispatch(e opcode.Entry, m *mem.Memory) int {
	cycles := e.Cycles

	switch e.Mnemonic {

	// Load/Store

	case "LDA":
		addr, crossed := c.operand(e.Mode, m)
		c.A = m.Read(addr)
		c.setZN(c.A)
		if crossed {
			cycles++
		}
	case "LDX":
		addr, crossed := c.operand(e.Mode, m)
		c.X = m.Read(addr)
		c.setZN(c.X)
		if crossed {
			cycles++
		}
	case "LDY":
		addr, crossed := c.operand(e.Mode, m)
		c.Y = m.Read(addr)
		c.setZN(c.Y)
		if crossed {
			cycles++
		}
	case "STA":
		addr, _ := c.operand(e.Mode, m)
		m.Write(addr, c.A)
	case "STX":
		addr, _ := c.operand(e.Mode, m)
		m.Write(addr, c.X)
	case "STY":
		addr, _ := c.operand(e.Mode, m)
		m.Write(addr, c.Y)

	// Register transfers

	case "TAX":
		c.X = c.A
		c.setZN(c.X)
	case "TAY":
		c.Y = c.A
		c.setZN(c.Y)
	case "TXA":
		c.A = c.X
		c.setZN(c.A)
	case "TYA":
		c.A = c.Y
		c.setZN(c.A)
	case "TSX":
		c.X = c.SP
		c.setZN(c.X)
	case "TXS":
		c.SP = c.X // does not affect flags

	// Stack

	case "PHA":
		c.push(m, c.A)
	case "PHP":
		// B and the unused bit are pushed as 1, per the hardware's
		// convention for software-initiated pushes.
		c.push(m, c.P|0x30)
	case "PLA":
		c.A = c.pop(m)
		c.setZN(c.A)
	case "PLP":
		// B and U are not part of the logical flag state the stack
		// byte represents -- they stay at whatever they were before
		// the pull, not whatever bits happened to be pushed.
		prevBreak := c.Break()
		c.P = c.pop(m)
		c.SetBreak(prevBreak)
		c.unusedAlwaysOne()

	// Logical

	case "AND":
		addr, crossed := c.operand(e.Mode, m)
		c.A &= m.Read(addr)
		c.setZN(c.A)
		if crossed {
			cycles++
		}
	case "EOR":
		addr, crossed := c.operand(e.Mode, m)
		c.A ^= m.Read(addr)
		c.setZN(c.A)
		if crossed {
			cycles++
		}
	case "ORA":
		addr, crossed := c.operand(e.Mode, m)
		c.A |= m.Read(addr)
		c.setZN(c.A)
		if crossed {
			cycles++
		}
	case "BIT":
		addr, _ := c.operand(e.Mode, m)
		v := m.Read(addr)
		c.SetZero(c.A&v == 0)
		c.SetNegative(v&0x80 != 0)
		c.SetOverflow(v&0x40 != 0)

	// Arithmetic (binary mode only -- Decimal is settable but never consulted)

	case "ADC":
		addr, crossed := c.operand(e.Mode, m)
		c.adc(m.Read(addr))
		if crossed {
			cycles++
		}
	case "SBC":
		addr, crossed := c.operand(e.Mode, m)
		c.adc(^m.Read(addr))
		if crossed {
			cycles++
		}

	// Compare

	case "CMP":
		addr, crossed := c.operand(e.Mode, m)
		c.compare(c.A, m.Read(addr))
		if crossed {
			cycles++
		}
	case "CPX":
		addr, _ := c.operand(e.Mode, m)
		c.compare(c.X, m.Read(addr))
	case "CPY":
		addr, _ := c.operand(e.Mode, m)
		c.compare(c.Y, m.Read(addr))

	// Increment/Decrement

	case "INC":
		addr, _ := c.operand(e.Mode, m)
		v := m.Read(addr) + 1
		m.Write(addr, v)
		c.setZN(v)
	case "INX":
		c.X++
		c.setZN(c.X)
	case "INY":
		c.Y++
		c.setZN(c.Y)
	case "DEC":
		addr, _ := c.operand(e.Mode, m)
		v := m.Read(addr) - 1
		m.Write(addr, v)
		c.setZN(v)
	case "DEX":
		c.X--
		c.setZN(c.X)
	case "DEY":
		c.Y--
		c.setZN(c.Y)

	// Shifts/Rotates

	case "ASL":
		c.rmw(e.Mode, m, func(v byte) byte {
			c.SetCarry(v&0x80 != 0)
			return v << 1
		})
	case "LSR":
		c.rmw(e.Mode, m, func(v byte) byte {
			c.SetCarry(v&0x01 != 0)
			return v >> 1
		})
	case "ROL":
		c.rmw(e.Mode, m, func(v byte) byte {
			carryIn := byte(0)
			if c.Carry() {
				carryIn = 1
			}
			c.SetCarry(v&0x80 != 0)
			return v<<1 | carryIn
		})
	case "ROR":
		c.rmw(e.Mode, m, func(v byte) byte {
			carryIn := byte(0)
			if c.Carry() {
				carryIn = 0x80
			}
			c.SetCarry(v&0x01 != 0)
			return v>>1 | carryIn
		})

	// Jump/Branch

	case "JMP":
		if e.Mode == opcode.Indirect {
			ptr := c.fetchWord(m)
			c.PC = c.readWordBuggy(m, ptr)
		} else {
			c.PC = c.fetchWord(m)
		}
	case "JSR":
		target := c.fetchWord(m)
		c.pushWord(m, c.PC-1)
		c.PC = target
	case "RTS":
		c.PC = c.popWord(m) + 1
	case "BRK":
		c.InterruptBRK(m)

	case "BCC":
		cycles += c.branch(m, !c.Carry())
	case "BCS":
		cycles += c.branch(m, c.Carry())
	case "BEQ":
		cycles += c.branch(m, c.Zero())
	case "BMI":
		cycles += c.branch(m, c.Negative())
	case "BNE":
		cycles += c.branch(m, !c.Zero())
	case "BPL":
		cycles += c.branch(m, !c.Negative())
	case "BVC":
		cycles += c.branch(m, !c.Overflow())
	case "BVS":
		cycles += c.branch(m, c.Overflow())

	// Status flags

	case "CLC":
		c.SetCarry(false)
	case "CLD":
		c.SetDecimal(false)
	case "CLI":
		c.SetIrqDisable(false)
	case "CLV":
		c.SetOverflow(false)
	case "SEC":
		c.SetCarry(true)
	case "SED":
		c.SetDecimal(true)
	case "SEI":
		c.SetIrqDisable(true)

	case "NOP":
		// no operation

	default:
		panic("dispatch: unhandled mnemonic " + e.Mnemonic)
	}

	return int(cycles)
}

// rmw applies f to the byte addressed by mode (or the accumulator,
// for Accumulator mode), writes the result back, and updates Zero and
// Negative from it -- the shape shared by ASL, LSR, ROL and ROR.
func (c *CPU) rmw(mode opcode.Mode, m *mem.Memory, f func(byte) byte) {
	if mode == opcode.Accumulator {
		c.A = f(c.A)
		c.setZN(c.A)
		return
	}
	addr, _ := c.operand(mode, m)
	v := f(m.Read(addr))
	m.Write(addr, v)
	c.setZN(v)
}

// adc implements ADC directly, and SBC by passing the bitwise
// complement of the subtrahend -- the standard trick that lets both
// instructions share one carry/overflow computation.
func (c *CPU) adc(operand byte) {
	carryIn := uint16(0)
	if c.Carry() {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(operand) + carryIn
	result := byte(sum)

	c.SetCarry(sum > 0xFF)
	c.SetOverflow((c.A^operand)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

// compare implements CMP/CPX/CPY: a subtraction whose result only
// ever affects flags, never the register being compared.
func (c *CPU) compare(reg, operand byte) {
	result := reg - operand
	c.SetCarry(reg >= operand)
	c.setZN(result)
}

// branch reads the relative offset byte (always consumed, whether or
// not the branch is taken) and, if taken, applies it to PC. It
// returns the extra cycles earned: +1 for a taken branch, +1 more if
// that branch lands on a different page.
func (c *CPU) branch(m *mem.Memory, taken bool) int {
	offset := int8(c.fetchByte(m))
	if !taken {
		return 0
	}
	origin := c.PC
	dest := uint16(int32(c.PC) + int32(offset))
	c.PC = dest
	if samePage(origin, dest) {
		return 1
	}
	return 2
}
