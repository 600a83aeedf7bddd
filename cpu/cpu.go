// Package cpu implements the MOS 6502 register file and its
// fetch/decode/execute loop against a flat mem.Memory address space.
package cpu

import (
	"fmt"

	"mos6502/mem"
	"mos6502/opcode"
)

// CPU holds the 6502's entire architectural state: three
// general-purpose registers, the stack pointer, the program counter,
// and the packed status byte. There is deliberately no hidden state
// beyond what Reset/push/pop touch, so a CPU value can be copied or
// dumped with go-spew without surprises.
type CPU struct {
	A, X, Y byte
	SP      byte
	PC      uint16
	P       byte
}

// New returns a CPU with the status register in its post-reset shape
// (IRQ disabled, unused bit set, all else clear) and the stack
// pointer at its conventional top-of-page value. Callers still need
// to call Reset against a loaded mem.Memory to pick up the reset
// vector, or ResetAt to start at an explicit address.
func New() *CPU {
	c := &CPU{SP: 0xFF}
	c.unusedAlwaysOne()
	c.SetIrqDisable(true)
	return c
}

// Reset loads the program counter from the reset vector at
// mem.ResetVector and restores SP/P to their power-on values.
func (c *CPU) Reset(m *mem.Memory) {
	c.resetRegisters()
	c.PC = m.ReadWord(mem.ResetVector)
}

// ResetAt bypasses the reset vector and starts execution directly at
// pc. This is what the test suite and the run executable use when
// loading a binary that doesn't set up its own vector table.
func (c *CPU) ResetAt(pc uint16) {
	c.resetRegisters()
	c.PC = pc
}

func (c *CPU) resetRegisters() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFF
	c.P = 0
	c.unusedAlwaysOne()
	c.SetIrqDisable(true)
}

func (c *CPU) fetchByte(m *mem.Memory) byte {
	v := m.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetchWord(m *mem.Memory) uint16 {
	lo := c.fetchByte(m)
	hi := c.fetchByte(m)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push(m *mem.Memory, v byte) {
	m.Write(0x0100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop(m *mem.Memory) byte {
	c.SP++
	return m.Read(0x0100 | uint16(c.SP))
}

func (c *CPU) pushWord(m *mem.Memory, v uint16) {
	c.push(m, byte(v>>8))
	c.push(m, byte(v))
}

func (c *CPU) popWord(m *mem.Memory) uint16 {
	lo := c.pop(m)
	hi := c.pop(m)
	return uint16(hi)<<8 | uint16(lo)
}

func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}

// operand resolves the effective address for every mode except
// Implied, Accumulator and Relative, which the instruction handlers
// deal with directly. crossed reports whether an indexed mode's
// addition carried into a new page, the condition that costs an
// extra cycle on reads.
func (c *CPU) operand(mode opcode.Mode, m *mem.Memory) (addr uint16, crossed bool) {
	switch mode {
	case opcode.Immediate:
		addr = c.PC
		c.PC++
		return addr, false
	case opcode.ZeroPage:
		return uint16(c.fetchByte(m)), false
	case opcode.ZeroPageX:
		return uint16(c.fetchByte(m) + c.X), false
	case opcode.ZeroPageY:
		return uint16(c.fetchByte(m) + c.Y), false
	case opcode.Absolute:
		return c.fetchWord(m), false
	case opcode.AbsoluteX:
		base := c.fetchWord(m)
		addr = base + uint16(c.X)
		return addr, !samePage(base, addr)
	case opcode.AbsoluteY:
		base := c.fetchWord(m)
		addr = base + uint16(c.Y)
		return addr, !samePage(base, addr)
	case opcode.Indirect:
		ptr := c.fetchWord(m)
		return c.readWordBuggy(m, ptr), false
	case opcode.IndirectX:
		zp := c.fetchByte(m) + c.X
		return c.readWordZeroPage(m, zp), false
	case opcode.IndirectY:
		zp := c.fetchByte(m)
		base := c.readWordZeroPage(m, zp)
		addr = base + uint16(c.Y)
		return addr, !samePage(base, addr)
	default:
		panic(fmt.Sprintf("operand: mode %s has no address", mode))
	}
}

// readWordBuggy reproduces the JMP ($xxFF) hardware bug: if the
// pointer's low byte is 0xFF, the high byte is fetched from the start
// of the same page instead of the start of the next one.
func (c *CPU) readWordBuggy(m *mem.Memory, ptr uint16) uint16 {
	lo := m.Read(ptr)
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := m.Read(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// readWordZeroPage reads a pointer stored in the zero page, wrapping
// the high-byte fetch within page zero instead of carrying into page
// one.
func (c *CPU) readWordZeroPage(m *mem.Memory, zp byte) uint16 {
	lo := m.Read(uint16(zp))
	hi := m.Read(uint16(byte(zp + 1)))
	return uint16(hi)<<8 | uint16(lo)
}

// Execute runs whole instructions for as long as fewer than budget
// cycles have been spent; the last instruction may carry cyclesUsed
// past budget. In testingMode, encountering BRK halts execution immediately (rather
// than entering the standard interrupt sequence) and is reported as
// normal completion -- this is how the test suite uses BRK as an
// end-of-program marker. completed is false only when an
// unimplemented opcode byte is encountered.
func (c *CPU) Execute(budget int32, m *mem.Memory, testingMode bool) (cyclesUsed int32, completed bool) {
	for cyclesUsed < budget {
		opByte := m.Read(c.PC)
		entry, ok := opcode.Decode(opByte)
		if !ok {
			return cyclesUsed, false
		}
		if entry.Mnemonic == "BRK" && testingMode {
			return cyclesUsed, true
		}
		c.PC++
		cyclesUsed += int32(c.dispatch(entry, m))
	}
	return cyclesUsed, true
}

// Step executes exactly one instruction and returns the cycles it
// cost, for the interactive debugger. BRK is always taken as a real
// interrupt here; the testing-mode halt is Execute's concern, not
// Step's.
func (c *CPU) Step(m *mem.Memory) int {
	opByte := m.Read(c.PC)
	entry, ok := opcode.Decode(opByte)
	if !ok {
		return 0
	}
	c.PC++
	return c.dispatch(entry, m)
}

// InterruptBRK runs BRK's full hardware behavior: push PC+1 and a
// copy of P with the B flag set, disable further IRQs, and jump
// through the IRQ vector. dispatch runs it for every BRK executed by
// Step, and by Execute outside testingMode.
func (c *CPU) InterruptBRK(m *mem.Memory) {
	c.PC++ // BRK's operand byte (a padding byte, conventionally a signature) is skipped
	c.pushWord(m, c.PC)
	c.SetBreak(true)
	c.push(m, c.P)
	c.SetIrqDisable(true)
	c.PC = m.ReadWord(mem.IRQVector)
}

// State is a point-in-time snapshot of every register, useful for
// go-spew dumps in the debugger and run's --dump output without handing
// out the live CPU pointer.
type State struct {
	A, X, Y, SP byte
	PC          uint16
	P           byte
	N, V, U, B, D, I, Z, C bool
}

// Snapshot captures the current register file.
func (c *CPU) Snapshot() State {
	return State{
		A: c.A, X: c.X, Y: c.Y, SP: c.SP, PC: c.PC, P: c.P,
		N: c.Negative(), V: c.Overflow(), U: true, B: c.Break(),
		D: c.Decimal(), I: c.IrqDisable(), Z: c.Zero(), C: c.Carry(),
	}
}
