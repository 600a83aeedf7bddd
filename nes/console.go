package nes

import (
	"mos6502/cpu"
	"mos6502/mem"
)

// Console wires a cartridge's PRG ROM into the CPU's flat address
// space and owns the CPU driving it. There is no separate PPU-side
// bus: the real NES's dual-bus layout is out of scope, so the PPU/APU
// stubs below never touch Mem.
type Console struct {
	CPU *cpu.CPU
	Mem *mem.Memory
	Cart *Cartridge
	PPU  *PPU
	APU  *APU
}

// NewConsole loads cart's PRG ROM into the CPU's address space at
// 0x8000 (mirrored if the cartridge has only one bank) and resets the
// CPU from the reset vector baked into the image.
func NewConsole(cart *Cartridge) *Console {
	m := mem.New()
	m.Init()
	for offset := 0; offset < 0x8000; offset++ {
		addr := uint16(0x8000 + offset)
		if b, ok := cart.CPURead(addr); ok {
			m.Write(addr, b)
		}
	}

	c := cpu.New()
	c.Reset(m)

	return &Console{
		CPU:  c,
		Mem:  m,
		Cart: cart,
		PPU:  &PPU{},
		APU:  &APU{},
	}
}

// Step executes one CPU instruction and ticks the (stub) PPU/APU. The
// 3:1 PPU:CPU clock ratio real hardware has is not modeled; Step just
// advances each stub's counter once per CPU instruction, without
// claiming any timing accuracy.
func (c *Console) Step() int {
	cycles := c.CPU.Step(c.Mem)
	c.PPU.Tick()
	c.APU.Tick()
	return cycles
}
