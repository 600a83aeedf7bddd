package nes

// PPU is an explicit placeholder for the picture processing unit.
// It tracks no VRAM, generates no framebuffer, and Tick carries no
// timing contract -- accurate PPU emulation is out of scope for this
// repository. It exists so Console has somewhere to wire a real PPU
// later without changing the CPU-facing surface.
type PPU struct {
	cycle int
}

// Tick advances the stub's internal counter. It does nothing
// observable; there is no scanline/dot model behind it.
func (p *PPU) Tick() {
	p.cycle++
}

// Cycle returns how many times Tick has been called, useful only for
// tests asserting Console.Step drives the stub at all.
func (p *PPU) Cycle() int { return p.cycle }
