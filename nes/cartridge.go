package nes

import "fmt"

// Cartridge holds a flat-NROM image: PRG ROM mapped into CPU address
// space at 0x8000, and CHR ROM handed to the PPU stub unread.
//
// NROM with one 16 KiB PRG bank mirrors 0x8000-0xBFFF into
// 0xC000-0xFFFF; two banks map the full 0x8000-0xFFFF range directly.
// No other mapper is supported -- see the mapper-variants non-goal.
type Cartridge struct {
	header *Header
	prg    []byte
	chr    []byte
}

// LoadCartridge parses an iNES image and slices out its PRG/CHR
// regions.
func LoadCartridge(data []byte) (*Cartridge, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	offset := HeaderSize
	if h.Flag6&0x04 != 0 {
		offset += 512 // 512-byte trainer, discarded
	}

	prgEnd := offset + h.PRGSize()
	if prgEnd > len(data) {
		return nil, fmt.Errorf("nes: image too short for declared PRG size (%d bytes)", h.PRGSize())
	}
	prg := data[offset:prgEnd]

	chrEnd := prgEnd + h.CHRSize()
	if chrEnd > len(data) {
		return nil, fmt.Errorf("nes: image too short for declared CHR size (%d bytes)", h.CHRSize())
	}
	chr := data[prgEnd:chrEnd]

	return &Cartridge{header: h, prg: prg, chr: chr}, nil
}

// CPURead maps a CPU-bus address in 0x8000-0xFFFF down into the PRG
// ROM, mirroring a single 16 KiB bank across the whole window. ok is
// false for any address the cartridge doesn't answer for.
func (c *Cartridge) CPURead(addr uint16) (data byte, ok bool) {
	if addr < 0x8000 {
		return 0, false
	}
	offset := addr - 0x8000
	if len(c.prg) <= 16*1024 {
		offset %= uint16(len(c.prg))
	}
	return c.prg[offset], true
}

// CPUWrite reports whether the cartridge would accept a write at addr;
// NROM is pure ROM, so it never does.
func (c *Cartridge) CPUWrite(addr uint16, value byte) (ok bool) {
	return false
}

// PRGSize returns the size of the loaded PRG ROM in bytes.
func (c *Cartridge) PRGSize() int { return len(c.prg) }

// CHRSize returns the size of the loaded CHR ROM in bytes.
func (c *Cartridge) CHRSize() int { return len(c.chr) }

// Header exposes the parsed iNES header for callers that want mapper
// or mirroring metadata.
func (c *Cartridge) Header() *Header { return c.header }
