// Package nes is the out-of-scope console shell around the 6502 core:
// a flat-NROM cartridge loader and CPU/memory wiring. The PPU and APU
// are explicit stubs; neither has a real timing contract, matching
// this repository's documented non-goals.
package nes

import (
	"bytes"
	"errors"
	"fmt"
)

// HeaderSize is the size of a standard iNES header.
const HeaderSize = 16

var magic = []byte{0x4E, 0x45, 0x53, 0x1A} // "NES" + MS-DOS EOF

// Header is a standard iNES file header.
type Header struct {
	PRGBanks uint8 // 16 KiB units
	CHRBanks uint8 // 8 KiB units
	Flag6    uint8
	Flag7    uint8
}

// ParseHeader reads and validates the first 16 bytes of an iNES image.
// Only mapper 0 (NROM) is recognized; anything else is reported as an
// error rather than silently mis-mapped.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, errors.New("nes: image shorter than the iNES header")
	}
	if !bytes.Equal(data[:4], magic) {
		return nil, errors.New("nes: missing iNES magic bytes")
	}
	h := &Header{
		PRGBanks: data[4],
		CHRBanks: data[5],
		Flag6:    data[6],
		Flag7:    data[7],
	}
	if h.Mapper() != 0 {
		return nil, fmt.Errorf("nes: mapper %d unsupported, only NROM (mapper 0) is implemented", h.Mapper())
	}
	return h, nil
}

// Mapper returns the iNES mapper number encoded across Flag6/Flag7.
func (h *Header) Mapper() uint8 {
	return (h.Flag6 >> 4) | (h.Flag7 & 0xF0)
}

// PRGSize is the size in bytes of the PRG ROM region.
func (h *Header) PRGSize() int { return int(h.PRGBanks) * 16 * 1024 }

// CHRSize is the size in bytes of the CHR ROM region.
func (h *Header) CHRSize() int { return int(h.CHRBanks) * 8 * 1024 }

// Mirroring reports whether the cartridge wants vertical nametable
// mirroring (bit 0 of Flag6); horizontal otherwise. The PPU stub never
// consults this -- it's here for a future PPU to read.
func (h *Header) Mirroring() bool { return h.Flag6&0x01 != 0 }
