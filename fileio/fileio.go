// Package fileio defines the basic interfaces for moving bytes between the
// local filesystem and the 64 KiB address space used by the cpu and asmtool
// packages: reading an assembly source file, writing an assembled binary
// image, and loading either a flat image or a sparse address->byte map back
// into memory.
package fileio

import (
	"fmt"
	"os"

	"mos6502/mem"
)

// ReadSource reads an assembly source file as text.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source %s: %w", path, err)
	}
	return string(data), nil
}

// WriteBinary writes a contiguous assembled image to path.
func WriteBinary(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing binary %s: %w", path, err)
	}
	return nil
}

// ReadBinary reads a previously assembled image back off disk.
func ReadBinary(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading binary %s: %w", path, err)
	}
	return data, nil
}

// LoadImage copies a flat binary image into m starting at base.
func LoadImage(m *mem.Memory, base uint16, data []byte) {
	m.LoadBytes(base, data)
}

// LoadMemoryMap copies a sparse address->byte map into m, for callers
// that built up memory piecemeal (e.g. directly from an
// asmtool.Result's memory map) rather than from one contiguous image.
func LoadMemoryMap(m *mem.Memory, data map[uint16]byte) {
	for addr, b := range data {
		m.Write(addr, b)
	}
}
