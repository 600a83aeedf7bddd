package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoBankImage() []byte {
	prg := make([]byte, 32*1024)
	// LDA #$42 ; BRK, at the very start of the mapped PRG window.
	prg[0] = 0xA9
	prg[1] = 0x42
	prg[2] = 0x00
	// reset vector -> $8000, at the top of the second 16 KiB bank.
	prg[len(prg)-4] = 0x00
	prg[len(prg)-3] = 0x80
	return buildImage(2, 0, prg, nil)
}

func TestNewConsoleLoadsPRGAndResetsFromVector(t *testing.T) {
	cart, err := LoadCartridge(twoBankImage())
	require.NoError(t, err)

	console := NewConsole(cart)
	assert.Equal(t, uint16(0x8000), console.CPU.PC)
	assert.Equal(t, byte(0xA9), console.Mem.Read(0x8000))
}

func TestConsoleStepTicksStubs(t *testing.T) {
	cart, err := LoadCartridge(twoBankImage())
	require.NoError(t, err)

	console := NewConsole(cart)
	console.Step()
	assert.Equal(t, 1, console.PPU.Cycle())
	assert.Equal(t, 1, console.APU.Cycle())
}
