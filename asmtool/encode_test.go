package asmtool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembleOK(t *testing.T, src string) map[uint16]byte {
	t.Helper()
	prog := resolveOK(t, src)
	bin, errs := Encode(prog)
	require.Empty(t, errs)
	return bin
}

func TestEncodeImmediateInstruction(t *testing.T) {
	bin := assembleOK(t, ".org $8000\nLDA #$0A\n")
	assert.Equal(t, byte(0xA9), bin[0x8000])
	assert.Equal(t, byte(0x0A), bin[0x8001])
}

func TestEncodeAbsoluteInstructionIsLittleEndian(t *testing.T) {
	bin := assembleOK(t, ".org $8000\nJMP $1234\n")
	assert.Equal(t, byte(0x4C), bin[0x8000])
	assert.Equal(t, byte(0x34), bin[0x8001])
	assert.Equal(t, byte(0x12), bin[0x8002])
}

func TestEncodeBranchDisplacement(t *testing.T) {
	bin := assembleOK(t, ".org $8000\nloop:\nNOP\nBNE loop\n")
	// BNE opcode at $8001, next instruction at $8003, target $8000:
	// displacement = 0x8000 - 0x8003 = -3.
	assert.Equal(t, byte(0xD0), bin[0x8001])
	assert.Equal(t, byte(0xFD), bin[0x8002])
}

func TestEncodeByteAndWordDirectives(t *testing.T) {
	bin := assembleOK(t, ".org $9000\n.byte $42\n.word $1234\n")
	assert.Equal(t, byte(0x42), bin[0x9000])
	assert.Equal(t, byte(0x34), bin[0x9001])
	assert.Equal(t, byte(0x12), bin[0x9002])
}

func TestFlattenFillsGapsWithZero(t *testing.T) {
	sparse := map[uint16]byte{0x10: 0xAA, 0x12: 0xBB}
	flat := Flatten(sparse, 0x10, 0x12)
	assert.Equal(t, []byte{0xAA, 0x00, 0xBB}, flat)
}

func TestBoundsOnEmptyMap(t *testing.T) {
	_, _, ok := Bounds(map[uint16]byte{})
	assert.False(t, ok)
}
