package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeAreInverse(t *testing.T) {
	e, ok := Encode("LDA", Immediate)
	assert.True(t, ok)
	assert.Equal(t, byte(0xA9), e.Byte)

	d, ok := Decode(0xA9)
	assert.True(t, ok)
	assert.Equal(t, "LDA", d.Mnemonic)
	assert.Equal(t, Immediate, d.Mode)
	assert.Equal(t, 2, d.Cycles)
}

func TestDecodeUnimplementedByte(t *testing.T) {
	_, ok := Decode(0x02)
	assert.False(t, ok)
}

func TestEncodeUnsupportedMode(t *testing.T) {
	_, ok := Encode("JSR", ZeroPage)
	assert.False(t, ok)
}

func TestIsMnemonicAndIsBranch(t *testing.T) {
	assert.True(t, IsMnemonic("LDA"))
	assert.False(t, IsMnemonic("FOO"))
	assert.True(t, IsBranch("BEQ"))
	assert.False(t, IsBranch("LDA"))
}

func TestModeLength(t *testing.T) {
	assert.Equal(t, 1, Implied.Length())
	assert.Equal(t, 2, Immediate.Length())
	assert.Equal(t, 3, Absolute.Length())
}

func TestEveryTableModeSupportsItsMnemonic(t *testing.T) {
	for _, e := range table {
		_, ok := Encode(e.Mnemonic, e.Mode)
		assert.True(t, ok, "%s %s", e.Mnemonic, e.Mode)
	}
}
