package fileio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mos6502/mem"
)

func TestWriteThenReadBinaryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	want := []byte{0xA9, 0x01, 0x00}

	require.NoError(t, WriteBinary(path, want))
	got, err := ReadBinary(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.asm")
	require.NoError(t, WriteBinary(path, []byte("LDA #$01\n")))

	text, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "LDA #$01\n", text)
}

func TestLoadImage(t *testing.T) {
	m := mem.New()
	LoadImage(m, 0x8000, []byte{0xA9, 0x01})
	assert.Equal(t, byte(0xA9), m.Read(0x8000))
	assert.Equal(t, byte(0x01), m.Read(0x8001))
}

func TestLoadMemoryMap(t *testing.T) {
	m := mem.New()
	LoadMemoryMap(m, map[uint16]byte{0x0000: 0x10, 0x00FF: 0x20})
	assert.Equal(t, byte(0x10), m.Read(0x0000))
	assert.Equal(t, byte(0x20), m.Read(0x00FF))
}
