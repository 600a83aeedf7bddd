package asmtool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveOK(t *testing.T, src string) *Program {
	t.Helper()
	nodes := parseOK(t, src)
	prog, errs := Resolve(nodes)
	require.Empty(t, errs)
	return prog
}

func TestResolveAssignsAddressesAfterOrg(t *testing.T) {
	prog := resolveOK(t, ".org $8000\nstart:\nLDA #$01\nSTA $00\n")
	assert.Equal(t, uint16(0x8000), prog.Symbols["start"])
	assert.Equal(t, uint16(0x8002), prog.Addrs[3]) // STA after the 2-byte LDA
}

func TestResolveForwardLabelReference(t *testing.T) {
	prog := resolveOK(t, ".org $8000\nJMP done\nNOP\ndone:\nRTS\n")
	instr := prog.Nodes[1].(Instruction)
	assert.Equal(t, prog.Symbols["done"], instr.Operand.Number)
	assert.Equal(t, OperandAddressNumber, instr.Operand.Kind)
}

func TestResolveUndefinedLabelReportsError(t *testing.T) {
	nodes := parseOK(t, "JMP nowhere\n")
	_, errs := Resolve(nodes)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "nowhere")
}

func TestResolveDuplicateLabelReportsError(t *testing.T) {
	nodes := parseOK(t, "here:\nhere:\nRTS\n")
	_, errs := Resolve(nodes)
	require.Len(t, errs, 1)
}

func TestResolveBranchOutOfRangeReportsError(t *testing.T) {
	src := ".org $8000\nloop:\n"
	for i := 0; i < 130; i++ {
		src += "NOP\n"
	}
	src += "BNE loop\n"
	nodes := parseOK(t, src)
	_, errs := Resolve(nodes)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "out of range")
}

func TestResolveBranchWithinRangeSucceeds(t *testing.T) {
	prog := resolveOK(t, ".org $8000\nloop:\nNOP\nBNE loop\n")
	instr := prog.Nodes[3].(Instruction)
	assert.Equal(t, prog.Symbols["loop"], instr.Operand.Number)
}

func TestResolveImmediateLabelOutOfByteRangeReportsError(t *testing.T) {
	nodes := parseOK(t, ".org $8000\nhigh:\nLDA #high\n")
	_, errs := Resolve(nodes)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "high")
	assert.Contains(t, errs[0].Error(), "one byte")
}

func TestResolveImmediateLabelWithinByteRangeSucceeds(t *testing.T) {
	prog := resolveOK(t, ".org $00\nzp:\n.org $8000\nLDA #zp\n")
	instr := prog.Nodes[3].(Instruction)
	assert.Equal(t, uint16(0x00), instr.Operand.Number)
}
