package asmtool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mos6502/opcode"
)

func parseOK(t *testing.T, src string) []Node {
	t.Helper()
	tokens, err := NewLexer(src).Tokenize()
	require.NoError(t, err)
	nodes, errs := NewParser(tokens).Parse()
	require.Empty(t, errs)
	return nodes
}

func TestParseLabelDirectiveInstruction(t *testing.T) {
	nodes := parseOK(t, "start:\n.org $8000\nLDA #$01\n")
	require.Len(t, nodes, 3)
	assert.Equal(t, Label{Name: "start", Line: 1}, nodes[0])

	dir, ok := nodes[1].(Directive)
	require.True(t, ok)
	assert.Equal(t, "org", dir.Name)
	assert.Equal(t, uint16(0x8000), dir.Number)

	instr, ok := nodes[2].(Instruction)
	require.True(t, ok)
	assert.Equal(t, "LDA", instr.Mnemonic)
	assert.Equal(t, opcode.Immediate, instr.Mode)
	assert.Equal(t, OperandImmediateNumber, instr.Operand.Kind)
	assert.Equal(t, uint16(1), instr.Operand.Number)
}

func TestParseZeroPageVsAbsoluteThreshold(t *testing.T) {
	nodes := parseOK(t, "LDA $00FF\nLDA $0100\n")
	assert.Equal(t, opcode.ZeroPage, nodes[0].(Instruction).Mode)
	assert.Equal(t, opcode.Absolute, nodes[1].(Instruction).Mode)
}

func TestParseIndexedAddressing(t *testing.T) {
	nodes := parseOK(t, "LDA $10,X\nLDA $1000,Y\nLDX $10,Y\n")
	assert.Equal(t, opcode.ZeroPageX, nodes[0].(Instruction).Mode)
	assert.Equal(t, opcode.AbsoluteY, nodes[1].(Instruction).Mode)
	assert.Equal(t, opcode.ZeroPageY, nodes[2].(Instruction).Mode)
}

func TestParseIndirectForms(t *testing.T) {
	nodes := parseOK(t, "JMP ($1234)\nLDA ($10,X)\nLDA ($10),Y\n")
	assert.Equal(t, opcode.Indirect, nodes[0].(Instruction).Mode)
	assert.Equal(t, opcode.IndirectX, nodes[1].(Instruction).Mode)
	assert.Equal(t, opcode.IndirectY, nodes[2].(Instruction).Mode)
}

func TestParseAccumulatorMode(t *testing.T) {
	nodes := parseOK(t, "ASL A\nNOP\n")
	assert.Equal(t, opcode.Accumulator, nodes[0].(Instruction).Mode)
	assert.Equal(t, opcode.Implied, nodes[1].(Instruction).Mode)
}

func TestParseBranchForcesRelativeMode(t *testing.T) {
	nodes := parseOK(t, "loop:\nBNE loop\n")
	instr := nodes[1].(Instruction)
	assert.Equal(t, opcode.Relative, instr.Mode)
	assert.Equal(t, OperandAddressLabel, instr.Operand.Kind)
}

func TestParseUnknownMnemonicReportsError(t *testing.T) {
	tokens, err := NewLexer("FOO #$01\n").Tokenize()
	require.NoError(t, err)
	_, errs := NewParser(tokens).Parse()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "line 1")
}

func TestParseRecoversAfterErrorOnNextLine(t *testing.T) {
	tokens, err := NewLexer("FOO\nLDA #$01\n").Tokenize()
	require.NoError(t, err)
	nodes, errs := NewParser(tokens).Parse()
	require.Len(t, errs, 1)
	require.Len(t, nodes, 1)
	assert.Equal(t, "LDA", nodes[0].(Instruction).Mnemonic)
}

func TestParseJSRRequiresAbsolute(t *testing.T) {
	tokens, err := NewLexer("JSR $10\n").Tokenize()
	require.NoError(t, err)
	_, errs := NewParser(tokens).Parse()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "JSR")
}

func TestParseRTSRejectsOperand(t *testing.T) {
	tokens, err := NewLexer("RTS #$01\n").Tokenize()
	require.NoError(t, err)
	_, errs := NewParser(tokens).Parse()
	require.Len(t, errs, 1)
}
