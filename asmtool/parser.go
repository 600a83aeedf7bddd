package asmtool

import (
	"fmt"
	"strings"

	"mos6502/opcode"
)

// Parser turns a token stream into IR nodes. Parse errors don't abort
// the whole run: the parser resynchronizes at the next newline and
// keeps going, so one typo reports one error instead of a cascade.
type Parser struct {
	tokens []Token
	pos    int
	errors []*AssembleError
}

// NewParser returns a Parser over an already-lexed token stream.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) cur() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: TEOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) atEnd() bool {
	return p.cur().Type == TEOF
}

func (p *Parser) atLineEnd() bool {
	return p.cur().Type == TNewline || p.cur().Type == TEOF
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	if p.cur().Type != tt {
		return Token{}, fmt.Errorf("expected %s, got %s", tt, p.cur())
	}
	return p.advance(), nil
}

func (p *Parser) syncToNewline() {
	for !p.atEnd() && p.cur().Type != TNewline {
		p.advance()
	}
	if p.cur().Type == TNewline {
		p.advance()
	}
}

// Parse consumes the whole token stream and returns every node it
// could parse, plus any errors accumulated along the way.
func (p *Parser) Parse() ([]Node, []*AssembleError) {
	var nodes []Node
	for !p.atEnd() {
		if p.cur().Type == TNewline {
			p.advance()
			continue
		}
		line := p.cur().Line
		node, err := p.parseStatement()
		if err != nil {
			p.errors = append(p.errors, &AssembleError{Line: line, Message: err.Error()})
			p.syncToNewline()
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes, p.errors
}

func directiveName(text string) (string, bool) {
	name := strings.ToLower(strings.TrimPrefix(text, "."))
	switch name {
	case "org", "word", "byte":
		return name, true
	}
	return "", false
}

func (p *Parser) parseStatement() (Node, error) {
	tok := p.cur()

	if tok.Type == TIdentifier && p.peekNext().Type == TColon {
		p.advance()
		p.advance()
		return Label{Name: tok.Text, Line: tok.Line}, nil
	}

	if tok.Type == TIdentifier {
		if _, ok := directiveName(tok.Text); ok {
			return p.parseDirective()
		}
		return p.parseInstruction()
	}

	return nil, fmt.Errorf("unexpected token %s", tok)
}

func (p *Parser) parseDirective() (Node, error) {
	tok := p.advance()
	name, _ := directiveName(tok.Text)

	switch name {
	case "org":
		n, err := p.expect(TNumber)
		if err != nil {
			return nil, fmt.Errorf(".org: %w", err)
		}
		return Directive{Name: "org", Number: n.Num, NumberOK: true, Line: tok.Line}, nil

	case "word":
		switch p.cur().Type {
		case TNumber:
			n := p.advance()
			return Directive{Name: "word", Number: n.Num, NumberOK: true, Line: tok.Line}, nil
		case TIdentifier:
			n := p.advance()
			return Directive{Name: "word", Label: n.Text, Line: tok.Line}, nil
		default:
			return nil, fmt.Errorf(".word requires a number or label, got %s", p.cur())
		}

	case "byte":
		n, err := p.expect(TNumber)
		if err != nil {
			return nil, fmt.Errorf(".byte: %w", err)
		}
		if n.Num > 0xFF {
			return nil, fmt.Errorf(".byte value $%X does not fit in one byte", n.Num)
		}
		return Directive{Name: "byte", Number: n.Num, NumberOK: true, Line: tok.Line}, nil
	}

	return nil, fmt.Errorf("unknown directive %q", tok.Text)
}

func (p *Parser) parseInstruction() (Node, error) {
	tok := p.advance()
	mnemonic := strings.ToUpper(tok.Text)
	if !opcode.IsMnemonic(mnemonic) {
		return nil, fmt.Errorf("unknown mnemonic %q", tok.Text)
	}

	mode := opcode.Implied
	var operand Operand
	if !p.atLineEnd() {
		var err error
		operand, mode, err = p.parseOperand(mnemonic)
		if err != nil {
			return nil, err
		}
	}

	// Branch mnemonics are always relative regardless of how the
	// operand looked lexically.
	if opcode.IsBranch(mnemonic) {
		mode = opcode.Relative
	}

	if err := p.validateAddressingMode(mnemonic, mode); err != nil {
		return nil, err
	}

	return Instruction{Mnemonic: mnemonic, Mode: mode, Operand: operand, Line: tok.Line}, nil
}

func (p *Parser) validateAddressingMode(mnemonic string, mode opcode.Mode) error {
	switch mnemonic {
	case "JSR":
		if mode != opcode.Absolute {
			return fmt.Errorf("JSR requires an absolute operand")
		}
	case "RTS", "BRK":
		if mode != opcode.Implied {
			return fmt.Errorf("%s takes no operand", mnemonic)
		}
	case "TAX", "TAY", "TXA", "TYA", "TSX", "TXS",
		"PHA", "PHP", "PLA", "PLP":
		if mode != opcode.Implied {
			return fmt.Errorf("%s takes no operand", mnemonic)
		}
	}
	if _, ok := opcode.Encode(mnemonic, mode); !ok {
		return fmt.Errorf("%s does not support %s addressing", mnemonic, mode)
	}
	return nil
}

func (p *Parser) parseOperand(mnemonic string) (Operand, opcode.Mode, error) {
	switch p.cur().Type {
	case THash:
		return p.parseImmediate()
	case TLParen:
		return p.parseIndirect()
	case TIdentifier:
		if p.cur().Text == "A" {
			p.advance()
			return Operand{Kind: OperandAccumulator}, opcode.Accumulator, nil
		}
		return p.parseZeroPageOrAbsolute()
	default:
		return p.parseZeroPageOrAbsolute()
	}
}

func (p *Parser) parseImmediate() (Operand, opcode.Mode, error) {
	p.advance() // #
	switch p.cur().Type {
	case TNumber:
		n := p.advance()
		if n.Num > 0xFF {
			return Operand{}, opcode.Implied, fmt.Errorf("immediate value $%X does not fit in one byte", n.Num)
		}
		return Operand{Kind: OperandImmediateNumber, Number: n.Num}, opcode.Immediate, nil
	case TIdentifier:
		n := p.advance()
		return Operand{Kind: OperandImmediateLabel, Label: n.Text}, opcode.Immediate, nil
	default:
		return Operand{}, opcode.Implied, fmt.Errorf("expected number or label after #, got %s", p.cur())
	}
}

func (p *Parser) parseIndexSuffix() (indexed bool, onX bool, err error) {
	if p.cur().Type != TComma {
		return false, false, nil
	}
	p.advance()
	switch p.cur().Type {
	case TXReg:
		p.advance()
		return true, true, nil
	case TYReg:
		p.advance()
		return true, false, nil
	default:
		return false, false, fmt.Errorf("expected X or Y after comma, got %s", p.cur())
	}
}

func (p *Parser) parseZeroPageOrAbsolute() (Operand, opcode.Mode, error) {
	switch p.cur().Type {
	case TNumber:
		n := p.advance()
		mode := opcode.Absolute
		if n.Num <= 0xFF {
			mode = opcode.ZeroPage
		}
		indexed, onX, err := p.parseIndexSuffix()
		if err != nil {
			return Operand{}, opcode.Implied, err
		}
		if indexed {
			if mode == opcode.ZeroPage {
				if onX {
					mode = opcode.ZeroPageX
				} else {
					mode = opcode.ZeroPageY
				}
			} else if onX {
				mode = opcode.AbsoluteX
			} else {
				mode = opcode.AbsoluteY
			}
		}
		return Operand{Kind: OperandAddressNumber, Number: n.Num}, mode, nil

	case TIdentifier:
		n := p.advance()
		// A forward label's width is unknown until resolution, so it
		// defaults to Absolute even if it later resolves into zero
		// page.
		mode := opcode.Absolute
		indexed, onX, err := p.parseIndexSuffix()
		if err != nil {
			return Operand{}, opcode.Implied, err
		}
		if indexed {
			if onX {
				mode = opcode.AbsoluteX
			} else {
				mode = opcode.AbsoluteY
			}
		}
		return Operand{Kind: OperandAddressLabel, Label: n.Text}, mode, nil

	default:
		return Operand{}, opcode.Implied, fmt.Errorf("unexpected operand token %s", p.cur())
	}
}

func (p *Parser) parseIndirect() (Operand, opcode.Mode, error) {
	p.advance() // (

	var operand Operand
	switch p.cur().Type {
	case TNumber:
		n := p.advance()
		operand = Operand{Kind: OperandAddressNumber, Number: n.Num}
	case TIdentifier:
		n := p.advance()
		operand = Operand{Kind: OperandAddressLabel, Label: n.Text}
	default:
		return Operand{}, opcode.Implied, fmt.Errorf("expected number or label after (, got %s", p.cur())
	}

	if p.cur().Type == TComma {
		p.advance()
		if p.cur().Type != TXReg {
			return Operand{}, opcode.Implied, fmt.Errorf("expected X before ) in indexed indirect, got %s", p.cur())
		}
		p.advance()
		if _, err := p.expect(TRParen); err != nil {
			return Operand{}, opcode.Implied, err
		}
		return operand, opcode.IndirectX, nil
	}

	if _, err := p.expect(TRParen); err != nil {
		return Operand{}, opcode.Implied, err
	}

	if p.cur().Type == TComma {
		p.advance()
		if p.cur().Type != TYReg {
			return Operand{}, opcode.Implied, fmt.Errorf("expected Y after ) in indirect indexed, got %s", p.cur())
		}
		p.advance()
		return operand, opcode.IndirectY, nil
	}

	return operand, opcode.Indirect, nil
}
