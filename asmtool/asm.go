package asmtool

import (
	"fmt"
	"io"
	"sort"

	"mos6502/fileio"
)

// Result is everything one assembly run produced: the resolved
// program, its binary encoding, and any errors. Errs is non-empty
// exactly when assembly failed; the other fields are only meaningful
// on success.
type Result struct {
	Program *Program
	Binary  map[uint16]byte
	Errs    []*AssembleError
}

// OK reports whether the run produced no errors.
func (r *Result) OK() bool { return len(r.Errs) == 0 }

// Assembler is the reusable, embeddable entry point into the
// lex/parse/resolve/encode pipeline. It holds no state between runs;
// New exists so callers have something to hang future options off of.
type Assembler struct{}

// New returns an Assembler ready to assemble source.
func New() *Assembler {
	return &Assembler{}
}

// AssembleString runs the full pipeline over in-memory source text.
func (a *Assembler) AssembleString(src string) *Result {
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		return &Result{Errs: []*AssembleError{{Message: err.Error()}}}
	}

	nodes, perrs := NewParser(tokens).Parse()
	if len(perrs) > 0 {
		return &Result{Errs: perrs}
	}

	program, rerrs := Resolve(nodes)
	if len(rerrs) > 0 {
		return &Result{Errs: rerrs}
	}

	binary, eerrs := Encode(program)
	if len(eerrs) > 0 {
		return &Result{Errs: eerrs}
	}

	return &Result{Program: program, Binary: binary}
}

// AssembleFile reads path via fileio and assembles its contents.
func (a *Assembler) AssembleFile(path string) (*Result, error) {
	src, err := fileio.ReadSource(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return a.AssembleString(src), nil
}

// GetBinary flattens the result's sparse address map into a
// contiguous image spanning its lowest through highest written
// address. ok is false if the result has no bytes to emit.
func (r *Result) GetBinary() (data []byte, base uint16, ok bool) {
	if r.Binary == nil {
		return nil, 0, false
	}
	lo, hi, has := Bounds(r.Binary)
	if !has {
		return nil, 0, false
	}
	return Flatten(r.Binary, lo, hi), lo, true
}

// GetMemoryMap returns the raw sparse address->byte map produced by
// Encode, for callers that want to load it directly without flattening
// gaps to zero.
func (r *Result) GetMemoryMap() map[uint16]byte {
	return r.Binary
}

// PrintSymbolTable writes every resolved label and its address to w,
// sorted by address, for the --symbols debug dump.
func (r *Result) PrintSymbolTable(w io.Writer) {
	if r.Program == nil {
		return
	}
	type entry struct {
		name string
		addr uint16
	}
	entries := make([]entry, 0, len(r.Program.Symbols))
	for name, addr := range r.Program.Symbols {
		entries = append(entries, entry{name, addr})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].addr < entries[j].addr })
	for _, e := range entries {
		fmt.Fprintf(w, "$%04X  %s\n", e.addr, e.name)
	}
}

// PrintMemoryMap writes every written address and its byte to w,
// sorted by address, for the --memory debug dump.
func (r *Result) PrintMemoryMap(w io.Writer) {
	addrs := make([]uint16, 0, len(r.Binary))
	for addr := range r.Binary {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, addr := range addrs {
		fmt.Fprintf(w, "$%04X  $%02X\n", addr, r.Binary[addr])
	}
}

// PrintIR writes one line per resolved node to w, for the --ir debug
// dump showing the address-assignment and resolve stages.
func (r *Result) PrintIR(w io.Writer) {
	if r.Program == nil {
		return
	}
	for i, n := range r.Program.Nodes {
		addr := r.Program.Addrs[i]
		switch v := n.(type) {
		case Label:
			fmt.Fprintf(w, "$%04X  %s:\n", addr, v.Name)
		case Directive:
			fmt.Fprintf(w, "$%04X  .%s\n", addr, v.Name)
		case Instruction:
			fmt.Fprintf(w, "$%04X  %s %s\n", addr, v.Mnemonic, v.Mode)
		}
	}
}
