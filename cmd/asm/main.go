// Command asm is the two-pass symbolic assembler's CLI: it lexes,
// parses, resolves and encodes a source file into a raw binary image.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"mos6502/asmtool"
	"mos6502/fileio"
)

const version = "0.1.0"

func outputPath(source, override string) string {
	if override != "" {
		return override
	}
	ext := ""
	if i := strings.LastIndexByte(source, '.'); i >= 0 {
		ext = source[i:]
	}
	return strings.TrimSuffix(source, ext) + ".bin"
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one source file is required", 1)
	}
	source := c.Args().Get(0)
	verbose := c.Bool("v")
	debug := c.Bool("d")

	if verbose {
		fmt.Fprintf(c.App.Writer, "assembling %s\n", source)
	}

	asm := asmtool.New()
	result, err := asm.AssembleFile(source)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if !result.OK() {
		for _, e := range result.Errs {
			fmt.Fprintln(c.App.ErrWriter, e.Error())
		}
		return cli.Exit("", 1)
	}

	if debug {
		fmt.Fprintf(c.App.Writer, "nodes: %d  symbols: %d  bytes: %d\n",
			len(result.Program.Nodes), len(result.Program.Symbols), len(result.Binary))
	}
	if c.Bool("ir") {
		result.PrintIR(c.App.Writer)
	}
	if c.Bool("symbols") {
		result.PrintSymbolTable(c.App.Writer)
	}
	if c.Bool("memory") {
		result.PrintMemoryMap(c.App.Writer)
	}

	data, _, ok := result.GetBinary()
	if !ok {
		if verbose {
			fmt.Fprintln(c.App.Writer, "nothing assembled, no output written")
		}
		return nil
	}

	dest := outputPath(source, c.String("o"))
	if err := fileio.WriteBinary(dest, data); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if verbose {
		fmt.Fprintf(c.App.Writer, "wrote %d bytes to %s\n", len(data), dest)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:      "asm",
		Usage:     "assemble 6502 source into a raw binary image",
		UsageText: "asm [options] <source>",
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "o", Usage: "output path (default: source path with its extension changed to .bin)"},
			&cli.BoolFlag{Name: "v", Usage: "verbose progress"},
			&cli.BoolFlag{Name: "d", Usage: "debug per-stage counts"},
			&cli.BoolFlag{Name: "symbols", Usage: "print symbol table after assembly"},
			&cli.BoolFlag{Name: "memory", Usage: "print non-empty memory cells"},
			&cli.BoolFlag{Name: "ir", Usage: "print parsed IR"},
		},
		Action: run,
	}

	cli.HandleExitCoder(app.Run(os.Args))
}
