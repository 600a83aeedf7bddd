// Command run loads an assembled binary image and drives the CPU
// interpreter to completion, printing the cycles used and, with
// --dump, the final register state.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"mos6502/cpu"
	"mos6502/fileio"
	"mos6502/mem"
)

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one binary image is required", 1)
	}
	path := c.Args().Get(0)
	base := uint16(c.Uint64("base"))
	budget := int32(c.Int64("cycles"))

	data, err := fileio.ReadBinary(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	m := mem.New()
	m.Init()
	fileio.LoadImage(m, base, data)

	proc := cpu.New()
	if c.Bool("use-reset-vector") {
		proc.Reset(m)
	} else {
		proc.ResetAt(base)
	}

	used, completed := proc.Execute(budget, m, c.Bool("testing-mode"))
	fmt.Fprintf(c.App.Writer, "cycles used: %d  completed: %t\n", used, completed)
	if c.Bool("dump") {
		spew.Fdump(c.App.Writer, proc.Snapshot())
	}
	if !completed {
		return cli.Exit("execution halted before reaching a terminating instruction", 1)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:      "run",
		Usage:     "execute an assembled 6502 binary image",
		UsageText: "run [options] <image>",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "base", Value: 0x8000, Usage: "load address for the image"},
			&cli.Int64Flag{Name: "cycles", Value: 1_000_000, Usage: "cycle budget"},
			&cli.BoolFlag{Name: "use-reset-vector", Usage: "take PC from $FFFC/$FFFD instead of --base"},
			&cli.BoolFlag{Name: "testing-mode", Usage: "treat BRK as a halt instead of a software interrupt"},
			&cli.BoolFlag{Name: "dump", Usage: "dump the final CPU state"},
		},
		Action: run,
	}

	cli.HandleExitCoder(app.Run(os.Args))
}
