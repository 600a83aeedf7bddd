// Command debug loads an assembled binary image and opens the
// interactive single-step TUI debugger against it.
package main

import (
	"os"

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

	cpu.Debug(proc, m, base)
	return nil
}

func main() {
	app := &cli.App{
		Name:      "debug",
		Usage:     "single-step a 6502 binary image in an interactive TUI",
		UsageText: "debug [options] <image>",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "base", Value: 0x8000, Usage: "load address for the image"},
			&cli.BoolFlag{Name: "use-reset-vector", Usage: "take PC from $FFFC/$FFFD instead of --base"},
		},
		Action: run,
	}

	cli.HandleExitCoder(app.Run(os.Args))
}
