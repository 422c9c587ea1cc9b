// Command asm assembles a .jasm source file into a flat rm16 binary image.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v2"

	"github.com/Urethramancer/rm16/assembler"
)

func main() {
	app := &cli.App{
		Name:      "asm",
		Usage:     "assemble a .jasm source file into an rm16 binary image",
		ArgsUsage: "<file.jasm>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "a.bin",
				Usage:   "output binary path",
			},
			&cli.IntFlag{
				Name:    "verbosity",
				Aliases: []string{"v"},
				Value:   int64(assembler.Warnings),
				Usage:   "verbosity level 0-3 (silent, warnings, progress, verbose)",
			},
			&cli.BoolFlag{
				Name:    "no-warn",
				Aliases: []string{"nw"},
				Usage:   "suppress warnings (at verbosity 2-3 they still appear in the progress output)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.Exit("usage: asm <file.jasm> [-o output.bin] [-v 0..3] [-nw]", 1)
	}
	src := c.Args().First()

	level := assembler.Verbosity(c.Int("verbosity"))
	if c.Bool("no-warn") && level == assembler.Warnings {
		level = assembler.Silent
	}

	asm := assembler.New(level)
	code, err := asm.AssembleFile(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asm: %v\n", err)
		return cli.Exit("", 1)
	}
	if !c.Bool("no-warn") {
		for _, w := range asm.Warnings() {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	}

	out := c.String("output")
	if err := assembler.WriteBinary(out, code); err != nil {
		fmt.Fprintf(os.Stderr, "asm: %v\n", err)
		return cli.Exit("", 1)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(code), out)
	return nil
}
