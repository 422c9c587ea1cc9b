// Command emu runs or interactively debugs an rm16 binary image.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v2"

	"github.com/Urethramancer/rm16/debugger"
)

func main() {
	app := &cli.App{
		Name:      "emu",
		Usage:     "run or interactively debug an rm16 binary image",
		ArgsUsage: "[binary.bin]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "run",
				Aliases: []string{"r"},
				Usage:   "run immediately instead of dropping into the debugger prompt",
			},
			&cli.BoolFlag{
				Name:    "graphics",
				Aliases: []string{"g"},
				Usage:   "auto-attach the video bank observer",
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
	h := debugger.New(os.Stdout)

	if path := c.Args().First(); path != "" {
		if err := h.Load(path, 0); err != nil {
			fmt.Fprintf(os.Stderr, "emu: %v\n", err)
			return cli.Exit("", 1)
		}
	}

	if c.Bool("graphics") {
		h.AttachGraphics()
	}

	if c.Bool("run") {
		if err := h.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "emu: %v\n", err)
			return cli.Exit("", 1)
		}
		fmt.Printf("halted at pc=%#06x\n", h.CPU.PC())
		return nil
	}

	repl := debugger.NewREPL(h, os.Stdin)
	repl.Loop()
	return nil
}
