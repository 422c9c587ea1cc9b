// Command dis disassembles an rm16 binary image to text.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v2"

	"github.com/Urethramancer/rm16/disassembler"
)

func main() {
	app := &cli.App{
		Name:      "dis",
		Usage:     "disassemble an rm16 binary image",
		ArgsUsage: "<binary.bin>",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.Exit("usage: dis <binary.bin>", 1)
	}

	code, err := os.ReadFile(c.Args().First())
	if err != nil {
		fmt.Fprintf(os.Stderr, "dis: %v\n", err)
		return cli.Exit("", 1)
	}

	text, err := disassembler.Disassemble(code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dis: %v\n", err)
		return cli.Exit("", 1)
	}
	fmt.Print(text)
	return nil
}
