package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pglens/pglens"
	"github.com/pglens/pglens/cli"
)

var commands struct {
	Config  string `help:"Path to the configuration file" default:"pglens.yaml"`
	Verbose bool   `help:"Print progress details" short:"v"`
	NoColor bool   `help:"Disable colored output"`

	Lint  cli.LintCmd  `cmd:"" help:"Run lint rules over SQL files"`
	Hover cli.HoverCmd `cmd:"" help:"Describe the entity at a byte offset"`
	Parse cli.ParseCmd `cmd:"" help:"Parse a file and report syntax errors"`
}

func main() {
	ctx := kong.Parse(&commands,
		kong.Name("pglens"),
		kong.Description("PostgreSQL SQL analysis toolkit: lossless parsing, name resolution, lint."),
		kong.UsageOnError(),
	)

	err := ctx.Run(&cli.Context{
		Config:  commands.Config,
		Verbose: commands.Verbose,
		NoColor: commands.NoColor,
	})
	if err != nil {
		if errors.Is(err, pglens.ErrViolationsFound) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "pglens:", err)
		os.Exit(2)
	}
}
