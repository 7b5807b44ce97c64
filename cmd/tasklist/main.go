package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/tasklist/internal/cli"
	"github.com/idilsaglam/tasklist/internal/config"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.Usage = cli.PrintHelp
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "tasklist:", err)
		os.Exit(2)
	}

	// Hand the remaining args to the CLI runner.
	code := cli.Run(context.Background(), cfg, fs.Args())
	os.Exit(code)
}
