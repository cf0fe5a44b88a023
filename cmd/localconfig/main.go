// localconfig reads, edits and exports INI configuration files.
//
// Usage:
//
//	localconfig [global options] <command> [arguments]
//
// Global options:
//
//	-s, --source         config source, file path or inline text (repeatable)
//	--last               last-priority override file
//	--sep                key/value separator for output (default " = ")
//	--indent             continuation indent for output (default 4)
//	--compact            no blank lines between keys
//	--interpolation      none, basic or extended
//	--verbose            debug logging to stderr
//
// Commands:
//
//	get SECTION KEY          print one value
//	set SECTION KEY VALUE    set a value and save
//	sections                 list sections
//	items SECTION            list keys with values
//	dump                     print the merged configuration
//	template                 print or save a commented-out template
//	export --format F        print as toml or yaml
//
// Exit codes:
//
//	0: success
//	1: command failed
//	2: usage error
//
// Examples:
//
//	localconfig -s app.ini get server port
//	localconfig -s app.ini --last ~/.config/app set server port 9090
//	localconfig -s app.ini -s "[server]\nport = 1" export --format yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// Version is injected at build time with -ldflags "-X main.Version=..."
var Version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args, os.Stdout, os.Stderr))
}

func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "localconfig",
		Usage:     "read, edit and export INI configuration files",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		// inline sources may contain commas
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "config source, file path or inline text (repeatable, merged in order)",
			},
			&cli.StringFlag{
				Name:  "last",
				Usage: "last-priority override file",
			},
			&cli.StringFlag{
				Name:  "sep",
				Usage: "key/value separator for output",
				Value: " = ",
			},
			&cli.IntFlag{
				Name:  "indent",
				Usage: "continuation indent for output",
				Value: 4,
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "no blank lines between keys in output",
			},
			&cli.StringFlag{
				Name:  "interpolation",
				Usage: "reference expansion: none, basic or extended",
				Value: "none",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "debug logging to stderr",
			},
		},
		Commands: createCommands(),
		// run maps errors to exit codes; urfave/cli must not call os.Exit
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(stderr, err)
			}
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)

	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "usage error: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
