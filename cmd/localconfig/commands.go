package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lixenwraith/localconfig"
	"github.com/urfave/cli/v3"
)

// usageError marks invalid arguments, mapped to exit code 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func newUsageError(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func createCommands() []*cli.Command {
	return []*cli.Command{
		createGetCommand(),
		createSetCommand(),
		createSectionsCommand(),
		createItemsCommand(),
		createDumpCommand(),
		createTemplateCommand(),
		createExportCommand(),
	}
}

func createGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "print one value",
		ArgsUsage: "SECTION KEY",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return newUsageError("get requires SECTION and KEY")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			v, err := cfg.Lookup(cmd.Args().Get(0), cmd.Args().Get(1))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, localconfig.Render(v))
			return nil
		},
	}
}

func createSetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "set a value and save to --out or the last source",
		ArgsUsage: "SECTION KEY VALUE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "comment",
				Usage: "comment written above the key",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "target file (default: last source)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 3 {
				return newUsageError("set requires SECTION, KEY and VALUE")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			section, key, value := cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2)
			if !cfg.HasSection(section) {
				if err := cfg.AddSection(section); err != nil {
					return err
				}
			}
			if err := cfg.SetWithComment(section, key, value, cmd.String("comment")); err != nil {
				return err
			}
			if err := cfg.Save(cmd.String("out")); err != nil {
				if errors.Is(err, localconfig.ErrNoTarget) {
					return newUsageError("set needs --out or --last")
				}
				return err
			}
			return nil
		},
	}
}

func createSectionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sections",
		Usage: "list sections",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			for _, name := range cfg.Sections() {
				fmt.Fprintln(cmd.Root().Writer, name)
			}
			return nil
		},
	}
}

func createItemsCommand() *cli.Command {
	return &cli.Command{
		Name:      "items",
		Usage:     "list keys of a section, inherited defaults included",
		ArgsUsage: "SECTION",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return newUsageError("items requires SECTION")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			items, err := cfg.Items(cmd.Args().First())
			if err != nil {
				return err
			}
			for _, it := range items {
				fmt.Fprintf(cmd.Root().Writer, "%s%s%s\n", it.Key, cfg.Options().KVSeparator, localconfig.Render(it.Value))
			}
			return nil
		},
	}
}

func createDumpCommand() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "print the merged configuration",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			_, err = cfg.WriteTo(cmd.Root().Writer)
			return err
		},
	}
}

func createTemplateCommand() *cli.Command {
	return &cli.Command{
		Name:  "template",
		Usage: "print or save the configuration with every line commented out",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "target file (default: stdout)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if out := cmd.String("out"); out != "" {
				return cfg.SaveTemplate(out)
			}
			text, err := cfg.ToText()
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.Root().Writer, localconfig.Template(text))
			return err
		},
	}
}

func createExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "print the configuration as toml or yaml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "toml or yaml",
				Value:   "toml",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			var data []byte
			switch format := strings.ToLower(cmd.String("format")); format {
			case "toml":
				data, err = cfg.MarshalTOML()
			case "yaml", "yml":
				data, err = cfg.MarshalYAML()
			default:
				return newUsageError("unknown export format %q", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.Root().Writer.Write(data)
			return err
		},
	}
}

// loadConfig builds the Config from the global flags and loads it.
// Missing source files are logged and skipped.
func loadConfig(cmd *cli.Command) (*localconfig.Config, error) {
	interp, err := parseInterpolation(cmd.String("interpolation"))
	if err != nil {
		return nil, err
	}

	b := localconfig.NewBuilder().
		WithLogger(newLogger(cmd)).
		WithLastSource(cmd.String("last")).
		WithSeparator(cmd.String("sep")).
		WithIndent(cmd.Int("indent")).
		WithInterpolation(interp)
	if cmd.Bool("compact") {
		b = b.WithCompactForm()
	}
	for _, s := range cmd.StringSlice("source") {
		b = b.WithSources(localconfig.Detect(unescapeNewlines(s)))
	}

	cfg, err := b.Build()
	if err != nil && !errors.Is(err, localconfig.ErrSourceUnavailable) {
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(cmd.Root().ErrWriter, "warning: %v\n", err)
	}
	return cfg, nil
}

func parseInterpolation(name string) (localconfig.Interpolator, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return nil, nil
	case "basic":
		return localconfig.BasicInterpolation{}, nil
	case "extended":
		return localconfig.ExtendedInterpolation{}, nil
	default:
		return nil, newUsageError("unknown interpolation %q", name)
	}
}

func newLogger(cmd *cli.Command) *slog.Logger {
	if !cmd.Bool("verbose") {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// unescapeNewlines lets inline sources be passed as one shell word.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
