package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/cellpatch/core"
	"github.com/sonnes/cellpatch/processor"
	"github.com/urfave/cli/v3"
)

const usage = "<input_file> <output_file> <change1> <change2> ... <changeN>"

func main() {
	if err := newRoot().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newRoot() *cli.Command {
	a := newApp()
	exts := a.extensions()
	slices.Sort(exts)

	return &cli.Command{
		Name:      "cellpatch",
		Usage:     "Apply x,y,value cell edits to a file and save the result",
		ArgsUsage: usage,
		Description: `Each change is an "x,y,value" triple: column x of row y is replaced
with value. Rows are lines of text, CSV records, or top-level elements
of a JSON array or pickle.

Supported extensions: ` + strings.Join(exts, ", "),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log",
				Usage:   "Log level: debug, info, warn, error",
				Value:   "error",
				Sources: cli.EnvVars("CELLPATCH_LOG"),
			},
			&cli.StringFlag{
				Name:    "encoding",
				Usage:   "Text encoding of csv, json and txt files: " + strings.Join(processor.EncodingNames(), ", "),
				Value:   processor.DefaultEncoding,
				Sources: cli.EnvVars("CELLPATCH_ENCODING"),
			},
			&cli.StringFlag{
				Name:  "delimiter",
				Usage: "CSV field delimiter",
				Value: ",",
			},
			&cli.BoolFlag{
				Name:  "indent",
				Usage: "Pretty-print JSON output",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Do not print the modified data",
			},
			&cli.BoolFlag{
				Name:  "grid",
				Usage: "Also print CSV data as a table with x,y coordinates",
			},
			&cli.StringFlag{
				Name:    "color",
				Usage:   "Colorize output: auto, always, never",
				Value:   "auto",
				Sources: cli.EnvVars("CELLPATCH_COLOR"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			j, err := newJob(cmd)
			if err != nil {
				return err
			}
			return a.run(os.Stdout, j)
		},
	}
}

// newJob builds a job from positional arguments and flags.
func newJob(cmd *cli.Command) (job, error) {
	args := cmd.Args().Slice()
	if len(args) < 3 {
		return job{}, fmt.Errorf("%w: %s %s", core.ErrUsage, cmd.Name, usage)
	}

	enc, err := processor.LookupEncoding(cmd.String("encoding"))
	if err != nil {
		return job{}, err
	}

	delim := cmd.String("delimiter")
	comma, size := utf8.DecodeRuneInString(delim)
	if size == 0 || size != len(delim) {
		return job{}, fmt.Errorf("delimiter must be a single character, got %q", delim)
	}

	color, err := colorEnabled(cmd.String("color"))
	if err != nil {
		return job{}, err
	}

	return job{
		input:   args[0],
		output:  args[1],
		changes: args[2:],
		opts: options{
			encoding: enc,
			comma:    comma,
			indent:   cmd.Bool("indent"),
		},
		quiet: cmd.Bool("quiet"),
		color: color,
		grid:  cmd.Bool("grid"),
	}, nil
}

func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		return term.IsTerminal(os.Stdout.Fd()), nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}
