package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"

	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/printer"
)

// RunCommand runs an installed program with an input.
type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	program  string
	input    string
	hasInput bool
	format   string
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Run an installed program, the input is read from stdin unless --input is set.")
	c.Cmd.Arg("program", "Program name inside the bin directory.").Required().StringVar(&c.program)
	c.Cmd.Flag("input", "Program input.").IsSetByUser(&c.hasInput).StringVar(&c.input)
	c.Cmd.Flag("format", "Output format (text, json).").Default("text").EnumVar(&c.format, "text", "json")

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	settings, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}
	cat, err := newCatalog(settings)
	if err != nil {
		return err
	}
	runner, err := c.rootCmd.newRunner(settings)
	if err != nil {
		return err
	}

	input := c.input
	if !c.hasInput {
		data, err := io.ReadAll(c.rootCmd.Stdin)
		if err != nil {
			return fmt.Errorf("could not read input: %w", err)
		}
		input = string(data)
	}

	p := newPrinter(c.format, c.rootCmd.Stdout)

	res, err := runner.Run(ctx, model.RunRequest{Program: c.program, Input: input})
	if err != nil {
		if perr := p.PrintRunFailure(c.program, err, cat.RunMessage(c.program, err)); perr != nil {
			return fmt.Errorf("could not print run failure: %w", perr)
		}
		return fmt.Errorf("run failed: %w", err)
	}

	logger.WithValues(log.Kv{"run-id": res.RunID}).Debugf("Program printed %s", printer.FormatBytes(int64(len(res.Output))))
	if err := p.PrintRun(*res); err != nil {
		return fmt.Errorf("could not print run: %w", err)
	}
	if c.format == "text" && res.Stderr != "" {
		fmt.Fprint(c.rootCmd.Stderr, res.Stderr)
	}

	return nil
}
