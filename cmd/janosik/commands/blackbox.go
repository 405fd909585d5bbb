package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/janosik-bot/janosik/internal/app/blackbox"
)

// BlackboxCommand answers a blackbox chat message.
type BlackboxCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	message []string
}

// NewBlackboxCommand returns the blackbox command.
func NewBlackboxCommand(rootCmd *RootCommand, app *kingpin.Application) *BlackboxCommand {
	c := &BlackboxCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("blackbox", "Run the program named in a chat message, e.g: blackbox 'sort ```3 1 2```'.")
	c.Cmd.Arg("message", "Chat message: the program name followed by the input in a code block.").Required().StringsVar(&c.message)

	return c
}

func (c BlackboxCommand) Name() string { return c.Cmd.FullCommand() }

func (c BlackboxCommand) Run(ctx context.Context) error {
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

	svc, err := blackbox.NewService(blackbox.ServiceConfig{
		Runner:  runner,
		Catalog: cat,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, blackbox.Request{Message: strings.Join(c.message, " ")})
	if err != nil {
		return fmt.Errorf("could not handle message: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, resp.Text)
	return nil
}
