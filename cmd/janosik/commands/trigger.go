package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/janosik-bot/janosik/internal/app/trigger"
)

// TriggerCommand checks a chat message against the keyword triggers.
type TriggerCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	text []string
}

// NewTriggerCommand returns the trigger command.
func NewTriggerCommand(rootCmd *RootCommand, app *kingpin.Application) *TriggerCommand {
	c := &TriggerCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("trigger", "Print the replies of the keyword triggers a chat message fires.")
	c.Cmd.Arg("text", "Chat message.").Required().StringsVar(&c.text)

	return c
}

func (c TriggerCommand) Name() string { return c.Cmd.FullCommand() }

func (c TriggerCommand) Run(ctx context.Context) error {
	settings, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}

	svc, err := trigger.NewService(trigger.ServiceConfig{
		Triggers: settings.Triggers,
		Logger:   c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, trigger.Request{Text: strings.Join(c.text, " ")})
	if err != nil {
		return fmt.Errorf("could not check triggers: %w", err)
	}

	for _, msg := range resp.Messages() {
		fmt.Fprintln(c.rootCmd.Stdout, msg)
	}
	return nil
}
