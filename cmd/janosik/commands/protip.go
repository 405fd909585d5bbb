package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/janosik-bot/janosik/internal/app/protipadd"
	"github.com/janosik-bot/janosik/internal/app/protiplist"
	"github.com/janosik-bot/janosik/internal/app/protipremove"
	"github.com/janosik-bot/janosik/internal/model"
)

// NewProtipCommand returns the parent command of the protip subcommands.
func NewProtipCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("protip", "Manage task protips.")
}

// ProtipAddCommand adds a protip to a task.
type ProtipAddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	task    string
	content []string
}

// NewProtipAddCommand returns the protip add command.
func NewProtipAddCommand(rootCmd *RootCommand, protipCmd *kingpin.CmdClause) *ProtipAddCommand {
	c := &ProtipAddCommand{rootCmd: rootCmd}

	c.Cmd = protipCmd.Command("add", "Add a protip to a task.")
	c.Cmd.Arg("task", "Task name.").Required().StringVar(&c.task)
	c.Cmd.Arg("content", "Protip text.").Required().StringsVar(&c.content)

	return c
}

func (c ProtipAddCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProtipAddCommand) Run(ctx context.Context) error {
	settings, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}
	cat, err := newCatalog(settings)
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := protipadd.NewService(protipadd.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	p, err := svc.Run(ctx, protipadd.Request{
		Task:    c.task,
		Content: strings.Join(c.content, " "),
	})
	if err != nil {
		return fmt.Errorf("could not add protip: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, cat.ProtipAdded(*p))
	return nil
}

// ProtipRmCommand removes a protip.
type ProtipRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewProtipRmCommand returns the protip rm command.
func NewProtipRmCommand(rootCmd *RootCommand, protipCmd *kingpin.CmdClause) *ProtipRmCommand {
	c := &ProtipRmCommand{rootCmd: rootCmd}

	c.Cmd = protipCmd.Command("rm", "Remove a protip.")
	c.Cmd.Arg("id", "Protip number.").Required().StringVar(&c.id)

	return c
}

func (c ProtipRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProtipRmCommand) Run(ctx context.Context) error {
	settings, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}
	cat, err := newCatalog(settings)
	if err != nil {
		return err
	}

	id, err := parseProtipID(c.id)
	if err != nil {
		fmt.Fprintln(c.rootCmd.Stdout, cat.InvalidProtipID())
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := protipremove.NewService(protipremove.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Run(ctx, protipremove.Request{ID: id}); err != nil {
		return fmt.Errorf("could not remove protip: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, cat.ProtipRemoved(id))
	return nil
}

func parseProtipID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid protip id %q: %w", s, model.ErrNotValid)
	}
	return id, nil
}

// ProtipListCommand lists the protips of a task or the tasks with protips.
type ProtipListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	task   string
	format string
}

// NewProtipListCommand returns the protip list command.
func NewProtipListCommand(rootCmd *RootCommand, protipCmd *kingpin.CmdClause) *ProtipListCommand {
	c := &ProtipListCommand{rootCmd: rootCmd}

	c.Cmd = protipCmd.Command("list", "List the protips of a task, or the tasks with protips when no task is given.")
	c.Cmd.Arg("task", "Task name.").StringVar(&c.task)
	c.Cmd.Flag("format", "Output format (table, json, chat).").Default("table").EnumVar(&c.format, "table", "json", "chat")

	return c
}

func (c ProtipListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProtipListCommand) Run(ctx context.Context) error {
	settings, err := c.rootCmd.Settings(ctx)
	if err != nil {
		return err
	}
	cat, err := newCatalog(settings)
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.newRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc, err := protiplist.NewService(protiplist.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, protiplist.Request{Task: c.task})
	if err != nil {
		return fmt.Errorf("could not list protips: %w", err)
	}

	// Chat format renders the same text the bot replies with.
	if c.format == "chat" {
		if resp.Task == "" {
			fmt.Fprint(c.rootCmd.Stdout, withNewline(cat.Tasks(resp.Tasks)))
		} else {
			fmt.Fprint(c.rootCmd.Stdout, withNewline(cat.Protips(resp.Task, resp.Protips)))
		}
		return nil
	}

	p := newPrinter(c.format, c.rootCmd.Stdout)
	if resp.Task == "" {
		err = p.PrintTasks(resp.Tasks)
	} else {
		err = p.PrintProtips(resp.Task, resp.Protips)
	}
	if err != nil {
		return fmt.Errorf("could not print protips: %w", err)
	}

	return nil
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
