package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/janosik-bot/janosik/cmd/janosik/commands"
	"github.com/janosik-bot/janosik/internal/log"
	loglogrus "github.com/janosik-bot/janosik/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// registerCommands registers every janosik command on the app and returns them
// by their full name, with the names of the ones printing machine readable output.
func registerCommands(app *kingpin.Application, rootCmd *commands.RootCommand) (cmds map[string]commands.Command, quiet map[string]bool) {
	runCmd := commands.NewRunCommand(rootCmd, app)
	blackboxCmd := commands.NewBlackboxCommand(rootCmd, app)
	triggerCmd := commands.NewTriggerCommand(rootCmd, app)
	protipCmd := commands.NewProtipCommand(app)
	protipAddCmd := commands.NewProtipAddCommand(rootCmd, protipCmd)
	protipRmCmd := commands.NewProtipRmCommand(rootCmd, protipCmd)
	protipListCmd := commands.NewProtipListCommand(rootCmd, protipCmd)

	cmds = map[string]commands.Command{}
	for _, c := range []commands.Command{runCmd, blackboxCmd, triggerCmd, protipAddCmd, protipRmCmd, protipListCmd} {
		cmds[c.Name()] = c
	}

	return cmds, map[string]bool{protipListCmd.Name(): true}
}

// Run runs janosik with the given arguments and standard streams.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := kingpin.New("janosik", "Runs installed judge programs against chat inputs and keeps task protips.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)
	cmds, quiet := registerCommands(app, rootCmd)

	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Listings are piped to other tools, keep logs out unless debugging.
	if quiet[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}
	rootCmd.Logger = newLogger(*rootCmd)

	var g run.Group

	// Stop on SIGINT/SIGTERM, a running program is killed through the command context.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// The selected command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				if err := cmds[cmdName].Run(ctx); err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// newLogger returns a logrus backed logger writing to the command stderr, stdout
// is reserved for replies and program output.
func newLogger(config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	l := logrus.New()
	l.Out = config.Stderr
	if config.Debug {
		l.SetLevel(logrus.DebugLevel)
	}

	switch config.LoggerType {
	case commands.LoggerTypeJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	}

	logger := loglogrus.NewLogrus(logrus.NewEntry(l)).WithValues(log.Kv{
		"app":     "janosik",
		"version": Version,
	})
	logger.Debugf("Debug logging enabled")

	return logger
}

func main() {
	if err := Run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
