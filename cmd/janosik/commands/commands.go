package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/janosik-bot/janosik/internal/conventions"
	"github.com/janosik-bot/janosik/internal/locale"
	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/printer"
	"github.com/janosik-bot/janosik/internal/runner/process"
	storageio "github.com/janosik-bot/janosik/internal/storage/io"
	"github.com/janosik-bot/janosik/internal/storage/sqlite"
	"github.com/janosik-bot/janosik/internal/utils/env"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	DBPath     string
	ConfigPath string
	BinDir     string
	Timeout    time.Duration
	Language   string
	Env        []string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	dataDir := filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir)
	app.Flag("db-path", "Path to the SQLite protip database file.").Envar("JANOSIK_DB_PATH").Default(conventions.DBPath(dataDir)).StringVar(&c.DBPath)
	app.Flag("config", "Path to the YAML settings file.").Envar("JANOSIK_CONFIG").StringVar(&c.ConfigPath)
	app.Flag("bin-dir", "Directory where runnable programs are installed (overrides settings).").Envar("JANOSIK_BIN_DIR").StringVar(&c.BinDir)
	app.Flag("timeout", "Wall-clock deadline of a program run (overrides settings).").Envar("JANOSIK_TIMEOUT").DurationVar(&c.Timeout)
	app.Flag("lang", "Language of the rendered messages (overrides settings).").Envar("JANOSIK_LANG").EnumVar(&c.Language, locale.Languages()...)
	app.Flag("env", "Program environment variables (KEY=VALUE or KEY from current environment), once set programs only see these. Can be repeated.").Short('e').StringsVar(&c.Env)

	return c
}

// Settings returns the settings file values (or the defaults when there is no
// file) with the global flags applied on top.
func (r *RootCommand) Settings(ctx context.Context) (model.Settings, error) {
	settings := model.DefaultSettings()
	if r.ConfigPath != "" {
		path, err := filepath.Abs(r.ConfigPath)
		if err != nil {
			return model.Settings{}, fmt.Errorf("could not resolve settings path: %w", err)
		}

		repo := storageio.NewSettingsYAMLRepository(os.DirFS(filepath.Dir(path)))
		settings, err = repo.GetSettings(ctx, filepath.Base(path))
		if err != nil {
			return model.Settings{}, fmt.Errorf("could not load settings: %w", err)
		}
	}

	if r.BinDir != "" {
		settings.BinDir = r.BinDir
	}
	if r.Timeout != 0 {
		settings.Timeout = r.Timeout
	}
	if r.Language != "" {
		settings.Language = r.Language
	}
	if len(r.Env) > 0 {
		e, err := env.ParseSpecs(r.Env)
		if err != nil {
			return model.Settings{}, fmt.Errorf("invalid env flag: %w", err)
		}
		settings.Env = env.Merge(settings.Env, e)
	}

	if err := settings.Validate(); err != nil {
		return model.Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

// newRunner returns the process runner for the settings.
func (r *RootCommand) newRunner(settings model.Settings) (*process.Runner, error) {
	run, err := process.NewRunner(process.RunnerConfig{
		BinDir:         settings.BinDir,
		StagingDir:     settings.StagingDir,
		Timeout:        settings.Timeout,
		MaxOutputBytes: settings.MaxOutputBytes,
		CaptureStderr:  settings.CaptureStderr,
		Programs:       settings.Programs,
		Env:            settings.Env,
		Logger:         r.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create runner: %w", err)
	}
	return run, nil
}

// newRepository opens the SQLite protip repository.
func (r *RootCommand) newRepository(ctx context.Context) (*sqlite.Repository, error) {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: r.DBPath,
		Logger: r.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}
	return repo, nil
}

// newCatalog returns the message catalog of the settings language.
func newCatalog(settings model.Settings) (*locale.Catalog, error) {
	cat, err := locale.New(settings.Language)
	if err != nil {
		return nil, fmt.Errorf("could not load messages: %w", err)
	}
	return cat, nil
}

func newPrinter(format string, w io.Writer) printer.Printer {
	switch format {
	case "json":
		return printer.NewJSONPrinter(w)
	default:
		return printer.NewTablePrinter(w)
	}
}
