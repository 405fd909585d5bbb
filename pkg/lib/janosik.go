package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/janosik-bot/janosik/internal/app/blackbox"
	"github.com/janosik-bot/janosik/internal/app/protipadd"
	"github.com/janosik-bot/janosik/internal/app/protiplist"
	"github.com/janosik-bot/janosik/internal/app/protipremove"
	"github.com/janosik-bot/janosik/internal/app/trigger"
	"github.com/janosik-bot/janosik/internal/conventions"
	"github.com/janosik-bot/janosik/internal/locale"
	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/runner/process"
	"github.com/janosik-bot/janosik/internal/storage"
	storageio "github.com/janosik-bot/janosik/internal/storage/io"
	"github.com/janosik-bot/janosik/internal/storage/memory"
	"github.com/janosik-bot/janosik/internal/storage/sqlite"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} runs programs from ./bin with a
// 30s deadline, replies in Polish and keeps protips in ~/.janosik/janosik.db.
type Config struct {
	// DataDir is the base directory for janosik data.
	// Default: ~/.janosik.
	DataDir string

	// Storage selects the protip storage.
	// Default: [StorageSQLite].
	Storage StorageType

	// DBPath is the SQLite database path, only used with [StorageSQLite].
	// Default: <DataDir>/janosik.db.
	DBPath string

	// SettingsPath is an optional YAML settings file. Its values are used as
	// the base, the fields below override them when set.
	SettingsPath string

	// BinDir is the directory programs are resolved from.
	// Default: ./bin.
	BinDir string

	// StagingDir is where run inputs are staged.
	// Default: the OS temp directory.
	StagingDir string

	// Timeout is the wall-clock deadline of a run.
	// Default: 30s.
	Timeout time.Duration

	// MaxOutputBytes fails runs with a bigger output with [ErrOther].
	// Default: 0, no limit.
	MaxOutputBytes int

	// CaptureStderr keeps the program standard error in [RunResult].Stderr
	// instead of discarding it.
	CaptureStderr bool

	// Programs is an optional allowlist of runnable program names.
	Programs []string

	// Env is the environment of the run programs. When nil programs inherit
	// the current process environment, otherwise they only see Env.
	Env map[string]string

	// Language of the rendered replies, "pl" or "en".
	// Default: "pl".
	Language string

	// Triggers replaces the default keyword triggers when not nil.
	Triggers []Trigger

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DataDir = filepath.Join(home, conventions.DefaultDataDir)
	}

	if c.Storage == "" {
		c.Storage = StorageSQLite
	}
	if c.Storage != StorageSQLite && c.Storage != StorageMemory {
		return fmt.Errorf("unsupported storage type: %s: %w", c.Storage, ErrNotValid)
	}

	if c.DBPath == "" {
		c.DBPath = conventions.DBPath(c.DataDir)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// settings returns the settings file values overridden by the config fields.
func (c Config) settings(ctx context.Context) (model.Settings, error) {
	s := model.DefaultSettings()
	if c.SettingsPath != "" {
		path, err := filepath.Abs(c.SettingsPath)
		if err != nil {
			return model.Settings{}, fmt.Errorf("could not resolve settings path: %w", err)
		}
		repo := storageio.NewSettingsYAMLRepository(os.DirFS(filepath.Dir(path)))
		s, err = repo.GetSettings(ctx, filepath.Base(path))
		if err != nil {
			return model.Settings{}, err
		}
	}

	if c.BinDir != "" {
		s.BinDir = c.BinDir
	}
	if c.StagingDir != "" {
		s.StagingDir = c.StagingDir
	}
	if c.Timeout != 0 {
		s.Timeout = c.Timeout
	}
	if c.MaxOutputBytes != 0 {
		s.MaxOutputBytes = c.MaxOutputBytes
	}
	if c.CaptureStderr {
		s.CaptureStderr = true
	}
	if c.Programs != nil {
		s.Programs = c.Programs
	}
	if c.Env != nil {
		s.Env = c.Env
	}
	if c.Language != "" {
		s.Language = c.Language
	}
	if c.Triggers != nil {
		s.Triggers = toInternalTriggers(c.Triggers)
	}

	if err := s.Validate(); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

// Client is the main SDK entry point.
//
// Create a Client with [New] and release its resources with [Client.Close].
// A Client is safe for concurrent use.
type Client struct {
	runner       *process.Runner
	blackbox     *blackbox.Service
	trigger      *trigger.Service
	protipAdd    *protipadd.Service
	protipRemove *protipremove.Service
	protipList   *protiplist.Service
	logger       log.Logger
	closeFn      func() error
}

// New creates a new SDK client.
//
// The caller must call [Client.Close] when done to release the database
// connection. Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	settings, err := cfg.settings(ctx)
	if err != nil {
		return nil, mapError(fmt.Errorf("invalid settings: %w", err))
	}

	cat, err := locale.New(settings.Language)
	if err != nil {
		return nil, mapError(err)
	}

	runner, err := process.NewRunner(process.RunnerConfig{
		BinDir:         settings.BinDir,
		StagingDir:     settings.StagingDir,
		Timeout:        settings.Timeout,
		MaxOutputBytes: settings.MaxOutputBytes,
		CaptureStderr:  settings.CaptureStderr,
		Programs:       settings.Programs,
		Env:            settings.Env,
		Logger:         cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create runner: %w", err)
	}

	repo, closeFn, err := newRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{runner: runner, logger: cfg.Logger, closeFn: closeFn}
	if err := c.setupServices(repo, cat, settings); err != nil {
		_ = closeFn()
		return nil, err
	}

	return c, nil
}

func newRepository(ctx context.Context, cfg Config) (storage.ProtipRepository, func() error, error) {
	switch cfg.Storage {
	case StorageMemory:
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create repository: %w", err)
		}
		return repo, func() error { return nil }, nil
	default:
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: cfg.DBPath,
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create repository: %w", err)
		}
		return repo, repo.Close, nil
	}
}

func (c *Client) setupServices(repo storage.ProtipRepository, cat *locale.Catalog, settings model.Settings) (err error) {
	c.blackbox, err = blackbox.NewService(blackbox.ServiceConfig{Runner: c.runner, Catalog: cat, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create blackbox service: %w", err)
	}
	c.trigger, err = trigger.NewService(trigger.ServiceConfig{Triggers: settings.Triggers, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create trigger service: %w", err)
	}
	c.protipAdd, err = protipadd.NewService(protipadd.ServiceConfig{Repository: repo, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create protip add service: %w", err)
	}
	c.protipRemove, err = protipremove.NewService(protipremove.ServiceConfig{Repository: repo, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create protip remove service: %w", err)
	}
	c.protipList, err = protiplist.NewService(protiplist.ServiceConfig{Repository: repo, Logger: c.logger})
	if err != nil {
		return fmt.Errorf("could not create protip list service: %w", err)
	}
	return nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}
