package io

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/utils/env"
)

// SettingsYAMLRepository loads the bot settings from YAML files.
type SettingsYAMLRepository struct {
	fs fs.FS
}

// NewSettingsYAMLRepository creates a new YAML settings repository.
func NewSettingsYAMLRepository(filesystem fs.FS) *SettingsYAMLRepository {
	return &SettingsYAMLRepository{fs: filesystem}
}

// GetSettings loads the settings file, merges it over model.DefaultSettings
// and returns the validated result.
func (r *SettingsYAMLRepository) GetSettings(ctx context.Context, path string) (model.Settings, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.Settings{}, fmt.Errorf("reading settings file: %w", err)
	}

	if ctx.Err() != nil {
		return model.Settings{}, ctx.Err()
	}

	var cfg SettingsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.Settings{}, fmt.Errorf("parsing YAML: %w", err)
	}

	settings, err := cfg.toModel(model.DefaultSettings())
	if err != nil {
		return model.Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return model.Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return settings, nil
}

// SettingsConfig represents the YAML structure of the settings file.
type SettingsConfig struct {
	BinDir         string           `yaml:"bin_dir"`
	StagingDir     string           `yaml:"staging_dir"`
	Timeout        string           `yaml:"timeout"`
	MaxOutputBytes int              `yaml:"max_output_bytes"`
	CaptureStderr  *bool            `yaml:"capture_stderr"`
	Programs       []string         `yaml:"programs"`
	Env            []string         `yaml:"env"`
	Language       string           `yaml:"language"`
	Triggers       *[]TriggerConfig `yaml:"triggers"`
}

// TriggerConfig represents the YAML structure of a keyword trigger.
type TriggerConfig struct {
	Name      string   `yaml:"name"`
	Words     []string `yaml:"words"`
	Message   string   `yaml:"message"`
	Frequency *int     `yaml:"frequency"`
}

// toModel overrides the base settings with every field set in the file. A
// present but empty triggers list disables the default triggers.
func (c SettingsConfig) toModel(base model.Settings) (model.Settings, error) {
	s := base

	if c.BinDir != "" {
		s.BinDir = c.BinDir
	}
	if c.StagingDir != "" {
		s.StagingDir = c.StagingDir
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return model.Settings{}, fmt.Errorf("timeout %q: %w", c.Timeout, model.ErrNotValid)
		}
		s.Timeout = d
	}
	if c.MaxOutputBytes != 0 {
		s.MaxOutputBytes = c.MaxOutputBytes
	}
	if c.CaptureStderr != nil {
		s.CaptureStderr = *c.CaptureStderr
	}
	if c.Programs != nil {
		s.Programs = c.Programs
	}
	if c.Env != nil {
		e, err := env.ParseSpecs(c.Env)
		if err != nil {
			return model.Settings{}, fmt.Errorf("env: %w", err)
		}
		s.Env = e
	}
	if c.Language != "" {
		s.Language = c.Language
	}
	if c.Triggers != nil {
		s.Triggers = make([]model.Trigger, 0, len(*c.Triggers))
		for _, t := range *c.Triggers {
			s.Triggers = append(s.Triggers, t.toModel())
		}
	}

	return s, nil
}

func (t TriggerConfig) toModel() model.Trigger {
	freq := 100
	if t.Frequency != nil {
		freq = *t.Frequency
	}

	return model.Trigger{
		Name:      t.Name,
		Words:     t.Words,
		Message:   t.Message,
		Frequency: freq,
	}
}
