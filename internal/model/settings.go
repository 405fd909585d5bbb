package model

import (
	"fmt"
	"time"
)

const (
	// DefaultTimeout is the wall-clock deadline of a run.
	DefaultTimeout = 30 * time.Second
	// DefaultLanguage is the language user facing messages are rendered in.
	DefaultLanguage = "pl"
)

// Settings is the static configuration of the bot.
type Settings struct {
	// BinDir is the directory where runnable programs are installed.
	BinDir string
	// StagingDir is where per-run input files are created, empty means the OS temp dir.
	StagingDir string
	Timeout    time.Duration
	// MaxOutputBytes fails runs printing more than this, 0 means no limit.
	MaxOutputBytes int
	CaptureStderr  bool
	// Programs is an optional allowlist of runnable program names.
	Programs []string
	// Env is the environment programs run with, nil inherits the bot one.
	Env      map[string]string
	Language string
	Triggers []Trigger
}

// Trigger is a keyword responder: when any of the words appears in a chat message
// Message is sent back with a Frequency percent chance.
type Trigger struct {
	Name      string
	Words     []string
	Message   string
	Frequency int
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if s.BinDir == "" {
		return fmt.Errorf("bin dir is required: %w", ErrNotValid)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive: %w", ErrNotValid)
	}
	if s.MaxOutputBytes < 0 {
		return fmt.Errorf("max output bytes can't be negative: %w", ErrNotValid)
	}
	for _, p := range s.Programs {
		if err := ValidateProgramName(p, nil); err != nil {
			return fmt.Errorf("invalid allowed program: %w", err)
		}
	}
	for _, t := range s.Triggers {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("trigger %q: %w", t.Name, err)
		}
	}
	return nil
}

// Validate validates the trigger.
func (t *Trigger) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	if len(t.Words) == 0 {
		return fmt.Errorf("at least one word is required: %w", ErrNotValid)
	}
	if t.Message == "" {
		return fmt.Errorf("message is required: %w", ErrNotValid)
	}
	if t.Frequency < 0 {
		return fmt.Errorf("frequency must not be negative: %w", ErrNotValid)
	}
	return nil
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		BinDir:   "bin",
		Timeout:  DefaultTimeout,
		Language: DefaultLanguage,
		Triggers: []Trigger{RODOTrigger()},
	}
}

// RODOTrigger is the trigger the bot ships with.
func RODOTrigger() Trigger {
	return Trigger{
		Name:      "RODO notice",
		Words:     []string{"nagrywa", "nagra", "absurd", "tokarczyk"},
		Frequency: 100,
		Message: `W związku z zapytaniem, informuję, iż problem z nagrywaniem wiąże się z
naruszeniem RODO wobec STUDENTÓW.

Dla mnie (na tę chwilę) jest to o tyle niezrozumiałe (mimo konkretnych
"ściśle prawniczych" argumentów podniesionych przez Panią Tokarczyk), że
nawet gdyby wszyscy studenci PROSILI o nagrywanie zajęć, to zgadzając się
na to, naruszamy RODO.

Absurd!!!
p.niemiec`,
	}
}
