package janosik

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/janosik-bot/janosik/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "janosik"
	}

	// go test changes the CWD to the test package directory.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("JANOSIK_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("janosik binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "JANOSIK_INTEGRATION"
		envBinary     = "JANOSIK_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary: os.Getenv(envBinary),
	}

	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// Env is an isolated janosik environment: a data dir with its database and
// a bin dir with the runnable programs.
type Env struct {
	DBPath string
	BinDir string
}

// NewEnv creates an isolated environment with the given programs installed
// as shell scripts.
func NewEnv(t *testing.T, programs map[string]string) Env {
	t.Helper()

	e := Env{
		DBPath: filepath.Join(t.TempDir(), "janosik.db"),
		BinDir: t.TempDir(),
	}
	for name, script := range programs {
		err := os.WriteFile(filepath.Join(e.BinDir, name), []byte("#!/bin/sh\n"+script+"\n"), 0o755)
		require.NoError(t, err)
	}

	return e
}

// RunJanosikCmd runs a janosik command inside the environment. Logging is
// suppressed for cleaner output.
func RunJanosikCmd(ctx context.Context, config Config, env Env, stdin string, args ...string) (stdout, stderr []byte, err error) {
	fullArgs := append([]string{"--db-path", env.DBPath, "--bin-dir", env.BinDir, "--lang", "en"}, args...)
	return testutils.RunJanosikArgs(ctx, nil, config.Binary, fullArgs, stdin, true)
}

// RunProgram runs a program with the input from a flag.
func RunProgram(ctx context.Context, config Config, env Env, program, input string, extraArgs ...string) (stdout, stderr []byte, err error) {
	args := append([]string{"run", program, "--input", input}, extraArgs...)
	return RunJanosikCmd(ctx, config, env, "", args...)
}

// RunBlackbox answers a chat message.
func RunBlackbox(ctx context.Context, config Config, env Env, message string) (stdout, stderr []byte, err error) {
	return RunJanosikCmd(ctx, config, env, "", "blackbox", message)
}

// RunProtipAdd adds a protip.
func RunProtipAdd(ctx context.Context, config Config, env Env, task, content string) (stdout, stderr []byte, err error) {
	return RunJanosikCmd(ctx, config, env, "", "protip", "add", task, content)
}

// RunProtipRm removes a protip.
func RunProtipRm(ctx context.Context, config Config, env Env, id string) (stdout, stderr []byte, err error) {
	return RunJanosikCmd(ctx, config, env, "", "protip", "rm", id)
}

// RunProtipList lists the protips of a task in JSON format.
func RunProtipList(ctx context.Context, config Config, env Env, task string) (stdout, stderr []byte, err error) {
	return RunJanosikCmd(ctx, config, env, "", "protip", "list", task, "--format", "json")
}
