// Package process runs programs installed in a binary directory as OS processes,
// feeding the input through a per-run staging file and enforcing a wall-clock deadline.
package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/janosik-bot/janosik/internal/log"
	"github.com/janosik-bot/janosik/internal/model"
	"github.com/janosik-bot/janosik/internal/utils/env"
)

// RunnerConfig is the configuration for the process runner.
type RunnerConfig struct {
	// BinDir is the directory programs are resolved from.
	BinDir string
	// StagingDir is where input files are staged, empty uses the OS temp dir.
	StagingDir string
	// Timeout is the wall-clock deadline of a run.
	Timeout time.Duration
	// WaitDelay bounds how long output pipes are drained after the program exits or is killed.
	WaitDelay time.Duration
	// MaxOutputBytes fails runs whose standard output is bigger, 0 means no limit.
	// Captured standard error is silently cut at the same size.
	MaxOutputBytes int
	// CaptureStderr keeps standard error apart from the output instead of discarding it.
	CaptureStderr bool
	// Programs is an optional allowlist of program names.
	Programs []string
	// Env is the environment of the programs, nil inherits the current process one.
	Env    map[string]string
	Logger log.Logger
}

func (c *RunnerConfig) defaults() error {
	if c.BinDir == "" {
		return fmt.Errorf("bin dir is required")
	}
	// Absolute so a program name is never looked up in PATH.
	binDir, err := filepath.Abs(c.BinDir)
	if err != nil {
		return fmt.Errorf("could not resolve bin dir: %w", err)
	}
	c.BinDir = binDir

	if c.Timeout == 0 {
		c.Timeout = model.DefaultTimeout
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.WaitDelay == 0 {
		c.WaitDelay = 2 * time.Second
	}
	if c.MaxOutputBytes < 0 {
		return fmt.Errorf("max output bytes can't be negative")
	}
	for _, p := range c.Programs {
		if err := model.ValidateProgramName(p, nil); err != nil {
			return fmt.Errorf("invalid allowed program: %w", err)
		}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "runner.Process"})
	return nil
}

// Runner runs programs as local OS processes. It keeps no state between runs
// and is safe for concurrent use.
type Runner struct {
	binDir        string
	stagingDir    string
	timeout       time.Duration
	waitDelay     time.Duration
	maxOutput     int
	captureStderr bool
	programs      []string
	env           []string
	logger        log.Logger

	kill func(cmd *exec.Cmd) error
}

// NewRunner returns a new process runner.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Runner{
		binDir:        cfg.BinDir,
		stagingDir:    cfg.StagingDir,
		timeout:       cfg.Timeout,
		waitDelay:     cfg.WaitDelay,
		maxOutput:     cfg.MaxOutputBytes,
		captureStderr: cfg.CaptureStderr,
		programs:      cfg.Programs,
		env:           environ(cfg.Env),
		logger:        cfg.Logger,
		kill:          killProcess,
	}, nil
}

func environ(e map[string]string) []string {
	if e == nil {
		return nil
	}
	return env.Environ(e)
}

// Run runs the requested program with the request input as its standard input.
func (r *Runner) Run(ctx context.Context, req model.RunRequest) (*model.RunResult, error) {
	// Nothing is touched on disk nor spawned for an empty input.
	if req.Input == "" {
		return nil, &model.RunError{Kind: model.FailureNoInput, Program: req.Program}
	}

	if err := model.ValidateProgramName(req.Program, r.programs); err != nil {
		r.logger.Warningf("Rejected program name %q: %s", req.Program, err)
		return nil, &model.RunError{Kind: model.FailureNotFound, Program: req.Program, Err: err}
	}

	runID := ulid.Make().String()
	logger := r.logger.WithValues(log.Kv{"run-id": runID, "program": req.Program})

	stdin, cleanup, err := r.stageInput(runID, req)
	if err != nil {
		logger.Errorf("Could not stage input: %s", err)
		return nil, err
	}
	defer cleanup()

	stdout := newLimitedBuffer(r.maxOutput)
	stderr := newLimitedBuffer(r.maxOutput)

	cmd := exec.Command(filepath.Join(r.binDir, req.Program))
	cmd.Env = r.env
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	if r.captureStderr {
		cmd.Stderr = stderr
	}
	cmd.WaitDelay = r.waitDelay
	setProcessGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		logger.Warningf("Could not start program: %s", err)
		return nil, &model.RunError{Kind: model.FailureNotFound, Program: req.Program, Err: err}
	}
	logger.Infof("Program started")

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	var waitErr error
	select {
	case waitErr = <-done:
		// The program is reaped but whatever it left in its group is not.
		if err := r.kill(cmd); err != nil {
			logger.Warningf("Could not kill program leftovers: %s", err)
		}
	case <-timer.C:
		if err := r.kill(cmd); err != nil {
			// The process may still be alive so don't receive from done, the Wait
			// goroutine is left behind until the program exits.
			logger.Errorf("Could not kill timed out program: %s", err)
			return nil, &model.RunError{Kind: model.FailureOther, Program: req.Program, Message: "could not kill timed out program", Err: err}
		}
		<-done
		logger.Warningf("Program killed after %s", r.timeout)
		return nil, &model.RunError{Kind: model.FailureTimeout, Program: req.Program}
	case <-ctx.Done():
		if err := r.kill(cmd); err != nil {
			// Same as the timeout, the Wait goroutine is left behind.
			logger.Errorf("Could not kill cancelled program: %s", err)
			return nil, &model.RunError{Kind: model.FailureOther, Program: req.Program, Message: "could not kill cancelled program", Err: err}
		}
		<-done
		return nil, &model.RunError{Kind: model.FailureOther, Program: req.Program, Message: "run cancelled", Err: ctx.Err()}
	}
	duration := time.Since(start)

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			logger.Errorf("Program crashed with exit code %d", exitErr.ExitCode())
			if r.captureStderr && stderr.Len() > 0 {
				logger.Debugf("Crashed program stderr: %s", stderr.String())
			}
			return nil, &model.RunError{Kind: model.FailureCrash, Program: req.Program, Err: waitErr}
		}

		// Exited cleanly but the output could not be fully drained (e.g. ErrWaitDelay
		// when a background child kept the pipe open, already killed above).
		logger.Errorf("Could not capture program output: %s", waitErr)
		return nil, &model.RunError{Kind: model.FailureOther, Program: req.Program, Message: "could not capture standard output", Err: waitErr}
	}
	logger.Infof("Program returned 0 in %s", duration)

	if stdout.Len() == 0 {
		return nil, &model.RunError{Kind: model.FailureNoOutput, Program: req.Program}
	}
	if stdout.Truncated() {
		logger.Warningf("Program output exceeded %d bytes", r.maxOutput)
		return nil, &model.RunError{Kind: model.FailureOther, Program: req.Program, Message: "output too large"}
	}

	result := &model.RunResult{
		RunID:    runID,
		Program:  req.Program,
		Output:   stdout.String(),
		ExitCode: 0,
		Duration: duration,
	}
	if r.captureStderr {
		result.Stderr = stderr.String()
	}

	return result, nil
}
