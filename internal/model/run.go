package model

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"time"
)

// RunRequest is a single program run: the program identifier and the text fed as
// its standard input.
type RunRequest struct {
	// Program is the identifier of an installed executable, resolved as <bin-dir>/<Program>.
	Program string
	// Input is written verbatim to the program standard input. It must not be empty.
	Input string
}

// RunResult is the successful outcome of a run.
type RunResult struct {
	RunID   string
	Program string
	// Output is the captured standard output, never empty on a successful run.
	Output string
	// Stderr is only filled when standard error capture is enabled.
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// FailureKind is the closed set of reasons a run can fail.
type FailureKind int

const (
	FailureNoInput FailureKind = iota + 1
	FailureTimeout
	FailureNotFound
	FailureNoOutput
	FailureCrash
	FailureOther
)

func (k FailureKind) String() string {
	switch k {
	case FailureNoInput:
		return "no_input"
	case FailureTimeout:
		return "timeout"
	case FailureNotFound:
		return "not_found"
	case FailureNoOutput:
		return "no_output"
	case FailureCrash:
		return "crash"
	case FailureOther:
		return "other"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// RunError is the failed outcome of a run.
type RunError struct {
	Kind    FailureKind
	Program string
	// Message describes FailureOther failures.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *RunError) Error() string {
	msg := e.Kind.String()
	if e.Program != "" {
		msg = fmt.Sprintf("program %q: %s", e.Program, msg)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e *RunError) Unwrap() error { return e.Err }

// Is matches any other RunError of the same kind, so the kind sentinels can be
// used with errors.Is.
func (e *RunError) Is(target error) bool {
	t, ok := target.(*RunError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	// ErrNoInput matches runs rejected because the input was empty.
	ErrNoInput = &RunError{Kind: FailureNoInput}
	// ErrTimeout matches runs killed after the deadline.
	ErrTimeout = &RunError{Kind: FailureTimeout}
	// ErrProgramNotFound matches runs whose program could not be resolved or spawned.
	ErrProgramNotFound = &RunError{Kind: FailureNotFound}
	// ErrNoOutput matches runs that exited cleanly without writing to standard output.
	ErrNoOutput = &RunError{Kind: FailureNoOutput}
	// ErrCrash matches runs that exited with a non-zero status or were killed by a signal.
	ErrCrash = &RunError{Kind: FailureCrash}
	// ErrOther matches runs that failed on any other I/O or lifecycle problem.
	ErrOther = &RunError{Kind: FailureOther}
)

// FailureKindOf returns the failure kind of a run error chain.
func FailureKindOf(err error) (FailureKind, bool) {
	var runErr *RunError
	if !errors.As(err, &runErr) {
		return 0, false
	}
	return runErr.Kind, true
}

var programNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.+-]*$`)

// ValidateProgramName checks that name is safe to be joined to the binary directory
// and, when allowed is not empty, that it is one of the allowed programs.
func ValidateProgramName(name string, allowed []string) error {
	if name == "" {
		return fmt.Errorf("program name is required: %w", ErrNotValid)
	}
	if name == "." || name == ".." || !programNameRegexp.MatchString(name) {
		return fmt.Errorf("program name %q has invalid characters: %w", name, ErrNotValid)
	}
	if len(allowed) > 0 && !slices.Contains(allowed, name) {
		return fmt.Errorf("program %q is not allowed: %w", name, ErrNotValid)
	}
	return nil
}
