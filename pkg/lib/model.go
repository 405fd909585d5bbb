package lib

import (
	"time"

	"github.com/janosik-bot/janosik/internal/model"
)

// StorageType identifies where protips are kept.
type StorageType string

const (
	// StorageSQLite keeps protips in a SQLite database file.
	StorageSQLite StorageType = "sqlite"
	// StorageMemory keeps protips in memory, they are lost on Close.
	StorageMemory StorageType = "memory"
)

// RunError is the error returned by failed runs, its Kind tells why.
type RunError = model.RunError

// FailureKind is the reason a run failed.
type FailureKind = model.FailureKind

const (
	FailureNoInput  = model.FailureNoInput
	FailureTimeout  = model.FailureTimeout
	FailureNotFound = model.FailureNotFound
	FailureNoOutput = model.FailureNoOutput
	FailureCrash    = model.FailureCrash
	FailureOther    = model.FailureOther
)

// RunResult is the outcome of a successful run.
type RunResult struct {
	// RunID is the unique identifier (ULID) of the run.
	RunID   string
	Program string
	// Output is the program standard output, never empty.
	Output string
	// Stderr is the program standard error, only set when [Config].CaptureStderr is enabled.
	Stderr   string
	Duration time.Duration
}

// BlackboxReply is the answer to a chat message.
type BlackboxReply struct {
	// Program and Input are the parsed message.
	Program string
	Input   string
	// Result is set when the run succeeded.
	Result *RunResult
	// Err is the run failure, if any.
	Err error
	// Text is the reply to send back to the chat, it is always set.
	Text string
}

// Protip is a hint attached to a task.
type Protip struct {
	ID        int64
	Task      string
	Content   string
	CreatedAt time.Time
}

// Trigger replies Message to chat messages that contain any of Words, with a
// Frequency percent chance.
type Trigger struct {
	Name      string
	Words     []string
	Message   string
	Frequency int
}

func fromInternalRunResult(r *model.RunResult) *RunResult {
	if r == nil {
		return nil
	}
	return &RunResult{
		RunID:    r.RunID,
		Program:  r.Program,
		Output:   r.Output,
		Stderr:   r.Stderr,
		Duration: r.Duration,
	}
}

func fromInternalProtip(p model.Protip) Protip {
	return Protip{
		ID:        p.ID,
		Task:      p.Task,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

func fromInternalProtipList(ps []model.Protip) []Protip {
	result := make([]Protip, len(ps))
	for i, p := range ps {
		result[i] = fromInternalProtip(p)
	}
	return result
}

func toInternalTriggers(ts []Trigger) []model.Trigger {
	result := make([]model.Trigger, len(ts))
	for i, t := range ts {
		result[i] = model.Trigger{
			Name:      t.Name,
			Words:     t.Words,
			Message:   t.Message,
			Frequency: t.Frequency,
		}
	}
	return result
}
