package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/janosik-bot/janosik/internal/model"
)

// JSONPrinter prints run results and protips in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type runOutput struct {
	RunID      string `json:"run_id"`
	Program    string `json:"program"`
	Output     string `json:"output"`
	Stderr     string `json:"stderr,omitempty"`
	ExitCode   int    `json:"exit_code"`
	DurationMS int64  `json:"duration_ms"`
}

type runFailureOutput struct {
	Program string `json:"program"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type protipItem struct {
	ID        int64     `json:"id"`
	Task      string    `json:"task"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type tasksOutput struct {
	Tasks []string `json:"tasks"`
}

type messageOutput struct {
	Message string `json:"message"`
}

// PrintRun prints a successful run.
func (j *JSONPrinter) PrintRun(res model.RunResult) error {
	return j.encode(runOutput{
		RunID:      res.RunID,
		Program:    res.Program,
		Output:     res.Output,
		Stderr:     res.Stderr,
		ExitCode:   res.ExitCode,
		DurationMS: res.Duration.Milliseconds(),
	})
}

// PrintRunFailure prints a failed run with its failure kind.
func (j *JSONPrinter) PrintRunFailure(program string, err error, msg string) error {
	kind := model.FailureOther
	if k, ok := model.FailureKindOf(err); ok {
		kind = k
	}

	return j.encode(runFailureOutput{
		Program: program,
		Error:   kind.String(),
		Message: msg,
	})
}

// PrintProtips prints the protips of a task.
func (j *JSONPrinter) PrintProtips(task string, protips []model.Protip) error {
	items := make([]protipItem, len(protips))
	for i, p := range protips {
		items[i] = protipItem{
			ID:        p.ID,
			Task:      p.Task,
			Content:   p.Content,
			CreatedAt: p.CreatedAt.UTC(),
		}
	}

	return j.encode(items)
}

// PrintTasks prints the tasks that have protips.
func (j *JSONPrinter) PrintTasks(tasks []string) error {
	if tasks == nil {
		tasks = []string{}
	}
	return j.encode(tasksOutput{Tasks: tasks})
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
