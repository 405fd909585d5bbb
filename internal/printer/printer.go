package printer

import "github.com/janosik-bot/janosik/internal/model"

// Printer knows how to print run results and protips in different formats.
type Printer interface {
	PrintRun(res model.RunResult) error
	PrintRunFailure(program string, err error, msg string) error
	PrintProtips(task string, protips []model.Protip) error
	PrintTasks(tasks []string) error
	PrintMessage(msg string) error
}
