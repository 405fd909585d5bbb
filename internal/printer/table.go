package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/janosik-bot/janosik/internal/model"
)

// TablePrinter prints human readable output: raw program output and tables.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintRun prints the program output verbatim.
func (t *TablePrinter) PrintRun(res model.RunResult) error {
	_, err := io.WriteString(t.writer, res.Output)
	return err
}

// PrintRunFailure prints the rendered failure message.
func (t *TablePrinter) PrintRunFailure(program string, err error, msg string) error {
	return t.PrintMessage(msg)
}

// PrintProtips prints the protips of a task in a table format.
func (t *TablePrinter) PrintProtips(task string, protips []model.Protip) error {
	if len(protips) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tCONTENT\tCREATED")
	for _, p := range protips {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Content, FormatTimestamp(p.CreatedAt))
	}

	return nil
}

// PrintTasks prints the tasks that have protips, one per line.
func (t *TablePrinter) PrintTasks(tasks []string) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "TASK")
	for _, task := range tasks {
		fmt.Fprintln(tw, task)
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
