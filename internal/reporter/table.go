package reporter

import (
	"io"
	"os"
	"sync"

	"dexit/pkg/dexit"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders one summary row per test set using
// github.com/jedib0t/go-pretty/v6/table (table.StyleRounded, colorized
// header cells via the text package). Unlike Console it has no
// per-event output: it accumulates set reports silently and renders the
// whole table from GenerateReport.
type Table struct {
	Out io.Writer

	mu   sync.Mutex
	rows []table.Row
}

// NewTable builds a Table reporter writing to stdout.
func NewTable() *Table {
	return &Table{Out: os.Stdout}
}

func (t *Table) LogValidationErrors(errs []dexit.ValidationError) {}
func (t *Table) LogTestSetBegin(set *dexit.TestSetEntry)           {}

func (t *Table) LogTestSetComplete(set *dexit.TestSetEntry, report *dexit.TestSetReport) {
	if set.IsRoot() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	status := text.FgGreen.Sprint("passed")
	if report.ErrorCount() > 0 {
		status = text.FgRed.Sprint("failed")
	}
	t.rows = append(t.rows, table.Row{
		set.ID, status, report.TestCount, report.SkippedCount, report.ErrorCount(),
	})
}

func (t *Table) LogTestSetSkip(set *dexit.TestSetEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, table.Row{set.ID, text.FgYellow.Sprint("skipped"), set.TestCount, set.TestCount, 0})
}

func (t *Table) LogTestBegin(set *dexit.TestSetEntry, test *dexit.TestEntry)                          {}
func (t *Table) LogTestComplete(set *dexit.TestSetEntry, test *dexit.TestEntry, report *dexit.TestReport) {
}
func (t *Table) LogTestSkip(set *dexit.TestSetEntry, test *dexit.TestEntry)                       {}
func (t *Table) LogTaskBegin(set *dexit.TestSetEntry, test *dexit.TestEntry, task *dexit.Task)     {}
func (t *Table) LogTaskComplete(set *dexit.TestSetEntry, test *dexit.TestEntry, task *dexit.Task, report *dexit.TaskReport) {
}

// GenerateReport renders the accumulated rows plus a totals footer.
func (t *Table) GenerateReport(complete *dexit.CompleteReport) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := table.NewWriter()
	w.SetOutputMirror(t.Out)
	w.SetStyle(table.StyleRounded)
	w.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("TEST SET"),
		text.FgHiCyan.Sprint("STATUS"),
		text.FgHiCyan.Sprint("TESTS"),
		text.FgHiCyan.Sprint("SKIPPED"),
		text.FgHiCyan.Sprint("ERRORS"),
	})
	for _, row := range t.rows {
		w.AppendRow(row)
	}
	w.AppendFooter(table.Row{
		"TOTAL", "", complete.TestCount, complete.SkippedCount, complete.ErrorCount,
	})
	w.Render()
	return nil
}
