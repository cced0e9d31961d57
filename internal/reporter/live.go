package reporter

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"dexit/pkg/dexit"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Live drives a github.com/briandowns/spinner spinner showing the
// currently-running test set/test, for interactive terminals. Test-set
// begin (except for the root), test begin and task begin update the
// spinner's suffix text; the other events are ignored. The spinner is
// started on the first suffix update and stopped once GenerateReport
// prints the final summary.
type Live struct {
	Out io.Writer

	mu      sync.Mutex
	spinner *spinner.Spinner
	started bool
}

// NewLive builds a Live reporter writing to stdout.
func NewLive() *Live {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	return &Live{Out: os.Stdout, spinner: s}
}

func (l *Live) setSuffix(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.spinner.Suffix = " " + text
	if !l.started {
		l.started = true
		l.spinner.Start()
	}
}

func (l *Live) LogValidationErrors(errs []dexit.ValidationError) {}

func (l *Live) LogTestSetBegin(set *dexit.TestSetEntry) {
	if set.IsRoot() {
		return
	}
	l.setSuffix(fmt.Sprintf("running %s", set.ID))
}

func (l *Live) LogTestSetComplete(set *dexit.TestSetEntry, report *dexit.TestSetReport) {}
func (l *Live) LogTestSetSkip(set *dexit.TestSetEntry)                                  {}

func (l *Live) LogTestBegin(set *dexit.TestSetEntry, test *dexit.TestEntry) {
	l.setSuffix(fmt.Sprintf("%s > %s", set.ID, test.Name))
}

func (l *Live) LogTestComplete(set *dexit.TestSetEntry, test *dexit.TestEntry, report *dexit.TestReport) {
}
func (l *Live) LogTestSkip(set *dexit.TestSetEntry, test *dexit.TestEntry) {}

func (l *Live) LogTaskBegin(set *dexit.TestSetEntry, test *dexit.TestEntry, task *dexit.Task) {
	label := task.Description
	if label == "" {
		label = task.Do
	}
	l.setSuffix(fmt.Sprintf("%s > %s > %s", set.ID, test.Name, label))
}

func (l *Live) LogTaskComplete(set *dexit.TestSetEntry, test *dexit.TestEntry, task *dexit.Task, report *dexit.TaskReport) {
}

// GenerateReport stops the spinner and prints the final summary line.
func (l *Live) GenerateReport(complete *dexit.CompleteReport) error {
	l.mu.Lock()
	if l.started {
		l.spinner.Stop()
	}
	l.mu.Unlock()

	if complete.ErrorCount == 0 {
		fmt.Fprintf(l.Out, "%s\n", text.FgGreen.Sprintf("✓ %d tests passed (%v)", complete.TestCount-complete.SkippedCount, complete.Duration))
	} else {
		fmt.Fprintf(l.Out, "%s\n", text.FgRed.Sprintf("✗ %d errors across %d tests (%v)", complete.ErrorCount, complete.TestCount, complete.Duration))
	}
	return nil
}
