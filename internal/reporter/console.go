package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"dexit/pkg/dexit"

	"github.com/fatih/color"
)

// Console is a line-oriented reporter, colorized with fatih/color: terse
// by default, with per-task lines only when Verbose is set.
type Console struct {
	Out     io.Writer
	Verbose bool

	mu sync.Mutex
}

// NewConsole builds a Console reporter writing to stdout.
func NewConsole(verbose bool) *Console {
	return &Console{Out: os.Stdout, Verbose: verbose}
}

func (c *Console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Console) LogValidationErrors(errs []dexit.ValidationError) {
	if len(errs) == 0 {
		return
	}
	red := color.New(color.FgRed)
	for _, e := range errs {
		c.printf("%s %s\n", red.Sprint("✗"), e.Error())
	}
}

func (c *Console) LogTestSetBegin(set *dexit.TestSetEntry) {
	if set.IsRoot() {
		return
	}
	c.printf("%s %s\n", color.CyanString("▶"), set.ID)
}

func (c *Console) LogTestSetComplete(set *dexit.TestSetEntry, report *dexit.TestSetReport) {
	if set.IsRoot() {
		return
	}
	if report.ErrorCount() > 0 {
		c.printf("%s %s: %d error(s)\n", color.RedString("✗"), set.ID, report.ErrorCount())
	} else {
		c.printf("%s %s\n", color.GreenString("✓"), set.ID)
	}
}

func (c *Console) LogTestSetSkip(set *dexit.TestSetEntry) {
	c.printf("%s %s (%d tests skipped)\n", color.YellowString("⏭"), set.ID, set.TestCount)
}

func (c *Console) LogTestBegin(set *dexit.TestSetEntry, test *dexit.TestEntry) {
	if c.Verbose {
		c.printf("  %s %s\n", color.CyanString("•"), test.Name)
	}
}

func (c *Console) LogTestComplete(set *dexit.TestSetEntry, test *dexit.TestEntry, report *dexit.TestReport) {
	if report.ErrorCount() > 0 {
		c.printf("  %s %s\n", color.RedString("✗"), test.Name)
		if c.Verbose {
			c.printFailures(report)
		}
		return
	}
	c.printf("  %s %s\n", color.GreenString("✓"), test.Name)
}

func (c *Console) printFailures(report *dexit.TestReport) {
	for _, list := range [][]*dexit.TaskReport{report.BeforeEach, report.Tasks, report.AfterEach} {
		for _, tr := range list {
			for _, err := range tr.Errors {
				c.printf("      %s %s: %s\n", color.RedString("-"), tr.Label, err.Error())
			}
		}
	}
}

func (c *Console) LogTestSkip(set *dexit.TestSetEntry, test *dexit.TestEntry) {
	c.printf("  %s %s\n", color.YellowString("⏭"), test.Name)
}

func (c *Console) LogTaskBegin(set *dexit.TestSetEntry, test *dexit.TestEntry, task *dexit.Task) {
	if !c.Verbose {
		return
	}
	label := task.Description
	if label == "" {
		label = task.Do
	}
	c.printf("    %s %s\n", color.HiBlackString("→"), truncateLabel(label, 80))
}

// truncateLabel collapses a task label onto one line and caps it at
// maxLen runes, so a long interpolated args/description field can't blow
// out a --debug trace line.
func truncateLabel(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func (c *Console) LogTaskComplete(set *dexit.TestSetEntry, test *dexit.TestEntry, task *dexit.Task, report *dexit.TaskReport) {
	if !c.Verbose || report.ErrorCount() == 0 {
		return
	}
	for _, err := range report.Errors {
		c.printf("      %s %s\n", color.RedString("✗"), err.Error())
	}
}

// GenerateReport prints the final summary line: a single pass/fail line
// plus counts.
func (c *Console) GenerateReport(complete *dexit.CompleteReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	passed := complete.TestCount - complete.SkippedCount - failedCount(complete)
	fmt.Fprintf(c.Out, "\n")
	if complete.ErrorCount == 0 {
		fmt.Fprintf(c.Out, "%s %d passed", color.GreenString("✓"), passed)
	} else {
		fmt.Fprintf(c.Out, "%s %d passed, %d failed", color.RedString("✗"), passed, failedCount(complete))
	}
	if complete.SkippedCount > 0 {
		fmt.Fprintf(c.Out, ", %d skipped", complete.SkippedCount)
	}
	fmt.Fprintf(c.Out, " (%v)\n", complete.Duration)
	return nil
}

// failedCount walks every set report and counts the tests whose report
// carries at least one error. Errors in a set's own beforeAll/afterAll
// tasks are not attributed to any test.
func failedCount(complete *dexit.CompleteReport) int {
	if complete.ErrorCount == 0 {
		return 0
	}
	failed := 0
	for _, setReport := range complete.Sets {
		failed += countFailedTests(setReport)
	}
	return failed
}

func countFailedTests(report *dexit.TestSetReport) int {
	count := 0
	for _, tr := range report.Tests {
		if tr.ErrorCount() > 0 {
			count++
		}
	}
	for _, child := range report.Children {
		count += countFailedTests(child)
	}
	return count
}
