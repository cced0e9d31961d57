package dexit

import "time"

// TaskReport is the outcome of running a single Task.
type TaskReport struct {
	Task      *Task
	Label     string
	RunArgs   map[string]interface{}
	ExpectArgs map[string]interface{}
	Result    interface{}
	SetArgs   map[string]interface{}
	Errors    []error
}

func (r *TaskReport) ErrorCount() int { return len(r.Errors) }

// TestReport is the outcome of running one Test: its before-each tasks,
// its own tasks (skipped entirely if before-each produced any errors), and
// its after-each tasks.
type TestReport struct {
	Test            *TestEntry
	BeforeEach      []*TaskReport
	Tasks           []*TaskReport
	AfterEach       []*TaskReport
	BodySkipped     bool
}

func (r *TestReport) ErrorCount() int {
	count := 0
	for _, reports := range [][]*TaskReport{r.BeforeEach, r.Tasks, r.AfterEach} {
		for _, tr := range reports {
			count += tr.ErrorCount()
		}
	}
	return count
}

// TestSetReport is the outcome of running one TestSetEntry: its own
// before/after-all tasks, its tests' reports, its children's reports, and
// the counts aggregated from all of them.
type TestSetReport struct {
	Set           *TestSetEntry
	BeforeAll     []*TaskReport
	AfterAll      []*TaskReport
	Tests         []*TestReport
	Children      map[string]*TestSetReport
	SkippedCount  int
	TestCount     int
}

func (r *TestSetReport) ErrorCount() int {
	count := 0
	for _, reports := range [][]*TaskReport{r.BeforeAll, r.AfterAll} {
		for _, tr := range reports {
			count += tr.ErrorCount()
		}
	}
	for _, tr := range r.Tests {
		count += tr.ErrorCount()
	}
	for _, child := range r.Children {
		count += child.ErrorCount()
	}
	return count
}

// CompleteReport is the top-level result of a run.
type CompleteReport struct {
	Sets         map[string]*TestSetReport
	ValidationErrors []ValidationError
	Duration     time.Duration
	TestCount    int
	SkippedCount int
	ErrorCount   int
}
