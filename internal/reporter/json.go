package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"dexit/pkg/dexit"
)

// JSON is a machine-readable reporter: it accumulates lifecycle events
// silently and emits the whole CompleteReport as one JSON document from
// GenerateReport.
type JSON struct {
	Out io.Writer

	mu          sync.Mutex
	validation  []dexit.ValidationError
}

// NewJSON builds a JSON reporter writing to stdout.
func NewJSON() *JSON {
	return &JSON{Out: os.Stdout}
}

func (j *JSON) LogValidationErrors(errs []dexit.ValidationError) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.validation = append(j.validation, errs...)
}

func (j *JSON) LogTestSetBegin(set *dexit.TestSetEntry)                                  {}
func (j *JSON) LogTestSetComplete(set *dexit.TestSetEntry, report *dexit.TestSetReport)   {}
func (j *JSON) LogTestSetSkip(set *dexit.TestSetEntry)                                    {}
func (j *JSON) LogTestBegin(set *dexit.TestSetEntry, test *dexit.TestEntry)               {}
func (j *JSON) LogTestComplete(set *dexit.TestSetEntry, test *dexit.TestEntry, report *dexit.TestReport) {
}
func (j *JSON) LogTestSkip(set *dexit.TestSetEntry, test *dexit.TestEntry)                {}
func (j *JSON) LogTaskBegin(set *dexit.TestSetEntry, test *dexit.TestEntry, task *dexit.Task) {
}
func (j *JSON) LogTaskComplete(set *dexit.TestSetEntry, test *dexit.TestEntry, task *dexit.Task, report *dexit.TaskReport) {
}

// taskReportView is the JSON-serializable projection of a TaskReport:
// dexit.TaskReport.Errors is []error, which encoding/json cannot marshal
// usefully (an error's fields are unexported), so each error is rendered
// to its message string instead.
type taskReportView struct {
	Label     string                 `json:"label"`
	RunArgs   map[string]interface{} `json:"runArgs,omitempty"`
	ExpectArgs map[string]interface{} `json:"expectArgs,omitempty"`
	Result    interface{}            `json:"result,omitempty"`
	SetArgs   map[string]interface{} `json:"setArgs,omitempty"`
	Errors    []string               `json:"errors,omitempty"`
}

func viewTaskReport(tr *dexit.TaskReport) taskReportView {
	v := taskReportView{
		Label:      tr.Label,
		RunArgs:    tr.RunArgs,
		ExpectArgs: tr.ExpectArgs,
		Result:     tr.Result,
		SetArgs:    tr.SetArgs,
	}
	for _, err := range tr.Errors {
		v.Errors = append(v.Errors, err.Error())
	}
	return v
}

type testReportView struct {
	Name        string           `json:"name"`
	BeforeEach  []taskReportView `json:"beforeEach,omitempty"`
	Tasks       []taskReportView `json:"tasks,omitempty"`
	AfterEach   []taskReportView `json:"afterEach,omitempty"`
	BodySkipped bool             `json:"bodySkipped,omitempty"`
	ErrorCount  int              `json:"errorCount"`
}

func viewTestReport(tr *dexit.TestReport) testReportView {
	v := testReportView{BodySkipped: tr.BodySkipped, ErrorCount: tr.ErrorCount()}
	if tr.Test != nil {
		v.Name = tr.Test.Name
	}
	for _, t := range tr.BeforeEach {
		v.BeforeEach = append(v.BeforeEach, viewTaskReport(t))
	}
	for _, t := range tr.Tasks {
		v.Tasks = append(v.Tasks, viewTaskReport(t))
	}
	for _, t := range tr.AfterEach {
		v.AfterEach = append(v.AfterEach, viewTaskReport(t))
	}
	return v
}

type testSetReportView struct {
	ID           string                        `json:"id"`
	BeforeAll    []taskReportView              `json:"beforeAll,omitempty"`
	AfterAll     []taskReportView               `json:"afterAll,omitempty"`
	Tests        []testReportView               `json:"tests,omitempty"`
	Children     map[string]testSetReportView   `json:"children,omitempty"`
	TestCount    int                            `json:"testCount"`
	SkippedCount int                            `json:"skippedCount"`
	ErrorCount   int                            `json:"errorCount"`
}

func viewTestSetReport(sr *dexit.TestSetReport) testSetReportView {
	v := testSetReportView{TestCount: sr.TestCount, SkippedCount: sr.SkippedCount, ErrorCount: sr.ErrorCount()}
	if sr.Set != nil {
		v.ID = sr.Set.ID
	}
	for _, t := range sr.BeforeAll {
		v.BeforeAll = append(v.BeforeAll, viewTaskReport(t))
	}
	for _, t := range sr.AfterAll {
		v.AfterAll = append(v.AfterAll, viewTaskReport(t))
	}
	for _, t := range sr.Tests {
		v.Tests = append(v.Tests, viewTestReport(t))
	}
	if len(sr.Children) > 0 {
		v.Children = make(map[string]testSetReportView, len(sr.Children))
		for name, child := range sr.Children {
			v.Children[name] = viewTestSetReport(child)
		}
	}
	return v
}

type completeReportView struct {
	Sets             map[string]testSetReportView `json:"sets"`
	ValidationErrors []string                      `json:"validationErrors,omitempty"`
	Duration         string                        `json:"duration"`
	TestCount        int                           `json:"testCount"`
	SkippedCount     int                           `json:"skippedCount"`
	ErrorCount       int                           `json:"errorCount"`
}

// GenerateReport writes the whole CompleteReport as a single indented
// JSON document, for CI/CD consumption.
func (j *JSON) GenerateReport(complete *dexit.CompleteReport) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	view := completeReportView{
		Sets:         make(map[string]testSetReportView, len(complete.Sets)),
		Duration:     complete.Duration.String(),
		TestCount:    complete.TestCount,
		SkippedCount: complete.SkippedCount,
		ErrorCount:   complete.ErrorCount,
	}
	for name, sr := range complete.Sets {
		view.Sets[name] = viewTestSetReport(sr)
	}
	for _, e := range complete.ValidationErrors {
		view.ValidationErrors = append(view.ValidationErrors, e.Error())
	}
	for _, e := range j.validation {
		view.ValidationErrors = append(view.ValidationErrors, e.Error())
	}

	encoded, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("json reporter: %w", err)
	}
	_, err = fmt.Fprintln(j.Out, string(encoded))
	return err
}
