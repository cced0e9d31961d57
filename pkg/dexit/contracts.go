package dexit

import "context"

// NotifyReady is the single-shot signal a Command's Run hands back to the
// Runner. A command calls it once it has reached a point where subsequent
// tasks in the same task list may safely proceed (e.g. after subscribing
// but before waiting on a response). Calling it more than once is a no-op.
type NotifyReady func()

// Command is one operation a Module exposes under a `module.command`
// identifier.
type Command struct {
	Description string

	// ArgsSchema and ExpectSchema are raw JSON Schema documents describing
	// Run's args and Expect's expectArgs respectively. Either may be nil.
	ArgsSchema   map[string]interface{}
	ExpectSchema map[string]interface{}

	// ValidateArgs and ValidateExpect run in the Runner, once per task
	// execution, against the interpolated runArgs and expectArgs; a
	// non-empty return is recorded on the TaskReport and the task's run
	// phase is skipped. The Repository does not call them.
	ValidateArgs   func(args map[string]interface{}) []AssertionError
	ValidateExpect func(args map[string]interface{}) []AssertionError

	// Run performs the task's work. It must eventually call notifyReady
	// and must eventually return; the Runner treats a returned error as a
	// single task-runtime error on the TaskReport.
	Run func(ctx context.Context, args map[string]interface{}, notifyReady NotifyReady) (interface{}, error)

	// Expect checks the task's result against expectArgs (the interpolated
	// form of task.expect) and returns zero or more assertion failures.
	Expect func(expectArgs map[string]interface{}, result interface{}) []AssertionError

	// GetLabel produces a human-readable label for reporters when the task
	// has no explicit description.
	GetLabel func(runArgs, expectArgs map[string]interface{}) string
}

// Module groups related commands under a shared namespace. Name must be
// unique across all registered modules.
type Module struct {
	Name           string
	Description    string
	DefaultsSchema map[string]interface{}
	Commands       map[string]*Command
}

// Reporter receives lifecycle events for one run. Implementations must be
// safe to call from the Runner's concurrent test/test-set goroutines for
// the Test/TestSet-scoped methods; CompleteReport generation happens once,
// after every goroutine has joined.
type Reporter interface {
	LogValidationErrors(errs []ValidationError)
	LogTestSetBegin(set *TestSetEntry)
	LogTestSetComplete(set *TestSetEntry, report *TestSetReport)
	LogTestSetSkip(set *TestSetEntry)
	LogTestBegin(set *TestSetEntry, test *TestEntry)
	LogTestComplete(set *TestSetEntry, test *TestEntry, report *TestReport)
	LogTestSkip(set *TestSetEntry, test *TestEntry)
	LogTaskBegin(set *TestSetEntry, test *TestEntry, task *Task)
	LogTaskComplete(set *TestSetEntry, test *TestEntry, task *Task, report *TaskReport)
	GenerateReport(complete *CompleteReport) error
}

// Loader discovers and parses test documents from a tests directory.
type Loader interface {
	Load(ctx context.Context, testsPath string) ([]TestDocument, error)
}
