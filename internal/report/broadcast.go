package report

import (
	"errors"
	"fmt"

	"dexit/pkg/dexit"
)

// Broadcast fans every Reporter event out to a fixed, ordered list of
// reporters. It implements dexit.Reporter itself, so the Runner only ever
// holds one reporter regardless of how many are configured.
type Broadcast struct {
	reporters []dexit.Reporter
}

// New validates and wraps reporters. Go's interface satisfaction is
// already checked at compile time, so the one thing left to validate at
// construction is that no nil reporter slipped in (e.g. from a factory
// that failed to build one of them).
func New(reporters ...dexit.Reporter) (*Broadcast, error) {
	if len(reporters) == 0 {
		return nil, errors.New("report: at least one reporter is required")
	}
	for i, r := range reporters {
		if r == nil {
			return nil, fmt.Errorf("report: reporter at index %d is nil", i)
		}
	}
	return &Broadcast{reporters: reporters}, nil
}

func (b *Broadcast) LogValidationErrors(errs []dexit.ValidationError) {
	for _, r := range b.reporters {
		r.LogValidationErrors(errs)
	}
}

func (b *Broadcast) LogTestSetBegin(set *dexit.TestSetEntry) {
	for _, r := range b.reporters {
		r.LogTestSetBegin(set)
	}
}

func (b *Broadcast) LogTestSetComplete(set *dexit.TestSetEntry, report *dexit.TestSetReport) {
	for _, r := range b.reporters {
		r.LogTestSetComplete(set, report)
	}
}

func (b *Broadcast) LogTestSetSkip(set *dexit.TestSetEntry) {
	for _, r := range b.reporters {
		r.LogTestSetSkip(set)
	}
}

func (b *Broadcast) LogTestBegin(set *dexit.TestSetEntry, test *dexit.TestEntry) {
	for _, r := range b.reporters {
		r.LogTestBegin(set, test)
	}
}

func (b *Broadcast) LogTestComplete(set *dexit.TestSetEntry, test *dexit.TestEntry, report *dexit.TestReport) {
	for _, r := range b.reporters {
		r.LogTestComplete(set, test, report)
	}
}

func (b *Broadcast) LogTestSkip(set *dexit.TestSetEntry, test *dexit.TestEntry) {
	for _, r := range b.reporters {
		r.LogTestSkip(set, test)
	}
}

func (b *Broadcast) LogTaskBegin(set *dexit.TestSetEntry, test *dexit.TestEntry, task *dexit.Task) {
	for _, r := range b.reporters {
		r.LogTaskBegin(set, test, task)
	}
}

func (b *Broadcast) LogTaskComplete(set *dexit.TestSetEntry, test *dexit.TestEntry, task *dexit.Task, report *dexit.TaskReport) {
	for _, r := range b.reporters {
		r.LogTaskComplete(set, test, task, report)
	}
}

// GenerateReport forwards to every reporter, collecting every error rather
// than stopping at the first so that one reporter's failure (e.g. a file
// write error) does not prevent others from producing their output.
func (b *Broadcast) GenerateReport(complete *dexit.CompleteReport) error {
	var errs []error
	for _, r := range b.reporters {
		if err := r.GenerateReport(complete); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
