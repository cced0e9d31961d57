package runner

import (
	"context"
	"sync"
	"time"

	"dexit/internal/interpolate"
	"dexit/internal/registry"
	"dexit/pkg/dexit"

	"golang.org/x/sync/errgroup"
)

// Runner executes a resolved test-set tree against registered commands,
// reporting lifecycle events through a Reporter as it goes.
type Runner struct {
	modules  *registry.Registry
	interp   *interpolate.Interpolator
	reporter dexit.Reporter
}

// New creates a Runner bound to modules for command resolution and
// reporter for lifecycle events.
func New(modules *registry.Registry, reporter dexit.Reporter) *Runner {
	return &Runner{modules: modules, interp: interpolate.New(), reporter: reporter}
}

// Run executes every root-level test set concurrently (skipped sets are
// only counted, never launched) and returns the aggregated report.
func (r *Runner) Run(ctx context.Context, root *dexit.TestSetEntry) *dexit.CompleteReport {
	start := time.Now()
	rootCtx := dexit.NewRunContext()
	shared := newSharedContext(&rootCtx)

	report := &dexit.CompleteReport{Sets: make(map[string]*dexit.TestSetReport, len(root.Children))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for name, set := range root.Children {
		name, set := name, set
		if set.Skip {
			r.reporter.LogTestSetSkip(set)
			mu.Lock()
			report.TestCount += set.TestCount
			report.SkippedCount += set.TestCount
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			setReport := r.runTestSet(gctx, set, shared)
			mu.Lock()
			report.Sets[name] = setReport
			report.TestCount += setReport.TestCount
			report.SkippedCount += setReport.SkippedCount
			report.ErrorCount += setReport.ErrorCount()
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	report.Duration = time.Since(start)
	return report
}

// runTestSet executes one test set: its beforeAll tasks, then (if those
// produced no errors) its own tests and child sets concurrently according
// to executionOrder, then its afterAll tasks unconditionally.
func (r *Runner) runTestSet(ctx context.Context, set *dexit.TestSetEntry, parent *sharedContext) *dexit.TestSetReport {
	snapshot := parent.snapshot()
	childCtx := snapshot.Child(set.Defaults, set.Params)
	shared := newSharedContext(&childCtx)

	r.reporter.LogTestSetBegin(set)
	report := &dexit.TestSetReport{Set: set, Children: make(map[string]*dexit.TestSetReport, len(set.Children))}

	report.BeforeAll = r.runTaskList(ctx, set, nil, set.BeforeAllTasks, shared)

	if countErrors(report.BeforeAll) == 0 {
		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)

		// Sibling test sets recurse in parallel with this set's own test
		// run regardless of executionOrder, which only governs the tests
		// below: dispatch children first so they start concurrently even
		// when the test loop runs synchronously.
		for name, child := range set.Children {
			name, child := name, child
			if child.Skip {
				r.reporter.LogTestSetSkip(child)
				mu.Lock()
				report.SkippedCount += child.TestCount
				mu.Unlock()
				continue
			}
			g.Go(func() error {
				childReport := r.runTestSet(gctx, child, shared)
				mu.Lock()
				report.Children[name] = childReport
				report.SkippedCount += childReport.SkippedCount
				mu.Unlock()
				return nil
			})
		}

		for _, test := range set.Tests {
			test := test
			if test.Skip {
				r.reporter.LogTestSkip(set, test)
				mu.Lock()
				report.SkippedCount++
				mu.Unlock()
				continue
			}

			runOne := func() {
				testReport := r.runTest(gctx, set, test, shared)
				mu.Lock()
				report.Tests = append(report.Tests, testReport)
				mu.Unlock()
			}
			if set.ExecutionOrder == dexit.ExecutionOrderSync {
				runOne()
			} else {
				g.Go(func() error { runOne(); return nil })
			}
		}

		_ = g.Wait()
	}

	report.AfterAll = r.runTaskList(ctx, set, nil, set.AfterAllTasks, shared)
	report.TestCount = set.TestCount
	r.reporter.LogTestSetComplete(set, report)
	return report
}

// runTest executes one test: its set's accumulated beforeEach tasks, then
// (if those produced no errors) the test's own tasks, then its set's
// accumulated afterEach tasks unconditionally.
func (r *Runner) runTest(ctx context.Context, set *dexit.TestSetEntry, test *dexit.TestEntry, parent *sharedContext) *dexit.TestReport {
	snapshot := parent.snapshot()
	childCtx := snapshot.Child(test.Defaults, test.Params)
	shared := newSharedContext(&childCtx)

	r.reporter.LogTestBegin(set, test)
	report := &dexit.TestReport{Test: test}

	report.BeforeEach = r.runTaskList(ctx, set, test, set.BeforeEachTasks, shared)

	if countErrors(report.BeforeEach) == 0 {
		report.Tasks = r.runTaskList(ctx, set, test, test.Tasks, shared)
	} else {
		report.BodySkipped = true
	}

	report.AfterEach = r.runTaskList(ctx, set, test, set.AfterEachTasks, shared)

	r.reporter.LogTestComplete(set, test, report)
	return report
}

func countErrors(reports []*dexit.TaskReport) int {
	count := 0
	for _, rep := range reports {
		count += rep.ErrorCount()
	}
	return count
}
