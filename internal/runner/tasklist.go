package runner

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dexit/internal/registry"
	"dexit/pkg/dexit"

	"github.com/google/uuid"
)

// scheduledTask is a task list entry carrying the run/wait priorities the
// plan is built from.
type scheduledTask struct {
	id        string
	task      dexit.Task
	runOrder  int
	waitOrder int
}

type planStep struct {
	run   bool // true for a run step, false for a wait step
	order int
	id    string
}

// buildPlan assigns each task a run/wait order pair, backward-schedules
// any task naming a runBeforeAsync target, and produces the stably-sorted
// sequence of run/wait steps the coordinator executes. When the target
// comes later in the list, the task's wait step moves to the target's
// wait order so that it never precedes the task's own run step.
func buildPlan(tasks []dexit.Task) ([]scheduledTask, []planStep) {
	scheduled := make([]scheduledTask, len(tasks))
	byID := make(map[string]int, len(tasks))
	for i, t := range tasks {
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		scheduled[i] = scheduledTask{id: id, task: t, runOrder: i * 1000, waitOrder: i*1000 + 1}
		byID[id] = i
	}
	for i := range scheduled {
		target := scheduled[i].task.RunBeforeAsync
		if target == "" {
			continue
		}
		if ti, ok := byID[target]; ok {
			scheduled[i].runOrder = scheduled[ti].runOrder - 1
			if scheduled[i].waitOrder < scheduled[i].runOrder {
				scheduled[i].waitOrder = scheduled[ti].waitOrder
			}
		}
	}

	steps := make([]planStep, 0, len(scheduled)*2)
	for _, st := range scheduled {
		steps = append(steps, planStep{run: true, order: st.runOrder, id: st.id})
		steps = append(steps, planStep{run: false, order: st.waitOrder, id: st.id})
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].order < steps[j].order })
	return scheduled, steps
}

// taskRun is the in-flight handle for a started task: its ready latch has
// already fired by the time startTask returns it, but its result is not
// final until done closes.
type taskRun struct {
	task   dexit.Task
	report *dexit.TaskReport
	done   chan struct{}
}

// runTaskList executes one task list start to finish: building the plan,
// then running its steps on this single coordinator goroutine, stopping
// early if a task errors without continueOnError. set and test identify
// the enclosing scope for reporter events; test is nil for a test set's
// own beforeAll/afterAll lists.
func (r *Runner) runTaskList(ctx context.Context, set *dexit.TestSetEntry, test *dexit.TestEntry, tasks []dexit.Task, shared *sharedContext) []*dexit.TaskReport {
	if len(tasks) == 0 {
		return nil
	}

	scheduled, steps := buildPlan(tasks)
	byID := make(map[string]dexit.Task, len(scheduled))
	for _, st := range scheduled {
		byID[st.id] = st.task
	}

	runs := make(map[string]*taskRun, len(scheduled))
	reports := make([]*dexit.TaskReport, 0, len(scheduled))

	for _, step := range steps {
		if step.run {
			task := byID[step.id]
			r.reporter.LogTaskBegin(set, test, &task)
			runs[step.id] = r.startTask(ctx, task, shared)
			continue
		}

		run := runs[step.id]
		<-run.done
		reports = append(reports, run.report)
		r.reporter.LogTaskComplete(set, test, &run.task, run.report)
		if run.report.ErrorCount() > 0 && !run.task.ContinueOnError {
			break
		}
	}

	return reports
}

// startTask launches a task's run phase in the background and blocks
// until its ready latch fires, returning a handle whose done channel
// closes once the task has fully completed (run, expect, and set phases).
func (r *Runner) startTask(ctx context.Context, task dexit.Task, shared *sharedContext) *taskRun {
	ready := make(chan struct{})
	var once sync.Once
	notifyReady := func() { once.Do(func() { close(ready) }) }

	run := &taskRun{task: task, done: make(chan struct{})}
	go func() {
		run.report = r.processTask(ctx, task, shared, notifyReady)
		notifyReady() // a command that never signals readiness must not wedge the coordinator
		close(run.done)
	}()

	<-ready
	return run
}

// processTask runs one task through its validation/run/expect/set phases,
// per the task's own phase tracking.
func (r *Runner) processTask(ctx context.Context, task dexit.Task, shared *sharedContext, notifyReady dexit.NotifyReady) *dexit.TaskReport {
	report := &dexit.TaskReport{Task: &task}

	cmd, ok := r.modules.GetCommand(task.Do)
	if !ok {
		notifyReady()
		report.Errors = append(report.Errors, fmt.Errorf("unresolved command %q", task.Do))
		return report
	}

	moduleName, _, _ := registry.ParseCommand(task.Do)
	runCtx := shared.snapshot()

	resolvedArgs, _ := r.interp.Resolve(runCtx.Params, task.Args).(map[string]interface{})
	resolvedExpect, _ := r.interp.Resolve(runCtx.Params, task.Expect).(map[string]interface{})
	runArgs := dexit.DeepMerge(runCtx.Defaults[moduleName], resolvedArgs)
	report.RunArgs = runArgs
	report.ExpectArgs = resolvedExpect

	var assertionErrs []dexit.AssertionError
	if cmd.ValidateArgs != nil {
		assertionErrs = append(assertionErrs, cmd.ValidateArgs(runArgs)...)
	}
	if cmd.ValidateExpect != nil {
		assertionErrs = append(assertionErrs, cmd.ValidateExpect(resolvedExpect)...)
	}
	if len(assertionErrs) > 0 {
		notifyReady()
		for _, ae := range assertionErrs {
			report.Errors = append(report.Errors, ae)
		}
		return report
	}

	report.Label = taskLabel(task, cmd, runArgs, resolvedExpect)

	result, err := runPhase(ctx, cmd, runArgs, notifyReady)
	if err != nil {
		report.Errors = append(report.Errors, err)
		return report
	}
	report.Result = result

	if len(task.Expect) > 0 && cmd.Expect != nil {
		expectErrs, err := expectPhase(cmd, resolvedExpect, result)
		if err != nil {
			report.Errors = append(report.Errors, err)
		}
		for _, ae := range expectErrs {
			report.Errors = append(report.Errors, ae)
		}
	}

	if len(task.Set) > 0 {
		setArgs, err := setPhase(r, result, task.Set)
		if err != nil {
			report.Errors = append(report.Errors, err)
		} else {
			report.SetArgs = setArgs
			shared.mergeParams(setArgs)
		}
	}

	return report
}

func taskLabel(task dexit.Task, cmd *dexit.Command, runArgs, expectArgs map[string]interface{}) string {
	if task.Description != "" {
		return task.Description
	}
	if cmd.GetLabel != nil {
		if label := cmd.GetLabel(runArgs, expectArgs); label != "" {
			return label
		}
	}
	return task.Do
}

// runPhase invokes the command, recovering a panic into a uniform
// "failed to execute task run" error, since a third-party command's run
// implementation is outside this program's control.
func runPhase(ctx context.Context, cmd *dexit.Command, args map[string]interface{}, notifyReady dexit.NotifyReady) (result interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to execute task run: %v", rec)
		}
	}()
	return cmd.Run(ctx, args, notifyReady)
}

func expectPhase(cmd *dexit.Command, expectArgs map[string]interface{}, result interface{}) (errs []dexit.AssertionError, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to execute task expect: %v", rec)
		}
	}()
	return cmd.Expect(expectArgs, result), nil
}

// setPhase interpolates task.Set against the task's result and returns
// the resolved mapping to be merged into the shared context's params.
func setPhase(r *Runner, result interface{}, set map[string]interface{}) (args map[string]interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to execute task set: %v", rec)
		}
	}()
	resolved, _ := r.interp.Resolve(result, set).(map[string]interface{})
	return resolved, nil
}
