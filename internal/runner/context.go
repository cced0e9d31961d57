package runner

import (
	"sync"

	"dexit/pkg/dexit"
)

// sharedContext guards a RunContext that multiple concurrently-scheduled
// tasks in the same task list may read (for interpolation) and write (via
// a task's `set` step) at overlapping times, per the ready/wait
// scheduling protocol's "task that has signalled ready overlaps
// subsequent tasks" parallelism point.
type sharedContext struct {
	mu  sync.Mutex
	ctx *dexit.RunContext
}

func newSharedContext(ctx *dexit.RunContext) *sharedContext {
	return &sharedContext{ctx: ctx}
}

// snapshot returns a deep, independent copy of the current context, safe
// for a task to read from without further locking.
func (s *sharedContext) snapshot() dexit.RunContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Child(nil, nil)
}

// mergeParams right-biased-merges delta into the shared context's params,
// the effect of a task's `set` step on every task scheduled after it.
func (s *sharedContext) mergeParams(delta map[string]interface{}) {
	if len(delta) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Params = dexit.DeepMerge(s.ctx.Params, delta)
}
