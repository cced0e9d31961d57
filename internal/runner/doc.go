// Package runner implements the Runner: a cooperative, single-threaded
// coordinator per task list that schedules tasks via a ready/wait
// protocol, threading a mutable run context through test sets, tests, and
// task lists, while letting sibling tests, sibling test sets, and a
// task's own background work proceed concurrently.
package runner
