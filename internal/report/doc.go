// Package report implements the Reporter Broadcast: a single
// dexit.Reporter that forwards every lifecycle event to a fixed list of
// registered reporters, in registration order.
package report
