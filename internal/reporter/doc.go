// Package reporter provides the concrete dexit.Reporter implementations
// the CLI wires up behind --reporter: console (line-oriented, colorized),
// json (a machine-readable CompleteReport dump), table (a summary table
// per test set), and live (a spinner tracking the currently-running test
// set/test on an interactive terminal).
package reporter
