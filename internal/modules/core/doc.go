// Package core is the built-in module loaded by the CLI unless
// --no-builtin is passed: core.sleep, core.echo, and core.fail. None of
// them talk to the network or the filesystem; they exist so a test
// document can exercise dependency ordering, parameter propagation, and
// assertion failures without an external module installed.
package core
