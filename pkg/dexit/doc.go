// Package dexit defines the shared vocabulary between dexit's core engine
// and the packages that extend it: modules that provide commands, and
// reporters that consume run results. Everything a third-party module or
// reporter package needs to import lives here, separate from the
// engine's own internal implementation packages.
package dexit
