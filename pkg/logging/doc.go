// Package logging provides a structured logging system for dexit with unified
// log handling and level filtering.
//
// This package implements a logging system built on Go's standard slog package,
// providing consistent logging behavior with structured output and level filtering.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about normal operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// # Usage
//
//	import "dexit/pkg/logging"
//
//	logging.Init(logging.LevelInfo, os.Stderr)
//	logging.Info("Registry", "registered module %s", name)
//	logging.Debug("Runner", "task %s reached ready", taskID)
//	logging.Error("Repository", err, "failed to load %s", path)
//
// # Subsystem organization
//
// Log lines are tagged with a subsystem name to enable filtering. The
// subsystems that log are Config, Interpolator, Loader, and Registry.
//
// The package is safe for concurrent use from multiple goroutines.
package logging
