// Package logging provides structured logging for scrpair.
//
// This package wraps the zap logger with convenience functions for the
// logging patterns used throughout the application: external command
// execution, controller phase transitions, and event delivery.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: detailed tracing (command arguments, phase transitions, events)
//   - Info: normal operations
//   - Warn: non-fatal issues (dropped events, retries)
//   - Error: fatal issues (startup failures)
//
// # Silent by Default
//
// Logging is controlled by the SCRPAIR_LOG_LEVEL environment variable. When
// unset, zap is a no-op so the interactive screen and styled CLI output own
// the terminal. Logs go to stderr when enabled, keeping stdout clean for the
// TUI renderer.
//
// # Usage
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.Debug("external command finished",
//	    zap.String("command", "adb"),
//	    zap.Int("exit_code", 0),
//	)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
