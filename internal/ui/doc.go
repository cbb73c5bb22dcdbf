// Package ui provides styled terminal output for the direct CLI
// subcommands.
//
// Unlike the interactive screen in internal/tui, these components follow a
// "run once and exit" pattern: a header box when an operation starts, a
// success or failure box when it finishes, and muted raw tool output in
// between.
//
// Logging is expected to be controlled via the SCRPAIR_LOG_LEVEL environment
// variable; when it is unset, zap is silent and the curated output here owns
// the terminal.
package ui
