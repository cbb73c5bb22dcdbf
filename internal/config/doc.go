// Package config persists user preferences for scrpair.
//
// Preferences live in a YAML file under the platform configuration
// directory (Linux: ~/.config/scrpair, macOS: ~/.config/scrpair,
// Windows: %LOCALAPPDATA%\scrpair). They cover tool paths, default ports,
// extra mirror flags and timeouts.
//
// Pairing credentials are never written to disk. Each run generates a fresh
// credential; a stale name/password pair is useless once the pairing dialog
// on the device closes, and persisting it would only leak secrets.
package config
