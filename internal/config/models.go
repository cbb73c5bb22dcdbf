package config

import "time"

// Preferences is the entire user configuration file. It holds tool paths and
// UI defaults only - pairing credentials are deliberately never persisted;
// a fresh credential is generated every run.
type Preferences struct {
	Version int `yaml:"version"`

	// BridgePath is the debug-bridge binary to invoke (default "adb").
	BridgePath string `yaml:"bridge_path,omitempty"`

	// MirrorPath is the mirror binary to invoke (default "scrcpy").
	MirrorPath string `yaml:"mirror_path,omitempty"`

	// MirrorArgs are extra flags appended to every mirror launch, after
	// the fixed stay-awake and device-selection flags.
	MirrorArgs []string `yaml:"mirror_args,omitempty"`

	// ConnectPort is the default data-plane port offered in the connect
	// form (default "5555").
	ConnectPort string `yaml:"connect_port,omitempty"`

	// CommandTimeoutSec bounds each blocking bridge call (default 10).
	CommandTimeoutSec int `yaml:"command_timeout,omitempty"`

	// DiscoverTimeoutSec bounds mDNS endpoint discovery (default 10).
	DiscoverTimeoutSec int `yaml:"discover_timeout,omitempty"`
}

// Default returns a Preferences with every field at its default value.
func Default() *Preferences {
	return &Preferences{
		Version:            1,
		BridgePath:         "adb",
		MirrorPath:         "scrcpy",
		ConnectPort:        "5555",
		CommandTimeoutSec:  10,
		DiscoverTimeoutSec: 10,
	}
}

// CommandTimeout returns the bridge-call bound as a duration.
func (p *Preferences) CommandTimeout() time.Duration {
	if p.CommandTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(p.CommandTimeoutSec) * time.Second
}

// DiscoverTimeout returns the discovery bound as a duration.
func (p *Preferences) DiscoverTimeout() time.Duration {
	if p.DiscoverTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(p.DiscoverTimeoutSec) * time.Second
}

// normalize fills in defaults for fields missing from an on-disk file.
func (p *Preferences) normalize() {
	if p.BridgePath == "" {
		p.BridgePath = "adb"
	}
	if p.MirrorPath == "" {
		p.MirrorPath = "scrcpy"
	}
	if p.ConnectPort == "" {
		p.ConnectPort = "5555"
	}
}
