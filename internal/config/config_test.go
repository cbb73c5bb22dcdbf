package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}
	if !strings.Contains(configDir, appName) {
		t.Errorf("GetConfigDir() = %v, should contain %q", configDir, appName)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestDefaults(t *testing.T) {
	p := Default()

	if p.BridgePath != "adb" {
		t.Errorf("BridgePath = %q, want adb", p.BridgePath)
	}
	if p.MirrorPath != "scrcpy" {
		t.Errorf("MirrorPath = %q, want scrcpy", p.MirrorPath)
	}
	if p.ConnectPort != "5555" {
		t.Errorf("ConnectPort = %q, want 5555", p.ConnectPort)
	}
	if p.CommandTimeout() != 10*time.Second {
		t.Errorf("CommandTimeout() = %v, want 10s", p.CommandTimeout())
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	p, err := loadFrom(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if p.BridgePath != "adb" || p.ConnectPort != "5555" {
		t.Errorf("loadFrom() missing file = %+v, want defaults", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := Default()
	want.BridgePath = "/opt/platform-tools/adb"
	want.MirrorArgs = []string{"--max-fps", "30"}
	want.CommandTimeoutSec = 20

	if err := saveTo(path, want); err != nil {
		t.Fatalf("saveTo() error = %v", err)
	}

	got, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}

	if got.BridgePath != want.BridgePath {
		t.Errorf("BridgePath = %q, want %q", got.BridgePath, want.BridgePath)
	}
	if len(got.MirrorArgs) != 2 || got.MirrorArgs[0] != "--max-fps" {
		t.Errorf("MirrorArgs = %v, want %v", got.MirrorArgs, want.MirrorArgs)
	}
	if got.CommandTimeout() != 20*time.Second {
		t.Errorf("CommandTimeout() = %v, want 20s", got.CommandTimeout())
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := saveTo(path, &Preferences{Version: 1, MirrorArgs: []string{"--turn-screen-off"}}); err != nil {
		t.Fatalf("saveTo() error = %v", err)
	}

	got, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if got.BridgePath != "adb" {
		t.Errorf("BridgePath = %q, want default adb", got.BridgePath)
	}
	if got.ConnectPort != "5555" {
		t.Errorf("ConnectPort = %q, want default 5555", got.ConnectPort)
	}
	if len(got.MirrorArgs) != 1 {
		t.Errorf("MirrorArgs = %v, want the saved flag", got.MirrorArgs)
	}
}
