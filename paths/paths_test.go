package paths

import (
	"os"
	"path/filepath"
	"testing"
)

// setupTestHome creates a temp directory, sets HOME to it, and resets the path cache.
func setupTestHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	Reset()
	t.Cleanup(Reset)
	return tmpDir
}

func TestFreshInstallNoXDG(t *testing.T) {
	home := setupTestHome(t)
	// No ~/.onyx-desktop/, no XDG vars → default to ~/.onyx-desktop/
	expected := filepath.Join(home, ".onyx-desktop")

	configDir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if configDir != expected {
		t.Errorf("ConfigDir = %q, want %q", configDir, expected)
	}

	stateDir, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir: %v", err)
	}
	if stateDir != expected {
		t.Errorf("StateDir = %q, want %q", stateDir, expected)
	}

	if !IsLegacyLayout() {
		t.Error("IsLegacyLayout should be true for fresh install without XDG")
	}
}

func TestLegacyDirExists(t *testing.T) {
	home := setupTestHome(t)
	legacyDir := filepath.Join(home, ".onyx-desktop")
	if err := os.MkdirAll(legacyDir, 0755); err != nil {
		t.Fatal(err)
	}

	configDir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if configDir != legacyDir {
		t.Errorf("ConfigDir = %q, want %q", configDir, legacyDir)
	}

	if !IsLegacyLayout() {
		t.Error("IsLegacyLayout should be true when ~/.onyx-desktop/ exists")
	}
}

func TestLegacyTakesPrecedenceOverXDG(t *testing.T) {
	home := setupTestHome(t)
	legacyDir := filepath.Join(home, ".onyx-desktop")
	if err := os.MkdirAll(legacyDir, 0755); err != nil {
		t.Fatal(err)
	}

	// Set XDG vars — legacy should still win
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	Reset()

	configDir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if configDir != legacyDir {
		t.Errorf("ConfigDir = %q, want %q (legacy should take precedence)", configDir, legacyDir)
	}
}

func TestXDGAllVarsSet(t *testing.T) {
	home := setupTestHome(t)
	// No ~/.onyx-desktop/ exists

	xdgConfig := filepath.Join(home, "my-config")
	xdgState := filepath.Join(home, "my-state")

	t.Setenv("XDG_CONFIG_HOME", xdgConfig)
	t.Setenv("XDG_STATE_HOME", xdgState)
	Reset()

	configDir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if want := filepath.Join(xdgConfig, "onyx-desktop"); configDir != want {
		t.Errorf("ConfigDir = %q, want %q", configDir, want)
	}

	stateDir, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir: %v", err)
	}
	if want := filepath.Join(xdgState, "onyx-desktop"); stateDir != want {
		t.Errorf("StateDir = %q, want %q", stateDir, want)
	}

	if IsLegacyLayout() {
		t.Error("IsLegacyLayout should be false when using XDG")
	}
}

func TestXDGPartialVars(t *testing.T) {
	home := setupTestHome(t)

	xdgConfig := filepath.Join(home, "my-config")
	t.Setenv("XDG_CONFIG_HOME", xdgConfig)
	// XDG_STATE_HOME not set — should use XDG default
	Reset()

	stateDir, err := StateDir()
	if err != nil {
		t.Fatalf("StateDir: %v", err)
	}
	if want := filepath.Join(home, ".local", "state", "onyx-desktop"); stateDir != want {
		t.Errorf("StateDir = %q, want %q", stateDir, want)
	}
}

func TestDerivedPaths(t *testing.T) {
	home := setupTestHome(t)
	legacyDir := filepath.Join(home, ".onyx-desktop")
	if err := os.MkdirAll(legacyDir, 0755); err != nil {
		t.Fatal(err)
	}
	Reset()

	cfgPath, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath: %v", err)
	}
	if want := filepath.Join(legacyDir, "config.json"); cfgPath != want {
		t.Errorf("ConfigFilePath = %q, want %q", cfgPath, want)
	}
	if !filepath.IsAbs(cfgPath) {
		t.Errorf("ConfigFilePath should be absolute, got %q", cfgPath)
	}

	keymapPath, err := KeymapFilePath()
	if err != nil {
		t.Fatalf("KeymapFilePath: %v", err)
	}
	if want := filepath.Join(legacyDir, "keymap.yaml"); keymapPath != want {
		t.Errorf("KeymapFilePath = %q, want %q", keymapPath, want)
	}

	logsDir, err := LogsDir()
	if err != nil {
		t.Fatalf("LogsDir: %v", err)
	}
	if want := filepath.Join(legacyDir, "logs"); logsDir != want {
		t.Errorf("LogsDir = %q, want %q", logsDir, want)
	}
}

func TestResetClearsCache(t *testing.T) {
	home := setupTestHome(t)

	dir1, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	expectedLegacy := filepath.Join(home, ".onyx-desktop")
	if dir1 != expectedLegacy {
		t.Errorf("ConfigDir = %q, want %q", dir1, expectedLegacy)
	}

	// Now set XDG and reset
	xdgConfig := filepath.Join(home, "new-config")
	t.Setenv("XDG_CONFIG_HOME", xdgConfig)
	Reset()

	dir2, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir after reset: %v", err)
	}
	expectedXDG := filepath.Join(xdgConfig, "onyx-desktop")
	if dir2 != expectedXDG {
		t.Errorf("ConfigDir after reset = %q, want %q", dir2, expectedXDG)
	}
}

func TestLegacyFileNotDir(t *testing.T) {
	home := setupTestHome(t)
	// Create ~/.onyx-desktop as a file, not a directory — should NOT be treated as legacy
	legacyPath := filepath.Join(home, ".onyx-desktop")
	if err := os.WriteFile(legacyPath, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	xdgConfig := filepath.Join(home, ".config")
	t.Setenv("XDG_CONFIG_HOME", xdgConfig)
	Reset()

	configDir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if want := filepath.Join(xdgConfig, "onyx-desktop"); configDir != want {
		t.Errorf("ConfigDir = %q, want %q (file named .onyx-desktop should not trigger legacy)", configDir, want)
	}
}
