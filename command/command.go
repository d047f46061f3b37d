// Package command exposes the shell's operation surface: every action the
// injected chrome, the shortcut router, or host glue can trigger goes
// through a Surface method. Methods delegate to the config state, the
// window controller, and platform effects; none holds a lock across a
// blocking call.
package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/onyx-dot-app/desktop-core/config"
	"github.com/onyx-dot-app/desktop-core/logger"
	"github.com/onyx-dot-app/desktop-core/platform"
	"github.com/onyx-dot-app/desktop-core/window"
)

// Surface binds the shell's collaborators into the command set.
type Surface struct {
	state   *config.State
	windows *window.Controller
	effects platform.Effects
}

// NewSurface creates a Surface over the given collaborators.
func NewSurface(state *config.State, windows *window.Controller, effects platform.Effects) *Surface {
	return &Surface{
		state:   state,
		windows: windows,
		effects: effects,
	}
}

// HasMainWindow reports whether the main window is currently tracked.
// Shortcut dispatch uses this to drop main-window actions when the user
// has closed every window.
func (s *Surface) HasMainWindow() bool {
	return s.windows.Main() != nil
}

// GetServerURL returns the configured server URL.
func (s *Surface) GetServerURL() string {
	return s.state.ServerURL()
}

// SetServerURL validates, normalizes, and persists a new server URL,
// returning the stored form. The current URL survives unchanged if
// validation or persistence fails.
func (s *Surface) SetServerURL(raw string) (string, error) {
	return s.state.SetServerURL(raw)
}

// ConfigPath returns the absolute path of the config file.
func (s *Surface) ConfigPath() (string, error) {
	return s.state.Store().Path()
}

// OpenConfigFile opens the config file in the platform editor, writing a
// default configuration first if the file does not exist yet so the editor
// never opens on a missing path.
func (s *Surface) OpenConfigFile() error {
	path, err := s.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.state.Store().Save(config.Default()); err != nil {
			return fmt.Errorf("writing config before open: %w", err)
		}
	}
	return s.effects.OpenFileInEditor(path)
}

// OpenConfigDirectory opens the config directory in the platform file
// manager, creating it first if needed.
func (s *Surface) OpenConfigDirectory() error {
	path, err := s.ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return s.effects.OpenDirectory(dir)
}

// NavigateTo points the labeled window at the configured server URL joined
// with path. The navigation itself is fire-and-forget.
func (s *Surface) NavigateTo(label, path string) error {
	base := s.state.ServerURL()
	full := base
	if path != "" {
		full = base + "/" + strings.TrimLeft(path, "/")
	}
	logger.WithWindow(label).Debug("navigating", "url", full)
	s.windows.Navigate(label, full)
	return nil
}

// ReloadPage reloads the labeled window's page.
func (s *Surface) ReloadPage(label string) {
	s.windows.Reload(label)
}

// GoBack navigates the labeled window back in history.
func (s *Surface) GoBack(label string) {
	s.windows.GoBack(label)
}

// GoForward navigates the labeled window forward in history.
func (s *Surface) GoForward(label string) {
	s.windows.GoForward(label)
}

// NewWindow opens a new window on the configured server URL and returns
// its label.
func (s *Surface) NewWindow() (string, error) {
	win, err := s.windows.CreateSecondary(s.state.ServerURL(), s.state.WindowTitle())
	if err != nil {
		return "", err
	}
	return win.Label(), nil
}

// ResetConfig restores the default configuration, persists it, and points
// the main window at the default server URL.
func (s *Surface) ResetConfig() error {
	if err := s.state.Reset(); err != nil {
		return err
	}
	s.windows.Navigate(window.MainLabel, s.state.ServerURL())
	return nil
}

// StartDragWindow begins a native drag of the labeled window.
func (s *Surface) StartDragWindow(label string) error {
	return s.windows.StartDrag(label)
}
