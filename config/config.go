// Package config owns the shell's persisted settings: the configured server
// URL and window title. It provides the on-disk store (config.json under the
// platform config directory) and the process-wide shared state handle that
// every other component reads through.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultServerURL is the server the shell points at on first run.
	DefaultServerURL = "https://cloud.onyx.app"

	// DefaultWindowTitle is used when the config file omits window_title.
	DefaultWindowTitle = "Onyx"
)

// ErrInvalidServerURL is returned when a server URL fails validation.
// It is rejected before any write, so prior state stays intact.
var ErrInvalidServerURL = errors.New("URL must start with http:// or https://")

// Config holds the shell's persisted settings. Unknown fields in the file
// are ignored so hand-edited configs stay forward-compatible.
type Config struct {
	// ServerURL is the remote application URL. Always stored as a valid
	// absolute URL with no trailing slash.
	ServerURL string `json:"server_url"`

	// WindowTitle is the native window title. Optional in the file.
	WindowTitle string `json:"window_title"`
}

// Default returns the configuration used on first run and after a reset.
func Default() Config {
	return Config{
		ServerURL:   DefaultServerURL,
		WindowTitle: DefaultWindowTitle,
	}
}

// NormalizeServerURL validates a server URL and returns its stored form:
// scheme must be http or https, and any trailing slashes are stripped.
func NormalizeServerURL(raw string) (string, error) {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "", ErrInvalidServerURL
	}

	trimmed := strings.TrimRight(raw, "/")

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidServerURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidServerURL)
	}

	return trimmed, nil
}

// sanitize fills in defaults for missing optional fields and repairs the
// server URL after loading a hand-edited file. An unusable URL falls back
// to the default rather than failing the whole load.
func (c Config) sanitize() Config {
	if c.WindowTitle == "" {
		c.WindowTitle = DefaultWindowTitle
	}
	normalized, err := NormalizeServerURL(c.ServerURL)
	if err != nil {
		c.ServerURL = DefaultServerURL
	} else {
		c.ServerURL = normalized
	}
	return c
}
