// Package window creates, configures, and tracks webview windows, and owns
// chrome injection into them.
package window

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/onyx-dot-app/desktop-core/logger"
	"github.com/onyx-dot-app/desktop-core/platform"
	"github.com/onyx-dot-app/desktop-core/webview"
)

// MainLabel is the fixed label of the main window.
const MainLabel = "main"

// Default window geometry, matching the shell's designed layout.
const (
	defaultWidth  = 1200
	defaultHeight = 800
	minWidth      = 800
	minHeight     = 600
)

// ErrWindowNotFound is returned when an operation targets a label with no
// live window.
var ErrWindowNotFound = errors.New("window not found")

// injectDelays is the chrome injection schedule. The remote page controls
// its own load timing and exposes no completion callback to the host, so
// the script is blindly re-evaluated on a fixed backoff: 5 attempts at
// 1s, 2s, 3s, 4s, 5s after creation. The script is idempotent and each
// attempt's failure is ignored.
var injectDelays = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	3 * time.Second,
	4 * time.Second,
	5 * time.Second,
}

// Controller tracks live windows by label and drives all window-directed
// side effects: creation, chrome injection, navigation script evaluation,
// and dragging. Windows are independent; the only shared state is the
// label registry.
type Controller struct {
	engine  webview.Engine
	effects platform.Effects

	mu      sync.RWMutex // Protects windows map
	windows map[string]webview.Window

	bridgeAddr   string
	chromeScript string
	delays       []time.Duration
	onInjectDone func(label string)
}

// NewController creates a controller over the given engine and platform
// effects.
func NewController(engine webview.Engine, effects platform.Effects) *Controller {
	return &Controller{
		engine:       engine,
		effects:      effects,
		windows:      make(map[string]webview.Window),
		chromeScript: titlebarScript,
		delays:       injectDelays,
	}
}

// SetBridgeAddr sets the command bridge address handed to injected chrome.
func (c *Controller) SetBridgeAddr(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bridgeAddr = addr
}

// SetChromeScript replaces the injected chrome script (for testing).
func (c *Controller) SetChromeScript(script string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chromeScript = script
}

// SetInjectDelays replaces the injection schedule (for testing).
func (c *Controller) SetInjectDelays(delays []time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delays = delays
}

// SetOnInjectDone sets a callback invoked when a window's injection
// schedule has run to completion (for testing).
func (c *Controller) SetOnInjectDone(f func(label string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onInjectDone = f
}

// CreateMain creates the main window pointed at serverURL and focuses it.
func (c *Controller) CreateMain(serverURL, title string) (webview.Window, error) {
	win, err := c.create(MainLabel, serverURL, title)
	if err != nil {
		return nil, err
	}
	if err := win.SetFocus(); err != nil {
		logger.WithWindow(MainLabel).Debug("failed to focus main window", "error", err)
	}
	return win, nil
}

// CreateSecondary creates a new window with a generated unique label
// pointed at serverURL.
func (c *Controller) CreateSecondary(serverURL, title string) (webview.Window, error) {
	label := "onyx-" + uuid.New().String()
	return c.create(label, serverURL, title)
}

// create builds a window with the shell's standard chrome style, registers
// it, applies translucency best-effort, and starts the injection schedule.
// On failure no partial window is left registered.
func (c *Controller) create(label, serverURL, title string) (webview.Window, error) {
	log := logger.WithWindow(label)

	if _, err := url.ParseRequestURI(serverURL); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	win, err := c.engine.CreateWindow(webview.Options{
		Label:           label,
		URL:             serverURL,
		Title:           title,
		Width:           defaultWidth,
		Height:          defaultHeight,
		MinWidth:        minWidth,
		MinHeight:       minHeight,
		Transparent:     true,
		TitleBarOverlay: true,
		HiddenTitle:     true,
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.windows[label] = win
	c.mu.Unlock()

	log.Info("window created", "url", serverURL)

	c.effects.ApplyTranslucency(win)

	go c.injectChrome(win)

	return win, nil
}

// InjectChrome starts the injection schedule against an already-registered
// window (used for the main window when the host runtime created it).
func (c *Controller) InjectChrome(win webview.Window) {
	go c.injectChrome(win)
}

// injectChrome evaluates the chrome script against win on the fixed
// schedule. Each attempt is independent; failures (window closed, script
// error) are ignored since a later attempt or the page's own readiness may
// succeed. There is no cancellation: a destroyed window just fails the
// remaining attempts silently.
func (c *Controller) injectChrome(win webview.Window) {
	label := win.Label()
	log := logger.WithWindow(label)

	c.mu.RLock()
	delays := c.delays
	script := chromeScriptFor(c.bridgeAddr, label, c.chromeScript)
	done := c.onInjectDone
	c.mu.RUnlock()

	for i, delay := range delays {
		time.Sleep(delay)
		if err := win.Eval(script); err != nil {
			log.Debug("chrome injection attempt failed", "attempt", i+1, "error", err)
		} else {
			log.Debug("chrome injected", "attempt", i+1)
		}
	}

	if done != nil {
		done(label)
	}
}

// Get returns the window with the given label, or nil if none exists.
func (c *Controller) Get(label string) webview.Window {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.windows[label]
}

// Main returns the main window, or nil if none exists.
func (c *Controller) Main() webview.Window {
	return c.Get(MainLabel)
}

// Labels returns the labels of all tracked windows.
func (c *Controller) Labels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	labels := make([]string, 0, len(c.windows))
	for label := range c.windows {
		labels = append(labels, label)
	}
	return labels
}

// Remove drops a window from the registry. The host glue calls this when
// the user closes a window.
func (c *Controller) Remove(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.windows[label]; ok {
		delete(c.windows, label)
		logger.WithWindow(label).Debug("window removed")
	}
}

// eval runs a fire-and-forget script against the labeled window. A missing
// window or a failed evaluation is a silent no-op, matching the one-way
// contract of the rendering capability.
func (c *Controller) eval(label, script string) {
	win := c.Get(label)
	if win == nil {
		return
	}
	if err := win.Eval(script); err != nil {
		logger.WithWindow(label).Debug("script evaluation failed", "error", err)
	}
}

// Navigate points the labeled window at fullURL.
func (c *Controller) Navigate(label, fullURL string) {
	c.eval(label, fmt.Sprintf("window.location.href = '%s'", fullURL))
}

// Reload reloads the labeled window's page.
func (c *Controller) Reload(label string) {
	c.eval(label, "window.location.reload()")
}

// GoBack navigates the labeled window back in history.
func (c *Controller) GoBack(label string) {
	c.eval(label, "window.history.back()")
}

// GoForward navigates the labeled window forward in history.
func (c *Controller) GoForward(label string) {
	c.eval(label, "window.history.forward()")
}

// StartDrag begins a native drag of the labeled window.
func (c *Controller) StartDrag(label string) error {
	win := c.Get(label)
	if win == nil {
		return fmt.Errorf("%w: %s", ErrWindowNotFound, label)
	}
	return win.StartDragging()
}

// Shutdown clears the registry. In-flight injection schedules run out on
// their own against destroyed windows.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	log := logger.WithComponent("window")
	log.Info("shutting down window controller", "count", len(c.windows))
	c.windows = make(map[string]webview.Window)
}
