package shortcut

import (
	"sync"

	"github.com/onyx-dot-app/desktop-core/logger"
	"github.com/onyx-dot-app/desktop-core/window"
)

// Ops is the slice of the command surface that shortcuts drive.
type Ops interface {
	HasMainWindow() bool
	NavigateTo(label, path string) error
	ReloadPage(label string)
	GoBack(label string)
	GoForward(label string)
	NewWindow() (string, error)
	OpenConfigFile() error
}

// Registrar registers a handler for a global chord with the host platform.
// Registration can fail per chord (another app holds it, the platform
// refuses global hooks); callers treat each failure independently.
type Registrar interface {
	Register(chord Chord, handler func()) error
}

// Router dispatches shortcut actions onto the command surface. Dispatch is
// synchronous except for window creation, which is offloaded so a slow
// platform window build never stalls the shortcut callback thread.
type Router struct {
	ops Ops

	mu              sync.Mutex
	onNewWindowDone func(label string, err error)
}

// NewRouter creates a Router over ops.
func NewRouter(ops Ops) *Router {
	return &Router{ops: ops}
}

// SetOnNewWindowDone sets a callback invoked after an offloaded new-window
// action completes (for testing).
func (r *Router) SetOnNewWindowDone(f func(label string, err error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onNewWindowDone = f
}

// Dispatch runs the given action. Every action except new-window requires
// the main window; without one it is a no-op. Failures are logged, never
// propagated: a shortcut has no one to return an error to.
func (r *Router) Dispatch(action Action) {
	log := logger.WithComponent("shortcut")

	if action == ActionNewWindow {
		go func() {
			label, err := r.ops.NewWindow()
			if err != nil {
				log.Error("shortcut window creation failed", "error", err)
			}
			r.mu.Lock()
			done := r.onNewWindowDone
			r.mu.Unlock()
			if done != nil {
				done(label, err)
			}
		}()
		return
	}

	if !r.ops.HasMainWindow() {
		log.Debug("no main window, ignoring shortcut", "action", string(action))
		return
	}

	switch action {
	case ActionNewChat:
		if err := r.ops.NavigateTo(window.MainLabel, "/chat"); err != nil {
			log.Error("new-chat navigation failed", "error", err)
		}
	case ActionReload:
		r.ops.ReloadPage(window.MainLabel)
	case ActionBack:
		r.ops.GoBack(window.MainLabel)
	case ActionForward:
		r.ops.GoForward(window.MainLabel)
	case ActionOpenSettings:
		if err := r.ops.OpenConfigFile(); err != nil {
			log.Error("open settings failed", "error", err)
		}
	default:
		log.Warn("unknown shortcut action", "action", string(action))
	}
}

// Handler returns a registration callback for action.
func (r *Router) Handler(action Action) func() {
	return func() { r.Dispatch(action) }
}

// Bind registers every keymap binding with reg, routing each to router.
// A chord that fails to register is logged and skipped so the remaining
// shortcuts still work. Returns the number of chords registered.
func Bind(reg Registrar, router *Router, km Keymap) int {
	log := logger.WithComponent("shortcut")
	bound := 0
	for chord, action := range km {
		if err := reg.Register(chord, router.Handler(action)); err != nil {
			log.Warn("failed to register shortcut", "chord", chord.String(), "action", string(action), "error", err)
			continue
		}
		bound++
	}
	log.Info("registered shortcuts", "count", bound, "total", len(km))
	return bound
}

// MockRegistrar records registrations for tests.
type MockRegistrar struct {
	mu       sync.Mutex
	handlers map[string]func()
	failOn   map[string]error
}

// NewMockRegistrar creates a MockRegistrar.
func NewMockRegistrar() *MockRegistrar {
	return &MockRegistrar{
		handlers: make(map[string]func()),
		failOn:   make(map[string]error),
	}
}

// FailOn makes registration of the given chord fail with err.
func (m *MockRegistrar) FailOn(chord Chord, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn[chord.String()] = err
}

// Register records the handler, or fails if an error was injected for the
// chord.
func (m *MockRegistrar) Register(chord Chord, handler func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[chord.String()]; err != nil {
		return err
	}
	m.handlers[chord.String()] = handler
	return nil
}

// Registered returns how many chords are registered.
func (m *MockRegistrar) Registered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handlers)
}

// Press invokes the handler registered for chord, if any.
func (m *MockRegistrar) Press(chord Chord) bool {
	m.mu.Lock()
	h := m.handlers[chord.String()]
	m.mu.Unlock()
	if h == nil {
		return false
	}
	h()
	return true
}

var _ Registrar = (*MockRegistrar)(nil)
