package webview

import (
	"errors"
	"sync"
)

// ErrWindowClosed is returned by mock operations against a closed window.
var ErrWindowClosed = errors.New("window is closed")

// MockEngine records window creation for tests. Created windows are
// MockWindows that record evaluated scripts.
type MockEngine struct {
	mu        sync.Mutex
	windows   []*MockWindow
	createErr error
}

// NewMockEngine creates a MockEngine.
func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

// SetCreateErr makes subsequent CreateWindow calls fail with err.
func (e *MockEngine) SetCreateErr(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.createErr = err
}

// CreateWindow records the options and returns a new MockWindow.
func (e *MockEngine) CreateWindow(opts Options) (Window, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.createErr != nil {
		return nil, e.createErr
	}

	w := &MockWindow{opts: opts}
	e.windows = append(e.windows, w)
	return w, nil
}

// Windows returns a snapshot of all windows created so far.
func (e *MockEngine) Windows() []*MockWindow {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*MockWindow, len(e.windows))
	copy(out, e.windows)
	return out
}

// MockWindow records script evaluations and lifecycle calls.
type MockWindow struct {
	mu              sync.Mutex
	opts            Options
	evals           []string
	evalErr         error
	closed          bool
	focusCalls      int
	dragCalls       int
	translucencyOn  int
	translucencyErr error
}

// Options returns the options the window was created with.
func (w *MockWindow) Options() Options {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opts
}

// Label returns the window's label.
func (w *MockWindow) Label() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opts.Label
}

// Eval records the script, or fails if the window is closed or an eval
// error was injected.
func (w *MockWindow) Eval(script string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWindowClosed
	}
	if w.evalErr != nil {
		return w.evalErr
	}
	w.evals = append(w.evals, script)
	return nil
}

// SetEvalErr makes subsequent Eval calls fail with err.
func (w *MockWindow) SetEvalErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.evalErr = err
}

// Evals returns a snapshot of all evaluated scripts.
func (w *MockWindow) Evals() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.evals))
	copy(out, w.evals)
	return out
}

// EvalCount returns how many scripts have been evaluated.
func (w *MockWindow) EvalCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.evals)
}

// SetFocus records a focus call.
func (w *MockWindow) SetFocus() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWindowClosed
	}
	w.focusCalls++
	return nil
}

// FocusCalls returns how many times SetFocus was called.
func (w *MockWindow) FocusCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focusCalls
}

// StartDragging records a drag call.
func (w *MockWindow) StartDragging() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWindowClosed
	}
	w.dragCalls++
	return nil
}

// DragCalls returns how many times StartDragging was called.
func (w *MockWindow) DragCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dragCalls
}

// ApplyTranslucency records a translucency call, or fails with the
// injected error.
func (w *MockWindow) ApplyTranslucency(material string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.translucencyErr != nil {
		return w.translucencyErr
	}
	w.translucencyOn++
	return nil
}

// SetTranslucencyErr makes subsequent ApplyTranslucency calls fail.
func (w *MockWindow) SetTranslucencyErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.translucencyErr = err
}

// TranslucencyCalls returns how many times ApplyTranslucency succeeded.
func (w *MockWindow) TranslucencyCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.translucencyOn
}

// Close marks the window destroyed. Further Eval/focus/drag calls fail.
func (w *MockWindow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

// IsClosed reports whether Close has been called.
func (w *MockWindow) IsClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Ensure implementations satisfy the interfaces.
var _ Engine = (*MockEngine)(nil)
var _ Window = (*MockWindow)(nil)
var _ Translucent = (*MockWindow)(nil)
