// Package webview abstracts the rendering capability behind interfaces.
// The shell treats the engine as opaque: it can create windows, and a window
// can load a URL and evaluate injected script. Nothing about the rendered
// page is observable from this side.
//
// Production wires a real engine binding; tests inject the recording mocks
// from mock.go.
package webview

// Options describes a window to create.
type Options struct {
	Label  string
	URL    string
	Title  string
	Width  float64
	Height float64

	// Minimum inner size. Zero means no constraint.
	MinWidth  float64
	MinHeight float64

	// Transparent enables an alpha-capable surface so platform translucency
	// effects can show through.
	Transparent bool

	// TitleBarOverlay overlays the native title bar on the page content and
	// HiddenTitle suppresses the native title text, leaving room for the
	// injected chrome to draw its own.
	TitleBarOverlay bool
	HiddenTitle     bool
}

// Engine creates webview windows.
type Engine interface {
	// CreateWindow constructs a window rendering opts.URL. Fails if the URL
	// is unparseable or the platform layer refuses the window.
	CreateWindow(opts Options) (Window, error)
}

// Window is a live rendering surface. Script evaluation is one-way: no
// result is observed beyond local evaluation success.
type Window interface {
	// Label returns the window's unique label.
	Label() string

	// Eval evaluates script against the loaded page. Returns an error if
	// the window is gone or the engine rejects the script; callers treat
	// evaluation as fire-and-forget.
	Eval(script string) error

	// SetFocus brings the window to the front.
	SetFocus() error

	// StartDragging begins a native window drag from the current cursor
	// position.
	StartDragging() error

	// IsClosed reports whether the window has been destroyed.
	IsClosed() bool
}

// Translucent is implemented by windows whose platform supports a native
// translucency effect. Applying it is always best-effort.
type Translucent interface {
	ApplyTranslucency(material string) error
}
