// Package platform isolates per-OS side effects behind a uniform interface
// so core logic never branches on the operating system. Each target OS has
// one implementation, selected at compile time by build tags.
//
// Everything here is a black-box side effect: the file manager, editor, and
// translucency APIs offer no return contract beyond success/failure, and
// translucency failures are intentionally unobserved.
package platform

import (
	"github.com/onyx-dot-app/desktop-core/launch"
	"github.com/onyx-dot-app/desktop-core/webview"
)

// Effects is the platform side-effect capability.
type Effects interface {
	// OpenFileInEditor opens path in the platform's text editor.
	// Spawn-and-forget: an error means the editor could not be launched,
	// nothing more is observed.
	OpenFileInEditor(path string) error

	// OpenDirectory opens path in the platform's file manager.
	OpenDirectory(path string) error

	// ApplyTranslucency applies the platform translucency effect to the
	// window, best-effort. Failure is non-fatal and unreported; the page
	// is fully usable without it.
	ApplyTranslucency(w webview.Window)
}

// New returns the Effects implementation for the current OS, launching
// external programs through sp.
func New(sp launch.Spawner) Effects {
	return newEffects(sp)
}
