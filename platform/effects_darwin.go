//go:build darwin

package platform

import (
	"github.com/onyx-dot-app/desktop-core/launch"
	"github.com/onyx-dot-app/desktop-core/logger"
	"github.com/onyx-dot-app/desktop-core/webview"
)

// sidebarMaterial matches the translucent glass look of the native sidebar.
const sidebarMaterial = "sidebar"

type darwinEffects struct {
	sp launch.Spawner
}

func newEffects(sp launch.Spawner) Effects {
	return &darwinEffects{sp: sp}
}

// OpenFileInEditor opens path in TextEdit (or the user's default text editor).
func (e *darwinEffects) OpenFileInEditor(path string) error {
	return e.sp.Spawn("open", "-t", path)
}

// OpenDirectory opens path in Finder.
func (e *darwinEffects) OpenDirectory(path string) error {
	return e.sp.Spawn("open", path)
}

// ApplyTranslucency applies the NSVisualEffect sidebar material when the
// window supports it.
func (e *darwinEffects) ApplyTranslucency(w webview.Window) {
	t, ok := w.(webview.Translucent)
	if !ok {
		return
	}
	if err := t.ApplyTranslucency(sidebarMaterial); err != nil {
		logger.WithWindow(w.Label()).Debug("translucency not applied", "error", err)
	}
}

var _ Effects = (*darwinEffects)(nil)
