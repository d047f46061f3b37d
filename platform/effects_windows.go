//go:build windows

package platform

import (
	"github.com/onyx-dot-app/desktop-core/launch"
	"github.com/onyx-dot-app/desktop-core/webview"
)

type windowsEffects struct {
	sp launch.Spawner
}

func newEffects(sp launch.Spawner) Effects {
	return &windowsEffects{sp: sp}
}

// OpenFileInEditor opens path in Notepad.
func (e *windowsEffects) OpenFileInEditor(path string) error {
	return e.sp.Spawn("notepad", path)
}

// OpenDirectory opens path in Explorer.
func (e *windowsEffects) OpenDirectory(path string) error {
	return e.sp.Spawn("explorer", path)
}

// ApplyTranslucency is a no-op: the acrylic effect is not wired on Windows.
func (e *windowsEffects) ApplyTranslucency(w webview.Window) {}

var _ Effects = (*windowsEffects)(nil)
