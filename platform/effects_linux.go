//go:build linux

package platform

import (
	"github.com/onyx-dot-app/desktop-core/launch"
	"github.com/onyx-dot-app/desktop-core/webview"
)

type linuxEffects struct {
	sp launch.Spawner
}

func newEffects(sp launch.Spawner) Effects {
	return &linuxEffects{sp: sp}
}

// OpenFileInEditor opens path with the desktop's default handler.
func (e *linuxEffects) OpenFileInEditor(path string) error {
	return e.sp.Spawn("xdg-open", path)
}

// OpenDirectory opens path in the desktop's file manager.
func (e *linuxEffects) OpenDirectory(path string) error {
	return e.sp.Spawn("xdg-open", path)
}

// ApplyTranslucency is a no-op: translucency is compositor-dependent on
// Linux and there is no portable effect to apply.
func (e *linuxEffects) ApplyTranslucency(w webview.Window) {}

var _ Effects = (*linuxEffects)(nil)
