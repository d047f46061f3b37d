package shortcut

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/onyx-dot-app/desktop-core/logger"
)

// Action names a shell operation a shortcut can trigger.
type Action string

const (
	ActionNewChat      Action = "new-chat"
	ActionReload       Action = "reload"
	ActionBack         Action = "back"
	ActionForward      Action = "forward"
	ActionNewWindow    Action = "new-window"
	ActionOpenSettings Action = "open-settings"
)

// knownActions is the set of actions a keymap entry may name.
var knownActions = map[Action]bool{
	ActionNewChat:      true,
	ActionReload:       true,
	ActionBack:         true,
	ActionForward:      true,
	ActionNewWindow:    true,
	ActionOpenSettings: true,
}

// Keymap maps chords to the actions they trigger.
type Keymap map[Chord]Action

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		{Super: true, Key: "n"}:              ActionNewChat,
		{Super: true, Key: "r"}:              ActionReload,
		{Super: true, Key: "["}:              ActionBack,
		{Super: true, Key: "]"}:              ActionForward,
		{Super: true, Shift: true, Key: "n"}: ActionNewWindow,
		{Super: true, Key: ","}:              ActionOpenSettings,
	}
}

// keymapFile is the on-disk shape of keymap.yaml:
//
//	bindings:
//	  super+n: new-chat
//	  super+shift+n: new-window
type keymapFile struct {
	Bindings map[string]string `yaml:"bindings"`
}

// LoadKeymap reads bindings from path and overlays them on the defaults.
// The file is optional; a missing file yields the defaults. A file that
// cannot be read or parsed is logged and ignored, and individual entries
// with an unparseable chord or unknown action are logged and skipped, so
// a bad keymap never prevents startup. Bindings are read once; changes
// take effect on the next launch.
func LoadKeymap(path string) Keymap {
	log := logger.WithComponent("shortcut")
	km := DefaultKeymap()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return km
	}
	if err != nil {
		log.Error("failed to read keymap, using defaults", "path", path, "error", err)
		return km
	}

	var file keymapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		log.Error("failed to parse keymap, using defaults", "path", path, "error", err)
		return km
	}

	for raw, name := range file.Bindings {
		chord, err := ParseChord(raw)
		if err != nil {
			log.Warn("skipping keymap entry", "chord", raw, "error", err)
			continue
		}
		action := Action(name)
		if !knownActions[action] {
			log.Warn("skipping keymap entry with unknown action", "chord", raw, "action", name)
			continue
		}
		km[chord] = action
	}

	log.Info("loaded keymap", "path", path, "bindings", len(km))
	return km
}
