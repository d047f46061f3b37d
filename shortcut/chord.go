// Package shortcut maps global key chords to shell actions. Bindings are
// read once at startup from keymap.yaml, falling back to the built-in
// defaults, and dispatched through a Router onto the command surface.
package shortcut

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidChord is returned when a chord string cannot be parsed.
var ErrInvalidChord = errors.New("invalid chord")

// Chord is a parsed key combination: zero or more modifiers plus exactly
// one key. The zero value is not a valid chord.
type Chord struct {
	Super bool
	Ctrl  bool
	Alt   bool
	Shift bool
	Key   string
}

// keyAliases maps spelled-out key names to the character they stand for.
var keyAliases = map[string]string{
	"comma":        ",",
	"period":       ".",
	"bracketleft":  "[",
	"bracketright": "]",
}

// ParseChord parses a chord like "super+shift+n" or "super+comma". Tokens
// before the last must be modifiers; the last is the key. Matching is
// case-insensitive and "cmd" is accepted as an alias for "super".
func ParseChord(s string) (Chord, error) {
	tokens := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")

	// "super++" style chords split into empty tokens; only the trailing
	// empty token from "super+" followed by a literal "+" key is allowed.
	if len(tokens) >= 2 && tokens[len(tokens)-1] == "" && tokens[len(tokens)-2] == "" {
		tokens = append(tokens[:len(tokens)-2], "+")
	}

	var c Chord
	for i, tok := range tokens {
		last := i == len(tokens)-1
		if last {
			key, ok := keyAliases[tok]
			if !ok {
				key = tok
			}
			if key == "" {
				return Chord{}, fmt.Errorf("%w: %q has no key", ErrInvalidChord, s)
			}
			c.Key = key
			break
		}
		switch tok {
		case "super", "cmd", "command":
			c.Super = true
		case "ctrl", "control":
			c.Ctrl = true
		case "alt", "option":
			c.Alt = true
		case "shift":
			c.Shift = true
		default:
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, tok, s)
		}
	}
	return c, nil
}

// String renders the chord in canonical form: modifiers in fixed order,
// then the key.
func (c Chord) String() string {
	var parts []string
	if c.Super {
		parts = append(parts, "super")
	}
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}
