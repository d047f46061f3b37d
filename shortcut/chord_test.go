package shortcut

import (
	"errors"
	"testing"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		in   string
		want Chord
	}{
		{"super+n", Chord{Super: true, Key: "n"}},
		{"super+shift+n", Chord{Super: true, Shift: true, Key: "n"}},
		{"super+r", Chord{Super: true, Key: "r"}},
		{"super+[", Chord{Super: true, Key: "["}},
		{"super+]", Chord{Super: true, Key: "]"}},
		{"super+comma", Chord{Super: true, Key: ","}},
		{"super+,", Chord{Super: true, Key: ","}},
		{"ctrl+alt+t", Chord{Ctrl: true, Alt: true, Key: "t"}},
		{"cmd+n", Chord{Super: true, Key: "n"}},
		{"CMD+Shift+N", Chord{Super: true, Shift: true, Key: "n"}},
		{"  super+n  ", Chord{Super: true, Key: "n"}},
		{"n", Chord{Key: "n"}},
		{"super++", Chord{Super: true, Key: "+"}},
		{"super+bracketleft", Chord{Super: true, Key: "["}},
	}
	for _, tt := range tests {
		got, err := ParseChord(tt.in)
		if err != nil {
			t.Errorf("ParseChord(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChord(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseChord_Invalid(t *testing.T) {
	for _, in := range []string{"", "super+", "meta+n", "super+hyper+n", "+n"} {
		if _, err := ParseChord(in); !errors.Is(err, ErrInvalidChord) {
			t.Errorf("ParseChord(%q) = %v, want ErrInvalidChord", in, err)
		}
	}
}

func TestChordString_Canonical(t *testing.T) {
	tests := []struct {
		in   Chord
		want string
	}{
		{Chord{Super: true, Key: "n"}, "super+n"},
		{Chord{Super: true, Shift: true, Key: "n"}, "super+shift+n"},
		{Chord{Super: true, Ctrl: true, Alt: true, Shift: true, Key: "x"}, "super+ctrl+alt+shift+x"},
		{Chord{Key: ","}, ","},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChordString_RoundTrips(t *testing.T) {
	for chord := range DefaultKeymap() {
		parsed, err := ParseChord(chord.String())
		if err != nil {
			t.Errorf("ParseChord(%q): %v", chord.String(), err)
			continue
		}
		if parsed != chord {
			t.Errorf("round trip of %q changed chord: %+v", chord.String(), parsed)
		}
	}
}
