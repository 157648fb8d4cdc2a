package editor

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Modifiers is a set of held modifier keys.
type Modifiers uint8

// Modifier keys. Cmd (Meta) is folded into Ctrl when a chord is resolved so
// the same table serves every platform.
const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModMeta

	ModNone Modifiers = 0
)

// Has reports whether all of m2 are set in m.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// String returns the modifiers in "Ctrl+Shift" form.
func (m Modifiers) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Cmd")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// ParseModifiers converts names such as "ctrl", "cmd", "shift" into a set.
func ParseModifiers(names []string) (Modifiers, error) {
	var m Modifiers
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "ctrl", "control":
			m |= ModCtrl
		case "cmd", "meta", "command", "super":
			m |= ModMeta
		case "shift":
			m |= ModShift
		case "alt", "option":
			m |= ModAlt
		case "":
		default:
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
	}
	return m, nil
}

// Chord is a key pressed together with a modifier set.
type Chord struct {
	Mods Modifiers
	Key  string
}

// String returns the chord as shown in help text, e.g. "Ctrl+Shift+N".
func (c Chord) String() string {
	key := strings.ToUpper(c.Key)
	if c.Mods == ModNone {
		return key
	}
	return c.Mods.String() + "+" + key
}

// NormalizeChord folds Cmd into Ctrl and an upper-case letter into Shift plus
// the lower-case letter.
func NormalizeChord(mods Modifiers, key string) Chord {
	if mods.Has(ModMeta) {
		mods = (mods &^ ModMeta) | ModCtrl
	}
	if r, size := utf8.DecodeRuneInString(key); size == len(key) && unicode.IsLetter(r) {
		if unicode.IsUpper(r) {
			mods |= ModShift
		}
		key = string(unicode.ToLower(r))
	}
	return Chord{Mods: mods, Key: key}
}

// FoldCase lower-cases a letter key unless Shift is held. Sources that report
// modifiers exactly, such as browser key events, use it so that Caps Lock is
// not read as Shift.
func FoldCase(mods Modifiers, key string) string {
	if mods.Has(ModShift) {
		return key
	}
	if r, size := utf8.DecodeRuneInString(key); size == len(key) && unicode.IsLetter(r) {
		return string(unicode.ToLower(r))
	}
	return key
}

// Keymap maps chords to command names.
type Keymap map[Chord]CommandName

// DefaultKeymap returns the editor's standard bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		{ModCtrl, "n"}:            CmdAddConversationNode,
		{ModCtrl | ModShift, "n"}: CmdAddNoteNode,
		{ModCtrl, "z"}:            CmdUndo,
		{ModCtrl | ModShift, "z"}: CmdRedo,
		{ModCtrl, "y"}:            CmdRedo,
		{ModCtrl, "0"}:            CmdZoomToFit,
		{ModCtrl, "="}:            CmdZoomIn,
		{ModCtrl, "+"}:            CmdZoomIn,
		{ModCtrl | ModShift, "+"}: CmdZoomIn,
		{ModCtrl, "-"}:            CmdZoomOut,
		{ModCtrl | ModShift, "t"}: CmdTidyUp,
	}
}

// Resolve looks up the command bound to a chord.
func (k Keymap) Resolve(mods Modifiers, key string) (CommandName, bool) {
	name, ok := k[NormalizeChord(mods, key)]
	return name, ok
}

// Binding pairs a chord with its command for display.
type Binding struct {
	Chord   Chord
	Command CommandName
}

// Bindings returns the keymap sorted by command then chord, for help screens.
func (k Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k))
	for chord, cmd := range k {
		out = append(out, Binding{Chord: chord, Command: cmd})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Command != out[j].Command {
			return out[i].Command < out[j].Command
		}
		return out[i].Chord.String() < out[j].Chord.String()
	})
	return out
}
