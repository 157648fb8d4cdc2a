// Package terminal runs the pathway editor in a terminal using tcell.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"pathway/editor"
)

// KeyChord translates a tcell key event into the keymap's terms. Control
// letters arrive as KeyCtrlA..KeyCtrlZ rather than runes and are mapped back
// to their letter. If altIsMeta is set, Alt is reported as Meta, since many
// terminals send Cmd that way. Keys with no chord form report false.
func KeyChord(ev *tcell.EventKey, altIsMeta bool) (editor.Modifiers, string, bool) {
	mods := editor.ModNone
	m := ev.Modifiers()
	if m&tcell.ModCtrl != 0 {
		mods |= editor.ModCtrl
	}
	if m&tcell.ModShift != 0 {
		mods |= editor.ModShift
	}
	if m&tcell.ModMeta != 0 {
		mods |= editor.ModMeta
	}
	if m&tcell.ModAlt != 0 {
		if altIsMeta {
			mods |= editor.ModMeta
		} else {
			mods |= editor.ModAlt
		}
	}

	key := ev.Key()
	switch {
	case key == tcell.KeyRune:
		return mods, string(ev.Rune()), true

	// Tab, Enter and Backspace share codes with Ctrl+I, Ctrl+M and Ctrl+H.
	case key == tcell.KeyTab && !mods.Has(editor.ModCtrl):
		return mods, "tab", true
	case key == tcell.KeyEnter && !mods.Has(editor.ModCtrl):
		return mods, "enter", true
	case key == tcell.KeyBackspace && !mods.Has(editor.ModCtrl):
		return mods, "backspace", true

	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return mods | editor.ModCtrl, string(rune('a' + int(key-tcell.KeyCtrlA))), true
	}
	return editor.ModNone, "", false
}
