// Package input defines the decoded key events the navigation core consumes
// and the key bindings that drive both dispatch and help entries.
package input

import (
	"strings"
	"unicode"
)

// Code identifies a non-character key
type Code int

const (
	KeyNone Code = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeySpace
	KeyF1
)

var codeNames = map[Code]string{
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyTab:       "tab",
	KeySpace:     " ",
	KeyF1:        "f1",
}

// Modifiers are the held modifier flags of a key-down event
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
)

// Key is one decoded key-down event
type Key struct {
	Code Code
	Rune rune
	Mods Modifiers
}

// Rune returns a character key event
func Rune(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Press returns a non-character key event with optional modifiers
func Press(code Code, mods ...Modifiers) Key {
	k := Key{Code: code}
	for _, m := range mods {
		k.Mods |= m
	}
	return k
}

// Ctrl reports whether the control modifier is held
func (k Key) Ctrl() bool { return k.Mods&ModCtrl != 0 }

// Alt reports whether the alt modifier is held
func (k Key) Alt() bool { return k.Mods&ModAlt != 0 }

// Shift reports whether the shift modifier is held
func (k Key) Shift() bool { return k.Mods&ModShift != 0 }

// IsText reports whether the key carries a printable character that may
// feed a type-ahead buffer
func (k Key) IsText() bool {
	if k.Mods&(ModCtrl|ModAlt) != 0 {
		return false
	}
	if k.Code == KeySpace {
		return true
	}
	return k.Code == KeyRune && unicode.IsPrint(k.Rune)
}

// Char returns the character for text keys
func (k Key) Char() rune {
	if k.Code == KeySpace {
		return ' '
	}
	return k.Rune
}

// String renders the key the way bubbletea names keys ("ctrl+down", "a",
// "enter") so it can be matched against key bindings.
func (k Key) String() string {
	var base string
	switch k.Code {
	case KeyNone:
		return ""
	case KeyRune:
		base = string(k.Rune)
	default:
		base = codeNames[k.Code]
	}
	var b strings.Builder
	if k.Ctrl() {
		b.WriteString("ctrl+")
	}
	if k.Alt() {
		b.WriteString("alt+")
	}
	if k.Shift() && k.Code != KeyRune {
		b.WriteString("shift+")
	}
	b.WriteString(base)
	return b.String()
}

// HelpEntry is one line of the help surface
type HelpEntry struct {
	Key         string
	Description string
}
