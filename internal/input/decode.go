package input

import (
	tea "github.com/charmbracelet/bubbletea"
)

var teaCodes = map[tea.KeyType]Key{
	tea.KeyUp:        {Code: KeyUp},
	tea.KeyDown:      {Code: KeyDown},
	tea.KeyLeft:      {Code: KeyLeft},
	tea.KeyRight:     {Code: KeyRight},
	tea.KeyHome:      {Code: KeyHome},
	tea.KeyEnd:       {Code: KeyEnd},
	tea.KeyPgUp:      {Code: KeyPageUp},
	tea.KeyPgDown:    {Code: KeyPageDown},
	tea.KeyEnter:     {Code: KeyEnter},
	tea.KeyEsc:       {Code: KeyEscape},
	tea.KeyBackspace: {Code: KeyBackspace},
	tea.KeyDelete:    {Code: KeyDelete},
	tea.KeyTab:       {Code: KeyTab},
	tea.KeySpace:     {Code: KeySpace},
	tea.KeyF1:        {Code: KeyF1},

	tea.KeyCtrlUp:    {Code: KeyUp, Mods: ModCtrl},
	tea.KeyCtrlDown:  {Code: KeyDown, Mods: ModCtrl},
	tea.KeyCtrlLeft:  {Code: KeyLeft, Mods: ModCtrl},
	tea.KeyCtrlRight: {Code: KeyRight, Mods: ModCtrl},
	tea.KeyCtrlHome:  {Code: KeyHome, Mods: ModCtrl},
	tea.KeyCtrlEnd:   {Code: KeyEnd, Mods: ModCtrl},
	tea.KeyShiftUp:   {Code: KeyUp, Mods: ModShift},
	tea.KeyShiftDown: {Code: KeyDown, Mods: ModShift},
	tea.KeyShiftTab:  {Code: KeyTab, Mods: ModShift},
}

// FromTea decodes a bubbletea key message. ok is false for keys the core
// has no use for (e.g. control characters other than the mapped ones).
func FromTea(msg tea.KeyMsg) (Key, bool) {
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return Key{}, false
		}
		k := Rune(msg.Runes[0])
		if msg.Alt {
			k.Mods |= ModAlt
		}
		return k, true
	}
	k, ok := teaCodes[msg.Type]
	if !ok {
		return Key{}, false
	}
	if msg.Alt {
		k.Mods |= ModAlt
	}
	return k, true
}
