package demo

import (
	"focusnav/internal/focus"
)

// Screen stands in for the UI element a context is attached to. A closed
// screen's context is reclaimed by the stack's stale sweep.
type Screen struct {
	Name string
	open bool
}

func (s *Screen) Open()        { s.open = true }
func (s *Screen) Close()       { s.open = false }
func (s *Screen) IsOpen() bool { return s.open }

// screenContext ties a navigator to its screen
type screenContext struct {
	focus.Context
	screen *Screen
}

func (c *screenContext) Backing() any { return c.screen }

func (c *screenContext) Active() bool { return c.screen.IsOpen() }
