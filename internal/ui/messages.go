package ui

import (
	"time"
)

// tickMsg is sent on a timer and drives the focus stack clock
type tickMsg time.Time

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}
