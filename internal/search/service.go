// Package search implements the tiered type-ahead search shared by every
// navigator.
package search

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"focusnav/internal/domain"
	"focusnav/internal/input"
	"focusnav/internal/speech"
)

// Engine handles type-ahead search over a Source
type Engine struct {
	state     *State
	source    Source
	selectFn  func(int) // announces / moves to an original index
	announcer *speech.Announcer
	clock     *domain.Clock
	timeout   uint64
}

// NewEngine creates a new search engine
func NewEngine(announcer *speech.Announcer, clock *domain.Clock) *Engine {
	return &Engine{
		state:     &State{},
		announcer: announcer,
		clock:     clock,
		timeout:   DefaultTimeout,
	}
}

// SetSource sets the item set searched
func (e *Engine) SetSource(src Source) {
	e.source = src
}

// SetSelectFunction sets the callback invoked with the original index of
// the current result. Without one the matched label is spoken.
func (e *Engine) SetSelectFunction(fn func(int)) {
	e.selectFn = fn
}

// SetTimeout sets the idle gap in ticks after which the buffer restarts;
// zero disables the timeout
func (e *Engine) SetTimeout(ticks uint64) {
	e.timeout = ticks
}

// Active reports whether a search buffer is being typed. A buffer left
// idle past the timeout is no longer active.
func (e *Engine) Active() bool {
	return e.state.Buffer != "" && !e.expired()
}

func (e *Engine) expired() bool {
	return e.timeout > 0 && e.state.Buffer != "" && e.clock.Since(e.state.LastInput) > e.timeout
}

// Tick drops a buffer that has been idle past the timeout
func (e *Engine) Tick() {
	if e.expired() {
		e.Clear()
	}
}

// Buffer returns the current search text
func (e *Engine) Buffer() string {
	return e.state.Buffer
}

// Results returns a copy of the ranked results
func (e *Engine) Results() []Match {
	return append([]Match(nil), e.state.Results...)
}

// Current returns the result under the cursor
func (e *Engine) Current() (Match, bool) {
	if len(e.state.Results) == 0 {
		return Match{}, false
	}
	return e.state.Results[e.state.Cursor], true
}

// Clear drops the buffer and results without announcing
func (e *Engine) Clear() {
	*e.state = State{}
}

// HandleKey offers a key to the search engine. Keys it does not use are
// returned unhandled so the owning navigator processes them.
func (e *Engine) HandleKey(k input.Key) bool {
	e.Tick()
	if k.IsText() {
		ch := k.Char()
		if !e.Active() && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			return false
		}
		e.AddChar(ch)
		return true
	}

	if !e.Active() || k.Mods != 0 {
		return false
	}

	switch k.Code {
	case input.KeyBackspace:
		return e.Backspace()
	case input.KeyEscape:
		e.Clear()
		e.announcer.Speak(e.announcer.Messages().SearchCleared)
		return true
	case input.KeyDown:
		e.Next()
		return true
	case input.KeyUp:
		e.Prev()
		return true
	case input.KeyHome:
		e.First()
		return true
	case input.KeyEnd:
		e.Last()
		return true
	}
	return false
}

// AddChar appends a character and searches again. Repeating a single
// character cycles through the existing results instead.
func (e *Engine) AddChar(ch rune) {
	e.Tick()
	e.state.LastInput = e.clock.Now()
	e.state.Buffer += string(ch)

	if len(e.state.Results) > 0 && isRepeatedChar(e.state.Buffer) {
		first, _ := utf8.DecodeRuneInString(e.state.Buffer)
		e.state.Buffer = string(first)
		e.step(1)
		return
	}

	e.search()
}

// Backspace removes the last character. It returns false when there was
// nothing to remove.
func (e *Engine) Backspace() bool {
	if !e.Active() {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(e.state.Buffer)
	e.state.Buffer = e.state.Buffer[:len(e.state.Buffer)-size]
	e.state.LastInput = e.clock.Now()

	if e.state.Buffer == "" {
		e.Clear()
		e.announcer.Speak(e.announcer.Messages().SearchCleared)
		return true
	}
	e.search()
	return true
}

// Next moves to the next result, wrapping
func (e *Engine) Next() { e.step(1) }

// Prev moves to the previous result, wrapping
func (e *Engine) Prev() { e.step(-1) }

// First moves to the best result
func (e *Engine) First() { e.jump(0) }

// Last moves to the worst result
func (e *Engine) Last() { e.jump(len(e.state.Results) - 1) }

func (e *Engine) search() {
	count := 0
	if e.source != nil {
		count = e.source.Count()
	}
	if e.state.Buffer == "" || count == 0 {
		e.state.Results = nil
		e.state.Cursor = 0
		e.noMatch()
		return
	}

	e.state.Results = Rank(e.source, e.state.Buffer)
	e.state.Cursor = 0
	if len(e.state.Results) == 0 {
		e.noMatch()
		return
	}
	e.selectCurrent()
}

func (e *Engine) step(delta int) {
	n := len(e.state.Results)
	if n == 0 {
		e.noMatch()
		return
	}
	next := e.state.Cursor + delta
	wrapped := next < 0 || next >= n
	e.state.Cursor = ((next % n) + n) % n
	if wrapped {
		e.announcer.Play(speech.CueWrap)
	} else {
		e.announcer.Play(speech.CueHover)
	}
	e.selectCurrent()
}

func (e *Engine) jump(index int) {
	if len(e.state.Results) == 0 {
		e.noMatch()
		return
	}
	e.state.Cursor = index
	e.announcer.Play(speech.CueHover)
	e.selectCurrent()
}

func (e *Engine) selectCurrent() {
	m := e.state.Results[e.state.Cursor]
	if e.selectFn != nil {
		e.selectFn(m.Index)
		return
	}
	e.announcer.Speak(m.Label)
}

func (e *Engine) noMatch() {
	e.announcer.Play(speech.CueNegative)
	e.announcer.Speak(e.announcer.Messages().NoMatch)
}

// isRepeatedChar reports whether s is one character typed two or more times
func isRepeatedChar(s string) bool {
	if utf8.RuneCountInString(s) < 2 {
		return false
	}
	folded := cases.Fold().String(s)
	first, _ := utf8.DecodeRuneInString(folded)
	for _, r := range folded {
		if r != first {
			return false
		}
	}
	return true
}
