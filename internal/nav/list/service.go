// Package list implements the one-dimensional navigator: a cursor over an
// item sequence with wrap, skip-invalid and type-ahead search.
package list

import (
	"focusnav/internal/domain"
	"focusnav/internal/input"
	"focusnav/internal/search"
	"focusnav/internal/speech"
)

// Model is the item port a concrete screen implements. It is re-read on
// every query, so the backing collection may change shape between ticks.
type Model interface {
	Count() int
	Label(index int) string
}

// Activator is implemented by models whose items can be activated
type Activator interface {
	Activate(index int)
}

// Navigator is a focus context over a flat list
type Navigator struct {
	name      string
	model     Model
	valid     func(int) bool
	index     int
	announcer *speech.Announcer
	search    *search.Engine
	keys      input.KeyMap
	barrier   bool
}

// NewNavigator creates a list navigator over model
func NewNavigator(name string, model Model, announcer *speech.Announcer, clock *domain.Clock) *Navigator {
	n := &Navigator{
		name:      name,
		model:     model,
		announcer: announcer,
		search:    search.NewEngine(announcer, clock),
		keys:      input.DefaultKeyMap(),
	}
	n.search.SetSource(searchSource{n})
	n.search.SetSelectFunction(n.MoveTo)
	return n
}

// SetValidFunction sets the eligibility predicate; nil makes every index eligible
func (n *Navigator) SetValidFunction(fn func(int) bool) {
	n.valid = fn
}

// SetCapturesAllInput makes the navigator a barrier on the focus stack
func (n *Navigator) SetCapturesAllInput(v bool) {
	n.barrier = v
}

// SetKeyMap replaces the key bindings
func (n *Navigator) SetKeyMap(km input.KeyMap) {
	n.keys = km
}

// Search returns the navigator's search engine
func (n *Navigator) Search() *search.Engine {
	return n.search
}

// Index returns the current index
func (n *Navigator) Index() int {
	return n.index
}

// SetIndex moves the cursor without announcing
func (n *Navigator) SetIndex(index int) {
	n.index = n.clamp(index)
}

// Count returns the current item count
func (n *Navigator) Count() int {
	if n.model == nil {
		return 0
	}
	return n.model.Count()
}

// Label returns the label at index
func (n *Navigator) Label(index int) string {
	if index < 0 || index >= n.Count() {
		return ""
	}
	return n.model.Label(index)
}

// Eligible reports whether index may hold the cursor
func (n *Navigator) Eligible(index int) bool {
	if index < 0 || index >= n.Count() {
		return false
	}
	return n.valid == nil || n.valid(index)
}

// Next moves to the next eligible item, wrapping
func (n *Navigator) Next() bool {
	idx, wrapped, ok := ScanForward(n.clamp(n.index), n.Count(), n.valid)
	return n.land(idx, wrapped, ok)
}

// Prev moves to the previous eligible item, wrapping
func (n *Navigator) Prev() bool {
	idx, wrapped, ok := ScanBackward(n.clamp(n.index), n.Count(), n.valid)
	return n.land(idx, wrapped, ok)
}

// First moves to the first eligible item
func (n *Navigator) First() bool {
	idx, _, ok := ScanForward(-1, n.Count(), n.valid)
	return n.land(idx, false, ok)
}

// Last moves to the last eligible item
func (n *Navigator) Last() bool {
	count := n.Count()
	idx, _, ok := ScanBackward(count, count, n.valid)
	return n.land(idx, false, ok)
}

func (n *Navigator) land(idx int, wrapped, ok bool) bool {
	if !ok {
		return false
	}
	n.index = idx
	if wrapped {
		n.announcer.Play(speech.CueWrap)
	} else {
		n.announcer.Play(speech.CueHover)
	}
	n.AnnounceCurrent()
	return true
}

// MoveTo moves to index and announces it. Used by search.
func (n *Navigator) MoveTo(index int) {
	if index < 0 || index >= n.Count() {
		return
	}
	n.index = index
	n.AnnounceCurrent()
}

// AnnounceCurrent speaks the current item
func (n *Navigator) AnnounceCurrent() {
	if n.Count() == 0 {
		n.announcer.Speak(n.announcer.Messages().Empty)
		return
	}
	n.announcer.Speak(n.Label(n.clamp(n.index)))
}

// Activate activates the current item when the model supports it
func (n *Navigator) Activate() bool {
	act, ok := n.model.(Activator)
	if !ok || !n.Eligible(n.index) {
		return false
	}
	n.announcer.Play(speech.CueActivate)
	act.Activate(n.index)
	return true
}

// Reset puts the cursor on the first item and drops search state
func (n *Navigator) Reset() {
	n.index = 0
	if !n.Eligible(0) {
		if idx, _, ok := ScanForward(-1, n.Count(), n.valid); ok {
			n.index = idx
		}
	}
	n.search.Clear()
}

func (n *Navigator) clamp(index int) int {
	count := n.Count()
	if index >= count {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Name implements focus.Context
func (n *Navigator) Name() string { return n.name }

// CapturesAllInput implements focus.Context
func (n *Navigator) CapturesAllInput() bool { return n.barrier }

// HelpEntries implements focus.Context
func (n *Navigator) HelpEntries() []input.HelpEntry {
	entries := input.Entries(n.keys.Up, n.keys.Down, n.keys.First, n.keys.Last)
	if _, ok := n.model.(Activator); ok {
		entries = append(entries, input.Entries(n.keys.Activate)...)
	}
	return append(entries, input.TypeAheadEntry())
}

// Tick implements focus.Context
func (n *Navigator) Tick(uint64) {
	n.search.Tick()
}

// HandleKey implements focus.Context
func (n *Navigator) HandleKey(k input.Key) bool {
	if n.search.HandleKey(k) {
		return true
	}
	switch {
	case input.Matches(k, n.keys.Down):
		n.Next()
		return true
	case input.Matches(k, n.keys.Up):
		n.Prev()
		return true
	case input.Matches(k, n.keys.First):
		n.First()
		return true
	case input.Matches(k, n.keys.Last):
		n.Last()
		return true
	case input.Matches(k, n.keys.Activate):
		return n.Activate()
	}
	return false
}

// OnActivate implements focus.Context: start from the top and announce
func (n *Navigator) OnActivate() error {
	n.Reset()
	n.announcer.Speak(n.name)
	if n.Count() == 0 {
		n.announcer.Queue(n.announcer.Messages().Empty)
		return nil
	}
	n.announcer.Queue(n.Label(n.index))
	return nil
}

// OnDeactivate implements focus.Context
func (n *Navigator) OnDeactivate() error {
	n.Reset()
	return nil
}

// searchSource exposes eligible items to the search engine
type searchSource struct {
	n *Navigator
}

func (s searchSource) Count() int { return s.n.Count() }

func (s searchSource) Label(index int) string {
	if !s.n.Eligible(index) {
		return ""
	}
	return s.n.Label(index)
}
