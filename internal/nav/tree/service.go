// Package tree implements the N-level navigator: a level plus one index per
// level, layered on the list navigator for the root level.
package tree

import (
	"log"

	"focusnav/internal/domain"
	"focusnav/internal/input"
	"focusnav/internal/nav/list"
	"focusnav/internal/search"
	"focusnav/internal/speech"
)

// Navigator is a focus context over a tree
type Navigator struct {
	name        string
	model       Model
	level       int
	indices     []int
	maxLevel    int
	searchLevel int
	searchModel SearchModel
	root        *list.Navigator
	announcer   *speech.Announcer
	search      *search.Engine
	keys        input.KeyMap
	barrier     bool
}

// NewNavigator creates a tree navigator over model with levels 0..maxLevel
func NewNavigator(name string, model Model, maxLevel int, announcer *speech.Announcer, clock *domain.Clock) *Navigator {
	if maxLevel < 0 {
		maxLevel = 0
	}
	n := &Navigator{
		name:      name,
		model:     model,
		indices:   make([]int, maxLevel+1),
		maxLevel:  maxLevel,
		root:      list.NewNavigator(name, rootModel{model}, announcer, clock),
		announcer: announcer,
		search:    search.NewEngine(announcer, clock),
		keys:      input.DefaultKeyMap(),
	}
	n.SetSearchModel(0, levelSearch{model})
	n.search.SetSelectFunction(n.selectSearchResult)
	return n
}

// SetSearchModel sets the level type-ahead search targets and its flat index
func (n *Navigator) SetSearchModel(level int, sm SearchModel) {
	if level < 0 || level > n.maxLevel {
		log.Printf("tree: search level %d out of range 0..%d, keeping %d", level, n.maxLevel, n.searchLevel)
		return
	}
	n.searchLevel = level
	n.searchModel = sm
	n.search.SetSource(searchSource{sm})
}

// SetCapturesAllInput makes the navigator a barrier on the focus stack
func (n *Navigator) SetCapturesAllInput(v bool) {
	n.barrier = v
}

// SetKeyMap replaces the key bindings
func (n *Navigator) SetKeyMap(km input.KeyMap) {
	n.keys = km
	n.root.SetKeyMap(km)
}

// Search returns the navigator's search engine
func (n *Navigator) Search() *search.Engine {
	return n.search
}

// Level returns the current depth
func (n *Navigator) Level() int {
	return n.level
}

// Path returns a copy of the indices of the current item
func (n *Navigator) Path() []int {
	return append([]int(nil), n.indices[:n.level+1]...)
}

// SetPath moves the cursor to path without announcing
func (n *Navigator) SetPath(path []int) {
	if len(path) == 0 || len(path) > n.maxLevel+1 {
		return
	}
	n.level = len(path) - 1
	copy(n.indices, path)
	n.root.SetIndex(n.indices[0])
}

func (n *Navigator) count(level int) int {
	if level < 0 || level > n.maxLevel {
		return 0
	}
	return n.model.Count(level, n.indices[:level])
}

// HasChildren reports whether the current item can be drilled into
func (n *Navigator) HasChildren() bool {
	return n.level < n.maxLevel && n.count(n.level+1) > 0
}

// Next moves to the next item, crossing into the next parent group at the end
func (n *Navigator) Next() bool {
	if n.level == 0 {
		return n.rootMove(n.root.Next)
	}
	count := n.count(n.level)
	if n.indices[n.level]+1 < count {
		n.indices[n.level]++
		n.announcer.Play(speech.CueHover)
		n.AnnounceCurrent(false)
		return true
	}
	return n.JumpToNextParent()
}

// Prev moves to the previous item, crossing into the previous parent group
// at the start
func (n *Navigator) Prev() bool {
	if n.level == 0 {
		return n.rootMove(n.root.Prev)
	}
	count := n.count(n.level)
	if n.indices[n.level] >= count {
		n.indices[n.level] = count
	}
	if n.indices[n.level] > 0 {
		n.indices[n.level]--
		n.announcer.Play(speech.CueHover)
		n.AnnounceCurrent(false)
		return true
	}
	return n.JumpToPrevParent()
}

// GroupNext skips to the first child of the next non-empty parent
func (n *Navigator) GroupNext() bool {
	if n.level == 0 {
		return n.Next()
	}
	return n.JumpToNextParent()
}

// GroupPrev skips to the previous non-empty parent group
func (n *Navigator) GroupPrev() bool {
	if n.level == 0 {
		return n.Prev()
	}
	return n.JumpToPrevParent()
}

// JumpToNextParent lands on the first child of the next parent that has
// children, scanning forward with wrap. It is a no-op when no other parent
// has children.
func (n *Navigator) JumpToNextParent() bool {
	return n.jumpParent(1, false)
}

// JumpToPrevParent lands on the last child of the previous parent that has
// children, scanning backward with wrap
func (n *Navigator) JumpToPrevParent() bool {
	return n.jumpParent(-1, true)
}

func (n *Navigator) jumpParent(dir int, landLast bool) bool {
	if n.level == 0 {
		return false
	}
	p := n.level - 1
	parentCount := n.count(p)
	start := n.indices[p]

	for i := 1; i < parentCount; i++ {
		cand := mod(start+dir*i, parentCount)
		n.indices[p] = cand
		children := n.count(n.level)
		if children == 0 {
			continue
		}
		if landLast {
			n.indices[n.level] = children - 1
		} else {
			n.indices[n.level] = 0
		}
		if p == 0 {
			n.root.SetIndex(cand)
		}
		wrapped := cand <= start
		if dir < 0 {
			wrapped = cand >= start
		}
		if wrapped {
			n.announcer.Play(speech.CueWrap)
		} else {
			n.announcer.Play(speech.CueHover)
		}
		n.AnnounceCurrent(true)
		return true
	}

	n.indices[p] = start
	return false
}

// DrillDown enters the children of the current item, skipping levels that
// hold a single item with children of its own
func (n *Navigator) DrillDown() bool {
	if !n.HasChildren() {
		return false
	}
	n.level++
	n.indices[n.level] = 0
	skipped := n.skipSingletonLevels()
	n.announcer.Play(speech.CueHover)
	n.AnnounceCurrent(skipped > 0)
	return true
}

func (n *Navigator) skipSingletonLevels() int {
	skipped := 0
	for n.level < n.maxLevel && n.count(n.level) == 1 && n.count(n.level+1) > 0 {
		n.level++
		n.indices[n.level] = 0
		skipped++
	}
	return skipped
}

// GoBack returns to the parent level
func (n *Navigator) GoBack() bool {
	if n.level == 0 {
		return false
	}
	n.level--
	n.announcer.Play(speech.CueHover)
	n.AnnounceCurrent(false)
	return true
}

// First moves to the first item at the current level that has a parent
// with children
func (n *Navigator) First() bool {
	if n.level == 0 {
		return n.rootMove(n.root.First)
	}
	return n.edge(false)
}

// Last moves to the last item at the current level
func (n *Navigator) Last() bool {
	if n.level == 0 {
		return n.rootMove(n.root.Last)
	}
	return n.edge(true)
}

func (n *Navigator) edge(last bool) bool {
	saved := append([]int(nil), n.indices...)
	if !n.findPath(0, last) {
		copy(n.indices, saved)
		return false
	}
	n.root.SetIndex(n.indices[0])
	n.announcer.Play(speech.CueHover)
	n.AnnounceCurrent(n.indices[n.level-1] != saved[n.level-1])
	return true
}

// findPath fills indices[depth..level] with the first (or last) path whose
// deepest level has items
func (n *Navigator) findPath(depth int, last bool) bool {
	count := n.count(depth)
	if depth == n.level {
		if count == 0 {
			return false
		}
		n.indices[depth] = 0
		if last {
			n.indices[depth] = count - 1
		}
		return true
	}
	for k := 0; k < count; k++ {
		i := k
		if last {
			i = count - 1 - k
		}
		n.indices[depth] = i
		if n.findPath(depth+1, last) {
			return true
		}
	}
	return false
}

func (n *Navigator) rootMove(move func() bool) bool {
	n.root.SetIndex(n.indices[0])
	if !move() {
		return false
	}
	n.indices[0] = n.root.Index()
	return true
}

// Activate drills into the current item or activates it when it is a leaf
func (n *Navigator) Activate() bool {
	if n.HasChildren() {
		return n.DrillDown()
	}
	if n.count(n.level) == 0 {
		return false
	}
	n.announcer.Play(speech.CueActivate)
	n.model.Activate(n.Path())
	return true
}

func (n *Navigator) selectSearchResult(flat int) {
	path := n.searchModel.Resolve(flat)
	if len(path) != n.searchLevel+1 {
		log.Printf("tree: search result %d resolved to %v, want %d levels", flat, path, n.searchLevel+1)
		return
	}
	crossed := n.level != n.searchLevel
	n.SetPath(path)
	n.AnnounceCurrent(crossed)
}

// AnnounceCurrent speaks the current item, prefixed with its parent's label
// when withParent is set
func (n *Navigator) AnnounceCurrent(withParent bool) {
	if n.count(n.level) == 0 {
		n.announcer.Speak(n.announcer.Messages().Empty)
		return
	}
	path := n.indices[:n.level+1]
	label := n.model.Label(n.level, path)
	if withParent && n.level > 0 {
		label = n.announcer.Join(n.model.ParentLabel(n.level, path), label)
	}
	n.announcer.Speak(label)
}

// Reset returns to the first root item and drops search state
func (n *Navigator) Reset() {
	n.level = 0
	for i := range n.indices {
		n.indices[i] = 0
	}
	n.root.SetIndex(0)
	n.search.Clear()
}

// Name implements focus.Context
func (n *Navigator) Name() string { return n.name }

// CapturesAllInput implements focus.Context
func (n *Navigator) CapturesAllInput() bool { return n.barrier }

// HelpEntries implements focus.Context
func (n *Navigator) HelpEntries() []input.HelpEntry {
	entries := input.Entries(
		n.keys.Up, n.keys.Down,
		n.keys.GroupPrev, n.keys.GroupNext,
		input.WithDescription(n.keys.Right, "open submenu"),
		input.WithDescription(n.keys.Left, "go back"),
		input.WithDescription(n.keys.Activate, "open or activate"),
		n.keys.Back,
		n.keys.First, n.keys.Last,
	)
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
	case input.Matches(k, n.keys.Up):
		n.Prev()
	case input.Matches(k, n.keys.GroupNext):
		n.GroupNext()
	case input.Matches(k, n.keys.GroupPrev):
		n.GroupPrev()
	case input.Matches(k, n.keys.Right):
		if !n.DrillDown() {
			n.announcer.Play(speech.CueNegative)
		}
	case input.Matches(k, n.keys.Activate):
		if !n.Activate() {
			n.announcer.Play(speech.CueNegative)
		}
	case input.Matches(k, n.keys.Left, n.keys.Back):
		return n.GoBack()
	case input.Matches(k, n.keys.First):
		n.First()
	case input.Matches(k, n.keys.Last):
		n.Last()
	default:
		return false
	}
	return true
}

// OnActivate implements focus.Context
func (n *Navigator) OnActivate() error {
	n.Reset()
	n.announcer.Speak(n.name)
	if n.count(0) == 0 {
		n.announcer.Queue(n.announcer.Messages().Empty)
		return nil
	}
	n.announcer.Queue(n.model.Label(0, n.indices[:1]))
	return nil
}

// OnDeactivate implements focus.Context
func (n *Navigator) OnDeactivate() error {
	n.search.Clear()
	return nil
}

func mod(a, m int) int {
	return ((a % m) + m) % m
}
