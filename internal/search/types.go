package search

// Source is the enumerable item set a search runs over
type Source interface {
	Count() int
	Label(index int) string
}

// Match is one ranked search result
type Match struct {
	Index int    // index in the source
	Label string // label at the time of the search
	Tier  int    // 0 = best
}

// State holds search state
type State struct {
	Buffer    string
	LastInput uint64  // tick of the last appended character
	Results   []Match // ranked matches for Buffer
	Cursor    int     // current position in Results
}

// Tiers, best first
const (
	TierLeadingWord = iota
	TierLeadingPartial
	TierInteriorWord
	TierInteriorPartial
	TierSubstring
)

// DefaultTimeout is the idle gap, in ticks, after which the next typed
// character starts a fresh buffer
const DefaultTimeout uint64 = 20
