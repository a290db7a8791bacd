package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusnav/internal/domain"
	"focusnav/internal/input"
	"focusnav/internal/speech"
)

type labels []string

func (l labels) Count() int             { return len(l) }
func (l labels) Label(index int) string { return l[index] }

func newTestEngine(items labels) (*Engine, *speech.Journal, *domain.Clock) {
	j := speech.NewJournal(0)
	clock := domain.NewClock()
	e := NewEngine(speech.NewAnnouncer(j, j), clock)
	e.SetSource(items)
	return e, j, clock
}

func typeText(e *Engine, s string) {
	for _, r := range s {
		e.HandleKey(input.Rune(r))
	}
}

func TestClassifyTiers(t *testing.T) {
	tests := []struct {
		label string
		query string
		tier  int
		ok    bool
	}{
		{"Wood Club", "wood", TierLeadingWord, true},
		{"Wood", "WOOD", TierLeadingWord, true},
		{"Wood,Club", "wood", TierLeadingWord, true},
		{"Wooden Club", "wood", TierLeadingPartial, true},
		{"Pine wood", "wood", TierInteriorWord, true},
		{"Pine, wood", "wood", TierInteriorWord, true},
		{"Pine woodland", "wood", TierInteriorPartial, true},
		{"Plywood", "wood", TierSubstring, true},
		{"Steel", "wood", 0, false},
		{"Wo", "wood", 0, false},
		{"Wood", "", 0, false},
		{"", "w", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.query, func(t *testing.T) {
			tier, ok := Classify(tt.label, tt.query)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.tier, tier)
			}
		})
	}
}

func TestClassifyPrefersWholeInteriorWord(t *testing.T) {
	tier, ok := Classify("Big woodland wood", "wood")
	require.True(t, ok)
	assert.Equal(t, TierInteriorWord, tier)
}

func TestRankOrdersByTierThenSourceOrder(t *testing.T) {
	items := labels{"Plywood", "Pine wood", "Steel", "Wood Club", "Oak wood", "Wood"}
	got := Rank(items, "wood")

	var names []string
	for _, m := range got {
		names = append(names, m.Label)
	}
	assert.Equal(t, []string{"Wood Club", "Wood", "Pine wood", "Oak wood", "Plywood"}, names)
	assert.Equal(t, 3, got[0].Index)
}

func TestSearchExampleOrdering(t *testing.T) {
	e, j, _ := newTestEngine(labels{"Wood Club", "Pine wood", "Plywood"})
	typeText(e, "wood")

	results := e.Results()
	require.Len(t, results, 3)
	assert.Equal(t, "Wood Club", results[0].Label)
	assert.Equal(t, TierLeadingWord, results[0].Tier)
	assert.Equal(t, "Pine wood", results[1].Label)
	assert.Equal(t, TierInteriorWord, results[1].Tier)
	assert.Equal(t, "Plywood", results[2].Label)
	assert.Equal(t, TierSubstring, results[2].Tier)
	assert.Equal(t, "Wood Club", j.Last())
}

func TestRepeatLetterCyclesResults(t *testing.T) {
	e, j, _ := newTestEngine(labels{"Apple", "Banana", "Blueberry", "Cherry", "Bramble"})

	typeText(e, "b")
	require.Equal(t, "b", e.Buffer())
	first, _ := e.Current()
	assert.Equal(t, "Banana", first.Label)
	rankedBefore := e.Results()

	typeText(e, "b")
	assert.Equal(t, "b", e.Buffer(), "buffer truncated back to one letter")
	cur, _ := e.Current()
	assert.Equal(t, "Blueberry", cur.Label)
	assert.Equal(t, rankedBefore, e.Results(), "results not recomputed")

	typeText(e, "bb")
	cur, _ = e.Current()
	assert.Equal(t, "Banana", cur.Label, "cycles with wrap")
	assert.Equal(t, "Banana", j.Last())
}

func TestRepeatLetterWithoutResultsSearchesNormally(t *testing.T) {
	e, j, _ := newTestEngine(labels{"Apple"})
	typeText(e, "bb")
	assert.Equal(t, "bb", e.Buffer())
	assert.Empty(t, e.Results())
	assert.Equal(t, 2, j.CountCue(speech.CueNegative))
}

func TestNoMatchAnnounced(t *testing.T) {
	e, j, _ := newTestEngine(labels{"Apple"})
	typeText(e, "z")
	assert.Equal(t, "no match", j.Last())
	assert.Equal(t, 1, j.CountCue(speech.CueNegative))
	assert.True(t, e.Active(), "buffer kept so backspace can correct it")
}

func TestZeroItemsAnnouncesNoMatch(t *testing.T) {
	e, j, _ := newTestEngine(labels{})
	typeText(e, "a")
	assert.Equal(t, "no match", j.Last())
	assert.Empty(t, e.Results())
}

func TestBackspaceToEmptyClears(t *testing.T) {
	e, j, _ := newTestEngine(labels{"Apple", "Apricot"})
	typeText(e, "apr")
	cur, _ := e.Current()
	assert.Equal(t, "Apricot", cur.Label)

	require.True(t, e.HandleKey(input.Press(input.KeyBackspace)))
	assert.Equal(t, "ap", e.Buffer())
	assert.Len(t, e.Results(), 2)

	e.HandleKey(input.Press(input.KeyBackspace))
	e.HandleKey(input.Press(input.KeyBackspace))
	assert.False(t, e.Active())
	assert.Equal(t, "search cleared", j.Last())

	assert.False(t, e.HandleKey(input.Press(input.KeyBackspace)), "empty buffer leaves backspace to the owner")
}

func TestInactiveRejectsNonLetters(t *testing.T) {
	e, _, _ := newTestEngine(labels{"Apple"})
	assert.False(t, e.HandleKey(input.Press(input.KeyDown)))
	assert.False(t, e.HandleKey(input.Press(input.KeySpace)))
	assert.False(t, e.HandleKey(input.Rune('-')))
	assert.False(t, e.HandleKey(input.Press(input.KeyEscape)))
	assert.True(t, e.HandleKey(input.Rune('7')))
}

func TestActiveAcceptsSpaces(t *testing.T) {
	e, _, _ := newTestEngine(labels{"Pine wood", "Pine cone"})
	typeText(e, "pine c")
	cur, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, "Pine cone", cur.Label)
}

func TestResultNavigationWraps(t *testing.T) {
	e, j, _ := newTestEngine(labels{"Alpha", "Beta", "Alpine", "Gamma"})
	var selected []int
	e.SetSelectFunction(func(i int) { selected = append(selected, i) })

	typeText(e, "al")
	require.True(t, e.HandleKey(input.Press(input.KeyDown)))
	require.True(t, e.HandleKey(input.Press(input.KeyDown)))
	require.True(t, e.HandleKey(input.Press(input.KeyUp)))
	require.True(t, e.HandleKey(input.Press(input.KeyEnd)))
	require.True(t, e.HandleKey(input.Press(input.KeyHome)))

	assert.Equal(t, []int{0, 0, 2, 0, 2, 2, 0}, selected)
	assert.Equal(t, 2, j.CountCue(speech.CueWrap))
	assert.Empty(t, j.Spoken(), "select callback replaces label announcement")
}

func TestModifiedKeysPassThroughWhileActive(t *testing.T) {
	e, _, _ := newTestEngine(labels{"Alpha"})
	typeText(e, "a")
	assert.False(t, e.HandleKey(input.Press(input.KeyDown, input.ModCtrl)))
	assert.False(t, e.HandleKey(input.Press(input.KeyEnter)))
}

func TestEscapeClearsSearch(t *testing.T) {
	e, j, _ := newTestEngine(labels{"Alpha"})
	typeText(e, "a")
	require.True(t, e.HandleKey(input.Press(input.KeyEscape)))
	assert.False(t, e.Active())
	assert.Equal(t, "search cleared", j.Last())
}

func TestTimeoutRestartsBuffer(t *testing.T) {
	e, _, clock := newTestEngine(labels{"Cat", "Dog", "Cod"})
	e.SetTimeout(5)

	typeText(e, "c")
	for i := 0; i < 6; i++ {
		clock.Advance()
	}
	typeText(e, "d")
	assert.Equal(t, "d", e.Buffer())
	cur, _ := e.Current()
	assert.Equal(t, "Dog", cur.Label)

	clock.Advance()
	typeText(e, "o")
	assert.Equal(t, "do", e.Buffer(), "within timeout the buffer grows")
}

func TestIdleBufferExpires(t *testing.T) {
	e, _, clock := newTestEngine(labels{"Apple", "Banana", "Blueberry"})
	e.SetTimeout(5)

	typeText(e, "b")
	require.True(t, e.Active())
	for i := 0; i < 6; i++ {
		clock.Advance()
	}
	assert.False(t, e.Active())
	assert.False(t, e.HandleKey(input.Press(input.KeyDown)), "arrows go back to the owner")
	assert.Empty(t, e.Buffer())
	assert.Empty(t, e.Results())
}

func TestTickClearsIdleBuffer(t *testing.T) {
	e, _, clock := newTestEngine(labels{"Apple"})
	e.SetTimeout(2)

	typeText(e, "a")
	clock.Advance()
	e.Tick()
	assert.Equal(t, "a", e.Buffer(), "still within the timeout")

	clock.Advance()
	clock.Advance()
	e.Tick()
	assert.Empty(t, e.Buffer())
}

func TestRepeatedDigitCyclesResults(t *testing.T) {
	e, _, _ := newTestEngine(labels{"1 Up", "Apple", "10 Down"})

	typeText(e, "1")
	cur, _ := e.Current()
	require.Equal(t, "1 Up", cur.Label)

	typeText(e, "1")
	assert.Equal(t, "1", e.Buffer())
	cur, _ = e.Current()
	assert.Equal(t, "10 Down", cur.Label)
}
