package list

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusnav/internal/domain"
	"focusnav/internal/input"
	"focusnav/internal/speech"
)

type items struct {
	labels    []string
	activated []int
}

func (m *items) Count() int             { return len(m.labels) }
func (m *items) Label(index int) string { return m.labels[index] }
func (m *items) Activate(index int)     { m.activated = append(m.activated, index) }

type plain []string

func (p plain) Count() int             { return len(p) }
func (p plain) Label(index int) string { return p[index] }

func newTestNavigator(labels ...string) (*Navigator, *items, *speech.Journal) {
	m := &items{labels: labels}
	j := speech.NewJournal(0)
	n := NewNavigator("Inventory", m, speech.NewAnnouncer(j, j), domain.NewClock())
	return n, m, j
}

func numbered(count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = fmt.Sprintf("Item %d", i)
	}
	return out
}

func TestScanForward(t *testing.T) {
	idx, wrapped, ok := ScanForward(2, 5, nil)
	assert.Equal(t, []any{3, false, true}, []any{idx, wrapped, ok})

	idx, wrapped, ok = ScanForward(4, 5, nil)
	assert.Equal(t, []any{0, true, true}, []any{idx, wrapped, ok})

	idx, wrapped, ok = ScanForward(-1, 5, func(i int) bool { return i > 2 })
	assert.Equal(t, []any{3, false, true}, []any{idx, wrapped, ok})

	_, _, ok = ScanForward(0, 5, func(int) bool { return false })
	assert.False(t, ok)

	_, _, ok = ScanForward(0, 0, nil)
	assert.False(t, ok)
}

func TestScanBackward(t *testing.T) {
	idx, wrapped, ok := ScanBackward(0, 5, nil)
	assert.Equal(t, []any{4, true, true}, []any{idx, wrapped, ok})

	idx, wrapped, ok = ScanBackward(5, 5, nil)
	assert.Equal(t, []any{4, false, true}, []any{idx, wrapped, ok})

	idx, wrapped, ok = ScanBackward(3, 5, func(i int) bool { return i != 2 })
	assert.Equal(t, []any{1, false, true}, []any{idx, wrapped, ok})
}

func TestNextCyclesWithOneWrap(t *testing.T) {
	for _, size := range []int{1, 2, 5, 9} {
		n, _, j := newTestNavigator(numbered(size)...)
		for i := 0; i < size; i++ {
			require.True(t, n.Next())
		}
		assert.Equal(t, 0, n.Index(), "size %d", size)
		assert.Equal(t, 1, j.CountCue(speech.CueWrap), "size %d", size)
		assert.Equal(t, speech.CueWrap, j.Cues()[size-1], "wrap fires on the final step")
	}
}

func TestPrevFromZeroWraps(t *testing.T) {
	n, _, j := newTestNavigator(numbered(4)...)
	require.True(t, n.Prev())
	assert.Equal(t, 3, n.Index())
	assert.Equal(t, []speech.Cue{speech.CueWrap}, j.Cues())
	assert.Equal(t, "Item 3", j.Last())

	require.True(t, n.Next())
	assert.Equal(t, 0, n.Index())
	assert.Equal(t, 2, j.CountCue(speech.CueWrap))
}

func TestSingleEligibleIndex(t *testing.T) {
	n, _, j := newTestNavigator(numbered(6)...)
	n.SetValidFunction(func(i int) bool { return i == 3 })

	for _, start := range []int{0, 3, 5} {
		j.Reset()
		n.SetIndex(start)
		require.True(t, n.Next())
		assert.Equal(t, 3, n.Index())
		assert.Len(t, j.Cues(), 1)

		j.Reset()
		n.SetIndex(start)
		require.True(t, n.Prev())
		assert.Equal(t, 3, n.Index())
		assert.Len(t, j.Cues(), 1)
	}
}

func TestSkipsIneligible(t *testing.T) {
	n, _, _ := newTestNavigator(numbered(5)...)
	n.SetValidFunction(func(i int) bool { return i%2 == 0 })

	n.Next()
	assert.Equal(t, 2, n.Index())
	n.Last()
	assert.Equal(t, 4, n.Index())
	n.First()
	assert.Equal(t, 0, n.Index())
}

func TestEmptyListIsNoOp(t *testing.T) {
	n, _, j := newTestNavigator()
	assert.False(t, n.Next())
	assert.False(t, n.Prev())
	assert.False(t, n.First())
	assert.False(t, n.Last())
	assert.Empty(t, j.Cues())
}

func TestShrinkingModelIsTolerated(t *testing.T) {
	n, m, _ := newTestNavigator(numbered(10)...)
	n.SetIndex(8)
	m.labels = m.labels[:3]

	require.True(t, n.Next())
	assert.Equal(t, 0, n.Index(), "cursor past the end behaves as the last item")
}

func TestHandleKeyBindings(t *testing.T) {
	n, m, j := newTestNavigator("Apple", "Banana", "Cherry")

	assert.True(t, n.HandleKey(input.Press(input.KeyDown)))
	assert.Equal(t, "Banana", j.Last())
	assert.True(t, n.HandleKey(input.Press(input.KeyEnd)))
	assert.Equal(t, 2, n.Index())
	assert.True(t, n.HandleKey(input.Press(input.KeyHome)))
	assert.Equal(t, 0, n.Index())
	assert.True(t, n.HandleKey(input.Press(input.KeyEnter)))
	assert.Equal(t, []int{0}, m.activated)
	assert.False(t, n.HandleKey(input.Press(input.KeyEscape)))
}

func TestActivateWithoutActivator(t *testing.T) {
	j := speech.NewJournal(0)
	n := NewNavigator("Plain", plain{"a"}, speech.NewAnnouncer(j, j), domain.NewClock())
	assert.False(t, n.HandleKey(input.Press(input.KeyEnter)))
	for _, e := range n.HelpEntries() {
		assert.NotEqual(t, "enter", e.Key)
	}
}

func TestTypeAheadMovesCursor(t *testing.T) {
	n, _, j := newTestNavigator("Apple", "Banana", "Blueberry")
	require.True(t, n.HandleKey(input.Rune('b')))
	assert.Equal(t, 1, n.Index())
	assert.Equal(t, "Banana", j.Last())

	require.True(t, n.HandleKey(input.Rune('b')))
	assert.Equal(t, 2, n.Index())

	require.True(t, n.HandleKey(input.Press(input.KeyDown)), "arrows walk results while searching")
	assert.Equal(t, 1, n.Index())
}

func TestTypeAheadSkipsIneligible(t *testing.T) {
	n, _, _ := newTestNavigator("Bat", "Bear", "Bee")
	n.SetValidFunction(func(i int) bool { return i != 0 })
	n.HandleKey(input.Rune('b'))
	assert.Equal(t, 1, n.Index())
}

func TestActivationResetsAndAnnounces(t *testing.T) {
	n, _, j := newTestNavigator("Apple", "Banana")
	n.SetIndex(1)
	n.HandleKey(input.Rune('x'))
	require.True(t, n.Search().Active())

	require.NoError(t, n.OnActivate())
	assert.Equal(t, 0, n.Index())
	assert.False(t, n.Search().Active())
	assert.Equal(t, []string{"Inventory", "Apple"}, j.Spoken()[len(j.Spoken())-2:])

	n.SetIndex(1)
	require.NoError(t, n.OnDeactivate())
	assert.Equal(t, 0, n.Index())
}

func TestActivationOnFirstEligible(t *testing.T) {
	n, _, _ := newTestNavigator("Header", "Apple")
	n.SetValidFunction(func(i int) bool { return i > 0 })
	require.NoError(t, n.OnActivate())
	assert.Equal(t, 1, n.Index())
}

func TestIdleSearchGivesArrowsBack(t *testing.T) {
	clock := domain.NewClock()
	j := speech.NewJournal(0)
	n := NewNavigator("Inventory", plain{"Apple", "Banana", "Cherry", "Blueberry"}, speech.NewAnnouncer(j, j), clock)
	n.Search().SetTimeout(5)

	require.True(t, n.HandleKey(input.Rune('b')))
	require.Equal(t, 1, n.Index())

	for i := 0; i < 100; i++ {
		clock.Advance()
	}
	n.Tick(clock.Now())
	assert.False(t, n.Search().Active())

	require.True(t, n.HandleKey(input.Press(input.KeyDown)))
	assert.Equal(t, 2, n.Index(), "plain next row, not the next result")
	assert.Equal(t, "Cherry", j.Last())
}
