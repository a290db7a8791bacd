// Package grid implements the two-dimensional navigator: row and column
// cursor over a row list that is rebuilt on every step, with divider rows,
// per-kind column rules and column sort cycling.
package grid

import (
	"focusnav/internal/domain"
	"focusnav/internal/input"
	"focusnav/internal/search"
	"focusnav/internal/speech"
)

// Navigator is a focus context over a grid
type Navigator struct {
	name      string
	model     Model
	rows      []Row
	row       int
	col       int
	ref       any
	sort      Sort
	announcer *speech.Announcer
	search    *search.Engine
	keys      input.KeyMap
	barrier   bool

	// last announced position, -1 forces full context
	spokenRow int
	spokenRef any
	spokenCol int

	// data rows as of the last search; results resolve by their refs
	searchRows []Row
}

// NewNavigator creates a grid navigator over model
func NewNavigator(name string, model Model, announcer *speech.Announcer, clock *domain.Clock) *Navigator {
	n := &Navigator{
		name:      name,
		model:     model,
		sort:      Unsorted(),
		announcer: announcer,
		search:    search.NewEngine(announcer, clock),
		keys:      input.DefaultKeyMap(),
		spokenRow: -1,
		spokenCol: -1,
	}
	n.search.SetSource(searchSource{n})
	n.search.SetSelectFunction(n.selectSearchResult)
	return n
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

// Row returns the current row index
func (n *Navigator) Row() int {
	return n.row
}

// Col returns the current column
func (n *Navigator) Col() int {
	return n.col
}

// Sort returns the active sort
func (n *Navigator) Sort() Sort {
	return n.sort
}

// Current returns the row under the cursor after a rebuild
func (n *Navigator) Current() (Row, bool) {
	n.rebuild()
	if len(n.rows) == 0 {
		return Row{}, false
	}
	return n.rows[n.row], true
}

// rebuild re-reads the rows and relocates the cursor by identity
func (n *Navigator) rebuild() {
	n.rows = n.model.Rows(n.sort)
	if len(n.rows) == 0 {
		n.row, n.col = 0, 0
		return
	}
	lost := false
	if n.ref != nil && (n.row >= len(n.rows) || !domain.SameRef(n.rows[n.row].Ref, n.ref)) {
		if i := n.indexOf(n.ref); i >= 0 {
			n.row = i
		} else {
			lost = true
		}
	}
	if n.row >= len(n.rows) {
		n.row = len(n.rows) - 1
	}
	if n.row < 0 {
		n.row = 0
	}
	if kind := n.rows[n.row].Kind; kind == Divider || (lost && kind == ColumnHeader) {
		n.row = n.nearestData(n.row)
	}
	n.ref = n.rows[n.row].Ref
	n.clampCol()
}

func (n *Navigator) indexOf(ref any) int {
	for i, r := range n.rows {
		if domain.SameRef(r.Ref, ref) {
			return i
		}
	}
	return -1
}

// nearestData finds the closest data row to from, looking down first.
// Without data rows it settles for any row that is not a divider.
func (n *Navigator) nearestData(from int) int {
	for _, ok := range []func(Row) bool{
		func(r Row) bool { return r.Kind.IsData() },
		func(r Row) bool { return r.Kind != Divider },
	} {
		for i := from; i < len(n.rows); i++ {
			if ok(n.rows[i]) {
				return i
			}
		}
		for i := from - 1; i >= 0; i-- {
			if ok(n.rows[i]) {
				return i
			}
		}
	}
	return from
}

func (n *Navigator) clampCol() {
	cols := n.model.Policy(n.rows[n.row].Kind).Columns
	if n.col >= cols {
		n.col = cols - 1
	}
	if n.col < 0 {
		n.col = 0
	}
}

func (n *Navigator) moveTo(row int) {
	n.row = row
	n.ref = n.rows[row].Ref
	n.clampCol()
}

// Next moves down one row, passing through dividers
func (n *Navigator) Next() bool {
	return n.step(1)
}

// Prev moves up one row, passing through dividers
func (n *Navigator) Prev() bool {
	return n.step(-1)
}

func (n *Navigator) step(dir int) bool {
	n.rebuild()
	if len(n.rows) == 0 {
		return false
	}
	i := n.row
	group := ""
	crossed := false
	for {
		i += dir
		if i < 0 || i >= len(n.rows) {
			return false
		}
		if n.rows[i].Kind != Divider {
			break
		}
		group = n.rows[i].Group
		crossed = true
	}
	n.moveTo(i)
	n.announcer.Play(speech.CueHover)
	n.announcer.Speak(n.compose(crossed, group))
	return true
}

// NextColumn moves right within the row
func (n *Navigator) NextColumn() bool {
	return n.stepColumn(1)
}

// PrevColumn moves left within the row
func (n *Navigator) PrevColumn() bool {
	return n.stepColumn(-1)
}

func (n *Navigator) stepColumn(dir int) bool {
	n.rebuild()
	if len(n.rows) == 0 {
		return false
	}
	policy := n.model.Policy(n.rows[n.row].Kind)
	if policy.Columns <= 0 {
		return false
	}
	next := n.col + dir
	if next < 0 || next >= policy.Columns {
		if !policy.Wrap || policy.Columns == 1 {
			return false
		}
		next = (next + policy.Columns) % policy.Columns
		n.announcer.Play(speech.CueWrap)
	} else {
		n.announcer.Play(speech.CueHover)
	}
	n.col = next
	n.announcer.Speak(n.compose(false, ""))
	return true
}

// First moves to the first row that is neither a divider nor a header
func (n *Navigator) First() bool {
	n.rebuild()
	for i, r := range n.rows {
		if r.Kind != Divider && r.Kind != ColumnHeader {
			return n.land(i)
		}
	}
	return false
}

// Last moves to the last row that is not a divider
func (n *Navigator) Last() bool {
	n.rebuild()
	for i := len(n.rows) - 1; i >= 0; i-- {
		if n.rows[i].Kind != Divider {
			return n.land(i)
		}
	}
	return false
}

func (n *Navigator) land(row int) bool {
	n.moveTo(row)
	n.announcer.Play(speech.CueHover)
	n.announcer.Speak(n.compose(false, ""))
	return true
}

// Activate cycles the sort on a header row and activates any other cell
func (n *Navigator) Activate() bool {
	n.rebuild()
	if len(n.rows) == 0 {
		return false
	}
	r := n.rows[n.row]
	if r.Kind == ColumnHeader {
		n.CycleSort(n.col)
		return true
	}
	n.announcer.Play(speech.CueActivate)
	n.model.Activate(r, n.col)
	return true
}

// CycleSort advances the sort state of column, rebuilds the rows and keeps
// the cursor on the same row
func (n *Navigator) CycleSort(column int) {
	n.sort = n.sort.Next(column)
	n.rebuild()

	msgs := n.announcer.Messages()
	state := msgs.Unsorted
	if n.sort.Sorted() {
		state = msgs.Descending
		if n.sort.Ascending {
			state = msgs.Ascending
		}
	}
	label := ""
	if len(n.rows) > 0 {
		label = n.model.ColumnLabel(n.rows[n.row], column)
	}
	n.announcer.Speak(n.announcer.Join(label, state))
}

// AnnounceCurrent speaks the current cell with full context
func (n *Navigator) AnnounceCurrent() {
	n.rebuild()
	n.announcer.Speak(n.compose(true, ""))
}

// compose builds the cell announcement. The row label is included when the
// row changed, the column label when the column changed.
func (n *Navigator) compose(full bool, group string) string {
	if len(n.rows) == 0 {
		return n.announcer.Messages().Empty
	}
	r := n.rows[n.row]
	rowChanged := full || n.row != n.spokenRow || (r.Ref != nil && !domain.SameRef(r.Ref, n.spokenRef))
	colChanged := full || n.col != n.spokenCol

	parts := []string{group}
	if rowChanged {
		parts = append(parts, n.model.RowLabel(r))
	}
	if n.model.Policy(r.Kind).Columns > 0 {
		if colChanged {
			parts = append(parts, n.model.ColumnLabel(r, n.col))
		}
		parts = append(parts, n.model.CellValue(r, n.col))
	}

	n.spokenRow, n.spokenRef, n.spokenCol = n.row, r.Ref, n.col
	return n.announcer.Join(parts...)
}

// Reset moves to the first data row, or the first row Home would pick
// when there is none, and forgets the announced position. The sort state
// is kept.
func (n *Navigator) Reset() {
	n.row, n.col, n.ref = 0, 0, nil
	n.spokenRow, n.spokenRef, n.spokenCol = -1, nil, -1
	n.search.Clear()
	n.rebuild()
	for i, r := range n.rows {
		if r.Kind.IsData() {
			n.moveTo(i)
			return
		}
	}
	for i, r := range n.rows {
		if r.Kind != Divider && r.Kind != ColumnHeader {
			n.moveTo(i)
			return
		}
	}
}

// selectSearchResult moves to a result of the last search. The rows are
// re-read first and the result is found again by identity; rows without a
// ref fall back to their position among the current data rows.
func (n *Navigator) selectSearchResult(index int) {
	if index < 0 || index >= len(n.searchRows) {
		return
	}
	n.rebuild()
	row := -1
	if ref := n.searchRows[index].Ref; ref != nil {
		row = n.indexOf(ref)
	} else if data := n.dataRows(); index < len(data) {
		row = data[index]
	}
	if row < 0 {
		n.announcer.Play(speech.CueNegative)
		n.announcer.Speak(n.announcer.Messages().NoMatch)
		return
	}
	n.moveTo(row)
	n.announcer.Speak(n.compose(false, ""))
}

// dataRows returns the indices of the searchable rows
func (n *Navigator) dataRows() []int {
	var idx []int
	for i, r := range n.rows {
		if r.Kind.IsData() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Name implements focus.Context
func (n *Navigator) Name() string { return n.name }

// CapturesAllInput implements focus.Context
func (n *Navigator) CapturesAllInput() bool { return n.barrier }

// HelpEntries implements focus.Context
func (n *Navigator) HelpEntries() []input.HelpEntry {
	entries := input.Entries(
		input.WithDescription(n.keys.Up, "previous row"),
		input.WithDescription(n.keys.Down, "next row"),
		input.WithDescription(n.keys.Left, "previous column"),
		input.WithDescription(n.keys.Right, "next column"),
		input.WithDescription(n.keys.First, "first row"),
		input.WithDescription(n.keys.Last, "last row"),
		input.WithDescription(n.keys.Activate, "sort column or activate"),
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
	case input.Matches(k, n.keys.Right):
		n.NextColumn()
	case input.Matches(k, n.keys.Left):
		n.PrevColumn()
	case input.Matches(k, n.keys.First):
		n.First()
	case input.Matches(k, n.keys.Last):
		n.Last()
	case input.Matches(k, n.keys.Activate):
		return n.Activate()
	default:
		return false
	}
	return true
}

// OnActivate implements focus.Context
func (n *Navigator) OnActivate() error {
	n.Reset()
	n.announcer.Speak(n.name)
	n.announcer.Queue(n.compose(true, ""))
	return nil
}

// OnDeactivate implements focus.Context
func (n *Navigator) OnDeactivate() error {
	n.search.Clear()
	return nil
}

// searchSource exposes the labels of data rows to the search engine
type searchSource struct {
	n *Navigator
}

func (s searchSource) Count() int {
	n := s.n
	n.rebuild()
	n.searchRows = n.searchRows[:0]
	for _, i := range n.dataRows() {
		n.searchRows = append(n.searchRows, n.rows[i])
	}
	return len(n.searchRows)
}

func (s searchSource) Label(index int) string {
	return s.n.model.RowLabel(s.n.searchRows[index])
}
