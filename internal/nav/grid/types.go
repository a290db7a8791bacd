package grid

// RowKind selects the column policy of a row
type RowKind int

const (
	Default RowKind = iota
	Toolbar
	ColumnHeader
	Divider
	DataA
	DataB
)

func (k RowKind) String() string {
	switch k {
	case Toolbar:
		return "toolbar"
	case ColumnHeader:
		return "column header"
	case Divider:
		return "divider"
	case DataA:
		return "data a"
	case DataB:
		return "data b"
	default:
		return "default"
	}
}

// IsData reports whether rows of this kind hold searchable data
func (k RowKind) IsData() bool {
	return k == DataA || k == DataB || k == Default
}

// Row is one entry of the rebuilt row list. Ref is the identity of the
// backing item and survives re-sorting. Group labels divider rows.
type Row struct {
	Kind  RowKind
	Ref   any
	Group string
}

// ColumnPolicy is the column count and wrap rule of a row kind
type ColumnPolicy struct {
	Columns int
	Wrap    bool
}

// Sort is the active column sort. Column is -1 when unsorted.
type Sort struct {
	Column    int
	Ascending bool
}

// Unsorted is the zero sort state
func Unsorted() Sort {
	return Sort{Column: -1}
}

// Sorted reports whether a column sort is active
func (s Sort) Sorted() bool {
	return s.Column >= 0
}

// Next returns the state after activating column: a new column sorts
// descending, then ascending, then back to unsorted
func (s Sort) Next(column int) Sort {
	switch {
	case s.Column != column:
		return Sort{Column: column}
	case !s.Ascending:
		return Sort{Column: column, Ascending: true}
	default:
		return Unsorted()
	}
}

// Model is the row port a concrete screen implements. Rows is called on
// every navigation step and must apply the given sort.
type Model interface {
	Rows(sort Sort) []Row
	Policy(kind RowKind) ColumnPolicy
	RowLabel(row Row) string
	ColumnLabel(row Row, col int) string
	CellValue(row Row, col int) string
	Activate(row Row, col int)
}
