package tree

// Model is the item port of an N-level tree. path holds one index per
// level: Count receives the parents (len(path) == level), Label, ParentLabel
// and Activate receive the full path of an item (len(path) == level+1).
type Model interface {
	Count(level int, path []int) int
	Label(level int, path []int) string
	ParentLabel(level int, path []int) string
	Activate(path []int)
}

// SearchModel flattens the search level into one index space
type SearchModel interface {
	SearchCount() int
	SearchLabel(flat int) string
	// Resolve maps a flat index back to the item's path
	Resolve(flat int) []int
}

// rootModel adapts level 0 of a tree to a list model
type rootModel struct {
	model Model
}

func (r rootModel) Count() int { return r.model.Count(0, nil) }

func (r rootModel) Label(index int) string { return r.model.Label(0, []int{index}) }

// levelSearch is the default search model: the root level
type levelSearch struct {
	model Model
}

func (s levelSearch) SearchCount() int { return s.model.Count(0, nil) }

func (s levelSearch) SearchLabel(flat int) string { return s.model.Label(0, []int{flat}) }

func (s levelSearch) Resolve(flat int) []int { return []int{flat} }

// searchSource adapts a SearchModel to the search engine
type searchSource struct {
	model SearchModel
}

func (s searchSource) Count() int { return s.model.SearchCount() }

func (s searchSource) Label(index int) string { return s.model.SearchLabel(index) }
