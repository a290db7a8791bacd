package demo

// menuModel exposes the fixture menu to the tree navigator
type menuModel struct {
	items    []MenuItem
	activate func(MenuItem)
}

func (m *menuModel) nodes(level int, path []int) []MenuItem {
	items := m.items
	for _, i := range path[:level] {
		if i < 0 || i >= len(items) {
			return nil
		}
		items = items[i].Children
	}
	return items
}

func (m *menuModel) item(level int, path []int) (MenuItem, bool) {
	if level < 0 || len(path) <= level {
		return MenuItem{}, false
	}
	items := m.nodes(level, path)
	i := path[level]
	if i < 0 || i >= len(items) {
		return MenuItem{}, false
	}
	return items[i], true
}

func (m *menuModel) Count(level int, path []int) int {
	return len(m.nodes(level, path))
}

func (m *menuModel) Label(level int, path []int) string {
	it, _ := m.item(level, path)
	return it.Label
}

func (m *menuModel) ParentLabel(level int, path []int) string {
	if level == 0 {
		return ""
	}
	return m.Label(level-1, path)
}

func (m *menuModel) Activate(path []int) {
	it, ok := m.item(len(path)-1, path)
	if ok && m.activate != nil {
		m.activate(it)
	}
}

// menuSearch flattens the second menu level so type-ahead finds entries
// across sections
type menuSearch struct {
	m     *menuModel
	paths [][]int
}

func newMenuSearch(m *menuModel) *menuSearch {
	s := &menuSearch{m: m}
	for i, it := range m.items {
		for j := range it.Children {
			s.paths = append(s.paths, []int{i, j})
		}
	}
	return s
}

func (s *menuSearch) SearchCount() int { return len(s.paths) }

func (s *menuSearch) SearchLabel(flat int) string { return s.m.Label(1, s.paths[flat]) }

func (s *menuSearch) Resolve(flat int) []int { return s.paths[flat] }
