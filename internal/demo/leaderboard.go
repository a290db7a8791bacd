package demo

import (
	"fmt"
	"sort"

	"focusnav/internal/nav/grid"
	"focusnav/internal/speech"
)

var (
	boardColumns  = []string{"Score", "Level", "Games"}
	toolbarLabels = []string{"Close", "Reverse scores"}
)

// identities of the fixed rows
type (
	toolbar struct{}
	header  struct{}
)

// leaderboardModel groups players by world under divider rows. Guests are
// listed as secondary data rows.
type leaderboardModel struct {
	players   []*Player
	announcer *speech.Announcer
	close     func()
}

func newLeaderboardModel(players []Player, announcer *speech.Announcer, close func()) *leaderboardModel {
	m := &leaderboardModel{announcer: announcer, close: close}
	for i := range players {
		p := players[i]
		m.players = append(m.players, &p)
	}
	return m
}

func (m *leaderboardModel) Rows(s grid.Sort) []grid.Row {
	rows := []grid.Row{
		{Kind: grid.Toolbar, Ref: toolbar{}},
		{Kind: grid.ColumnHeader, Ref: header{}},
	}

	var worlds []string
	byWorld := make(map[string][]*Player)
	for _, p := range m.players {
		if _, ok := byWorld[p.World]; !ok {
			worlds = append(worlds, p.World)
		}
		byWorld[p.World] = append(byWorld[p.World], p)
	}

	for _, w := range worlds {
		players := byWorld[w]
		if s.Sorted() {
			sort.SliceStable(players, func(i, j int) bool {
				a, b := stat(players[i], s.Column), stat(players[j], s.Column)
				if s.Ascending {
					return a < b
				}
				return a > b
			})
		}
		rows = append(rows, grid.Row{Kind: grid.Divider, Group: w})
		for _, p := range players {
			kind := grid.DataA
			if p.Guest {
				kind = grid.DataB
			}
			rows = append(rows, grid.Row{Kind: kind, Ref: p, Group: w})
		}
	}
	return rows
}

func stat(p *Player, col int) int {
	switch col {
	case 0:
		return p.Score
	case 1:
		return p.Level
	default:
		return p.Games
	}
}

func (m *leaderboardModel) Policy(kind grid.RowKind) grid.ColumnPolicy {
	switch kind {
	case grid.Toolbar:
		return grid.ColumnPolicy{Columns: len(toolbarLabels)}
	case grid.ColumnHeader:
		return grid.ColumnPolicy{Columns: len(boardColumns)}
	case grid.Divider:
		return grid.ColumnPolicy{}
	default:
		return grid.ColumnPolicy{Columns: len(boardColumns), Wrap: true}
	}
}

func (m *leaderboardModel) RowLabel(r grid.Row) string {
	switch r.Kind {
	case grid.Toolbar:
		return "Toolbar"
	case grid.ColumnHeader:
		return "Columns"
	}
	p, ok := r.Ref.(*Player)
	if !ok {
		return ""
	}
	if p.Guest {
		return p.Name + " (guest)"
	}
	return p.Name
}

func (m *leaderboardModel) ColumnLabel(r grid.Row, col int) string {
	if r.Kind == grid.Toolbar {
		return toolbarLabels[col]
	}
	return boardColumns[col]
}

func (m *leaderboardModel) CellValue(r grid.Row, col int) string {
	switch r.Kind {
	case grid.Toolbar:
		return "button"
	case grid.ColumnHeader:
		return ""
	}
	p, ok := r.Ref.(*Player)
	if !ok {
		return ""
	}
	return fmt.Sprint(stat(p, col))
}

func (m *leaderboardModel) Activate(r grid.Row, col int) {
	if r.Kind == grid.Toolbar {
		switch col {
		case 0:
			m.close()
		case 1:
			m.reverseScores()
			m.announcer.Speak("scores reversed")
		}
		return
	}
	if p, ok := r.Ref.(*Player); ok {
		m.announcer.Speak(m.announcer.Join(p.Name, p.World, fmt.Sprintf("rank %d", m.rank(p))))
	}
}

func (m *leaderboardModel) reverseScores() {
	n := len(m.players)
	for i := 0; i < n/2; i++ {
		a, b := m.players[i], m.players[n-1-i]
		a.Score, b.Score = b.Score, a.Score
	}
}

// rank is the 1-based position of p by score across all worlds
func (m *leaderboardModel) rank(p *Player) int {
	rank := 1
	for _, other := range m.players {
		if other.Score > p.Score {
			rank++
		}
	}
	return rank
}
