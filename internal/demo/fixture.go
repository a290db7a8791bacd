package demo

import (
	_ "embed"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed fixture.toml
var fixtureTOML []byte

// MenuItem is one node of the main menu. Leaves with an Action open a
// screen or speak something.
type MenuItem struct {
	Label    string     `toml:"label"`
	Action   string     `toml:"action"`
	Children []MenuItem `toml:"children"`
}

// Item is one inventory entry
type Item struct {
	Name     string `toml:"name"`
	Quantity int    `toml:"quantity"`
}

// Player is one leaderboard entry
type Player struct {
	Name  string `toml:"name"`
	World string `toml:"world"`
	Score int    `toml:"score"`
	Level int    `toml:"level"`
	Games int    `toml:"games"`
	Guest bool   `toml:"guest"`
}

// Fixture is the demo content
type Fixture struct {
	About       string     `toml:"about"`
	Menu        []MenuItem `toml:"menu"`
	Inventory   []Item     `toml:"inventory"`
	Leaderboard []Player   `toml:"leaderboard"`
}

// LoadFixture parses the embedded demo content
func LoadFixture() (*Fixture, error) {
	return ParseFixture(fixtureTOML)
}

// ParseFixture parses demo content from TOML
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if len(f.Menu) == 0 {
		return nil, fmt.Errorf("parse fixture: menu is empty")
	}
	return &f, nil
}

// depth returns the deepest level index below items
func depth(items []MenuItem) int {
	deepest := 0
	for _, it := range items {
		if len(it.Children) > 0 {
			if d := depth(it.Children) + 1; d > deepest {
				deepest = d
			}
		}
	}
	return deepest
}
