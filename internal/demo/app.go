// Package demo wires the navigators to sample content: a main menu tree, an
// inventory list and a leaderboard grid, each a context on the focus stack.
package demo

import (
	"fmt"
	"log"

	"focusnav/internal/focus"
	"focusnav/internal/input"
	"focusnav/internal/nav/grid"
	"focusnav/internal/nav/list"
	"focusnav/internal/nav/tree"
	"focusnav/internal/speech"
)

const (
	ActionInventory   = "inventory"
	ActionLeaderboard = "leaderboard"
	ActionAbout       = "about"
)

// Options tune the navigators
type Options struct {
	SearchTimeout uint64
	Keys          input.KeyMap
}

// App owns the demo contexts and pushes them on the stack
type App struct {
	fixture   *Fixture
	stack     *focus.Stack
	announcer *speech.Announcer

	baseline    *focus.Baseline
	menu        *tree.Navigator
	inventory   *screenContext
	leaderboard *screenContext
}

// NewApp builds the demo contexts
func NewApp(f *Fixture, stack *focus.Stack, announcer *speech.Announcer, opts Options) *App {
	a := &App{
		fixture:   f,
		stack:     stack,
		announcer: announcer,
	}
	clock := stack.Clock()
	if len(opts.Keys.Up.Keys()) == 0 {
		opts.Keys = input.DefaultKeyMap()
	}

	a.baseline = focus.NewBaseline("Desktop", input.Entries(opts.Keys.Help, opts.Keys.Quit)...)

	menu := &menuModel{items: f.Menu, activate: a.menuAction}
	a.menu = tree.NewNavigator("Main menu", menu, depth(f.Menu), announcer, clock)
	a.menu.SetSearchModel(1, newMenuSearch(menu))
	a.menu.SetKeyMap(opts.Keys)
	a.menu.Search().SetTimeout(opts.SearchTimeout)

	inv := &inventoryModel{items: f.Inventory, announcer: announcer}
	invNav := list.NewNavigator("Inventory", inv, announcer, clock)
	invNav.SetValidFunction(inv.inStock)
	invNav.SetCapturesAllInput(true)
	invNav.SetKeyMap(opts.Keys)
	invNav.Search().SetTimeout(opts.SearchTimeout)
	a.inventory = &screenContext{Context: invNav, screen: &Screen{Name: "inventory"}}

	boardScreen := &Screen{Name: "leaderboard"}
	board := newLeaderboardModel(f.Leaderboard, announcer, boardScreen.Close)
	boardNav := grid.NewNavigator("Leaderboard", board, announcer, clock)
	boardNav.SetCapturesAllInput(true)
	boardNav.SetKeyMap(opts.Keys)
	boardNav.Search().SetTimeout(opts.SearchTimeout)
	a.leaderboard = &screenContext{Context: boardNav, screen: boardScreen}

	return a
}

// Start pushes the baseline and the main menu
func (a *App) Start() error {
	if err := a.stack.Push(a.baseline); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := a.stack.Push(a.menu); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	return nil
}

// Open shows the screen for action. An already open screen is left alone.
func (a *App) Open(action string) error {
	var sc *screenContext
	switch action {
	case ActionInventory:
		sc = a.inventory
	case ActionLeaderboard:
		sc = a.leaderboard
	default:
		return fmt.Errorf("unknown screen %q", action)
	}
	if a.stack.Contains(sc) {
		return nil
	}
	sc.screen.Open()
	if err := a.stack.Push(sc); err != nil {
		sc.screen.Close()
		return fmt.Errorf("open %s: %w", sc.screen.Name, err)
	}
	return nil
}

// Back closes the top screen. It reports false when the top context is
// not a screen.
func (a *App) Back() bool {
	sc, ok := a.stack.Top().(*screenContext)
	if !ok {
		return false
	}
	sc.screen.Close()
	return a.stack.RemoveByReference(sc.screen)
}

func (a *App) menuAction(it MenuItem) {
	switch it.Action {
	case ActionInventory, ActionLeaderboard:
		if err := a.Open(it.Action); err != nil {
			log.Printf("demo: %v", err)
		}
	case ActionAbout:
		a.announcer.Speak(a.fixture.About)
	default:
		a.announcer.Speak(it.Label)
	}
}
