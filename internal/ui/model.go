// Package ui hosts the focus stack in a bubbletea program: keys go to the
// stack, a timer drives its clock, and the speech journal is rendered so the
// announcements can be followed on screen.
package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusnav/internal/config"
	"focusnav/internal/demo"
	"focusnav/internal/domain"
	"focusnav/internal/eventbus"
	"focusnav/internal/focus"
	"focusnav/internal/input"
	"focusnav/internal/speech"
)

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	stack     *focus.Stack
	journal   *speech.Journal
	announcer *speech.Announcer
	app       *demo.App
	keys      input.KeyMap

	width       int
	height      int
	help        help.Model
	styles      *Styles
	renderer    *HelpRenderer
	status      string
	failed      bool
	inPagerMode bool
}

// NewModel creates the UI model, builds the demo contexts and pushes the
// initial ones
func NewModel(bus eventbus.EventBus, cfg *config.Config, fixture *demo.Fixture) (*Model, error) {
	journal := speech.NewJournal(cfg.UI.JournalLines)
	announcer := speech.NewAnnouncer(journal, journal)
	announcer.SetBus(bus)
	announcer.SetMessages(cfg.Speech.Messages)
	announcer.SetSeparator(cfg.Speech.Separator)
	announcer.SetCueNames(cfg.Cues)

	stack := focus.NewStack(domain.NewClock(), announcer)
	stack.SetBus(bus)
	stack.SetGraceTicks(cfg.Stack.GraceTicks)

	m := &Model{
		bus:       bus,
		config:    cfg,
		stack:     stack,
		journal:   journal,
		announcer: announcer,
		keys:      input.DefaultKeyMap(),
		help:      help.New(),
		styles:    NewStyles(),
		renderer:  NewHelpRenderer(),
	}
	m.app = demo.NewApp(fixture, stack, announcer, demo.Options{
		SearchTimeout: cfg.Search.TimeoutTicks,
		Keys:          m.keys,
	})

	bus.Subscribe(eventbus.EventHandlerFailed, m.onHandlerFailed)
	bus.Subscribe(eventbus.EventContextRemoved, m.onContextRemoved)

	if err := m.app.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) onHandlerFailed(e eventbus.DomainEvent) {
	ev := e.(eventbus.HandlerFailedEvent)
	m.status = fmt.Sprintf("%s failed during %s: %v", ev.Name, ev.Phase, ev.Err)
	m.failed = true
}

func (m *Model) onContextRemoved(e eventbus.DomainEvent) {
	ev := e.(eventbus.ContextRemovedEvent)
	if ev.Reason == domain.RemovedByCleared {
		return
	}
	m.status = fmt.Sprintf("%s closed (%s)", ev.Name, ev.Reason)
	m.failed = false
}

// Init starts the tick loop
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.config.UI.TickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		m.stack.Tick()
		return m, m.tick()

	case helpPagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			log.Printf("ui: help pager: %v", msg.err)
			m.status = fmt.Sprintf("help unavailable: %v", msg.err)
			m.failed = true
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m, m.showHelp()
	}

	k, ok := input.FromTea(msg)
	if !ok {
		return m, nil
	}
	if m.stack.HandleKey(k) {
		return m, nil
	}
	if input.Matches(k, m.keys.Back) {
		m.app.Back()
	}
	return m, nil
}

// showHelp opens the aggregated help in the pager
func (m *Model) showHelp() tea.Cmd {
	content := m.renderer.Render(m.helpEntries(), m.stack.Names())
	m.inPagerMode = true
	return tea.Exec(newPagerCommand(content), func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}

// helpEntries is the stack's help plus the host's own keys
func (m *Model) helpEntries() []input.HelpEntry {
	entries := m.stack.CollectHelpEntries()
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Key] = true
	}
	for _, e := range input.Entries(m.keys.Help, m.keys.Quit) {
		if !seen[e.Key] {
			entries = append(entries, e)
		}
	}
	return entries
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.styles.Title.Render("focusnav"),
		m.styles.Stack.Render(strings.Join(m.stack.Names(), " › ")),
		m.styles.Journal.Width(max(m.width-6, 20)).Render(m.renderJournal()),
	}
	if m.status != "" {
		style := m.styles.Status
		if m.failed {
			style = m.styles.Failure
		}
		sections = append(sections, style.Render(m.status))
	}
	sections = append(sections, m.styles.Help.Render(m.help.ShortHelpView(input.Bindings(m.helpEntries()))))

	return m.styles.Main.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderJournal shows the most recent journal entries that fit the window
func (m *Model) renderJournal() string {
	entries := m.journal.Entries()
	visible := m.height - 12
	if visible < 3 {
		visible = 3
	}
	if len(entries) > visible {
		entries = entries[len(entries)-visible:]
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e.Kind {
		case speech.EntrySpoken:
			lines = append(lines, m.styles.Spoken.Render("say    "+e.Text))
		case speech.EntryQueued:
			lines = append(lines, m.styles.Queued.Render("queue  "+e.Text))
		case speech.EntryCue:
			lines = append(lines, m.styles.Cue.Render("cue    "+e.Text))
		}
	}
	if len(lines) == 0 {
		return m.styles.Cue.Render("nothing spoken yet")
	}
	return strings.Join(lines, "\n")
}
