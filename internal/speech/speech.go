// Package speech holds the ports to the external speech and audio-cue sinks
// and the Announcer every navigator talks through.
package speech

import (
	"log"
	"runtime/debug"
	"strings"

	"focusnav/internal/eventbus"
)

// Cue names a short audio cue
type Cue string

const (
	CueHover    Cue = "hover"
	CueWrap     Cue = "wrap"
	CueNegative Cue = "negative"
	CueActivate Cue = "activate"
)

// Speaker is the speech sink. It owns how text is spoken.
type Speaker interface {
	// Speak interrupts current speech and speaks text now
	Speak(text string)
	// Queue speaks text after whatever is currently being spoken
	Queue(text string)
}

// CuePlayer plays named audio cues
type CuePlayer interface {
	Play(cue Cue) error
}

// Messages are the fixed strings the core speaks on its own behalf
type Messages struct {
	NoMatch       string `toml:"no_match"`
	SearchCleared string `toml:"search_cleared"`
	HandlerFailed string `toml:"handler_failed"`
	Descending    string `toml:"descending"`
	Ascending     string `toml:"ascending"`
	Unsorted      string `toml:"unsorted"`
	Empty         string `toml:"empty"`
}

// DefaultMessages returns the built-in English messages
func DefaultMessages() Messages {
	return Messages{
		NoMatch:       "no match",
		SearchCleared: "search cleared",
		HandlerFailed: "handler failed",
		Descending:    "descending",
		Ascending:     "ascending",
		Unsorted:      "unsorted",
		Empty:         "empty",
	}
}

// withDefaults fills empty fields from DefaultMessages
func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&m.NoMatch, d.NoMatch)
	fill(&m.SearchCleared, d.SearchCleared)
	fill(&m.HandlerFailed, d.HandlerFailed)
	fill(&m.Descending, d.Descending)
	fill(&m.Ascending, d.Ascending)
	fill(&m.Unsorted, d.Unsorted)
	fill(&m.Empty, d.Empty)
	return m
}

// DefaultSeparator joins the parts of a composed announcement
const DefaultSeparator = ", "

// Announcer decides nothing; it forwards composed strings and cues to the
// sinks, shields navigation from sink failures and keeps the message table.
// A nil *Announcer is valid and silent.
type Announcer struct {
	speaker   Speaker
	cues      CuePlayer
	bus       eventbus.EventBus
	messages  Messages
	separator string
	cueNames  map[Cue]Cue
}

// NewAnnouncer creates an announcer over the given sinks. Either may be nil.
func NewAnnouncer(speaker Speaker, cues CuePlayer) *Announcer {
	return &Announcer{
		speaker:   speaker,
		cues:      cues,
		messages:  DefaultMessages(),
		separator: DefaultSeparator,
	}
}

// SetBus publishes Announced and CuePlayed events to bus
func (a *Announcer) SetBus(bus eventbus.EventBus) {
	a.bus = bus
}

// SetMessages replaces the message table; empty entries keep their defaults
func (a *Announcer) SetMessages(m Messages) {
	a.messages = m.withDefaults()
}

// SetSeparator sets the string used by Join
func (a *Announcer) SetSeparator(sep string) {
	if sep == "" {
		sep = DefaultSeparator
	}
	a.separator = sep
}

// SetCueNames remaps cue names before they reach the player
func (a *Announcer) SetCueNames(names map[string]string) {
	a.cueNames = make(map[Cue]Cue, len(names))
	for from, to := range names {
		if strings.TrimSpace(to) != "" {
			a.cueNames[Cue(from)] = Cue(to)
		}
	}
}

// Messages returns the active message table
func (a *Announcer) Messages() Messages {
	if a == nil {
		return DefaultMessages()
	}
	return a.messages
}

// Speak interrupts and speaks text
func (a *Announcer) Speak(text string) {
	a.say(text, false)
}

// Queue speaks text after current speech
func (a *Announcer) Queue(text string) {
	a.say(text, true)
}

func (a *Announcer) say(text string, queued bool) {
	if a == nil || text == "" {
		return
	}
	if a.speaker != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("speech: speaker panic: %v\nStack: %s", r, debug.Stack())
				}
			}()
			if queued {
				a.speaker.Queue(text)
			} else {
				a.speaker.Speak(text)
			}
		}()
	}
	if a.bus != nil {
		a.bus.Publish(eventbus.AnnouncedEvent{Text: text, Queued: queued})
	}
}

// Play plays a cue. Player errors and panics are logged and swallowed.
func (a *Announcer) Play(cue Cue) {
	if a == nil || cue == "" {
		return
	}
	if mapped, ok := a.cueNames[cue]; ok {
		cue = mapped
	}
	if a.cues != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("speech: cue %q panic: %v\nStack: %s", cue, r, debug.Stack())
				}
			}()
			if err := a.cues.Play(cue); err != nil {
				log.Printf("speech: cue %q failed: %v", cue, err)
			}
		}()
	}
	if a.bus != nil {
		a.bus.Publish(eventbus.CuePlayedEvent{Cue: string(cue)})
	}
}

// Join composes non-empty parts with the configured separator
func (a *Announcer) Join(parts ...string) string {
	sep := DefaultSeparator
	if a != nil {
		sep = a.separator
	}
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
