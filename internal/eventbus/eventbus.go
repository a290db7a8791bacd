package eventbus

import (
	"log"
	"runtime/debug"

	"focusnav/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventContextPushed  = domain.EventContextPushed
	EventContextPopped  = domain.EventContextPopped
	EventContextRemoved = domain.EventContextRemoved
	EventHandlerFailed  = domain.EventHandlerFailed
	EventAnnounced      = domain.EventAnnounced
	EventCuePlayed      = domain.EventCuePlayed
	EventConfigLoaded   = domain.EventConfigLoaded
	EventConfigSaved    = domain.EventConfigSaved
)

// Re-export domain event types
type ContextPushedEvent = domain.ContextPushedEvent
type ContextPoppedEvent = domain.ContextPoppedEvent
type ContextRemovedEvent = domain.ContextRemovedEvent
type HandlerFailedEvent = domain.HandlerFailedEvent
type AnnouncedEvent = domain.AnnouncedEvent
type CuePlayedEvent = domain.CuePlayedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      int
	handler EventHandler
}

// bus delivers events synchronously on the caller's tick. Handlers may
// publish or subscribe re-entrantly.
type bus struct {
	handlers map[EventType][]subscription
	nextID   int
	depth    int
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// maxDepth bounds publish recursion from handlers that publish again
const maxDepth = 8

// Publish delivers an event to all subscribers of its type
func (b *bus) Publish(event DomainEvent) {
	if event == nil {
		return
	}
	if b.depth >= maxDepth {
		log.Printf("eventbus: dropping %s, publish nested too deep", event.Type())
		return
	}

	// Copy so handlers can unsubscribe while we iterate
	subs := append([]subscription(nil), b.handlers[event.Type()]...)

	b.depth++
	defer func() { b.depth-- }()

	for _, sub := range subs {
		b.deliver(sub.handler, event)
	}
}

func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("eventbus: handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}
