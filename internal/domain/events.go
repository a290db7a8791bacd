package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventContextPushed  EventType = "ContextPushed"
	EventContextPopped  EventType = "ContextPopped"
	EventContextRemoved EventType = "ContextRemoved"
	EventHandlerFailed  EventType = "HandlerFailed"
	EventAnnounced      EventType = "Announced"
	EventCuePlayed      EventType = "CuePlayed"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ContextPushedEvent is emitted after a context was pushed and activated
type ContextPushedEvent struct {
	Name  string
	Depth int
}

func (e ContextPushedEvent) Type() EventType { return EventContextPushed }

// ContextPoppedEvent is emitted after the top context was popped
type ContextPoppedEvent struct {
	Name  string
	Depth int
}

func (e ContextPoppedEvent) Type() EventType { return EventContextPopped }

// RemovalReason says why a context left the stack other than by Pop
type RemovalReason string

const (
	RemovedStale     RemovalReason = "stale"
	RemovedByRef     RemovalReason = "reference"
	RemovedFailed    RemovalReason = "failed"
	RemovedReplaced  RemovalReason = "replaced"
	RemovedByCleared RemovalReason = "cleared"
)

// ContextRemovedEvent is emitted when a context is removed from anywhere in the stack
type ContextRemovedEvent struct {
	Name   string
	Reason RemovalReason
	Depth  int
}

func (e ContextRemovedEvent) Type() EventType { return EventContextRemoved }

// Phase names the lifecycle callback that failed
type Phase string

const (
	PhaseActivate   Phase = "activate"
	PhaseDeactivate Phase = "deactivate"
	PhaseKey        Phase = "key"
	PhaseTick       Phase = "tick"
)

// HandlerFailedEvent is emitted when a context callback returned an error or panicked
type HandlerFailedEvent struct {
	Name  string
	Phase Phase
	Err   error
}

func (e HandlerFailedEvent) Type() EventType { return EventHandlerFailed }

// AnnouncedEvent is emitted for every string sent to the speech sink
type AnnouncedEvent struct {
	Text   string
	Queued bool
}

func (e AnnouncedEvent) Type() EventType { return EventAnnounced }

// CuePlayedEvent is emitted for every audio cue request
type CuePlayedEvent struct {
	Cue string
}

func (e CuePlayedEvent) Type() EventType { return EventCuePlayed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	Default bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
