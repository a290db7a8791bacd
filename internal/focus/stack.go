package focus

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"

	"focusnav/internal/domain"
	"focusnav/internal/eventbus"
	"focusnav/internal/input"
	"focusnav/internal/speech"
)

// DefaultGraceTicks is how long a freshly pushed context is exempt from the
// stale sweep
const DefaultGraceTicks = 1

// Stack is the focus-context stack. contexts and stamps are kept in
// lockstep; stamps[i] is the tick contexts[i] was pushed on.
//
// Callbacks may push, pop or replace re-entrantly, so every mutation is
// finished before a callback runs and lookups after a callback go by
// identity, never by a remembered index.
type Stack struct {
	contexts  []Context
	stamps    []uint64
	clock     *domain.Clock
	announcer *speech.Announcer
	bus       eventbus.EventBus
	grace     uint64
}

// NewStack creates an empty stack
func NewStack(clock *domain.Clock, announcer *speech.Announcer) *Stack {
	if clock == nil {
		clock = domain.NewClock()
	}
	return &Stack{
		clock:     clock,
		announcer: announcer,
		grace:     DefaultGraceTicks,
	}
}

// SetBus sets the bus lifecycle events are published on
func (s *Stack) SetBus(bus eventbus.EventBus) {
	s.bus = bus
}

// SetGraceTicks sets the stale sweep grace period
func (s *Stack) SetGraceTicks(ticks uint64) {
	s.grace = ticks
}

// Clock returns the tick clock shared with the contexts
func (s *Stack) Clock() *domain.Clock {
	return s.clock
}

// Push appends ctx and activates it. A failed activation removes ctx again
// and returns an error wrapping ErrActivation.
func (s *Stack) Push(ctx Context) error {
	if ctx == nil {
		return errors.New("focus: push of nil context")
	}
	s.contexts = append(s.contexts, ctx)
	s.stamps = append(s.stamps, s.clock.Now())

	if err := s.activate(ctx); err != nil {
		s.remove(ctx, domain.RemovedFailed)
		return fmt.Errorf("%w: %s: %w", ErrActivation, safeName(ctx), err)
	}
	s.publish(eventbus.ContextPushedEvent{Name: safeName(ctx), Depth: len(s.contexts)})
	return nil
}

// Pop removes and deactivates the top context, then re-activates the
// context it exposes. It returns nil on an empty stack.
func (s *Stack) Pop() Context {
	if len(s.contexts) == 0 {
		log.Printf("focus: pop on empty stack")
		return nil
	}
	top := s.contexts[len(s.contexts)-1]
	s.removeAt(len(s.contexts) - 1)
	s.deactivate(top)
	s.publish(eventbus.ContextPoppedEvent{Name: safeName(top), Depth: len(s.contexts)})
	s.reactivateTop()
	return top
}

// Replace swaps the top context for ctx without re-activating the context
// underneath in between. If ctx fails to activate the exposed context is
// re-activated.
func (s *Stack) Replace(ctx Context) error {
	if ctx == nil {
		return errors.New("focus: replace with nil context")
	}
	if len(s.contexts) > 0 {
		top := s.contexts[len(s.contexts)-1]
		s.removeAt(len(s.contexts) - 1)
		s.deactivate(top)
		s.publish(eventbus.ContextRemovedEvent{Name: safeName(top), Reason: domain.RemovedReplaced, Depth: len(s.contexts)})
	}
	if err := s.Push(ctx); err != nil {
		s.reactivateTop()
		return err
	}
	return nil
}

// Clear deactivates every context top-down and empties the stack
func (s *Stack) Clear() {
	contexts := s.contexts
	s.contexts, s.stamps = nil, nil
	for i := len(contexts) - 1; i >= 0; i-- {
		s.deactivate(contexts[i])
		s.publish(eventbus.ContextRemovedEvent{Name: safeName(contexts[i]), Reason: domain.RemovedByCleared, Depth: i})
	}
}

// RemoveStaleContexts removes every backed context whose element is no
// longer active, except those inside the grace period and self-managed
// ones. It returns the number removed.
func (s *Stack) RemoveStaleContexts() int {
	if len(s.contexts) == 0 {
		return 0
	}
	oldTop := s.Top()
	now := s.clock.Now()
	removed := 0

	for _, ctx := range s.Contexts() {
		i := s.indexOf(ctx)
		if i < 0 || !s.isStale(ctx, s.stamps[i], now) {
			continue
		}
		s.removeAt(i)
		s.deactivate(ctx)
		s.publish(eventbus.ContextRemovedEvent{Name: safeName(ctx), Reason: domain.RemovedStale, Depth: len(s.contexts)})
		removed++
	}

	if removed > 0 {
		log.Printf("focus: removed %d stale context(s)", removed)
		if top := s.Top(); top != nil && !sameContext(top, oldTop) {
			s.reactivateTop()
		}
	}
	return removed
}

func (s *Stack) isStale(ctx Context, stamp, now uint64) (stale bool) {
	b, ok := ctx.(Backed)
	if !ok {
		return false
	}
	if now >= stamp && now-stamp <= s.grace {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("focus: %s backing check panicked, treating as stale: %v", safeName(ctx), r)
			stale = true
		}
	}()
	if sm, ok := ctx.(SelfManaged); ok && sm.ManagesOwnLifecycle() {
		return false
	}
	return !b.Active()
}

// RemoveByReference removes the context backed by ref from anywhere in the
// stack. It reports whether one was found.
func (s *Stack) RemoveByReference(ref any) bool {
	for i := len(s.contexts) - 1; i >= 0; i-- {
		ctx := s.contexts[i]
		b, ok := ctx.(Backed)
		if !ok || !domain.SameRef(b.Backing(), ref) {
			continue
		}
		wasTop := i == len(s.contexts)-1
		s.removeAt(i)
		s.deactivate(ctx)
		s.publish(eventbus.ContextRemovedEvent{Name: safeName(ctx), Reason: domain.RemovedByRef, Depth: len(s.contexts)})
		if wasTop {
			s.reactivateTop()
		}
		return true
	}
	return false
}

// CollectHelpEntries gathers help top-down, stopping after the first
// barrier. The topmost entry wins when two contexts bind the same key.
func (s *Stack) CollectHelpEntries() []input.HelpEntry {
	var out []input.HelpEntry
	seen := make(map[string]bool)
	for _, ctx := range s.reachable() {
		for _, e := range s.helpOf(ctx) {
			if seen[e.Key] {
				continue
			}
			seen[e.Key] = true
			out = append(out, e)
		}
	}
	return out
}

func (s *Stack) helpOf(ctx Context) (entries []input.HelpEntry) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("focus: %s help entries panicked: %v", safeName(ctx), r)
			entries = nil
		}
	}()
	return ctx.HelpEntries()
}

// HandleKey offers k to the contexts top-down until one consumes it or a
// barrier has been offered it. A failing handler consumes the key.
func (s *Stack) HandleKey(k input.Key) bool {
	for i := len(s.contexts) - 1; i >= 0; i-- {
		if i >= len(s.contexts) {
			continue
		}
		ctx := s.contexts[i]
		handled, err := s.offer(ctx, k)
		if err != nil {
			s.fail(ctx, domain.PhaseKey, err)
			return true
		}
		if handled {
			return true
		}
		if barrier(ctx) {
			return false
		}
	}
	return false
}

func (s *Stack) offer(ctx Context, k input.Key) (handled bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return ctx.HandleKey(k), nil
}

// Tick advances the clock, sweeps stale contexts and ticks every context
// reachable by input
func (s *Stack) Tick() {
	now := s.clock.Advance()
	s.RemoveStaleContexts()
	for _, ctx := range s.reachable() {
		if !s.Contains(ctx) {
			continue
		}
		err := call(func() error {
			ctx.Tick(now)
			return nil
		})
		if err != nil {
			s.fail(ctx, domain.PhaseTick, err)
		}
	}
}

// reachable returns the contexts from the top down to the first barrier
func (s *Stack) reachable() []Context {
	var out []Context
	for i := len(s.contexts) - 1; i >= 0; i-- {
		out = append(out, s.contexts[i])
		if barrier(s.contexts[i]) {
			break
		}
	}
	return out
}

// Top returns the top context or nil
func (s *Stack) Top() Context {
	if len(s.contexts) == 0 {
		return nil
	}
	return s.contexts[len(s.contexts)-1]
}

// Len returns the stack depth
func (s *Stack) Len() int {
	return len(s.contexts)
}

// Contexts returns a bottom-up copy of the stack
func (s *Stack) Contexts() []Context {
	return append([]Context(nil), s.contexts...)
}

// Names returns the context names bottom-up
func (s *Stack) Names() []string {
	names := make([]string, len(s.contexts))
	for i, ctx := range s.contexts {
		names[i] = safeName(ctx)
	}
	return names
}

// Contains reports whether ctx is on the stack
func (s *Stack) Contains(ctx Context) bool {
	return s.indexOf(ctx) >= 0
}

func (s *Stack) indexOf(ctx Context) int {
	for i := len(s.contexts) - 1; i >= 0; i-- {
		if sameContext(s.contexts[i], ctx) {
			return i
		}
	}
	return -1
}

func (s *Stack) removeAt(i int) {
	s.contexts = append(s.contexts[:i:i], s.contexts[i+1:]...)
	s.stamps = append(s.stamps[:i:i], s.stamps[i+1:]...)
}

// remove drops ctx by identity if it is still on the stack
func (s *Stack) remove(ctx Context, reason domain.RemovalReason) {
	if i := s.indexOf(ctx); i >= 0 {
		s.removeAt(i)
		s.publish(eventbus.ContextRemovedEvent{Name: safeName(ctx), Reason: reason, Depth: len(s.contexts)})
	}
}

func (s *Stack) activate(ctx Context) error {
	err := call(ctx.OnActivate)
	if err != nil {
		s.fail(ctx, domain.PhaseActivate, err)
	}
	return err
}

func (s *Stack) deactivate(ctx Context) {
	if err := call(ctx.OnDeactivate); err != nil {
		s.fail(ctx, domain.PhaseDeactivate, err)
	}
}

// reactivateTop activates the exposed top. If that fails the context is
// removed as well; the one below it is left alone.
func (s *Stack) reactivateTop() {
	top := s.Top()
	if top == nil {
		return
	}
	if err := s.activate(top); err != nil {
		s.remove(top, domain.RemovedFailed)
	}
}

func (s *Stack) fail(ctx Context, phase domain.Phase, err error) {
	name := safeName(ctx)
	var pe *PanicError
	if errors.As(err, &pe) {
		log.Printf("focus: %s %s panicked: %v\nStack: %s", name, phase, pe.Value, pe.Stack)
	} else {
		log.Printf("focus: %s %s failed: %v", name, phase, err)
	}
	if phase != domain.PhaseDeactivate {
		s.announcer.Speak(s.announcer.Messages().HandlerFailed)
	}
	s.publish(eventbus.HandlerFailedEvent{Name: name, Phase: phase, Err: err})
}

func (s *Stack) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

// call runs fn and converts a panic into a *PanicError
func call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

func barrier(ctx Context) (b bool) {
	defer func() {
		if recover() != nil {
			b = false
		}
	}()
	return ctx.CapturesAllInput()
}

func safeName(ctx Context) (name string) {
	defer func() {
		if recover() != nil {
			name = "<unnamed>"
		}
	}()
	return ctx.Name()
}

func sameContext(a, b Context) bool {
	return domain.SameRef(a, b)
}
