package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversSynchronously(t *testing.T) {
	b := New()
	var got []string
	b.Subscribe(EventContextPushed, func(e DomainEvent) {
		got = append(got, e.(ContextPushedEvent).Name)
	})

	b.Publish(ContextPushedEvent{Name: "menu", Depth: 1})
	b.Publish(ContextPoppedEvent{Name: "menu"})

	require.Equal(t, []string{"menu"}, got)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	calls := 0
	unsubscribe := b.Subscribe(EventHandlerFailed, func(DomainEvent) { calls++ })
	other := 0
	b.Subscribe(EventHandlerFailed, func(DomainEvent) { other++ })

	b.Publish(HandlerFailedEvent{Name: "x"})
	unsubscribe()
	b.Publish(HandlerFailedEvent{Name: "x"})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New()
	after := false
	b.Subscribe(EventAnnounced, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventAnnounced, func(DomainEvent) { after = true })

	require.NotPanics(t, func() { b.Publish(AnnouncedEvent{Text: "hi"}) })
	assert.True(t, after, "later handlers still run after a panic")
}

func TestReentrantPublishIsBounded(t *testing.T) {
	b := New()
	calls := 0
	b.Subscribe(EventCuePlayed, func(e DomainEvent) {
		calls++
		b.Publish(e)
	})

	b.Publish(CuePlayedEvent{Cue: "wrap"})

	assert.Equal(t, maxDepth, calls)
}
