package watcher

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_DeliveryInRegistrationOrder(t *testing.T) {
	r := NewRegistry(zerolog.Nop())

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		r.OnPageChanged(func(PageChangedEvent) { order = append(order, i) })
	}

	r.publishPageChanged(PageChangedEvent{Content: "x", CheckedAt: time.Now()})
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestRegistry_Unsubscribe(t *testing.T) {
	r := NewRegistry(zerolog.Nop())

	var first, second int
	h := r.OnArtifactChanged(func(ArtifactChangedEvent) { first++ })
	r.OnArtifactChanged(func(ArtifactChangedEvent) { second++ })

	r.publishArtifactChanged(ArtifactChangedEvent{Link: "a"})
	r.Unsubscribe(h)
	r.publishArtifactChanged(ArtifactChangedEvent{Link: "b"})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestRegistry_UnsubscribeUnknownHandle(t *testing.T) {
	r := NewRegistry(zerolog.Nop())

	var calls int
	r.OnPageChanged(func(PageChangedEvent) { calls++ })

	r.Unsubscribe(Handle(9999))
	r.publishPageChanged(PageChangedEvent{})

	assert.Equal(t, 1, calls)
}

func TestRegistry_PanicIsolation(t *testing.T) {
	r := NewRegistry(zerolog.Nop())

	var delivered []string
	r.OnPageChanged(func(PageChangedEvent) { delivered = append(delivered, "first") })
	r.OnPageChanged(func(PageChangedEvent) { panic("broken observer") })
	r.OnPageChanged(func(PageChangedEvent) { delivered = append(delivered, "third") })

	assert.NotPanics(t, func() {
		r.publishPageChanged(PageChangedEvent{Content: "x"})
	})
	assert.Equal(t, []string{"first", "third"}, delivered)
}

func TestRegistry_SubscribeDuringDispatch(t *testing.T) {
	r := NewRegistry(zerolog.Nop())

	var lateCalls int
	r.OnPageChanged(func(PageChangedEvent) {
		r.OnPageChanged(func(PageChangedEvent) { lateCalls++ })
	})

	r.publishPageChanged(PageChangedEvent{})
	assert.Zero(t, lateCalls, "observer added mid-dispatch sees only later events")

	r.publishPageChanged(PageChangedEvent{})
	assert.Equal(t, 1, lateCalls)
}

func TestRegistry_IndependentEventKinds(t *testing.T) {
	r := NewRegistry(zerolog.Nop())

	var pageCalls, artifactCalls int
	r.OnPageChanged(func(PageChangedEvent) { pageCalls++ })
	r.OnArtifactChanged(func(ArtifactChangedEvent) { artifactCalls++ })

	r.publishPageChanged(PageChangedEvent{})
	assert.Equal(t, 1, pageCalls)
	assert.Zero(t, artifactCalls)
}
