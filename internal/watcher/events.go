package watcher

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// PageChangedEvent carries the freshly fetched page text after a fingerprint change
type PageChangedEvent struct {
	Content   string
	CheckedAt time.Time
}

// ArtifactChangedEvent carries the newly extracted artifact link. Link is
// empty when the page no longer declares a qualifying link.
type ArtifactChangedEvent struct {
	Link      string
	Previous  string
	CheckedAt time.Time
}

// Handle identifies a registered observer so it can be removed later
type Handle uint64

type pageChangedSub struct {
	handle Handle
	fn     func(PageChangedEvent)
}

type artifactChangedSub struct {
	handle Handle
	fn     func(ArtifactChangedEvent)
}

// Registry holds observer callbacks per event kind and dispatches events
// synchronously in registration order. A panicking callback is isolated: it
// is logged and delivery continues with the next callback.
type Registry struct {
	logger zerolog.Logger

	mu              sync.Mutex
	nextHandle      Handle
	pageChanged     []pageChangedSub
	artifactChanged []artifactChangedSub
}

// NewRegistry creates an empty observer registry
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		logger: logger.With().Str("component", "EventRegistry").Logger(),
	}
}

// OnPageChanged registers a callback for page-changed events
func (r *Registry) OnPageChanged(fn func(PageChangedEvent)) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextHandle++
	r.pageChanged = append(r.pageChanged, pageChangedSub{handle: r.nextHandle, fn: fn})
	return r.nextHandle
}

// OnArtifactChanged registers a callback for artifact-changed events
func (r *Registry) OnArtifactChanged(fn func(ArtifactChangedEvent)) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextHandle++
	r.artifactChanged = append(r.artifactChanged, artifactChangedSub{handle: r.nextHandle, fn: fn})
	return r.nextHandle
}

// Unsubscribe removes a previously registered callback by handle identity.
// Unknown handles are ignored.
func (r *Registry) Unsubscribe(handle Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, sub := range r.pageChanged {
		if sub.handle == handle {
			r.pageChanged = append(r.pageChanged[:i], r.pageChanged[i+1:]...)
			return
		}
	}
	for i, sub := range r.artifactChanged {
		if sub.handle == handle {
			r.artifactChanged = append(r.artifactChanged[:i], r.artifactChanged[i+1:]...)
			return
		}
	}
}

func (r *Registry) publishPageChanged(event PageChangedEvent) {
	for _, sub := range r.snapshotPageChanged() {
		r.invokePageChanged(sub, event)
	}
}

func (r *Registry) publishArtifactChanged(event ArtifactChangedEvent) {
	for _, sub := range r.snapshotArtifactChanged() {
		r.invokeArtifactChanged(sub, event)
	}
}

// snapshot under lock so callbacks may subscribe/unsubscribe without deadlock
func (r *Registry) snapshotPageChanged() []pageChangedSub {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := make([]pageChangedSub, len(r.pageChanged))
	copy(subs, r.pageChanged)
	return subs
}

func (r *Registry) snapshotArtifactChanged() []artifactChangedSub {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := make([]artifactChangedSub, len(r.artifactChanged))
	copy(subs, r.artifactChanged)
	return subs
}

func (r *Registry) invokePageChanged(sub pageChangedSub, event PageChangedEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Interface("panic", rec).
				Uint64("handle", uint64(sub.handle)).
				Msg("Page-changed observer panicked, continuing with remaining observers")
		}
	}()
	sub.fn(event)
}

func (r *Registry) invokeArtifactChanged(sub artifactChangedSub, event ArtifactChangedEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Interface("panic", rec).
				Uint64("handle", uint64(sub.handle)).
				Msg("Artifact-changed observer panicked, continuing with remaining observers")
		}
	}()
	sub.fn(event)
}
