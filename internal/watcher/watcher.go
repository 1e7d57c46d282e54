package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"fwwatch/internal/httpclient"

	"github.com/rs/zerolog"
)

// Outcome classifies the result of a single check
type Outcome int

const (
	// OutcomeFetchFailed means the fetch did not complete with a success
	// status; state is untouched and no notifications fire.
	OutcomeFetchFailed Outcome = iota
	// OutcomeNoBaseline means this was the first successful fetch; the
	// fingerprint and link are stored without firing notifications.
	OutcomeNoBaseline
	// OutcomeUnchanged means the fingerprint matches the previous one.
	OutcomeUnchanged
	// OutcomePageChanged means the content changed but the extracted
	// artifact link is identical to before.
	OutcomePageChanged
	// OutcomeArtifactChanged means both the content and the extracted
	// artifact link changed.
	OutcomeArtifactChanged
)

// String returns string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeNoBaseline:
		return "no_baseline"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomePageChanged:
		return "page_changed"
	case OutcomeArtifactChanged:
		return "artifact_changed"
	default:
		return "unknown"
	}
}

// CheckResult is the per-invocation outcome of CheckOnce
type CheckResult struct {
	Outcome     Outcome
	Fingerprint string
	PageContent string // set for PageChanged and ArtifactChanged
	NewLink     string // set for ArtifactChanged; empty means the link disappeared
	OldLink     string // previous link, for ArtifactChanged
	CheckedAt   time.Time
	Err         error // set for FetchFailed
}

// ContentFetcher fetches the raw bytes of the watched resource
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*httpclient.FetchResult, error)
}

// LinkExtractor extracts the qualifying artifact link from page markup
type LinkExtractor interface {
	Extract(markup string) (string, bool)
}

// Watcher owns the poll/compare/notify cycle for a single watched resource.
// All state lives here and is mutated only inside CheckOnce, which holds a
// mutex for the whole check so hosts may invoke it concurrently without
// corrupting the fingerprint ordering.
type Watcher struct {
	logger    zerolog.Logger
	targetURL string
	fetcher   ContentFetcher
	extractor LinkExtractor
	events    *Registry

	mu              sync.Mutex
	lastFingerprint string // empty means never successfully observed
	lastLink        string
	lastCheckedAt   time.Time
}

// NewWatcher creates a Watcher for the given target URL
func NewWatcher(targetURL string, fetcher ContentFetcher, extractor LinkExtractor, logger zerolog.Logger) *Watcher {
	watcherLogger := logger.With().Str("component", "Watcher").Str("url", targetURL).Logger()
	return &Watcher{
		logger:    watcherLogger,
		targetURL: targetURL,
		fetcher:   fetcher,
		extractor: extractor,
		events:    NewRegistry(watcherLogger),
	}
}

// Events returns the observer registry for this watcher
func (w *Watcher) Events() *Registry {
	return w.events
}

// LastArtifactLink returns the most recently stored artifact link, or empty
// if none has been observed.
func (w *Watcher) LastArtifactLink() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastLink
}

// LastCheckedAt returns the time of the last successful fetch
func (w *Watcher) LastCheckedAt() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastCheckedAt
}

// CheckOnce performs a single fetch/compare/notify cycle.
//
// Fetch failures leave state untouched. The first successful fetch only
// establishes the baseline. On a fingerprint change the new fingerprint is
// committed before any observer runs, page-changed fires before
// artifact-changed, and the link is re-extracted only when the fingerprint
// actually changed.
//
// Observers run synchronously while the check lock is held; they must not
// call back into the Watcher's accessors.
func (w *Watcher) CheckOnce(ctx context.Context) CheckResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	fetchResult, err := w.fetcher.Fetch(ctx, w.targetURL)
	if err != nil {
		w.logger.Debug().Err(err).Msg("Fetch failed, state untouched")
		return CheckResult{Outcome: OutcomeFetchFailed, Err: err}
	}

	// Fingerprint over the exact raw bytes, not decoded text
	sum := sha256.Sum256(fetchResult.Body)
	fingerprint := hex.EncodeToString(sum[:])

	now := time.Now()
	w.lastCheckedAt = now

	if w.lastFingerprint == "" {
		w.lastFingerprint = fingerprint
		if link, ok := w.extractor.Extract(string(fetchResult.Body)); ok {
			w.lastLink = link
		}
		w.logger.Info().
			Str("fingerprint", fingerprint).
			Str("artifact_link", w.lastLink).
			Msg("Baseline established")
		return CheckResult{Outcome: OutcomeNoBaseline, Fingerprint: fingerprint, CheckedAt: now}
	}

	if fingerprint == w.lastFingerprint {
		return CheckResult{Outcome: OutcomeUnchanged, Fingerprint: fingerprint, CheckedAt: now}
	}

	w.lastFingerprint = fingerprint
	content := string(fetchResult.Body)

	w.logger.Info().Str("fingerprint", fingerprint).Msg("Page content changed")
	w.events.publishPageChanged(PageChangedEvent{Content: content, CheckedAt: now})

	newLink, _ := w.extractor.Extract(content)
	oldLink := w.lastLink
	w.lastLink = newLink

	if newLink == oldLink {
		return CheckResult{
			Outcome:     OutcomePageChanged,
			Fingerprint: fingerprint,
			PageContent: content,
			CheckedAt:   now,
		}
	}

	w.logger.Info().
		Str("old_link", oldLink).
		Str("new_link", newLink).
		Msg("Artifact link changed")
	w.events.publishArtifactChanged(ArtifactChangedEvent{Link: newLink, Previous: oldLink, CheckedAt: now})

	return CheckResult{
		Outcome:     OutcomeArtifactChanged,
		Fingerprint: fingerprint,
		PageContent: content,
		NewLink:     newLink,
		OldLink:     oldLink,
		CheckedAt:   now,
	}
}
