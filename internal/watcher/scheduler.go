package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Announcer surfaces watcher outcomes through an outbound messaging channel.
// Implementations decide the transport; the scheduler only guarantees each
// detected transition is announced exactly once.
type Announcer interface {
	AnnouncePageChanged(ctx context.Context, checkedAt time.Time)
	AnnounceArtifactChanged(ctx context.Context, newLink, oldLink string, checkedAt time.Time)
	AnnounceFailure(ctx context.Context, message string)
}

// HistoryRecorder persists per-cycle outcomes for later inspection
type HistoryRecorder interface {
	RecordCheck(outcome string, fingerprint string, link string, detail string, checkedAt time.Time) error
}

// SchedulerConfig holds the scheduler knobs
type SchedulerConfig struct {
	CheckInterval time.Duration
	// FailureAnnounceThreshold is the number of consecutive fetch failures
	// after which a single diagnostic is announced. Zero disables failure
	// announcements.
	FailureAnnounceThreshold int
}

// Scheduler drives the watcher's CheckOnce on a fixed interval from a single
// goroutine, so invocations never overlap. An in-flight check always runs to
// completion; cancellation is honored between invocations.
type Scheduler struct {
	logger    zerolog.Logger
	cfg       SchedulerConfig
	watcher   *Watcher
	announcer Announcer
	history   HistoryRecorder

	consecutiveFailures int
	failureAnnounced    bool

	mu     sync.Mutex
	active bool
}

// NewScheduler creates a scheduler for the given watcher. announcer and
// history may be nil.
func NewScheduler(cfg SchedulerConfig, w *Watcher, announcer Announcer, history HistoryRecorder, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		logger:    logger.With().Str("component", "Scheduler").Logger(),
		cfg:       cfg,
		watcher:   w,
		announcer: announcer,
		history:   history,
	}
}

// Run performs an immediate first check and then checks on every tick until
// ctx is cancelled. It blocks until the loop has fully stopped.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		s.logger.Warn().Msg("Scheduler already active")
		return nil
	}
	s.active = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
		s.logger.Info().Msg("Scheduler stopped")
	}()

	interval := s.cfg.CheckInterval
	if interval <= 0 {
		interval = time.Minute
		s.logger.Warn().Dur("interval", interval).Msg("Check interval not configured, using default")
	}

	s.logger.Info().Dur("interval", interval).Msg("Scheduler started")

	s.runCycle(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Context cancelled, scheduler loop stopping")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// IsActive reports whether the scheduler loop is running
func (s *Scheduler) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// runCycle executes one check and processes its result. A panic anywhere in
// the cycle is recovered so a single bad cycle never terminates the loop.
func (s *Scheduler) runCycle(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error().Interface("panic", rec).Msg("Check cycle panicked, continuing with next tick")
			if s.announcer != nil {
				s.announcer.AnnounceFailure(ctx, "unexpected failure during check cycle, watcher continues")
			}
		}
	}()

	result := s.watcher.CheckOnce(ctx)
	s.processResult(ctx, result)
}

func (s *Scheduler) processResult(ctx context.Context, result CheckResult) {
	switch result.Outcome {
	case OutcomeFetchFailed:
		s.handleFetchFailure(ctx, result)
		return
	case OutcomeUnchanged:
		s.resetFailureTracking()
		s.logger.Debug().Msg("Content unchanged")
		return
	}

	s.resetFailureTracking()
	s.recordHistory(result)

	switch result.Outcome {
	case OutcomeNoBaseline:
		s.logger.Info().Msg("Baseline check complete")
	case OutcomePageChanged:
		if s.announcer != nil {
			s.announcer.AnnouncePageChanged(ctx, result.CheckedAt)
		}
	case OutcomeArtifactChanged:
		if s.announcer != nil {
			s.announcer.AnnounceArtifactChanged(ctx, result.NewLink, result.OldLink, result.CheckedAt)
		}
	}
}

// handleFetchFailure logs every failure but announces only once per failure
// streak, after the configured threshold, to avoid notification spam.
func (s *Scheduler) handleFetchFailure(ctx context.Context, result CheckResult) {
	s.consecutiveFailures++
	s.logger.Warn().
		Err(result.Err).
		Int("consecutive_failures", s.consecutiveFailures).
		Msg("Fetch failed, will retry on next tick")

	threshold := s.cfg.FailureAnnounceThreshold
	if threshold <= 0 || s.failureAnnounced || s.consecutiveFailures < threshold {
		return
	}

	s.failureAnnounced = true
	s.recordHistory(result)
	if s.announcer != nil {
		s.announcer.AnnounceFailure(ctx, failureMessage(result.Err, s.consecutiveFailures))
	}
}

func (s *Scheduler) resetFailureTracking() {
	if s.consecutiveFailures > 0 {
		s.logger.Info().Int("failed_checks", s.consecutiveFailures).Msg("Fetch recovered")
	}
	s.consecutiveFailures = 0
	s.failureAnnounced = false
}

func (s *Scheduler) recordHistory(result CheckResult) {
	if s.history == nil {
		return
	}

	detail := ""
	if result.Err != nil {
		detail = result.Err.Error()
	}
	checkedAt := result.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now()
	}

	if err := s.history.RecordCheck(result.Outcome.String(), result.Fingerprint, result.NewLink, detail, checkedAt); err != nil {
		s.logger.Error().Err(err).Msg("Failed to record check history")
	}
}

func failureMessage(err error, failures int) string {
	if err == nil {
		return "fetch failed repeatedly"
	}
	return fmt.Sprintf("fetch failed %d times in a row, last error: %v", failures, err)
}
