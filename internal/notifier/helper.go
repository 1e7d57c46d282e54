package notifier

import (
	"context"
	"time"

	"fwwatch/internal/config"
	"fwwatch/internal/notifier/discord"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// MessageSender is the transport behind the notification helper. Both the
// webhook client and the bot client implement it.
type MessageSender interface {
	Send(ctx context.Context, payload discord.MessagePayload) error
}

// NotificationHelper formats and dispatches announcements. Outbound messages
// are rate limited; a message that would exceed the limit is dropped with a
// log line rather than queued, matching the "no notification spam" policy.
type NotificationHelper struct {
	logger    zerolog.Logger
	cfg       config.NotificationConfig
	sender    MessageSender
	limiter   *rate.Limiter
	targetURL string
	interval  time.Duration
}

// NewNotificationHelper creates a notification helper using the given sender
func NewNotificationHelper(sender MessageSender, cfg config.NotificationConfig, targetURL string, interval time.Duration, logger zerolog.Logger) *NotificationHelper {
	perMinute := cfg.AnnouncementsPerMinute
	if perMinute <= 0 {
		perMinute = config.DefaultAnnouncementsPerMinute
	}

	return &NotificationHelper{
		logger:    logger.With().Str("component", "NotificationHelper").Logger(),
		cfg:       cfg,
		sender:    sender,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		targetURL: targetURL,
		interval:  interval,
	}
}

// AnnounceStartup announces that the watcher came online
func (nh *NotificationHelper) AnnounceStartup(ctx context.Context) {
	if !nh.cfg.NotifyOnStartup {
		return
	}
	nh.dispatch(ctx, "startup", buildStartupPayload(nh.targetURL, nh.interval))
}

// AnnouncePageChanged announces a page change without a new artifact
func (nh *NotificationHelper) AnnouncePageChanged(ctx context.Context, checkedAt time.Time) {
	nh.dispatch(ctx, "page_changed", buildPageChangedPayload(nh.targetURL, checkedAt))
}

// AnnounceArtifactChanged announces a new artifact link
func (nh *NotificationHelper) AnnounceArtifactChanged(ctx context.Context, newLink, oldLink string, checkedAt time.Time) {
	nh.dispatch(ctx, "artifact_changed", buildArtifactChangedPayload(nh.cfg.MentionRoleIDs, newLink, oldLink, checkedAt))
}

// AnnounceFailure surfaces a diagnostic through the announcement channel
func (nh *NotificationHelper) AnnounceFailure(ctx context.Context, message string) {
	if !nh.cfg.NotifyOnFailure {
		return
	}
	nh.dispatch(ctx, "failure", buildFailurePayload(message))
}

func (nh *NotificationHelper) dispatch(ctx context.Context, kind string, payload discord.MessagePayload) {
	if nh.sender == nil {
		return
	}

	if !nh.limiter.Allow() {
		nh.logger.Warn().Str("kind", kind).Msg("Announcement rate limit exceeded, dropping message")
		return
	}

	if err := nh.sender.Send(ctx, payload); err != nil {
		nh.logger.Error().Err(err).Str("kind", kind).Msg("Failed to send announcement")
		return
	}
	nh.logger.Info().Str("kind", kind).Msg("Announcement sent")
}
