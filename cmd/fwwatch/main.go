package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fwwatch/internal/artifact"
	"fwwatch/internal/config"
	"fwwatch/internal/datastore"
	"fwwatch/internal/extractor"
	"fwwatch/internal/httpclient"
	"fwwatch/internal/logger"
	"fwwatch/internal/notifier"
	"fwwatch/internal/notifier/discord"
	"fwwatch/internal/watcher"

	"github.com/rs/zerolog"
)

func main() {
	flags := parseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config using path '%s': %v", flags.ConfigFile, err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	zLogger.Info().Str("target_url", gCfg.WatcherConfig.TargetURL).Msg("Configuration loaded and validated")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, gCfg, zLogger); err != nil && !errors.Is(err, context.Canceled) {
		zLogger.Fatal().Err(err).Msg("Watcher terminated with error")
	}
	zLogger.Info().Msg("Shutdown complete")
}

func run(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) error {
	wCfg := gCfg.WatcherConfig

	httpClient, err := httpclient.NewHTTPClientBuilder(zLogger).
		WithTimeout(time.Duration(wCfg.HTTPTimeoutSeconds) * time.Second).
		WithUserAgent(wCfg.UserAgent).
		WithInsecureSkipVerify(wCfg.InsecureSkipVerify).
		Build()
	if err != nil {
		return err
	}

	fetcher := httpclient.NewFetcher(httpClient, zLogger, wCfg.MaxContentSize)
	linkExtractor := extractor.NewArtifactLinkExtractor(wCfg.ArtifactSchemePrefix, wCfg.ArtifactExtension, zLogger)
	pageWatcher := watcher.NewWatcher(wCfg.TargetURL, fetcher, linkExtractor, zLogger)

	// Snapshot and download observers replay the original bot's side effects
	snapshotWriter := artifact.NewSnapshotWriter(gCfg.StorageConfig.DownloadDir, zLogger)
	pageWatcher.Events().OnPageChanged(snapshotWriter.HandlePageChanged)

	retryHandler := httpclient.NewRetryHandler(httpclient.RetryHandlerConfig{
		MaxAttempts:  gCfg.RetryConfig.MaxAttempts,
		BaseDelay:    time.Duration(gCfg.RetryConfig.BaseDelaySecs) * time.Second,
		MaxDelay:     time.Duration(gCfg.RetryConfig.MaxDelaySecs) * time.Second,
		EnableJitter: gCfg.RetryConfig.EnableJitter,
	}, zLogger)
	downloader := artifact.NewDownloader(fetcher, retryHandler, gCfg.StorageConfig.DownloadDir, zLogger)
	pageWatcher.Events().OnArtifactChanged(downloader.HandleArtifactChanged)

	var history watcher.HistoryRecorder
	if !gCfg.StorageConfig.HistoryOff && gCfg.StorageConfig.HistoryDBPath != "" {
		historyStore, err := datastore.NewHistoryStore(gCfg.StorageConfig.HistoryDBPath, zLogger)
		if err != nil {
			return err
		}
		defer historyStore.Close()
		history = historyStore
		logRecentHistory(historyStore, zLogger)
	}

	sender, cleanup, err := buildMessageSender(gCfg, httpClient, zLogger)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	checkInterval := time.Duration(wCfg.CheckIntervalSeconds) * time.Second
	helper := notifier.NewNotificationHelper(sender, gCfg.NotificationConfig, wCfg.TargetURL, checkInterval, zLogger)
	helper.AnnounceStartup(ctx)

	scheduler := watcher.NewScheduler(watcher.SchedulerConfig{
		CheckInterval:            checkInterval,
		FailureAnnounceThreshold: wCfg.FailureAnnounceThreshold,
	}, pageWatcher, helper, history, zLogger)

	return scheduler.Run(ctx)
}

// logRecentHistory prints the tail of the transition ledger so operators see
// what the previous run detected. The watcher never restores state from it;
// the first check always re-establishes the baseline.
func logRecentHistory(store *datastore.HistoryStore, zLogger zerolog.Logger) {
	if link, err := store.LastKnownArtifactLink(); err != nil {
		zLogger.Warn().Err(err).Msg("Could not read last recorded artifact link")
	} else if link != "" {
		zLogger.Info().Str("artifact_link", link).Msg("Last recorded artifact link")
	}

	entries, err := store.RecentChecks(5)
	if err != nil {
		zLogger.Warn().Err(err).Msg("Could not read recent check history")
		return
	}
	for _, entry := range entries {
		zLogger.Info().
			Time("checked_at", entry.CheckedAt).
			Str("outcome", entry.Outcome).
			Str("artifact_link", entry.ArtifactLink).
			Msg("Previously recorded transition")
	}
}

// buildMessageSender picks the announcement transport: a bot session when a
// token is configured, else the webhook, else none.
func buildMessageSender(gCfg *config.GlobalConfig, httpClient *httpclient.HTTPClient, zLogger zerolog.Logger) (notifier.MessageSender, func(), error) {
	nCfg := gCfg.NotificationConfig

	if nCfg.DiscordBotToken != "" {
		botClient, err := discord.NewBotClient(nCfg.DiscordBotToken, nCfg.DiscordChannelID, zLogger)
		if err != nil {
			return nil, nil, err
		}
		if err := botClient.Open(); err != nil {
			return nil, nil, err
		}
		return botClient, func() { _ = botClient.Close() }, nil
	}

	if nCfg.DiscordWebhookURL != "" {
		return discord.NewWebhookClient(httpClient, nCfg.DiscordWebhookURL, zLogger), nil, nil
	}

	zLogger.Warn().Msg("No Discord transport configured, changes will only be logged")
	return nil, nil, nil
}
