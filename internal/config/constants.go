package config

const (
	// Watcher Defaults
	DefaultCheckIntervalSeconds     = 180
	DefaultHTTPTimeoutSeconds       = 30
	DefaultMaxContentSize           = 5242880 // 5MB
	DefaultArtifactExtension        = ".bin"
	DefaultArtifactSchemePrefix     = "http"
	DefaultFailureAnnounceThreshold = 5
	DefaultWatcherUserAgent         = "fwwatch/1.0 (+firmware update watcher)"

	// Storage Defaults
	DefaultDownloadDir   = "download"
	DefaultHistoryDBPath = "download/fwwatch_history.db"

	// Retry Defaults (artifact download path only)
	DefaultRetryMaxAttempts   = 3
	DefaultRetryBaseDelaySecs = 2
	DefaultRetryMaxDelaySecs  = 30

	// Notification Defaults
	DefaultAnnouncementsPerMinute = 10

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)
