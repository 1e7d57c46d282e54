package config

// WatcherConfig defines configuration for the change-detection watcher
type WatcherConfig struct {
	TargetURL                string `json:"target_url" yaml:"target_url" validate:"required,url"`
	CheckIntervalSeconds     int    `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty" validate:"omitempty,min=1"`
	HTTPTimeoutSeconds       int    `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	MaxContentSize           int    `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"omitempty,min=1"` // Max page size in bytes
	ArtifactExtension        string `json:"artifact_extension,omitempty" yaml:"artifact_extension,omitempty" validate:"omitempty,artifactext"`
	ArtifactSchemePrefix     string `json:"artifact_scheme_prefix,omitempty" yaml:"artifact_scheme_prefix,omitempty"`
	FailureAnnounceThreshold int    `json:"failure_announce_threshold,omitempty" yaml:"failure_announce_threshold,omitempty" validate:"omitempty,min=1"`
	UserAgent                string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	InsecureSkipVerify       bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// NewDefaultWatcherConfig creates default watcher configuration
func NewDefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{
		TargetURL:                "",
		CheckIntervalSeconds:     DefaultCheckIntervalSeconds,
		HTTPTimeoutSeconds:       DefaultHTTPTimeoutSeconds,
		MaxContentSize:           DefaultMaxContentSize,
		ArtifactExtension:        DefaultArtifactExtension,
		ArtifactSchemePrefix:     DefaultArtifactSchemePrefix,
		FailureAnnounceThreshold: DefaultFailureAnnounceThreshold,
		UserAgent:                DefaultWatcherUserAgent,
		InsecureSkipVerify:       false,
	}
}
