package config

// RetryConfig defines retry behavior for artifact downloads.
// The watcher itself never retries a page fetch; the scheduler simply tries
// again on the next tick.
type RetryConfig struct {
	MaxAttempts   int  `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"omitempty,min=1"`
	BaseDelaySecs int  `json:"base_delay_secs,omitempty" yaml:"base_delay_secs,omitempty" validate:"omitempty,min=1"`
	MaxDelaySecs  int  `json:"max_delay_secs,omitempty" yaml:"max_delay_secs,omitempty" validate:"omitempty,min=1"`
	EnableJitter  bool `json:"enable_jitter" yaml:"enable_jitter"`
}

// NewDefaultRetryConfig creates default retry configuration
func NewDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   DefaultRetryMaxAttempts,
		BaseDelaySecs: DefaultRetryBaseDelaySecs,
		MaxDelaySecs:  DefaultRetryMaxDelaySecs,
		EnableJitter:  true,
	}
}
