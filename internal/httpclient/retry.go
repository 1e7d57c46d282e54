package httpclient

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"fwwatch/internal/common/errorwrapper"

	"github.com/rs/zerolog"
)

// RetryHandler retries fetches with exponential backoff. It is used for
// artifact downloads only; the page watcher relies on the next scheduled
// check instead of retrying.
type RetryHandler struct {
	maxAttempts  int
	baseDelay    time.Duration
	maxDelay     time.Duration
	enableJitter bool
	logger       zerolog.Logger
}

// RetryHandlerConfig configuration for retry handler
type RetryHandlerConfig struct {
	MaxAttempts  int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	EnableJitter bool
}

// NewRetryHandler creates a new retry handler
func NewRetryHandler(config RetryHandlerConfig, logger zerolog.Logger) *RetryHandler {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	return &RetryHandler{
		maxAttempts:  config.MaxAttempts,
		baseDelay:    config.BaseDelay,
		maxDelay:     config.MaxDelay,
		enableJitter: config.EnableJitter,
		logger:       logger.With().Str("component", "RetryHandler").Logger(),
	}
}

// CalculateDelay calculates the delay for the next retry attempt using exponential backoff
func (rh *RetryHandler) CalculateDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return rh.baseDelay
	}

	delay := rh.baseDelay * time.Duration(math.Pow(2, float64(attempt)))
	if rh.maxDelay > 0 && delay > rh.maxDelay {
		delay = rh.maxDelay
	}

	// Jitter prevents thundering herd on shared targets
	if rh.enableJitter && delay >= 10*time.Millisecond {
		jitter := time.Duration(rand.Intn(int(delay.Milliseconds()/10))) * time.Millisecond
		delay += jitter
	}

	return delay
}

// shouldRetryStatus reports whether the HTTP status is worth another attempt
func shouldRetryStatus(statusCode int) bool {
	return statusCode == 429 || statusCode >= 500
}

// FetchWithRetry fetches url through the given fetcher, retrying transport
// failures and retryable HTTP statuses up to the configured attempt count.
func (rh *RetryHandler) FetchWithRetry(ctx context.Context, fetcher *Fetcher, url string) (*FetchResult, error) {
	var lastErr error

	for attempt := 0; attempt < rh.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return result, nil
		}
		lastErr = err

		retryable := true
		var httpErr *errorwrapper.HTTPError
		if errors.As(err, &httpErr) {
			retryable = shouldRetryStatus(httpErr.StatusCode)
		}
		if !retryable || attempt == rh.maxAttempts-1 {
			break
		}

		delay := rh.CalculateDelay(attempt)
		rh.logger.Warn().
			Str("url", url).
			Int("attempt", attempt+1).
			Int("max_attempts", rh.maxAttempts).
			Dur("delay", delay).
			Err(err).
			Msg("Fetch failed, waiting before retry")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, errorwrapper.WrapError(lastErr, "all retry attempts failed")
}
