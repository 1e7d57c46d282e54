package httpclient

import (
	"context"
	"io"
	"time"

	"fwwatch/internal/common/errorwrapper"

	"github.com/rs/zerolog"
)

// FetchResult holds the outcome of a successful fetch
type FetchResult struct {
	Body               []byte
	StatusCode         int
	ContentType        string
	ContentDisposition string
	FetchedAt          time.Time
}

// Fetcher fetches raw resource content over HTTP. Non-2xx responses and
// transport failures both surface as errors so callers can treat them as a
// single "fetch did not succeed" outcome.
type Fetcher struct {
	client         *HTTPClient
	logger         zerolog.Logger
	maxContentSize int
}

// NewFetcher creates a new Fetcher
func NewFetcher(client *HTTPClient, logger zerolog.Logger, maxContentSize int) *Fetcher {
	return &Fetcher{
		client:         client,
		logger:         logger.With().Str("component", "Fetcher").Logger(),
		maxContentSize: maxContentSize,
	}
}

// Fetch retrieves the resource at url and returns its exact raw bytes.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		f.logger.Debug().Err(err).Str("url", url).Msg("HTTP request failed")
		return nil, errorwrapper.NewNetworkError(url, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	result := &FetchResult{
		StatusCode:         resp.StatusCode,
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
		FetchedAt:          time.Now(),
	}

	if !result.IsSuccess() {
		// Read a little of the body for error context
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		f.logger.Warn().Str("url", url).Int("status_code", resp.StatusCode).Msg("Received non-success HTTP status")
		return result, errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, string(bodyBytes), url)
	}

	if f.maxContentSize > 0 && resp.ContentLength > int64(f.maxContentSize) {
		return nil, errorwrapper.NewError("content too large: %d bytes (max: %d bytes)", resp.ContentLength, f.maxContentSize)
	}

	var reader io.Reader = resp.Body
	if f.maxContentSize > 0 {
		reader = io.LimitReader(resp.Body, int64(f.maxContentSize)+1)
	}

	bodyBytes, err := io.ReadAll(reader)
	if err != nil {
		f.logger.Error().Err(err).Str("url", url).Msg("Failed to read response body")
		return nil, errorwrapper.WrapError(err, "failed to read response body")
	}

	if f.maxContentSize > 0 && len(bodyBytes) > f.maxContentSize {
		return nil, errorwrapper.NewError("content too large: %d bytes (max: %d bytes)", len(bodyBytes), f.maxContentSize)
	}

	result.Body = bodyBytes

	f.logger.Debug().
		Str("url", url).
		Str("content_type", result.ContentType).
		Int("size", len(result.Body)).
		Msg("Content fetched successfully")
	return result, nil
}

// IsSuccess reports whether the result carries a 2xx status
func (r *FetchResult) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}
