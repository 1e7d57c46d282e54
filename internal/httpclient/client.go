package httpclient

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"fwwatch/internal/common/errorwrapper"

	"github.com/rs/zerolog"
)

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	Timeout            time.Duration
	UserAgent          string
	InsecureSkipVerify bool
	FollowRedirects    bool
	MaxRedirects       int
}

// DefaultClientConfig returns the default HTTP client configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:         30 * time.Second,
		FollowRedirects: true,
		MaxRedirects:    10,
	}
}

// HTTPClient wraps the standard http.Client with fwwatch-specific defaults
type HTTPClient struct {
	client *http.Client
	config ClientConfig
	logger zerolog.Logger
}

// HTTPClientBuilder provides fluent interface for building HTTP clients
type HTTPClientBuilder struct {
	config ClientConfig
	logger zerolog.Logger
}

// NewHTTPClientBuilder creates a new HTTP client builder
func NewHTTPClientBuilder(logger zerolog.Logger) *HTTPClientBuilder {
	return &HTTPClientBuilder{
		config: DefaultClientConfig(),
		logger: logger,
	}
}

// WithTimeout sets the request timeout
func (b *HTTPClientBuilder) WithTimeout(timeout time.Duration) *HTTPClientBuilder {
	b.config.Timeout = timeout
	return b
}

// WithUserAgent sets the User-Agent header for all requests
func (b *HTTPClientBuilder) WithUserAgent(userAgent string) *HTTPClientBuilder {
	b.config.UserAgent = userAgent
	return b
}

// WithInsecureSkipVerify disables TLS certificate verification
func (b *HTTPClientBuilder) WithInsecureSkipVerify(skip bool) *HTTPClientBuilder {
	b.config.InsecureSkipVerify = skip
	return b
}

// WithFollowRedirects controls redirect following
func (b *HTTPClientBuilder) WithFollowRedirects(follow bool) *HTTPClientBuilder {
	b.config.FollowRedirects = follow
	return b
}

// WithMaxRedirects caps the number of redirects to follow
func (b *HTTPClientBuilder) WithMaxRedirects(max int) *HTTPClientBuilder {
	b.config.MaxRedirects = max
	return b
}

// Build creates the HTTP client instance
func (b *HTTPClientBuilder) Build() (*HTTPClient, error) {
	if b.config.Timeout <= 0 {
		return nil, errorwrapper.NewValidationError("timeout", b.config.Timeout, "timeout must be positive")
	}

	transport := &http.Transport{
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
	}
	if b.config.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := &http.Client{
		Timeout:   b.config.Timeout,
		Transport: transport,
	}

	if !b.config.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if b.config.MaxRedirects > 0 {
		maxRedirects := b.config.MaxRedirects
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errorwrapper.NewError("stopped after %d redirects", maxRedirects)
			}
			return nil
		}
	}

	return &HTTPClient{
		client: client,
		config: b.config,
		logger: b.logger.With().Str("component", "HTTPClient").Logger(),
	}, nil
}

// Get performs a GET request with the configured defaults applied
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "creating request for "+url)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	return c.client.Do(req)
}

// Post performs a POST request with the given content type and body
func (c *HTTPClient) Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "creating request for "+url)
	}
	req.Header.Set("Content-Type", contentType)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	return c.client.Do(req)
}
