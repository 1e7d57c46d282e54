package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fwwatch/internal/common/errorwrapper"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithTimeout(5 * time.Second).
		WithUserAgent("fwwatch-test").
		Build()
	require.NoError(t, err)
	return client
}

func TestFetcher_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fwwatch-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>firmware page</html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(newTestClient(t), zerolog.Nop(), 0)
	result, err := fetcher.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, []byte("<html>firmware page</html>"), result.Body)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", result.ContentType)
	assert.True(t, result.IsSuccess())
	assert.False(t, result.FetchedAt.IsZero())
}

func TestFetcher_Fetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone fishing", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := NewFetcher(newTestClient(t), zerolog.Nop(), 0)
	result, err := fetcher.Fetch(context.Background(), server.URL)

	require.Error(t, err)
	var httpErr *errorwrapper.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.False(t, result.IsSuccess())
}

func TestFetcher_Fetch_TransportError(t *testing.T) {
	fetcher := NewFetcher(newTestClient(t), zerolog.Nop(), 0)

	// Closed server guarantees a connection error
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	result, err := fetcher.Fetch(context.Background(), url)

	require.Error(t, err)
	var netErr *errorwrapper.NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Nil(t, result)
}

func TestFetcher_Fetch_ContentSizeLimit(t *testing.T) {
	payload := make([]byte, 2048)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	t.Run("body exceeds limit", func(t *testing.T) {
		fetcher := NewFetcher(newTestClient(t), zerolog.Nop(), 1024)
		result, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content too large")
		assert.Nil(t, result)
	})

	t.Run("body within limit", func(t *testing.T) {
		fetcher := NewFetcher(newTestClient(t), zerolog.Nop(), 4096)
		result, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, result.Body, 2048)
	})
}

func TestFetcher_Fetch_ExactRawBytes(t *testing.T) {
	// Raw bytes must come through untouched, including non-UTF-8 sequences
	raw := []byte{'<', 'p', '>', 0xFF, 0xFE, 0x00, '<', '/', 'p', '>'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(raw)
	}))
	defer server.Close()

	fetcher := NewFetcher(newTestClient(t), zerolog.Nop(), 0)
	result, err := fetcher.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, raw, result.Body)
}
