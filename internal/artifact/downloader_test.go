package artifact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fwwatch/internal/httpclient"
	"fwwatch/internal/watcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDownloader(t *testing.T, dir string) *Downloader {
	t.Helper()
	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).
		WithTimeout(5 * time.Second).
		Build()
	require.NoError(t, err)

	fetcher := httpclient.NewFetcher(client, zerolog.Nop(), 0)
	retry := httpclient.NewRetryHandler(httpclient.RetryHandlerConfig{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
	}, zerolog.Nop())
	return NewDownloader(fetcher, retry, dir, zerolog.Nop())
}

func TestDownloader_Download_FilenameFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	}))
	defer server.Close()

	dir := t.TempDir()
	d := newTestDownloader(t, dir)

	path, err := d.Download(context.Background(), server.URL+"/fw/pocket_2.2.bin")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "pocket_2.2.bin"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, data)
}

func TestDownloader_Download_FilenameFromContentDisposition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="pocket_official.bin"`)
		_, _ = w.Write([]byte("bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	d := newTestDownloader(t, dir)

	path, err := d.Download(context.Background(), server.URL+"/download")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pocket_official.bin"), path)
}

func TestDownloader_Download_SanitizesHostilePaths(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="../../etc/evil.bin"`)
		_, _ = w.Write([]byte("bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	d := newTestDownloader(t, dir)

	path, err := d.Download(context.Background(), server.URL+"/download")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path), "written file must stay inside the download directory")
	assert.Equal(t, "evil.bin", filepath.Base(path))
}

func TestDownloader_Download_RetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	d := newTestDownloader(t, t.TempDir())

	_, err := d.Download(context.Background(), server.URL+"/fw.bin")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDownloader_Download_EmptyLink(t *testing.T) {
	d := newTestDownloader(t, t.TempDir())

	_, err := d.Download(context.Background(), "")
	assert.Error(t, err)
}

func TestDownloader_HandleArtifactChanged_EmptyLinkIsNoop(t *testing.T) {
	dir := t.TempDir()
	d := newTestDownloader(t, dir)

	d.HandleArtifactChanged(watcher.ArtifactChangedEvent{
		Link:     "",
		Previous: "https://example.com/fw_1.bin",
	})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "link removal must not create any files")
}

func TestDownloader_HandleArtifactChanged_Downloads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("firmware"))
	}))
	defer server.Close()

	dir := t.TempDir()
	d := newTestDownloader(t, dir)

	d.HandleArtifactChanged(watcher.ArtifactChangedEvent{
		Link:      server.URL + "/pocket_2.2.bin",
		CheckedAt: time.Now(),
	})

	data, err := os.ReadFile(filepath.Join(dir, "pocket_2.2.bin"))
	require.NoError(t, err)
	assert.Equal(t, "firmware", string(data))
}
