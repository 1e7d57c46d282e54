package artifact

import (
	"context"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"fwwatch/internal/common/errorwrapper"
	"fwwatch/internal/httpclient"
	"fwwatch/internal/watcher"

	"github.com/rs/zerolog"
)

// Downloader fetches a newly announced artifact and writes it to the
// download directory. Artifacts are grabbed eagerly because vendors have
// been known to pull a firmware file shortly after publishing it.
type Downloader struct {
	logger  zerolog.Logger
	fetcher *httpclient.Fetcher
	retry   *httpclient.RetryHandler
	dir     string
}

// NewDownloader creates a downloader writing into dir
func NewDownloader(fetcher *httpclient.Fetcher, retry *httpclient.RetryHandler, dir string, logger zerolog.Logger) *Downloader {
	return &Downloader{
		logger:  logger.With().Str("component", "Downloader").Logger(),
		fetcher: fetcher,
		retry:   retry,
		dir:     dir,
	}
}

// HandleArtifactChanged is the artifact-changed observer. An empty link
// means the page no longer declares an artifact; there is nothing to fetch.
func (d *Downloader) HandleArtifactChanged(event watcher.ArtifactChangedEvent) {
	if event.Link == "" {
		d.logger.Info().Str("previous", event.Previous).Msg("Artifact link removed from page, nothing to download")
		return
	}

	path, err := d.Download(context.Background(), event.Link)
	if err != nil {
		d.logger.Error().Err(err).Str("link", event.Link).Msg("Failed to download artifact")
		return
	}
	d.logger.Info().Str("link", event.Link).Str("path", path).Msg("New artifact downloaded")
}

// Download fetches link with retries and writes the bytes to the download
// directory, returning the written file path.
func (d *Downloader) Download(ctx context.Context, link string) (string, error) {
	if link == "" {
		return "", errorwrapper.NewError("artifact link is empty")
	}

	result, err := d.retry.FetchWithRetry(ctx, d.fetcher, link)
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to fetch artifact")
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", errorwrapper.WrapError(err, "failed to create download directory")
	}

	filename := d.resolveFilename(link, result)
	target := filepath.Join(d.dir, filename)
	if err := os.WriteFile(target, result.Body, 0644); err != nil {
		return "", errorwrapper.WrapError(err, "failed to write artifact file")
	}
	return target, nil
}

// resolveFilename picks a file name: Content-Disposition first, then the URL
// path base, then a timestamped fallback.
func (d *Downloader) resolveFilename(link string, result *httpclient.FetchResult) string {
	if result.ContentDisposition != "" {
		if _, params, err := mime.ParseMediaType(result.ContentDisposition); err == nil {
			if name := sanitizeFilename(params["filename"]); name != "" {
				return name
			}
		}
	}

	if parsed, err := url.Parse(link); err == nil {
		if name := sanitizeFilename(path.Base(parsed.Path)); name != "" {
			return name
		}
	}

	ext := path.Ext(link)
	if ext == "" {
		ext = ".bin"
	}
	return "firmware_" + strconv.FormatInt(time.Now().Unix(), 10) + ext
}

// sanitizeFilename strips any path components a server might smuggle in
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		return ""
	}
	return name
}
