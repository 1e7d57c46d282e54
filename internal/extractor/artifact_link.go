package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// ArtifactLinkExtractor extracts the artifact download link from page markup.
// A hyperlink qualifies when its href is an absolute URL (scheme prefix match)
// whose path ends, case-insensitively, in the configured artifact extension.
// Among qualifying links the last one in document order wins.
type ArtifactLinkExtractor struct {
	logger       zerolog.Logger
	schemePrefix string
	extension    string
}

// NewArtifactLinkExtractor creates a new extractor for the given scheme prefix
// and artifact file extension (e.g. "http" and ".bin").
func NewArtifactLinkExtractor(schemePrefix, extension string, logger zerolog.Logger) *ArtifactLinkExtractor {
	return &ArtifactLinkExtractor{
		logger:       logger.With().Str("component", "ArtifactLinkExtractor").Logger(),
		schemePrefix: schemePrefix,
		extension:    strings.ToLower(extension),
	}
}

// Extract scans markup for hyperlinks in document order and returns the last
// qualifying artifact link. The second return value is false when no
// hyperlink qualifies. Malformed markup is parsed best-effort; tags that
// cannot be interpreted are skipped, never an error.
func (e *ArtifactLinkExtractor) Extract(markup string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		e.logger.Debug().Err(err).Msg("Failed to parse markup, treating as no link")
		return "", false
	}

	var link string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if !e.qualifies(href) {
			return
		}
		link = href
	})

	return link, link != ""
}

func (e *ArtifactLinkExtractor) qualifies(href string) bool {
	if href == "" {
		return false
	}
	if !strings.HasPrefix(href, e.schemePrefix) {
		return false
	}
	return strings.HasSuffix(strings.ToLower(href), e.extension)
}
