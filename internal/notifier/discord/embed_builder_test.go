package discord

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmbedBuilder_Build(t *testing.T) {
	ts := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	embed := NewEmbedBuilder().
		WithTitle("New firmware available").
		WithDescription("New firmware available: https://example.com/fw.bin").
		WithURL("https://example.com/fw.bin").
		WithTimestamp(ts).
		WithColor(ColorSuccess).
		WithFooter("fwwatch").
		AddField("Previous", "https://example.com/old.bin", false).
		Build()

	assert.Equal(t, "New firmware available", embed.Title)
	assert.Equal(t, "New firmware available: https://example.com/fw.bin", embed.Description)
	assert.Equal(t, "https://example.com/fw.bin", embed.URL)
	assert.Equal(t, "2026-08-24T12:00:00Z", embed.Timestamp)
	assert.Equal(t, ColorSuccess, embed.Color)
	assert.Equal(t, "fwwatch", embed.Footer.Text)
	assert.Len(t, embed.Fields, 1)
	assert.Equal(t, "Previous", embed.Fields[0].Name)
}

func TestEmbedBuilder_DescriptionTruncation(t *testing.T) {
	long := strings.Repeat("a", maxDescriptionLength+500)

	embed := NewEmbedBuilder().WithDescription(long).Build()

	assert.Len(t, embed.Description, maxDescriptionLength)
	assert.True(t, strings.HasSuffix(embed.Description, "..."))
}

func TestEmbedBuilder_ShortDescriptionUntouched(t *testing.T) {
	embed := NewEmbedBuilder().WithDescription("short").Build()
	assert.Equal(t, "short", embed.Description)
}
