package discord

import (
	"time"
)

// Discord caps embed descriptions; longer texts are truncated with a marker.
const maxDescriptionLength = 4096

// EmbedBuilder helps in constructing Embed objects.
type EmbedBuilder struct {
	embed Embed
}

// NewEmbedBuilder creates a new embed builder
func NewEmbedBuilder() *EmbedBuilder {
	return &EmbedBuilder{embed: Embed{}}
}

// WithTitle sets the embed title
func (eb *EmbedBuilder) WithTitle(title string) *EmbedBuilder {
	eb.embed.Title = title
	return eb
}

// WithDescription sets the embed description, truncating if over the limit
func (eb *EmbedBuilder) WithDescription(description string) *EmbedBuilder {
	if len(description) > maxDescriptionLength {
		description = description[:maxDescriptionLength-3] + "..."
	}
	eb.embed.Description = description
	return eb
}

// WithURL sets the embed URL
func (eb *EmbedBuilder) WithURL(url string) *EmbedBuilder {
	eb.embed.URL = url
	return eb
}

// WithTimestamp sets the embed timestamp
func (eb *EmbedBuilder) WithTimestamp(timestamp time.Time) *EmbedBuilder {
	eb.embed.Timestamp = timestamp.Format(time.RFC3339)
	return eb
}

// WithColor sets the embed color
func (eb *EmbedBuilder) WithColor(color int) *EmbedBuilder {
	eb.embed.Color = color
	return eb
}

// WithFooter sets the embed footer
func (eb *EmbedBuilder) WithFooter(text string) *EmbedBuilder {
	eb.embed.Footer = &EmbedFooter{Text: text}
	return eb
}

// AddField adds a field to the embed
func (eb *EmbedBuilder) AddField(name, value string, inline bool) *EmbedBuilder {
	eb.embed.Fields = append(eb.embed.Fields, NewEmbedField(name, value, inline))
	return eb
}

// Build returns the constructed embed
func (eb *EmbedBuilder) Build() Embed {
	return eb.embed
}
