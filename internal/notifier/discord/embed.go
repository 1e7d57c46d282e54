package discord

// Embed represents a Discord embed object.
type Embed struct {
	Title       string       `json:"title,omitempty"`       // Title of embed
	Description string       `json:"description,omitempty"` // Description of embed
	URL         string       `json:"url,omitempty"`         // URL of embed
	Timestamp   string       `json:"timestamp,omitempty"`   // ISO8601 timestamp
	Color       int          `json:"color,omitempty"`       // Color code of the embed
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"` // Array of embed field objects
}

// EmbedFooter represents the footer of an embed.
type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedField represents a field inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// NewEmbedField creates a new embed field
func NewEmbedField(name, value string, inline bool) EmbedField {
	return EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	}
}

// Embed colors used by fwwatch notifications
const (
	ColorInfo    = 0x3498DB // blue
	ColorSuccess = 0x2ECC71 // green
	ColorWarning = 0xE67E22 // orange
	ColorError   = 0xE74C3C // red
)
