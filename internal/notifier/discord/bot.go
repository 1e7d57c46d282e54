package discord

import (
	"context"

	"fwwatch/internal/common/errorwrapper"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// BotClient sends message payloads to a fixed channel through a Discord bot
// session, for deployments that use a bot token instead of a webhook.
type BotClient struct {
	logger    zerolog.Logger
	session   *discordgo.Session
	channelID string
}

// NewBotClient creates a Discord bot session bound to channelID. Open must
// be called before sending.
func NewBotClient(token, channelID string, logger zerolog.Logger) (*BotClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create Discord session")
	}

	return &BotClient{
		logger:    logger.With().Str("component", "DiscordBotClient").Logger(),
		session:   session,
		channelID: channelID,
	}, nil
}

// Open connects the bot session to the Discord gateway
func (bc *BotClient) Open() error {
	if err := bc.session.Open(); err != nil {
		return errorwrapper.WrapError(err, "failed to open Discord session")
	}

	bc.logger.Info().Str("channel_id", bc.channelID).Msg("Discord bot session opened")
	return nil
}

// Close shuts down the bot session
func (bc *BotClient) Close() error {
	return bc.session.Close()
}

// Send posts the payload as a channel message. The context is accepted for
// interface symmetry with the webhook client; discordgo manages its own
// request deadlines.
func (bc *BotClient) Send(ctx context.Context, payload MessagePayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := &discordgo.MessageSend{
		Content: payload.Content,
		Embeds:  toDiscordgoEmbeds(payload.Embeds),
	}

	if _, err := bc.session.ChannelMessageSendComplex(bc.channelID, message); err != nil {
		bc.logger.Error().Err(err).Str("channel_id", bc.channelID).Msg("Failed to send channel message")
		return errorwrapper.WrapError(err, "failed to send channel message")
	}

	bc.logger.Debug().Str("channel_id", bc.channelID).Msg("Discord channel message sent")
	return nil
}

func toDiscordgoEmbeds(embeds []Embed) []*discordgo.MessageEmbed {
	if len(embeds) == 0 {
		return nil
	}

	converted := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, embed := range embeds {
		msgEmbed := &discordgo.MessageEmbed{
			Title:       embed.Title,
			Description: embed.Description,
			URL:         embed.URL,
			Timestamp:   embed.Timestamp,
			Color:       embed.Color,
		}
		if embed.Footer != nil {
			msgEmbed.Footer = &discordgo.MessageEmbedFooter{
				Text:    embed.Footer.Text,
				IconURL: embed.Footer.IconURL,
			}
		}
		for _, field := range embed.Fields {
			msgEmbed.Fields = append(msgEmbed.Fields, &discordgo.MessageEmbedField{
				Name:   field.Name,
				Value:  field.Value,
				Inline: field.Inline,
			})
		}
		converted = append(converted, msgEmbed)
	}
	return converted
}
