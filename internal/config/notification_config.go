package config

// NotificationConfig defines configuration for outbound announcements
type NotificationConfig struct {
	DiscordWebhookURL      string   `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" validate:"omitempty,url"`
	DiscordBotToken        string   `json:"discord_bot_token,omitempty" yaml:"discord_bot_token,omitempty"`
	DiscordChannelID       string   `json:"discord_channel_id,omitempty" yaml:"discord_channel_id,omitempty"`
	MentionRoleIDs         []string `json:"mention_role_ids,omitempty" yaml:"mention_role_ids,omitempty"`
	NotifyOnStartup        bool     `json:"notify_on_startup" yaml:"notify_on_startup"`
	NotifyOnFailure        bool     `json:"notify_on_failure" yaml:"notify_on_failure"`
	AnnouncementsPerMinute int      `json:"announcements_per_minute,omitempty" yaml:"announcements_per_minute,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		DiscordWebhookURL:      "",
		DiscordBotToken:        "",
		DiscordChannelID:       "",
		MentionRoleIDs:         []string{},
		NotifyOnStartup:        true,
		NotifyOnFailure:        true,
		AnnouncementsPerMinute: DefaultAnnouncementsPerMinute,
	}
}
