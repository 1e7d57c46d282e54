package notifier

import (
	"fmt"
	"strings"
	"time"

	"fwwatch/internal/notifier/discord"
)

const notificationUsername = "fwwatch"

func buildMentionContent(roleIDs []string) string {
	if len(roleIDs) == 0 {
		return ""
	}

	mentions := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		mentions = append(mentions, fmt.Sprintf("<@&%s>", id))
	}
	return strings.Join(mentions, " ")
}

func buildStartupPayload(targetURL string, interval time.Duration) discord.MessagePayload {
	embed := discord.NewEmbedBuilder().
		WithTitle("Firmware watcher online").
		WithDescription(fmt.Sprintf("Watching %s every %s for firmware updates.", targetURL, interval)).
		WithColor(discord.ColorInfo).
		WithTimestamp(time.Now()).
		Build()

	return discord.MessagePayload{
		Username: notificationUsername,
		Embeds:   []discord.Embed{embed},
	}
}

func buildPageChangedPayload(targetURL string, checkedAt time.Time) discord.MessagePayload {
	embed := discord.NewEmbedBuilder().
		WithTitle("Support page updated").
		WithDescription("The watched page changed, but the firmware link is the same as before.").
		WithURL(targetURL).
		WithColor(discord.ColorWarning).
		WithTimestamp(checkedAt).
		Build()

	return discord.MessagePayload{
		Username: notificationUsername,
		Embeds:   []discord.Embed{embed},
	}
}

func buildArtifactChangedPayload(mentionRoleIDs []string, newLink, oldLink string, checkedAt time.Time) discord.MessagePayload {
	builder := discord.NewEmbedBuilder().
		WithColor(discord.ColorSuccess).
		WithTimestamp(checkedAt)

	if newLink == "" {
		builder.
			WithTitle("Firmware link removed").
			WithDescription("The watched page no longer declares a firmware download link.").
			WithColor(discord.ColorWarning)
	} else {
		builder.
			WithTitle("New firmware available").
			WithDescription(fmt.Sprintf("New firmware available: %s", newLink)).
			WithURL(newLink)
	}

	if oldLink != "" {
		builder.AddField("Previous", oldLink, false)
	}

	return discord.MessagePayload{
		Username: notificationUsername,
		Content:  buildMentionContent(mentionRoleIDs),
		Embeds:   []discord.Embed{builder.Build()},
	}
}

func buildFailurePayload(message string) discord.MessagePayload {
	embed := discord.NewEmbedBuilder().
		WithTitle("Watcher diagnostic").
		WithDescription(message).
		WithColor(discord.ColorError).
		WithTimestamp(time.Now()).
		Build()

	return discord.MessagePayload{
		Username: notificationUsername,
		Embeds:   []discord.Embed{embed},
	}
}
