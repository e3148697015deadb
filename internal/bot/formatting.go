package bot

import (
	"context"
)

// send posts a single message, logging failures.
func (b *Bot) send(ctx context.Context, channelID, content string) {
	if _, err := b.session.ChannelMessageSend(channelID, content); err != nil {
		b.logger.ErrorContext(ctx, "failed to send message",
			"channel_id", channelID,
			"error", err)
	}
}

// sendChunked sends long replies in chunks to respect Discord's message
// length limit.
func (b *Bot) sendChunked(ctx context.Context, channelID, response string) {
	for i := 0; i < len(response); i += MaxDiscordMessageLength {
		end := i + MaxDiscordMessageLength
		if end > len(response) {
			end = len(response)
		}

		chunk := response[i:end]
		if _, err := b.session.ChannelMessageSend(channelID, chunk); err != nil {
			b.logger.ErrorContext(ctx, "failed to send message chunk",
				"channel_id", channelID,
				"chunk_index", i/MaxDiscordMessageLength,
				"error", err)
		}
	}
}

// truncate caps a string at n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
