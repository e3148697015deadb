package kindroid

import (
	"context"

	"github.com/puettse/cassian/internal/prompt"
)

// Client defines the interface for Kindroid API operations
type Client interface {
	// SendMessage sends a single composed prompt to the personality and
	// returns its reply text
	SendMessage(ctx context.Context, p prompt.Prompt) (string, error)

	// DiscordBot sends the prompt through the conversation endpoint used
	// for shared Discord personalities and returns the reply text
	DiscordBot(ctx context.Context, p prompt.Prompt) (string, error)
}
