package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Session defines the interface for Discord gateway operations
type Session interface {
	// Open opens a websocket connection to Discord
	Open() error

	// Close closes the websocket connection to Discord
	Close() error

	// User returns the current user
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)

	// ChannelMessageSend sends a message to a channel
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)

	// AddHandler adds an event handler
	AddHandler(handler interface{}) func()

	// GetState returns the session state
	GetState() *discordgo.State
}

// GatewaySession wraps discordgo.Session to implement the Session interface
type GatewaySession struct {
	*discordgo.Session
}

// NewGatewaySession creates a gateway session for the bot token with the
// intents the mention pipeline needs.
func NewGatewaySession(token string) (*GatewaySession, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	return &GatewaySession{Session: session}, nil
}

// GetState returns the session state
func (g *GatewaySession) GetState() *discordgo.State {
	return g.State
}
