// Package bot is the Discord gateway adapter: it filters inbound message
// events and runs the compose → call → reply pipeline for each one.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/puettse/cassian/internal/config"
	"github.com/puettse/cassian/internal/discord"
	"github.com/puettse/cassian/internal/kindroid"
	"github.com/puettse/cassian/internal/memory"
	"github.com/puettse/cassian/internal/prompt"
	"github.com/puettse/cassian/internal/store"
)

// Bot is the Discord adapter wired to the Kindroid client and the
// conversation log. Configuration and overlays are immutable after
// startup, so handlers share no mutable state.
type Bot struct {
	session   discord.Session
	kin       kindroid.Client
	store     store.Store
	cfg       *config.Config
	context   string
	overlays  []memory.Overlay
	logger    *slog.Logger
	startTime time.Time
	pick      func(n int) int
}

// New creates a bot over an already-opened set of collaborators.
func New(session discord.Session, kin kindroid.Client, logStore store.Store,
	cfg *config.Config, overlays []memory.Overlay, logger *slog.Logger) *Bot {

	bot := &Bot{
		session:   session,
		kin:       kin,
		store:     logStore,
		cfg:       cfg,
		context:   memory.Compose(overlays, cfg.Memory.Separator),
		overlays:  overlays,
		logger:    logger,
		startTime: time.Now(),
		pick:      rand.IntN,
	}

	session.AddHandler(bot.messageHandler)

	return bot
}

// Start opens the gateway connection.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	user, err := b.session.User("@me")
	if err != nil {
		return fmt.Errorf("error obtaining account details: %w", err)
	}

	b.logger.InfoContext(ctx, "bot started",
		"username", user.Username,
		"user_id", user.ID)

	return nil
}

// Close closes the gateway session.
func (b *Bot) Close(ctx context.Context) error {
	b.logger.InfoContext(ctx, "closing bot session")
	return b.session.Close()
}

// messageHandler handles incoming messages. discordgo invokes it on its
// own goroutine per event; the pipeline for one message never blocks the
// gateway's ability to deliver the next.
func (b *Bot) messageHandler(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx := context.Background()
	botID := s.State.User.ID

	// Ignore messages from the bot itself to avoid reply loops
	if m.Author == nil || m.Author.ID == botID {
		return
	}

	if isMentioned(m, botID) {
		b.handleMention(ctx, m)
		return
	}

	if strings.HasPrefix(m.Content, CommandPrefix) {
		b.handleCommand(ctx, m)
	}
}

// isMentioned reports whether the bot is addressed in the message.
func isMentioned(m *discordgo.MessageCreate, botID string) bool {
	for _, user := range m.Mentions {
		if user != nil && user.ID == botID {
			return true
		}
	}
	return false
}

// handleMention runs the full pipeline: log prompt, compose, call the
// personality API, post the reply, log the response. Errors are contained
// to this message.
func (b *Bot) handleMention(ctx context.Context, m *discordgo.MessageCreate) {
	author := m.Author.Username

	b.logger.InfoContext(ctx, "handling mention",
		"user_id", m.Author.ID,
		"username", author,
		"channel_id", m.ChannelID,
		"message_length", len(m.Content))

	user := b.logPrompt(ctx, m)

	p := prompt.Compose(b.context, m.Content, author, m.ChannelID)

	ctx, cancel := context.WithTimeout(ctx, b.cfg.ReplyTimeout())
	defer cancel()

	reply, err := b.callPersonality(ctx, p)
	if err != nil {
		b.logger.ErrorContext(ctx, "personality call failed",
			"channel_id", m.ChannelID,
			"error", err)
		b.send(ctx, m.ChannelID, b.cfg.Reply.ErrorNotice)
		return
	}

	b.sendChunked(ctx, m.ChannelID, reply)
	b.logResponse(ctx, user, m.ChannelID, reply)
}

// callPersonality dispatches to the configured Kindroid endpoint.
func (b *Bot) callPersonality(ctx context.Context, p prompt.Prompt) (string, error) {
	if b.cfg.Persona.Endpoint == config.EndpointSendMessage {
		return b.kin.SendMessage(ctx, p)
	}
	return b.kin.DiscordBot(ctx, p)
}

// logPrompt records the incoming message. Log failures never interrupt
// message handling.
func (b *Bot) logPrompt(ctx context.Context, m *discordgo.MessageCreate) *store.User {
	user, err := b.store.EnsureUser(ctx, m.Author.ID, m.Author.Username)
	if err != nil {
		b.logger.WarnContext(ctx, "failed to record user", "error", err)
		return nil
	}

	err = b.store.Log(ctx, user.ID, store.LogEntry{
		EntryType: store.EntryPrompt,
		Content:   m.Content,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
	})
	if err != nil {
		b.logger.WarnContext(ctx, "failed to log prompt", "error", err)
	}
	return &user
}

// logResponse records the reply that was sent.
func (b *Bot) logResponse(ctx context.Context, user *store.User, channelID, reply string) {
	if user == nil {
		return
	}
	err := b.store.Log(ctx, user.ID, store.LogEntry{
		EntryType: store.EntryResponse,
		Content:   reply,
		ChannelID: channelID,
	})
	if err != nil {
		b.logger.WarnContext(ctx, "failed to log response", "error", err)
	}
}
