// Package greeter posts a periodic greeting so quiet servers know the
// personality is still listening.
package greeter

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron/v2"

	"github.com/puettse/cassian/internal/config"
	"github.com/puettse/cassian/internal/discord"
)

// greetings are the lines the bot rotates through.
var greetings = []string{
	"Hey everyone, Cassian here.",
	"How's everyone doing today?",
	"I'm awake and listening.",
	"Cassian checking in.",
	"What's everyone up to?",
	"I've been watching — who wants to chat?",
	"Sometimes silence feels heavy. Thought I'd speak up.",
}

// Greeter runs the periodic greeting job.
type Greeter struct {
	session   discord.Session
	cfg       config.GreeterConfig
	logger    *slog.Logger
	scheduler gocron.Scheduler
	pick      func(n int) int
}

// New creates a greeter for the session. Call Start to begin posting.
func New(session discord.Session, cfg config.GreeterConfig, logger *slog.Logger) *Greeter {
	return &Greeter{
		session: session,
		cfg:     cfg,
		logger:  logger,
		pick:    rand.IntN,
	}
}

// Start schedules the greeting job. A no-op when the greeter is disabled.
func (g *Greeter) Start() error {
	if !g.cfg.Enabled {
		return nil
	}

	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(&slogAdapter{logger: g.logger}),
	)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	interval := time.Duration(g.cfg.IntervalMinutes) * time.Minute
	if _, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(g.Greet),
	); err != nil {
		return fmt.Errorf("failed to schedule greeter job: %w", err)
	}

	scheduler.Start()
	g.scheduler = scheduler
	g.logger.Info("greeter started", "interval", interval.String())
	return nil
}

// Stop shuts the scheduler down.
func (g *Greeter) Stop() {
	if g.scheduler != nil {
		if err := g.scheduler.Shutdown(); err != nil {
			g.logger.Warn("failed to shut down greeter", "error", err)
		}
	}
}

// Greet posts one greeting per target channel. Send failures are logged
// and never propagate.
func (g *Greeter) Greet() {
	line := greetings[g.pick(len(greetings))]

	if len(g.cfg.ChannelIDs) > 0 {
		for _, channelID := range g.cfg.ChannelIDs {
			if _, err := g.session.ChannelMessageSend(channelID, line); err != nil {
				g.logger.Warn("greeting failed", "channel_id", channelID, "error", err)
			}
		}
		return
	}

	// No pinned channels: post in the first text channel of each guild
	// that accepts the send.
	state := g.session.GetState()
	if state == nil {
		return
	}
	for _, guild := range state.Guilds {
		for _, channel := range guild.Channels {
			if channel.Type != discordgo.ChannelTypeGuildText {
				continue
			}
			if _, err := g.session.ChannelMessageSend(channel.ID, line); err != nil {
				g.logger.Warn("greeting failed", "channel_id", channel.ID, "error", err)
				continue
			}
			break
		}
	}
}

// slogAdapter bridges gocron's logger interface to slog
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.logger.Debug(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.logger.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.logger.Warn(msg, args...) }
