package bot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/puettse/cassian/internal/store"
)

// handleCommand parses and routes a prefixed command.
func (b *Bot) handleCommand(ctx context.Context, m *discordgo.MessageCreate) {
	command, args := parseCommand(m.Content)
	if command == "" {
		return
	}

	b.logger.InfoContext(ctx, "received command",
		"command", command,
		"user_id", m.Author.ID,
		"channel_id", m.ChannelID)

	switch command {
	case "ping":
		b.send(ctx, m.ChannelID, "Cassian is online and listening.")
	case "whoami":
		b.send(ctx, m.ChannelID, fmt.Sprintf("You are %s (Discord ID: %s).", m.Author.Username, m.Author.ID))
	case "remember":
		b.handleRemember(ctx, m, strings.Join(args, " "))
	case "showmem":
		b.handleShowMem(ctx, m)
	case "purge_last":
		b.handlePurgeLast(ctx, m, args)
	case "purge_mem":
		b.handlePurgeMem(ctx, m, args)
	case "backstory":
		b.handleOverlayEcho(ctx, m, "backstory", "Cassian's Backstory")
	case "directives":
		b.handleOverlayEcho(ctx, m, "directives", "Cassian's Directives")
	case "memories":
		b.handleOverlayEcho(ctx, m, "memories", "Cassian's Key Memories")
	case "stats":
		b.handleStats(ctx, m)
	case "uptime":
		b.handleUptime(ctx, m)
	case "menu", "help":
		b.send(ctx, m.ChannelID, menuText)
	default:
		b.handleAction(ctx, m, command)
	}
}

// parseCommand splits "!cmd arg arg" into its name and arguments.
func parseCommand(content string) (string, []string) {
	if !strings.HasPrefix(content, CommandPrefix) {
		return "", nil
	}
	parts := strings.Fields(content)
	if len(parts) == 0 {
		return "", nil
	}
	command := strings.TrimPrefix(parts[0], CommandPrefix)
	return strings.ToLower(command), parts[1:]
}

func (b *Bot) handleRemember(ctx context.Context, m *discordgo.MessageCreate, text string) {
	if strings.TrimSpace(text) == "" {
		b.send(ctx, m.ChannelID, "Usage: !remember <something to remember>")
		return
	}

	user, err := b.store.EnsureUser(ctx, m.Author.ID, m.Author.Username)
	if err == nil {
		err = b.store.Log(ctx, user.ID, store.LogEntry{
			EntryType: store.EntryMemory,
			Content:   text,
			ChannelID: m.ChannelID,
			MessageID: m.ID,
			Visible:   true,
		})
	}
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to save memory", "error", err)
		b.send(ctx, m.ChannelID, "I couldn't hold onto that one. Try again?")
		return
	}

	b.send(ctx, m.ChannelID, fmt.Sprintf("Got it, %s. I'll remember that just for you.", m.Author.Username))
}

func (b *Bot) handleShowMem(ctx context.Context, m *discordgo.MessageCreate) {
	user, err := b.store.EnsureUser(ctx, m.Author.ID, m.Author.Username)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to look up user", "error", err)
		b.send(ctx, m.ChannelID, "I don't have any memories stored for you yet.")
		return
	}

	memories, err := b.store.VisibleMemories(ctx, user.ID, ShowMemLimit)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to fetch memories", "error", err)
		b.send(ctx, m.ChannelID, "I couldn't reach my memories just now.")
		return
	}
	if len(memories) == 0 {
		b.send(ctx, m.ChannelID, "I don't have any visible memories stored for you yet.")
		return
	}

	lines := make([]string, 0, len(memories))
	for i, entry := range memories {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)",
			i+1, entry.Content, entry.CreatedAt.Format(time.RFC3339)))
	}
	b.send(ctx, m.ChannelID, "Here are your recent memories:\n"+strings.Join(lines, "\n"))
}

func (b *Bot) handlePurgeLast(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.send(ctx, m.ChannelID, "Usage: !purge_last <number>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		b.send(ctx, m.ChannelID, "Usage: !purge_last <number>")
		return
	}

	user, err := b.store.EnsureUser(ctx, m.Author.ID, m.Author.Username)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to look up user", "error", err)
		b.send(ctx, m.ChannelID, "No memories found for you.")
		return
	}

	hidden, err := b.store.HideLastMemories(ctx, user.ID, n)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to purge memories", "error", err)
		b.send(ctx, m.ChannelID, "I couldn't purge those just now.")
		return
	}
	if hidden == 0 {
		b.send(ctx, m.ChannelID, "No visible memories to purge.")
		return
	}
	b.send(ctx, m.ChannelID, fmt.Sprintf("Purged last %d memories from your view.", hidden))
}

func (b *Bot) handlePurgeMem(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.send(ctx, m.ChannelID, "Usage: !purge_mem <index>")
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		b.send(ctx, m.ChannelID, "Usage: !purge_mem <index>")
		return
	}

	user, err := b.store.EnsureUser(ctx, m.Author.ID, m.Author.Username)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to look up user", "error", err)
		b.send(ctx, m.ChannelID, "No memories found for you.")
		return
	}

	err = b.store.HideMemoryAt(ctx, user.ID, index)
	if errors.Is(err, store.ErrNoSuchMemory) {
		b.send(ctx, m.ChannelID, "Invalid memory index.")
		return
	}
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to purge memory", "error", err)
		b.send(ctx, m.ChannelID, "I couldn't purge that just now.")
		return
	}
	b.send(ctx, m.ChannelID, fmt.Sprintf("Purged memory #%d from your view.", index))
}

// handleOverlayEcho posts the overlay whose filename matches the keyword.
func (b *Bot) handleOverlayEcho(ctx context.Context, m *discordgo.MessageCreate, keyword, title string) {
	for _, overlay := range b.overlays {
		base := strings.ToLower(filepath.Base(overlay.Path))
		if !strings.Contains(base, keyword) || overlay.Text == "" {
			continue
		}
		b.send(ctx, m.ChannelID, fmt.Sprintf("**%s**\n%s", title, truncate(overlay.Text, OverlayEchoLimit)))
		return
	}
	b.send(ctx, m.ChannelID, fmt.Sprintf("%s not available.", title))
}

func (b *Bot) handleStats(ctx context.Context, m *discordgo.MessageCreate) {
	counts, err := b.store.Counts(ctx)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to fetch stats", "error", err)
		b.send(ctx, m.ChannelID, "Stats are unavailable right now.")
		return
	}
	b.send(ctx, m.ChannelID, fmt.Sprintf("Cassian Stats:\nUsers: %d\nLogs: %d", counts.Users, counts.Logs))
}

func (b *Bot) handleUptime(ctx context.Context, m *discordgo.MessageCreate) {
	secs := int(time.Since(b.startTime).Seconds())
	h := secs / 3600
	m2 := (secs % 3600) / 60
	s := secs % 60
	b.send(ctx, m.ChannelID, fmt.Sprintf("Uptime: %dh %dm %ds", h, m2, s))
}

const menuText = `**Cassian Command Menu**

Utility
!ping          - Check if I'm alive
!whoami        - Show your Discord info

Memory
!remember <t>  - Save a new memory
!showmem       - Show your last 5 memories
!purge_last X  - Hide your last X memories
!purge_mem N   - Hide memory #N

Actions
!hug !headpat !kiss !uppies !snuggle !tuckin

Info
!backstory     - My backstory
!directives    - My inner logic
!memories      - My key memories

System
!menu / !help  - Show this menu
!stats         - User/log stats
!uptime        - Time since launch`
