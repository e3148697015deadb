// Package store persists the conversation log: prompts, replies, and the
// per-user memories saved with the remember command.
package store

import (
	"context"
	"time"
)

// Entry types recorded in the log
const (
	EntryPrompt   = "prompt"
	EntryResponse = "response"
	EntryMemory   = "memory"
)

// User is a Discord user known to the bot.
type User struct {
	ID        int64  `db:"id"`
	DiscordID string `db:"discord_id"`
	Username  string `db:"username"`
}

// LogEntry is one recorded prompt, response, or memory.
type LogEntry struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	EntryType string    `db:"entry_type"`
	Content   string    `db:"content"`
	ChannelID string    `db:"channel_id"`
	MessageID string    `db:"message_id"`
	Visible   bool      `db:"visible"`
	CreatedAt time.Time `db:"created_at"`
}

// Counts summarizes the log for the stats command.
type Counts struct {
	Users int64 `db:"users"`
	Logs  int64 `db:"logs"`
}

// Store defines the conversation log operations. Failures while handling a
// message are logged and swallowed by callers; only startup failures are
// fatal.
type Store interface {
	// EnsureUser returns the stored user for a Discord ID, creating it
	// on first sight
	EnsureUser(ctx context.Context, discordID, username string) (User, error)

	// Log appends an entry for the user
	Log(ctx context.Context, userID int64, entry LogEntry) error

	// VisibleMemories returns the user's newest visible memories,
	// newest first
	VisibleMemories(ctx context.Context, userID int64, limit int) ([]LogEntry, error)

	// HideLastMemories hides the user's newest n visible memories and
	// returns how many were hidden
	HideLastMemories(ctx context.Context, userID int64, n int) (int, error)

	// HideMemoryAt hides the user's visible memory at the given
	// 1-based index, newest first
	HideMemoryAt(ctx context.Context, userID int64, index int) error

	// Counts returns user and log totals
	Counts(ctx context.Context) (Counts, error)

	// Close releases the underlying database
	Close() error
}
