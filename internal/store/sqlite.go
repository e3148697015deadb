package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNoSuchMemory is returned when a memory index is out of range
var ErrNoSuchMemory = errors.New("no such memory")

// DB is the SQLite implementation of Store.
type DB struct {
	conn *sqlx.DB
}

// Open connects to the SQLite database at the given path and creates the
// schema if needed.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.setupSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set up schema: %w", err)
	}
	return db, nil
}

func (db *DB) setupSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		discord_id TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS user_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		entry_type TEXT NOT NULL,
		content TEXT NOT NULL,
		channel_id TEXT,
		message_id TEXT,
		visible BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_user_logs_user_type
		ON user_logs(user_id, entry_type, visible, created_at);`
	_, err := db.conn.Exec(schema)
	return err
}

// EnsureUser fetches a user by Discord ID or creates one if not found.
func (db *DB) EnsureUser(ctx context.Context, discordID, username string) (User, error) {
	var user User
	err := db.conn.GetContext(ctx, &user, "SELECT * FROM users WHERE discord_id = ?", discordID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}

	res, err := db.conn.ExecContext(ctx,
		"INSERT INTO users (discord_id, username) VALUES (?, ?)", discordID, username)
	if err != nil {
		return User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}
	return User{ID: id, DiscordID: discordID, Username: username}, nil
}

// Log appends an entry for the user.
func (db *DB) Log(ctx context.Context, userID int64, entry LogEntry) error {
	entry.UserID = userID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.EntryType != EntryMemory {
		entry.Visible = true
	}

	_, err := db.conn.NamedExecContext(ctx, `
		INSERT INTO user_logs (user_id, entry_type, content, channel_id, message_id, visible, created_at)
		VALUES (:user_id, :entry_type, :content, :channel_id, :message_id, :visible, :created_at)`,
		&entry)
	return err
}

// VisibleMemories returns the user's newest visible memories, newest first.
func (db *DB) VisibleMemories(ctx context.Context, userID int64, limit int) ([]LogEntry, error) {
	var entries []LogEntry
	err := db.conn.SelectContext(ctx, &entries, `
		SELECT * FROM user_logs
		WHERE user_id = ? AND entry_type = ? AND visible = 1
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, userID, EntryMemory, limit)
	return entries, err
}

// HideLastMemories hides the user's newest n visible memories.
func (db *DB) HideLastMemories(ctx context.Context, userID int64, n int) (int, error) {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE user_logs SET visible = 0
		WHERE id IN (
			SELECT id FROM user_logs
			WHERE user_id = ? AND entry_type = ? AND visible = 1
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`, userID, EntryMemory, n)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	return int(affected), err
}

// HideMemoryAt hides the visible memory at the given 1-based index.
func (db *DB) HideMemoryAt(ctx context.Context, userID int64, index int) error {
	if index < 1 {
		return ErrNoSuchMemory
	}

	var id int64
	err := db.conn.GetContext(ctx, &id, `
		SELECT id FROM user_logs
		WHERE user_id = ? AND entry_type = ? AND visible = 1
		ORDER BY created_at DESC, id DESC
		LIMIT 1 OFFSET ?`, userID, EntryMemory, index-1)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoSuchMemory
	}
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx, "UPDATE user_logs SET visible = 0 WHERE id = ?", id)
	return err
}

// Counts returns user and log totals.
func (db *DB) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	err := db.conn.GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM user_logs) AS logs`)
	return counts, err
}

// Close releases the underlying database.
func (db *DB) Close() error {
	return db.conn.Close()
}
