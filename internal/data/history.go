package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

// historyRepo persists the dispatch history log in SQLite
type historyRepo struct {
	db *sql.DB
}

// NewHistoryRepo opens (creating if needed) the history database
func NewHistoryRepo(dbPath string) (repo.HistoryRepo, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS dispatch_history (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			skill TEXT NOT NULL,
			chunks_sent INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_history_created_at ON dispatch_history(created_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &historyRepo{db: db}, nil
}

// Record appends one handled event
func (r *historyRepo) Record(ctx context.Context, entry *repo.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dispatch_history (id, user_id, skill, chunks_sent, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.UserID, entry.Skill, entry.ChunkSent, entry.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

// Recent returns the latest n entries, newest first
func (r *historyRepo) Recent(ctx context.Context, n int) ([]*repo.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, skill, chunks_sent, created_at
		FROM dispatch_history
		ORDER BY created_at DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*repo.HistoryEntry
	for rows.Next() {
		var entry repo.HistoryEntry
		var createdAt int64
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Skill, &entry.ChunkSent, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		entry.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Close closes the database connection
func (r *historyRepo) Close() error {
	return r.db.Close()
}
