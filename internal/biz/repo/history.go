package repo

import (
	"context"
	"time"
)

// HistoryEntry is one dispatched event for the diagnostic log
type HistoryEntry struct {
	ID        string
	UserID    string
	Skill     string
	ChunkSent int
	CreatedAt time.Time
}

// HistoryRepo persists the dispatch history log. Purely diagnostic:
// writes are best-effort and nothing on the dispatch path reads it.
type HistoryRepo interface {
	// Record appends one handled event
	Record(ctx context.Context, entry *HistoryEntry) error

	// Recent returns the latest n entries, newest first
	Recent(ctx context.Context, n int) ([]*HistoryEntry, error)

	// Close releases the underlying store
	Close() error
}
