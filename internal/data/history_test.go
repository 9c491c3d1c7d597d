package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

func newTestHistory(t *testing.T) repo.HistoryRepo {
	t.Helper()
	h, err := NewHistoryRepo(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewHistoryRepo: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryRepo_RecordAndRecent(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	entries := []*repo.HistoryEntry{
		{UserID: "u1", Skill: "draw", ChunkSent: 1, CreatedAt: time.Unix(1000, 0)},
		{UserID: "u2", Skill: "chat", ChunkSent: 3, CreatedAt: time.Unix(2000, 0)},
	}
	for _, e := range entries {
		if err := h.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
		if e.ID == "" {
			t.Error("Expected an ID to be assigned")
		}
	}

	recent, err := h.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(recent))
	}
	// Newest first
	if recent[0].UserID != "u2" || recent[0].Skill != "chat" || recent[0].ChunkSent != 3 {
		t.Errorf("Newest entry mismatch: %+v", recent[0])
	}
	if recent[1].UserID != "u1" {
		t.Errorf("Oldest entry mismatch: %+v", recent[1])
	}
}

func TestHistoryRepo_RecentLimit(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := &repo.HistoryEntry{UserID: "u1", Skill: "chat", CreatedAt: time.Unix(int64(1000+i), 0)}
		if err := h.Record(ctx, entry); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recent, err := h.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 entries, got %d", len(recent))
	}
}
