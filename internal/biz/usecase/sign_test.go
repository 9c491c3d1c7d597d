package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/domain"
)

const signDataJSON = `[{"name":"上上签","value":"万事大吉","explain":"诸事顺遂，不必多虑"}]`

var testReplies = SignReplies{
	AlreadyDrawn: "你今天已经抽过签了",
	NotDrawn:     "你今天还没有抽签呢",
	DrawFailed:   "签筒倒了，请稍后再试",
}

func newSignFixture(today string) (*SignUsecase, *mockContentRepo, *domain.DailyStore) {
	content := &mockContentRepo{textResponse: signDataJSON}
	store := domain.NewDailyStore()
	uc := NewSignUsecase(content, &mockClockRepo{today: today}, store, "http://example.com/signs.json", testReplies)
	return uc, content, store
}

func TestSignUsecase_Draw(t *testing.T) {
	uc, content, store := newSignFixture("2024-05-01")

	reply := uc.Draw(context.Background(), "u1", "Alice")

	if !strings.HasPrefix(reply, "@Alice") {
		t.Errorf("Expected @sender prefix, got %q", reply)
	}
	if !strings.Contains(reply, "上上签") || !strings.Contains(reply, "万事大吉") {
		t.Errorf("Expected name and value in reply, got %q", reply)
	}
	if strings.Contains(reply, "诸事顺遂") {
		t.Errorf("Explanation must be withheld on draw, got %q", reply)
	}
	if content.textCalls != 1 {
		t.Errorf("Expected one dataset fetch, got %d", content.textCalls)
	}
	if !store.IsFresh("u1", FeatureDraw, "2024-05-01") {
		t.Error("Expected a fresh draw record")
	}
}

func TestSignUsecase_DrawTwiceSameDay(t *testing.T) {
	uc, content, store := newSignFixture("2024-05-01")

	uc.Draw(context.Background(), "u1", "Alice")
	storedIndex := store.Get("u1", FeatureDraw).Payload

	reply := uc.Draw(context.Background(), "u1", "Alice")

	if !strings.Contains(reply, testReplies.AlreadyDrawn) {
		t.Errorf("Expected already-drawn reply, got %q", reply)
	}
	if store.Get("u1", FeatureDraw).Payload != storedIndex {
		t.Error("Second draw must not mutate the stored index")
	}
	if content.textCalls != 1 {
		t.Errorf("Expected the dataset cache to be reused, got %d fetches", content.textCalls)
	}
}

func TestSignUsecase_DrawNextDayRedraws(t *testing.T) {
	uc, _, store := newSignFixture("2024-05-01")

	uc.Draw(context.Background(), "u1", "Alice")

	// Advance the external day
	uc.clock = &mockClockRepo{today: "2024-05-02"}
	reply := uc.Draw(context.Background(), "u1", "Alice")

	if strings.Contains(reply, testReplies.AlreadyDrawn) {
		t.Errorf("Expected a new draw on the next day, got %q", reply)
	}
	if rec := store.Get("u1", FeatureDraw); rec.Date != "2024-05-02" {
		t.Errorf("Expected record overwritten with new date, got %+v", rec)
	}
}

func TestSignUsecase_DrawDatasetFetchFailureRetries(t *testing.T) {
	uc, content, store := newSignFixture("2024-05-01")
	content.textResponse = ""

	reply := uc.Draw(context.Background(), "u1", "Alice")

	if !strings.Contains(reply, testReplies.DrawFailed) {
		t.Errorf("Expected draw-failed reply, got %q", reply)
	}
	if store.Get("u1", FeatureDraw) != nil {
		t.Error("A failed draw must not write a record")
	}

	// The cache stayed empty: the next draw retries the fetch
	content.textResponse = signDataJSON
	uc.Draw(context.Background(), "u1", "Alice")
	if content.textCalls != 2 {
		t.Errorf("Expected a retry fetch, got %d calls", content.textCalls)
	}
	if !store.IsFresh("u1", FeatureDraw, "2024-05-01") {
		t.Error("Expected the retried draw to succeed")
	}
}

func TestSignUsecase_DrawUnresolvedDateProceeds(t *testing.T) {
	uc, _, _ := newSignFixture("")

	reply := uc.Draw(context.Background(), "u1", "Alice")

	if strings.Contains(reply, testReplies.AlreadyDrawn) || strings.Contains(reply, testReplies.DrawFailed) {
		t.Errorf("Expected the draw to proceed without gating, got %q", reply)
	}
	if !strings.Contains(reply, "上上签") {
		t.Errorf("Expected a drawn sign, got %q", reply)
	}
}

func TestSignUsecase_InterpretBeforeDraw(t *testing.T) {
	uc, content, _ := newSignFixture("2024-05-01")

	reply := uc.Interpret(context.Background(), "u1", "Alice")

	if !strings.Contains(reply, testReplies.NotDrawn) {
		t.Errorf("Expected not-drawn reply, got %q", reply)
	}
	if content.textCalls != 0 {
		t.Errorf("Interpret before draw must not fetch the dataset, got %d calls", content.textCalls)
	}
}

func TestSignUsecase_InterpretAfterDraw(t *testing.T) {
	uc, _, _ := newSignFixture("2024-05-01")

	uc.Draw(context.Background(), "u1", "Alice")
	reply := uc.Interpret(context.Background(), "u1", "Alice")

	if !strings.Contains(reply, "上上签") || !strings.Contains(reply, "万事大吉") {
		t.Errorf("Expected name and value, got %q", reply)
	}
	if !strings.Contains(reply, "诸事顺遂") {
		t.Errorf("Expected the explanation, got %q", reply)
	}
}

func TestSignUsecase_InterpretStaleDraw(t *testing.T) {
	uc, _, _ := newSignFixture("2024-05-01")

	uc.Draw(context.Background(), "u1", "Alice")

	uc.clock = &mockClockRepo{today: "2024-05-02"}
	reply := uc.Interpret(context.Background(), "u1", "Alice")

	if !strings.Contains(reply, testReplies.NotDrawn) {
		t.Errorf("Expected not-drawn reply for stale draw, got %q", reply)
	}
}
