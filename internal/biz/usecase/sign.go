package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/domain"
	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

// FeatureDraw is the daily-store feature key for the sign draw
const FeatureDraw = "draw"

// SignReplies are the user-visible strings of the draw/interpret skills
type SignReplies struct {
	AlreadyDrawn string // draw refused, already drawn today
	NotDrawn     string // interpret refused, nothing drawn today
	DrawFailed   string // dataset could not be loaded
}

// SignUsecase implements the daily sign draw and its interpretation.
// The dataset is fetched once and cached for the process lifetime; a
// failed fetch leaves the cache empty so the next use retries.
type SignUsecase struct {
	content repo.ContentRepo
	clock   repo.ClockRepo
	store   *domain.DailyStore
	dataURL string
	replies SignReplies

	// guards the lazy dataset cache against concurrent first loads
	mu      sync.Mutex
	dataset []domain.SignEntry
}

// NewSignUsecase creates a new sign usecase
func NewSignUsecase(
	content repo.ContentRepo,
	clock repo.ClockRepo,
	store *domain.DailyStore,
	dataURL string,
	replies SignReplies,
) *SignUsecase {
	return &SignUsecase{
		content: content,
		clock:   clock,
		store:   store,
		dataURL: dataURL,
		replies: replies,
	}
}

// Draw performs the daily draw for a user. At most one draw per user per
// resolved calendar date; an unresolved date disables the gate and the
// draw proceeds.
func (uc *SignUsecase) Draw(ctx context.Context, userID, userName string) string {
	today := uc.clock.Today(ctx)
	if uc.store.IsFresh(userID, FeatureDraw, today) {
		return fmt.Sprintf("@%s %s", userName, uc.replies.AlreadyDrawn)
	}

	dataset := uc.loadDataset(ctx)
	if len(dataset) == 0 {
		// No record written: the user keeps today's draw
		fmt.Printf("[Sign] Dataset unavailable, draw aborted (user=%s)\n", userID)
		return fmt.Sprintf("@%s %s", userName, uc.replies.DrawFailed)
	}

	index := rand.IntN(len(dataset))
	uc.store.Put(userID, FeatureDraw, today, index)

	entry := dataset[index]
	return fmt.Sprintf("@%s \r\n%s\r\n%s", userName, entry.Name, entry.Value)
}

// Interpret reveals the explanation of the sign drawn today. Requires a
// fresh draw; otherwise replies the not-drawn message without touching
// the dataset.
func (uc *SignUsecase) Interpret(ctx context.Context, userID, userName string) string {
	today := uc.clock.Today(ctx)
	if !uc.store.IsFresh(userID, FeatureDraw, today) {
		return fmt.Sprintf("@%s %s", userName, uc.replies.NotDrawn)
	}

	rec := uc.store.Get(userID, FeatureDraw)
	index, ok := rec.Payload.(int)

	dataset := uc.loadDataset(ctx)
	if !ok || index < 0 || index >= len(dataset) {
		fmt.Printf("[Sign] Stored index %v out of range (user=%s)\n", rec.Payload, userID)
		return fmt.Sprintf("@%s %s", userName, uc.replies.DrawFailed)
	}

	entry := dataset[index]
	return fmt.Sprintf("@%s \r\n%s\r\n%s\r\n----------\r\n%s",
		userName, entry.Name, entry.Value, entry.Explain)
}

// loadDataset returns the cached dataset, fetching it on first use
func (uc *SignUsecase) loadDataset(ctx context.Context) []domain.SignEntry {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if len(uc.dataset) > 0 {
		return uc.dataset
	}

	body := uc.content.FetchText(ctx, uc.dataURL)
	if body == "" {
		return nil
	}

	var entries []domain.SignEntry
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		fmt.Printf("[Sign] Failed to parse dataset: %v\n", err)
		return nil
	}

	uc.dataset = entries
	fmt.Printf("[Sign] Dataset loaded: %d entries\n", len(entries))
	return uc.dataset
}
