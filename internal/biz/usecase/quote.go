package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/domain"
	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

// FeatureQuote is the daily-store feature key for the daily quote
const FeatureQuote = "quote"

// QuoteUsecase implements the daily quote. The first request of a day
// fetches a quote batch and caches the picked one; later requests that
// day replay the cached text. A failed fetch replies the fallback and
// writes no record, so the next request retries instead of replaying a
// cached failure.
type QuoteUsecase struct {
	content  repo.ContentRepo
	clock    repo.ClockRepo
	store    *domain.DailyStore
	quoteURL string
	fallback string
}

// NewQuoteUsecase creates a new quote usecase
func NewQuoteUsecase(
	content repo.ContentRepo,
	clock repo.ClockRepo,
	store *domain.DailyStore,
	quoteURL string,
	fallback string,
) *QuoteUsecase {
	return &QuoteUsecase{
		content:  content,
		clock:    clock,
		store:    store,
		quoteURL: quoteURL,
		fallback: fallback,
	}
}

// Reply returns today's quote for a user, fetching it if needed
func (uc *QuoteUsecase) Reply(ctx context.Context, userID, userName string) string {
	today := uc.clock.Today(ctx)
	if uc.store.IsFresh(userID, FeatureQuote, today) {
		rec := uc.store.Get(userID, FeatureQuote)
		if content, ok := rec.Payload.(string); ok {
			return fmt.Sprintf("@%s %s", userName, content)
		}
	}

	content := uc.fetchQuote(ctx)
	if content == "" {
		fmt.Printf("[Quote] Fetch failed (user=%s)\n", userID)
		return fmt.Sprintf("@%s %s", userName, uc.fallback)
	}

	uc.store.Put(userID, FeatureQuote, today, content)
	return fmt.Sprintf("@%s %s", userName, content)
}

// fetchQuote fetches a quote batch and picks one at random
func (uc *QuoteUsecase) fetchQuote(ctx context.Context) string {
	body := uc.content.FetchJSON(ctx, uc.quoteURL)
	if body == nil {
		return ""
	}

	var result struct {
		Code int `json:"code"`
		Data []struct {
			Content string `json:"content"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("[Quote] Failed to parse response: %v\n", err)
		return ""
	}
	if result.Code != 1 || len(result.Data) == 0 {
		return ""
	}

	return result.Data[rand.IntN(len(result.Data))].Content
}
