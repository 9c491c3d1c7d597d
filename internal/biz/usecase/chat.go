package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

// ChatUsecase is the default completion skill: it forwards the cleaned
// user text to the completion provider under a fixed persona prompt.
// Provider failures are recovered locally with a fixed apology reply and
// never propagated to the transport.
type ChatUsecase struct {
	completion   repo.CompletionRepo
	systemPrompt string
	errorReply   string
}

// NewChatUsecase creates a new chat usecase. systemPrompt is the fixed
// persona, already carrying the startup calendar date.
func NewChatUsecase(completion repo.CompletionRepo, systemPrompt, errorReply string) *ChatUsecase {
	return &ChatUsecase{
		completion:   completion,
		systemPrompt: systemPrompt,
		errorReply:   errorReply,
	}
}

// Ask sends the question to the provider and returns the answer, or the
// apology reply on failure
func (uc *ChatUsecase) Ask(ctx context.Context, question string) string {
	answer, err := uc.completion.Complete(ctx, uc.systemPrompt, question)
	if err != nil {
		var perr *repo.ProviderError
		if errors.As(err, &perr) && perr.StatusCode != 0 {
			fmt.Printf("[Chat] Completion failed: status=%d message=%s\n", perr.StatusCode, perr.Message)
		} else {
			fmt.Printf("[Chat] Completion failed: %v\n", err)
		}
		return uc.errorReply
	}
	return answer
}

// Reply builds the whole reply: the original question, a separator line
// and the answer. Group replies are additionally prefixed with an
// @sender mention line.
func (uc *ChatUsecase) Reply(ctx context.Context, question, senderName string, isPrivate bool) string {
	answer := uc.Ask(ctx, question)
	whole := fmt.Sprintf("%s\n----------\n%s", question, answer)
	if !isPrivate {
		whole = fmt.Sprintf("@%s\n%s", senderName, whole)
	}
	return whole
}
