package data

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/anthropics/feishu-gpt-bot/chatgpt"
	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

// chatgptRepo implements the completion repository
type chatgptRepo struct {
	client *chatgpt.Client
}

// NewChatGPTRepo creates a new completion repository
func NewChatGPTRepo(client *chatgpt.Client) repo.CompletionRepo {
	return &chatgptRepo{client: client}
}

// Complete forwards the prompt pair to the API and maps upstream
// failures to *repo.ProviderError with the HTTP status when known
func (r *chatgptRepo) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	answer, err := r.client.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &repo.ProviderError{
				StatusCode: apiErr.HTTPStatusCode,
				Message:    apiErr.Message,
			}
		}
		return "", err
	}
	return answer, nil
}
