package chatgpt

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = openai.GPT3Dot5Turbo

// Client is the completion client over the OpenAI-compatible API
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewClient creates a new completion client. orgID is optional.
func NewClient(apiKey, orgID, model string, temperature float32) *Client {
	if model == "" {
		model = defaultModel
	}

	config := openai.DefaultConfig(apiKey)
	if orgID != "" {
		config.OrgID = orgID
	}

	return &Client{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Complete sends a system+user prompt pair and returns the reply text
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
