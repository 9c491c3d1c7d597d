package data

import (
	"context"

	"github.com/anthropics/feishu-gpt-bot/feishu"
	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

// feishuRepo implements the outbound message repository
type feishuRepo struct {
	client *feishu.Client
}

// NewFeishuRepo creates a new Feishu repository
func NewFeishuRepo(client *feishu.Client) repo.MessageRepo {
	return &feishuRepo{client: client}
}

// SendText sends a text message
func (r *feishuRepo) SendText(ctx context.Context, chatID, text string) error {
	return r.client.SendText(chatID, text)
}
