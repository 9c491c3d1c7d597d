package data

import (
	"github.com/anthropics/feishu-gpt-bot/chatgpt"
	"github.com/anthropics/feishu-gpt-bot/feishu"
	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

// Repositories contains all repositories
type Repositories struct {
	Message    repo.MessageRepo
	Completion repo.CompletionRepo
	Content    repo.ContentRepo
	Clock      repo.ClockRepo
	History    repo.HistoryRepo
}

// NewRepositories creates all repositories
func NewRepositories(
	feishuClient *feishu.Client,
	chatgptClient *chatgpt.Client,
	timeURL string,
	historyDBPath string,
) (*Repositories, error) {
	historyRepo, err := NewHistoryRepo(historyDBPath)
	if err != nil {
		return nil, err
	}

	content := NewContentRepo()

	return &Repositories{
		Message:    NewFeishuRepo(feishuClient),
		Completion: NewChatGPTRepo(chatgptClient),
		Content:    content,
		Clock:      NewClockRepo(content, timeURL),
		History:    historyRepo,
	}, nil
}
