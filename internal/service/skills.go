package service

import (
	"context"
	"strings"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/domain"
	"github.com/anthropics/feishu-gpt-bot/internal/biz/usecase"
)

// SkillsConfig carries the task keywords, canned replies and per-skill
// enable flags
type SkillsConfig struct {
	Aliases []string

	EchoEnabled bool
	EchoKeyword string
	EchoReply   string

	DrawEnabled bool
	DrawKeyword string

	InterpretEnabled bool
	InterpretKeyword string

	QuoteEnabled bool
	QuoteKeyword string
}

// BuildSkills assembles the priority table. Order matters: the first
// matching skill consumes the event.
func BuildSkills(cfg SkillsConfig, signUC *usecase.SignUsecase, quoteUC *usecase.QuoteUsecase) []Skill {
	var skills []Skill

	if cfg.EchoEnabled {
		skills = append(skills, Skill{
			Name: "echo",
			Match: func(msg *domain.IncomingMessage) bool {
				return strings.Contains(msg.Content, cfg.EchoKeyword)
			},
			Handle: func(ctx context.Context, msg *domain.IncomingMessage) string {
				return cfg.EchoReply
			},
		})
	}

	if cfg.DrawEnabled {
		skills = append(skills, Skill{
			Name: "draw",
			Match: func(msg *domain.IncomingMessage) bool {
				return domain.MatchesTask(msg.Content, cfg.Aliases, cfg.DrawKeyword)
			},
			Handle: func(ctx context.Context, msg *domain.IncomingMessage) string {
				return signUC.Draw(ctx, msg.SenderID, msg.SenderName)
			},
		})
	}

	if cfg.InterpretEnabled {
		skills = append(skills, Skill{
			Name: "interpret",
			Match: func(msg *domain.IncomingMessage) bool {
				return domain.MatchesTask(msg.Content, cfg.Aliases, cfg.InterpretKeyword)
			},
			Handle: func(ctx context.Context, msg *domain.IncomingMessage) string {
				return signUC.Interpret(ctx, msg.SenderID, msg.SenderName)
			},
		})
	}

	if cfg.QuoteEnabled {
		skills = append(skills, Skill{
			Name: "quote",
			Match: func(msg *domain.IncomingMessage) bool {
				return domain.MatchesTask(msg.Content, cfg.Aliases, cfg.QuoteKeyword)
			},
			Handle: func(ctx context.Context, msg *domain.IncomingMessage) string {
				return quoteUC.Reply(ctx, msg.SenderID, msg.SenderName)
			},
		})
	}

	return skills
}
