package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/anthropics/feishu-gpt-bot/chatgpt"
	"github.com/anthropics/feishu-gpt-bot/feishu"
	"github.com/anthropics/feishu-gpt-bot/internal/biz/domain"
	"github.com/anthropics/feishu-gpt-bot/internal/biz/usecase"
	"github.com/anthropics/feishu-gpt-bot/internal/conf"
	"github.com/anthropics/feishu-gpt-bot/internal/data"
	"github.com/anthropics/feishu-gpt-bot/internal/server"
	"github.com/anthropics/feishu-gpt-bot/internal/service"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize clients
	feishuClient := feishu.NewClient(cfg.Feishu.AppID, cfg.Feishu.AppSecret)
	chatgptClient := chatgpt.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.OrgID, cfg.OpenAI.Model, cfg.OpenAI.Temperature)

	// Initialize repository layer
	repos, err := data.NewRepositories(feishuClient, chatgptClient, cfg.Content.TimeURL, cfg.HistoryDBPath)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}
	fmt.Printf("[Bot] History DB: %s\n", cfg.HistoryDBPath)

	// The persona embeds the calendar date once, at startup
	startupDate := time.Now().Format("2006-01-02")
	systemPrompt := cfg.Bot.SystemPrompt(startupDate)

	// Initialize usecase layer
	dailyStore := domain.NewDailyStore()
	signUC := usecase.NewSignUsecase(repos.Content, repos.Clock, dailyStore, cfg.Content.SignDataURL, usecase.SignReplies{
		AlreadyDrawn: cfg.Bot.Replies.AlreadyDrawn,
		NotDrawn:     cfg.Bot.Replies.NotDrawn,
		DrawFailed:   cfg.Bot.Replies.DrawFailed,
	})
	quoteUC := usecase.NewQuoteUsecase(repos.Content, repos.Clock, dailyStore, cfg.Content.QuoteURL, cfg.Bot.Replies.QuoteFallback)
	chatUC := usecase.NewChatUsecase(repos.Completion, systemPrompt, cfg.Bot.Replies.CompletionError)

	// Assemble the skill table
	skills := service.BuildSkills(service.SkillsConfig{
		Aliases:          cfg.Trigger.Aliases,
		EchoEnabled:      cfg.Skills.Echo,
		EchoKeyword:      cfg.Bot.Tasks.Echo,
		EchoReply:        cfg.Bot.Replies.EchoReply,
		DrawEnabled:      cfg.Skills.Draw,
		DrawKeyword:      cfg.Bot.Tasks.Draw,
		InterpretEnabled: cfg.Skills.Interpret,
		InterpretKeyword: cfg.Bot.Tasks.Interpret,
		QuoteEnabled:     cfg.Skills.Quote,
		QuoteKeyword:     cfg.Bot.Tasks.Quote,
	}, signUC, quoteUC)

	classifier := &domain.Classifier{
		SuppressSelfChat:  cfg.SuppressSelfChat,
		SystemAccountName: cfg.Bot.Filters.SystemAccountName,
		NoticePatterns:    cfg.Bot.Filters.NoticePatterns,
	}
	matcher := &domain.TriggerMatcher{
		Keyword: cfg.Trigger.Keyword,
		Aliases: cfg.Trigger.Aliases,
	}

	dispatcher := service.NewDispatcher(classifier, matcher, skills, chatUC, repos.Message, repos.History, cfg.MaxSegmentRunes)

	// Startup self-test: one completion round-trip, failure is logged
	// but does not abort startup
	if answer := chatUC.Ask(context.Background(), "Say Hello World"); answer != cfg.Bot.Replies.CompletionError {
		fmt.Println("[Bot] Completion self-test passed")
	} else {
		fmt.Println("[Bot] Completion self-test failed, continuing anyway")
	}

	fmt.Printf("[Bot] Trigger keyword in private chat: %q\n", cfg.Trigger.Keyword)
	fmt.Printf("[Bot] Group aliases: %v\n", cfg.Trigger.Aliases)

	// Initialize server
	srv := server.NewFeishuServer(feishuClient, dispatcher)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		srv.Stop()
		repos.History.Close()
		os.Exit(0)
	}()

	fmt.Println("Starting Feishu GPT bot...")
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
