package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

const testErrorReply = "🤖️：ChatGPT摆烂了，请稍后再试～"

func TestChatUsecase_Ask(t *testing.T) {
	completion := &mockCompletionRepo{answer: "Go is a programming language."}
	uc := NewChatUsecase(completion, "persona", testErrorReply)

	answer := uc.Ask(context.Background(), "what is Go")

	if answer != "Go is a programming language." {
		t.Errorf("Answer mismatch: %q", answer)
	}
	if completion.lastSystem != "persona" || completion.lastUser != "what is Go" {
		t.Errorf("Prompt mismatch: system=%q user=%q", completion.lastSystem, completion.lastUser)
	}
}

func TestChatUsecase_ProviderFailureFallsBack(t *testing.T) {
	completion := &mockCompletionRepo{err: &repo.ProviderError{StatusCode: 429, Message: "rate limited"}}
	uc := NewChatUsecase(completion, "persona", testErrorReply)

	answer := uc.Ask(context.Background(), "anything")

	if answer != testErrorReply {
		t.Errorf("Expected fixed apology, got %q", answer)
	}
}

func TestChatUsecase_Reply_Private(t *testing.T) {
	completion := &mockCompletionRepo{answer: "the answer"}
	uc := NewChatUsecase(completion, "persona", testErrorReply)

	reply := uc.Reply(context.Background(), "the question", "Alice", true)

	want := "the question\n----------\nthe answer"
	if reply != want {
		t.Errorf("Reply mismatch: got %q, want %q", reply, want)
	}
}

func TestChatUsecase_Reply_GroupMentionsSender(t *testing.T) {
	completion := &mockCompletionRepo{answer: "the answer"}
	uc := NewChatUsecase(completion, "persona", testErrorReply)

	reply := uc.Reply(context.Background(), "the question", "Alice", false)

	if !strings.HasPrefix(reply, "@Alice\n") {
		t.Errorf("Expected @sender prefix in group reply, got %q", reply)
	}
	if !strings.Contains(reply, "the question\n----------\nthe answer") {
		t.Errorf("Expected question and answer, got %q", reply)
	}
}
