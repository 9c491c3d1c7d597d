package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/domain"
	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

// Skill is one entry of the priority table: a trigger predicate plus a
// handler producing the full reply text. Predicates are independent of
// the generic trigger keyword.
type Skill struct {
	Name   string
	Match  func(msg *domain.IncomingMessage) bool
	Handle func(ctx context.Context, msg *domain.IncomingMessage) string
}

// Dispatcher routes incoming messages to at most one skill and sends
// the chunked reply. Handling is serialized: one event runs to
// completion (including all external calls) before the next is
// accepted, which keeps the daily store and the lazy caches safe
// without their own locks.
type Dispatcher struct {
	mu sync.Mutex

	classifier *domain.Classifier
	matcher    *domain.TriggerMatcher
	skills     []Skill
	chat       ChatSkill
	messages   repo.MessageRepo
	history    repo.HistoryRepo
	maxSegment int
}

// ChatSkill is the default, lowest-priority handler behind the generic
// trigger gate
type ChatSkill interface {
	Reply(ctx context.Context, question, senderName string, isPrivate bool) string
}

// NewDispatcher creates a dispatcher. history may be nil to disable the
// dispatch log.
func NewDispatcher(
	classifier *domain.Classifier,
	matcher *domain.TriggerMatcher,
	skills []Skill,
	chat ChatSkill,
	messages repo.MessageRepo,
	history repo.HistoryRepo,
	maxSegment int,
) *Dispatcher {
	return &Dispatcher{
		classifier: classifier,
		matcher:    matcher,
		skills:     skills,
		chat:       chat,
		messages:   messages,
		history:    history,
		maxSegment: maxSegment,
	}
}

// HandleMessage processes one chat event. Classification skips and
// trigger misses are silent; the only error returned is a failed
// segment send, which the caller should know about since a
// half-delivered reply is user-visible.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg *domain.IncomingMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.classifier.IsNonsense(msg) {
		return nil
	}

	// Customized-task pass: first matching skill consumes the event
	for _, s := range d.skills {
		if s.Match(msg) {
			fmt.Printf("[Dispatcher] Skill triggered: %s (user=%s)\n", s.Name, msg.SenderID)
			return d.reply(ctx, msg, s.Name, s.Handle(ctx, msg))
		}
	}

	// Generic trigger gate, then the default completion skill
	triggered, cleaned := d.matcher.Match(msg.Content, msg.IsPrivate())
	if !triggered {
		return nil
	}
	fmt.Printf("[Dispatcher] Chat triggered (user=%s): %s\n", msg.SenderID, truncate(cleaned, 50))
	return d.reply(ctx, msg, "chat", d.chat.Reply(ctx, cleaned, msg.SenderName, msg.IsPrivate()))
}

// reply chunks the text and sends every segment in order. All segments
// are attempted even after a failure; the first error is reported.
func (d *Dispatcher) reply(ctx context.Context, msg *domain.IncomingMessage, skill, text string) error {
	segments := domain.ChunkReply(text, d.maxSegment)

	var firstErr error
	sent := 0
	for i, seg := range segments {
		if err := d.messages.SendText(ctx, msg.ChatID, seg); err != nil {
			fmt.Printf("[Dispatcher] Failed to send segment %d/%d (skill=%s user=%s): %v\n",
				i+1, len(segments), skill, msg.SenderID, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("send segment %d/%d: %w", i+1, len(segments), err)
			}
			continue
		}
		sent++
	}

	d.record(ctx, msg, skill, sent)
	return firstErr
}

// record appends to the dispatch history log, best-effort
func (d *Dispatcher) record(ctx context.Context, msg *domain.IncomingMessage, skill string, sent int) {
	if d.history == nil {
		return
	}
	entry := &repo.HistoryEntry{
		UserID:    msg.SenderID,
		Skill:     skill,
		ChunkSent: sent,
		CreatedAt: time.Now(),
	}
	if err := d.history.Record(ctx, entry); err != nil {
		fmt.Printf("[Dispatcher] Failed to record history (skill=%s user=%s): %v\n", skill, msg.SenderID, err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
