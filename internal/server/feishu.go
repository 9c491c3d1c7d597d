package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/anthropics/feishu-gpt-bot/feishu"
	"github.com/anthropics/feishu-gpt-bot/internal/biz/domain"
	"github.com/anthropics/feishu-gpt-bot/internal/service"
)

// FeishuServer binds the Feishu transport to the dispatcher
type FeishuServer struct {
	feishuClient *feishu.Client
	dispatcher   *service.Dispatcher

	// Sender name cache: chatID -> memberID -> name
	membersMu sync.Mutex
	members   map[string]map[string]string
}

// NewFeishuServer creates a new Feishu server
func NewFeishuServer(feishuClient *feishu.Client, dispatcher *service.Dispatcher) *FeishuServer {
	return &FeishuServer{
		feishuClient: feishuClient,
		dispatcher:   dispatcher,
		members:      make(map[string]map[string]string),
	}
}

// Start starts the server (blocking)
func (s *FeishuServer) Start() error {
	s.feishuClient.OnMessage(s.handleMessage)
	return s.feishuClient.Start()
}

// Stop stops the server
func (s *FeishuServer) Stop() {
	s.feishuClient.Stop()
}

// handleMessage converts a transport message to the dispatcher's view
// and hands it over
func (s *FeishuServer) handleMessage(msg *feishu.Message) {
	chatType := domain.ChatTypeP2P
	if msg.ChatType == "group" {
		chatType = domain.ChatTypeGroup
	}

	incoming := &domain.IncomingMessage{
		Content:  msg.Content,
		MsgType:  msgType(msg.MsgType),
		ChatID:   msg.ChatID,
		ChatType: chatType,
	}
	if msg.Sender != nil {
		incoming.SenderID = msg.Sender.SenderID
		incoming.SenderName = s.senderName(msg.ChatID, msg.Sender.SenderID)
		incoming.IsSelf = msg.Sender.IsSelf()
	}

	if err := s.dispatcher.HandleMessage(context.Background(), incoming); err != nil {
		fmt.Printf("[Server] Handle message error: %v\n", err)
	}
}

// senderName resolves a sender's display name via the chat member list,
// cached per chat
func (s *FeishuServer) senderName(chatID, senderID string) string {
	s.membersMu.Lock()
	defer s.membersMu.Unlock()

	if names, ok := s.members[chatID]; ok {
		if name, ok := names[senderID]; ok {
			return name
		}
	}

	members, err := s.feishuClient.GetChatMembers(chatID)
	if err != nil {
		fmt.Printf("[Server] Failed to get chat members for %s: %v\n", chatID, err)
		return ""
	}

	names := make(map[string]string)
	for _, m := range members {
		names[m.MemberID] = m.Name
	}
	s.members[chatID] = names

	return names[senderID]
}

func msgType(t string) domain.MsgType {
	switch t {
	case "text":
		return domain.MsgTypeText
	case "image":
		return domain.MsgTypeImage
	case "audio":
		return domain.MsgTypeAudio
	case "post":
		return domain.MsgTypePost
	default:
		return domain.MsgTypeOther
	}
}
