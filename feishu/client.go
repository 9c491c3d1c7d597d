package feishu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcore "github.com/larksuite/oapi-sdk-go/v3/core"
	"github.com/larksuite/oapi-sdk-go/v3/event/dispatcher"
	larkim "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	larkws "github.com/larksuite/oapi-sdk-go/v3/ws"
)

// Message represents a received Feishu message
type Message struct {
	ChatID   string
	MsgID    string
	MsgType  string // text, image, audio, post, ...
	ChatType string // p2p (private), group
	Content  string // text content with mention placeholders resolved
	Sender   *Sender
}

// Sender represents the message sender
type Sender struct {
	SenderID   string
	SenderType string // user, app
}

// IsSelf reports whether the message was sent by the bot account itself
func (s *Sender) IsSelf() bool {
	return s != nil && s.SenderType == "app"
}

// ChatMember represents a member in a chat
type ChatMember struct {
	MemberID string
	Name     string
}

// MessageHandler is the callback for received messages
type MessageHandler func(msg *Message)

// Client is the Feishu transport client. It listens over WebSocket and
// sends text messages through the IM API.
type Client struct {
	appID     string
	appSecret string
	larkCli   *lark.Client
	wsCli     *larkws.Client
	onMessage MessageHandler
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewClient creates a new Feishu client
func NewClient(appID, appSecret string) *Client {
	return &Client{
		appID:     appID,
		appSecret: appSecret,
	}
}

// OnMessage sets the message handler
func (c *Client) OnMessage(handler MessageHandler) {
	c.onMessage = handler
}

// Start connects to Feishu via WebSocket and blocks listening for events
func (c *Client) Start() error {
	c.ctx, c.cancel = context.WithCancel(context.Background())

	c.larkCli = lark.NewClient(c.appID, c.appSecret)

	// Handler must return quickly so the SDK can ACK, otherwise Feishu
	// retries delivery
	eventHandler := dispatcher.NewEventDispatcher("", "").
		OnP2MessageReceiveV1(func(ctx context.Context, event *larkim.P2MessageReceiveV1) error {
			go c.handleMessage(event)
			return nil
		})

	c.wsCli = larkws.NewClient(c.appID, c.appSecret,
		larkws.WithEventHandler(eventHandler),
		larkws.WithLogLevel(larkcore.LogLevelInfo),
	)

	fmt.Println("[Feishu] Starting WebSocket connection...")
	return c.wsCli.Start(c.ctx)
}

// Stop disconnects from Feishu
func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

// handleMessage converts a raw event into a Message and hands it to the
// callback. Non-text payloads are passed through with an empty content
// so the classifier can drop them itself.
func (c *Client) handleMessage(event *larkim.P2MessageReceiveV1) {
	rawMsg := event.Event.Message
	if rawMsg == nil {
		return
	}

	msg := &Message{
		ChatID:  *rawMsg.ChatId,
		MsgID:   *rawMsg.MessageId,
		MsgType: *rawMsg.MessageType,
	}
	if rawMsg.ChatType != nil {
		msg.ChatType = *rawMsg.ChatType
	}

	if event.Event.Sender != nil {
		msg.Sender = &Sender{}
		if event.Event.Sender.SenderId != nil && event.Event.Sender.SenderId.OpenId != nil {
			msg.Sender.SenderID = *event.Event.Sender.SenderId.OpenId
		}
		if event.Event.Sender.SenderType != nil {
			msg.Sender.SenderType = *event.Event.Sender.SenderType
		}
	}

	// Map from mention key (@_user_1) to display name, used to restore
	// readable mentions in the text
	mentionMap := make(map[string]string)
	for _, mention := range rawMsg.Mentions {
		if mention.Key != nil && mention.Name != nil {
			mentionMap[*mention.Key] = *mention.Name
		}
	}

	if msg.MsgType == "text" {
		msg.Content = parseTextContent(*rawMsg.Content, mentionMap)
	}

	fmt.Printf("[Feishu] Received %s from %s chat %s: %s\n",
		msg.MsgType, msg.ChatType, msg.ChatID, truncate(msg.Content, 50))

	if c.onMessage != nil {
		c.onMessage(msg)
	}
}

// parseTextContent extracts the text field and replaces mention
// placeholders (@_user_1) with @Name
func parseTextContent(content string, mentionMap map[string]string) string {
	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return ""
	}
	return replaceMentions(parsed.Text, mentionMap)
}

func replaceMentions(text string, mentionMap map[string]string) string {
	for key, name := range mentionMap {
		text = strings.ReplaceAll(text, key, "@"+name)
	}
	return text
}

// SendText sends a text message to a chat
func (c *Client) SendText(chatID, text string) error {
	content := map[string]string{"text": text}
	contentJSON, _ := json.Marshal(content)

	req := larkim.NewCreateMessageReqBuilder().
		ReceiveIdType(larkim.ReceiveIdTypeChatId).
		Body(larkim.NewCreateMessageReqBodyBuilder().
			ReceiveId(chatID).
			MsgType(larkim.MsgTypeText).
			Content(string(contentJSON)).
			Build()).
		Build()

	resp, err := c.larkCli.Im.Message.Create(context.Background(), req)
	if err != nil {
		return fmt.Errorf("send message failed: %w", err)
	}
	if !resp.Success() {
		return fmt.Errorf("send message error: %s", resp.Msg)
	}

	return nil
}

// GetChatMembers retrieves members of a chat, for resolving sender
// display names
func (c *Client) GetChatMembers(chatID string) ([]*ChatMember, error) {
	var members []*ChatMember
	pageToken := ""

	for {
		reqBuilder := larkim.NewGetChatMembersReqBuilder().
			ChatId(chatID).
			MemberIdType("open_id").
			PageSize(100)
		if pageToken != "" {
			reqBuilder = reqBuilder.PageToken(pageToken)
		}

		resp, err := c.larkCli.Im.ChatMembers.Get(context.Background(), reqBuilder.Build())
		if err != nil {
			return nil, fmt.Errorf("get chat members failed: %w", err)
		}
		if !resp.Success() {
			return nil, fmt.Errorf("get chat members error: %s", resp.Msg)
		}

		for _, item := range resp.Data.Items {
			member := &ChatMember{}
			if item.MemberId != nil {
				member.MemberID = *item.MemberId
			}
			if item.Name != nil {
				member.Name = *item.Name
			}
			members = append(members, member)
		}

		if resp.Data.PageToken == nil || *resp.Data.PageToken == "" {
			break
		}
		pageToken = *resp.Data.PageToken
	}

	return members, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
