package domain

// ChatType represents the chat type
type ChatType string

const (
	ChatTypeGroup ChatType = "group"
	ChatTypeP2P   ChatType = "p2p"
)

// MsgType tags the payload kind of an incoming message
type MsgType string

const (
	MsgTypeText  MsgType = "text"
	MsgTypeImage MsgType = "image"
	MsgTypeAudio MsgType = "audio"
	MsgTypePost  MsgType = "post"
	MsgTypeOther MsgType = "other"
)

// IncomingMessage is an immutable view of one chat event.
// Owned by the transport; the dispatcher only reads it while handling.
type IncomingMessage struct {
	Content    string
	MsgType    MsgType
	ChatID     string
	ChatType   ChatType
	SenderID   string
	SenderName string
	IsSelf     bool // sent by the bot account itself
}

// IsPrivate checks if the message came from a one-to-one chat
func (m *IncomingMessage) IsPrivate() bool {
	return m.ChatType != ChatTypeGroup
}
