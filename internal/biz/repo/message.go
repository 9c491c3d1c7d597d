package repo

import "context"

// MessageRepo is the outbound transport interface.
// Sends are awaited to completion; there is no fire-and-forget.
type MessageRepo interface {
	// SendText sends a text message to a chat (private or group)
	SendText(ctx context.Context, chatID, text string) error
}
