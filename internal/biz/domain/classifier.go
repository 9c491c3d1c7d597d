package domain

import "strings"

// Classifier filters out events that must never reach dispatch:
// self echoes, non-text payloads and known system notices.
type Classifier struct {
	// SuppressSelfChat drops messages sent by the bot account itself.
	// Some accounts echo their own outbound messages back.
	SuppressSelfChat bool
	// SystemAccountName is the reserved display name of the platform
	// notification account.
	SystemAccountName string
	// NoticePatterns are substrings of non-actionable system notices
	// (voice/video placeholder, red-envelope placeholder, location link).
	NoticePatterns []string
}

// IsNonsense reports whether the message should be dropped before
// dispatch. Pure function, no I/O.
func (c *Classifier) IsNonsense(msg *IncomingMessage) bool {
	if c.SuppressSelfChat && msg.IsSelf {
		return true
	}
	if msg.MsgType != MsgTypeText {
		return true
	}
	if c.SystemAccountName != "" && msg.SenderName == c.SystemAccountName {
		return true
	}
	for _, p := range c.NoticePatterns {
		if strings.Contains(msg.Content, p) {
			return true
		}
	}
	return false
}
