package domain

import (
	"strings"
	"unicode"
)

// QuoteDelimiter separates quoted/forwarded content from the user's own
// words in a reply-style message. Only text after the last occurrence
// belongs to the user.
const QuoteDelimiter = "- - - - - - - - - - - - - - -"

// TriggerMatcher decides whether raw text addresses the bot and strips
// the invocation prefix.
//
// Group chats match on alias+keyword text instead of structured mention
// metadata: the "@mention" rendering differs across clients, so the
// literal alias is the only stable form.
type TriggerMatcher struct {
	// Keyword is the trigger keyword. Empty means every private message
	// triggers.
	Keyword string
	// Aliases are the literal strings a group may use in place of a
	// mention, e.g. "@220".
	Aliases []string
}

// Match reports whether text invokes the bot in the given context and
// returns the cleaned payload with the invocation prefix removed.
func (t *TriggerMatcher) Match(text string, isPrivate bool) (bool, string) {
	if isPrivate {
		if t.Keyword != "" && !strings.HasPrefix(text, t.Keyword) {
			return false, ""
		}
	} else {
		if !t.matchGroup(text) {
			return false, ""
		}
	}
	return true, t.clean(text, isPrivate)
}

// matchGroup checks the whitespace-stripped text against every
// alias+keyword combination.
func (t *TriggerMatcher) matchGroup(text string) bool {
	stripped := stripSpace(text)
	for _, alias := range t.Aliases {
		prefix := stripSpace(alias) + t.Keyword
		if strings.HasPrefix(stripped, prefix) {
			return true
		}
	}
	return false
}

// clean removes quoted content and the invocation prefix.
func (t *TriggerMatcher) clean(text string, isPrivate bool) string {
	// Discard everything above the last quote delimiter
	if idx := strings.LastIndex(text, QuoteDelimiter); idx >= 0 {
		text = text[idx+len(QuoteDelimiter):]
	}

	if isPrivate {
		return cutAfter(text, len(t.Keyword))
	}

	// Cut at the last keyword occurrence so a quoted bot reply that
	// itself contains the keyword cannot shift the cut point.
	idx := strings.LastIndex(text, t.Keyword)
	if idx < 0 {
		return text
	}
	return cutAfter(text, idx+len(t.Keyword))
}

// cutAfter returns text after position n plus exactly one separator
// rune, tolerating texts shorter than the prefix.
func cutAfter(text string, n int) string {
	if n >= len(text) {
		return ""
	}
	rest := text[n:]
	for i := range rest {
		if i > 0 {
			return rest[i:]
		}
	}
	return ""
}

// MatchesTask checks whether text starts with alias+task for any of the
// aliases, ignoring all whitespace. Task skills use this directly and
// bypass the generic trigger keyword.
func MatchesTask(text string, aliases []string, task string) bool {
	stripped := stripSpace(text)
	for _, alias := range aliases {
		if strings.HasPrefix(stripped, stripSpace(alias)+stripSpace(task)) {
			return true
		}
	}
	return false
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
