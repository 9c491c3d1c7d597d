package repo

import "context"

// ClockRepo resolves the authoritative calendar date from an external
// time source. Today returns "" when the source cannot be reached;
// callers treat an unresolved date as "cannot gate this request" and
// proceed rather than hard-failing.
type ClockRepo interface {
	// Today returns the current date as YYYY-MM-DD, or "" on failure
	Today(ctx context.Context) string
}
