package repo

import "context"

// ContentRepo fetches arbitrary HTTP content (sign dataset, quote API).
// Non-success status and network errors both yield an empty result with
// a nil error: callers treat "nothing came back" uniformly and retry on
// their next use.
type ContentRepo interface {
	// FetchJSON fetches a URL and returns the raw body on HTTP 200
	FetchJSON(ctx context.Context, url string) []byte

	// FetchText fetches a URL and returns the body as text on HTTP 200
	FetchText(ctx context.Context, url string) string
}
