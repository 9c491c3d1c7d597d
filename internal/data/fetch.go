package data

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

// contentRepo implements the content fetcher over plain HTTP GET.
// Non-success status and network errors both yield an empty result:
// callers handle "nothing came back" uniformly and retry on next use.
type contentRepo struct {
	client *http.Client
}

// NewContentRepo creates a new content repository
func NewContentRepo() repo.ContentRepo {
	return &contentRepo{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchJSON fetches a URL and returns the raw body on HTTP 200
func (r *contentRepo) FetchJSON(ctx context.Context, url string) []byte {
	return r.fetch(ctx, url)
}

// FetchText fetches a URL and returns the body as text on HTTP 200
func (r *contentRepo) FetchText(ctx context.Context, url string) string {
	return string(r.fetch(ctx, url))
}

func (r *contentRepo) fetch(ctx context.Context, url string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Printf("[Fetch] Bad request for %s: %v\n", url, err)
		return nil
	}

	resp, err := r.client.Do(req)
	if err != nil {
		fmt.Printf("[Fetch] Request failed for %s: %v\n", url, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("[Fetch] Unexpected status %d for %s\n", resp.StatusCode, url)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("[Fetch] Failed to read body for %s: %v\n", url, err)
		return nil
	}
	return body
}
