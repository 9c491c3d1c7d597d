package data

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/feishu-gpt-bot/internal/biz/repo"
)

// clockRepo resolves the calendar date from an external time endpoint
// so every user and feature shares one authoritative day boundary
// regardless of the process clock.
type clockRepo struct {
	content repo.ContentRepo
	timeURL string
}

// NewClockRepo creates a clock repository backed by the time endpoint
func NewClockRepo(content repo.ContentRepo, timeURL string) repo.ClockRepo {
	return &clockRepo{content: content, timeURL: timeURL}
}

// Today returns the current date as YYYY-MM-DD, or "" when the time
// source cannot be reached or parsed. Callers treat "" as "cannot gate
// this request" and proceed.
func (r *clockRepo) Today(ctx context.Context) string {
	body := r.content.FetchText(ctx, r.timeURL)
	if body == "" {
		return ""
	}

	var result struct {
		SysTime2 string `json:"sysTime2"` // "2006-01-02 15:04:05"
	}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		fmt.Printf("[Clock] Failed to parse time response: %v\n", err)
		return ""
	}
	if len(result.SysTime2) < 10 {
		return ""
	}
	return result.SysTime2[:10]
}
