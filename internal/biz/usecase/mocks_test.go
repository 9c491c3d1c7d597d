package usecase

import (
	"context"
)

// Mock implementations

type mockContentRepo struct {
	textResponse string
	jsonResponse []byte
	textCalls    int
	jsonCalls    int
}

func (m *mockContentRepo) FetchText(ctx context.Context, url string) string {
	m.textCalls++
	return m.textResponse
}

func (m *mockContentRepo) FetchJSON(ctx context.Context, url string) []byte {
	m.jsonCalls++
	return m.jsonResponse
}

type mockClockRepo struct {
	today string
}

func (m *mockClockRepo) Today(ctx context.Context) string {
	return m.today
}

type mockCompletionRepo struct {
	answer     string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (m *mockCompletionRepo) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}
