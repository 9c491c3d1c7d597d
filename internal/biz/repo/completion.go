package repo

import "context"

// CompletionRepo is the language-completion provider interface
type CompletionRepo interface {
	// Complete sends a system+user prompt pair and returns the reply text.
	// Failures are reported as *ProviderError when upstream detail is known.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ProviderError carries upstream failure detail from the completion
// provider. StatusCode is 0 when no HTTP status was observed.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return e.Message
}
