package generator

import "context"

// LLMClient abstracts the model provider so it can be swapped or mocked.
// The api key travels with each call because callers bring their own.
type LLMClient interface {
	Complete(ctx context.Context, apiKey string, prompt Prompt) (string, error)
}

// LLMSettings is the base configuration for concrete clients.
type LLMSettings struct {
	Model       string
	BaseURL     string
	Temperature float64
}
