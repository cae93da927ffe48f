package generator

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Agent builds the prompt for a topic and level, calls the LLM once and turns
// the answer into entries.
type Agent struct {
	llm    LLMClient
	logger *zap.Logger
}

func NewAgent(llm LLMClient, logger *zap.Logger) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{llm: llm, logger: logger.With(zap.String("component", "generator"))}, nil
}

// Generate returns ErrMissingAPIKey for an empty key and a *GenerationError
// for every other failure. There is no retry.
func (a *Agent) Generate(ctx context.Context, apiKey, topic string, level Level) ([]Entry, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	a.logger.Info("generation requested", zap.String("topic", topic), zap.String("level", string(level)))

	raw, err := a.llm.Complete(ctx, apiKey, BuildPrompt(topic, level))
	if err != nil {
		genErr := Classify(err)
		a.logger.Warn("provider call failed", zap.Stringer("kind", genErr.Kind), zap.Error(err))
		return nil, genErr
	}

	entries, err := ParseEntries(raw)
	if err != nil {
		a.logger.Warn("unusable model response", zap.Error(err), zap.Int("response_len", len(raw)))
		return nil, err
	}
	a.logger.Info("generation done", zap.String("topic", topic), zap.Int("entries", len(entries)))
	return entries, nil
}
