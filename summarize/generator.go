package summarize

import (
	"context"
	"errors"
	"fmt"
)

var ErrGeneration = errors.New("failed to generate summary")

// Generator sends a generation request to a text backend and returns the
// plain-text result. Implementations are stateless per call, no conversation
// history is kept between invocations.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// NewGenerator selects a generation backend by name.
func NewGenerator(ctx context.Context, provider, apiKey string) (Generator, error) {
	switch provider {
	case "", "gemini":
		return NewGemini(ctx, apiKey)
	case "openai":
		return NewOpenAI(apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported summary provider: %s", provider)
	}
}
