package adapter

import "context"

// TextGenerator is the port for the external text-generation oracle.
// Implementations return the raw model output; they never guarantee schema
// compliance, so callers must validate and fall back.
type TextGenerator interface {
	// GenerateText sends a free-form prompt and returns the model's text.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// CountTokens estimates prompt tokens for accounting. Best effort:
	// implementations without a local tokenizer may return 0, nil.
	CountTokens(ctx context.Context, prompt string) (int, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}
