package ai

import (
	"context"
	"errors"

	"ai-interview-simulator/internal/domain/ports/adapter"
)

var _ adapter.TextGenerator = (*NoopAdapter)(nil)

// NoopAdapter is wired when no provider key is configured. Every call fails,
// which pushes callers onto their deterministic fallbacks; the service stays
// fully usable without any external oracle.
type NoopAdapter struct{}

func NewNoopAdapter() *NoopAdapter { return &NoopAdapter{} }

func (n *NoopAdapter) Name() string { return "noop" }

func (n *NoopAdapter) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("no text-generation provider configured")
}

func (n *NoopAdapter) CountTokens(ctx context.Context, prompt string) (int, error) {
	return 0, nil
}
