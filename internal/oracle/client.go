package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ai-interview-simulator/internal/domain/ports/adapter"
	"ai-interview-simulator/internal/infra/metrics"
)

var (
	// ErrUnavailable covers transport failures, provider errors and empty
	// payloads. Callers substitute a deterministic fallback value.
	ErrUnavailable = errors.New("oracle unavailable")

	// ErrMalformedPayload means the oracle answered but no parseable JSON
	// object could be extracted from the text.
	ErrMalformedPayload = errors.New("oracle returned malformed payload")
)

// Client turns a free-form prompt into a typed JSON result. It owns the
// extract-then-parse step so question building and evaluation never
// duplicate it. No retries: the caller's fallback policy is the recovery
// path, and the system must stay usable with the oracle fully down.
type Client struct {
	gen adapter.TextGenerator
	log *zerolog.Logger
}

func NewClient(gen adapter.TextGenerator, logger *zerolog.Logger) *Client {
	return &Client{gen: gen, log: logger}
}

// RequestJSON sends the prompt, extracts the first balanced JSON object from
// the reply and unmarshals it into out. op labels the call in metrics.
func (c *Client) RequestJSON(ctx context.Context, op, prompt string, out any) error {
	tokens, _ := c.gen.CountTokens(ctx, prompt)

	start := time.Now()
	raw, err := c.gen.GenerateText(ctx, prompt)
	latency := int(time.Since(start).Milliseconds())

	if err != nil {
		metrics.ObserveOracleCall(c.gen.Name(), op, tokens, latency, false)
		c.log.Warn().Err(err).Str("op", op).Str("provider", c.gen.Name()).Msg("oracle call failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	metrics.ObserveOracleCall(c.gen.Name(), op, tokens, latency, true)

	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	payload, ok := ExtractJSONObject(raw)
	if !ok {
		c.log.Warn().Str("op", op).Str("raw", truncate(raw, 200)).Msg("no JSON object in oracle output")
		return ErrMalformedPayload
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("oracle JSON did not parse")
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
