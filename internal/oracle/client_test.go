package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type fakeGen struct {
	reply string
	err   error
}

func (f *fakeGen) Name() string { return "fake" }
func (f *fakeGen) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}
func (f *fakeGen) CountTokens(ctx context.Context, prompt string) (int, error) {
	return len(prompt) / 4, nil
}

func newClient(gen *fakeGen) *Client {
	l := zerolog.Nop()
	return NewClient(gen, &l)
}

func TestRequestJSON_Success(t *testing.T) {
	c := newClient(&fakeGen{reply: "```json\n{\"value\": 42}\n```"})

	var out struct {
		Value int `json:"value"`
	}
	if err := c.RequestJSON(context.Background(), "test", "prompt", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Value != 42 {
		t.Fatalf("value=%d, want 42", out.Value)
	}
}

func TestRequestJSON_TransportFailure(t *testing.T) {
	c := newClient(&fakeGen{err: errors.New("connection refused")})

	var out map[string]any
	err := c.RequestJSON(context.Background(), "test", "prompt", &out)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestRequestJSON_EmptyReply(t *testing.T) {
	c := newClient(&fakeGen{reply: "   \n "})

	var out map[string]any
	err := c.RequestJSON(context.Background(), "test", "prompt", &out)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestRequestJSON_NoJSONInReply(t *testing.T) {
	c := newClient(&fakeGen{reply: "Sorry, I can't help with that."})

	var out map[string]any
	err := c.RequestJSON(context.Background(), "test", "prompt", &out)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("got %v, want ErrMalformedPayload", err)
	}
}

func TestRequestJSON_InvalidJSON(t *testing.T) {
	// Balanced braces, but not valid JSON.
	c := newClient(&fakeGen{reply: `{value: oops}`})

	var out map[string]any
	err := c.RequestJSON(context.Background(), "test", "prompt", &out)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("got %v, want ErrMalformedPayload", err)
	}
}
