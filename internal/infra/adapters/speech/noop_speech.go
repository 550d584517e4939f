package speech

import (
	"context"
	"errors"

	"ai-interview-simulator/internal/domain/ports/adapter"
)

var _ adapter.SpeechService = (*NoopSpeech)(nil)

// NoopSpeech is wired when no speech key is configured. Audio endpoints fail
// with a typed error; text interviews are unaffected.
type NoopSpeech struct{}

func NewNoopSpeech() *NoopSpeech { return &NoopSpeech{} }

func (n *NoopSpeech) Voices() []adapter.Voice {
	out := make([]adapter.Voice, len(interviewerVoices))
	copy(out, interviewerVoices)
	return out
}

func (n *NoopSpeech) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	return nil, errors.New("no speech provider configured")
}

func (n *NoopSpeech) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return "", errors.New("no speech provider configured")
}
