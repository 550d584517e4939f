package adapter

import "context"

// Voice describes one interviewer voice offered by the speech service.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Gender      string `json:"gender"`
}

// SpeechService is the port for the external audio oracle. Audio is opaque
// to the session core: synthesized bytes go straight to the client, and
// transcriptions enter the state machine as ordinary text answers.
type SpeechService interface {
	// Synthesize converts text to spoken audio (mp3).
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)

	// Transcribe converts recorded audio to text.
	Transcribe(ctx context.Context, audio []byte) (string, error)

	// Voices lists the built-in interviewer voices.
	Voices() []Voice
}
