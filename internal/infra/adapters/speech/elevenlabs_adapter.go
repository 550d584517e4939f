// File: internal/infra/adapters/speech/elevenlabs_adapter.go
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"ai-interview-simulator/internal/domain/ports/adapter"
	"ai-interview-simulator/internal/infra/metrics"
)

var _ adapter.SpeechService = (*ElevenLabsAdapter)(nil)

// Interviewer voices offered to clients. IDs are ElevenLabs prebuilt voices.
var interviewerVoices = []adapter.Voice{
	{ID: "JBFqnCBsd6RMkjVDRZzb", Name: "George", Description: "Professional and warm male voice", Gender: "male"},
	{ID: "pNInz6obpgDQGcFmaJgB", Name: "Adam", Description: "Deep and authoritative male voice", Gender: "male"},
	{ID: "EXAVITQu4vr4xnSDxMaL", Name: "Sarah", Description: "Clear and friendly female voice", Gender: "female"},
	{ID: "nPczCjzI2devNBz1zQrb", Name: "Brian", Description: "Confident and energetic male voice", Gender: "male"},
	{ID: "N2lVS1w4EtoT3dr4eOWO", Name: "Callum", Description: "Calm and professional male voice", Gender: "male"},
	{ID: "XrExE9yKIg1WjnnlVkGX", Name: "Matilda", Description: "Warm and supportive female voice", Gender: "female"},
}

// ElevenLabsAdapter talks to the ElevenLabs TTS/STT REST API directly.
// There is no official Go SDK, so this follows the same hand-rolled
// http.Client pattern as the OpenAI-compatible adapters.
type ElevenLabsAdapter struct {
	apiKey  string
	base    string // e.g., https://api.elevenlabs.io
	voiceID string
	client  *http.Client
}

func NewElevenLabsAdapter(apiKey, baseURL, voiceID string, timeout time.Duration) (*ElevenLabsAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("elevenlabs api key empty")
	}
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	if voiceID == "" {
		voiceID = interviewerVoices[0].ID
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ElevenLabsAdapter{
		apiKey:  apiKey,
		base:    baseURL,
		voiceID: voiceID,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (e *ElevenLabsAdapter) Voices() []adapter.Voice {
	out := make([]adapter.Voice, len(interviewerVoices))
	copy(out, interviewerVoices)
	return out
}

func (e *ElevenLabsAdapter) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if voiceID == "" {
		voiceID = e.voiceID
	}
	reqBody := struct {
		Text         string `json:"text"`
		ModelID      string `json:"model_id"`
		OutputFormat string `json:"output_format"`
	}{Text: text, ModelID: "eleven_multilingual_v2", OutputFormat: "mp3_44100_128"}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost,
		e.base+"/v1/text-to-speech/"+voiceID, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		metrics.IncSpeechCall("synthesize", false)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		metrics.IncSpeechCall("synthesize", false)
		return nil, fmt.Errorf("elevenlabs tts http %d", resp.StatusCode)
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncSpeechCall("synthesize", false)
		return nil, err
	}
	metrics.IncSpeechCall("synthesize", true)
	return audio, nil
}

func (e *ElevenLabsAdapter) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "answer.mp3")
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(audio); err != nil {
		return "", err
	}
	if err := mw.WriteField("model_id", "scribe_v1"); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost,
		e.base+"/v1/speech-to-text", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		metrics.IncSpeechCall("transcribe", false)
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		metrics.IncSpeechCall("transcribe", false)
		return "", fmt.Errorf("elevenlabs stt http %d", resp.StatusCode)
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.IncSpeechCall("transcribe", false)
		return "", err
	}
	metrics.IncSpeechCall("transcribe", true)
	return payload.Text, nil
}
