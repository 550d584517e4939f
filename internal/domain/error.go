package domain

import "errors"

var (
	// Common domain errors
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("session not found")
	ErrSessionNotActive     = errors.New("session is not active")
	ErrQuestionMismatch     = errors.New("question id does not match the current question")
	ErrNoQuestionsRemaining = errors.New("no more questions available")
	ErrAlreadyExists        = errors.New("session already exists")
	ErrAudioService         = errors.New("audio service failed")
)
