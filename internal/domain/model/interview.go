package model

import (
	"time"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

type AnswerModality string

const (
	ModalityText  AnswerModality = "text"
	ModalityAudio AnswerModality = "audio"
)

// JobSpec describes the position being interviewed for. Immutable once
// attached to a session.
type JobSpec struct {
	Role           string `json:"role"`
	Level          string `json:"level"`
	JobDescription string `json:"jobDescription,omitempty"`
	Company        string `json:"company,omitempty"`
}

// Normalize fills the defaults the rest of the system assumes.
func (j JobSpec) Normalize() JobSpec {
	if j.Role == "" {
		j.Role = "Software Engineer"
	}
	if j.Level == "" {
		j.Level = "Mid-level"
	}
	return j
}

// Question is immutable after generation. JSON field names follow the
// oracle's documented response shape.
type Question struct {
	ID               string `json:"id"`
	Text             string `json:"question"`
	Category         string `json:"category"`
	ExpectedDuration int    `json:"expectedDuration"` // seconds
}

// Answer is created once and appended to the session in submission order.
type Answer struct {
	QuestionID   string         `json:"questionId"`
	QuestionText string         `json:"question"`
	AnswerText   string         `json:"answer"`
	Modality     AnswerModality `json:"answerType"`
	Category     string         `json:"category"`
	AnsweredAt   time.Time      `json:"answeredAt"`
}

// InterviewSession is the aggregate root for one interview run.
//
// Invariants the state machine maintains:
//   - CurrentIndex only moves forward, one step per accepted answer.
//   - len(Answers) == CurrentIndex at all times.
//   - Questions never change after creation.
type InterviewSession struct {
	ID           string        `json:"sessionId"`
	UserID       string        `json:"userId"`
	JobSpec      JobSpec       `json:"jobSpec"`
	Questions    []Question    `json:"questions"`
	CurrentIndex int           `json:"currentQuestionIndex"`
	Answers      []Answer      `json:"answers"`
	Status       SessionStatus `json:"status"`
	StartedAt    time.Time     `json:"startedAt"`
	CompletedAt  *time.Time    `json:"completedAt,omitempty"`
}

func NewInterviewSession(id, userID string, spec JobSpec, questions []Question) *InterviewSession {
	return &InterviewSession{
		ID:           id,
		UserID:       userID,
		JobSpec:      spec,
		Questions:    questions,
		CurrentIndex: 0,
		Answers:      make([]Answer, 0, len(questions)),
		Status:       SessionActive,
		StartedAt:    time.Now(),
	}
}

// CurrentQuestion returns the question under the cursor, or false when the
// question list is exhausted.
func (s *InterviewSession) CurrentQuestion() (Question, bool) {
	if s.CurrentIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

func (s *InterviewSession) Exhausted() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// AppendAnswer records the answer for the current question and advances the
// cursor. The caller validates the question id first.
func (s *InterviewSession) AppendAnswer(q Question, text string, modality AnswerModality) {
	s.Answers = append(s.Answers, Answer{
		QuestionID:   q.ID,
		QuestionText: q.Text,
		AnswerText:   text,
		Modality:     modality,
		Category:     q.Category,
		AnsweredAt:   time.Now(),
	})
	s.CurrentIndex++
	if s.Exhausted() {
		s.Status = SessionCompleted
	}
}

// Complete forces the terminal state and stamps the completion time.
// Stamping is intentional even when already completed: CompletedAt means
// "end time of the finalize call".
func (s *InterviewSession) Complete(now time.Time) {
	s.Status = SessionCompleted
	s.CompletedAt = &now
}

// Clone returns a deep copy so the store never leaks live references.
func (s *InterviewSession) Clone() *InterviewSession {
	cp := *s
	cp.Questions = append([]Question(nil), s.Questions...)
	cp.Answers = append([]Answer(nil), s.Answers...)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}
