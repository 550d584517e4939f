// File: internal/usecase/interview_uc.go
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ai-interview-simulator/internal/domain"
	"ai-interview-simulator/internal/domain/model"
	"ai-interview-simulator/internal/domain/ports/repository"
	"ai-interview-simulator/internal/infra/logging"
	"ai-interview-simulator/internal/infra/metrics"
)

// Compile-time check
var _ InterviewUseCase = (*interviewUC)(nil)

// StartResult is returned from Start.
type StartResult struct {
	SessionID       string `json:"sessionId"`
	TotalQuestions  int    `json:"totalQuestions"`
	CurrentQuestion int    `json:"currentQuestion"`
}

// QuestionView is either the question under the cursor or, when the list is
// exhausted, a completion marker (Completed=true).
type QuestionView struct {
	Completed        bool   `json:"completed,omitempty"`
	Message          string `json:"message,omitempty"`
	QuestionNumber   int    `json:"questionNumber,omitempty"`
	TotalQuestions   int    `json:"totalQuestions"`
	QuestionID       string `json:"questionId,omitempty"`
	Question         string `json:"question,omitempty"`
	Category         string `json:"category,omitempty"`
	ExpectedDuration int    `json:"expectedDuration,omitempty"`
}

// SubmitResult reports where the interview stands after an accepted answer.
type SubmitResult struct {
	QuestionNumber     int  `json:"questionNumber"`
	HasMoreQuestions   bool `json:"hasMoreQuestions"`
	NextQuestionNumber *int `json:"nextQuestionNumber"`
}

// EndSummary is returned from EndSession.
type EndSummary struct {
	SessionID        string    `json:"sessionId"`
	TotalQuestions   int       `json:"totalQuestions"`
	AnswersSubmitted int       `json:"answersSubmitted"`
	StartedAt        time.Time `json:"startedAt"`
	CompletedAt      time.Time `json:"completedAt"`
}

// InterviewUseCase is the session state machine. It owns the only write
// paths for session creation and mutation; every mutation goes through the
// store's atomic per-id Update.
type InterviewUseCase interface {
	Start(ctx context.Context, spec model.JobSpec, userID string) (*StartResult, error)
	NextQuestion(ctx context.Context, sessionID string) (*QuestionView, error)
	SubmitAnswer(ctx context.Context, sessionID, questionID, answerText string, modality model.AnswerModality) (*SubmitResult, error)
	EndSession(ctx context.Context, sessionID string) (*EndSummary, error)
	GetSession(ctx context.Context, sessionID string) (*model.InterviewSession, error)
	GetAnswers(ctx context.Context, sessionID string) ([]model.Answer, error)
}

type interviewUC struct {
	store     repository.SessionStore
	questions QuestionBuilder
	log       *zerolog.Logger
}

func NewInterviewUseCase(store repository.SessionStore, questions QuestionBuilder, logger *zerolog.Logger) *interviewUC {
	return &interviewUC{store: store, questions: questions, log: logger}
}

func (u *interviewUC) Start(ctx context.Context, spec model.JobSpec, userID string) (*StartResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrInvalidInput
	}
	spec = spec.Normalize()

	// Question generation happens before the session exists in the store,
	// so the oracle's latency never holds any session lock.
	qs := u.questions.Build(ctx, spec)

	s := model.NewInterviewSession(uuid.NewString(), userID, spec, qs)
	if err := u.store.Create(ctx, s); err != nil {
		return nil, err
	}
	metrics.IncSessionStarted()

	log := logging.With(ctx, u.log)
	log.Info().Str("session_id", s.ID).Str("user_id", userID).
		Str("role", spec.Role).Int("questions", len(qs)).Msg("interview started")

	return &StartResult{
		SessionID:       s.ID,
		TotalQuestions:  len(qs),
		CurrentQuestion: 0,
	}, nil
}

// NextQuestion returns the question under the cursor without advancing it.
// Reading past the end lazily completes the session and keeps returning the
// completion marker; that read path never turns into an error.
func (u *interviewUC) NextQuestion(ctx context.Context, sessionID string) (*QuestionView, error) {
	var view *QuestionView
	_, err := u.store.Update(ctx, sessionID, func(s *model.InterviewSession) error {
		if s.Status != model.SessionActive && !s.Exhausted() {
			return domain.ErrSessionNotActive
		}
		if s.Exhausted() {
			if s.Status != model.SessionCompleted {
				s.Status = model.SessionCompleted
				metrics.IncSessionCompleted("read")
			}
			view = &QuestionView{
				Completed:      true,
				Message:        "Interview completed",
				TotalQuestions: len(s.Questions),
			}
			return nil
		}
		q, _ := s.CurrentQuestion()
		view = &QuestionView{
			QuestionNumber:   s.CurrentIndex + 1,
			TotalQuestions:   len(s.Questions),
			QuestionID:       q.ID,
			Question:         q.Text,
			Category:         q.Category,
			ExpectedDuration: q.ExpectedDuration,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SubmitAnswer accepts the answer for the current question only: answers
// arrive in strict sequence, so out-of-order and duplicate submissions are
// rejected rather than queued. Append and cursor advance are one atomic
// mutation.
func (u *interviewUC) SubmitAnswer(ctx context.Context, sessionID, questionID, answerText string, modality model.AnswerModality) (*SubmitResult, error) {
	if strings.TrimSpace(questionID) == "" || strings.TrimSpace(answerText) == "" {
		return nil, domain.ErrInvalidInput
	}
	if modality != model.ModalityText && modality != model.ModalityAudio {
		return nil, domain.ErrInvalidInput
	}

	var result *SubmitResult
	var completed bool
	_, err := u.store.Update(ctx, sessionID, func(s *model.InterviewSession) error {
		if s.Status != model.SessionActive {
			return domain.ErrSessionNotActive
		}
		q, ok := s.CurrentQuestion()
		if !ok {
			return domain.ErrNoQuestionsRemaining
		}
		if q.ID != questionID {
			return domain.ErrQuestionMismatch
		}

		answeredNumber := s.CurrentIndex + 1
		s.AppendAnswer(q, answerText, modality)

		hasMore := !s.Exhausted()
		result = &SubmitResult{
			QuestionNumber:   answeredNumber,
			HasMoreQuestions: hasMore,
		}
		if hasMore {
			next := s.CurrentIndex + 1
			result.NextQuestionNumber = &next
		}
		completed = !hasMore
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncAnswerSubmitted(string(modality))
	if completed {
		metrics.IncSessionCompleted("answers")
	}

	log := logging.With(ctx, u.log)
	log.Debug().Str("session_id", sessionID).Str("question_id", questionID).
		Bool("has_more", result.HasMoreQuestions).Msg("answer accepted")
	return result, nil
}

// EndSession forces completion and stamps CompletedAt with the time of this
// call, also when the session already completed by answer exhaustion.
// Idempotent: only an unknown id errors.
func (u *interviewUC) EndSession(ctx context.Context, sessionID string) (*EndSummary, error) {
	var summary *EndSummary
	now := time.Now()
	_, err := u.store.Update(ctx, sessionID, func(s *model.InterviewSession) error {
		wasActive := s.Status == model.SessionActive
		s.Complete(now)
		if wasActive {
			metrics.IncSessionCompleted("end")
		}
		summary = &EndSummary{
			SessionID:        s.ID,
			TotalQuestions:   len(s.Questions),
			AnswersSubmitted: len(s.Answers),
			StartedAt:        s.StartedAt,
			CompletedAt:      now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := logging.With(ctx, u.log)
	log.Info().Str("session_id", sessionID).
		Int("answers", summary.AnswersSubmitted).Msg("interview ended")
	return summary, nil
}

func (u *interviewUC) GetSession(ctx context.Context, sessionID string) (*model.InterviewSession, error) {
	return u.store.Get(ctx, sessionID)
}

func (u *interviewUC) GetAnswers(ctx context.Context, sessionID string) ([]model.Answer, error) {
	s, err := u.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.Answers, nil
}
