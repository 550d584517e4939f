// File: internal/usecase/evaluation_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"ai-interview-simulator/internal/domain/model"
	"ai-interview-simulator/internal/domain/ports/repository"
	"ai-interview-simulator/internal/infra/metrics"
	"ai-interview-simulator/internal/oracle"
)

// Neutral evaluation returned whenever the scoring oracle is unavailable or
// answers with an unusable payload. Interview completion never hard-fails on
// the oracle.
var neutralEvaluation = model.Evaluation{
	HireProbability: 0.5,
	Strengths:       []string{"Completed the interview"},
	Weaknesses:      []string{"Evaluation service was unavailable; no detailed assessment"},
	FinalVerdict:    "Unable to assess: the evaluation service could not be reached. Treat this result as neutral.",
}

// EvaluationUseCase renders transcripts and produces the hire verdict.
type EvaluationUseCase interface {
	BuildTranscript(ctx context.Context, sessionID string) (string, error)
	Evaluate(ctx context.Context, transcript string, spec model.JobSpec) *model.Evaluation
}

var _ EvaluationUseCase = (*evaluationUC)(nil)

type evaluationUC struct {
	store  repository.SessionStore
	oracle *oracle.Client
	log    *zerolog.Logger
}

func NewEvaluationUseCase(store repository.SessionStore, oc *oracle.Client, logger *zerolog.Logger) *evaluationUC {
	return &evaluationUC{store: store, oracle: oc, log: logger}
}

// BuildTranscript renders the collected answers in submission order. Pure
// read: calling it twice without intervening submissions yields identical
// output.
func (u *evaluationUC) BuildTranscript(ctx context.Context, sessionID string) (string, error) {
	s, err := u.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return RenderTranscript(s.Answers), nil
}

// RenderTranscript is the deterministic transcript format fed to the scoring
// oracle: "Question i: <q>\nAnswer: <a>" blocks joined by blank lines.
func RenderTranscript(answers []model.Answer) string {
	blocks := make([]string, 0, len(answers))
	for i, a := range answers {
		blocks = append(blocks, fmt.Sprintf("Question %d: %s\nAnswer: %s", i+1, a.QuestionText, a.AnswerText))
	}
	return strings.Join(blocks, "\n\n")
}

// Evaluate scores the transcript. Never returns an error: oracle failures
// degrade to the documented neutral evaluation.
func (u *evaluationUC) Evaluate(ctx context.Context, transcript string, spec model.JobSpec) *model.Evaluation {
	spec = spec.Normalize()

	var ev model.Evaluation
	if err := u.oracle.RequestJSON(ctx, "evaluate", buildEvaluationPrompt(transcript, spec), &ev); err != nil {
		u.log.Info().Err(err).Msg("evaluation fell back to neutral verdict")
		metrics.IncOracleFallback("evaluate")
		fallback := neutralEvaluation
		return &fallback
	}

	if ev.HireProbability < 0 {
		ev.HireProbability = 0
	}
	if ev.HireProbability > 1 {
		ev.HireProbability = 1
	}
	if strings.TrimSpace(ev.FinalVerdict) == "" {
		metrics.IncOracleFallback("evaluate")
		fallback := neutralEvaluation
		return &fallback
	}
	if ev.Strengths == nil {
		ev.Strengths = []string{}
	}
	if ev.Weaknesses == nil {
		ev.Weaknesses = []string{}
	}
	return &ev
}

func buildEvaluationPrompt(transcript string, spec model.JobSpec) string {
	return fmt.Sprintf(`You are a senior interviewer at a top tech company.
Evaluate conservatively.

Transcript:
"""
%s
"""

Role: %s
Level: %s

Return ONLY valid JSON:
{
  "hire_probability": number,
  "strengths": string[],
  "weaknesses": string[],
  "final_verdict": string
}
`, transcript, spec.Role, spec.Level)
}
