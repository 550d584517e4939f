// File: internal/usecase/question_builder.go
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"ai-interview-simulator/internal/domain/model"
	"ai-interview-simulator/internal/infra/metrics"
	"ai-interview-simulator/internal/oracle"
)

// QuestionCount is the fixed interview length.
const QuestionCount = 5

// Built-in question set used whenever the oracle is down or returns an
// unusable payload. Deterministic so the system works with no provider at all.
var fallbackQuestions = []model.Question{
	{ID: "q1", Text: "Tell me about yourself and your background.", Category: "introduction", ExpectedDuration: 120},
	{ID: "q2", Text: "Why are you interested in this position?", Category: "motivation", ExpectedDuration: 90},
	{ID: "q3", Text: "What are your greatest strengths as a developer?", Category: "skills", ExpectedDuration: 90},
	{ID: "q4", Text: "Describe a challenging project you worked on and how you overcame obstacles.", Category: "problem-solving", ExpectedDuration: 120},
	{ID: "q5", Text: "Where do you see yourself in 5 years?", Category: "career-goals", ExpectedDuration: 90},
}

// QuestionBuilder turns a job spec into the fixed-length question set.
type QuestionBuilder interface {
	Build(ctx context.Context, spec model.JobSpec) []model.Question
}

var _ QuestionBuilder = (*questionBuilder)(nil)

type questionBuilder struct {
	oracle *oracle.Client
	log    *zerolog.Logger
}

func NewQuestionBuilder(oc *oracle.Client, logger *zerolog.Logger) *questionBuilder {
	return &questionBuilder{oracle: oc, log: logger}
}

// Build never fails: any oracle problem degrades to the built-in set.
// It has no side effects beyond the oracle call itself.
func (b *questionBuilder) Build(ctx context.Context, spec model.JobSpec) []model.Question {
	spec = spec.Normalize()

	var payload struct {
		Questions []model.Question `json:"questions"`
	}
	if err := b.oracle.RequestJSON(ctx, "generate_questions", buildQuestionPrompt(spec), &payload); err != nil {
		b.log.Info().Err(err).Str("role", spec.Role).Msg("question generation fell back to built-in set")
		metrics.IncOracleFallback("generate_questions")
		return cloneQuestions(fallbackQuestions)
	}

	qs := sanitizeQuestions(payload.Questions)
	if len(qs) < QuestionCount {
		b.log.Info().Int("got", len(payload.Questions)).Msg("oracle question set unusable, using built-in set")
		metrics.IncOracleFallback("generate_questions")
		return cloneQuestions(fallbackQuestions)
	}
	return qs[:QuestionCount]
}

// sanitizeQuestions drops empty entries and reassigns ids q1..qN so answer
// matching downstream can rely on unique, stable identifiers regardless of
// what the oracle produced.
func sanitizeQuestions(in []model.Question) []model.Question {
	out := make([]model.Question, 0, len(in))
	for _, q := range in {
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			continue
		}
		if q.Category == "" {
			q.Category = "general"
		}
		if q.ExpectedDuration <= 0 {
			q.ExpectedDuration = 90
		}
		q.ID = fmt.Sprintf("q%d", len(out)+1)
		out = append(out, q)
	}
	return out
}

func cloneQuestions(in []model.Question) []model.Question {
	return append([]model.Question(nil), in...)
}

func buildQuestionPrompt(spec model.JobSpec) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert interviewer. Generate %d basic interview questions for a %s %s position",
		QuestionCount, spec.Level, spec.Role)
	if spec.Company != "" {
		fmt.Fprintf(&sb, " at %s", spec.Company)
	}
	sb.WriteString(".\n\n")
	if spec.JobDescription != "" {
		fmt.Fprintf(&sb, "Job Description:\n%s\n\n", spec.JobDescription)
	}
	sb.WriteString(`Generate questions that assess:
1. Communication skills
2. Problem-solving ability
3. Technical knowledge (basic)
4. Cultural fit
5. Career motivation

Return ONLY valid JSON in this exact format:
{
  "questions": [
    {
      "id": "q1",
      "question": "Tell me about yourself and your background.",
      "category": "introduction",
      "expectedDuration": 120
    },
    {
      "id": "q2",
      "question": "Why are you interested in this position?",
      "category": "motivation",
      "expectedDuration": 90
    }
  ]
}

Make questions natural and conversational. Include the question text only, no additional instructions.
`)
	return sb.String()
}
