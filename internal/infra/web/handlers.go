package web

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"ai-interview-simulator/internal/domain"
	"ai-interview-simulator/internal/domain/model"
	"ai-interview-simulator/internal/infra/logging"
	"ai-interview-simulator/internal/usecase"
)

type startRequest struct {
	Role           string `json:"role"`
	Level          string `json:"level"`
	JobDescription string `json:"jobDescription"`
	Company        string `json:"company"`
	UserID         string `json:"userId"`
}

// POST /api/interview/start
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "userId is required", "")
		return
	}

	spec := model.JobSpec{
		Role:           req.Role,
		Level:          req.Level,
		JobDescription: req.JobDescription,
		Company:        req.Company,
	}
	res, err := s.interview.Start(logging.WithUserID(r.Context(), req.UserID), spec, req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		*usecase.StartResult
	}{true, "Interview session created successfully", res})
}

// GET /api/interview/{sessionID}/question
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	view, err := s.interview.NextQuestion(logging.WithSessID(r.Context(), sessionID), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*usecase.QuestionView
	}{true, view})
}

// GET /api/interview/{sessionID}/question/audio
func (s *Server) handleQuestionAudio(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	ctx := logging.WithSessID(r.Context(), sessionID)

	view, err := s.interview.NextQuestion(ctx, sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if view.Completed {
		writeJSON(w, http.StatusBadRequest, struct {
			Error     string `json:"error"`
			Completed bool   `json:"completed"`
		}{"Interview completed", true})
		return
	}

	voiceID := r.URL.Query().Get("voice")
	audio, err := s.speech.Synthesize(ctx, view.Question, voiceID)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("question synthesis failed")
		writeError(w, http.StatusBadGateway, "failed to generate question audio", domain.ErrAudioService.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	_, _ = w.Write(audio)
}

type answerRequest struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// POST /api/interview/{sessionID}/answer
func (s *Server) handleSubmitText(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if req.QuestionID == "" || strings.TrimSpace(req.Answer) == "" {
		writeError(w, http.StatusBadRequest, "questionId and answer are required", "")
		return
	}

	res, err := s.interview.SubmitAnswer(logging.WithSessID(r.Context(), sessionID),
		sessionID, req.QuestionID, req.Answer, model.ModalityText)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		*usecase.SubmitResult
	}{true, "Answer submitted successfully", res})
}

// POST /api/interview/{sessionID}/answer/audio
// multipart/form-data: "audio" file + "questionId" field
func (s *Server) handleSubmitAudio(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	ctx := logging.WithSessID(r.Context(), sessionID)

	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body", "")
		return
	}
	questionID := r.FormValue("questionId")
	if questionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required", "")
		return
	}
	file, _, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required", "")
		return
	}
	defer file.Close()
	audio, err := io.ReadAll(io.LimitReader(file, s.maxUpload))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read audio file", "")
		return
	}

	// Transcription happens before any session mutation, so a speech
	// failure leaves the session untouched.
	text, err := s.speech.Transcribe(ctx, audio)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("answer transcription failed")
		writeError(w, http.StatusBadGateway, "failed to convert speech to text", domain.ErrAudioService.Error())
		return
	}

	res, err := s.interview.SubmitAnswer(ctx, sessionID, questionID, text, model.ModalityAudio)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success         bool   `json:"success"`
		Message         string `json:"message"`
		TranscribedText string `json:"transcribedText"`
		*usecase.SubmitResult
	}{true, "Audio answer submitted successfully", text, res})
}

// GET /api/interview/{sessionID}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	sess, err := s.interview.GetSession(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool                    `json:"success"`
		Session *model.InterviewSession `json:"session"`
	}{true, sess})
}

// GET /api/interview/{sessionID}/answers
func (s *Server) handleGetAnswers(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	answers, err := s.interview.GetAnswers(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success      bool           `json:"success"`
		SessionID    string         `json:"sessionId"`
		TotalAnswers int            `json:"totalAnswers"`
		Answers      []model.Answer `json:"answers"`
	}{true, sessionID, len(answers), answers})
}

// POST /api/interview/{sessionID}/end
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	summary, err := s.interview.EndSession(logging.WithSessID(r.Context(), sessionID), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		*usecase.EndSummary
	}{true, "Interview session ended successfully", summary})
}

// GET /api/interview/{sessionID}/transcript
func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	sess, err := s.interview.GetSession(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	transcript, err := s.eval.BuildTranscript(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success          bool   `json:"success"`
		SessionID        string `json:"sessionId"`
		Transcript       string `json:"transcript"`
		Role             string `json:"role"`
		Level            string `json:"level"`
		Company          string `json:"company,omitempty"`
		TotalQuestions   int    `json:"totalQuestions"`
		AnswersSubmitted int    `json:"answersSubmitted"`
	}{true, sessionID, transcript, sess.JobSpec.Role, sess.JobSpec.Level, sess.JobSpec.Company,
		len(sess.Questions), len(sess.Answers)})
}

type evaluateRequest struct {
	Transcript string `json:"transcript"`
	Role       string `json:"role"`
	Level      string `json:"level"`
}

// POST /api/evaluate
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		writeError(w, http.StatusBadRequest, "transcript is required", "")
		return
	}

	ev := s.eval.Evaluate(r.Context(), req.Transcript, model.JobSpec{Role: req.Role, Level: req.Level})
	writeJSON(w, http.StatusOK, ev)
}

// GET /api/voices
func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		Voices  any  `json:"voices"`
	}{true, s.speech.Voices()})
}
