package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ai-interview-simulator/internal/domain/ports/adapter"
	"ai-interview-simulator/internal/usecase"
)

// Server is the thin HTTP wrapper around the interview core. Each route maps
// 1:1 to one use case operation; handlers only validate input shape and
// translate errors.
type Server struct {
	interview usecase.InterviewUseCase
	eval      usecase.EvaluationUseCase
	speech    adapter.SpeechService
	maxUpload int64
	log       *zerolog.Logger
}

func NewServer(
	interview usecase.InterviewUseCase,
	eval usecase.EvaluationUseCase,
	speech adapter.SpeechService,
	maxUpload int64,
	logger *zerolog.Logger,
) *Server {
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &Server{
		interview: interview,
		eval:      eval,
		speech:    speech,
		maxUpload: maxUpload,
		log:       logger,
	}
}

// Router builds the chi router with all API routes and middleware.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/interview/start", s.handleStart)
		r.Route("/interview/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Get("/question", s.handleQuestion)
			r.Get("/question/audio", s.handleQuestionAudio)
			r.Post("/answer", s.handleSubmitText)
			r.Post("/answer/audio", s.handleSubmitAudio)
			r.Get("/answers", s.handleGetAnswers)
			r.Get("/transcript", s.handleTranscript)
			r.Post("/end", s.handleEnd)
		})
		r.Post("/evaluate", s.handleEvaluate)
		r.Get("/voices", s.handleVoices)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
