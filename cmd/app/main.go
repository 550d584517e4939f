// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ai-interview-simulator/internal/config"
	"ai-interview-simulator/internal/domain/ports/adapter"
	"ai-interview-simulator/internal/domain/ports/repository"
	aiAdapters "ai-interview-simulator/internal/infra/adapters/ai"
	speechAdapters "ai-interview-simulator/internal/infra/adapters/speech"
	"ai-interview-simulator/internal/infra/logging"
	"ai-interview-simulator/internal/infra/metrics"
	"ai-interview-simulator/internal/infra/store/memory"
	"ai-interview-simulator/internal/infra/store/redisstore"
	"ai-interview-simulator/internal/infra/web"
	"ai-interview-simulator/internal/oracle"
	"ai-interview-simulator/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "development mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Session store ----
	var store repository.SessionStore
	switch cfg.Store.Backend {
	case "redis":
		cli, err := redisstore.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer cli.Close()
		store = redisstore.NewStore(cli, cfg.Redis.TTL)
		logger.Info().Str("backend", "redis").Msg("session store ready")
	default:
		store = memory.NewStore()
		logger.Info().Str("backend", "memory").Msg("session store ready")
	}

	// ---- Text generator (Gemini -> OpenAI -> noop) ----
	// Unlike a chat product, the interview flow works with no provider at
	// all: every oracle consumer carries a deterministic fallback.
	var gen adapter.TextGenerator
	switch {
	case cfg.AI.GeminiKey != "":
		gen, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.Model)
		if err != nil {
			log.Fatalf("gemini adapter: %v", err)
		}
	case cfg.AI.OpenAIKey != "":
		gen, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("openai adapter: %v", err)
		}
	default:
		gen = aiAdapters.NewNoopAdapter()
		logger.Warn().Msg("no AI provider configured; using built-in question set and neutral evaluations")
	}
	logger.Info().Str("provider", gen.Name()).Str("model", cfg.AI.Model).Msg("text generator ready")

	// ---- Speech service ----
	var speech adapter.SpeechService
	if cfg.Speech.ElevenLabsKey != "" {
		speech, err = speechAdapters.NewElevenLabsAdapter(cfg.Speech.ElevenLabsKey, cfg.Speech.BaseURL, cfg.Speech.VoiceID, cfg.Speech.Timeout)
		if err != nil {
			log.Fatalf("elevenlabs adapter: %v", err)
		}
	} else {
		speech = speechAdapters.NewNoopSpeech()
		logger.Warn().Msg("no speech provider configured; audio endpoints will fail, text interviews unaffected")
	}

	// ---- Use cases ----
	oc := oracle.NewClient(gen, logger)
	questions := usecase.NewQuestionBuilder(oc, logger)
	interviewUC := usecase.NewInterviewUseCase(store, questions, logger)
	evalUC := usecase.NewEvaluationUseCase(store, oc, logger)

	// ---- HTTP server ----
	srv := web.NewServer(interviewUC, evalUC, speech, cfg.Server.MaxUploadBytes, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
	case <-ctx.Done():
	}
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
