// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	oracleTokensIn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_tokens_in",
			Help: "Sum of prompt (input) tokens per provider.",
		},
		[]string{"provider"},
	)

	oracleCallsLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oracle_calls_latency_ms",
			Help:    "Text-generation oracle call latency in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000},
		},
		[]string{"provider", "op", "success"},
	)

	oracleFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_fallbacks_total",
			Help: "Count of oracle failures recovered with built-in fallback values.",
		},
		[]string{"op"},
	)

	sessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interview_sessions_started_total",
			Help: "Interview sessions created.",
		},
	)

	sessionsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_sessions_completed_total",
			Help: "Interview sessions completed, by trigger (answers/end/read).",
		},
		[]string{"trigger"},
	)

	answersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_answers_submitted_total",
			Help: "Accepted answer submissions by modality.",
		},
		[]string{"modality"},
	)

	speechCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speech_calls_total",
			Help: "Audio oracle calls by operation (synthesize/transcribe) and outcome.",
		},
		[]string{"op", "success"},
	)

	httpDurationMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "HTTP request duration in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
		[]string{"route", "method", "status"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			oracleTokensIn, oracleCallsLatencyMs, oracleFallbacks,
			sessionsStarted, sessionsCompleted, answersSubmitted,
			speechCalls, httpDurationMs,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// -------- Oracle helpers --------

func ObserveOracleCall(provider, op string, tokensIn, latencyMs int, success bool) {
	oracleTokensIn.WithLabelValues(norm(provider)).Add(float64(tokensIn))
	oracleCallsLatencyMs.WithLabelValues(norm(provider), norm(op), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func IncOracleFallback(op string) {
	oracleFallbacks.WithLabelValues(norm(op)).Inc()
}

// -------- Session helpers --------

func IncSessionStarted() { sessionsStarted.Inc() }

func IncSessionCompleted(trigger string) {
	sessionsCompleted.WithLabelValues(norm(trigger)).Inc()
}

func IncAnswerSubmitted(modality string) {
	answersSubmitted.WithLabelValues(norm(modality)).Inc()
}

// -------- Speech helpers --------

func IncSpeechCall(op string, success bool) {
	speechCalls.WithLabelValues(norm(op), strconv.FormatBool(success)).Inc()
}

// -------- HTTP helpers --------

func ObserveHTTP(route, method string, status int, latencyMs float64) {
	httpDurationMs.WithLabelValues(route, method, strconv.Itoa(status)).Observe(latencyMs)
}
