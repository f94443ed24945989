// Package metrics holds the Prometheus collectors for quiz generation,
// improvement tips, industry insights, model calls and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Quiz generation outcomes.
const (
	OutcomeGenerated       = "generated"
	OutcomePadded          = "padded"
	OutcomeFallbackLLM     = "fallback_llm_error"
	OutcomeFallbackParse   = "fallback_parse_error"
	OutcomeFallbackInvalid = "fallback_invalid"
)

// Improvement tip outcomes.
const (
	TipSkipped = "skipped"
	TipOK      = "ok"
	TipEmpty   = "empty"
	TipFailed  = "failed"
)

// Industry insight lookup outcomes.
const (
	InsightCached    = "cached"
	InsightGenerated = "generated"
	InsightRefreshed = "refreshed"
	InsightStale     = "stale"
	InsightFailed    = "failed"
)

var (
	QuizGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepcoach_quiz_generations_total",
			Help: "Quizzes returned to users by outcome",
		},
		[]string{"outcome"},
	)
	QuizParseStrategyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepcoach_quiz_parse_strategy_total",
			Help: "Model replies recovered by each parse strategy",
		},
		[]string{"strategy"},
	)
	QuizQuestions = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prepcoach_quiz_questions",
			Help:    "Number of questions in each returned quiz",
			Buckets: []float64{3, 4, 5, 6, 7, 8, 9, 10},
		},
	)
	ImprovementTipsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepcoach_improvement_tips_total",
			Help: "Improvement tip requests by outcome",
		},
		[]string{"outcome"},
	)
	QuizScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prepcoach_quiz_score_percent",
			Help:    "Distribution of saved quiz scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
	IndustryInsightsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepcoach_industry_insights_total",
			Help: "Industry insight lookups by outcome",
		},
		[]string{"outcome"},
	)
	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepcoach_llm_requests_total",
			Help: "Model calls by provider, purpose and result",
		},
		[]string{"provider", "purpose", "result"},
	)
	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prepcoach_llm_request_duration_seconds",
			Help:    "Model call latency in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"provider", "purpose"},
	)
	LLMTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepcoach_llm_tokens_total",
			Help: "Tokens billed by provider and direction (input or output)",
		},
		[]string{"provider", "direction"},
	)
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prepcoach_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prepcoach_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"route", "method"},
	)
)

var initOnce sync.Once

// Init registers every collector with the default registry. Safe to call
// more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			QuizGenerationsTotal,
			QuizParseStrategyTotal,
			QuizQuestions,
			ImprovementTipsTotal,
			QuizScore,
			IndustryInsightsTotal,
			LLMRequestsTotal,
			LLMRequestDuration,
			LLMTokensTotal,
			HTTPRequestsTotal,
			HTTPRequestDuration,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

func ObserveQuiz(outcome string, questions int) {
	QuizGenerationsTotal.WithLabelValues(outcome).Inc()
	QuizQuestions.Observe(float64(questions))
}

func ObserveParseStrategy(strategy string) {
	QuizParseStrategyTotal.WithLabelValues(strategy).Inc()
}

func ObserveTip(outcome string) {
	ImprovementTipsTotal.WithLabelValues(outcome).Inc()
}

func ObserveScore(percent float64) {
	if percent >= 0 && percent <= 100 {
		QuizScore.Observe(percent)
	}
}

func ObserveInsight(outcome string) {
	IndustryInsightsTotal.WithLabelValues(outcome).Inc()
}

func ObserveLLM(provider, purpose string, ok bool, d time.Duration) {
	result := "ok"
	if !ok {
		result = "error"
	}
	LLMRequestsTotal.WithLabelValues(provider, purpose, result).Inc()
	LLMRequestDuration.WithLabelValues(provider, purpose).Observe(d.Seconds())
}

func ObserveLLMTokens(provider string, input, output int) {
	LLMTokensTotal.WithLabelValues(provider, "input").Add(float64(input))
	LLMTokensTotal.WithLabelValues(provider, "output").Add(float64(output))
}

func ObserveHTTP(route, method string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
