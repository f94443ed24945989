package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveHelpers(t *testing.T) {
	before := testutil.ToFloat64(QuizGenerationsTotal.WithLabelValues(OutcomePadded))
	ObserveQuiz(OutcomePadded, 4)
	assert.Equal(t, before+1, testutil.ToFloat64(QuizGenerationsTotal.WithLabelValues(OutcomePadded)))

	before = testutil.ToFloat64(ImprovementTipsTotal.WithLabelValues(TipFailed))
	ObserveTip(TipFailed)
	assert.Equal(t, before+1, testutil.ToFloat64(ImprovementTipsTotal.WithLabelValues(TipFailed)))

	before = testutil.ToFloat64(IndustryInsightsTotal.WithLabelValues(InsightStale))
	ObserveInsight(InsightStale)
	assert.Equal(t, before+1, testutil.ToFloat64(IndustryInsightsTotal.WithLabelValues(InsightStale)))

	before = testutil.ToFloat64(LLMRequestsTotal.WithLabelValues("mock", "quiz-gen", "error"))
	ObserveLLM("mock", "quiz-gen", false, time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(LLMRequestsTotal.WithLabelValues("mock", "quiz-gen", "error")))

	before = testutil.ToFloat64(LLMTokensTotal.WithLabelValues("mock", "output"))
	ObserveLLMTokens("mock", 100, 25)
	assert.Equal(t, before+25, testutil.ToFloat64(LLMTokensTotal.WithLabelValues("mock", "output")))

	before = testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/x", "GET", "204"))
	ObserveHTTP("/x", "GET", 204, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/x", "GET", "204")))

	ObserveParseStrategy("repair")
	ObserveScore(50)
	ObserveScore(150)
}

func TestHandlerExposesCollectors(t *testing.T) {
	Init()
	Init()
	ObserveQuiz(OutcomeGenerated, 10)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prepcoach_quiz_generations_total")
}
