package assessment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepcoach/internal/llm"
	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/quizgen"
	"github.com/abhisek/prepcoach/internal/store"
)

type staticUsers struct {
	user *store.User
	err  error
}

func (s staticUsers) Current(context.Context) (*store.User, error) {
	return s.user, s.err
}

type failingRepo struct {
	store.AssessmentRepo
	err error
}

func (f failingRepo) CreateAssessment(context.Context, *store.Assessment) error { return f.err }

func (f failingRepo) AssessmentsByUser(context.Context, int) ([]store.Assessment, error) {
	return nil, f.err
}

func testQuiz() quizgen.Quiz {
	return quizgen.Quiz{
		{Question: "Q1", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "A", Explanation: "E1"},
		{Question: "Q2", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "B", Explanation: "E2"},
		{Question: "Q3", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "C", Explanation: "E3"},
	}
}

func newTestService(t *testing.T, mock *llm.MockProvider) (*Service, *store.User) {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	u, err := s.UserRepo().EnsureUser(context.Background(), store.NewUser{ExternalID: "user_1"})
	require.NoError(t, err)
	u.Industry = "finance"

	return NewService(staticUsers{user: u}, s.AssessmentRepo(), NewTipGenerator(mock), nil), u
}

func TestScore(t *testing.T) {
	results := Score(testQuiz(), []string{"A", "C"})
	require.Len(t, results, 3)

	assert.True(t, results[0].IsCorrect)
	assert.False(t, results[1].IsCorrect)
	assert.Equal(t, "C", results[1].UserAnswer)
	assert.False(t, results[2].IsCorrect)
	assert.Empty(t, results[2].UserAnswer)
	assert.Equal(t, "E3", results[2].Explanation)

	assert.InDelta(t, 33.33, PercentCorrect(results), 0.01)
	assert.Len(t, Incorrect(results), 2)
	assert.Zero(t, PercentCorrect(nil))
}

func TestScore_ExactMatch(t *testing.T) {
	results := Score(testQuiz(), []string{"a", "B ", "C"})
	assert.False(t, results[0].IsCorrect)
	assert.False(t, results[1].IsCorrect)
	assert.True(t, results[2].IsCorrect)
}

func TestSaveQuizResult_AllCorrectSkipsTip(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("should not be used"))
	svc, u := newTestService(t, mock)

	a, err := svc.SaveQuizResult(context.Background(), testQuiz(), []string{"A", "B", "C"}, 100)
	require.NoError(t, err)
	assert.Nil(t, a.ImprovementTip)
	assert.Zero(t, mock.CallCount())
	assert.Equal(t, u.ID, a.UserID)
	assert.Equal(t, store.CategoryTechnical, a.Category)
	assert.Equal(t, 100.0, a.QuizScore)
	assert.NotZero(t, a.ID)
}

func TestSaveQuizResult_WithTip(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("  Review how indexes speed up joins.\n"))
	svc, _ := newTestService(t, mock)

	a, err := svc.SaveQuizResult(context.Background(), testQuiz(), []string{"A", "D"}, 33)
	require.NoError(t, err)
	require.NotNil(t, a.ImprovementTip)
	assert.Equal(t, "Review how indexes speed up joins.", *a.ImprovementTip)

	req, ok := mock.LastRequest()
	require.True(t, ok)
	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, "following finance technical interview questions wrong")
	assert.Contains(t, prompt, "Question: \"Q2\"\nCorrect Answer: \"B\"\nUser Answer: \"D\"")
	assert.Contains(t, prompt, "User Answer: \"(no answer)\"")
	assert.NotContains(t, prompt, "\"Q1\"")

	list, err := svc.Assessments(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
	require.NotNil(t, list[0].ImprovementTip)
}

func TestSaveQuizResult_TipFailureStillPersists(t *testing.T) {
	for name, reply := range map[string]llm.MockResponse{
		"error": llm.MockError(&llm.ErrProviderUnavailable{Err: errors.New("503")}),
		"empty": llm.MockText("   "),
	} {
		t.Run(name, func(t *testing.T) {
			mock := llm.NewMockProvider(reply)
			svc, _ := newTestService(t, mock)

			a, err := svc.SaveQuizResult(context.Background(), testQuiz(), []string{"B"}, 0)
			require.NoError(t, err)
			assert.Nil(t, a.ImprovementTip)
			assert.Equal(t, 1, mock.CallCount())

			list, err := svc.Assessments(context.Background())
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Nil(t, list[0].ImprovementTip)
		})
	}
}

func TestSaveQuizResult_PersistenceErrorPropagates(t *testing.T) {
	dbErr := errors.New("disk full")
	svc := NewService(staticUsers{user: &store.User{ID: 1}}, failingRepo{err: dbErr}, nil, nil)

	_, err := svc.SaveQuizResult(context.Background(), testQuiz(), nil, 0)
	var perr *ErrPersistence
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, OpSave, perr.Op)
	assert.Equal(t, "assessment", perr.Entity)
	assert.ErrorIs(t, err, dbErr)
	assert.EqualError(t, err, "assessment save failed: disk full")

	_, err = svc.Assessments(context.Background())
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, OpList, perr.Op)
}

func TestSaveQuizResult_PreconditionsPropagate(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(staticUsers{err: profile.ErrUnauthorized}, failingRepo{}, NewTipGenerator(mock), nil)

	_, err := svc.SaveQuizResult(context.Background(), testQuiz(), nil, 0)
	assert.ErrorIs(t, err, profile.ErrUnauthorized)
	assert.Zero(t, mock.CallCount())

	_, err = svc.Assessments(context.Background())
	assert.ErrorIs(t, err, profile.ErrUnauthorized)
}

func TestBuildTipPrompt(t *testing.T) {
	prompt := buildTipPrompt("", []store.QuestionResult{
		{Question: "What is \"CAP\"?", CorrectAnswer: "A theorem", UserAnswer: "A cap"},
	})
	assert.True(t, strings.HasPrefix(prompt, "The user got the following general technical interview questions wrong:"))
	assert.Contains(t, prompt, `Question: "What is \"CAP\"?"`)
	assert.True(t, strings.HasSuffix(prompt, "Return only the improvement tip text."))
}

func TestComputeStats(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil))

	now := time.Now()
	st := ComputeStats([]store.Assessment{
		{QuizScore: 40, Questions: make([]store.QuestionResult, 10)},
		{QuizScore: 90, Questions: make([]store.QuestionResult, 10)},
		{QuizScore: 80, Questions: make([]store.QuestionResult, 5), CreatedAt: now},
	})
	assert.Equal(t, 3, st.Assessments)
	assert.InDelta(t, 70, st.AverageScore, 0.001)
	assert.Equal(t, 80.0, st.LatestScore)
	assert.Equal(t, 90.0, st.BestScore)
	assert.Equal(t, 25, st.QuestionsPracticed)
	require.NotNil(t, st.LastTakenAt)
	assert.True(t, st.LastTakenAt.Equal(now))
}
