package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessments_CreateAndListAscending(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.UserRepo().EnsureUser(ctx, NewUser{ExternalID: "user_1"})
	require.NoError(t, err)
	other, err := s.UserRepo().EnsureUser(ctx, NewUser{ExternalID: "user_2"})
	require.NoError(t, err)

	repo := s.AssessmentRepo()
	tip := "Review SQL joins."

	first := &Assessment{
		UserID:    user.ID,
		QuizScore: 50,
		Category:  CategoryTechnical,
		Questions: []QuestionResult{
			{Question: "Q1", CorrectAnswer: "A", UserAnswer: "A", IsCorrect: true, Explanation: "E1"},
			{Question: "Q2", CorrectAnswer: "B", IsCorrect: false, Explanation: "E2"},
		},
		ImprovementTip: &tip,
	}
	require.NoError(t, repo.CreateAssessment(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &Assessment{UserID: user.ID, QuizScore: 100, Category: CategoryTechnical}
	require.NoError(t, repo.CreateAssessment(ctx, second))
	require.NoError(t, repo.CreateAssessment(ctx, &Assessment{UserID: other.ID, QuizScore: 10, Category: CategoryTechnical}))

	list, err := repo.AssessmentsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, 50.0, list[0].QuizScore)
	assert.Equal(t, first.Questions, list[0].Questions)
	require.NotNil(t, list[0].ImprovementTip)
	assert.Equal(t, tip, *list[0].ImprovementTip)
	assert.Nil(t, list[1].ImprovementTip)
	assert.Empty(t, list[1].Questions)
}

func TestAssessments_UnknownUserViolatesForeignKey(t *testing.T) {
	repo := openTestStore(t).AssessmentRepo()
	err := repo.CreateAssessment(context.Background(), &Assessment{UserID: 999, Category: CategoryTechnical})
	assert.Error(t, err)
}

func TestAssessments_EmptyList(t *testing.T) {
	repo := openTestStore(t).AssessmentRepo()
	list, err := repo.AssessmentsByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}
