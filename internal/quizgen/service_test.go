package quizgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepcoach/internal/identity"
	"github.com/abhisek/prepcoach/internal/llm"
	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/store"
)

func TestService_GenerateQuiz(t *testing.T) {
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	profiles := profile.NewService(s.UserRepo(), identity.ContextResolver{}, nil)
	mock := llm.NewMockProvider()
	svc := NewService(profiles, New(mock, DefaultConfig(), nil))

	_, err = svc.GenerateQuiz(context.Background())
	assert.ErrorIs(t, err, profile.ErrUnauthorized)

	ctx := identity.WithUserID(context.Background(), "user_1")
	_, err = svc.GenerateQuiz(ctx)
	assert.ErrorIs(t, err, profile.ErrUserNotFound)
	assert.Zero(t, mock.CallCount(), "preconditions are checked before the model is called")

	_, err = profiles.EnsureUser(ctx, store.NewUser{})
	require.NoError(t, err)
	_, err = profiles.Update(ctx, profile.Input{Industry: "finance", Skills: []string{"Excel"}})
	require.NoError(t, err)

	mock.AddResponse(llm.MockText(quizJSON(t, 4)))
	quiz, err := svc.GenerateQuiz(ctx)
	require.NoError(t, err)
	assert.Len(t, quiz, 4)

	req, _ := mock.LastRequest()
	assert.Contains(t, req.Messages[0].Content, "finance professional with expertise in Excel")
}
