package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextResolver(t *testing.T) {
	var r Resolver = ContextResolver{}

	_, ok := r.UserID(context.Background())
	assert.False(t, ok)

	ctx := WithUserID(context.Background(), " user_1 ")
	id, ok := r.UserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user_1", id)

	blank := WithUserID(context.Background(), "  ")
	_, ok = r.UserID(blank)
	assert.False(t, ok)
}

func TestStaticResolver(t *testing.T) {
	id, ok := StaticResolver{ID: "local"}.UserID(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "local", id)

	_, ok = StaticResolver{}.UserID(context.Background())
	assert.False(t, ok)
}

func TestTokenVerifier_RoundTrip(t *testing.T) {
	v := NewTokenVerifier("secret", time.Hour)

	token, err := v.Issue("user_1", "Ada", "ada@example.com")
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.Subject)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenVerifier_Rejects(t *testing.T) {
	v := NewTokenVerifier("secret", time.Hour)
	token, err := v.Issue("user_1", "", "")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenVerifier("other", time.Hour).Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokenVerifier("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenVerifier_IssueRequiresSubject(t *testing.T) {
	_, err := NewTokenVerifier("secret", time.Hour).Issue("", "", "")
	assert.Error(t, err)
}
