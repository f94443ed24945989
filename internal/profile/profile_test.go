package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepcoach/internal/identity"
	"github.com/abhisek/prepcoach/internal/store"
)

func newTestService(t *testing.T) (*Service, context.Context) {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	svc := NewService(s.UserRepo(), identity.ContextResolver{}, nil)
	return svc, identity.WithUserID(context.Background(), "user_1")
}

func TestCurrent_Errors(t *testing.T) {
	svc, ctx := newTestService(t)

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnsureUserAndUpdate(t *testing.T) {
	svc, ctx := newTestService(t)

	u, err := svc.EnsureUser(ctx, store.NewUser{ExternalID: "ignored", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "user_1", u.ExternalID)

	onboarded, err := svc.Onboarded(ctx)
	require.NoError(t, err)
	assert.False(t, onboarded)

	years := 3
	u, err = svc.Update(ctx, Input{
		Industry:   "  Tech-Software-Development ",
		Experience: &years,
		Bio:        " hi ",
		Skills:     []string{"Go", " go ", "", "SQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, "tech-software-development", u.Industry)
	assert.Equal(t, "hi", u.Bio)
	assert.Equal(t, []string{"Go", "SQL"}, u.Skills)

	onboarded, err = svc.Onboarded(ctx)
	require.NoError(t, err)
	assert.True(t, onboarded)
}

func TestUpdate_Validation(t *testing.T) {
	svc, ctx := newTestService(t)
	_, err := svc.EnsureUser(ctx, store.NewUser{})
	require.NoError(t, err)

	tooMany := 99
	_, err = svc.Update(ctx, Input{Industry: "   ", Experience: &tooMany})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve.Fields["industry"])
	assert.Equal(t, "max", ve.Fields["experience"])
}

func TestUpdate_Unknown(t *testing.T) {
	svc, ctx := newTestService(t)

	_, err := svc.Update(context.Background(), Input{Industry: "x"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Update(ctx, Input{Industry: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIsOnboarded(t *testing.T) {
	assert.False(t, IsOnboarded(nil))
	assert.False(t, IsOnboarded(&store.User{}))
	assert.True(t, IsOnboarded(&store.User{Industry: "finance"}))
}

type brokenUsers struct{ err error }

func (b brokenUsers) EnsureUser(context.Context, store.NewUser) (*store.User, error) { return nil, b.err }

func (b brokenUsers) UserByExternalID(context.Context, string) (*store.User, error) {
	return nil, b.err
}

func (b brokenUsers) UpdateProfile(context.Context, string, store.ProfileUpdate) (*store.User, error) {
	return nil, b.err
}

func TestStorageFailuresAreTyped(t *testing.T) {
	dbErr := errors.New("database is locked")
	svc := NewService(brokenUsers{err: dbErr}, identity.StaticResolver{ID: "user_1"}, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		op   string
		call func() error
	}{
		{"current", store.OpLoad, func() error { _, err := svc.Current(ctx); return err }},
		{"ensure", store.OpSave, func() error { _, err := svc.EnsureUser(ctx, store.NewUser{}); return err }},
		{"update", store.OpUpdate, func() error { _, err := svc.Update(ctx, Input{Industry: "tech"}); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var perr *store.ErrPersistence
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "profile", perr.Entity)
			assert.Equal(t, tt.op, perr.Op)
			assert.ErrorIs(t, err, dbErr)
		})
	}
}

type fakeInsights struct {
	industries []string
	err        error
}

func (f *fakeInsights) ForIndustry(_ context.Context, industry string) (*store.IndustryInsight, error) {
	f.industries = append(f.industries, industry)
	if f.err != nil {
		return nil, f.err
	}
	return &store.IndustryInsight{Industry: industry, DemandLevel: "High"}, nil
}

func TestUpdate_PreparesInsightForNormalizedIndustry(t *testing.T) {
	svc, ctx := newTestService(t)
	src := &fakeInsights{}
	svc.WithInsights(src)
	_, err := svc.EnsureUser(ctx, store.NewUser{})
	require.NoError(t, err)

	_, err = svc.Update(ctx, Input{Industry: " Fintech "})
	require.NoError(t, err)
	assert.Equal(t, []string{"fintech"}, src.industries)

	in, err := svc.Insight(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fintech", in.Industry)
}

func TestUpdate_InsightFailureStillSavesProfile(t *testing.T) {
	svc, ctx := newTestService(t)
	svc.WithInsights(&fakeInsights{err: errors.New("model down")})
	_, err := svc.EnsureUser(ctx, store.NewUser{})
	require.NoError(t, err)

	u, err := svc.Update(ctx, Input{Industry: "healthcare"})
	require.NoError(t, err)
	assert.Equal(t, "healthcare", u.Industry)

	_, err = svc.Insight(ctx)
	assert.EqualError(t, err, "model down")
}

func TestInsight_Preconditions(t *testing.T) {
	svc, ctx := newTestService(t)
	_, err := svc.EnsureUser(ctx, store.NewUser{})
	require.NoError(t, err)

	_, err = svc.Insight(ctx)
	assert.ErrorIs(t, err, ErrNotOnboarded)

	_, err = svc.Update(ctx, Input{Industry: "tech"})
	require.NoError(t, err)
	_, err = svc.Insight(ctx)
	assert.ErrorIs(t, err, ErrNoInsights)
}
