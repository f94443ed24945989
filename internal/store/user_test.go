package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUser_CreatesOnce(t *testing.T) {
	repo := openTestStore(t).UserRepo()
	ctx := context.Background()

	u, err := repo.EnsureUser(ctx, NewUser{ExternalID: "user_1", Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Empty(t, u.Industry)
	assert.Equal(t, []string{}, u.Skills)
	assert.Nil(t, u.Experience)
	assert.False(t, u.CreatedAt.IsZero())

	again, err := repo.EnsureUser(ctx, NewUser{ExternalID: "user_1", Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "Ada", again.Name, "existing rows are not overwritten")
}

func TestEnsureUser_RequiresExternalID(t *testing.T) {
	repo := openTestStore(t).UserRepo()
	_, err := repo.EnsureUser(context.Background(), NewUser{})
	assert.Error(t, err)
}

func TestUserByExternalID_Missing(t *testing.T) {
	repo := openTestStore(t).UserRepo()
	u, err := repo.UserByExternalID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateProfile(t *testing.T) {
	repo := openTestStore(t).UserRepo()
	ctx := context.Background()

	_, err := repo.EnsureUser(ctx, NewUser{ExternalID: "user_1"})
	require.NoError(t, err)

	years := 4
	u, err := repo.UpdateProfile(ctx, "user_1", ProfileUpdate{
		Industry:   "tech-software-development",
		Experience: &years,
		Bio:        "Backend engineer",
		Skills:     []string{"Go", "SQL"},
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "tech-software-development", u.Industry)
	require.NotNil(t, u.Experience)
	assert.Equal(t, 4, *u.Experience)
	assert.Equal(t, []string{"Go", "SQL"}, u.Skills)
	assert.False(t, u.UpdatedAt.Before(u.CreatedAt))

	u, err = repo.UpdateProfile(ctx, "user_1", ProfileUpdate{Industry: "finance"})
	require.NoError(t, err)
	assert.Nil(t, u.Experience)
	assert.Equal(t, []string{}, u.Skills)
}

func TestUpdateProfile_MissingUser(t *testing.T) {
	repo := openTestStore(t).UserRepo()
	u, err := repo.UpdateProfile(context.Background(), "ghost", ProfileUpdate{Industry: "x"})
	require.NoError(t, err)
	assert.Nil(t, u)
}
