package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInsight(industry string, now time.Time) *IndustryInsight {
	return &IndustryInsight{
		Industry: industry,
		SalaryRanges: []SalaryRange{
			{Role: "Backend Engineer", Min: 90000, Max: 160000, Median: 120000, Location: "US"},
		},
		GrowthRate:        7.5,
		DemandLevel:       "High",
		TopSkills:         []string{"Go", "SQL"},
		MarketOutlook:     "Positive",
		KeyTrends:         []string{"Platform engineering"},
		RecommendedSkills: []string{"Kubernetes"},
		LastUpdated:       now,
		NextUpdate:        now.Add(7 * 24 * time.Hour),
	}
}

func TestInsights_CreateAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.InsightRepo()

	missing, err := repo.InsightByIndustry(ctx, "tech")
	require.NoError(t, err)
	assert.Nil(t, missing)

	now := time.Now().UTC()
	in := sampleInsight("tech", now)
	require.NoError(t, repo.CreateInsight(ctx, in))
	assert.NotZero(t, in.ID)

	got, err := repo.InsightByIndustry(ctx, "tech")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, in.SalaryRanges, got.SalaryRanges)
	assert.Equal(t, []string{"Go", "SQL"}, got.TopSkills)
	assert.Equal(t, "High", got.DemandLevel)
	assert.Equal(t, "Positive", got.MarketOutlook)
	assert.InDelta(t, 7.5, got.GrowthRate, 1e-9)
	assert.WithinDuration(t, in.NextUpdate, got.NextUpdate, time.Second)
}

func TestInsights_DuplicateIndustry(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.InsightRepo()

	require.NoError(t, repo.CreateInsight(ctx, sampleInsight("tech", time.Now())))
	err := repo.CreateInsight(ctx, sampleInsight("tech", time.Now()))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestInsights_Update(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.InsightRepo()

	now := time.Now().UTC()
	require.NoError(t, repo.CreateInsight(ctx, sampleInsight("tech", now)))

	fresh := sampleInsight("tech", now.Add(8*24*time.Hour))
	fresh.DemandLevel = "Medium"
	fresh.TopSkills = nil
	require.NoError(t, repo.UpdateInsight(ctx, fresh))

	got, err := repo.InsightByIndustry(ctx, "tech")
	require.NoError(t, err)
	assert.Equal(t, "Medium", got.DemandLevel)
	assert.Empty(t, got.TopSkills)
	assert.NotNil(t, got.TopSkills)
	assert.WithinDuration(t, fresh.LastUpdated, got.LastUpdated, time.Second)

	err = repo.UpdateInsight(ctx, sampleInsight("finance", now))
	assert.ErrorContains(t, err, "no row for industry")
}
