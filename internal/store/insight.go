package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SalaryRange is the pay band for one role in an industry.
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// IndustryInsight is the market summary shared by every user in an
// industry. It is regenerated once NextUpdate has passed.
type IndustryInsight struct {
	ID                int           `json:"id"`
	Industry          string        `json:"industry"`
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       string        `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     string        `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
	LastUpdated       time.Time     `json:"lastUpdated"`
	NextUpdate        time.Time     `json:"nextUpdate"`
}

// InsightRepo reads and writes industry insights.
type InsightRepo interface {
	// InsightByIndustry returns nil, nil when the industry has no insight.
	InsightByIndustry(ctx context.Context, industry string) (*IndustryInsight, error)

	// CreateInsight inserts in and fills in its ID. It returns ErrDuplicate
	// when the industry already has a row.
	CreateInsight(ctx context.Context, in *IndustryInsight) error

	// UpdateInsight replaces the generated fields of the industry's row.
	UpdateInsight(ctx context.Context, in *IndustryInsight) error
}

type insightRepo struct {
	db *sql.DB
}

var insightSelectColumns = []string{
	"id", "industry", "salary_ranges", "growth_rate", "demand_level", "top_skills",
	"market_outlook", "key_trends", "recommended_skills", "last_updated", "next_update",
}

// insightJSON holds the encoded list columns of an insight.
type insightJSON struct {
	salaries, top, trends, recommended string
}

func encodeInsight(in *IndustryInsight) (insightJSON, error) {
	var (
		out  insightJSON
		errs []error
	)
	enc := func(v any) string {
		b, err := json.Marshal(v)
		errs = append(errs, err)
		return string(b)
	}
	out.salaries = enc(nonNil(in.SalaryRanges))
	out.top = enc(nonNil(in.TopSkills))
	out.trends = enc(nonNil(in.KeyTrends))
	out.recommended = enc(nonNil(in.RecommendedSkills))
	if err := errors.Join(errs...); err != nil {
		return out, fmt.Errorf("encode insight: %w", err)
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (r *insightRepo) InsightByIndustry(ctx context.Context, industry string) (*IndustryInsight, error) {
	b := builder()
	query, args := b.Select(insightSelectColumns...).
		From(b.Table(insightsTable)).
		Where(entsql.EQ("industry", industry)).
		Limit(1).
		Query()

	in, err := scanInsight(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query insight: %w", err)
	}
	return in, nil
}

func (r *insightRepo) CreateInsight(ctx context.Context, in *IndustryInsight) error {
	enc, err := encodeInsight(in)
	if err != nil {
		return err
	}
	query, args := builder().Insert(insightsTable).
		Columns(insightSelectColumns[1:]...).
		Values(in.Industry, enc.salaries, in.GrowthRate, in.DemandLevel, enc.top,
			in.MarketOutlook, enc.trends, enc.recommended, in.LastUpdated.UTC(), in.NextUpdate.UTC()).
		OnConflict(entsql.ConflictColumns("industry"), entsql.DoNothing()).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert insight: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrDuplicate
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert insight: %w", err)
	}
	in.ID = int(id)
	return nil
}

func (r *insightRepo) UpdateInsight(ctx context.Context, in *IndustryInsight) error {
	enc, err := encodeInsight(in)
	if err != nil {
		return err
	}
	query, args := builder().Update(insightsTable).
		Set("salary_ranges", enc.salaries).
		Set("growth_rate", in.GrowthRate).
		Set("demand_level", in.DemandLevel).
		Set("top_skills", enc.top).
		Set("market_outlook", in.MarketOutlook).
		Set("key_trends", enc.trends).
		Set("recommended_skills", enc.recommended).
		Set("last_updated", in.LastUpdated.UTC()).
		Set("next_update", in.NextUpdate.UTC()).
		Where(entsql.EQ("industry", in.Industry)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update insight: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update insight: no row for industry %q", in.Industry)
	}
	return nil
}

func scanInsight(row *sql.Row) (*IndustryInsight, error) {
	var in IndustryInsight
	var salaries, top, trends, recommended []byte
	err := row.Scan(&in.ID, &in.Industry, &salaries, &in.GrowthRate, &in.DemandLevel, &top,
		&in.MarketOutlook, &trends, &recommended, &in.LastUpdated, &in.NextUpdate)
	if err != nil {
		return nil, err
	}
	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{salaries, &in.SalaryRanges},
		{top, &in.TopSkills},
		{trends, &in.KeyTrends},
		{recommended, &in.RecommendedSkills},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("decode insight: %w", err)
		}
	}
	in.SalaryRanges = nonNil(in.SalaryRanges)
	in.TopSkills = nonNil(in.TopSkills)
	in.KeyTrends = nonNil(in.KeyTrends)
	in.RecommendedSkills = nonNil(in.RecommendedSkills)
	return &in, nil
}
