// Package insights keeps one market summary per industry: salary bands,
// demand, outlook, trends and skills. Summaries are generated by the model on
// first use and regenerated weekly.
package insights

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/prepcoach/internal/logger"
	"github.com/abhisek/prepcoach/internal/metrics"
	"github.com/abhisek/prepcoach/internal/store"
)

// RefreshInterval is how long a generated insight stays current.
const RefreshInterval = 7 * 24 * time.Hour

// ErrUnavailable means the industry has no stored insight and none could be
// generated.
var ErrUnavailable = errors.New("industry insight unavailable")

// Service serves stored insights and generates missing or stale ones.
type Service struct {
	repo store.InsightRepo
	gen  *Generator
	now  func() time.Time
	log  *logger.Logger
}

// NewService builds a Service. A nil gen serves stored insights only.
func NewService(repo store.InsightRepo, gen *Generator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, gen: gen, now: time.Now, log: log.With("component", "insights")}
}

// ForIndustry returns the insight for industry. A missing one is generated
// and stored; one past its NextUpdate is regenerated, and kept as it is when
// that fails. Storage failures are *store.ErrPersistence.
func (s *Service) ForIndustry(ctx context.Context, industry string) (*store.IndustryInsight, error) {
	existing, err := s.repo.InsightByIndustry(ctx, industry)
	if err != nil {
		return nil, persistenceErr(store.OpLoad, err)
	}

	now := s.now().UTC()
	if existing != nil && (now.Before(existing.NextUpdate) || s.gen == nil) {
		metrics.ObserveInsight(metrics.InsightCached)
		return existing, nil
	}
	if s.gen == nil {
		metrics.ObserveInsight(metrics.InsightFailed)
		return nil, ErrUnavailable
	}

	fresh, err := s.gen.Generate(ctx, industry)
	if err != nil {
		if existing != nil {
			s.log.Warn("insight refresh failed, serving stale insight", "industry", industry, "error", err)
			metrics.ObserveInsight(metrics.InsightStale)
			return existing, nil
		}
		s.log.Warn("insight generation failed", "industry", industry, "error", err)
		metrics.ObserveInsight(metrics.InsightFailed)
		return nil, errors.Join(ErrUnavailable, err)
	}
	fresh.LastUpdated = now
	fresh.NextUpdate = now.Add(RefreshInterval)

	if existing != nil {
		fresh.ID = existing.ID
		if err := s.repo.UpdateInsight(ctx, fresh); err != nil {
			return nil, persistenceErr(store.OpUpdate, err)
		}
		s.log.Info("insight refreshed", "industry", industry)
		metrics.ObserveInsight(metrics.InsightRefreshed)
		return fresh, nil
	}

	err = s.repo.CreateInsight(ctx, fresh)
	if errors.Is(err, store.ErrDuplicate) {
		// Another request stored it first; theirs wins.
		winner, rerr := s.repo.InsightByIndustry(ctx, industry)
		if rerr != nil {
			return nil, persistenceErr(store.OpLoad, rerr)
		}
		if winner == nil {
			return nil, persistenceErr(store.OpSave, err)
		}
		metrics.ObserveInsight(metrics.InsightCached)
		return winner, nil
	}
	if err != nil {
		return nil, persistenceErr(store.OpSave, err)
	}
	s.log.Info("insight generated", "industry", industry)
	metrics.ObserveInsight(metrics.InsightGenerated)
	return fresh, nil
}

func persistenceErr(op string, err error) error {
	return &store.ErrPersistence{Entity: "industry insight", Op: op, Err: err}
}
