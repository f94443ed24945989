package assessment

import (
	"context"

	"github.com/abhisek/prepcoach/internal/logger"
	"github.com/abhisek/prepcoach/internal/metrics"
	"github.com/abhisek/prepcoach/internal/quizgen"
	"github.com/abhisek/prepcoach/internal/store"
)

// Service saves and lists the signed-in user's assessments.
type Service struct {
	users quizgen.UserSource
	repo  store.AssessmentRepo
	tips  *TipGenerator
	log   *logger.Logger
}

func NewService(users quizgen.UserSource, repo store.AssessmentRepo, tips *TipGenerator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{users: users, repo: repo, tips: tips, log: log.With("component", "assessment")}
}

// SaveQuizResult scores the submission, attaches an improvement tip when
// at least one answer is wrong and stores the record. Tip failures are
// logged and leave the tip nil; storage failures are returned as
// *ErrPersistence.
func (s *Service) SaveQuizResult(ctx context.Context, quiz quizgen.Quiz, answers []string, score float64) (*store.Assessment, error) {
	u, err := s.users.Current(ctx)
	if err != nil {
		return nil, err
	}

	results := Score(quiz, answers)
	a := &store.Assessment{
		UserID:         u.ID,
		QuizScore:      score,
		Questions:      results,
		Category:       store.CategoryTechnical,
		ImprovementTip: s.improvementTip(ctx, u.Industry, Incorrect(results)),
	}

	if err := s.repo.CreateAssessment(ctx, a); err != nil {
		s.log.Error("failed to save assessment", "user_id", u.ExternalID, "error", err)
		return nil, persistenceErr(OpSave, err)
	}

	metrics.ObserveScore(score)
	s.log.Info("assessment saved",
		"user_id", u.ExternalID, "assessment_id", a.ID, "score", score,
		"questions", len(results), "has_tip", a.ImprovementTip != nil)
	return a, nil
}

func (s *Service) improvementTip(ctx context.Context, industry string, wrong []store.QuestionResult) *string {
	if len(wrong) == 0 || s.tips == nil {
		metrics.ObserveTip(metrics.TipSkipped)
		return nil
	}

	tip, err := s.tips.Generate(ctx, industry, wrong)
	switch {
	case err != nil:
		s.log.Warn("improvement tip unavailable", "error", err)
		metrics.ObserveTip(metrics.TipFailed)
		return nil
	case tip == "":
		s.log.Warn("improvement tip was empty")
		metrics.ObserveTip(metrics.TipEmpty)
		return nil
	}
	metrics.ObserveTip(metrics.TipOK)
	return &tip
}

// Assessments returns the current user's assessments, oldest first.
func (s *Service) Assessments(ctx context.Context) ([]store.Assessment, error) {
	u, err := s.users.Current(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.AssessmentsByUser(ctx, u.ID)
	if err != nil {
		return nil, persistenceErr(OpList, err)
	}
	return list, nil
}
