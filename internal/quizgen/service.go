package quizgen

import (
	"context"

	"github.com/abhisek/prepcoach/internal/store"
)

// UserSource resolves the signed-in user. profile.Service satisfies it.
type UserSource interface {
	Current(ctx context.Context) (*store.User, error)
}

// Service generates quizzes for the signed-in user's profile.
type Service struct {
	users UserSource
	gen   *Generator
}

func NewService(users UserSource, gen *Generator) *Service {
	return &Service{users: users, gen: gen}
}

// GenerateQuiz returns a quiz for the current user. Only identity and
// profile lookup errors are returned; generation problems fall back.
func (s *Service) GenerateQuiz(ctx context.Context) (Quiz, error) {
	u, err := s.users.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.gen.Generate(ctx, GenerateInput{Industry: u.Industry, Skills: u.Skills}), nil
}
