// Package profile manages the signed-in user's onboarding profile: the
// industry the quizzes target, experience, bio and skills.
package profile

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/prepcoach/internal/identity"
	"github.com/abhisek/prepcoach/internal/logger"
	"github.com/abhisek/prepcoach/internal/store"
)

var (
	// ErrUnauthorized means no user id could be resolved for the caller.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound means the caller is authenticated but has no user row.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotOnboarded means the user has not chosen an industry yet.
	ErrNotOnboarded = errors.New("profile has no industry")
	// ErrNoInsights means the service was built without an insight source.
	ErrNoInsights   = errors.New("industry insights are not configured")
)

// InsightSource returns the market insight for an industry, generating it
// when missing.
type InsightSource interface {
	ForIndustry(ctx context.Context, industry string) (*store.IndustryInsight, error)
}

// Input is a profile update as submitted by the user.
type Input struct {
	Industry   string   `json:"industry" validate:"required,max=100"`
	Experience *int     `json:"experience,omitempty" validate:"omitempty,min=0,max=60"`
	Bio        string   `json:"bio,omitempty" validate:"max=2000"`
	Skills     []string `json:"skills,omitempty" validate:"max=50,dive,required,max=60"`
}

// ValidationError reports the fields of an Input that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, rule := range e.Fields {
		parts = append(parts, field+" "+rule)
	}
	return "invalid profile: " + strings.Join(parts, ", ")
}

// Service resolves the current user and reads or updates their profile.
type Service struct {
	users    store.UserRepo
	resolver identity.Resolver
	insights InsightSource
	validate *validator.Validate
	log      *logger.Logger
}

func NewService(users store.UserRepo, resolver identity.Resolver, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{users: users, resolver: resolver, validate: v, log: log.With("component", "profile")}
}

// WithInsights makes Update prepare the industry insight for the chosen
// industry and enables Insight.
func (s *Service) WithInsights(src InsightSource) *Service {
	s.insights = src
	return s
}

func persistenceErr(op string, err error) error {
	return &store.ErrPersistence{Entity: "profile", Op: op, Err: err}
}

// Current returns the signed-in user's row.
func (s *Service) Current(ctx context.Context) (*store.User, error) {
	id, ok := s.resolver.UserID(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	u, err := s.users.UserByExternalID(ctx, id)
	if err != nil {
		return nil, persistenceErr(store.OpLoad, err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// EnsureUser creates the row for the signed-in user if it does not exist.
// The external id always comes from the resolver.
func (s *Service) EnsureUser(ctx context.Context, nu store.NewUser) (*store.User, error) {
	id, ok := s.resolver.UserID(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	nu.ExternalID = id
	u, err := s.users.EnsureUser(ctx, nu)
	if err != nil {
		return nil, persistenceErr(store.OpSave, err)
	}
	return u, nil
}

// Update validates in and stores it on the signed-in user's row.
func (s *Service) Update(ctx context.Context, in Input) (*store.User, error) {
	id, ok := s.resolver.UserID(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	in = normalize(in)
	if err := s.validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make(map[string]string, len(ve))
			for _, fe := range ve {
				fields[fe.Field()] = fe.Tag()
			}
			return nil, &ValidationError{Fields: fields}
		}
		return nil, err
	}

	u, err := s.users.UpdateProfile(ctx, id, store.ProfileUpdate{
		Industry:   in.Industry,
		Experience: in.Experience,
		Bio:        in.Bio,
		Skills:     in.Skills,
	})
	if err != nil {
		return nil, persistenceErr(store.OpUpdate, err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	s.log.Info("profile updated", "user_id", id, "industry", u.Industry, "skills", len(u.Skills))

	// The profile is saved either way; a missing insight is generated again
	// on the next read.
	if s.insights != nil {
		if _, err := s.insights.ForIndustry(ctx, u.Industry); err != nil {
			s.log.Warn("industry insight not prepared", "industry", u.Industry, "error", err)
		}
	}
	return u, nil
}

// Insight returns the market insight for the signed-in user's industry.
func (s *Service) Insight(ctx context.Context) (*store.IndustryInsight, error) {
	u, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !IsOnboarded(u) {
		return nil, ErrNotOnboarded
	}
	if s.insights == nil {
		return nil, fmt.Errorf("insight for %q: %w", u.Industry, ErrNoInsights)
	}
	return s.insights.ForIndustry(ctx, u.Industry)
}

// Onboarded reports whether the signed-in user has chosen an industry.
func (s *Service) Onboarded(ctx context.Context) (bool, error) {
	u, err := s.Current(ctx)
	if err != nil {
		return false, err
	}
	return IsOnboarded(u), nil
}

// IsOnboarded reports whether u has chosen an industry.
func IsOnboarded(u *store.User) bool {
	return u != nil && u.Industry != ""
}

func normalize(in Input) Input {
	in.Industry = strings.ToLower(strings.TrimSpace(in.Industry))
	in.Bio = strings.TrimSpace(in.Bio)

	skills := make([]string, 0, len(in.Skills))
	seen := make(map[string]bool, len(in.Skills))
	for _, sk := range in.Skills {
		sk = strings.TrimSpace(sk)
		key := strings.ToLower(sk)
		if sk == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, sk)
	}
	in.Skills = skills
	return in
}
