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

// User is a profile keyed by the identity provider's subject.
type User struct {
	ID         int
	ExternalID string
	Name       string
	Email      string
	ImageURL   string
	Industry   string
	Experience *int
	Bio        string
	Skills     []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewUser carries the fields known when a user is first seen.
type NewUser struct {
	ExternalID string
	Name       string
	Email      string
	ImageURL   string
}

// ProfileUpdate replaces the onboarding fields of a profile.
type ProfileUpdate struct {
	Industry   string
	Experience *int
	Bio        string
	Skills     []string
}

// UserRepo reads and writes user profiles.
type UserRepo interface {
	// EnsureUser returns the user for u.ExternalID, creating it if needed.
	// Existing rows are returned unchanged.
	EnsureUser(ctx context.Context, u NewUser) (*User, error)

	// UserByExternalID returns nil, nil when no such user exists.
	UserByExternalID(ctx context.Context, externalID string) (*User, error)

	// UpdateProfile returns nil, nil when no such user exists.
	UpdateProfile(ctx context.Context, externalID string, p ProfileUpdate) (*User, error)
}

type userRepo struct {
	db *sql.DB
}

var userSelectColumns = []string{
	"id", "external_id", "name", "email", "image_url", "industry",
	"experience", "bio", "skills", "created_at", "updated_at",
}

func (r *userRepo) EnsureUser(ctx context.Context, u NewUser) (*User, error) {
	if u.ExternalID == "" {
		return nil, errors.New("external id is required")
	}

	now := time.Now().UTC()
	query, args := builder().Insert(usersTable).
		Columns("external_id", "name", "email", "image_url", "skills", "created_at", "updated_at").
		Values(u.ExternalID, u.Name, u.Email, u.ImageURL, "[]", now, now).
		OnConflict(entsql.ConflictColumns("external_id"), entsql.DoNothing()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	user, err := r.UserByExternalID(ctx, u.ExternalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q missing after insert", u.ExternalID)
	}
	return user, nil
}

func (r *userRepo) UserByExternalID(ctx context.Context, externalID string) (*User, error) {
	b := builder()
	t := b.Table(usersTable)
	query, args := b.Select(userSelectColumns...).
		From(t).
		Where(entsql.EQ("external_id", externalID)).
		Limit(1).
		Query()

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, externalID string, p ProfileUpdate) (*User, error) {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("encode skills: %w", err)
	}

	upd := builder().Update(usersTable).
		Set("industry", p.Industry).
		Set("bio", p.Bio).
		Set("skills", string(skillsJSON)).
		Set("updated_at", time.Now().UTC())
	if p.Experience != nil {
		upd = upd.Set("experience", *p.Experience)
	} else {
		upd = upd.SetNull("experience")
	}
	query, args := upd.Where(entsql.EQ("external_id", externalID)).Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, nil
	}
	return r.UserByExternalID(ctx, externalID)
}

func scanUser(row *sql.Row) (*User, error) {
	var (
		u          User
		experience sql.NullInt64
		skills     []byte
	)
	err := row.Scan(&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.ImageURL, &u.Industry,
		&experience, &u.Bio, &skills, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if experience.Valid {
		years := int(experience.Int64)
		u.Experience = &years
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &u.Skills); err != nil {
			return nil, fmt.Errorf("decode skills: %w", err)
		}
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return &u, nil
}
