package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// CategoryTechnical is the only assessment category produced today.
const CategoryTechnical = "Technical"

// QuestionResult is one graded quiz question as stored with an assessment.
type QuestionResult struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	UserAnswer    string `json:"userAnswer,omitempty"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
}

// Assessment is a scored quiz submission. Rows are never updated.
type Assessment struct {
	ID             int              `json:"id"`
	UserID         int              `json:"userId"`
	QuizScore      float64          `json:"quizScore"`
	Questions      []QuestionResult `json:"questions"`
	Category       string           `json:"category"`
	ImprovementTip *string          `json:"improvementTip"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// AssessmentRepo writes and lists assessments.
type AssessmentRepo interface {
	// CreateAssessment inserts a and fills in its ID and CreatedAt.
	CreateAssessment(ctx context.Context, a *Assessment) error

	// AssessmentsByUser returns a user's assessments, oldest first.
	AssessmentsByUser(ctx context.Context, userID int) ([]Assessment, error)
}

type assessmentRepo struct {
	db *sql.DB
}

func (r *assessmentRepo) CreateAssessment(ctx context.Context, a *Assessment) error {
	questions := a.Questions
	if questions == nil {
		questions = []QuestionResult{}
	}
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	var tip any
	if a.ImprovementTip != nil {
		tip = *a.ImprovementTip
	}
	createdAt := time.Now().UTC()

	query, args := builder().Insert(assessmentsTable).
		Columns("user_id", "quiz_score", "questions", "category", "improvement_tip", "created_at").
		Values(a.UserID, a.QuizScore, string(questionsJSON), a.Category, tip, createdAt).
		Returning("id").
		Query()

	var id int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	a.ID = id
	a.CreatedAt = createdAt
	a.Questions = questions
	return nil
}

func (r *assessmentRepo) AssessmentsByUser(ctx context.Context, userID int) ([]Assessment, error) {
	b := builder()
	query, args := b.Select("id", "user_id", "quiz_score", "questions", "category", "improvement_tip", "created_at").
		From(b.Table(assessmentsTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Asc("created_at"), entsql.Asc("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var (
			a         Assessment
			questions []byte
			tip       sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizScore, &questions, &a.Category, &tip, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if err := json.Unmarshal(questions, &a.Questions); err != nil {
			return nil, fmt.Errorf("decode questions of assessment %d: %w", a.ID, err)
		}
		if tip.Valid {
			s := tip.String
			a.ImprovementTip = &s
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	return out, nil
}
