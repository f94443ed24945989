package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	usersTable       = "users"
	assessmentsTable = "assessments"
	llmEventsTable   = "llm_request_events"
	insightsTable    = "industry_insights"
	sequenceTable    = "global_sequence"
)

var (
	userColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "external_id", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString, Default: ""},
		{Name: "email", Type: field.TypeString, Default: ""},
		{Name: "image_url", Type: field.TypeString, Default: ""},
		{Name: "industry", Type: field.TypeString, Default: ""},
		{Name: "experience", Type: field.TypeInt, Nullable: true},
		{Name: "bio", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "skills", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	usersSchema = &schema.Table{
		Name:       usersTable,
		Columns:    userColumns,
		PrimaryKey: []*schema.Column{userColumns[0]},
	}

	assessmentColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "quiz_score", Type: field.TypeFloat64},
		{Name: "questions", Type: field.TypeJSON},
		{Name: "category", Type: field.TypeString},
		{Name: "improvement_tip", Type: field.TypeString, Size: 2147483647, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "user_id", Type: field.TypeInt},
	}
	assessmentsSchema = &schema.Table{
		Name:       assessmentsTable,
		Columns:    assessmentColumns,
		PrimaryKey: []*schema.Column{assessmentColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "assessments_users_assessments",
				Columns:    []*schema.Column{assessmentColumns[6]},
				RefColumns: []*schema.Column{userColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "assessment_user_id_created_at",
				Columns: []*schema.Column{assessmentColumns[6], assessmentColumns[5]},
			},
		},
	}

	llmEventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmEventsSchema = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventColumns,
		PrimaryKey: []*schema.Column{llmEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventColumns[5]}},
		},
	}

	insightColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "industry", Type: field.TypeString, Unique: true},
		{Name: "salary_ranges", Type: field.TypeJSON},
		{Name: "growth_rate", Type: field.TypeFloat64},
		{Name: "demand_level", Type: field.TypeString},
		{Name: "top_skills", Type: field.TypeJSON},
		{Name: "market_outlook", Type: field.TypeString},
		{Name: "key_trends", Type: field.TypeJSON},
		{Name: "recommended_skills", Type: field.TypeJSON},
		{Name: "last_updated", Type: field.TypeTime},
		{Name: "next_update", Type: field.TypeTime},
	}
	insightsSchema = &schema.Table{
		Name:       insightsTable,
		Columns:    insightColumns,
		PrimaryKey: []*schema.Column{insightColumns[0]},
	}

	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceSchema = &schema.Table{
		Name:       sequenceTable,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	tables = []*schema.Table{usersSchema, assessmentsSchema, llmEventsSchema, insightsSchema, sequenceSchema}
)

func init() {
	assessmentsSchema.ForeignKeys[0].RefTable = usersSchema
}

// migrate brings the database schema up to date. It only adds tables,
// columns and indexes; nothing is dropped.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// builder returns the SQL builder for the store's dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
