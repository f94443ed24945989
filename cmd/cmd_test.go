package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepcoach/internal/quizgen"
	"github.com/abhisek/prepcoach/internal/store"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("PREPCOACH_LLM_PROVIDER", "mock")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), "prepcoach %v", args)
	return out.String()
}

func TestProfileSetAndShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prep.db")

	out := run(t, "--db", db, "--user", "alice", "profile", "set", "--industry", " FinTech ", "--skills", "go,Go,sql")
	assert.Contains(t, out, "Profile updated.")
	assert.Contains(t, out, "Industry:    fintech")
	assert.Contains(t, out, "Skills:      go, sql")

	out = run(t, "--db", db, "--user", "alice", "profile", "show")
	assert.Contains(t, out, "User:        alice")
	assert.Contains(t, out, "Onboarded:   true")
}

func TestQuizGenerateJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prep.db")

	out := run(t, "--db", db, "--user", "bob", "quiz", "generate", "--json")

	var got struct {
		Questions quizgen.Quiz `json:"questions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, quizgen.FallbackQuiz("", nil), got.Questions)
}

func TestHistoryEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prep.db")
	out := run(t, "--db", db, "--user", "carol", "history")
	assert.Contains(t, out, "No quizzes taken yet.")
}

func TestVersion(t *testing.T) {
	assert.Contains(t, run(t, "version"), "prepcoach (devel)")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "héll", truncate("héllo", 4))
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
	assert.Equal(t, "industry (required), skills[0] (required)",
		describeFields(map[string]string{"skills[0]": "required", "industry": "required"}))

	assert.Equal(t, "alice", headerStatus(&store.User{ExternalID: "alice"}))
	assert.Equal(t, "Alice · fintech", headerStatus(&store.User{ExternalID: "a", Name: "Alice", Industry: "fintech"}))
}

func TestCostGrid(t *testing.T) {
	g, unpriced := costGrid([]store.LLMUsage{
		{Model: "gemini-2.0-flash", Calls: 3, InputTokens: 1000, OutputTokens: 500},
		{Model: "homegrown-7b", Calls: 1, InputTokens: 10, OutputTokens: 10},
	})
	assert.Equal(t, []string{"homegrown-7b"}, unpriced)
	assert.Equal(t, "total (partial)", g.footer[0])

	out := g.render()
	assert.Contains(t, out, "gemini-2.0-flash")
	assert.Contains(t, out, "?")
}

func TestPurposeGridTotals(t *testing.T) {
	g := purposeGrid([]store.LLMUsage{
		{Purpose: "quiz-gen", Calls: 2, InputTokens: 100, OutputTokens: 40},
		{Purpose: "improvement-tip", Calls: 1, InputTokens: 30, OutputTokens: 10},
	})
	assert.Equal(t, []string{"total", "3", "130", "50", ""}, g.footer)
	assert.Len(t, g.rows, 2)
}

func TestLLMListEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prep.db")
	assert.Contains(t, run(t, "--db", db, "llm", "list"), "No LLM events found.")
}

func TestWriteInsight(t *testing.T) {
	in := &store.IndustryInsight{
		Industry:      "fintech",
		SalaryRanges:  []store.SalaryRange{{Role: "Backend Engineer", Min: 90000, Median: 120000, Max: 160000, Location: "Remote"}},
		GrowthRate:    6.5,
		DemandLevel:   "high",
		MarketOutlook: "positive",
		TopSkills:     []string{"go", "sql"},
		KeyTrends:     []string{"open banking"},
	}

	var out bytes.Buffer
	writeInsight(&out, in)
	s := out.String()
	assert.Contains(t, s, "Industry:     fintech")
	assert.Contains(t, s, "Growth:       6.5%")
	assert.Contains(t, s, "Backend Engineer")
	assert.Contains(t, s, "120k")
	assert.Contains(t, s, "Top skills:\n  - go\n  - sql")
	assert.NotContains(t, s, "Recommended:")
}
