package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/prepcoach/internal/llm"
	"github.com/abhisek/prepcoach/internal/llmjson"
	"github.com/abhisek/prepcoach/internal/logger"
	"github.com/abhisek/prepcoach/internal/store"
)

// Generator asks the model for an industry's market summary.
type Generator struct {
	provider    llm.Provider
	parser      *llmjson.Parser
	maxTokens   int
	temperature float64
	log         *logger.Logger
}

func NewGenerator(provider llm.Provider, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "insights")
	return &Generator{
		provider:    provider,
		parser:      llmjson.NewParser(log),
		maxTokens:   2048,
		temperature: 0.4,
		log:         log,
	}
}

// report is the generated part of an insight, as the model returns it.
type report struct {
	SalaryRanges      []store.SalaryRange `json:"salaryRanges"`
	GrowthRate        float64             `json:"growthRate"`
	DemandLevel       string              `json:"demandLevel"`
	TopSkills         []string            `json:"topSkills"`
	MarketOutlook     string              `json:"marketOutlook"`
	KeyTrends         []string            `json:"keyTrends"`
	RecommendedSkills []string            `json:"recommendedSkills"`
}

// Generate returns a fresh insight for industry with the generated fields
// filled in. The reply goes through the same recovery parser as quizzes and
// must then match Schema.
func (g *Generator) Generate(ctx context.Context, industry string) (*store.IndustryInsight, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeIndustryInsight)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(buildPrompt(industry)),
		JSONOutput:  true,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("industry insight: %w", err)
	}

	parsed, err := g.parser.ParseResponse(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("industry insight: %w", err)
	}
	if err := llm.ValidateValue(Schema, parsed.Value); err != nil {
		return nil, fmt.Errorf("industry insight: %w", err)
	}

	raw, err := json.Marshal(parsed.Value)
	if err != nil {
		return nil, fmt.Errorf("industry insight: %w", err)
	}
	var r report
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("industry insight: %w", err)
	}

	return &store.IndustryInsight{
		Industry:          industry,
		SalaryRanges:      r.SalaryRanges,
		GrowthRate:        r.GrowthRate,
		DemandLevel:       r.DemandLevel,
		TopSkills:         r.TopSkills,
		MarketOutlook:     r.MarketOutlook,
		KeyTrends:         r.KeyTrends,
		RecommendedSkills: r.RecommendedSkills,
	}, nil
}
