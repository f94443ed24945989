package insights

import "github.com/abhisek/prepcoach/internal/llm"

// Demand levels and market outlooks the model may report.
var (
	DemandLevels   = []any{"High", "Medium", "Low"}
	MarketOutlooks = []any{"Positive", "Neutral", "Negative"}
)

func stringList(minItems int) map[string]any {
	return map[string]any{
		"type":     "array",
		"minItems": minItems,
		"items":    map[string]any{"type": "string", "minLength": 1},
	}
}

// Schema describes the model's industry insight reply.
var Schema = &llm.Schema{
	Name:        "industry-insight",
	Description: "Salary bands, demand and trends for one industry",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"salaryRanges": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"role":     map[string]any{"type": "string", "minLength": 1},
						"min":      map[string]any{"type": "number", "minimum": 0},
						"max":      map[string]any{"type": "number", "minimum": 0},
						"median":   map[string]any{"type": "number", "minimum": 0},
						"location": map[string]any{"type": "string"},
					},
					"required": []any{"role", "min", "max", "median"},
				},
			},
			"growthRate":        map[string]any{"type": "number"},
			"demandLevel":       map[string]any{"type": "string", "enum": DemandLevels},
			"topSkills":         stringList(1),
			"marketOutlook":     map[string]any{"type": "string", "enum": MarketOutlooks},
			"keyTrends":         stringList(1),
			"recommendedSkills": stringList(1),
		},
		"required": []any{
			"salaryRanges", "growthRate", "demandLevel", "topSkills",
			"marketOutlook", "keyTrends", "recommendedSkills",
		},
	},
}
