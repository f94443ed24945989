package llm

import (
	"strings"
)

// modelAliases maps the short names accepted in configuration to vendor
// model IDs. Anything not listed is sent to the vendor unchanged.
var modelAliases = map[string]map[string]string{
	"anthropic": {
		"claude-haiku":  "claude-haiku-4-5-20251001",
		"claude-sonnet": "claude-sonnet-4-5-20250929",
	},
	"gemini": {
		"gemini-flash":      "gemini-2.0-flash",
		"gemini-flash-lite": "gemini-2.0-flash-lite",
		"gemini-pro":        "gemini-2.5-pro",
	},
	"openai": {
		"gpt-mini": "gpt-4o-mini",
		"gpt":      "gpt-4o",
	},
}

// ResolveModel returns the vendor model ID for name.
func ResolveModel(vendor, name string) string {
	if id, ok := modelAliases[vendor][name]; ok {
		return id
	}
	return name
}

// Price is a model's list price in USD per million tokens.
type Price struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one call.
func (p Price) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*p.InputPerMTok + float64(outputTokens)*p.OutputPerMTok) / 1_000_000
}

// prices covers the models quizzes are realistically generated with.
// Dated snapshots resolve through their undated prefix.
var prices = map[string]Price{
	"claude-3-5-haiku":  {0.8, 4},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-1":   {15, 75},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"o4-mini":      {1.1, 4.4},

	"gemini-1.5-flash":      {0.075, 0.3},
	"gemini-1.5-pro":        {1.25, 5},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}

// PriceFor looks up a model's price. OpenRouter style "vendor/model" IDs
// are matched on the model part, and an unknown ID falls back to the
// longest known prefix, so "claude-haiku-4-5-20251001" is priced as
// "claude-haiku-4-5".
func PriceFor(model string) (Price, bool) {
	if i := strings.LastIndex(model, "/"); i >= 0 {
		model = model[i+1:]
	}
	if p, ok := prices[model]; ok {
		return p, true
	}

	best := ""
	for id := range prices {
		if strings.HasPrefix(model, id+"-") && len(id) > len(best) {
			best = id
		}
	}
	if best == "" {
		return Price{}, false
	}
	return prices[best], true
}
