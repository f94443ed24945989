package assessment

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/prepcoach/internal/llm"
	"github.com/abhisek/prepcoach/internal/store"
)

// TipGenerator asks the model for a short remediation tip.
type TipGenerator struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

func NewTipGenerator(provider llm.Provider) *TipGenerator {
	return &TipGenerator{provider: provider, maxTokens: 256, temperature: 0.7}
}

// Generate returns the trimmed tip text for the wrong answers. An empty
// reply is returned as "" without error.
func (g *TipGenerator) Generate(ctx context.Context, industry string, wrong []store.QuestionResult) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeImprovementTip)

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:    llm.UserPrompt(buildTipPrompt(industry, wrong)),
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("improvement tip: %w", err)
	}
	return resp.Text(), nil
}

func buildTipPrompt(industry string, wrong []store.QuestionResult) string {
	items := make([]string, len(wrong))
	for i, r := range wrong {
		answer := r.UserAnswer
		if answer == "" {
			answer = "(no answer)"
		}
		items[i] = fmt.Sprintf("Question: %q\nCorrect Answer: %q\nUser Answer: %q", r.Question, r.CorrectAnswer, answer)
	}

	label := industry
	if label == "" {
		label = "general"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The user got the following %s technical interview questions wrong:\n\n", label)
	b.WriteString(strings.Join(items, "\n\n"))
	b.WriteString("\n\nBased on these mistakes, provide a concise, specific improvement tip.\n")
	b.WriteString("Focus on the knowledge gaps revealed by these wrong answers.\n")
	b.WriteString("Keep the response under 2 sentences and make it encouraging.\n")
	b.WriteString("Don't explicitly mention the mistakes, instead focus on what to learn/practice.\n")
	b.WriteString("Return only the improvement tip text.")
	return b.String()
}
