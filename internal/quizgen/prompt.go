package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced technical interviewer writing multiple choice practice questions.
Respond with a single JSON object and nothing else.`

// buildPrompt constructs the quiz request for input.
func buildPrompt(input GenerateInput, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d technical interview questions for a %s professional", count, industryLabel(input.Industry))
	if skills := nonEmpty(input.Skills); len(skills) > 0 {
		fmt.Fprintf(&b, " with expertise in %s", strings.Join(skills, ", "))
	}
	b.WriteString(".\n\n")

	fmt.Fprintf(&b, "Each question should be multiple choice with %d options.\n\n", OptionCount)
	b.WriteString("IMPORTANT: Return ONLY valid JSON without any markdown formatting, explanations, or additional text.\n\n")
	b.WriteString(`Use this exact JSON structure:
{
  "questions": [
    {
      "question": "string",
      "options": ["string", "string", "string", "string"],
      "correctAnswer": "string",
      "explanation": "string"
    }
  ]
}

Make sure:
- All strings are properly quoted
- No trailing commas
- No unescaped quotes within strings
- correctAnswer is copied exactly from one of the options
- Valid JSON format`)

	return b.String()
}

func industryLabel(industry string) string {
	if industry == "" {
		return "general"
	}
	return industry
}

func nonEmpty(ss []string) []string {
	var out []string
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
