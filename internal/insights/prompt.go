package insights

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a labour market analyst. You reply with a single JSON object and nothing else."

func buildPrompt(industry string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the current state of the %s industry.\n\n", industry)
	b.WriteString("Return ONLY a JSON object of this shape:\n")
	b.WriteString(`{
  "salaryRanges": [{"role": "string", "min": 0, "max": 0, "median": 0, "location": "string"}],
  "growthRate": 0,
  "demandLevel": "High" | "Medium" | "Low",
  "topSkills": ["string"],
  "marketOutlook": "Positive" | "Neutral" | "Negative",
  "keyTrends": ["string"],
  "recommendedSkills": ["string"]
}`)
	b.WriteString("\n\nInclude at least 5 common roles in salaryRanges, with yearly amounts in USD.\n")
	b.WriteString("growthRate is the expected yearly growth in percent.\n")
	b.WriteString("List at least 5 top skills and 5 key trends.\n")
	b.WriteString("No markdown, no notes, no text outside the JSON.")
	return b.String()
}
