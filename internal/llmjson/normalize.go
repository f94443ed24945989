// Package llmjson recovers JSON values from free-text model replies.
//
// Models wrap payloads in markdown fences, surround them with prose and emit
// near-JSON with trailing commas or raw newlines inside strings. Normalize
// narrows a reply to the span that looks like one JSON value and Parser
// applies a fixed sequence of increasingly invasive repairs until one of them
// decodes to an object or array.
package llmjson

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("```(?:json)?\\n?")

// Normalize strips code fences and cuts the text down to the span between
// the earliest '{' or '[' and the latest '}' or ']'. When no opening
// character exists the head is kept; when no closing character exists the
// tail is kept. The result is not validated.
func Normalize(raw string) string {
	s := fenceRe.ReplaceAllString(raw, "")
	s = strings.TrimSpace(s)

	if start := strings.IndexAny(s, "{["); start > 0 {
		s = s[start:]
	}
	if end := strings.LastIndexAny(s, "}]"); end >= 0 {
		s = s[:end+1]
	}
	return s
}
