package llmjson

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/prepcoach/internal/logger"
)

// Strategy names, in the order DefaultStrategies applies them.
const (
	StrategyDirect  = "direct"
	StrategyRepair  = "repair"
	StrategyExtract = "extract"
	StrategyQuotes  = "quotes"
)

// Strategy is one repair-and-decode attempt.
type Strategy struct {
	Name  string
	Parse func(text string) (any, error)
}

// DefaultStrategies returns the strategies from least to most invasive.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: StrategyDirect, Parse: parseDirect},
		{Name: StrategyRepair, Parse: parseRepaired},
		{Name: StrategyExtract, Parse: parseExtracted},
		{Name: StrategyQuotes, Parse: parseQuoteNormalized},
	}
}

// Result is a successfully decoded value and the attempts that preceded it.
type Result struct {
	Value    any
	Strategy string
	Failures []StrategyFailure
}

// Parser folds a list of strategies over its input; the first strategy that
// yields an object or array wins.
type Parser struct {
	strategies []Strategy
	log        *logger.Logger
}

// NewParser creates a parser with the default strategies. A nil logger
// discards diagnostics.
func NewParser(log *logger.Logger) *Parser {
	return NewParserWithStrategies(log, DefaultStrategies())
}

func NewParserWithStrategies(log *logger.Logger, strategies []Strategy) *Parser {
	if log == nil {
		log = logger.Nop()
	}
	return &Parser{strategies: strategies, log: log}
}

// Parse tries every strategy on text in order. When all of them fail it
// returns *ErrParseFailure.
func (p *Parser) Parse(text string) (*Result, error) {
	var failures []StrategyFailure
	for _, s := range p.strategies {
		v, err := s.Parse(text)
		if err == nil && !isComposite(v) {
			err = errNotComposite
		}
		if err != nil {
			p.log.Debug("parse strategy failed", "strategy", s.Name, "error", err)
			failures = append(failures, StrategyFailure{Strategy: s.Name, Err: err})
			continue
		}
		return &Result{Value: v, Strategy: s.Name, Failures: failures}, nil
	}
	return nil, &ErrParseFailure{Failures: failures}
}

// ParseResponse normalizes a raw model reply and parses it.
func (p *Parser) ParseResponse(raw string) (*Result, error) {
	return p.Parse(Normalize(raw))
}

func isComposite(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

func decode(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func parseDirect(text string) (any, error) {
	return decode(text)
}

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

func parseRepaired(text string) (any, error) {
	fixed := trailingCommaRe.ReplaceAllString(text, "$1")
	fixed = escapeInsideStrings(fixed)
	return decode(fixed)
}

var objectSpanRe = regexp.MustCompile(`\{[\s\S]*\}`)

func parseExtracted(text string) (any, error) {
	span := objectSpanRe.FindString(text)
	if span == "" {
		return nil, fmt.Errorf("no object span found")
	}
	return decode(span)
}

var (
	doubledQuotesRe  = regexp.MustCompile(`""([^"]*)""`)
	quotedBracketsRe = regexp.MustCompile(`"\[([^\]]*)\]"`)
)

func parseQuoteNormalized(text string) (any, error) {
	fixed := doubledQuotesRe.ReplaceAllString(text, `"$1"`)
	fixed = quotedBracketsRe.ReplaceAllString(fixed, "[$1]")
	return decode(fixed)
}

// escapeInsideStrings walks the text tracking string literals and escapes
// raw control characters inside them. A quote inside a literal only closes
// it when the next non-space character is structural (',' ':' '}' ']') or
// the input ends; any other quote is escaped.
func escapeInsideStrings(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 16)

	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			b.WriteByte(c)
			continue
		}
		if escaped {
			escaped = false
			b.WriteByte(c)
			continue
		}
		switch c {
		case '\\':
			escaped = true
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			if closesString(text[i+1:]) {
				inString = false
				b.WriteByte(c)
			} else {
				b.WriteString(`\"`)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func closesString(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ',', ':', '}', ']':
		return true
	}
	return false
}
