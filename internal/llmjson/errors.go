package llmjson

import (
	"errors"
	"fmt"
	"strings"
)

// errNotComposite is recorded when a strategy decodes a scalar or null.
var errNotComposite = errors.New("decoded value is not an object or array")

// StrategyFailure records why one strategy did not produce a value.
type StrategyFailure struct {
	Strategy string
	Err      error
}

func (f StrategyFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Strategy, f.Err)
}

// ErrParseFailure is returned when every strategy failed.
type ErrParseFailure struct {
	Failures []StrategyFailure
}

func (e *ErrParseFailure) Error() string {
	last := e.Last()
	if last == nil {
		return "JSON parsing failed"
	}
	return fmt.Sprintf("JSON parsing failed: %v", last)
}

// Last returns the error of the final strategy attempted.
func (e *ErrParseFailure) Last() error {
	if len(e.Failures) == 0 {
		return nil
	}
	return e.Failures[len(e.Failures)-1].Err
}

func (e *ErrParseFailure) Unwrap() error {
	return e.Last()
}

// Summary joins all strategy failures into one line for logs.
func (e *ErrParseFailure) Summary() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}
