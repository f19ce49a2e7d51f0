// Package extract pulls structured JSON out of free-form model output.
//
// Model responses rarely arrive as clean JSON: they come wrapped in
// prose, markdown fences, or arrive slightly malformed. The extractors
// here try progressively harder - direct parse, then the first balanced
// JSON span in the text, then automated repair - and report failure as
// a plain "not found" rather than an error.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// JSON extracts the first JSON value from free-form text.
//
// Attempts, in order:
//  1. Parse the whole text (after trimming whitespace) as JSON
//  2. Parse the first balanced {...} or [...] span found in the text
//
// Returns the decoded value and true on success, or (nil, false) when
// no parseable JSON is present. Extraction never validates shape;
// callers decide what the value must look like.
func JSON(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v, true
	}

	span, ok := firstSpan(trimmed)
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal([]byte(span), &v); err != nil {
		return nil, false
	}
	return v, true
}

// Decode extracts a JSON value from free-form text and unmarshals it
// into T. It tries the same steps as JSON, then falls back to repairing
// the candidate span (unquoted keys, single quotes, trailing commas)
// before giving up.
func Decode[T any](text string) (T, error) {
	var result T

	trimmed := strings.TrimSpace(text)

	candidate := trimmed
	if span, ok := firstSpan(trimmed); ok {
		candidate = span
	}

	err := json.Unmarshal([]byte(candidate), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(candidate)
	if repairErr != nil {
		return result, err
	}

	var repairedResult T
	if repairedErr := json.Unmarshal([]byte(repaired), &repairedResult); repairedErr != nil {
		return result, err
	}
	return repairedResult, nil
}

// firstSpan returns the first balanced {...} or [...] span in text.
// The scan is string-aware: braces inside JSON string literals do not
// count toward nesting.
func firstSpan(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", false
	}

	open := text[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
