// Package llm defines the text generation interface used by pipeline
// stages, together with a Gemini HTTP client implementation.
package llm

import (
	"context"
	"fmt"
)

// Request configures a single text generation call.
type Request struct {
	// System is the optional system instruction.
	System string `json:"system,omitempty"`
	// Prompt is the user prompt.
	Prompt string `json:"prompt"`

	// Temperature overrides the client default when non-zero.
	Temperature float64 `json:"temperature,omitempty"`
	// MaxOutputTokens overrides the client default when non-zero.
	MaxOutputTokens int `json:"max_output_tokens,omitempty"`
}

// Response is the output of a generation call.
type Response struct {
	// Text is the generated text. Never empty on success.
	Text string `json:"text"`
	// Model is the model that produced the text.
	Model string `json:"model"`
	// Usage tracks token consumption, when the provider reports it.
	Usage Usage `json:"usage"`
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add accumulates another usage record into this one.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}

// Generator produces text from a prompt.
// Implementations must honor context cancellation and return a *Error
// on failure. A response with empty Text is a failure, not a success.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Error reports a failed generation call.
type Error struct {
	// Op is the operation that failed (e.g., "generate").
	Op string
	// Err is the underlying error.
	Err error
	// Retryable indicates whether retrying might succeed
	// (rate limits, server errors, timeouts).
	Retryable bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}
