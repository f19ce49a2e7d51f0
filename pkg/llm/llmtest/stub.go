// Package llmtest provides a scripted Generator for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/llm"
)

// Stub is a Generator that replays scripted responses in order.
// It records every request it receives. Safe for concurrent use.
//
// Script entries are consumed one per call; when the script is
// exhausted the Stub keeps returning the last entry. An empty Stub
// fails every call.
type Stub struct {
	mu       sync.Mutex
	script   []Step
	calls    []llm.Request
	position int
}

// Step is one scripted outcome.
type Step struct {
	// Text is returned when Err is nil.
	Text string
	// Err, when set, fails the call.
	Err error
}

// NewStub creates a Stub replaying the given steps.
func NewStub(steps ...Step) *Stub {
	return &Stub{script: steps}
}

// Respond creates a Stub that answers every call with the given text.
func Respond(text string) *Stub {
	return NewStub(Step{Text: text})
}

// Fail creates a Stub that fails every call with the given error.
// A nil err defaults to a generic failure.
func Fail(err error) *Stub {
	if err == nil {
		err = errors.New("scripted failure")
	}
	return NewStub(Step{Err: err})
}

// Generate implements llm.Generator.
func (s *Stub) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &llm.Error{Op: "generate", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, req)

	if len(s.script) == 0 {
		return nil, &llm.Error{Op: "generate", Err: errors.New("stub has no script")}
	}

	step := s.script[min(s.position, len(s.script)-1)]
	s.position++

	if step.Err != nil {
		return nil, &llm.Error{Op: "generate", Err: step.Err}
	}
	if step.Text == "" {
		return nil, &llm.Error{Op: "generate", Err: errors.New("scripted response is empty")}
	}

	return &llm.Response{Text: step.Text, Model: "stub"}, nil
}

// Calls returns a copy of the requests received so far.
func (s *Stub) Calls() []llm.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Request, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns the number of Generate calls received.
func (s *Stub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
