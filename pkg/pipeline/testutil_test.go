package pipeline

import (
	"context"
)

// Test state types used across tests

// Counter is a simple state for testing incrementing.
type Counter struct {
	Value int
}

// Record is a richer state for testing execution order and journaling.
type Record struct {
	Trace []string
	Count int
}

// Helper stage functions

// increment is a handler that increments the counter.
func increment(ctx Context, s Counter) (Counter, error) {
	s.Value++
	return s, nil
}

// passthrough returns the state unchanged.
func passthrough[S any](ctx Context, s S) (S, error) {
	return s, nil
}

// makeTracingHandler creates a handler that appends its name to the
// state trace.
func makeTracingHandler(name string) Handler[Record] {
	return func(ctx Context, s Record) (Record, error) {
		s.Trace = append(append([]string(nil), s.Trace...), name)
		return s, nil
	}
}

// makeFailingHandler creates a handler that returns the given error.
func makeFailingHandler(err error) Handler[Record] {
	return func(ctx Context, s Record) (Record, error) {
		return s, err
	}
}

// makePanicHandler creates a handler that panics with the given value.
func makePanicHandler(value any) Handler[Record] {
	return func(ctx Context, s Record) (Record, error) {
		panic(value)
	}
}

// testCtx creates a simple test context.
func testCtx() Context {
	return NewContext(context.Background())
}
