package pipeline

// Handler is the signature for all stage handlers.
// Handlers receive the execution context and current state,
// and return the updated state (or the same state) and any error.
//
// The state parameter is passed by value. Handlers should modify and
// return a new state value, not rely on pointer mutation. When the state
// contains reference types (maps, slices), handlers must copy before
// writing so earlier snapshots stay intact.
//
// Example:
//
//	func enrich(ctx pipeline.Context, s Doc) (Doc, error) {
//	    s.Revision++
//	    return s, nil
//	}
type Handler[S any] func(ctx Context, state S) (S, error)

// Stage describes a single unit of work in a pipeline.
// A stage declares the stages it depends on rather than the stages that
// follow it. The executor derives the run order from these declarations.
type Stage[S any] struct {
	// ID uniquely identifies the stage within its graph.
	ID string

	// DependsOn lists the stage IDs that must complete before this
	// stage runs. Empty means the stage is a root.
	DependsOn []string

	// Run is the stage handler. Must not be nil.
	Run Handler[S]
}
