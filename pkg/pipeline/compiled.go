package pipeline

// CompiledGraph is an immutable, executable pipeline.
// It is created by calling Compile() on a Graph builder.
//
// CompiledGraph is thread-safe and can be shared across multiple Run()
// calls. The graph structure cannot be modified after compilation.
//
// Use the introspection methods (Order, Plan, Dependencies, etc.) to
// examine the structure for debugging or reporting.
type CompiledGraph[S any] struct {
	stages map[string]Stage[S]

	// Pre-computed at compile time
	order      []string
	levels     [][]string
	dependents map[string][]string
}

// Order returns the deterministic execution order.
// The returned slice is a copy and safe to modify.
func (cg *CompiledGraph[S]) Order() []string {
	out := make([]string, len(cg.order))
	copy(out, cg.order)
	return out
}

// Plan returns the dependency levels of the graph: level 0 holds the
// roots, each later level holds stages whose dependencies are satisfied
// by earlier levels. Execution is still strictly sequential; the plan
// exists for reporting and inspection.
func (cg *CompiledGraph[S]) Plan() [][]string {
	out := make([][]string, len(cg.levels))
	for i, level := range cg.levels {
		out[i] = make([]string, len(level))
		copy(out[i], level)
	}
	return out
}

// StageIDs returns all stage identifiers, in execution order.
func (cg *CompiledGraph[S]) StageIDs() []string {
	return cg.Order()
}

// HasStage checks if a stage exists in the graph.
func (cg *CompiledGraph[S]) HasStage(id string) bool {
	_, exists := cg.stages[id]
	return exists
}

// Dependencies returns the declared upstream stage IDs for the given
// stage. Returns nil for roots or unknown stages.
func (cg *CompiledGraph[S]) Dependencies(id string) []string {
	st, exists := cg.stages[id]
	if !exists || len(st.DependsOn) == 0 {
		return nil
	}
	out := make([]string, len(st.DependsOn))
	copy(out, st.DependsOn)
	return out
}

// Dependents returns the stage IDs that declare the given stage as a
// dependency. Returns nil for leaves or unknown stages.
func (cg *CompiledGraph[S]) Dependents(id string) []string {
	deps := cg.dependents[id]
	if len(deps) == 0 {
		return nil
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// Run executes the pipeline once with a fresh Runner.
// Convenience for callers that do not need Runner status inspection.
func (cg *CompiledGraph[S]) Run(ctx Context, state S, opts ...RunOption) (S, error) {
	return NewRunner(cg).Run(ctx, state, opts...)
}

// getStage returns the stage for the given ID.
// Used internally by the executor.
func (cg *CompiledGraph[S]) getStage(id string) (Stage[S], bool) {
	st, exists := cg.stages[id]
	return st, exists
}
