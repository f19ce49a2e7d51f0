package pipeline

import (
	"fmt"
	"strings"
	"sync"
)

// Graph is a mutable builder for creating pipelines.
// Use NewGraph to create a new graph, then chain AddStage calls to
// declare the stages and their dependencies.
//
// Graph is NOT thread-safe during building. Use a single goroutine
// to construct the graph, then call Compile() to create an immutable
// CompiledGraph that can be safely shared.
//
// Example:
//
//	graph := pipeline.NewGraph[MyState]().
//	    AddStage(pipeline.Stage[MyState]{ID: "fetch", Run: fetch}).
//	    AddStage(pipeline.Stage[MyState]{ID: "report", DependsOn: []string{"fetch"}, Run: report})
//
//	compiled, err := graph.Compile()
type Graph[S any] struct {
	mu     sync.RWMutex
	stages map[string]Stage[S]
	// order preserves insertion order for deterministic scheduling.
	order []string
}

// NewGraph creates a new graph builder for state type S.
// The type parameter S defines the state that flows through the pipeline.
func NewGraph[S any]() *Graph[S] {
	return &Graph[S]{
		stages: make(map[string]Stage[S]),
	}
}

// AddStage adds a stage to the graph.
// Returns the graph for method chaining.
//
// Panics if:
//   - the stage ID is empty
//   - the stage ID contains whitespace (space, tab, newline)
//   - the handler is nil
//   - the stage ID already exists in the graph
//
// Dependency validation happens at Compile() time, not here.
// This allows stages to be added in any order.
func (g *Graph[S]) AddStage(st Stage[S]) *Graph[S] {
	if st.ID == "" {
		panic("pipeline: stage ID cannot be empty")
	}

	if strings.ContainsAny(st.ID, " \t\n\r") {
		panic("pipeline: stage ID cannot contain whitespace")
	}

	if st.Run == nil {
		panic("pipeline: stage handler cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.stages[st.ID]; exists {
		panic(fmt.Sprintf("pipeline: duplicate stage ID: %s", st.ID))
	}

	// Copy the dependency slice so later caller mutation cannot leak in.
	deps := make([]string, len(st.DependsOn))
	copy(deps, st.DependsOn)
	st.DependsOn = deps

	g.stages[st.ID] = st
	g.order = append(g.order, st.ID)
	return g
}

// AddFunc adds a stage from its parts. Shorthand for AddStage.
func (g *Graph[S]) AddFunc(id string, fn Handler[S], dependsOn ...string) *Graph[S] {
	return g.AddStage(Stage[S]{ID: id, DependsOn: dependsOn, Run: fn})
}
