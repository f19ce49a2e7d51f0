package pipeline

import (
	"errors"
	"fmt"
)

// Compile validates the graph and creates an executable CompiledGraph.
// Returns an error if validation fails. Multiple errors are joined together.
//
// Validation checks (in order):
//  1. The graph must contain at least one stage
//  2. Every dependency must reference an existing stage
//  3. No stage may depend on itself
//  4. The dependency graph must be acyclic
//
// Compile also fixes the execution order: a topological sort where ties
// between ready stages are broken by insertion order. The order is fully
// deterministic for a given build sequence.
func (g *Graph[S]) Compile() (*CompiledGraph[S], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var errs []error

	if len(g.order) == 0 {
		errs = append(errs, ErrNoStages)
	}

	for _, id := range g.order {
		for _, dep := range g.stages[id].DependsOn {
			if dep == id {
				errs = append(errs, fmt.Errorf("stage '%s' depends on itself", id))
				continue
			}
			if _, exists := g.stages[dep]; !exists {
				errs = append(errs, fmt.Errorf("%w: stage '%s' depends on unknown stage '%s'", ErrStageNotFound, id, dep))
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	order, cycle := g.topoSort()
	if cycle != nil {
		return nil, cycle
	}

	return g.buildCompiledGraph(order), nil
}

// MustCompile is like Compile but panics on error.
// Intended for statically known graphs wired at startup.
func (g *Graph[S]) MustCompile() *CompiledGraph[S] {
	cg, err := g.Compile()
	if err != nil {
		panic(fmt.Sprintf("pipeline: compile failed: %v", err))
	}
	return cg
}

// topoSort computes the deterministic execution order.
// Among stages whose dependencies are all satisfied, the one added
// earliest is always scheduled next. Returns a CycleError if any stages
// can never become ready.
func (g *Graph[S]) topoSort() ([]string, *CycleError) {
	indegree := make(map[string]int, len(g.order))
	dependents := make(map[string][]string, len(g.order))
	for _, id := range g.order {
		indegree[id] = len(g.stages[id].DependsOn)
		for _, dep := range g.stages[id].DependsOn {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	scheduled := make(map[string]bool, len(g.order))
	order := make([]string, 0, len(g.order))

	for len(order) < len(g.order) {
		next := ""
		for _, id := range g.order {
			if !scheduled[id] && indegree[id] == 0 {
				next = id
				break
			}
		}
		if next == "" {
			// Remaining stages all wait on each other.
			var cycle []string
			for _, id := range g.order {
				if !scheduled[id] {
					cycle = append(cycle, id)
				}
			}
			return nil, &CycleError{Stages: cycle}
		}

		scheduled[next] = true
		order = append(order, next)
		for _, dep := range dependents[next] {
			indegree[dep]--
		}
	}

	return order, nil
}

// buildLevels groups stages into dependency levels: level 0 holds the
// roots, level n+1 holds stages whose dependencies all sit at level n or
// below. Within a level, stages keep insertion order. Assumes the graph
// already passed cycle detection.
func (g *Graph[S]) buildLevels() [][]string {
	indegree := make(map[string]int, len(g.order))
	dependents := make(map[string][]string, len(g.order))
	for _, id := range g.order {
		indegree[id] = len(g.stages[id].DependsOn)
		for _, dep := range g.stages[id].DependsOn {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var levels [][]string
	remaining := len(g.order)
	placed := make(map[string]bool, len(g.order))

	for remaining > 0 {
		var level []string
		for _, id := range g.order {
			if !placed[id] && indegree[id] == 0 {
				level = append(level, id)
			}
		}
		if len(level) == 0 {
			break
		}
		for _, id := range level {
			placed[id] = true
			for _, dep := range dependents[id] {
				indegree[dep]--
			}
		}
		levels = append(levels, level)
		remaining -= len(level)
	}

	return levels
}

// buildCompiledGraph creates the immutable CompiledGraph from the builder state.
func (g *Graph[S]) buildCompiledGraph(order []string) *CompiledGraph[S] {
	stages := make(map[string]Stage[S], len(g.stages))
	for id, st := range g.stages {
		deps := make([]string, len(st.DependsOn))
		copy(deps, st.DependsOn)
		st.DependsOn = deps
		stages[id] = st
	}

	dependents := make(map[string][]string, len(order))
	for _, id := range order {
		for _, dep := range stages[id].DependsOn {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	return &CompiledGraph[S]{
		stages:     stages,
		order:      order,
		levels:     g.buildLevels(),
		dependents: dependents,
	}
}
