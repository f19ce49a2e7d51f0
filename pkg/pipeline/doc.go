/*
Package pipeline provides a dependency-declared DAG execution engine.

# Overview

pipeline is a small orchestration library for linear-state workflows:
stages declare the stages they depend on, the engine derives a
deterministic run order, and a single state value threads through every
stage. It is built for content-generation pipelines where each stage
transforms shared state, with:
  - Type-safe generics for state management
  - Compile-time validation of the dependency graph (unknown
    dependencies, cycles)
  - Deterministic ordering: ties between ready stages break by the
    order stages were added
  - Structured logging, OpenTelemetry metrics and tracing, all opt-in
  - Per-stage state journaling (memory, SQLite)

# Basic Usage

Declare stages with dependencies, then compile and run:

	type State struct {
	    Input  string
	    Output string
	}

	func process(ctx pipeline.Context, s State) (State, error) {
	    s.Output = "Processed: " + s.Input
	    return s, nil
	}

	func main() {
	    graph := pipeline.NewGraph[State]().
	        AddFunc("process", process).
	        AddFunc("report", report, "process")

	    compiled, err := graph.Compile()
	    if err != nil {
	        log.Fatal(err)
	    }

	    ctx := pipeline.NewContext(context.Background())
	    result, err := compiled.Run(ctx, State{Input: "hello"})
	    if err != nil {
	        log.Fatal(err)
	    }
	    fmt.Println(result.Output)
	}

# Ordering

Compile() fixes the execution order once: a topological sort of the
dependency graph where, whenever several stages are ready, the one added
first runs first. The same build sequence always yields the same order.
Plan() exposes the dependency levels for reporting; execution itself is
strictly sequential.

# Error Handling

A stage failure halts the run immediately. The returned error carries
the failing stage, the stages that completed, and the state at failure:

	result, err := compiled.Run(ctx, state)
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
	    log.Printf("stage %s failed after %v: %v",
	        stageErr.StageID, stageErr.Completed, stageErr.Err)
	}

Panics in handlers are recovered and converted to PanicError with a
stack trace, wrapped in the StageError.

# Journaling

Record a state snapshot after each completed stage for post-run
inspection:

	store, err := journal.NewSQLiteStore("./runs.db")
	defer store.Close()

	result, err := compiled.Run(ctx, state,
	    pipeline.WithJournal(store),
	    pipeline.WithRunID("run-123"))

Journal write failures are logged and ignored unless
WithJournalFailureFatal is set.

# Thread Safety

  - Graph[S] is NOT safe for concurrent use during construction
  - CompiledGraph[S] IS safe for concurrent use (immutable)
  - A Runner executes exactly once; create a new one per run

# Subpackages

  - journal: per-run state snapshot storage (memory, SQLite)
  - observability: logging, metrics, and tracing helpers
*/
package pipeline
