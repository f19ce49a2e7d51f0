package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline/journal"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline/observability"
)

// Status describes the lifecycle of a Runner.
type Status int

const (
	// StatusIdle means Run() has not been called yet.
	StatusIdle Status = iota
	// StatusRunning means the pipeline is executing.
	StatusRunning
	// StatusCompleted means every stage finished successfully.
	StatusCompleted
	// StatusFailed means a stage failed or the run was cancelled.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Runner executes a compiled pipeline exactly once.
// Create one with NewRunner, call Run, then inspect Status and
// Completed. A Runner is not reusable; a second Run returns
// ErrRunnerReused. Use CompiledGraph.Run for fire-and-forget execution.
type Runner[S any] struct {
	graph *CompiledGraph[S]

	mu        sync.Mutex
	status    Status
	completed []string
}

// NewRunner creates a Runner for the given compiled graph.
func NewRunner[S any](cg *CompiledGraph[S]) *Runner[S] {
	return &Runner[S]{graph: cg}
}

// Status returns the current lifecycle state of the runner.
func (r *Runner[S]) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Completed returns the IDs of stages that have finished, in execution
// order. Safe to call after Run returns.
func (r *Runner[S]) Completed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.completed))
	copy(out, r.completed)
	return out
}

// Run executes every stage in the compiled order, threading the state
// value from one stage to the next.
//
// On success, returns the state after the final stage. On failure,
// returns the state as of the failure together with a *StageError (or
// *CancellationError) that carries the completed stage IDs.
//
// Execution flow, per stage:
//  1. Check for cancellation
//  2. Execute the stage handler with panic recovery
//  3. On handler error, halt: downstream stages do not run
//  4. Journal the state snapshot if journaling is enabled
func (r *Runner[S]) Run(ctx Context, state S, opts ...RunOption) (result S, runErr error) {
	if ctx == nil {
		return state, ErrNilContext
	}

	r.mu.Lock()
	if r.status != StatusIdle {
		r.mu.Unlock()
		return state, ErrRunnerReused
	}
	r.status = StatusRunning
	r.mu.Unlock()

	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.runID == "" {
		cfg.runID = ctx.RunID()
	}
	if cfg.journalStore != nil && cfg.runID == "" {
		r.setStatus(StatusFailed)
		return state, ErrJournalRunIDRequired
	}
	runID := cfg.runID

	startTime := time.Now()
	observability.LogRunStart(cfg.logger, runID, len(r.graph.order))

	var execCtx context.Context = ctx
	var runSpan trace.Span
	if cfg.tracingEnabled {
		execCtx, runSpan = cfg.spans.StartRunSpan(ctx, "pipeline", runID)
		defer func() {
			cfg.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	result, runErr = r.runAll(execCtx, ctx, state, &cfg)

	duration := time.Since(startTime)
	cfg.metrics.RecordPipelineRun(ctx, runErr == nil, duration)

	if runErr != nil {
		r.setStatus(StatusFailed)
		lastStage := ""
		switch e := runErr.(type) {
		case *StageError:
			lastStage = e.StageID
		case *CancellationError:
			lastStage = e.StageID
		}
		observability.LogRunError(cfg.logger, runID, runErr, float64(duration.Milliseconds()), lastStage)
	} else {
		r.setStatus(StatusCompleted)
		observability.LogRunComplete(cfg.logger, runID, float64(duration.Milliseconds()), len(r.completed))
	}

	return result, runErr
}

// runAll walks the compiled order sequentially.
// tracingCtx carries span context; pctx is the pipeline Context.
func (r *Runner[S]) runAll(tracingCtx context.Context, pctx Context, state S, cfg *runConfig) (S, error) {
	for _, id := range r.graph.order {
		// Check for cancellation before executing the stage
		select {
		case <-pctx.Done():
			return state, &CancellationError{
				StageID:   id,
				Completed: r.Completed(),
				State:     state,
				Cause:     pctx.Err(),
			}
		default:
		}

		observability.LogStageStart(cfg.logger, id)

		stageTracingCtx := tracingCtx
		var stageSpan trace.Span
		if cfg.tracingEnabled {
			stageTracingCtx, stageSpan = cfg.spans.StartStageSpan(tracingCtx, id)
		}

		stageStart := time.Now()
		newState, stageErr := r.executeStage(pctx, id, state)
		stageDuration := time.Since(stageStart)

		cfg.metrics.RecordStageExecution(stageTracingCtx, id, stageDuration, stageErr)
		if cfg.tracingEnabled {
			cfg.spans.EndSpanWithError(stageSpan, stageErr)
		}

		if stageErr != nil {
			observability.LogStageError(cfg.logger, id, stageErr)
			return newState, &StageError{
				StageID:   id,
				Completed: r.Completed(),
				State:     newState,
				Err:       stageErr,
			}
		}

		state = newState
		observability.LogStageComplete(cfg.logger, id, float64(stageDuration.Milliseconds()))
		r.markCompleted(id)

		if cfg.journalStore != nil {
			if err := r.recordJournal(pctx, cfg, id, state); err != nil {
				return state, err
			}
		}
	}

	return state, nil
}

// executeStage runs a single stage handler with panic recovery.
// Returns the new state and any error (including wrapped panics).
func (r *Runner[S]) executeStage(ctx Context, stageID string, state S) (result S, err error) {
	st, exists := r.graph.getStage(stageID)
	if !exists {
		// Cannot happen after a successful Compile().
		return state, fmt.Errorf("stage not found: %s", stageID)
	}

	stageCtx := ctx
	if ec, ok := ctx.(*executionContext); ok {
		stageCtx = ec.withStageID(stageID)
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = state
			err = &PanicError{
				StageID: stageID,
				Value:   rec,
				Stack:   string(debug.Stack()),
			}
		}
	}()

	return st.Run(stageCtx, state)
}

// recordJournal persists the post-stage state snapshot.
// Failures are non-fatal unless configured otherwise.
func (r *Runner[S]) recordJournal(ctx Context, cfg *runConfig, stageID string, state S) error {
	stateBytes, err := json.Marshal(state)
	if err != nil {
		if cfg.journalFailureFatal {
			return &JournalError{StageID: stageID, Op: "serialize", Err: err}
		}
		observability.LogJournalError(cfg.logger, stageID, "serialize", err)
		return nil
	}

	cfg.sequence++
	entry := journal.New(cfg.runID, stageID, cfg.sequence, stateBytes)

	data, err := entry.Marshal()
	if err != nil {
		if cfg.journalFailureFatal {
			return &JournalError{StageID: stageID, Op: "marshal", Err: err}
		}
		observability.LogJournalError(cfg.logger, stageID, "marshal", err)
		return nil
	}

	if err := cfg.journalStore.Save(cfg.runID, stageID, data); err != nil {
		if cfg.journalFailureFatal {
			return &JournalError{StageID: stageID, Op: "save", Err: err}
		}
		observability.LogJournalError(cfg.logger, stageID, "save", err)
		return nil
	}

	observability.LogJournal(cfg.logger, stageID, len(data))
	cfg.metrics.RecordJournalWrite(ctx, stageID, int64(len(data)))
	return nil
}

func (r *Runner[S]) setStatus(s Status) {
	r.mu.Lock()
	r.status = s
	r.mu.Unlock()
}

func (r *Runner[S]) markCompleted(id string) {
	r.mu.Lock()
	r.completed = append(r.completed, id)
	r.mu.Unlock()
}
