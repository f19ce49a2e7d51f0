package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for graph building and compilation.
var (
	// ErrNoStages indicates Compile() was called on an empty graph.
	ErrNoStages = errors.New("graph has no stages")

	// ErrStageNotFound indicates a dependency references an unknown stage.
	ErrStageNotFound = errors.New("stage not found")
)

// Sentinel errors for execution.
var (
	// ErrNilContext indicates Run() was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrRunnerReused indicates Run() was called twice on the same Runner.
	ErrRunnerReused = errors.New("runner already used")

	// ErrJournalRunIDRequired indicates journaling was enabled without a run ID.
	ErrJournalRunIDRequired = errors.New("run ID required for journaling")
)

// CycleError reports a dependency cycle detected during compilation.
// Stages holds the IDs caught on the cycle, in insertion order.
type CycleError struct {
	// Stages are the stage IDs that participate in the cycle.
	Stages []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle involving stages: %s", strings.Join(e.Stages, ", "))
}

// StageError reports a fatal stage failure that halted the run.
// It preserves the partial state and completion history for inspection.
type StageError struct {
	// StageID is the identifier of the stage that failed.
	StageID string
	// Completed are the IDs of stages that finished before the failure,
	// in execution order.
	Completed []string
	// State is the state as of the failure (can type-assert to the actual type).
	State any
	// Err is the underlying error from the stage handler.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.StageID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StageError) Unwrap() error {
	return e.Err
}

// PanicError captures panic information from stage execution.
// It includes the stack trace for debugging.
type PanicError struct {
	// StageID is the identifier of the stage that panicked.
	StageID string
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("stage %s panicked: %v", e.StageID, e.Value)
}

// CancellationError captures the state when execution was cancelled.
// It preserves the state at the point of cancellation for recovery.
type CancellationError struct {
	// StageID is the stage that was about to execute.
	StageID string
	// Completed are the IDs of stages that finished before cancellation.
	Completed []string
	// State is the state at cancellation (can type-assert to the actual type).
	State any
	// Cause is the underlying cancellation cause (context.Canceled or
	// context.DeadlineExceeded).
	Cause error
}

// Error implements the error interface.
func (e *CancellationError) Error() string {
	return fmt.Sprintf("cancelled before stage %s: %v", e.StageID, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CancellationError) Unwrap() error {
	return e.Cause
}

// DependencyError indicates a stage could not run because an upstream
// stage left the state without a field the stage requires. It is always
// fatal: the executor wraps it in a StageError and halts the run.
type DependencyError struct {
	// StageID is the stage that could not proceed.
	StageID string
	// Missing names the state field or upstream result that was absent.
	Missing string
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	return fmt.Sprintf("stage %s: missing dependency result: %s", e.StageID, e.Missing)
}

// JournalError wraps errors from journal operations.
type JournalError struct {
	// StageID is the stage whose snapshot failed to record.
	StageID string
	// Op is the operation that failed ("serialize", "save").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *JournalError) Error() string {
	return fmt.Sprintf("journal %s at stage %s: %v", e.Op, e.StageID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *JournalError) Unwrap() error {
	return e.Err
}
