package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Context provides execution context to stage handlers.
// It extends context.Context with pipeline-specific metadata.
//
// Context is immutable after creation. The executor creates derived
// contexts for each stage with the StageID set and the logger enriched.
type Context interface {
	context.Context

	// Logger returns the configured logger, enriched with run and stage
	// context. Never returns nil - defaults to slog.Default() if not
	// configured.
	Logger() *slog.Logger

	// RunID returns the unique identifier for this execution run.
	// Auto-generated if not configured.
	RunID() string

	// StageID returns the stage currently being executed.
	// Empty string outside of stage execution.
	StageID() string
}

// executionContext is the internal implementation of Context.
type executionContext struct {
	context.Context

	logger  *slog.Logger
	runID   string
	stageID string
}

// Logger returns the configured logger.
func (c *executionContext) Logger() *slog.Logger {
	return c.logger
}

// RunID returns the run identifier.
func (c *executionContext) RunID() string {
	return c.runID
}

// StageID returns the current stage identifier.
func (c *executionContext) StageID() string {
	return c.stageID
}

// ContextOption configures a Context.
type ContextOption func(*executionContext)

// WithLogger sets the logger for the context.
// The logger is enriched with run_id and stage_id during execution.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *executionContext) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithContextRunID sets the run identifier for the context.
// If not set, a UUID is auto-generated. This is used for logging and
// tracing. For journaling, use WithRunID() as a RunOption with Run().
func WithContextRunID(id string) ContextOption {
	return func(c *executionContext) {
		c.runID = id
	}
}

// NewContext creates an execution context from a standard context.
//
// Example:
//
//	ctx := pipeline.NewContext(context.Background(),
//	    pipeline.WithLogger(myLogger),
//	    pipeline.WithContextRunID("run-123"))
func NewContext(ctx context.Context, opts ...ContextOption) Context {
	ec := &executionContext{
		Context: ctx,
		logger:  slog.Default(),
		runID:   uuid.New().String(),
	}

	for _, opt := range opts {
		opt(ec)
	}

	return ec
}

// withStageID returns a new context with the given stage ID set.
// Used internally by the executor to enrich the context per-stage.
func (c *executionContext) withStageID(stageID string) *executionContext {
	return &executionContext{
		Context: c.Context,
		logger:  c.logger.With("run_id", c.runID, "stage_id", stageID),
		runID:   c.runID,
		stageID: stageID,
	}
}
