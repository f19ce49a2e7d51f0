package pipeline

import (
	"log/slog"

	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline/journal"
	"github.com/Sanjuu2004/kasparro-agentic-Sanju-K/pkg/pipeline/observability"
)

// runConfig holds configuration for pipeline execution.
type runConfig struct {
	runID   string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	tracingEnabled bool

	journalStore        journal.Store
	journalFailureFatal bool
	sequence            int
}

// defaultRunConfig returns the default execution configuration.
// Observability defaults to no-ops; a nil logger disables run logging.
func defaultRunConfig() runConfig {
	return runConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// RunOption configures execution behavior.
type RunOption func(*runConfig)

// WithRunID sets the run identifier used for journaling and logging.
// Required when journaling is enabled via WithJournal.
func WithRunID(id string) RunOption {
	return func(c *runConfig) {
		c.runID = id
	}
}

// WithRunLogger enables structured run and stage logging on the given
// logger. Without this option the run emits no logs of its own; stage
// handlers still log through their Context.
func WithRunLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for the run.
// Uses the global OTel meter provider.
func WithMetrics() RunOption {
	return func(c *runConfig) {
		c.metrics = observability.NewMetricsRecorder()
	}
}

// WithMetricsRecorder sets a custom metrics recorder.
// Useful for testing with a recording fake.
func WithMetricsRecorder(m observability.MetricsRecorder) RunOption {
	return func(c *runConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing enables OpenTelemetry spans for the run and each stage.
// Uses the global OTel tracer provider.
func WithTracing() RunOption {
	return func(c *runConfig) {
		c.spans = observability.NewSpanManager()
		c.tracingEnabled = true
	}
}

// WithJournal enables per-stage state journaling to the given store.
// A run ID must also be set via WithRunID. Journal failures are logged
// and ignored unless WithJournalFailureFatal is set.
func WithJournal(store journal.Store) RunOption {
	return func(c *runConfig) {
		c.journalStore = store
	}
}

// WithJournalFailureFatal makes journal write failures abort the run.
// Default: failures are logged as warnings and execution continues.
func WithJournalFailureFatal() RunOption {
	return func(c *runConfig) {
		c.journalFailureFatal = true
	}
}
