package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records pipeline metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordStageExecution records a stage execution with its duration and error status.
	RecordStageExecution(ctx context.Context, stageID string, duration time.Duration, err error)

	// RecordPipelineRun records a pipeline run completion.
	RecordPipelineRun(ctx context.Context, success bool, duration time.Duration)

	// RecordJournalWrite records a journal save operation.
	RecordJournalWrite(ctx context.Context, stageID string, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	stageExecutions metric.Int64Counter
	stageLatency    metric.Float64Histogram
	stageErrors     metric.Int64Counter
	pipelineRuns    metric.Int64Counter
	pipelineLatency metric.Float64Histogram
	journalSize     metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("pipeline")

	stageExecutions, err := meter.Int64Counter("pipeline.stage.executions",
		metric.WithDescription("Number of stage executions"),
	)
	if err != nil {
		return nil, err
	}

	stageLatency, err := meter.Float64Histogram("pipeline.stage.latency_ms",
		metric.WithDescription("Stage execution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	stageErrors, err := meter.Int64Counter("pipeline.stage.errors",
		metric.WithDescription("Number of stage execution errors"),
	)
	if err != nil {
		return nil, err
	}

	pipelineRuns, err := meter.Int64Counter("pipeline.runs",
		metric.WithDescription("Number of pipeline runs"),
	)
	if err != nil {
		return nil, err
	}

	pipelineLatency, err := meter.Float64Histogram("pipeline.run.latency_ms",
		metric.WithDescription("Pipeline run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	journalSize, err := meter.Int64Histogram("pipeline.journal.size_bytes",
		metric.WithDescription("Journal entry size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		stageExecutions: stageExecutions,
		stageLatency:    stageLatency,
		stageErrors:     stageErrors,
		pipelineRuns:    pipelineRuns,
		pipelineLatency: pipelineLatency,
		journalSize:     journalSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordStageExecution records a stage execution.
func (m *otelMetrics) RecordStageExecution(ctx context.Context, stageID string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("stage_id", stageID),
	}

	m.stageExecutions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.stageLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.stageErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordPipelineRun records a pipeline run.
func (m *otelMetrics) RecordPipelineRun(ctx context.Context, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}
	m.pipelineRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.pipelineLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordJournalWrite records a journal save.
func (m *otelMetrics) RecordJournalWrite(ctx context.Context, stageID string, sizeBytes int64) {
	attrs := []attribute.KeyValue{
		attribute.String("stage_id", stageID),
	}
	m.journalSize.Record(ctx, sizeBytes, metric.WithAttributes(attrs...))
}
