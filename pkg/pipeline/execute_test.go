package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRun_LinearFlow tests basic linear execution.
func TestRun_LinearFlow(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddFunc("inc1", increment).
		AddFunc("inc2", increment, "inc1").
		AddFunc("inc3", increment, "inc2").
		Compile()
	require.NoError(t, err)

	result, err := compiled.Run(testCtx(), Counter{Value: 0})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Value)
}

// TestRun_SingleStage tests single stage execution.
func TestRun_SingleStage(t *testing.T) {
	compiled, err := NewGraph[Counter]().
		AddFunc("only", increment).
		Compile()
	require.NoError(t, err)

	result, err := compiled.Run(testCtx(), Counter{Value: 10})

	require.NoError(t, err)
	assert.Equal(t, 11, result.Value)
}

// TestRun_StateThreading tests that each stage receives the previous
// stage's output.
func TestRun_StateThreading(t *testing.T) {
	compiled, err := NewGraph[Record]().
		AddFunc("a", makeTracingHandler("a")).
		AddFunc("b", makeTracingHandler("b"), "a").
		AddFunc("c", makeTracingHandler("c"), "b").
		Compile()
	require.NoError(t, err)

	result, err := compiled.Run(testCtx(), Record{})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, result.Trace)
}

// TestRun_ExecutionOrderMatchesCompiledOrder tests that stages run in
// the compiled topological order.
func TestRun_ExecutionOrderMatchesCompiledOrder(t *testing.T) {
	compiled, err := NewGraph[Record]().
		AddFunc("top", makeTracingHandler("top")).
		AddFunc("left", makeTracingHandler("left"), "top").
		AddFunc("right", makeTracingHandler("right"), "top").
		AddFunc("bottom", makeTracingHandler("bottom"), "left", "right").
		Compile()
	require.NoError(t, err)

	result, err := compiled.Run(testCtx(), Record{})

	require.NoError(t, err)
	assert.Equal(t, compiled.Order(), result.Trace)
}

// TestRun_NilContext tests that a nil context is rejected.
func TestRun_NilContext(t *testing.T) {
	compiled := NewGraph[Counter]().AddFunc("a", increment).MustCompile()

	_, err := NewRunner(compiled).Run(nil, Counter{})
	assert.ErrorIs(t, err, ErrNilContext)
}

// TestRun_HaltsOnError tests that a failing stage stops the run and
// downstream stages never execute.
func TestRun_HaltsOnError(t *testing.T) {
	boom := errors.New("boom")
	compiled, err := NewGraph[Record]().
		AddFunc("ok1", makeTracingHandler("ok1")).
		AddFunc("fail", makeFailingHandler(boom), "ok1").
		AddFunc("never", makeTracingHandler("never"), "fail").
		Compile()
	require.NoError(t, err)

	runner := NewRunner(compiled)
	result, err := runner.Run(testCtx(), Record{})

	require.Error(t, err)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "fail", stageErr.StageID)
	assert.Equal(t, []string{"ok1"}, stageErr.Completed)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"ok1"}, result.Trace)
	assert.Equal(t, StatusFailed, runner.Status())
	assert.Equal(t, []string{"ok1"}, runner.Completed())
}

// TestRun_StageErrorCarriesState tests that the partial state is
// available on the error.
func TestRun_StageErrorCarriesState(t *testing.T) {
	boom := errors.New("boom")
	compiled, err := NewGraph[Record]().
		AddFunc("ok", makeTracingHandler("ok")).
		AddFunc("fail", makeFailingHandler(boom), "ok").
		Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testCtx(), Record{})

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	state, ok := stageErr.State.(Record)
	require.True(t, ok)
	assert.Equal(t, []string{"ok"}, state.Trace)
}

// TestRun_PanicRecovery tests that a panicking handler becomes a
// PanicError instead of crashing the process.
func TestRun_PanicRecovery(t *testing.T) {
	compiled, err := NewGraph[Record]().
		AddFunc("boom", makePanicHandler("something broke")).
		Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testCtx(), Record{})

	require.Error(t, err)
	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "boom", panicErr.StageID)
	assert.Equal(t, "something broke", panicErr.Value)
	assert.Contains(t, panicErr.Stack, "goroutine")
}

// TestRun_Cancellation tests that a cancelled context halts the run
// before the next stage.
func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	compiled, err := NewGraph[Record]().
		AddFunc("first", func(c Context, s Record) (Record, error) {
			cancel()
			s.Trace = append(s.Trace, "first")
			return s, nil
		}).
		AddFunc("second", makeTracingHandler("second"), "first").
		Compile()
	require.NoError(t, err)

	runner := NewRunner(compiled)
	result, err := runner.Run(NewContext(ctx), Record{})

	require.Error(t, err)
	var cancelErr *CancellationError
	require.ErrorAs(t, err, &cancelErr)
	assert.Equal(t, "second", cancelErr.StageID)
	assert.Equal(t, []string{"first"}, cancelErr.Completed)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, []string{"first"}, result.Trace)
	assert.Equal(t, StatusFailed, runner.Status())
}

// TestRunner_SingleUse tests that a second Run is rejected.
func TestRunner_SingleUse(t *testing.T) {
	compiled := NewGraph[Counter]().AddFunc("a", increment).MustCompile()
	runner := NewRunner(compiled)

	_, err := runner.Run(testCtx(), Counter{})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, runner.Status())

	_, err = runner.Run(testCtx(), Counter{})
	assert.ErrorIs(t, err, ErrRunnerReused)
}

// TestRunner_StatusLifecycle tests idle and completed states.
func TestRunner_StatusLifecycle(t *testing.T) {
	compiled := NewGraph[Counter]().AddFunc("a", increment).MustCompile()
	runner := NewRunner(compiled)

	assert.Equal(t, StatusIdle, runner.Status())
	assert.Equal(t, "idle", runner.Status().String())

	_, err := runner.Run(testCtx(), Counter{})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, runner.Status())
	assert.Equal(t, []string{"a"}, runner.Completed())
}

// TestCompiledGraph_RunIsReusable tests that CompiledGraph.Run creates
// a fresh runner each call.
func TestCompiledGraph_RunIsReusable(t *testing.T) {
	compiled := NewGraph[Counter]().AddFunc("a", increment).MustCompile()

	for i := 0; i < 3; i++ {
		result, err := compiled.Run(testCtx(), Counter{Value: i})
		require.NoError(t, err)
		assert.Equal(t, i+1, result.Value)
	}
}

// TestRun_StageContextCarriesIDs tests that handlers see the run and
// stage IDs on their context.
func TestRun_StageContextCarriesIDs(t *testing.T) {
	var seenRunID, seenStageID string

	compiled, err := NewGraph[Counter]().
		AddFunc("probe", func(ctx Context, s Counter) (Counter, error) {
			seenRunID = ctx.RunID()
			seenStageID = ctx.StageID()
			return s, nil
		}).
		Compile()
	require.NoError(t, err)

	pctx := NewContext(context.Background(), WithContextRunID("run-42"))
	_, err = compiled.Run(pctx, Counter{})
	require.NoError(t, err)

	assert.Equal(t, "run-42", seenRunID)
	assert.Equal(t, "probe", seenStageID)
}

// TestRun_DefaultRunID tests that a run ID is generated when none is
// supplied.
func TestRun_DefaultRunID(t *testing.T) {
	var seen string
	compiled, err := NewGraph[Counter]().
		AddFunc("probe", func(ctx Context, s Counter) (Counter, error) {
			seen = ctx.RunID()
			return s, nil
		}).
		Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testCtx(), Counter{})
	require.NoError(t, err)

	assert.NotEmpty(t, seen)
	assert.False(t, strings.ContainsAny(seen, " \t\n"))
}
