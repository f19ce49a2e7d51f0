package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycleError_Message(t *testing.T) {
	err := &CycleError{Stages: []string{"a", "b", "c"}}
	assert.Equal(t, "dependency cycle involving stages: a, b, c", err.Error())
}

func TestStageError_Message(t *testing.T) {
	inner := errors.New("boom")
	err := &StageError{StageID: "load", Err: inner}

	assert.Equal(t, "stage load: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestPanicError_Message(t *testing.T) {
	err := &PanicError{StageID: "load", Value: 42, Stack: "stack"}
	assert.Equal(t, "stage load panicked: 42", err.Error())
}

func TestCancellationError_Message(t *testing.T) {
	cause := errors.New("deadline")
	err := &CancellationError{StageID: "load", Cause: cause}

	assert.Equal(t, "cancelled before stage load: deadline", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestDependencyError_Message(t *testing.T) {
	err := &DependencyError{StageID: "answer", Missing: "questions"}
	assert.Equal(t, "stage answer: missing dependency result: questions", err.Error())
}

func TestJournalError_Message(t *testing.T) {
	inner := errors.New("disk full")
	err := &JournalError{StageID: "load", Op: "save", Err: inner}

	assert.Equal(t, "journal save at stage load: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestStageError_UnwrapsThroughChain(t *testing.T) {
	dep := &DependencyError{StageID: "answer", Missing: "questions"}
	err := &StageError{StageID: "answer", Err: dep}

	var depErr *DependencyError
	assert.ErrorAs(t, err, &depErr)
	assert.Equal(t, "questions", depErr.Missing)
}
