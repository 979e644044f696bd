package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := New(ErrorTypeStorage, "spill failed")
	assert.Equal(t, "storage: spill failed", err.Error())

	wrapped := Wrap(fmt.Errorf("disk full"), ErrorTypeStorage, "spill failed")
	assert.Equal(t, "storage: spill failed: disk full", wrapped.Error())
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeNotFound, "column not stored").
		WithDetail("column", "sales").
		WithDetail("known", 3)

	assert.Equal(t, "sales", err.Details["column"])
	assert.Equal(t, 3, err.Details["known"])
}

func TestWrapPreservesTypeChecksAndCause(t *testing.T) {
	cause := New(ErrorTypeUndefined, "all paired differences are zero")
	wrapped := Wrap(cause, ErrorTypeData, "column analysis failed")

	assert.True(t, IsType(wrapped, ErrorTypeData))
	assert.True(t, stderrors.Is(wrapped, cause))
	assert.Equal(t, cause.Stack, wrapped.Stack)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeInternal, "ignored"))
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsNotFound(Newf(ErrorTypeNotFound, "column %q not found", "a")))
	assert.True(t, IsUndefined(New(ErrorTypeUndefined, "zero variance")))
	assert.False(t, IsNotFound(fmt.Errorf("plain error")))
	assert.False(t, IsType(nil, ErrorTypeInternal))
}

func TestStackCaptured(t *testing.T) {
	err := New(ErrorTypeInternal, "boom")
	require.NotEmpty(t, err.Stack)
	assert.Contains(t, err.Stack[0].Function, "TestStackCaptured")
}
