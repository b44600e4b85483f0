package runs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	run := NewRun("run-1", "attrition")

	assert.Equal(t, "run-1", run.Id())
	assert.Equal(t, "attrition", run.Pipeline())
	assert.Equal(t, StatusNotStarted, run.Status())
	assert.True(t, run.End().IsZero())

	run.SetStatus(StatusRunning, nil)
	assert.Equal(t, StatusRunning, run.Status())
	assert.False(t, run.Status().IsTerminal())
	assert.True(t, run.End().IsZero())

	run.SetStatus(StatusFailed, errors.New("step failed"))
	assert.Equal(t, StatusFailed, run.Status())
	assert.True(t, run.Status().IsTerminal())
	assert.Error(t, run.Err())
	assert.False(t, run.End().IsZero())
}
