package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trellisml/trellis/pkg/runs"
)

func TestNewRun(t *testing.T) {
	t.Run("testNewRunRunning() -- A running run has no end or error", testNewRunRunningFunc())
	t.Run("testNewRunFailed() -- A failed run carries its end and error", testNewRunFailedFunc())
}

func testNewRunRunningFunc() func(*testing.T) {
	return func(t *testing.T) {
		run := runs.NewRun("run-1", "attrition")
		run.SetStatus(runs.StatusRunning, nil)

		apiRun := NewRun(run)

		assert.Equal(t, "run-1", apiRun.Id)
		assert.Equal(t, "attrition", apiRun.Pipeline)
		assert.Equal(t, "Running", apiRun.Status)
		assert.NotZero(t, apiRun.Start)
		assert.Zero(t, apiRun.End)
		assert.Empty(t, apiRun.Error)
	}
}

func testNewRunFailedFunc() func(*testing.T) {
	return func(t *testing.T) {
		run := runs.NewRun("run-2", "attrition")
		run.SetStatus(runs.StatusFailed, errors.New("step 'train' exited with code 1"))

		apiRun := NewRun(run)

		assert.Equal(t, "Failed", apiRun.Status)
		assert.NotZero(t, apiRun.End)
		assert.Equal(t, "step 'train' exited with code 1", apiRun.Error)
	}
}
