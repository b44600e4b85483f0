package platform

import (
	"context"
	"errors"

	"github.com/trellisml/trellis/pkg/runs"
)

// RefreshRun pulls a run's latest state from the platform and applies it to
// the local record. Runs already in a terminal state are left untouched.
func RefreshRun(ctx context.Context, client Client, workspace string, run *runs.Run) error {
	if run.Status().IsTerminal() {
		return nil
	}

	status, err := client.GetRun(ctx, workspace, run.Id())
	if err != nil {
		return err
	}

	var runErr error
	if status.Error != "" {
		runErr = errors.New(status.Error)
	}
	run.SetStatus(runs.Status(status.Status), runErr)

	return nil
}
