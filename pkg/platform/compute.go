package platform

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/logrusorgru/aurora"
	"github.com/trellisml/trellis/pkg/spec"
)

var errStillProvisioning = errors.New("compute target is still provisioning")

// EnsureComputeTarget resolves a compute target by name, provisioning it when
// it does not exist. The call is idempotent: an existing target is returned
// as-is without re-provisioning. A freshly created target is polled until it
// reaches a terminal provisioning state or the timeout elapses.
func EnsureComputeTarget(ctx context.Context, client Client, workspace string, computeSpec *spec.ComputeSpec, timeout time.Duration, pollInterval time.Duration) (*ComputeTarget, error) {
	if computeSpec.Name == "" {
		return nil, errors.New("compute target name is not set")
	}

	target, err := client.GetComputeTarget(ctx, workspace, computeSpec.Name)
	if err == nil {
		return target, nil
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	log.Println(fmt.Sprintf("%s -> %s", computeSpec.Name, aurora.BrightCyan("Provisioning compute target...")))

	target, err = client.CreateComputeTarget(ctx, workspace, computeSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to provision compute target '%s': %w", computeSpec.Name, err)
	}

	if target.ProvisioningState == ProvisioningStateSucceeded {
		return target, nil
	}

	target, err = waitForProvisioning(ctx, client, workspace, computeSpec.Name, timeout, pollInterval)
	if err != nil {
		return nil, err
	}

	log.Println(fmt.Sprintf("%s -> %s", computeSpec.Name, aurora.Green("Compute target ready")))

	return target, nil
}

func waitForProvisioning(ctx context.Context, client Client, workspace string, name string, timeout time.Duration, pollInterval time.Duration) (*ComputeTarget, error) {
	var target *ComputeTarget

	poll := backoff.NewExponentialBackOff()
	poll.InitialInterval = pollInterval
	poll.Multiplier = 1
	poll.RandomizationFactor = 0
	poll.MaxElapsedTime = timeout

	operation := func() error {
		var err error
		target, err = client.GetComputeTarget(ctx, workspace, name)
		if err != nil {
			return backoff.Permanent(err)
		}

		switch target.ProvisioningState {
		case ProvisioningStateSucceeded:
			return nil
		case ProvisioningStateFailed:
			return backoff.Permanent(fmt.Errorf("provisioning of compute target '%s' failed", name))
		}

		return errStillProvisioning
	}

	err := backoff.Retry(operation, backoff.WithContext(poll, ctx))
	if err != nil {
		if errors.Is(err, errStillProvisioning) {
			return nil, &ProvisioningTimeoutError{Target: name, Timeout: timeout}
		}
		return nil, err
	}

	return target, nil
}
