package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/trellisml/trellis/pkg/spec"
)

func TestEnsureComputeTarget(t *testing.T) {
	t.Run("existing target is returned without re-provisioning", testExistingTargetFunc())
	t.Run("missing target is created with the declared bounds", testCreateWithBoundsFunc())
	t.Run("second ensure with the same name performs no create", testIdempotencyFunc())
	t.Run("provisioning that never completes times out", testProvisioningTimeoutFunc())
	t.Run("failed provisioning is surfaced", testProvisioningFailedFunc())
}

func computeSpecForTest() *spec.ComputeSpec {
	return &spec.ComputeSpec{
		Name:        "cpu-cluster",
		VMSize:      "STANDARD_D2_V2",
		MinNodes:    0,
		MaxNodes:    4,
		IdleSeconds: 1200,
	}
}

func testExistingTargetFunc() func(*testing.T) {
	return func(t *testing.T) {
		createCalls := 0
		client := &MockPlatformClient{
			GetComputeTargetHandler: func(ctx context.Context, workspace string, name string) (*ComputeTarget, error) {
				return &ComputeTarget{Name: name, ProvisioningState: ProvisioningStateSucceeded}, nil
			},
			CreateComputeTargetHandler: func(ctx context.Context, workspace string, computeSpec *spec.ComputeSpec) (*ComputeTarget, error) {
				createCalls++
				return nil, errors.New("should not be called")
			},
		}

		target, err := EnsureComputeTarget(context.Background(), client, "mlops-workspace", computeSpecForTest(), time.Second, time.Millisecond)
		if err != nil {
			t.Error(err)
			return
		}

		assert.Equal(t, "cpu-cluster", target.Name)
		assert.Equal(t, 0, createCalls)
	}
}

func testCreateWithBoundsFunc() func(*testing.T) {
	return func(t *testing.T) {
		var created *ComputeTarget
		client := &MockPlatformClient{
			GetComputeTargetHandler: func(ctx context.Context, workspace string, name string) (*ComputeTarget, error) {
				if created != nil {
					return created, nil
				}
				return nil, NewNotFoundError("compute target", name)
			},
			CreateComputeTargetHandler: func(ctx context.Context, workspace string, computeSpec *spec.ComputeSpec) (*ComputeTarget, error) {
				created = &ComputeTarget{
					Name:              computeSpec.Name,
					VMSize:            computeSpec.VMSize,
					MinNodes:          computeSpec.MinNodes,
					MaxNodes:          computeSpec.MaxNodes,
					IdleSeconds:       computeSpec.IdleSeconds,
					ProvisioningState: ProvisioningStateSucceeded,
				}
				return created, nil
			},
		}

		target, err := EnsureComputeTarget(context.Background(), client, "mlops-workspace", computeSpecForTest(), time.Second, time.Millisecond)
		if err != nil {
			t.Error(err)
			return
		}

		assert.Equal(t, "cpu-cluster", target.Name)
		assert.Equal(t, "STANDARD_D2_V2", target.VMSize)
		assert.Equal(t, 0, target.MinNodes)
		assert.Equal(t, 4, target.MaxNodes)
		assert.Equal(t, 1200, target.IdleSeconds)
	}
}

func testIdempotencyFunc() func(*testing.T) {
	return func(t *testing.T) {
		createCalls := 0
		var created *ComputeTarget
		client := &MockPlatformClient{
			GetComputeTargetHandler: func(ctx context.Context, workspace string, name string) (*ComputeTarget, error) {
				if created != nil {
					return created, nil
				}
				return nil, NewNotFoundError("compute target", name)
			},
			CreateComputeTargetHandler: func(ctx context.Context, workspace string, computeSpec *spec.ComputeSpec) (*ComputeTarget, error) {
				createCalls++
				created = &ComputeTarget{Name: computeSpec.Name, ProvisioningState: ProvisioningStateSucceeded}
				return created, nil
			},
		}

		first, err := EnsureComputeTarget(context.Background(), client, "mlops-workspace", computeSpecForTest(), time.Second, time.Millisecond)
		if err != nil {
			t.Error(err)
			return
		}

		second, err := EnsureComputeTarget(context.Background(), client, "mlops-workspace", computeSpecForTest(), time.Second, time.Millisecond)
		if err != nil {
			t.Error(err)
			return
		}

		assert.Equal(t, 1, createCalls, "resolve-or-create must not re-provision")
		assert.Equal(t, first.Name, second.Name)
	}
}

func testProvisioningTimeoutFunc() func(*testing.T) {
	return func(t *testing.T) {
		notFound := true
		client := &MockPlatformClient{
			GetComputeTargetHandler: func(ctx context.Context, workspace string, name string) (*ComputeTarget, error) {
				if notFound {
					return nil, NewNotFoundError("compute target", name)
				}
				return &ComputeTarget{Name: name, ProvisioningState: ProvisioningStateCreating}, nil
			},
			CreateComputeTargetHandler: func(ctx context.Context, workspace string, computeSpec *spec.ComputeSpec) (*ComputeTarget, error) {
				notFound = false
				return &ComputeTarget{Name: computeSpec.Name, ProvisioningState: ProvisioningStateCreating}, nil
			},
		}

		_, err := EnsureComputeTarget(context.Background(), client, "mlops-workspace", computeSpecForTest(), 50*time.Millisecond, time.Millisecond)

		var timeoutErr *ProvisioningTimeoutError
		if assert.Error(t, err) {
			assert.ErrorAs(t, err, &timeoutErr)
			assert.Equal(t, "cpu-cluster", timeoutErr.Target)
		}
	}
}

func testProvisioningFailedFunc() func(*testing.T) {
	return func(t *testing.T) {
		notFound := true
		client := &MockPlatformClient{
			GetComputeTargetHandler: func(ctx context.Context, workspace string, name string) (*ComputeTarget, error) {
				if notFound {
					return nil, NewNotFoundError("compute target", name)
				}
				return &ComputeTarget{Name: name, ProvisioningState: ProvisioningStateFailed}, nil
			},
			CreateComputeTargetHandler: func(ctx context.Context, workspace string, computeSpec *spec.ComputeSpec) (*ComputeTarget, error) {
				notFound = false
				return &ComputeTarget{Name: computeSpec.Name, ProvisioningState: ProvisioningStateCreating}, nil
			},
		}

		_, err := EnsureComputeTarget(context.Background(), client, "mlops-workspace", computeSpecForTest(), time.Second, time.Millisecond)

		var timeoutErr *ProvisioningTimeoutError
		if assert.Error(t, err) {
			assert.False(t, errors.As(err, &timeoutErr), "a failed provision is not a timeout")
		}
	}
}
