package platform

import (
	"context"

	"github.com/trellisml/trellis/pkg/spec"
)

type MockPlatformClient struct {
	ResolveWorkspaceHandler    func(context.Context, string) (*Workspace, error)
	GetComputeTargetHandler    func(context.Context, string, string) (*ComputeTarget, error)
	CreateComputeTargetHandler func(context.Context, string, *spec.ComputeSpec) (*ComputeTarget, error)
	GetDatasetHandler          func(context.Context, string, string) (*Dataset, error)
	RegisterEnvironmentHandler func(context.Context, string, *EnvironmentDefinition) (*Environment, error)
	ValidatePipelineHandler    func(context.Context, string, *PipelinePayload) (*ValidationResult, error)
	SubmitRunHandler           func(context.Context, string, *PipelinePayload) (*SubmitResult, error)
	PublishPipelineHandler     func(context.Context, string, *PipelinePayload) (*PublishedPipeline, error)
	CreateScheduleHandler      func(context.Context, string, *SchedulePayload) (*ScheduleResource, error)
	GetRunHandler              func(context.Context, string, string) (*RunStatus, error)
	GetHealthHandler           func(context.Context) error
	CloseHandler               func() error
}

func NewMockPlatformClient(baseUrl string, token string) (Client, error) {
	return &MockPlatformClient{}, nil
}

func (c *MockPlatformClient) ResolveWorkspace(ctx context.Context, name string) (*Workspace, error) {
	if c.ResolveWorkspaceHandler != nil {
		return c.ResolveWorkspaceHandler(ctx, name)
	}

	return &Workspace{Id: "ws-mock", Name: name}, nil
}

func (c *MockPlatformClient) GetComputeTarget(ctx context.Context, workspace string, name string) (*ComputeTarget, error) {
	if c.GetComputeTargetHandler != nil {
		return c.GetComputeTargetHandler(ctx, workspace, name)
	}

	return nil, nil
}

func (c *MockPlatformClient) CreateComputeTarget(ctx context.Context, workspace string, computeSpec *spec.ComputeSpec) (*ComputeTarget, error) {
	if c.CreateComputeTargetHandler != nil {
		return c.CreateComputeTargetHandler(ctx, workspace, computeSpec)
	}

	return nil, nil
}

func (c *MockPlatformClient) GetDataset(ctx context.Context, workspace string, name string) (*Dataset, error) {
	if c.GetDatasetHandler != nil {
		return c.GetDatasetHandler(ctx, workspace, name)
	}

	return &Dataset{Id: "ds-mock", Name: name}, nil
}

func (c *MockPlatformClient) RegisterEnvironment(ctx context.Context, workspace string, environment *EnvironmentDefinition) (*Environment, error) {
	if c.RegisterEnvironmentHandler != nil {
		return c.RegisterEnvironmentHandler(ctx, workspace, environment)
	}

	return &Environment{Name: environment.Name, Version: "1"}, nil
}

func (c *MockPlatformClient) ValidatePipeline(ctx context.Context, workspace string, payload *PipelinePayload) (*ValidationResult, error) {
	if c.ValidatePipelineHandler != nil {
		return c.ValidatePipelineHandler(ctx, workspace, payload)
	}

	return &ValidationResult{Result: "pipeline_valid"}, nil
}

func (c *MockPlatformClient) SubmitRun(ctx context.Context, workspace string, payload *PipelinePayload) (*SubmitResult, error) {
	if c.SubmitRunHandler != nil {
		return c.SubmitRunHandler(ctx, workspace, payload)
	}

	return &SubmitResult{Result: "run_submitted", RunId: "run-mock"}, nil
}

func (c *MockPlatformClient) PublishPipeline(ctx context.Context, workspace string, payload *PipelinePayload) (*PublishedPipeline, error) {
	if c.PublishPipelineHandler != nil {
		return c.PublishPipelineHandler(ctx, workspace, payload)
	}

	return &PublishedPipeline{Id: "pub-mock", Name: payload.Name}, nil
}

func (c *MockPlatformClient) CreateSchedule(ctx context.Context, workspace string, payload *SchedulePayload) (*ScheduleResource, error) {
	if c.CreateScheduleHandler != nil {
		return c.CreateScheduleHandler(ctx, workspace, payload)
	}

	return &ScheduleResource{Id: "sched-mock", Name: payload.Name, Status: "Active"}, nil
}

func (c *MockPlatformClient) GetRun(ctx context.Context, workspace string, runId string) (*RunStatus, error) {
	if c.GetRunHandler != nil {
		return c.GetRunHandler(ctx, workspace, runId)
	}

	return &RunStatus{Id: runId, Status: "Running"}, nil
}

func (c *MockPlatformClient) GetHealth(ctx context.Context) error {
	if c.GetHealthHandler != nil {
		return c.GetHealthHandler(ctx)
	}

	return nil
}

func (c *MockPlatformClient) Close() error {
	if c.CloseHandler != nil {
		return c.CloseHandler()
	}

	return nil
}
