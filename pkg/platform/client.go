package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	net_http "net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/trellisml/trellis/pkg/spec"
	"github.com/trellisml/trellis/pkg/version"
)

// Client is the managed platform's remote API. Every operation is a
// synchronous request; any polling loop lives on top of these calls.
type Client interface {
	ResolveWorkspace(ctx context.Context, name string) (*Workspace, error)
	GetComputeTarget(ctx context.Context, workspace string, name string) (*ComputeTarget, error)
	CreateComputeTarget(ctx context.Context, workspace string, computeSpec *spec.ComputeSpec) (*ComputeTarget, error)
	GetDataset(ctx context.Context, workspace string, name string) (*Dataset, error)
	RegisterEnvironment(ctx context.Context, workspace string, environment *EnvironmentDefinition) (*Environment, error)
	ValidatePipeline(ctx context.Context, workspace string, payload *PipelinePayload) (*ValidationResult, error)
	SubmitRun(ctx context.Context, workspace string, payload *PipelinePayload) (*SubmitResult, error)
	PublishPipeline(ctx context.Context, workspace string, payload *PipelinePayload) (*PublishedPipeline, error)
	CreateSchedule(ctx context.Context, workspace string, payload *SchedulePayload) (*ScheduleResource, error)
	GetRun(ctx context.Context, workspace string, runId string) (*RunStatus, error)
	GetHealth(ctx context.Context) error
	Close() error
}

type platformClient struct {
	baseUrl string
	token   string
	client  *retryablehttp.Client
}

func NewPlatformClient(baseUrl string, token string) (Client, error) {
	if baseUrl == "" {
		return nil, fmt.Errorf("platform url is not configured")
	}

	// The client owns its connections; the CLI-side shared client stays out
	// of this package.
	retryable := retryablehttp.NewClient()
	retryable.Logger = log.New(ioutil.Discard, "", 0)

	return &platformClient{
		baseUrl: baseUrl,
		token:   token,
		client:  retryable,
	}, nil
}

func (c *platformClient) ResolveWorkspace(ctx context.Context, name string) (*Workspace, error) {
	workspace := &Workspace{}
	err := c.do(ctx, "GET", fmt.Sprintf("/api/v1/workspaces/%s", name), nil, workspace)
	if err != nil {
		return nil, c.asNotFound(err, "workspace", name)
	}
	return workspace, nil
}

func (c *platformClient) GetComputeTarget(ctx context.Context, workspace string, name string) (*ComputeTarget, error) {
	target := &ComputeTarget{}
	err := c.do(ctx, "GET", fmt.Sprintf("/api/v1/workspaces/%s/computes/%s", workspace, name), nil, target)
	if err != nil {
		return nil, c.asNotFound(err, "compute target", name)
	}
	return target, nil
}

func (c *platformClient) CreateComputeTarget(ctx context.Context, workspace string, computeSpec *spec.ComputeSpec) (*ComputeTarget, error) {
	target := &ComputeTarget{}
	err := c.do(ctx, "PUT", fmt.Sprintf("/api/v1/workspaces/%s/computes/%s", workspace, computeSpec.Name), computeSpec, target)
	if err != nil {
		return nil, err
	}
	return target, nil
}

func (c *platformClient) GetDataset(ctx context.Context, workspace string, name string) (*Dataset, error) {
	dataset := &Dataset{}
	err := c.do(ctx, "GET", fmt.Sprintf("/api/v1/workspaces/%s/datasets/%s", workspace, name), nil, dataset)
	if err != nil {
		return nil, c.asNotFound(err, "dataset", name)
	}
	return dataset, nil
}

func (c *platformClient) RegisterEnvironment(ctx context.Context, workspace string, environment *EnvironmentDefinition) (*Environment, error) {
	registered := &Environment{}
	err := c.do(ctx, "PUT", fmt.Sprintf("/api/v1/workspaces/%s/environments/%s", workspace, environment.Name), environment, registered)
	if err != nil {
		return nil, err
	}
	return registered, nil
}

func (c *platformClient) ValidatePipeline(ctx context.Context, workspace string, payload *PipelinePayload) (*ValidationResult, error) {
	result := &ValidationResult{}
	err := c.do(ctx, "POST", fmt.Sprintf("/api/v1/workspaces/%s/pipelines/validate", workspace), payload, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *platformClient) SubmitRun(ctx context.Context, workspace string, payload *PipelinePayload) (*SubmitResult, error) {
	result := &SubmitResult{}
	err := c.do(ctx, "POST", fmt.Sprintf("/api/v1/workspaces/%s/pipelines/submit", workspace), payload, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *platformClient) PublishPipeline(ctx context.Context, workspace string, payload *PipelinePayload) (*PublishedPipeline, error) {
	published := &PublishedPipeline{}
	err := c.do(ctx, "POST", fmt.Sprintf("/api/v1/workspaces/%s/pipelines/publish", workspace), payload, published)
	if err != nil {
		return nil, err
	}
	return published, nil
}

func (c *platformClient) CreateSchedule(ctx context.Context, workspace string, payload *SchedulePayload) (*ScheduleResource, error) {
	created := &ScheduleResource{}
	err := c.do(ctx, "POST", fmt.Sprintf("/api/v1/workspaces/%s/schedules", workspace), payload, created)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (c *platformClient) GetRun(ctx context.Context, workspace string, runId string) (*RunStatus, error) {
	status := &RunStatus{}
	err := c.do(ctx, "GET", fmt.Sprintf("/api/v1/workspaces/%s/runs/%s", workspace, runId), nil, status)
	if err != nil {
		return nil, c.asNotFound(err, "run", runId)
	}
	return status, nil
}

func (c *platformClient) GetHealth(ctx context.Context) error {
	return c.do(ctx, "GET", "/api/v1/health", nil, nil)
}

func (c *platformClient) Close() error {
	return nil
}

func (c *platformClient) do(ctx context.Context, method string, path string, requestBody interface{}, responseBody interface{}) error {
	var body io.Reader
	if requestBody != nil {
		data, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequest(method, c.baseUrl+path, body)
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)

	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		requestError := &RequestError{StatusCode: resp.StatusCode}
		var envelope Response
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			requestError.Message = envelope.Message
		}
		return requestError
	}

	if responseBody == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(responseBody)
}

// asNotFound converts a 404 into a typed NotFoundError; other errors pass
// through unchanged.
func (c *platformClient) asNotFound(err error, kind string, name string) error {
	var requestError *RequestError
	if errors.As(err, &requestError) && requestError.StatusCode == net_http.StatusNotFound {
		return NewNotFoundError(kind, name)
	}
	return err
}
