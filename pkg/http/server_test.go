package http

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	api_pkg "github.com/trellisml/trellis/pkg/api"
	"github.com/trellisml/trellis/pkg/pipeline"
	"github.com/trellisml/trellis/pkg/platform"
	"github.com/trellisml/trellis/pkg/runs"
	"github.com/valyala/fasthttp"
)

func TestServer(t *testing.T) {
	manifestPath := "../../test/assets/pipelines/manifests/attrition.yaml"

	p, err := pipeline.LoadPipelineFromManifest(manifestPath)
	if err != nil {
		t.Error(err)
		return
	}
	pipeline.CreateOrUpdatePipeline(p)
	t.Cleanup(func() { pipeline.RemovePipeline(p.Name) })

	t.Run("getPipelines()", testGetPipelinesHandlerFunc())
	t.Run("postPipelines()", testPostPipelinesHandlerFunc())
	t.Run("getPipeline()", testGetPipelineHandlerFunc())
	t.Run("getPipelinePlan()", testGetPipelinePlanHandlerFunc())
	t.Run("getRuns()", testGetRunsHandlerFunc(p))
	t.Run("health()", testHealthHandlerFunc())
}

func testGetPipelinesHandlerFunc() func(t *testing.T) {
	return func(t *testing.T) {
		ctx := &fasthttp.RequestCtx{
			Request: fasthttp.Request{},
		}

		apiGetPipelinesHandler(ctx)

		var data []*api_pkg.Pipeline
		err := json.Unmarshal(ctx.Response.Body(), &data)
		if assert.NoError(t, err) {
			assert.Equal(t, 1, len(data))
			assert.Equal(t, "attrition", data[0].Name)
		}
	}
}

func testPostPipelinesHandlerFunc() func(t *testing.T) {
	return func(t *testing.T) {
		t.Cleanup(func() { pipeline.RemovePipeline("attrition-storage-trigger") })

		ctx := &fasthttp.RequestCtx{
			Request: fasthttp.Request{},
		}
		ctx.Request.SetBodyString(`{"manifest_path": "../../test/assets/pipelines/manifests/attrition-storage-trigger.yaml"}`)

		apiPostPipelinesHandler(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())

		// A created pipeline is registered and immediately retrievable.
		getCtx := &fasthttp.RequestCtx{
			Request: fasthttp.Request{},
		}
		getCtx.SetUserValue("pipeline", "attrition-storage-trigger")

		apiGetPipelineHandler(getCtx)

		var data api_pkg.Pipeline
		err := json.Unmarshal(getCtx.Response.Body(), &data)
		if assert.NoError(t, err) {
			assert.Equal(t, "attrition-storage-trigger", data.Name)
		}
	}
}

func testGetPipelineHandlerFunc() func(t *testing.T) {
	return func(t *testing.T) {
		ctx := &fasthttp.RequestCtx{
			Request: fasthttp.Request{},
		}
		ctx.SetUserValue("pipeline", "attrition")

		apiGetPipelineHandler(ctx)

		var data api_pkg.Pipeline
		err := json.Unmarshal(ctx.Response.Body(), &data)
		if assert.NoError(t, err) {
			assert.Equal(t, "attrition", data.Name)
			assert.Equal(t, "mlops-workspace", data.Workspace)
		}

		ctx = &fasthttp.RequestCtx{
			Request: fasthttp.Request{},
		}
		ctx.SetUserValue("pipeline", "does-not-exist")

		apiGetPipelineHandler(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	}
}

func testGetPipelinePlanHandlerFunc() func(t *testing.T) {
	return func(t *testing.T) {
		ctx := &fasthttp.RequestCtx{
			Request: fasthttp.Request{},
		}
		ctx.SetUserValue("pipeline", "attrition")

		apiGetPipelinePlanHandler(ctx)

		assert.Contains(t, string(ctx.Response.Body()), "dataprep -> train")
	}
}

func testGetRunsHandlerFunc(p *pipeline.Pipeline) func(t *testing.T) {
	return func(t *testing.T) {
		run := runs.NewRun("run-1", p.Name)
		run.SetStatus(runs.StatusRunning, nil)
		p.AddRun(run)

		s := NewServer(8000, &platform.MockPlatformClient{
			GetRunHandler: func(ctx context.Context, workspace string, runId string) (*platform.RunStatus, error) {
				return &platform.RunStatus{Id: runId, Status: "Running"}, nil
			},
		}, "mlops-workspace")

		ctx := &fasthttp.RequestCtx{
			Request: fasthttp.Request{},
		}
		ctx.SetUserValue("pipeline", "attrition")

		s.apiGetRunsHandler(ctx)

		var data []*api_pkg.Run
		err := json.Unmarshal(ctx.Response.Body(), &data)
		if assert.NoError(t, err) {
			assert.Equal(t, 1, len(data))
			assert.Equal(t, "run-1", data[0].Id)
		}

		// The platform reports completion on the next lookup; the handler
		// folds it into the local record.
		s.platform = &platform.MockPlatformClient{
			GetRunHandler: func(ctx context.Context, workspace string, runId string) (*platform.RunStatus, error) {
				return &platform.RunStatus{Id: runId, Status: "Completed"}, nil
			},
		}

		ctx = &fasthttp.RequestCtx{
			Request: fasthttp.Request{},
		}
		ctx.SetUserValue("pipeline", "attrition")
		ctx.SetUserValue("run", "run-1")

		s.apiGetRunHandler(ctx)

		var single api_pkg.Run
		err = json.Unmarshal(ctx.Response.Body(), &single)
		if assert.NoError(t, err) {
			assert.Equal(t, "Completed", single.Status)
			assert.Equal(t, runs.StatusCompleted, run.Status())
		}
	}
}

func testHealthHandlerFunc() func(t *testing.T) {
	return func(t *testing.T) {
		s := NewServer(8000, &platform.MockPlatformClient{
			GetHealthHandler: func(ctx context.Context) error {
				return nil
			},
		}, "mlops-workspace")

		ctx := &fasthttp.RequestCtx{
			Request: fasthttp.Request{},
		}

		s.healthHandler(ctx)

		assert.Equal(t, "ok", string(ctx.Response.Body()))
	}
}
