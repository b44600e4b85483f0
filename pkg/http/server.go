package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	net_http "net/http"

	"github.com/fasthttp/router"
	"github.com/trellisml/trellis/pkg/api"
	"github.com/trellisml/trellis/pkg/diagnostics"
	"github.com/trellisml/trellis/pkg/loggers"
	"github.com/trellisml/trellis/pkg/pipeline"
	"github.com/trellisml/trellis/pkg/platform"
	"github.com/trellisml/trellis/pkg/runs"
	"github.com/trellisml/trellis/pkg/version"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port uint
	// Workspace is the configured default for manifests that do not pin one.
	Workspace string
}

type server struct {
	config   ServerConfig
	platform platform.Client
}

var (
	zaplog *zap.Logger = loggers.ZapLogger()
)

func (server *server) healthHandler(ctx *fasthttp.RequestCtx) {
	if server.platform == nil {
		fmt.Fprintf(ctx, "daemon initializing")
		return
	}

	err := server.platform.GetHealth(ctx)
	if err != nil {
		fmt.Fprintf(ctx, "degraded\n")
		fmt.Fprintf(ctx, "platform: %s", err.Error())
		return
	}

	fmt.Fprintf(ctx, "ok")
}

func versionHandler(ctx *fasthttp.RequestCtx) {
	fmt.Fprintf(ctx, "%s", version.Version())
}

func apiGetPipelinesHandler(ctx *fasthttp.RequestCtx) {
	pipelines := pipeline.Pipelines()

	data := make([]*api.Pipeline, 0, len(*pipelines))

	for _, p := range *pipelines {
		if p == nil {
			continue
		}

		item := api.NewPipeline(p)
		data = append(data, item)
	}

	response, err := json.Marshal(data)
	if err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody(response)
}

func apiPostPipelinesHandler(ctx *fasthttp.RequestCtx) {
	var request struct {
		ManifestPath string `json:"manifest_path"`
	}

	err := json.Unmarshal(ctx.Request.Body(), &request)
	if err != nil {
		ctx.Response.SetStatusCode(400)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	p, err := pipeline.LoadPipelineFromManifest(request.ManifestPath)
	if err != nil {
		ctx.Response.SetStatusCode(400)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	pipeline.CreateOrUpdatePipeline(p)

	ctx.Response.SetStatusCode(201)
	ctx.Response.Header.SetContentType("application/json")

	response, err := json.Marshal(api.NewPipeline(p))
	if err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}
	ctx.Response.SetBody(response)
}

func apiGetPipelineHandler(ctx *fasthttp.RequestCtx) {
	pipelineParam := ctx.UserValue("pipeline").(string)
	p := pipeline.GetPipeline(pipelineParam)

	if p == nil {
		ctx.Response.SetStatusCode(404)
		return
	}

	data := api.NewPipeline(p)

	response, err := json.Marshal(data)
	if err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody(response)
}

func apiGetPipelinePlanHandler(ctx *fasthttp.RequestCtx) {
	pipelineParam := ctx.UserValue("pipeline").(string)
	p := pipeline.GetPipeline(pipelineParam)

	if p == nil {
		ctx.Response.SetStatusCode(404)
		return
	}

	if err := p.Validate(); err != nil {
		ctx.Response.SetStatusCode(400)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.Response.Header.SetContentType("text/plain")
	_, _ = ctx.WriteString(p.Plan())
}

func (server *server) apiPipelineDeployHandler(ctx *fasthttp.RequestCtx) {
	pipelineParam := ctx.UserValue("pipeline").(string)
	p := pipeline.GetPipeline(pipelineParam)

	if p == nil {
		ctx.Response.SetStatusCode(404)
		return
	}

	var options platform.DeployOptions
	if len(ctx.Request.Body()) > 0 {
		var request struct {
			Publish    bool `json:"publish"`
			SkipSubmit bool `json:"skip_submit"`
		}
		err := json.Unmarshal(ctx.Request.Body(), &request)
		if err != nil {
			ctx.Response.SetStatusCode(400)
			ctx.Response.SetBodyString(err.Error())
			return
		}
		options.Publish = request.Publish
		options.SkipSubmit = request.SkipSubmit
	}
	options.Workspace = server.config.Workspace

	result, err := platform.Deploy(context.Background(), server.platform, p, options)
	if err != nil {
		var configErr *pipeline.ConfigurationError
		if errors.As(err, &configErr) {
			ctx.Response.SetStatusCode(net_http.StatusBadRequest)
		} else {
			ctx.Response.SetStatusCode(net_http.StatusInternalServerError)
		}
		ctx.Response.SetBodyString(err.Error())
		return
	}

	if result.Run == nil {
		ctx.Response.SetStatusCode(202)
		return
	}

	response, err := json.Marshal(api.NewRun(result.Run))
	if err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.Response.SetStatusCode(201)
	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody(response)
}

func (server *server) apiGetRunsHandler(ctx *fasthttp.RequestCtx) {
	pipelineParam := ctx.UserValue("pipeline").(string)
	p := pipeline.GetPipeline(pipelineParam)
	if p == nil {
		ctx.Response.SetStatusCode(404)
		return
	}

	data := make([]*api.Run, 0)
	for _, r := range p.Runs() {
		server.refreshRun(ctx, p, r)
		data = append(data, api.NewRun(r))
	}

	response, err := json.Marshal(data)
	if err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody(response)
}

func (server *server) apiGetRunHandler(ctx *fasthttp.RequestCtx) {
	pipelineParam := ctx.UserValue("pipeline").(string)
	p := pipeline.GetPipeline(pipelineParam)
	if p == nil {
		ctx.Response.SetStatusCode(404)
		return
	}

	runParam := ctx.UserValue("run").(string)
	run := p.GetRun(runParam)
	if run == nil {
		ctx.Response.SetStatusCode(404)
		return
	}

	server.refreshRun(ctx, p, run)

	data := api.NewRun(run)

	response, err := json.Marshal(data)
	if err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody(response)
}

// refreshRun pulls the latest platform state for a non-terminal run. A
// refresh failure is logged and the stale record is served as-is.
func (server *server) refreshRun(ctx *fasthttp.RequestCtx, p *pipeline.Pipeline, run *runs.Run) {
	if server.platform == nil {
		return
	}

	workspace := p.Workspace
	if workspace == "" {
		workspace = server.config.Workspace
	}

	err := platform.RefreshRun(ctx, server.platform, workspace, run)
	if err != nil {
		zaplog.Sugar().Debugf("failed to refresh run %s: %s", run.Id(), err.Error())
	}
}

func (server *server) apiGetDiagnosticsHandler(ctx *fasthttp.RequestCtx) {
	report, err := diagnostics.GenerateReport()
	if err != nil {
		ctx.Response.SetStatusCode(500)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.SetBodyString(report)
}

func NewServer(port uint, platformClient platform.Client, workspace string) *server {
	return &server{
		config: ServerConfig{
			Port:      port,
			Workspace: workspace,
		},
		platform: platformClient,
	}
}

func (server *server) Start() error {
	r := router.New()
	r.GET("/health", server.healthHandler)
	r.GET("/version", versionHandler)

	api := r.Group("/api/v0.1")
	{
		// Pipelines
		api.GET("/pipelines", apiGetPipelinesHandler)
		api.POST("/pipelines", apiPostPipelinesHandler)
		api.GET("/pipelines/{pipeline}", apiGetPipelineHandler)
		api.GET("/pipelines/{pipeline}/plan", apiGetPipelinePlanHandler)
		api.POST("/pipelines/{pipeline}/deploy", server.apiPipelineDeployHandler)

		// Runs
		api.GET("/pipelines/{pipeline}/runs", server.apiGetRunsHandler)
		api.GET("/pipelines/{pipeline}/runs/{run}", server.apiGetRunHandler)

		api.GET("/diagnostics", server.apiGetDiagnosticsHandler)
	}

	serverLogger, err := zap.NewStdLogAt(zaplog, zap.DebugLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	fastServer := &fasthttp.Server{
		Handler: r.Handler,
		Logger:  serverLogger,
	}

	go func() {
		log.Fatal(fastServer.ListenAndServe(fmt.Sprintf(":%d", server.config.Port)))
	}()

	return nil
}
