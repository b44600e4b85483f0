package platform

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/logrusorgru/aurora"
	"github.com/trellisml/trellis/pkg/loggers"
	"github.com/trellisml/trellis/pkg/pipeline"
	"github.com/trellisml/trellis/pkg/runs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	zaplog *zap.Logger = loggers.ZapLogger()
)

type DeployOptions struct {
	// Publish registers the pipeline as a published endpoint after a
	// successful submission. Implied when the manifest declares a schedule,
	// since schedules bind to published pipelines.
	Publish bool
	// SkipSubmit validates and provisions without starting a run.
	SkipSubmit bool
	// Workspace is the configured default, used when the manifest does not
	// pin one.
	Workspace string
}

type DeployResult struct {
	Workspace *Workspace
	Run       *runs.Run
	Published *PublishedPipeline
	Schedule  *ScheduleResource
}

// Deploy drives the full flow against the platform: resolve the workspace,
// ensure compute targets, register the environment, resolve datasets,
// validate, submit, and optionally publish and schedule.
func Deploy(ctx context.Context, client Client, p *pipeline.Pipeline, options DeployOptions) (*DeployResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	result := &DeployResult{}

	workspaceName := p.Workspace
	if workspaceName == "" {
		workspaceName = options.Workspace
	}
	if workspaceName == "" {
		return nil, pipeline.NewConfigurationError(p.Name, "no workspace set: add workspace to the manifest or platform.workspace to .trellis/config.yaml")
	}

	workspace, err := client.ResolveWorkspace(ctx, workspaceName)
	if err != nil {
		return nil, fmt.Errorf("%s -> failed to resolve workspace '%s': %w", p.Name, workspaceName, err)
	}
	result.Workspace = workspace

	err = ensureComputeTargets(ctx, client, p, workspaceName)
	if err != nil {
		return nil, err
	}

	var environmentDefinition *EnvironmentDefinition
	if p.Environment != nil {
		environmentDefinition, err = BuildEnvironmentDefinition(p.Environment, p.ManifestPath())
		if err != nil {
			return nil, fmt.Errorf("%s -> failed to build environment: %w", p.Name, err)
		}

		_, err = client.RegisterEnvironment(ctx, workspace.Name, environmentDefinition)
		if err != nil {
			return nil, fmt.Errorf("%s -> failed to register environment '%s': %w", p.Name, environmentDefinition.Name, err)
		}
	}

	err = resolveDatasets(ctx, client, p, workspace.Name)
	if err != nil {
		return nil, err
	}

	payload := BuildPayload(p, environmentDefinition)

	validation, err := client.ValidatePipeline(ctx, workspace.Name, payload)
	if err != nil {
		return nil, fmt.Errorf("%s -> failed to validate pipeline: %w", p.Name, err)
	}

	switch validation.Result {
	case "pipeline_valid":
		zaplog.Sugar().Debugf("%s validated against workspace %s", p.Name, workspace.Name)
	case "pipeline_invalid":
		return nil, pipeline.NewConfigurationError(p.Name, "platform rejected pipeline: %s", validation.Message)
	default:
		return nil, fmt.Errorf("%s -> unexpected validation result '%s': %s", p.Name, validation.Result, validation.Message)
	}

	if !options.SkipSubmit {
		submission, err := client.SubmitRun(ctx, workspace.Name, payload)
		if err != nil {
			return nil, fmt.Errorf("%s -> failed to submit run: %w", p.Name, err)
		}

		switch submission.Result {
		case "run_submitted":
			run := runs.NewRun(submission.RunId, p.Name)
			run.SetStatus(runs.StatusRunning, nil)
			p.AddRun(run)
			result.Run = run
			log.Println(fmt.Sprintf("%s -> %s", p.Name, aurora.BrightCyan(fmt.Sprintf("Submitted run %s", submission.RunId))))
		case "already_running":
			return nil, fmt.Errorf("%s -> a run is already in progress", p.Name)
		default:
			return nil, fmt.Errorf("%s -> failed to verify run submission: %s", p.Name, submission.Result)
		}
	}

	shouldPublish := options.Publish || p.Publish() || p.Schedule() != nil
	if !shouldPublish {
		return result, nil
	}

	published, err := client.PublishPipeline(ctx, workspace.Name, payload)
	if err != nil {
		return nil, fmt.Errorf("%s -> failed to publish pipeline: %w", p.Name, err)
	}
	result.Published = published
	log.Println(fmt.Sprintf("%s -> %s", p.Name, aurora.Green(fmt.Sprintf("Published as %s", published.Id))))

	if p.Schedule() != nil {
		schedulePayload, err := BuildSchedulePayload(p.Schedule(), published.Id)
		if err != nil {
			return nil, fmt.Errorf("%s -> failed to build schedule: %w", p.Name, err)
		}

		created, err := client.CreateSchedule(ctx, workspace.Name, schedulePayload)
		if err != nil {
			return nil, fmt.Errorf("%s -> failed to create schedule: %w", p.Name, err)
		}
		result.Schedule = created
		log.Println(fmt.Sprintf("%s -> %s", p.Name, aurora.Green(fmt.Sprintf("Scheduled: %s", p.Schedule().String()))))
	}

	return result, nil
}

// ensureComputeTargets provisions the pipeline-level compute when a step uses
// it, and requires all other referenced targets to already exist.
func ensureComputeTargets(ctx context.Context, client Client, p *pipeline.Pipeline, workspace string) error {
	for _, targetName := range p.ComputeTargets() {
		if p.Compute != nil && p.Compute.Name == targetName {
			_, err := EnsureComputeTarget(ctx, client, workspace, p.Compute, p.ProvisioningTimeout(), p.PollInterval())
			if err != nil {
				return fmt.Errorf("%s -> %w", p.Name, err)
			}
			continue
		}

		_, err := client.GetComputeTarget(ctx, workspace, targetName)
		if err != nil {
			var notFound *NotFoundError
			if errors.As(err, &notFound) {
				return pipeline.NewConfigurationError(p.Name, "compute target '%s' does not exist and has no provisioning configuration", targetName)
			}
			return fmt.Errorf("%s -> failed to resolve compute target '%s': %w", p.Name, targetName, err)
		}
	}

	return nil
}

// resolveDatasets verifies every named dataset the steps consume exists in
// the workspace. Lookups run in parallel; a missing dataset is a
// configuration error.
func resolveDatasets(ctx context.Context, client Client, p *pipeline.Pipeline, workspace string) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for _, datasetName := range p.DatasetNames() {
		name := datasetName
		group.Go(func() error {
			_, err := client.GetDataset(groupCtx, workspace, name)
			if err != nil {
				var notFound *NotFoundError
				if errors.As(err, &notFound) {
					return pipeline.NewConfigurationError(p.Name, "dataset '%s' does not exist", name)
				}
				return fmt.Errorf("%s -> failed to resolve dataset '%s': %w", p.Name, name, err)
			}
			return nil
		})
	}

	return group.Wait()
}
