package pages

import (
	"context"
	"fmt"

	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
	"github.com/iver-wharf/wharf-pages/pkg/summary"
)

// Names of the outputs set after a successful run.
const (
	OutputID          = "id"
	OutputURL         = "url"
	OutputEnvironment = "environment"
	OutputAlias       = "alias"
)

// TrackerState is the state posted to deployment records. It is always
// "success", regardless of the deploy stage status.
const TrackerState = "success"

// Request is the input of a single deployment run.
type Request struct {
	// ProjectName is the human-readable project name.
	ProjectName string
	// DatabaseID optionally scopes the project lookup and creation.
	DatabaseID string
	// Directory is the path to the directory to package and upload.
	Directory string
	// Branch is the resolved branch, used to classify the environment.
	Branch string
	// Ref is the Git ref that deployment records are created against.
	Ref string
}

// Result is the outcome of a successful deployment run.
type Result struct {
	Project     ResolvedProject
	Environment Environment
	Deployment  pagesapi.Deployment
	Status      Status
	// Alias is the branch preview URL. Empty for production runs.
	Alias string
	// Record is the created deployment record, or nil if none was created.
	Record *Record
}

// Deployer runs the deployment workflow. API, Outputs, and Summary are
// required. A nil Tracker disables deployment records.
type Deployer struct {
	Config  Config
	API     HostingAPI
	Tracker Tracker
	Outputs Outputs
	Summary SummaryWriter
}

// Deploy resolves the project, packages and uploads the directory, fetches
// the resulting deployment, and then reports it via outputs, the tracker, and
// the summary. It stops on the first failing step up to and including the
// deployment fetch, and then no outputs are set and no summary is written.
// Failing to write the summary is logged and does not fail the run.
func (d Deployer) Deploy(ctx context.Context, req Request) (Result, error) {
	var result Result
	var err error

	result.Project, err = ResolveProject(ctx, d.API, d.Config.Backend, ProjectRequest{
		Name:       req.ProjectName,
		DatabaseID: req.DatabaseID,
	})
	if err != nil {
		return Result{}, err
	}
	result.Environment = ClassifyEnvironment(req.ProjectName, req.Branch, result.Project.Project)
	log.Info().
		WithString("branch", req.Branch).
		WithString("environment", result.Environment.Label).
		Message("Classified environment.")

	result.Record = d.createRecord(ctx, req, result.Environment)

	if _, err := PackageAndUpload(ctx, d.API, d.Config, result.Project.ID, req.Directory); err != nil {
		return Result{}, err
	}

	result.Deployment, err = FetchDeployment(ctx, d.API, req.ProjectName, d.Config.IndexRetryDelay)
	if err != nil {
		return Result{}, err
	}
	result.Status = ClassifyStatus(result.Deployment)
	result.Alias, _ = SelectAlias(result.Environment.Production, result.Deployment)
	log.Info().
		WithString("id", result.Deployment.ID).
		WithString("url", result.Deployment.URL).
		WithStringer("status", result.Status).
		Message("Fetched deployment.")

	if err := d.setOutputs(result); err != nil {
		return Result{}, err
	}

	d.updateRecord(ctx, result)

	if err := d.Summary.WriteSummary(summary.Render(d.report(result))); err != nil {
		log.Warn().WithError(err).Message("Failed to write job summary.")
	}
	return result, nil
}

func (d Deployer) setOutputs(result Result) error {
	outputs := []struct{ name, value string }{
		{OutputID, result.Deployment.ID},
		{OutputURL, result.Deployment.URL},
		{OutputEnvironment, result.Environment.Label},
	}
	if result.Alias != "" {
		outputs = append(outputs, struct{ name, value string }{OutputAlias, result.Alias})
	}
	for _, o := range outputs {
		if err := d.Outputs.SetOutput(o.name, o.value); err != nil {
			return fmt.Errorf("set output %q: %w", o.name, err)
		}
	}
	return nil
}

func (d Deployer) createRecord(ctx context.Context, req Request, env Environment) *Record {
	if d.Tracker == nil {
		log.Debug().Message("No source-control token given, skipping deployment record.")
		return nil
	}
	record, ok, err := d.Tracker.CreateDeployment(ctx, RecordRequest{
		Ref:                   req.Ref,
		Environment:           env.Label,
		ProductionEnvironment: env.Production,
		Description:           d.Config.Description,
	})
	if err != nil {
		log.Warn().
			WithError(stepError(ErrExternalTracking, err)).
			WithString("ref", req.Ref).
			Message("Failed to create deployment record, continuing without it.")
		return nil
	}
	if !ok {
		log.Warn().WithString("ref", req.Ref).
			Message("No deployment record was created, continuing without it.")
		return nil
	}
	log.Info().
		WithString("ref", record.Ref).
		WithString("environment", record.Environment).
		Messagef("Created deployment record %d.", record.ID)
	return &record
}

func (d Deployer) updateRecord(ctx context.Context, result Result) {
	if d.Tracker == nil || result.Record == nil {
		return
	}
	err := d.Tracker.CreateDeploymentStatus(ctx, StatusRequest{
		RecordID:              result.Record.ID,
		State:                 TrackerState,
		Environment:           result.Environment.Label,
		EnvironmentURL:        result.Deployment.URL,
		ProductionEnvironment: result.Environment.Production,
		Description:           d.Config.Description,
		AutoInactive:          false,
	})
	if err != nil {
		log.Warn().
			WithError(stepError(ErrExternalTracking, err)).
			Messagef("Failed to update deployment record %d.", result.Record.ID)
		return
	}
	log.Debug().Messagef("Updated deployment record %d.", result.Record.ID)
}

func (d Deployer) report(result Result) summary.Report {
	title := summary.DefaultTitle
	if d.Config.Description != "" {
		title = "Deploying with " + d.Config.Description
	}
	return summary.Report{
		Title:      title,
		CommitHash: result.Deployment.DeploymentTrigger.Metadata.CommitHash.ValueOrZero(),
		Status:     result.Status.String(),
		StatusIcon: result.Status.Emoji(),
		PreviewURL: result.Deployment.URL,
		AliasURL:   result.Alias,
		Domains:    result.Project.Project.Domains,
	}
}
