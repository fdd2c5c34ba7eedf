package pages

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
)

// ResolvedProject is a remote project together with its stable ID.
type ResolvedProject struct {
	// ID is the opaque project handle used when uploading.
	ID string
	// Created is true if the project was created during resolution.
	Created bool
	// Project is the full project record, including the production branch
	// and custom domains.
	Project pagesapi.Project
}

// ProjectRequest is the data needed to resolve a project.
type ProjectRequest struct {
	// Name is the human-readable project name. Matched case-sensitively.
	Name string
	// DatabaseID optionally scopes the project lookup and creation.
	DatabaseID string
}

// ResolveProject maps a project name to a remote project and its ID.
//
// With the managed backend, the project is looked up by name and created if
// absent. With the direct backend, the project name is used as ID. In both
// cases the full project record is fetched by name afterwards.
func ResolveProject(ctx context.Context, api ProjectAPI, backend Backend, req ProjectRequest) (ResolvedProject, error) {
	var resolved ResolvedProject
	switch backend {
	case BackendDirect:
		resolved.ID = req.Name
	case BackendManaged, "":
		id, created, err := findOrCreateProject(ctx, api, req)
		if err != nil {
			return ResolvedProject{}, stepError(ErrProjectResolution, err)
		}
		resolved.ID = id
		resolved.Created = created
	default:
		return ResolvedProject{}, stepError(ErrProjectResolution,
			fmt.Errorf("unsupported backend: %q", backend))
	}

	project, err := api.GetProject(ctx, req.Name)
	if err != nil {
		return ResolvedProject{}, stepError(ErrProjectResolution,
			fmt.Errorf("fetch project %q: %w", req.Name, err))
	}
	resolved.Project = project
	log.Info().
		WithString("project", req.Name).
		WithString("id", resolved.ID).
		WithString("productionBranch", project.ProductionBranch).
		Message("Resolved project.")
	return resolved, nil
}

func findOrCreateProject(ctx context.Context, api ProjectAPI, req ProjectRequest) (string, bool, error) {
	query := url.Values{}
	if req.DatabaseID != "" {
		query.Set("databaseId", req.DatabaseID)
	}
	items, err := api.ListProjects(ctx, query)
	if err != nil {
		return "", false, fmt.Errorf("list projects: %w", err)
	}
	if item, ok := findProjectByName(items, req.Name); ok {
		log.Debug().
			WithString("project", item.Name).
			WithString("id", item.ID).
			Message("Found existing project.")
		return item.ID, false, nil
	}

	log.Info().WithString("project", req.Name).Message("Project not found, creating it.")
	body := pagesapi.CreateProjectRequest{ProjectName: req.Name}
	if req.DatabaseID != "" {
		body.DatabaseID = req.DatabaseID
	} else {
		body.Name = req.Name
	}
	created, err := api.CreateProject(ctx, body)
	if err != nil {
		var statusErr pagesapi.StatusError
		if errors.As(err, &statusErr) {
			log.Warn().
				WithError(err).
				WithString("project", req.Name).
				Message("Project creation was rejected.")
			return "", false, ErrProjectNameNotAvailable
		}
		return "", false, fmt.Errorf("create project %q: %w", req.Name, err)
	}
	if created.ID == "" {
		return "", false, fmt.Errorf("create project %q: response lacks a project ID", req.Name)
	}
	return created.ID, true, nil
}

func findProjectByName(items []pagesapi.ProjectListItem, name string) (pagesapi.ProjectListItem, bool) {
	for _, item := range items {
		if item.Name == name && item.ID != "" {
			return item, true
		}
	}
	return pagesapi.ProjectListItem{}, false
}
