package pages

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/iver-wharf/wharf-pages/internal/pagestest"
	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProject_existing(t *testing.T) {
	api, srv := newTestAPI(t)
	srv.AddProject(pagesapi.Project{ID: "abc", Name: "demo", ProductionBranch: "main", Domains: []string{"demo.example.com"}})

	resolved, err := ResolveProject(context.Background(), api, BackendManaged, ProjectRequest{Name: "demo"})
	require.NoError(t, err)
	assert.Equal(t, "abc", resolved.ID)
	assert.False(t, resolved.Created)
	assert.Equal(t, "main", resolved.Project.ProductionBranch)
	assert.Equal(t, []string{"demo.example.com"}, resolved.Project.Domains)
	assert.Equal(t, 0, srv.Calls(pagestest.EndpointCreateProject))
	assert.Equal(t, 1, srv.Calls(pagestest.EndpointGetProject))
}

func TestResolveProject_matchesCaseSensitive(t *testing.T) {
	api, srv := newTestAPI(t)
	srv.AddProject(pagesapi.Project{ID: "abc", Name: "Demo"})

	resolved, err := ResolveProject(context.Background(), api, BackendManaged, ProjectRequest{Name: "demo"})
	require.NoError(t, err)
	assert.NotEqual(t, "abc", resolved.ID)
	assert.True(t, resolved.Created)
	assert.Equal(t, 1, srv.Calls(pagestest.EndpointCreateProject))
}

func TestResolveProject_createsMissing(t *testing.T) {
	api, srv := newTestAPI(t)

	resolved, err := ResolveProject(context.Background(), api, BackendManaged, ProjectRequest{Name: "demo", DatabaseID: "db1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resolved.ID)
	assert.True(t, resolved.Created)
	assert.Equal(t, "demo", resolved.Project.Name)
	assert.Equal(t, 1, srv.Calls(pagestest.EndpointListProjects))
	assert.Equal(t, 1, srv.Calls(pagestest.EndpointCreateProject))
}

func TestResolveProject_nameNotAvailable(t *testing.T) {
	api, srv := newTestAPI(t)
	srv.CreateStatus = http.StatusConflict

	_, err := ResolveProject(context.Background(), api, BackendManaged, ProjectRequest{Name: "taken"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProjectResolution)
	assert.ErrorIs(t, err, ErrProjectNameNotAvailable)
	assert.Equal(t, "Project name not available", err.Error())
	assert.Equal(t, 0, srv.Calls(pagestest.EndpointGetProject))
}

func TestResolveProject_createNotOK(t *testing.T) {
	api, srv := newTestAPI(t)
	srv.CreateStatus = http.StatusCreated

	_, err := ResolveProject(context.Background(), api, BackendManaged, ProjectRequest{Name: "demo"})
	assert.ErrorIs(t, err, ErrProjectNameNotAvailable)
}

func TestResolveProject_direct(t *testing.T) {
	api, srv := newTestAPI(t)
	srv.AddProject(pagesapi.Project{ID: "ignored", Name: "demo", ProductionBranch: "main"})

	resolved, err := ResolveProject(context.Background(), api, BackendDirect, ProjectRequest{Name: "demo"})
	require.NoError(t, err)
	assert.Equal(t, "demo", resolved.ID)
	assert.Equal(t, 0, srv.Calls(pagestest.EndpointListProjects))
	assert.Equal(t, 0, srv.Calls(pagestest.EndpointCreateProject))
	assert.Equal(t, 1, srv.Calls(pagestest.EndpointGetProject))
}

func TestResolveProject_fetchFails(t *testing.T) {
	api, srv := newTestAPI(t)

	_, err := ResolveProject(context.Background(), api, BackendDirect, ProjectRequest{Name: "missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProjectResolution)
	assert.True(t, pagesapi.IsStatusError(err))
	assert.Equal(t, 1, srv.Calls(pagestest.EndpointGetProject))
}

type emptyIDProjectAPI struct {
	ProjectAPI
}

func (emptyIDProjectAPI) ListProjects(context.Context, url.Values) ([]pagesapi.ProjectListItem, error) {
	return nil, nil
}

func (emptyIDProjectAPI) CreateProject(context.Context, pagesapi.CreateProjectRequest) (pagesapi.CreateProjectResponse, error) {
	return pagesapi.CreateProjectResponse{}, nil
}

func TestResolveProject_createdWithoutID(t *testing.T) {
	_, err := ResolveProject(context.Background(), emptyIDProjectAPI{}, BackendManaged, ProjectRequest{Name: "demo"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProjectResolution)
	assert.False(t, errors.Is(err, ErrProjectNameNotAvailable))
	assert.Contains(t, err.Error(), "lacks a project ID")
}

func TestResolveProject_unknownBackend(t *testing.T) {
	api, _ := newTestAPI(t)
	_, err := ResolveProject(context.Background(), api, Backend("other"), ProjectRequest{Name: "demo"})
	assert.ErrorIs(t, err, ErrProjectResolution)
}
