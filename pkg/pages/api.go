package pages

import (
	"context"
	"net/url"

	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
)

// HostingAPI is the pages hosting REST API. It is implemented by
// *pagesapi.Client.
type HostingAPI interface {
	ProjectAPI
	UploadAPI
	DeploymentAPI
}

// ProjectAPI is the part of the hosting API used to resolve projects.
type ProjectAPI interface {
	ListProjects(ctx context.Context, query url.Values) ([]pagesapi.ProjectListItem, error)
	CreateProject(ctx context.Context, body pagesapi.CreateProjectRequest) (pagesapi.CreateProjectResponse, error)
	GetProject(ctx context.Context, projectName string) (pagesapi.Project, error)
}

// UploadAPI is the part of the hosting API used to upload artifacts.
type UploadAPI interface {
	UploadDeployment(ctx context.Context, projectID, archivePath string) (pagesapi.UploadResponse, error)
}

// DeploymentAPI is the part of the hosting API used to fetch deployments.
type DeploymentAPI interface {
	GetDeployment(ctx context.Context, projectName string) (pagesapi.Deployment, error)
}

// ensure it conforms to the interface
var _ HostingAPI = (*pagesapi.Client)(nil)

// Tracker mirrors deployments into a source-control platform's deployment
// tracking API.
type Tracker interface {
	// CreateDeployment creates a deployment record. It returns false if no
	// record was created, such as when the platform declined to create one.
	CreateDeployment(ctx context.Context, req RecordRequest) (Record, bool, error)
	// CreateDeploymentStatus posts a status update to a created record.
	CreateDeploymentStatus(ctx context.Context, req StatusRequest) error
}

// RecordRequest is a request to create a deployment record.
type RecordRequest struct {
	Ref                   string
	Environment           string
	ProductionEnvironment bool
	Description           string
}

// Record is a created deployment record.
type Record struct {
	ID                    int64
	Ref                   string
	Environment           string
	ProductionEnvironment bool
}

// StatusRequest is a request to post a status update to a deployment record.
type StatusRequest struct {
	RecordID              int64
	State                 string
	Environment           string
	EnvironmentURL        string
	ProductionEnvironment bool
	Description           string
	AutoInactive          bool
}

// Outputs sets named outputs of the CI run.
type Outputs interface {
	SetOutput(name, value string) error
}

// SummaryWriter writes the job summary of the CI run.
type SummaryWriter interface {
	WriteSummary(markdown string) error
}
