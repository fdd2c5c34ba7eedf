package pagesapi

import "gopkg.in/guregu/null.v4"

// ProjectList is the response from listing projects.
type ProjectList struct {
	Items []ProjectListItem `json:"items"`
}

// ProjectListItem is a single project as seen when listing projects. Only the
// fields used for resolving projects are decoded.
type ProjectListItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateProjectRequest is the request body when creating a new project.
//
// Either DatabaseID or Name is sent, depending on if the project is scoped to
// a database.
type CreateProjectRequest struct {
	ProjectName string `json:"projectName"`
	DatabaseID  string `json:"databaseId,omitempty"`
	Name        string `json:"name,omitempty"`
}

// CreateProjectResponse is the response from creating a new project.
type CreateProjectResponse struct {
	ID string `json:"id"`
}

// Project is the full project record, including branch and domain config.
type Project struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name"`
	Subdomain        string   `json:"subdomain,omitempty"`
	ProductionBranch string   `json:"production_branch"`
	Domains          []string `json:"domains"`
}

// UploadResponse is the acknowledgement from uploading a deployment.
type UploadResponse struct {
	Message string `json:"message"`
}

// Deployment is a single published version of an uploaded artifact.
//
// The Stages field is nil when the hosting backend has not yet indexed the
// deployment, which can happen right after a project's first deployment.
type Deployment struct {
	ID                string   `json:"id"`
	ShortID           string   `json:"short_id,omitempty"`
	ProjectName       string   `json:"project_name,omitempty"`
	URL               string   `json:"url"`
	Environment       string   `json:"environment"`
	Aliases           []string `json:"aliases"`
	Stages            []Stage  `json:"stages"`
	DeploymentTrigger Trigger  `json:"deployment_trigger"`
}

// HasStages returns true if the deployment contains any stage data, even if
// it's an empty list.
func (d Deployment) HasStages() bool {
	return d.Stages != nil
}

// Stage returns the stage with the given name, or false if no such stage
// exists.
func (d Deployment) Stage(name string) (Stage, bool) {
	for _, s := range d.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}

// Stage is a named phase of server-side deployment processing.
type Stage struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	StartedOn null.Time `json:"started_on"`
	EndedOn   null.Time `json:"ended_on"`
}

// Known stage statuses.
const (
	StageStatusIdle    = "idle"
	StageStatusActive  = "active"
	StageStatusSuccess = "success"
	StageStatusFailure = "failure"
)

// Trigger holds info about what triggered the deployment.
type Trigger struct {
	Type     string          `json:"type"`
	Metadata TriggerMetadata `json:"metadata"`
}

// TriggerMetadata holds the Git metadata of a deployment trigger.
type TriggerMetadata struct {
	Branch        null.String `json:"branch"`
	CommitHash    null.String `json:"commit_hash"`
	CommitMessage null.String `json:"commit_message"`
}
