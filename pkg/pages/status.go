package pages

import "github.com/iver-wharf/wharf-pages/pkg/pagesapi"

// DeployStageName is the name of the stage inspected to derive the status.
const DeployStageName = "deploy"

// Status is the coarse status of a deployment, used for reporting only.
type Status byte

const (
	// StatusInProgress means the deploy stage has not reached a terminal
	// state, or is missing.
	StatusInProgress Status = iota
	// StatusSuccess means the deploy stage succeeded.
	StatusSuccess
	// StatusFailed means the deploy stage failed.
	StatusFailed
)

// ClassifyStatus maps the deployment's deploy stage to a coarse status.
func ClassifyStatus(deployment pagesapi.Deployment) Status {
	stage, ok := deployment.Stage(DeployStageName)
	if !ok {
		return StatusInProgress
	}
	switch stage.Status {
	case pagesapi.StageStatusSuccess:
		return StatusSuccess
	case pagesapi.StageStatusFailure:
		return StatusFailed
	default:
		return StatusInProgress
	}
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Deploy successful"
	case StatusFailed:
		return "Deployment failed"
	default:
		return "Deployment in progress"
	}
}

// Emoji returns an icon for the status.
func (s Status) Emoji() string {
	switch s {
	case StatusSuccess:
		return "✅"
	case StatusFailed:
		return "🚫"
	default:
		return "⚡️"
	}
}
