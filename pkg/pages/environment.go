package pages

import (
	"fmt"

	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
	"gopkg.in/typ.v4/slices"
)

// Environment is the production or preview classification of a run.
type Environment struct {
	// Production is true when the branch is the project's production branch.
	Production bool
	// Label is the human-readable environment name, such as
	// "demo (Preview)".
	Label string
}

// ClassifyEnvironment classifies a run on the given branch. An empty branch
// is never considered production.
func ClassifyEnvironment(projectName, branch string, project pagesapi.Project) Environment {
	production := branch != "" && branch == project.ProductionBranch
	return Environment{
		Production: production,
		Label:      EnvironmentLabel(projectName, production),
	}
}

// EnvironmentLabel returns "<projectName> (Production)" or
// "<projectName> (Preview)".
func EnvironmentLabel(projectName string, production bool) string {
	if production {
		return fmt.Sprintf("%s (Production)", projectName)
	}
	return fmt.Sprintf("%s (Preview)", projectName)
}

// SelectAlias returns the branch preview URL of a deployment. For preview
// runs this is the first alias, or the deployment URL if there are no aliases.
// Production runs never get an alias.
func SelectAlias(production bool, deployment pagesapi.Deployment) (string, bool) {
	if production {
		return "", false
	}
	if alias := slices.SafeGet(deployment.Aliases, 0); alias != "" {
		return alias, true
	}
	return deployment.URL, deployment.URL != ""
}
