package ghactions

import "github.com/sethvargo/go-githubactions"

// Env holds the GitHub Actions default environment variables this program
// reads.
type Env struct {
	// Actions is true when running inside GitHub Actions.
	Actions bool
	// HeadRef is the head branch of a pull request. Only set for
	// pull_request events.
	HeadRef string
	// RefName is the short branch or tag name that triggered the run.
	RefName string
	// Ref is the fully-formed ref that triggered the run, such as
	// "refs/heads/main".
	Ref string
	// Repository is the owner and repository name, such as
	// "iver-wharf/wharf-pages".
	Repository string
}

// NewEnv reads the GitHub Actions environment variables through the action.
func NewEnv(action *githubactions.Action) Env {
	return Env{
		Actions:    action.Getenv("GITHUB_ACTIONS") == "true",
		HeadRef:    action.Getenv("GITHUB_HEAD_REF"),
		RefName:    action.Getenv("GITHUB_REF_NAME"),
		Ref:        action.Getenv("GITHUB_REF"),
		Repository: action.Getenv("GITHUB_REPOSITORY"),
	}
}

// Branch returns the pull request head branch, or the ref name if this is not
// a pull request.
func (e Env) Branch() string {
	if e.HeadRef != "" {
		return e.HeadRef
	}
	return e.RefName
}
