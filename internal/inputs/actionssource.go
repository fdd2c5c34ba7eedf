package inputs

import "github.com/sethvargo/go-githubactions"

const actionsSourceName = "GitHub Actions inputs"

// NewActionsSource creates a new Source that reads GitHub Actions inputs, so
// the input "projectName" is read from INPUT_PROJECTNAME. Empty values are
// treated as not found.
func NewActionsSource(action *githubactions.Action) Source {
	return actionsSource{action}
}

type actionsSource struct {
	action *githubactions.Action
}

func (s actionsSource) Lookup(name string) (Input, bool) {
	val := s.action.GetInput(name)
	if val == "" {
		return Input{}, false
	}
	return Input{
		Name:   name,
		Value:  val,
		Source: actionsSourceName,
	}, true
}
