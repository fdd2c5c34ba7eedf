package inputs

import (
	"os"
	"strings"
)

const osEnvSourceName = "OS environment variables"

// NewOSEnvSource creates a new Source that uses your OS environment variables
// with a prefix as inputs. The input name is uppercased and spaces are
// replaced with underscores, the same way GitHub Actions names its INPUT_
// variables, so with the prefix "WHARF_PAGES_INPUT_" the input
// "projectName" is read from WHARF_PAGES_INPUT_PROJECTNAME.
func NewOSEnvSource(prefix string) Source {
	return osEnvSource{
		prefix:  prefix,
		label:   osEnvSourceName,
		keyFunc: actionsInputKey,
	}
}

func actionsInputKey(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

type osEnvSource struct {
	prefix  string
	label   string
	keyFunc func(name string) string
}

// Lookup tries to look up a value based on name and returns that value as
// well as true on success, or false if the input was not found. Values are
// trimmed from whitespace, and empty values are treated as not found.
func (s osEnvSource) Lookup(name string) (Input, bool) {
	val, ok := os.LookupEnv(s.prefix + s.keyFunc(name))
	if !ok {
		return Input{}, false
	}
	val = strings.TrimSpace(val)
	if val == "" {
		return Input{}, false
	}
	return Input{
		Name:   name,
		Value:  val,
		Source: s.label,
	}, true
}
