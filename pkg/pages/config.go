package pages

import (
	"fmt"
	"strings"
	"time"
)

// Backend is the hosting backend variant to deploy against.
type Backend string

const (
	// BackendManaged looks up the project by name, and creates it if it does
	// not exist. Upload acknowledgements must carry the message "ok".
	BackendManaged Backend = "managed"
	// BackendDirect skips the lookup and create steps, and uses the project
	// name as project ID. Upload acknowledgements are checked by HTTP status.
	BackendDirect Backend = "direct"
)

// ParseBackend parses a backend name, case-insensitively.
func ParseBackend(value string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(BackendManaged):
		return BackendManaged, nil
	case string(BackendDirect):
		return BackendDirect, nil
	default:
		return "", fmt.Errorf(`invalid backend %q: must be one of "managed" or "direct"`, value)
	}
}

// Config holds settings for the deployment workflow.
type Config struct {
	// Backend is the hosting backend variant. Either "managed" or "direct".
	Backend Backend

	// IndexRetryDelay is how long to wait before fetching the deployment a
	// second time, if the first fetch lacked stage data. This happens when the
	// hosting backend has not yet indexed a project's first deployment.
	IndexRetryDelay time.Duration

	// Description is the description sent to the source-control platform on
	// deployment records and deployment statuses.
	Description string

	// IgnoreFile is an optional path to a file in .gitignore syntax whose
	// matching paths are left out of the uploaded archive. Empty means every
	// regular file in the directory is uploaded.
	IgnoreFile string
}

// DefaultConfig is the default deployment workflow config.
var DefaultConfig = Config{
	Backend:         BackendManaged,
	IndexRetryDelay: 20 * time.Second,
	Description:     "Wharf Pages",
}
