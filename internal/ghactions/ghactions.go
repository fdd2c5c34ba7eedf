// Package ghactions talks to the GitHub Actions runner through its
// environment files and workflow commands.
package ghactions

import (
	"fmt"
	"io"
	"os"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/sethvargo/go-githubactions"
)

var log = logger.NewScoped("ACTIONS")

const (
	envOutputFile  = "GITHUB_OUTPUT"
	envSummaryFile = "GITHUB_STEP_SUMMARY"
)

// Runner writes outputs, job summaries, and annotations. Outside of GitHub
// Actions, outputs are skipped and summaries are printed to Stdout instead.
type Runner struct {
	action *githubactions.Action
	// Stdout is where summaries are printed when GITHUB_STEP_SUMMARY is not
	// set.
	Stdout io.Writer
}

// NewRunner creates a new runner that writes through the given action.
// Annotations are written to the action's writer.
func NewRunner(action *githubactions.Action) *Runner {
	return &Runner{
		action: action,
		Stdout: os.Stdout,
	}
}

// SetOutput sets a named output of the current step.
func (r *Runner) SetOutput(name, value string) error {
	path := r.action.Getenv(envOutputFile)
	if path == "" {
		log.Debug().WithString("name", name).Message("GITHUB_OUTPUT not set, skipping output.")
		return nil
	}
	if err := ensureFile(path); err != nil {
		return err
	}
	r.action.SetOutput(name, value)
	return nil
}

// WriteSummary appends Markdown to the job summary.
func (r *Runner) WriteSummary(markdown string) error {
	path := r.action.Getenv(envSummaryFile)
	if path == "" {
		log.Debug().Message("GITHUB_STEP_SUMMARY not set, printing summary.")
		_, err := fmt.Fprintln(r.stdout(), markdown)
		return err
	}
	if err := ensureFile(path); err != nil {
		return err
	}
	r.action.AddStepSummary(markdown)
	return nil
}

// Error writes an error annotation workflow command.
func (r *Runner) Error(message string) {
	r.action.Errorf("%s", message)
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

// ensureFile creates the environment file if missing. The action only appends
// to existing files, and does not report write errors.
func ensureFile(path string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open environment file: %w", err)
	}
	return file.Close()
}
