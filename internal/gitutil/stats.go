package gitutil

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/cli/safeexec"
)

var (
	// ErrGitFatal is returned by Git for fatal application errors, such as
	// if Git cannot find the .git directory.
	ErrGitFatal = errors.New("git error")

	// ErrGitUsage is returned by Git for errors in command line usage.
	ErrGitUsage = errors.New("git invalid usage")
)

// Stats contains info about a Git repository.
type Stats struct {
	CurrentBranch      string
	CommitHash         string
	Remotes            map[string]Remote
	EstimatedRepoOwner string
	EstimatedRepoName  string
}

// Remote is a Git remote, containing the fetch and pull URLs.
type Remote struct {
	FetchURL string
	PushURL  string
}

// StatsFromExec obtains Git repo stats by executing different Git commands.
//
// The current branch is empty when HEAD is detached, which is the usual case
// for CI checkouts.
func StatsFromExec(dir string) (Stats, error) {
	currentBranch, err := execGitCmd(dir, "branch", "--show-current")
	if err != nil {
		return Stats{}, err
	}

	commitHash, err := execGitCmd(dir, "rev-parse", "HEAD")
	if err != nil {
		return Stats{}, err
	}

	remotesStrs, err := execGitCmdLines(dir, "remote", "--verbose", "show", "-n")
	if err != nil {
		return Stats{}, err
	}
	remotes := parseRemotes(remotesStrs)

	stats := Stats{
		CurrentBranch: currentBranch,
		CommitHash:    commitHash,
		Remotes:       remotes,
	}
	if origin, ok := remotes["origin"]; ok {
		stats.EstimatedRepoOwner, stats.EstimatedRepoName = estimateRepoOwnerAndName(origin)
	}
	return stats, nil
}

func parseRemotes(strs []string) map[string]Remote {
	remotes := make(map[string]Remote)
	for _, line := range strs {
		var name, url, kind string
		_, err := fmt.Sscanf(line, "%s\t%s %s", &name, &url, &kind)
		if err != nil {
			continue
		}
		r := remotes[name]
		switch kind {
		case "(fetch)":
			r.FetchURL = url
		case "(push)":
			r.PushURL = url
		}
		remotes[name] = r
	}
	return remotes
}

func execGitCmdLines(dir string, args ...string) ([]string, error) {
	output, err := execGitCmd(dir, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return nil, nil
	}
	return strings.Split(output, "\n"), nil
}

func execGitCmd(dir string, args ...string) (string, error) {
	gitBin, err := safeexec.LookPath("git")
	if err != nil {
		return "", wrapGitExecError(err, args)
	}
	cmd := exec.Command(gitBin, append([]string{"-C", dir, "--no-pager"}, args...)...)
	outBytes, err := cmd.CombinedOutput()
	outBytes = bytes.TrimSpace(outBytes)
	if err != nil {
		return "", convGitExecError(err, outBytes, args)
	}
	return string(outBytes), nil
}

func convGitExecError(err error, outBytes []byte, args []string) error {
	if _, isExecError := err.(*exec.Error); isExecError {
		// No need to wrap it. The exec error contains enough context.
		return err
	}
	exitErr, isExitError := err.(*exec.ExitError)
	if !isExitError {
		return wrapGitExecError(err, args)
	}
	// https://git-scm.com/docs/api-error-handling
	switch exitErr.ExitCode() {
	case 128:
		return wrapGitExecError(fmt.Errorf("%w: %s", ErrGitFatal, outBytes), args)
	case 129:
		return wrapGitExecError(fmt.Errorf("%w: %s", ErrGitUsage, outBytes), args)
	default:
		return wrapGitExecError(err, args)
	}
}

func wrapGitExecError(err error, args []string) error {
	return fmt.Errorf("exec %q: %w",
		strings.Join(append([]string{"git"}, args...), " "), err)
}

// Regex patterns for estimating the repo owner and name. The (?:v\d+/)? part
// removes any versioned paths, ex the "/v3/", that Azure DevOps uses.
var estURLRegex = regexp.MustCompile(
	`\w+://[^/]+/(?:v\d+/)?(.*)/([^/]+)`)
var estSSHRegex = regexp.MustCompile(
	`\w+:(?:v\d+/)?(.*)/([^/]+)`)

func estimateRepoOwnerAndName(origin Remote) (string, string) {
	url := origin.FetchURL
	if url == "" {
		url = origin.PushURL
	}
	if url == "" {
		return "", ""
	}
	groups := estURLRegex.FindStringSubmatch(url)
	if groups == nil {
		groups = estSSHRegex.FindStringSubmatch(url)
	}
	if groups == nil {
		return "", ""
	}
	return strings.TrimSuffix(groups[1], "/_git"),
		strings.TrimSuffix(groups[2], ".git")
}
