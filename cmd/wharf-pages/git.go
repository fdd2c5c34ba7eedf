package main

import (
	"errors"

	"github.com/iver-wharf/wharf-pages/internal/ghactions"
	"github.com/iver-wharf/wharf-pages/internal/gitutil"
	"github.com/iver-wharf/wharf-pages/pkg/ghdeploy"
)

// gitLookup runs Git at most once, and only if asked to.
type gitLookup struct {
	dir     string
	statsFn func(dir string) (gitutil.Stats, error)

	done  bool
	stats gitutil.Stats
	err   error
}

func newGitLookup(dir string) *gitLookup {
	return &gitLookup{dir: dir, statsFn: gitutil.StatsFromExec}
}

func (g *gitLookup) Stats() (gitutil.Stats, error) {
	if g == nil || g.statsFn == nil {
		return gitutil.Stats{}, errors.New("no git repository")
	}
	if !g.done {
		g.stats, g.err = g.statsFn(g.dir)
		g.done = true
		if g.err != nil {
			log.Debug().WithError(g.err).WithString("dir", g.dir).
				Message("Failed to read local Git repository.")
		}
	}
	return g.stats, g.err
}

// resolveBranch returns the first non-empty of: the branch input, the pull
// request head branch, the ref name, or the local Git branch.
func resolveBranch(input string, env ghactions.Env, git *gitLookup) string {
	if input != "" {
		return input
	}
	if branch := env.Branch(); branch != "" {
		return branch
	}
	stats, err := git.Stats()
	if err != nil {
		return ""
	}
	return stats.CurrentBranch
}

// resolveRef returns the ref to create GitHub deployments against. It falls
// back to GITHUB_REF, and then the local commit hash, when no branch is known.
func resolveRef(branch string, env ghactions.Env, git *gitLookup) string {
	if branch != "" {
		return branch
	}
	if env.Ref != "" {
		return env.Ref
	}
	stats, err := git.Stats()
	if err != nil {
		return ""
	}
	return stats.CommitHash
}

// resolveRepository returns the repository from GITHUB_REPOSITORY, or
// estimates it from the local Git origin remote.
func resolveRepository(env ghactions.Env, git *gitLookup) (ghdeploy.Repository, error) {
	if env.Repository != "" {
		return ghdeploy.ParseRepository(env.Repository)
	}
	stats, err := git.Stats()
	if err != nil {
		return ghdeploy.Repository{}, err
	}
	if stats.EstimatedRepoOwner == "" || stats.EstimatedRepoName == "" {
		return ghdeploy.Repository{}, errors.New("unable to estimate repository from Git origin remote")
	}
	return ghdeploy.Repository{
		Owner: stats.EstimatedRepoOwner,
		Name:  stats.EstimatedRepoName,
	}, nil
}
