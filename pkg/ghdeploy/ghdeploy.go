// Package ghdeploy mirrors pages deployments into GitHub's deployments API,
// so a deployment record with a status shows up on the deployed commit.
package ghdeploy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v45/github"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-pages/pkg/pages"
	"golang.org/x/oauth2"
)

var log = logger.NewScoped("GITHUB")

// Config holds settings for the GitHub deployments API.
type Config struct {
	// APIURL is the root URL of the GitHub REST API. Empty means
	// https://api.github.com/. For GitHub Enterprise Server, this includes
	// the API path, such as:
	// 	https://github.example.com/api/v3/
	APIURL string
}

// Repository is a GitHub repository, identified by its owner and name.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses a repository on the "owner/name" form, as found in
// the GITHUB_REPOSITORY environment variable.
func ParseRepository(value string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(value), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("invalid repository, expected owner/name: %q", value)
	}
	return Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// Tracker creates deployment records and deployment statuses in a GitHub
// repository.
type Tracker struct {
	client *github.Client
	repo   Repository
}

// ensure it conforms to the interface
var _ pages.Tracker = (*Tracker)(nil)

// NewTracker creates a new tracker that authenticates using the given token.
func NewTracker(cfg Config, token string, repo Repository) (*Tracker, error) {
	httpClient := oauth2.NewClient(context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	client := github.NewClient(httpClient)
	if cfg.APIURL != "" {
		baseURL, err := parseBaseURL(cfg.APIURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = baseURL
	}
	return &Tracker{client: client, repo: repo}, nil
}

// CreateDeployment creates a deployment record against the request's ref. It
// returns false if GitHub responded with anything other than
// 201 (Created), such as when an auto-merge was attempted.
func (t *Tracker) CreateDeployment(ctx context.Context, req pages.RecordRequest) (pages.Record, bool, error) {
	deployment, resp, err := t.client.Repositories.CreateDeployment(ctx, t.repo.Owner, t.repo.Name, &github.DeploymentRequest{
		Ref:                   github.String(req.Ref),
		AutoMerge:             github.Bool(false),
		RequiredContexts:      &[]string{},
		Environment:           github.String(req.Environment),
		Description:           github.String(req.Description),
		ProductionEnvironment: github.Bool(req.ProductionEnvironment),
	})
	var accepted *github.AcceptedError
	if errors.As(err, &accepted) {
		log.Warn().
			WithString("repo", t.repo.String()).
			Message("GitHub accepted but did not create the deployment.")
		return pages.Record{}, false, nil
	}
	if err != nil {
		return pages.Record{}, false, fmt.Errorf("create deployment in %s: %w", t.repo, err)
	}
	if resp == nil || resp.StatusCode != http.StatusCreated {
		log.Warn().
			WithString("repo", t.repo.String()).
			Message("Unexpected response when creating deployment, expected 201 (Created).")
		return pages.Record{}, false, nil
	}
	return pages.Record{
		ID:                    deployment.GetID(),
		Ref:                   deployment.GetRef(),
		Environment:           deployment.GetEnvironment(),
		ProductionEnvironment: req.ProductionEnvironment,
	}, true, nil
}

// CreateDeploymentStatus posts a status to a deployment record.
//
// GitHub's deployment statuses have no production flag, as that is set on the
// deployment record itself, so the request's ProductionEnvironment is unused.
func (t *Tracker) CreateDeploymentStatus(ctx context.Context, req pages.StatusRequest) error {
	_, _, err := t.client.Repositories.CreateDeploymentStatus(ctx, t.repo.Owner, t.repo.Name, req.RecordID, &github.DeploymentStatusRequest{
		State:          github.String(req.State),
		Description:    github.String(req.Description),
		Environment:    github.String(req.Environment),
		EnvironmentURL: github.String(req.EnvironmentURL),
		AutoInactive:   github.Bool(req.AutoInactive),
	})
	if err != nil {
		return fmt.Errorf("create status for deployment %d in %s: %w", req.RecordID, t.repo, err)
	}
	return nil
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse GitHub API URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("GitHub API URL must be absolute: %q", rawURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}
