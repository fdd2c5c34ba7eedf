package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
)

// FetchDeployment fetches the latest deployment of a project. If the first
// fetch lacks stage data, it waits for the retry delay and fetches once more.
// The second result is returned as-is, even if it still lacks stage data.
func FetchDeployment(ctx context.Context, api DeploymentAPI, projectName string, retryDelay time.Duration) (pagesapi.Deployment, error) {
	deployment, err := api.GetDeployment(ctx, projectName)
	if err != nil {
		return pagesapi.Deployment{}, stepError(ErrStatusFetch,
			fmt.Errorf("fetch deployment of %q: %w", projectName, err))
	}
	if deployment.HasStages() {
		return deployment, nil
	}

	log.Warn().
		WithString("project", projectName).
		WithDuration("delay", retryDelay).
		Message("Deployment has no stage data. This sometimes happens on a project's first deployment. Retrying once after delay.")
	if err := sleepContext(ctx, retryDelay); err != nil {
		return pagesapi.Deployment{}, stepError(ErrStatusFetch, err)
	}
	deployment, err = api.GetDeployment(ctx, projectName)
	if err != nil {
		return pagesapi.Deployment{}, stepError(ErrStatusFetch,
			fmt.Errorf("fetch deployment of %q: %w", projectName, err))
	}
	if !deployment.HasStages() {
		log.Warn().
			WithString("project", projectName).
			Message("Deployment still has no stage data, continuing anyway.")
	}
	return deployment, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
