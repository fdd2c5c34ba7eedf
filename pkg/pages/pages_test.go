package pages

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iver-wharf/wharf-pages/internal/pagestest"
	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
	"github.com/stretchr/testify/require"
)

const testToken = "secret-token"

func newTestAPI(t *testing.T) (*pagesapi.Client, *pagestest.Server) {
	srv := pagestest.NewServer(t, testToken)
	client, err := pagesapi.NewClient(pagesapi.Config{URL: srv.URL}, testToken)
	require.NoError(t, err)
	return client, srv
}

func writeTestDir(t *testing.T, files map[string]string) string {
	dir := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func deployedStages(status string) []pagesapi.Stage {
	return []pagesapi.Stage{
		{Name: "queued", Status: pagesapi.StageStatusSuccess},
		{Name: DeployStageName, Status: status},
	}
}

type fakeOutputs struct {
	values map[string]string
	err    error
}

func (o *fakeOutputs) SetOutput(name, value string) error {
	if o.err != nil {
		return o.err
	}
	if o.values == nil {
		o.values = make(map[string]string)
	}
	o.values[name] = value
	return nil
}

type fakeSummary struct {
	written []string
	err     error
}

func (s *fakeSummary) WriteSummary(markdown string) error {
	if s.err != nil {
		return s.err
	}
	s.written = append(s.written, markdown)
	return nil
}

type fakeTracker struct {
	createOK  bool
	createErr error
	statusErr error

	records  []RecordRequest
	statuses []StatusRequest
}

func (tr *fakeTracker) CreateDeployment(_ context.Context, req RecordRequest) (Record, bool, error) {
	tr.records = append(tr.records, req)
	if tr.createErr != nil {
		return Record{}, false, tr.createErr
	}
	if !tr.createOK {
		return Record{}, false, nil
	}
	return Record{
		ID:                    42,
		Ref:                   req.Ref,
		Environment:           req.Environment,
		ProductionEnvironment: req.ProductionEnvironment,
	}, true, nil
}

func (tr *fakeTracker) CreateDeploymentStatus(_ context.Context, req StatusRequest) error {
	tr.statuses = append(tr.statuses, req)
	return tr.statusErr
}

var errTrackerDown = errors.New("tracker is down")
