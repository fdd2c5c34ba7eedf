package ghactions

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sethvargo/go-githubactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAction(env map[string]string, w *bytes.Buffer) *githubactions.Action {
	return githubactions.New(
		githubactions.WithGetenv(func(key string) string {
			return env[key]
		}),
		githubactions.WithWriter(w),
	)
}

func TestRunnerSetOutput_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	var buf bytes.Buffer
	r := NewRunner(newTestAction(map[string]string{envOutputFile: path}, &buf))

	require.NoError(t, r.SetOutput("id", "dep-1"))
	require.NoError(t, r.SetOutput("url", "https://a.example\nsecond line"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "id<<")
	assert.Contains(t, content, "\ndep-1\n")
	assert.Contains(t, content, "url<<")
	assert.Contains(t, content, "\nhttps://a.example\nsecond line\n")
	assert.Less(t, strings.Index(content, "id<<"), strings.Index(content, "url<<"))
	assert.NotContains(t, buf.String(), "set-output")
}

func TestRunnerSetOutput_notInActions(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(newTestAction(nil, &buf))

	require.NoError(t, r.SetOutput("environment", "demo (Preview)"))
	assert.Empty(t, buf.String())
}

func TestRunnerSetOutput_unwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "output")
	var buf bytes.Buffer
	r := NewRunner(newTestAction(map[string]string{envOutputFile: path}, &buf))

	assert.Error(t, r.SetOutput("id", "dep-1"))
}

func TestRunnerWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	require.NoError(t, os.WriteFile(path, []byte("# Earlier step\n"), 0o644))
	var buf bytes.Buffer
	r := NewRunner(newTestAction(map[string]string{envSummaryFile: path}, &buf))

	require.NoError(t, r.WriteSummary("# Deploying\n\n| a | b |"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Earlier step\n# Deploying\n\n| a | b |"),
		"unexpected summary file:\n%s", data)
}

func TestRunnerWriteSummary_createsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	var buf bytes.Buffer
	r := NewRunner(newTestAction(map[string]string{envSummaryFile: path}, &buf))

	require.NoError(t, r.WriteSummary("# Deploying"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Deploying")
}

func TestRunnerWriteSummary_stdout(t *testing.T) {
	var stdout bytes.Buffer
	r := NewRunner(newTestAction(nil, &bytes.Buffer{}))
	r.Stdout = &stdout

	require.NoError(t, r.WriteSummary("# Deploying"))
	assert.Equal(t, "# Deploying\n", stdout.String())
}

func TestRunnerError(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(newTestAction(nil, &buf))

	r.Error("Upload failed: 100% broken\nsee logs")
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "::error"), "unexpected command: %q", out)
	assert.Contains(t, out, "Upload failed: 100%25 broken%0Asee logs")
}

func TestNewEnv(t *testing.T) {
	action := newTestAction(map[string]string{
		"GITHUB_ACTIONS":    "true",
		"GITHUB_REF_NAME":   "main",
		"GITHUB_REF":        "refs/heads/main",
		"GITHUB_REPOSITORY": "octo/site",
	}, &bytes.Buffer{})

	env := NewEnv(action)
	assert.Equal(t, Env{
		Actions:    true,
		RefName:    "main",
		Ref:        "refs/heads/main",
		Repository: "octo/site",
	}, env)
	assert.Equal(t, "main", env.Branch())
}

func TestEnvBranch_prefersHeadRef(t *testing.T) {
	env := Env{HeadRef: "feature/x", RefName: "12/merge"}
	assert.Equal(t, "feature/x", env.Branch())
}
