package ignorer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticIgnorer bool

func (i staticIgnorer) Ignore(string, string) bool {
	return bool(i)
}

func TestNewAny(t *testing.T) {
	assert.False(t, NewAny().Ignore("", "foo"))
	assert.False(t, NewAny(nil, staticIgnorer(false)).Ignore("", "foo"))
	assert.True(t, NewAny(staticIgnorer(false), nil, staticIgnorer(true)).Ignore("", "foo"))
}

func TestPathIgnorer(t *testing.T) {
	i := NewPathIgnorer("deploy.ignore", "assets/secret.txt")

	assertIgnore(t, i, true, "deploy.ignore")
	assertIgnore(t, i, true, "assets/secret.txt")
	assertIgnore(t, i, true, "assets/../deploy.ignore")
	assertIgnore(t, i, false, "assets")
	assertIgnore(t, i, false, "index.html")
}

func TestFileIgnorer(t *testing.T) {
	dir := t.TempDir()
	ignoreFile := filepath.Join(dir, "deploy.ignore")
	require.NoError(t, os.WriteFile(ignoreFile, []byte("*.map\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js.map"), nil, 0644))

	i, err := NewFileIgnorer(ignoreFile)
	require.NoError(t, err)

	assert.False(t, i.Ignore(filepath.Join(dir, "app.js"), "app.js"))
	assert.True(t, i.Ignore(filepath.Join(dir, "app.js.map"), "app.js.map"))
}

func assertIgnore(t *testing.T, i Ignorer, want bool, path string) {
	t.Helper()
	path = filepath.FromSlash(path)
	got := i.Ignore("", path)
	if got != want {
		t.Errorf("want Ignore(%q) = %t, got %t", path, want, got)
	}
}
