package artifact

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = string(content)
	}
	return files
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, filepath.FromSlash("web/dist.zip"), PathFor("web/dist/"))
	assert.Equal(t, "dist.zip", PathFor("dist"))
}

func TestPackage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	files := map[string]string{
		"index.html":        "<h1>hello</h1>",
		"assets/app.js":     "console.log(1)",
		"assets/.keep":      "",
		"nested/deep/a.css": "body{}",
	}
	writeFiles(t, dir, files)

	a, err := Package(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, PathFor(dir), a.Path)
	assert.Equal(t, len(files), a.Entries)
	assert.Positive(t, a.Size)
	assert.Equal(t, files, readArchive(t, a.Path))

	matches, err := filepath.Glob(a.Path + ".*.tmp")
	require.NoError(t, err)
	assert.Empty(t, matches, "no temporary files left behind")
}

func TestPackageEmptyDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.Mkdir(dir, 0755))

	a, err := Package(dir, Options{})
	require.NoError(t, err)
	assert.Zero(t, a.Entries)
	assert.Empty(t, readArchive(t, a.Path))
}

func TestPackageOverwritesStaleArchive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	writeFiles(t, dir, map[string]string{"index.html": "new"})
	require.NoError(t, os.WriteFile(PathFor(dir), []byte("half-written garbage"), 0644))

	a, err := Package(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"index.html": "new"}, readArchive(t, a.Path))
}

func TestPackageKeepsDotfilesByDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	files := map[string]string{
		".pagesignore": "*.map\n",
		".gitignore":   "*.js\n",
		"index.html":   "<h1>hi</h1>",
		"app.js.map":   "map",
	}
	writeFiles(t, dir, files)

	a, err := Package(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, len(files), a.Entries)
	assert.Equal(t, files, readArchive(t, a.Path))
}

func TestPackageIgnoreFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "dist")
	ignoreFile := filepath.Join(root, "deploy.ignore")
	require.NoError(t, os.WriteFile(ignoreFile, []byte("*.map\n"), 0644))
	writeFiles(t, dir, map[string]string{
		"app.js":     "js",
		"app.js.map": "map",
	})

	a, err := Package(dir, Options{IgnoreFile: ignoreFile})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Entries)
	assert.Equal(t, map[string]string{"app.js": "js"}, readArchive(t, a.Path))
}

func TestPackageIgnoreFileInsideDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	writeFiles(t, dir, map[string]string{
		"deploy.ignore": "*.map\n",
		"app.js":        "js",
		"app.js.map":    "map",
	})

	a, err := Package(dir, Options{IgnoreFile: filepath.Join(dir, "deploy.ignore")})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"app.js": "js"}, readArchive(t, a.Path))
}

func TestPackageIgnoreFileMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	writeFiles(t, dir, map[string]string{"index.html": "x"})

	_, err := Package(dir, Options{IgnoreFile: filepath.Join(dir, "nope")})
	assert.Error(t, err)
	assert.NoFileExists(t, PathFor(dir))
}

func TestPackageMissingDir(t *testing.T) {
	_, err := Package(filepath.Join(t.TempDir(), "missing"), Options{})
	assert.Error(t, err)
}

func TestPackageNotADir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err := Package(file, Options{})
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	writeFiles(t, dir, map[string]string{"index.html": "x"})
	a, err := Package(dir, Options{})
	require.NoError(t, err)

	require.NoError(t, a.Remove())
	assert.NoFileExists(t, a.Path)
	assert.NoError(t, a.Remove(), "removing twice")
}
