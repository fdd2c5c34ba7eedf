package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-pages/internal/ignorer"
	"github.com/iver-wharf/wharf-pages/internal/ziputil"
)

var log = logger.NewScoped("ARTIFACT")

// Artifact is a single compressed archive file derived from a local
// directory.
type Artifact struct {
	// Path is the path to the archive file.
	Path string
	// Dir is the directory that was packaged.
	Dir string
	// Entries is the number of files in the archive.
	Entries int
	// Size is the archive file size in bytes.
	Size int64
}

// Options holds optional packaging settings. The zero value packages every
// regular file in the directory.
type Options struct {
	// IgnoreFile is an optional path to a file written in .gitignore syntax.
	// Matching paths are left out of the archive. Patterns are relative to
	// the directory the ignore file resides in. An ignore file inside the
	// packaged directory is itself left out.
	IgnoreFile string
}

// PathFor returns the archive path for a directory, which is the directory
// path with a .zip suffix.
func PathFor(dir string) string {
	return filepath.Clean(dir) + ".zip"
}

// Package zips the contents of a directory into a sibling archive file, named
// by PathFor. The directory's children are placed at the root of the archive.
//
// The archive is first written to a temporary file next to the target and
// then renamed, so the target path only ever holds a finalized and closed
// archive. On error the temporary file is removed.
func Package(dir string, opts Options) (Artifact, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Artifact{}, err
	}
	if !info.IsDir() {
		return Artifact{}, fmt.Errorf("not a directory: %s", dir)
	}
	ign, err := newIgnorer(dir, opts.IgnoreFile)
	if err != nil {
		return Artifact{}, err
	}

	target := PathFor(dir)
	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return Artifact{}, fmt.Errorf("create temporary archive: %w", err)
	}
	tmpPath := tmp.Name()
	entries, err := ziputil.Dir(tmp, ziputil.Options{Path: dir, Ignorer: ign})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		removeQuietly(tmpPath)
		return Artifact{}, fmt.Errorf("write archive: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		removeQuietly(tmpPath)
		return Artifact{}, fmt.Errorf("move archive into place: %w", err)
	}
	stat, err := os.Stat(target)
	if err != nil {
		return Artifact{}, err
	}
	log.Debug().
		WithString("path", target).
		WithInt("entries", entries).
		WithInt("bytes", int(stat.Size())).
		Message("Packaged directory.")
	return Artifact{
		Path:    target,
		Dir:     dir,
		Entries: entries,
		Size:    stat.Size(),
	}, nil
}

// Remove deletes the archive file. Removing an already removed archive is
// not an error.
func (a Artifact) Remove() error {
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func newIgnorer(dir, ignoreFile string) (ignorer.Ignorer, error) {
	if ignoreFile == "" {
		return nil, nil
	}
	abs, err := filepath.Abs(ignoreFile)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("ignore file: %w", err)
	}
	fileIgnorer, err := ignorer.NewFileIgnorer(abs)
	if err != nil {
		return nil, fmt.Errorf("parse ignore file %s: %w", ignoreFile, err)
	}
	log.Debug().WithString("file", abs).Message("Using ignore file.")
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(absDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fileIgnorer, nil
	}
	return ignorer.NewAny(ignorer.NewPathIgnorer(rel), fileIgnorer), nil
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().WithError(err).WithString("path", path).
			Message("Failed to remove temporary archive.")
	}
}
