package ziputil

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/iver-wharf/wharf-pages/internal/ignorer"
)

var log = logger.NewScoped("ZIP")

// Options contains optional settings for how to zip a directory.
type Options struct {
	// Path is the directory to zip.
	Path string
	// Ignorer is an optional file filter.
	Ignorer ignorer.Ignorer
}

// Dir will recursively zip the contents of an entire directory. Hidden files
// (files that start with a dot) are included. The name of the target directory
// is not included in the archive, but instead only the children. Regular
// files get entries, and so do empty directories, named with a trailing slash.
// Other directories are implied by the entry names.
//
// The zip central directory is written before returning, so on a nil error
// the writer has received the complete archive. The writer itself is not
// closed.
//
// Returns the number of file entries written, not counting directories.
func Dir(w io.Writer, opts Options) (int, error) {
	rootDirPath, err := filepath.Abs(opts.Path)
	if err != nil {
		return 0, err
	}
	zw := zip.NewWriter(w)
	var count int
	fileSys := os.DirFS(rootDirPath)
	walkErr := fs.WalkDir(fileSys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return nil
		}
		absPath := filepath.Join(rootDirPath, path)
		relPath := filepath.FromSlash(path)
		if opts.Ignorer != nil && opts.Ignorer.Ignore(absPath, relPath) {
			log.Debug().WithString("path", path).Message("Ignoring path.")
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return addDirIfEmpty(zw, fileSys, path)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			log.Debug().WithString("path", path).Message("Skipping non-regular file.")
			return nil
		}
		if err := addFile(zw, absPath, path, info); err != nil {
			return err
		}
		count++
		return nil
	})
	if walkErr != nil {
		zw.Close()
		return count, walkErr
	}
	return count, zw.Close()
}

func addDirIfEmpty(zw *zip.Writer, fileSys fs.FS, name string) error {
	children, err := fs.ReadDir(fileSys, name)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return nil
	}
	info, err := fs.Stat(fileSys, name)
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name + "/"
	header.Method = zip.Store
	_, err = zw.CreateHeader(header)
	return err
}

func addFile(zw *zip.Writer, absPath, name string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	// fs.WalkDir paths always use forward slashes, as required by zip.
	header.Name = name
	header.Method = zip.Deflate
	entry, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	file, err := os.Open(absPath)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(entry, file)
	return err
}
