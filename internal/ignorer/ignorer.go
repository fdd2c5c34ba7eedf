package ignorer

import "path/filepath"

// Ignorer is an interface for conditionally ignoring files or directory trees
// when creating an archive.
type Ignorer interface {
	// Ignore returns true to ignore a file, and false to include the file.
	Ignore(absPath, relPath string) bool
}

// NewAny returns an Ignorer implementation that returns true if any of the
// provided ignorers return true. Nil ignorers are skipped.
func NewAny(ignorers ...Ignorer) Ignorer {
	var nonNil ignoreIfAny
	for _, i := range ignorers {
		if i != nil {
			nonNil = append(nonNil, i)
		}
	}
	return nonNil
}

type ignoreIfAny []Ignorer

func (m ignoreIfAny) Ignore(absPath, relPath string) bool {
	for _, i := range m {
		if i.Ignore(absPath, relPath) {
			return true
		}
	}
	return false
}

// NewPathIgnorer returns an Ignorer that ignores exact relative paths.
func NewPathIgnorer(relPaths ...string) Ignorer {
	set := make(pathIgnorer, len(relPaths))
	for _, p := range relPaths {
		set[filepath.Clean(p)] = struct{}{}
	}
	return set
}

type pathIgnorer map[string]struct{}

func (i pathIgnorer) Ignore(_, relPath string) bool {
	_, ok := i[filepath.Clean(relPath)]
	return ok
}
