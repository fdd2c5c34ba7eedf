package ignorer

import (
	"github.com/denormal/go-gitignore"
)

// NewFileIgnorer creates a new ignorer that checks if a file should be
// ignored or not using the patterns of a single file written in .gitignore
// syntax. Patterns are relative to the directory the file resides in.
func NewFileIgnorer(path string) (Ignorer, error) {
	ignore, err := gitignore.NewFromFile(path)
	if err != nil {
		return nil, err
	}
	return &fileIgnorer{ignore}, nil
}

type fileIgnorer struct {
	ignore gitignore.GitIgnore
}

func (i *fileIgnorer) Ignore(absPath, _ string) bool {
	match := i.ignore.Match(absPath)
	if match == nil {
		return false
	}
	return match.Ignore()
}
