package errutil

import "strings"

// Slice is a slice of errors.
type Slice []error

// Add appends another error to this slice of errors. Nil errors are ignored.
func (s *Slice) Add(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		*s = append(*s, err)
	}
}

// Error implements the error interface by joining all error messages with
// a semicolon.
func (s Slice) Error() string {
	msgs := make([]string, len(s))
	for i, err := range s {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ErrOrNil returns nil if the slice is empty, or the slice itself otherwise.
// Useful to not return a non-nil error interface wrapping an empty slice.
func (s Slice) ErrOrNil() error {
	if len(s) == 0 {
		return nil
	}
	return s
}
