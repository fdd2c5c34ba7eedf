package inputs

import (
	"errors"

	"github.com/iver-wharf/wharf-pages/internal/errutil"
	"gopkg.in/guregu/null.v4"
)

// ErrRequired is returned when a required input was not supplied.
var ErrRequired = errors.New("input required and not supplied")

// Reader reads named inputs from a Source and collects all validation errors,
// so they can all be reported at once.
type Reader struct {
	Source Source
	errs   errutil.Slice
}

// NewReader returns a new Reader using the given sources, in order of
// precedence.
func NewReader(sources ...Source) *Reader {
	return &Reader{Source: SourceSlice(sources)}
}

// Required returns the value of a required input. If the input is missing,
// an error is recorded and an empty string is returned.
func (r *Reader) Required(name string) string {
	in, ok := r.lookup(name)
	if !ok {
		r.errs.Add(errutil.Scope(ErrRequired, "inputs", name))
		return ""
	}
	return in.Value
}

// Optional returns the value of an optional input, or an invalid null.String
// if the input is missing.
func (r *Reader) Optional(name string) null.String {
	in, ok := r.lookup(name)
	if !ok {
		return null.String{}
	}
	return null.StringFrom(in.Value)
}

// OptionalOr returns the value of an optional input, or the fallback value if
// the input is missing.
func (r *Reader) OptionalOr(name, fallback string) string {
	in, ok := r.lookup(name)
	if !ok {
		return fallback
	}
	return in.Value
}

// Errs returns all errors recorded so far.
func (r *Reader) Errs() errutil.Slice {
	return r.errs
}

func (r *Reader) lookup(name string) (Input, bool) {
	if r.Source == nil {
		return Input{}, false
	}
	in, ok := r.Source.Lookup(name)
	if !ok || in.Value == "" {
		return Input{}, false
	}
	log.Debug().
		WithString("input", name).
		WithString("source", in.Source).
		Message("Read input.")
	return in, true
}
