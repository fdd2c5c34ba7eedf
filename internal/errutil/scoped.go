package errutil

import (
	"errors"
	"strings"
)

// ScopeDelimiter is the string put between each part of a scope path.
const ScopeDelimiter = "/"

// Scope creates a new scoped error. The full scope path can later be retrieved
// from the first scope found via errors.As.
//
// Scoping an already scoped error prepends the new paths, so the outermost
// scope comes first:
//
//	Scope(Scope(err, "projectName"), "inputs").Error() // inputs/projectName: ...
func Scope(err error, paths ...string) error {
	if err == nil {
		return nil
	}
	scope := strings.Join(paths, ScopeDelimiter)
	var inner Scoped
	if errors.As(err, &inner) {
		return Scoped{
			scope: joinScope(scope, inner.scope),
			inner: inner.inner,
		}
	}
	return Scoped{
		scope: scope,
		inner: err,
	}
}

// AsScope returns the error's scope, or empty string if the error isn't scoped.
func AsScope(err error) string {
	var scoped Scoped
	if errors.As(err, &scoped) {
		return scoped.scope
	}
	return ""
}

// Scoped is an error that has a scope. Each scope adds a substring to the
// scope path, delimited by a slash.
type Scoped struct {
	scope string
	inner error
}

// Scope returns the full scope path of this error.
func (err Scoped) Scope() string {
	return err.scope
}

// Error implements the error interface. The scope is prefixed to the inner
// error message.
func (err Scoped) Error() string {
	if err.inner == nil {
		return err.scope
	}
	if err.scope == "" {
		return err.inner.Error()
	}
	return err.scope + ": " + err.inner.Error()
}

// Is implements the interface to support errors.Is.
func (err Scoped) Is(target error) bool {
	return errors.Is(err.inner, target)
}

// Unwrap implements the interface to support errors.Unwrap.
func (err Scoped) Unwrap() error {
	return err.inner
}

func joinScope(outer, inner string) string {
	switch {
	case outer == "":
		return inner
	case inner == "":
		return outer
	default:
		return outer + ScopeDelimiter + inner
	}
}
