package pages

import "errors"

// Kinds of errors that can occur while deploying. Use errors.Is to check which
// step a returned error stems from.
var (
	// ErrProjectResolution is for failures to look up, create, or fetch the
	// remote project.
	ErrProjectResolution = errors.New("project resolution failed")
	// ErrPackaging is for failures to write the archive file.
	ErrPackaging = errors.New("packaging failed")
	// ErrUpload is for rejected or unacknowledged uploads.
	ErrUpload = errors.New("upload failed")
	// ErrStatusFetch is for failures to fetch the deployment.
	ErrStatusFetch = errors.New("status fetch failed")
	// ErrExternalTracking is for failures in the source-control platform's
	// deployment tracking. These errors are only ever logged.
	ErrExternalTracking = errors.New("external deployment tracking failed")
)

var (
	// ErrProjectNameNotAvailable is returned when a project could not be
	// created, such as when another account already owns the name.
	ErrProjectNameNotAvailable = errors.New("Project name not available")
	// ErrDeploymentUnsuccessful is returned when the hosting API did not
	// acknowledge the upload.
	ErrDeploymentUnsuccessful = errors.New("Something went wrong, deployment unsuccessful")
)

// StepError is an error from one of the deployment steps. The error message is
// the message of the wrapped error, unchanged.
type StepError struct {
	// Kind is one of the Err* kinds, such as ErrUpload.
	Kind error
	// Err is the underlying cause.
	Err error
}

func stepError(kind, err error) error {
	if err == nil {
		return nil
	}
	return StepError{Kind: kind, Err: err}
}

// Error implements the error interface.
func (err StepError) Error() string {
	if err.Err == nil {
		return err.Kind.Error()
	}
	return err.Err.Error()
}

// Is implements the interface to support errors.Is. It matches the error's
// kind, as well as anything the underlying error matches.
func (err StepError) Is(target error) bool {
	return target == err.Kind
}

// Unwrap implements the interface to support errors.Unwrap.
func (err StepError) Unwrap() error {
	return err.Err
}
