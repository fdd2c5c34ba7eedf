package pagesapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iver-wharf/wharf-core/v2/pkg/problem"
)

// StatusError is returned when the pages hosting API responds with an
// unexpected HTTP status code.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	// Problem is set if the response body was an RFC-7807 problem response.
	Problem problem.Response
}

func newStatusError(resp *http.Response) StatusError {
	err := StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
	if resp.Request != nil {
		err.Method = resp.Request.Method
		if resp.Request.URL != nil {
			err.URL = resp.Request.URL.Redacted()
		}
	}
	return err
}

// Error implements the error interface.
func (err StatusError) Error() string {
	if err.Problem.Status != 0 || err.Problem.Title != "" {
		return fmt.Sprintf("%s %s: %s: %s", err.Method, err.URL, err.Status, err.Problem.Error())
	}
	return fmt.Sprintf("%s %s: unexpected status: %s", err.Method, err.URL, err.Status)
}

// IsStatusError returns true if the error is, or wraps, a StatusError.
func IsStatusError(err error) bool {
	var statusErr StatusError
	return errors.As(err, &statusErr)
}
