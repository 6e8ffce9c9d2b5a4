package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrTransportFailure reports that the backend could not be reached at
	// all: DNS failures, refused connections, timeouts.
	ErrTransportFailure = errors.New("backend: transport failure")
	// ErrServiceFailure reports that the backend was reached but answered
	// with a failure status.
	ErrServiceFailure = errors.New("backend: service failure")
)

// ServiceError carries the status code and the human readable detail returned
// by the backend on a failed request. It unwraps to ErrServiceFailure so
// callers can branch with errors.Is without inspecting the status.
type ServiceError struct {
	Status int
	Detail string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %s (status %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("backend: request failed (status %d)", e.Status)
}

func (e *ServiceError) Unwrap() error { return ErrServiceFailure }

// ServiceDetail extracts the backend supplied detail from err. It returns the
// empty string when err does not carry one.
func ServiceDetail(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Detail
	}
	return ""
}
