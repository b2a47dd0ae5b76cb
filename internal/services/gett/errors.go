package gett

import (
	"errors"
	"fmt"
)

// ValidationError reports a contract violation detected before any network
// call is made: a missing or malformed caller-supplied parameter.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter %q %s", e.Param, e.Reason)
}

// StatusError reports that the service answered with a non-200 status.
// The original request succeeded at the transport level; the service
// simply said no.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

// IsNotOK reports whether err is a service-side rejection rather than a
// contract violation or a transport failure.
func IsNotOK(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
