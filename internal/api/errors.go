package api

import (
	"errors"
	"fmt"
)

// RemoteError is an application-level rejection: the backend answered but
// reported success=false (or an error status with a usable envelope).
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request rejected by backend"
}

// TransportError covers everything below the envelope: connection failures,
// timeouts, and non-2xx responses without a decodable body.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsRemote reports whether err is an application-level rejection.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
