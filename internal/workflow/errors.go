package workflow

import (
	"errors"
	"fmt"

	"github.com/exceptionzofficial/akshaya-admin-panel/internal/api"
)

// ErrInFlight rejects a transition on an order whose previous transition
// has not resolved yet. The duplicate never reaches the backend.
var ErrInFlight = errors.New("transition already in flight for this order")

// ErrRiderNotInPool rejects an assignment with a rider that was not part
// of the most recently fetched available pool.
var ErrRiderNotInPool = errors.New("rider not in the fetched available pool")

// ErrUnknownToken rejects a cancel confirmation whose token was never
// issued or was already consumed.
var ErrUnknownToken = errors.New("unknown or expired cancel confirmation")

// ValidationError is a client-side check that failed before any network
// round trip.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// remoteMessage extracts the backend's own message from an application
// rejection, or "" when there is none worth showing.
func remoteMessage(err error) string {
	var re *api.RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
