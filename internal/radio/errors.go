package radio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyAddress is reported by Connect when the configured address
	// trims down to nothing and no candidate URL can be derived.
	ErrEmptyAddress = errors.New("receiver address is empty")

	// ErrNotConnected is reported by every command issued without an
	// active session. The guard fires before the transport is reached.
	ErrNotConnected = errors.New("not connected to a receiver")

	// ErrServiceClosed is reported once Close has stopped the service.
	ErrServiceClosed = errors.New("radio service is closed")
)

// ConnectError reports that every candidate URL failed during a connect
// attempt. Attempted preserves the full trial order; Last carries the
// failure from the final candidate.
type ConnectError struct {
	Attempted []string
	Last      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not reach the receiver; tried %s: last error: %v",
		strings.Join(e.Attempted, ", "), e.Last)
}

// Unwrap exposes the last attempt's failure to errors.Is and errors.As.
func (e *ConnectError) Unwrap() error { return e.Last }

// CallError wraps a transport failure from a command that ran against a
// session believed active. The session is not demoted; callers decide
// whether to re-check IsConnected or reconnect.
type CallError struct {
	Op  string
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
