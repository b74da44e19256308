package transport

import (
	"errors"
	"fmt"
	"net"
)

// ErrClosed is the cause of faults from operations attempted on a transport
// that was already closed. Such operations fail fast and never touch the
// stream.
var ErrClosed = errors.New("transport is closed")

// ErrUnexpectedClose is the cause of faults from a peer that went away in
// the middle of a frame: a read that hit EOF, or a write accepted with zero
// bytes on a live stream.
var ErrUnexpectedClose = errors.New("connection unexpectedly closed")

// Error is a connection-level fault. It records how many bytes of the
// current frame made it across before the stream failed, which pins down
// where in a multi-byte frame the failure occurred.
type Error struct {
	Op    string // "read" or "write"
	Done  int    // bytes transferred before the fault
	Total int    // bytes the operation needed
	Err   error  // underlying cause
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrClosed):
		return fmt.Sprintf("%s on closed connection", e.Op)
	case errors.Is(e.Err, ErrUnexpectedClose):
		return fmt.Sprintf("connection unexpectedly closed: %s %d/%d bytes", verb(e.Op), e.Done, e.Total)
	case e.Timeout():
		return fmt.Sprintf("stream timed out: %s %d/%d bytes", verb(e.Op), e.Done, e.Total)
	default:
		return fmt.Sprintf("stream failure after %s %d/%d bytes: %s", verb(e.Op), e.Done, e.Total, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the fault came from an expired deadline, as
// opposed to a closed peer or another stream failure.
func (e *Error) Timeout() bool {
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

func verb(op string) string {
	if op == "write" {
		return "sent"
	}
	return "read"
}
