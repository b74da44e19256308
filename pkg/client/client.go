// Package client manages the lifetime of one RouterOS API connection: the
// stream it owns, the read timeout, the login handshake and an orderly
// shutdown. Explicit Close is the contract; a finalizer backstop only keeps
// a forgotten connection from leaking its stream.
package client

import (
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/zlyZwierz/librouteros/pkg/api"
	"github.com/zlyZwierz/librouteros/pkg/transport"
)

// ErrInvalidTimeout is returned for timeout values that are not positive.
// This is a usage fault, checked before the stream is touched.
var ErrInvalidTimeout = errors.New("timeout must be greater than 0")

// Conn is an open API connection. It exclusively owns its stream (via the
// transport) from construction until Close.
type Conn struct {
	rw     *transport.SentenceReaderWriter
	closed atomic.Bool
}

// New wraps an established stream into a connection. Ownership of the stream
// passes to the connection.
func New(stream transport.Stream) *Conn {
	c := &Conn{rw: transport.New(stream)}
	runtime.SetFinalizer(c, func(c *Conn) {
		c.Close() // backstop for callers that forgot to Close
	})
	return c
}

// SetTimeout sets the connection's read timeout. Values <= 0 fail before any
// stream call is made.
func (c *Conn) SetTimeout(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidTimeout
	}
	return c.rw.SetTimeout(d)
}

// Timeout returns the connection's current read timeout.
func (c *Conn) Timeout() time.Duration {
	return c.rw.Timeout()
}

// API returns a new handle bound to this connection for issuing commands.
func (c *Conn) API() *api.API {
	return api.New(c.rw)
}

// Close sends a best-effort /quit, then closes the transport and releases
// the stream. Idempotent: a second Close returns immediately and sends no
// second quit.
func (c *Conn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	runtime.SetFinalizer(c, nil)

	c.sendQuit()
	return c.rw.Close()
}

// sendQuit runs the quit handshake under the configured timeout. Any fault
// is swallowed so teardown always completes.
func (c *Conn) sendQuit() {
	if err := c.rw.WriteSentence([]string{"/quit"}); err != nil {
		return
	}
	c.rw.ReadSentence() // reply discarded
}
