// Package pipeio provides the stdin/stdout pair for the interactive shell.
// Reads from stdin are cancellable where the platform supports it: a pending
// read is interrupted by Close or by cancellation of the shell's context.
package pipeio

import (
	"context"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
)

// Stdio reads from stdin and writes to stdout. It watches the context it was
// created with: when the context ends, a pending stdin read is cancelled just
// as if Close had been called.
type Stdio struct {
	stdin            *os.File
	cancellableStdin cancelreader.CancelReader

	stdout *os.File

	done      chan struct{}
	closeOnce sync.Once
}

// NewStdio creates a Stdio bound to ctx, attaching a cancellable stdin
// reader if the platform supports one.
func NewStdio(ctx context.Context) *Stdio {
	out := &Stdio{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		done:   make(chan struct{}),
	}

	if r, err := cancelreader.NewReader(os.Stdin); err == nil {
		out.cancellableStdin = r
	}

	go func() {
		select {
		case <-ctx.Done():
			out.cancel()
		case <-out.done:
		}
	}()

	return out
}

// Read reads from stdin, preferring the cancellable reader.
func (s *Stdio) Read(p []byte) (n int, err error) {
	if s.cancellableStdin != nil {
		return s.cancellableStdin.Read(p)
	}

	return s.stdin.Read(p)
}

// Write writes to stdout.
func (s *Stdio) Write(p []byte) (n int, err error) {
	return s.stdout.Write(p)
}

// Close cancels any pending stdin read and releases the context watcher.
// Safe to call multiple times.
func (s *Stdio) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.cancel()
	})
	return nil
}

func (s *Stdio) cancel() {
	if s.cancellableStdin != nil {
		s.cancellableStdin.Cancel()
	}
}
