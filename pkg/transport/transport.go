// Package transport reads and writes whole API sentences over a raw byte
// stream. Socket-like streams may deliver partial data per call, so every
// fixed-size read and write loops until satisfied or a terminal condition
// is hit; faults carry byte counters for diagnosis.
package transport

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/zlyZwierz/librouteros/pkg/proto"
)

// Stream is the subset of net.Conn the transport needs. A *net.TCPConn or a
// *tls.Conn satisfies it. The transport assumes exclusive ownership of the
// stream; no other reader or writer may touch it.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
	SetReadDeadline(t time.Time) error
}

// shutdowner is implemented by streams that support half-close, such as
// *net.TCPConn. Shutdown before the final Close is best-effort.
type shutdowner interface {
	CloseRead() error
	CloseWrite() error
}

// DefaultTimeout is the read timeout a new transport starts with, until its
// owner configures one.
const DefaultTimeout = 10 * time.Second

// SentenceReaderWriter turns a Stream into a reliable sentence channel. It
// is not reentrant: a sentence operation in flight must complete before
// another is issued on the same transport.
type SentenceReaderWriter struct {
	stream  Stream
	timeout time.Duration
	closed  atomic.Bool
}

// New wraps an established stream. The caller hands over ownership; the
// stream is released by Close and must not be used elsewhere afterwards.
func New(stream Stream) *SentenceReaderWriter {
	return &SentenceReaderWriter{
		stream:  stream,
		timeout: DefaultTimeout,
	}
}

// SetTimeout applies d to the stream's read deadline immediately and re-arms
// it before every subsequent read. Validation of d is the owner's job. Like
// the sentence operations, it fails fast once the transport is closed.
func (rw *SentenceReaderWriter) SetTimeout(d time.Duration) error {
	if rw.closed.Load() {
		return &Error{Op: "set timeout", Err: ErrClosed}
	}

	rw.timeout = d
	return rw.stream.SetReadDeadline(time.Now().Add(d))
}

// Timeout returns the configured read timeout.
func (rw *SentenceReaderWriter) Timeout() time.Duration {
	return rw.timeout
}

// WriteSentence encodes words as one sentence and writes every resulting
// byte to the stream.
func (rw *SentenceReaderWriter) WriteSentence(words []string) error {
	enc, err := proto.EncodeSentence(words)
	if err != nil {
		return err
	}

	return rw.writeFull(enc)
}

// ReadSentence reads length-prefixed words until the sentence terminator and
// returns them decoded, in read order. An immediate terminator yields an
// empty sentence.
func (rw *SentenceReaderWriter) ReadSentence() ([]string, error) {
	var raw [][]byte

	for {
		length, err := rw.readLength()
		if err != nil {
			return nil, err
		}
		if length == 0 { // end of sentence
			break
		}

		word, err := rw.readFull(length)
		if err != nil {
			return nil, err
		}
		raw = append(raw, word)
	}

	return proto.DecodeSentence(raw)
}

// Close shuts the stream down in both directions (best-effort) and then
// releases it unconditionally. Safe to call multiple times.
func (rw *SentenceReaderWriter) Close() error {
	if rw.closed.Swap(true) {
		return nil
	}

	if s, ok := rw.stream.(shutdowner); ok {
		s.CloseRead()  // best effort
		s.CloseWrite() // best effort
	}

	return rw.stream.Close()
}

// Closed reports whether Close has been called.
func (rw *SentenceReaderWriter) Closed() bool {
	return rw.closed.Load()
}

// readLength reads one control byte, classifies it, reads the remaining
// prefix bytes it announces, and decodes the combined prefix.
func (rw *SentenceReaderWriter) readLength() (int, error) {
	prefix, err := rw.readFull(1)
	if err != nil {
		return 0, err
	}

	extra, err := proto.Classify(prefix[0])
	if err != nil {
		return 0, err
	}

	if extra > 0 {
		rest, err := rw.readFull(extra)
		if err != nil {
			return 0, err
		}
		prefix = append(prefix, rest...)
	}

	return proto.DecodeLength(prefix), nil
}

// readFull reads exactly n bytes, looping over partial reads.
func (rw *SentenceReaderWriter) readFull(n int) ([]byte, error) {
	if rw.closed.Load() {
		return nil, &Error{Op: "read", Total: n, Err: ErrClosed}
	}

	if err := rw.stream.SetReadDeadline(time.Now().Add(rw.timeout)); err != nil {
		return nil, &Error{Op: "read", Total: n, Err: err}
	}

	buf := make([]byte, n)
	done := 0
	for done < n {
		r, err := rw.stream.Read(buf[done:])
		done += r
		if done == n {
			break
		}

		if err != nil {
			return nil, fault("read", done, n, err)
		}
		if r == 0 { // live stream delivering nothing: the peer is gone
			return nil, &Error{Op: "read", Done: done, Total: n, Err: ErrUnexpectedClose}
		}
	}

	return buf, nil
}

// writeFull writes all of b, looping over partial writes.
func (rw *SentenceReaderWriter) writeFull(b []byte) error {
	if rw.closed.Load() {
		return &Error{Op: "write", Total: len(b), Err: ErrClosed}
	}

	total := len(b)
	done := 0
	for done < total {
		w, err := rw.stream.Write(b[done:])
		done += w
		if done == total {
			break
		}

		if err != nil {
			return fault("write", done, total, err)
		}
		if w == 0 { // zero-byte write on a live stream: the peer is gone
			return &Error{Op: "write", Done: done, Total: total, Err: ErrUnexpectedClose}
		}
	}

	return nil
}

// fault wraps a stream error into a connection-level Error, normalizing EOF
// into the unexpected-close cause.
func fault(op string, done, total int, err error) *Error {
	if err == io.EOF {
		err = ErrUnexpectedClose
	}
	return &Error{Op: op, Done: done, Total: total, Err: err}
}
