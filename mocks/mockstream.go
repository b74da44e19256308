// Package mocks provides in-memory stream doubles for testing the codec
// transport and connection lifecycle without real network connections.
package mocks

import (
	"bytes"
	"io"
	"time"
)

// TimeoutError mimics the error a *net.TCPConn returns once its read
// deadline expires. It satisfies net.Error with Timeout() == true.
type TimeoutError struct{}

func (TimeoutError) Error() string   { return "i/o timeout" }
func (TimeoutError) Timeout() bool   { return true }
func (TimeoutError) Temporary() bool { return true }

// MockStream is a scriptable stream double. Reads are served from a queue of
// chunks, one chunk per Read call regardless of the buffer size, which
// simulates a socket delivering partial data. Once the queue is drained,
// reads report FinalReadErr (io.EOF unless overridden). Writes are recorded
// and can be throttled or made to fail.
type MockStream struct {
	readQueue    [][]byte
	FinalReadErr error // returned once readQueue is drained; nil means io.EOF

	written       bytes.Buffer
	WriteChunk    int   // max bytes accepted per Write call; 0 accepts all
	WriteErr      error // returned by the first Write after WriteErrAfter bytes
	WriteErrAfter int
	writeDead     bool // when set, Write accepts zero bytes without error

	deadlines  []time.Time
	closeCalls int
	readHalf   int // CloseRead calls
	writeHalf  int // CloseWrite calls
	touched    bool
}

// NewMockStream returns a stream whose reads deliver the given chunks in
// order.
func NewMockStream(chunks ...[]byte) *MockStream {
	s := &MockStream{}
	for _, c := range chunks {
		s.readQueue = append(s.readQueue, append([]byte(nil), c...))
	}
	return s
}

// QueueRead appends one more read chunk to the script.
func (s *MockStream) QueueRead(chunk []byte) {
	s.readQueue = append(s.readQueue, append([]byte(nil), chunk...))
}

// DeadPeerWrites makes subsequent Write calls accept zero bytes without
// returning an error, as a stuck or vanished peer would.
func (s *MockStream) DeadPeerWrites() {
	s.writeDead = true
}

func (s *MockStream) Read(p []byte) (int, error) {
	s.touched = true

	if len(s.readQueue) == 0 {
		if s.FinalReadErr != nil {
			return 0, s.FinalReadErr
		}
		return 0, io.EOF
	}

	chunk := s.readQueue[0]
	n := copy(p, chunk)
	if n < len(chunk) {
		s.readQueue[0] = chunk[n:]
	} else {
		s.readQueue = s.readQueue[1:]
	}
	return n, nil
}

func (s *MockStream) Write(p []byte) (int, error) {
	s.touched = true

	if s.writeDead {
		return 0, nil
	}
	if s.WriteErr != nil && s.written.Len() >= s.WriteErrAfter {
		return 0, s.WriteErr
	}

	n := len(p)
	if s.WriteChunk > 0 && n > s.WriteChunk {
		n = s.WriteChunk
	}
	s.written.Write(p[:n])
	return n, nil
}

func (s *MockStream) Close() error {
	s.touched = true
	s.closeCalls++
	return nil
}

// CloseRead records a read-side shutdown.
func (s *MockStream) CloseRead() error {
	s.touched = true
	s.readHalf++
	return nil
}

// CloseWrite records a write-side shutdown.
func (s *MockStream) CloseWrite() error {
	s.touched = true
	s.writeHalf++
	return nil
}

func (s *MockStream) SetReadDeadline(t time.Time) error {
	s.touched = true
	s.deadlines = append(s.deadlines, t)
	return nil
}

// Written returns everything successfully written so far.
func (s *MockStream) Written() []byte {
	return s.written.Bytes()
}

// CloseCalls returns how many times Close ran.
func (s *MockStream) CloseCalls() int {
	return s.closeCalls
}

// Shutdowns returns how many read-side and write-side half-closes ran.
func (s *MockStream) Shutdowns() (reads, writes int) {
	return s.readHalf, s.writeHalf
}

// Deadlines returns every read deadline that was set.
func (s *MockStream) Deadlines() []time.Time {
	return s.deadlines
}

// Touched reports whether any method was called at all. Tests use it to
// assert that validation failures never reach the stream.
func (s *MockStream) Touched() bool {
	return s.touched
}
