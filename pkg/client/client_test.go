package client

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/zlyZwierz/librouteros/mocks"
	"github.com/zlyZwierz/librouteros/pkg/proto"
)

func encodeSentence(t *testing.T, words []string) []byte {
	t.Helper()

	enc, err := proto.EncodeSentence(words)
	if err != nil {
		t.Fatalf("proto.EncodeSentence(): %s", err)
	}
	return enc
}

func TestSetTimeoutRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		stream := mocks.NewMockStream()
		conn := New(stream)

		if err := conn.SetTimeout(d); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("SetTimeout(%s) = %v, want ErrInvalidTimeout", d, err)
		}
		if stream.Touched() {
			t.Errorf("SetTimeout(%s) touched the stream", d)
		}
	}
}

func TestSetTimeout(t *testing.T) {
	t.Parallel()

	conn := New(mocks.NewMockStream())

	if err := conn.SetTimeout(5 * time.Second); err != nil {
		t.Fatalf("SetTimeout(): %s", err)
	}
	if conn.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %s, want 5s", conn.Timeout())
	}
}

func TestCloseSendsQuit(t *testing.T) {
	t.Parallel()

	stream := mocks.NewMockStream(encodeSentence(t, []string{"!fatal", "session terminated"}))
	conn := New(stream)

	if err := conn.Close(); err != nil {
		t.Fatalf("Close(): %s", err)
	}

	want := encodeSentence(t, []string{"/quit"})
	if !bytes.Equal(stream.Written(), want) {
		t.Errorf("written %#v, want a single /quit sentence %#v", stream.Written(), want)
	}
	if stream.CloseCalls() != 1 {
		t.Errorf("stream closed %d times, want 1", stream.CloseCalls())
	}
}

func TestCloseIdempotent(t *testing.T) {
	t.Parallel()

	stream := mocks.NewMockStream(encodeSentence(t, []string{"!done"}))
	conn := New(stream)

	if err := conn.Close(); err != nil {
		t.Fatalf("first Close(): %s", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("second Close(): %s", err)
	}

	// Exactly one quit sentence and one stream close, no matter how often
	// Close runs.
	want := encodeSentence(t, []string{"/quit"})
	if !bytes.Equal(stream.Written(), want) {
		t.Errorf("written %#v, want a single /quit sentence", stream.Written())
	}
	if stream.CloseCalls() != 1 {
		t.Errorf("stream closed %d times, want 1", stream.CloseCalls())
	}
}

func TestCloseSurvivesQuitFault(t *testing.T) {
	t.Parallel()

	// The peer is already gone: the quit write is accepted by nobody and
	// the reply read hits EOF. Teardown must still complete.
	stream := mocks.NewMockStream()
	stream.DeadPeerWrites()
	conn := New(stream)

	if err := conn.Close(); err != nil {
		t.Fatalf("Close(): %s", err)
	}
	if stream.CloseCalls() != 1 {
		t.Errorf("stream closed %d times, want 1", stream.CloseCalls())
	}
}
