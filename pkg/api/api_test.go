package api

import (
	"errors"
	"reflect"
	"testing"
)

// fakeRW scripts the transport boundary: written sentences are recorded,
// reads are served from a queue.
type fakeRW struct {
	written [][]string
	replies [][]string
	readErr error // returned once replies are drained
}

func (f *fakeRW) WriteSentence(words []string) error {
	f.written = append(f.written, words)
	return nil
}

func (f *fakeRW) ReadSentence() ([]string, error) {
	if len(f.replies) == 0 {
		if f.readErr != nil {
			return nil, f.readErr
		}
		return nil, errors.New("no more scripted replies")
	}

	next := f.replies[0]
	f.replies = f.replies[1:]
	return next, nil
}

func TestRun(t *testing.T) {
	t.Parallel()

	rw := &fakeRW{
		replies: [][]string{
			{"!re", "=name=ether1", "=mtu=1500"},
			{"!re", "=name=ether2", "=mtu=9000"},
			{"!done"},
		},
	}

	replies, err := New(rw).Run("/interface/print", "=stats=")
	if err != nil {
		t.Fatalf("Run(): %s", err)
	}

	wantWritten := [][]string{{"/interface/print", "=stats="}}
	if !reflect.DeepEqual(rw.written, wantWritten) {
		t.Errorf("written %#v, want %#v", rw.written, wantWritten)
	}

	if len(replies) != 2 {
		t.Fatalf("got %d replies, want 2", len(replies))
	}
	if replies[0].Attributes["name"] != "ether1" || replies[1].Attributes["mtu"] != "9000" {
		t.Errorf("replies carry wrong attributes: %#v", replies)
	}
}

func TestRunEmptyResponse(t *testing.T) {
	t.Parallel()

	rw := &fakeRW{replies: [][]string{{"!done"}}}

	replies, err := New(rw).Run("/quit")
	if err != nil {
		t.Fatalf("Run(): %s", err)
	}
	if len(replies) != 0 {
		t.Errorf("got %d replies, want 0", len(replies))
	}
}

func TestRunTrap(t *testing.T) {
	t.Parallel()

	rw := &fakeRW{
		replies: [][]string{
			{"!re", "=name=ether1"},
			{"!trap", "=message=no such command", "=category=2"},
			{"!done"},
		},
	}

	replies, err := New(rw).Run("/bogus")

	var trap *TrapError
	if !errors.As(err, &trap) {
		t.Fatalf("error %v is not a *TrapError", err)
	}
	if trap.Message != "no such command" || trap.Category != "2" {
		t.Errorf("trap = %#v", trap)
	}

	// Replies gathered before the trap are still delivered.
	if len(replies) != 1 {
		t.Errorf("got %d replies alongside the trap, want 1", len(replies))
	}
}

func TestRunFatal(t *testing.T) {
	t.Parallel()

	rw := &fakeRW{
		replies: [][]string{
			{"!fatal", "session terminated"},
		},
	}

	_, err := New(rw).Run("/interface/print")

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("error %v is not a *FatalError", err)
	}
	if fatal.Message != "session terminated" {
		t.Errorf("Message = %q", fatal.Message)
	}
}

func TestRunUnexpectedReplyWord(t *testing.T) {
	t.Parallel()

	rw := &fakeRW{
		replies: [][]string{
			{"?what", "=a=b"},
		},
	}

	_, err := New(rw).Run("/interface/print")

	var unexpected *UnexpectedReplyError
	if !errors.As(err, &unexpected) {
		t.Fatalf("error %v is not a *UnexpectedReplyError", err)
	}
	if unexpected.Word != "?what" {
		t.Errorf("Word = %q", unexpected.Word)
	}
}

func TestRunReadFault(t *testing.T) {
	t.Parallel()

	cause := errors.New("stream torn down")
	rw := &fakeRW{
		replies: [][]string{{"!re", "=name=ether1"}},
		readErr: cause,
	}

	_, err := New(rw).Run("/interface/print")
	if !errors.Is(err, cause) {
		t.Fatalf("error %v does not wrap the transport fault", err)
	}
}
