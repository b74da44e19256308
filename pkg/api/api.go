// Package api implements the request/reply layer of the RouterOS API on top
// of the sentence transport: commands, attribute words, reply collection and
// the login handshake.
package api

import (
	"fmt"
	"strings"
)

// Reply words the router starts its sentences with.
const (
	replyData  = "!re"
	replyDone  = "!done"
	replyTrap  = "!trap"
	replyFatal = "!fatal"
)

// ReaderWriter is the transport boundary the API needs: writing one sentence
// and reading one sentence. *transport.SentenceReaderWriter satisfies it.
type ReaderWriter interface {
	WriteSentence(words []string) error
	ReadSentence() ([]string, error)
}

// Reply is one data (!re) sentence of a command's response.
type Reply struct {
	Attributes map[string]string
}

// TrapError is a command failure reported by the router. Replies received
// before the trap are still delivered to the caller.
type TrapError struct {
	Message  string
	Category string
}

func (e *TrapError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("command failed: %s (category %s)", e.Message, e.Category)
	}
	return fmt.Sprintf("command failed: %s", e.Message)
}

// FatalError is a connection-terminating failure reported by the router.
// The connection is unusable after one.
type FatalError struct {
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("connection terminated by router: %s", e.Message)
}

// UnexpectedReplyError indicates a sentence that does not start with a known
// reply word, which means the peer is misbehaving or the stream is corrupted.
type UnexpectedReplyError struct {
	Word string
}

func (e *UnexpectedReplyError) Error() string {
	return fmt.Sprintf("unexpected reply word %q", e.Word)
}

// API issues commands over one connection. Handles are cheap; every handle
// bound to the same connection shares its single request/reply stream, so
// commands must not be interleaved.
type API struct {
	rw ReaderWriter
}

// New binds an API handle to a sentence transport.
func New(rw ReaderWriter) *API {
	return &API{rw: rw}
}

// Run sends the command word followed by its attribute words and collects
// the response: every !re sentence becomes a Reply, !done ends the exchange,
// !trap turns into a *TrapError returned alongside the replies gathered so
// far, and !fatal into a *FatalError.
func (a *API) Run(command string, args ...string) ([]Reply, error) {
	replies, _, err := a.run(command, args...)
	return replies, err
}

// run additionally returns the attributes of the closing !done sentence,
// which the login flow needs (the challenge arrives there).
func (a *API) run(command string, args ...string) ([]Reply, map[string]string, error) {
	words := append([]string{command}, args...)
	if err := a.rw.WriteSentence(words); err != nil {
		return nil, nil, fmt.Errorf("writing %s: %w", command, err)
	}

	var replies []Reply
	var trap *TrapError

	for {
		snt, err := a.rw.ReadSentence()
		if err != nil {
			return replies, nil, fmt.Errorf("reading reply to %s: %w", command, err)
		}
		if len(snt) == 0 {
			return replies, nil, &UnexpectedReplyError{Word: ""}
		}

		switch snt[0] {
		case replyData:
			replies = append(replies, Reply{Attributes: ParseAttributes(snt[1:])})
		case replyDone:
			if trap != nil {
				return replies, nil, trap
			}
			return replies, ParseAttributes(snt[1:]), nil
		case replyTrap:
			if trap == nil { // first trap wins
				attrs := ParseAttributes(snt[1:])
				trap = &TrapError{Message: attrs["message"], Category: attrs["category"]}
			}
		case replyFatal:
			return replies, nil, &FatalError{Message: strings.Join(snt[1:], " ")}
		default:
			return replies, nil, &UnexpectedReplyError{Word: snt[0]}
		}
	}
}
