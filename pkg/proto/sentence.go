package proto

import (
	"fmt"
	"unicode/utf8"
)

// EOS terminates every sentence on the wire: a zero-length word.
const EOS = byte(0x00)

// InvalidWordError indicates word bytes that are not valid UTF-8. Words are
// encoded and decoded strictly; there is no lossy substitution.
type InvalidWordError struct {
	Word []byte
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("word is not valid UTF-8: %q", e.Word)
}

// EncodeWord encodes one word as its UTF-8 byte length prefix followed by
// the UTF-8 bytes.
func EncodeWord(word string) ([]byte, error) {
	if !utf8.ValidString(word) {
		return nil, &InvalidWordError{Word: []byte(word)}
	}

	prefix, err := EncodeLength(len(word))
	if err != nil {
		return nil, err
	}

	return append(prefix, word...), nil
}

// EncodeSentence encodes the words in order and appends the EOS byte. An
// empty sentence encodes to the single EOS byte.
func EncodeSentence(words []string) ([]byte, error) {
	var out []byte

	for _, word := range words {
		enc, err := EncodeWord(word)
		if err != nil {
			return nil, fmt.Errorf("encoding word %q: %w", word, err)
		}
		out = append(out, enc...)
	}

	return append(out, EOS), nil
}

// DecodeSentence decodes raw words into text, in order. Word boundaries must
// already have been determined by the transport; no framing happens here.
func DecodeSentence(raw [][]byte) ([]string, error) {
	words := make([]string, 0, len(raw))

	for _, b := range raw {
		if !utf8.Valid(b) {
			return nil, &InvalidWordError{Word: b}
		}
		words = append(words, string(b))
	}

	return words, nil
}
