// Package proto implements the RouterOS API wire format: the 4-tier
// variable-length length prefix, length-prefixed UTF-8 words, and
// null-terminated sentences. It deals in bytes only; framing against a
// live stream is the transport's job.
package proto

import (
	"encoding/binary"
	"fmt"
)

// MaxLength is the largest value the length prefix scheme can encode.
const MaxLength = 1<<28 - 1

// tier is one of the four fixed length-prefix widths. The control byte's
// high bits select the tier; mask holds those bits positioned in a
// big-endian 32-bit value.
type tier struct {
	size int    // prefix bytes on the wire
	max  int    // largest length the tier can hold
	mask uint32 // class bits OR-ed into the value
}

var tiers = [4]tier{
	{size: 1, max: 1<<7 - 1, mask: 0x00000000},
	{size: 2, max: 1<<14 - 1, mask: 0x00008000},
	{size: 3, max: 1<<21 - 1, mask: 0x00C00000},
	{size: 4, max: 1<<28 - 1, mask: 0xE0000000},
}

// LengthError indicates a length outside [0, MaxLength] was passed to
// EncodeLength.
type LengthError struct {
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("unable to encode length of %d", e.Length)
}

// ControlByteError indicates a control byte in the reserved 0xF0-0xFF range,
// which never starts a valid length prefix. Receiving one means the peer is
// misbehaving or the stream is corrupted.
type ControlByteError struct {
	Byte byte
}

func (e *ControlByteError) Error() string {
	return fmt.Sprintf("unknown control byte received: %#02x", e.Byte)
}

// EncodeLength encodes n into the smallest prefix tier that fits,
// big-endian with the tier's class bits set on the most significant byte.
func EncodeLength(n int) ([]byte, error) {
	t, err := tierFor(n)
	if err != nil {
		return nil, err
	}

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(n)|t.mask)
	return buf[4-t.size:], nil
}

// DecodeLength decodes a 1-4 byte length prefix. The byte count selects the
// tier; the caller (the transport's length reader) is trusted to have read
// exactly the bytes Classify asked for.
func DecodeLength(b []byte) int {
	t := tiers[len(b)-1]

	var buf [4]byte
	copy(buf[4-len(b):], b)
	return int(binary.BigEndian.Uint32(buf[:]) ^ t.mask)
}

// Classify reports how many bytes follow the given control byte to complete
// its length prefix.
func Classify(control byte) (int, error) {
	switch {
	case control < 0x80:
		return 0, nil
	case control < 0xC0:
		return 1, nil
	case control < 0xE0:
		return 2, nil
	case control < 0xF0:
		return 3, nil
	default:
		return 0, &ControlByteError{Byte: control}
	}
}

func tierFor(n int) (tier, error) {
	if n >= 0 {
		for _, t := range tiers {
			if n <= t.max {
				return t, nil
			}
		}
	}
	return tier{}, &LengthError{Length: n}
}
