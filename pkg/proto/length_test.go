package proto

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		length int
		want   []byte
	}{
		{name: "zero", length: 0, want: []byte{0x00}},
		{name: "tier 1 max", length: 127, want: []byte{0x7F}},
		{name: "tier 2 min", length: 128, want: []byte{0x80, 0x80}},
		{name: "tier 2 max", length: 16383, want: []byte{0xBF, 0xFF}},
		{name: "tier 3 min", length: 16384, want: []byte{0xC0, 0x40, 0x00}},
		{name: "tier 3 max", length: 2097151, want: []byte{0xDF, 0xFF, 0xFF}},
		{name: "tier 4 min", length: 2097152, want: []byte{0xE0, 0x20, 0x00, 0x00}},
		{name: "tier 4 max", length: 268435455, want: []byte{0xEF, 0xFF, 0xFF, 0xFF}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := EncodeLength(tc.length)
			if err != nil {
				t.Fatalf("EncodeLength(%d): %s", tc.length, err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("EncodeLength(%d) = %#v, want %#v", tc.length, got, tc.want)
			}
		})
	}
}

func TestEncodeLengthOutOfRange(t *testing.T) {
	t.Parallel()

	for _, length := range []int{-1, 268435456, 1 << 30} {
		_, err := EncodeLength(length)
		if err == nil {
			t.Fatalf("EncodeLength(%d): expected error", length)
		}

		var lengthErr *LengthError
		if !errors.As(err, &lengthErr) {
			t.Fatalf("EncodeLength(%d): error %v is not a *LengthError", length, err)
		}
		if lengthErr.Length != length {
			t.Errorf("LengthError.Length = %d, want %d", lengthErr.Length, length)
		}
	}
}

func TestLengthRoundTrip(t *testing.T) {
	t.Parallel()

	for _, length := range []int{0, 1, 127, 128, 16383, 16384, 2097151, 2097152, 268435455} {
		enc, err := EncodeLength(length)
		if err != nil {
			t.Fatalf("EncodeLength(%d): %s", length, err)
		}
		if got := DecodeLength(enc); got != length {
			t.Errorf("DecodeLength(EncodeLength(%d)) = %d", length, got)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		control byte
		extra   int
		wantErr bool
	}{
		{control: 0x00, extra: 0},
		{control: 0x7F, extra: 0},
		{control: 0x80, extra: 1},
		{control: 0xBF, extra: 1},
		{control: 0xC0, extra: 2},
		{control: 0xDF, extra: 2},
		{control: 0xE0, extra: 3},
		{control: 0xEF, extra: 3},
		{control: 0xF0, wantErr: true},
		{control: 0xFF, wantErr: true},
	}

	for _, tc := range tests {
		extra, err := Classify(tc.control)
		if tc.wantErr {
			var controlErr *ControlByteError
			if !errors.As(err, &controlErr) {
				t.Errorf("Classify(%#02x): error %v is not a *ControlByteError", tc.control, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Classify(%#02x): %s", tc.control, err)
			continue
		}
		if extra != tc.extra {
			t.Errorf("Classify(%#02x) = %d, want %d", tc.control, extra, tc.extra)
		}
	}
}
