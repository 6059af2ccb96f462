// Package helper holds small, stateless utilities shared across the
// engine's components: the compact-integer wire codec for
// length-prefixed fragments, and the handful of arithmetic helpers the
// dispatcher leans on.
package helper

import (
	"encoding/binary"
	"errors"
)

// ErrTruncated marks a compact-length prefix or a declared fragment
// body that runs past the end of the available bytes.
var ErrTruncated = errors.New("xcmq: truncated compact-length fragment")

// ReadCompactLength decodes one unsigned varint length prefix from the
// front of b, following the host's canonical compact-integer encoding.
// It returns the decoded length and the number of bytes it consumed.
func ReadCompactLength(b []byte) (length uint64, consumed int, err error) {
	length, consumed = binary.Uvarint(b)
	if consumed <= 0 {
		return 0, 0, ErrTruncated
	}
	return length, consumed, nil
}

// WriteCompactLength appends n's compact-length encoding to dst.
func WriteCompactLength(dst []byte, n uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	w := binary.PutUvarint(buf[:], n)
	return append(dst, buf[:w]...)
}

// EncodeFragment returns the length-prefixed wire encoding of one
// fragment, as carried inside an Xcm or Blob payload.
func EncodeFragment(fragment []byte) []byte {
	out := WriteCompactLength(nil, uint64(len(fragment)))
	return append(out, fragment...)
}

// DecodeFragment reads one length-prefixed fragment from the front of
// b and returns the fragment body plus the remaining bytes. An error
// here means the remainder of the page must be discarded, never
// partially re-read.
func DecodeFragment(b []byte) (fragment []byte, rest []byte, err error) {
	length, consumed, err := ReadCompactLength(b)
	if err != nil {
		return nil, nil, err
	}
	b = b[consumed:]
	if uint64(len(b)) < length {
		return nil, nil, ErrTruncated
	}
	return b[:length], b[length:], nil
}

// MaxU64 returns the largest value in values, or 0 for an empty slice.
func MaxU64(values []uint64) uint64 {
	var v uint64
	for _, e := range values {
		if e > v {
			v = e
		}
	}
	return v
}
