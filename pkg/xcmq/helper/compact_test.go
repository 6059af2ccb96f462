package helper

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeFragmentRoundTrip(t *testing.T) {
	fragments := [][]byte{
		[]byte("a"),
		[]byte(""),
		bytes.Repeat([]byte{0xAB}, 300),
	}

	var wire []byte
	for _, f := range fragments {
		wire = append(wire, EncodeFragment(f)...)
	}

	for _, want := range fragments {
		got, rest, err := DecodeFragment(wire)
		if err != nil {
			t.Fatalf("DecodeFragment: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		wire = rest
	}

	if len(wire) != 0 {
		t.Fatalf("expected wire to be fully consumed, %d bytes left", len(wire))
	}
}

func TestDecodeFragmentTruncated(t *testing.T) {
	if _, _, err := DecodeFragment(nil); err == nil {
		t.Fatal("expected error decoding empty input")
	}

	wire := WriteCompactLength(nil, 10)
	wire = append(wire, []byte("short")...)
	if _, _, err := DecodeFragment(wire); err == nil {
		t.Fatal("expected truncated error")
	}
}

func TestMaxU64(t *testing.T) {
	if got := MaxU64(nil); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	if got := MaxU64([]uint64{3, 9, 1}); got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
}
