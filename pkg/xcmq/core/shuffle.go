package core

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// shuffleRng produces a deterministic stream of uint32 words from a
// ChaCha20 keystream seeded by a 32-byte block-scoped value (e.g. the
// parent block hash). It never needs to encrypt anything; it is used
// purely as a reproducible pseudo-random source.
type shuffleRng struct {
	cipher *chacha20.Cipher
}

func newShuffleRng(seed [32]byte) *shuffleRng {
	var nonce [chacha20.NonceSize]byte
	cipher, _ := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	return &shuffleRng{cipher: cipher}
}

func (r *shuffleRng) nextU32() uint32 {
	var buf [4]byte
	r.cipher.XORKeyStream(buf[:], buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

// shuffle builds the Dispatcher's index permutation over [0, n) per
// Algorithm: start from identity; for i from 0 to n-1, pick
// j = next_u32() mod n and swap positions i and j.
//
// This is deliberately NOT a uniform Fisher-Yates shuffle (j ranges
// over the full [0, n) rather than [i, n)). Reproduce it exactly; do
// not "fix" it to be uniform, or cross-implementation state
// transitions will disagree for the same seed.
func shuffle(n int, seed [32]byte) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	if n == 0 {
		return perm
	}
	rng := newShuffleRng(seed)
	for i := 0; i < n; i++ {
		j := int(rng.nextU32() % uint32(n))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
