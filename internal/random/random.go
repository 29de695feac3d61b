// Package random provides uniform integer sources for password generation.
//
// Crypto draws from crypto/rand and is what production code uses. Seeded
// produces a reproducible ChaCha20 keystream from a seed so tests and
// fixtures can generate deterministic output.
//
// Both sources reduce 32-bit values into the requested range by rejection
// sampling, so every draw is exactly uniform.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"
)

// Source draws uniformly distributed integers in [0, n).
// Implementations must be safe for concurrent use.
type Source interface {
	IntN(n int) int
}

// uint32Func returns the next uniformly distributed 32-bit value.
type uint32Func func() uint32

// intN maps a stream of 32-bit values onto [0, n) without modulo bias.
// Values at or above the largest multiple of n are discarded.
func intN(next uint32Func, n int) int {
	if n <= 0 {
		panic("random: IntN called with non-positive n")
	}
	if n == 1 {
		return 0
	}
	bound := uint64(n)
	if bound > 1<<32 {
		panic("random: IntN range exceeds 32 bits")
	}
	limit := (1 << 32) - (1<<32)%bound
	for {
		v := uint64(next())
		if v < limit {
			return int(v % bound)
		}
	}
}

// Crypto draws from the operating system's CSPRNG.
// The zero value is ready to use.
type Crypto struct{}

// NewCrypto returns a Source backed by crypto/rand.
func NewCrypto() Crypto {
	return Crypto{}
}

// IntN returns a uniform integer in [0, n). It panics if n <= 0.
func (Crypto) IntN(n int) int {
	return intN(cryptoUint32, n)
}

// cryptoUint32 reads four bytes from crypto/rand.
// crypto/rand.Read never returns an error on supported platforms.
func cryptoUint32() uint32 {
	var b [4]byte
	_, _ = rand.Read(b[:]) //nolint:errcheck // documented to never fail
	return binary.LittleEndian.Uint32(b[:])
}

// Seeded is a deterministic Source. Two Seeded sources built from the
// same seed produce the same sequence of draws.
type Seeded struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
	buf    [64]byte
	pos    int
}

// NewSeeded returns a Source whose output is fully determined by seed.
// The seed is hashed with SHA3-256 to form the ChaCha20 key.
func NewSeeded(seed []byte) *Seeded {
	key := sha3.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		// Key and nonce sizes are fixed above; this cannot happen.
		panic("random: " + err.Error())
	}
	s := &Seeded{cipher: c}
	s.refill()
	return s
}

// IntN returns a uniform integer in [0, n). It panics if n <= 0.
func (s *Seeded) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return intN(s.next, n)
}

// next returns the next 32-bit value of the keystream. Callers hold mu.
func (s *Seeded) next() uint32 {
	if s.pos+4 > len(s.buf) {
		s.refill()
	}
	v := binary.LittleEndian.Uint32(s.buf[s.pos:])
	s.pos += 4
	return v
}

// refill replaces buf with the next keystream block.
func (s *Seeded) refill() {
	clear(s.buf[:])
	s.cipher.XORKeyStream(s.buf[:], s.buf[:])
	s.pos = 0
}
