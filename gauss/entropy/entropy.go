// Package entropy defines the CSPRNG collaborator contract of spec §6: the
// core does not mandate a PRNG type, only that it can supply u32/u64 words
// and bulk byte streams from an infinite uniform sequence. Two concrete
// adapters are provided: Crypto (production, crypto/rand-backed) and
// DeterministicChaCha8 (test-only, reproducible).
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"

	"github.com/latticecore/gpvcore/errs"
)

// Source is the CSPRNG collaborator contract.
type Source interface {
	// Uint64 returns a uniform random 64-bit word.
	Uint64() uint64
	// Uint32 returns a uniform random 32-bit word.
	Uint32() uint32
	// Float64 returns a uniform random float64 in [0, 1).
	Float64() float64
	// Bytes fills buf with uniform random bytes.
	Bytes(buf []byte) error
}

// Crypto is the production entropy source, backed by crypto/rand. Spec §6
// explicitly leaves the PRNG type unmandated; this is the default adapter
// a caller reaches for outside of deterministic testing.
type Crypto struct{}

// Uint64 returns a CSPRNG word, panicking only on catastrophic OS entropy
// failure (crypto/rand.Read failing is itself treated as unrecoverable by
// the standard library's own convention).
func (Crypto) Uint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(errs.Wrap(errs.EntropyExhaustion, "entropy.Crypto.Uint64", err))
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Uint32 returns a CSPRNG word.
func (Crypto) Uint32() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(errs.Wrap(errs.EntropyExhaustion, "entropy.Crypto.Uint32", err))
	}
	return binary.LittleEndian.Uint32(buf[:])
}

// Float64 returns a uniform float64 in [0, 1) built from 53 random bits,
// the standard construction for full double-precision uniformity.
func (c Crypto) Float64() float64 {
	return float64(c.Uint64()>>11) / (1 << 53)
}

// Bytes fills buf from crypto/rand, surfacing EntropyExhaustion on failure
// rather than panicking, since Bytes is on the core's explicit error path
// (spec §7's EntropyExhaustion kind).
func (Crypto) Bytes(buf []byte) error {
	if _, err := rand.Read(buf); err != nil {
		return errs.Wrap(errs.EntropyExhaustion, "entropy.Crypto.Bytes", err)
	}
	return nil
}

// DeterministicChaCha8 is a seeded, reproducible entropy source for tests
// (spec §8's "Preimage reproducibility" testable property requires a fixed
// seed to produce a fixed output). It is explicitly not constant-time and
// must never back a production key.
type DeterministicChaCha8 struct {
	rng *mrand.ChaCha8
}

// NewDeterministicChaCha8 seeds a reproducible source from a 32-byte key.
func NewDeterministicChaCha8(seed [32]byte) *DeterministicChaCha8 {
	return &DeterministicChaCha8{rng: mrand.NewChaCha8(seed)}
}

func (d *DeterministicChaCha8) Uint64() uint64 { return d.rng.Uint64() }

func (d *DeterministicChaCha8) Uint32() uint32 { return uint32(d.rng.Uint64()) }

func (d *DeterministicChaCha8) Float64() float64 {
	return float64(d.rng.Uint64()>>11) / (1 << 53)
}

func (d *DeterministicChaCha8) Bytes(buf []byte) error {
	for i := 0; i < len(buf); i += 8 {
		var w [8]byte
		binary.LittleEndian.PutUint64(w[:], d.rng.Uint64())
		copy(buf[i:], w[:])
	}
	return nil
}
