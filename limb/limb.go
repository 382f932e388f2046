// Package limb implements the machine-word modular arithmetic primitives
// that the multi-precision layers (bigint, polyz) build their prime-search
// and CRT machinery on: Barrett-parameterised modular multiply, modular
// inverse, and next-prime search (spec §4.1, component C1).
package limb

import (
	"math/big"
	"math/bits"
)

// Modulus bundles a machine-word modulus with the Barrett reduction
// constants derived from it. Norm is the count of leading zero bits of M
// (clz), used to parameterise shifted reductions for small moduli; MInv is
// the single-word Barrett reciprocal ⌊2⁶⁴/M⌋.
//
// Contract: M must be at most 2^63; this rules out overflow during
// reduction by construction, matching spec §4.1's failure-mode note.
type Modulus struct {
	M    uint64
	MInv uint64
	Norm uint
}

// NewModulus precomputes the Barrett constants for m. Panics if m is zero or
// exceeds 2^63, since that violates the component's input contract.
func NewModulus(m uint64) Modulus {
	if m == 0 || m > (uint64(1)<<63) {
		panic("limb: modulus out of range")
	}
	// MInv = floor(2^64 / m), computed once via big.Int; m fits easily so
	// this never needs more than 65 bits of intermediate precision.
	num := new(big.Int).Lsh(big.NewInt(1), 64)
	mInv := new(big.Int).Quo(num, new(big.Int).SetUint64(m))
	return Modulus{M: m, MInv: mInv.Uint64(), Norm: uint(bits.LeadingZeros64(m))}
}

// MulMod returns a*b mod m.M for a, b < m.M. The 128-bit product is reduced
// exactly via bits.Div64: since a, b < m.M, the product's high word is
// strictly smaller than m.M (product < m.M², so hi = product>>64 <
// m.M²/2^64 < m.M), which is exactly the precondition bits.Div64 requires to
// avoid a quotient overflow. This keeps the reduction exact without a
// Barrett correction loop; MInv remains precomputed alongside M for callers
// that want the single-word Barrett estimate (e.g. a future AVX-vectorised
// reduction path, Design Notes §9's "reduction: AVX" policy), but is not
// required for correctness here.
func MulMod(a, b uint64, m Modulus) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m.M)
	return rem
}

// AddMod returns a+b mod m.M for a, b < m.M.
func AddMod(a, b uint64, m Modulus) uint64 {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		_, s = bits.Sub64(s, m.M, 0)
		return s
	}
	if s >= m.M {
		s -= m.M
	}
	return s
}

// SubMod returns a-b mod m.M for a, b < m.M.
func SubMod(a, b uint64, m Modulus) uint64 {
	d, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		d += m.M
	}
	return d
}

// InvMod returns the modular inverse of a modulo m via the extended
// Euclidean algorithm on unsigned words. Returns (0, false) if a is not a
// unit mod m (spec §4.1: "a request for an inverse of a non-unit must
// return 0, never panic").
func InvMod(a, m uint64) (uint64, bool) {
	if m == 0 {
		return 0, false
	}
	a %= m
	if a == 0 {
		return 0, false
	}
	// Signed extended Euclid; for m < 2^63, a and m fit in int64 arithmetic
	// for the coefficient bookkeeping since intermediate Bezout coefficients
	// never exceed m in magnitude. Larger m wrap in the int64 conversion.
	var oldR, r = int64(a), int64(m)
	var oldS, s int64 = 1, 0
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s = s, oldS-q*s
	}
	if oldR != 1 {
		return 0, false
	}
	if oldS < 0 {
		oldS += int64(m)
	}
	return uint64(oldS), true
}

// smallPrimeWheel holds the primes trial division checks before falling
// back to Miller-Rabin, pruning the overwhelming majority of composites
// cheaply.
var smallPrimeWheel = [...]uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151,
	157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233,
	239, 241, 251,
}

// mrWitnesses is the deterministic Miller-Rabin witness set that correctly
// classifies every n < 3,317,044,064,679,887,385,961,981 — in particular
// every n representable in 64 bits — per Pomerance/Jaeschke/Sorenson.
var mrWitnesses = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, p := range smallPrimeWheel {
		if n == p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}
	// n-1 = d * 2^r, d odd.
	d := n - 1
	r := 0
	for d%2 == 0 {
		d /= 2
		r++
	}
	m := NewModulus(n)
	for _, a := range mrWitnesses {
		if a%n == 0 {
			continue
		}
		if !millerRabinWitness(a, d, r, n, m) {
			return false
		}
	}
	return true
}

func millerRabinWitness(a, d uint64, r int, n uint64, m Modulus) bool {
	x := powMod(a, d, m)
	if x == 1 || x == n-1 {
		return true
	}
	for i := 0; i < r-1; i++ {
		x = MulMod(x, x, m)
		if x == n-1 {
			return true
		}
	}
	return false
}

func powMod(base, exp uint64, m Modulus) uint64 {
	result := uint64(1) % m.M
	base %= m.M
	for exp > 0 {
		if exp&1 == 1 {
			result = MulMod(result, base, m)
		}
		base = MulMod(base, base, m)
		exp >>= 1
	}
	return result
}

// NextPrime returns the smallest odd prime strictly greater than x, via
// trial division against a fixed small-prime wheel followed by a
// deterministic Miller-Rabin test (spec §4.1).
func NextPrime(x uint64) uint64 {
	candidate := x + 1
	if candidate <= 3 {
		return 3
	}
	if candidate%2 == 0 {
		candidate++
	}
	for !isPrime(candidate) {
		candidate += 2
	}
	return candidate
}
