// Package bigint implements the sign-magnitude multi-precision integer
// contract of spec §4.2 (component C2): arbitrary precision integers with
// add/sub/mul/divrem/xgcd/mod/pow, CRT recombination, and serialization.
//
// The representation is built on the standard library's math/big.Int
// rather than a hand-rolled limb array — see DESIGN.md's C2 entry for why
// that is the one place in this codebase where the standard library, not a
// third-party dependency, is the right grounding: math/big already *is* a
// sign-magnitude bignum with trimmed-limb normalisation, Bezout-bounded
// GCD, and the rest of the C2 contract, and nothing in the retrieval pack
// reimplements that generic machinery independently of it.
package bigint

import (
	"math/big"

	"github.com/latticecore/gpvcore/errs"
)

// Int is a signed arbitrary-precision integer. The zero value is not ready
// for use; construct with New, NewFromInt64 or NewFromWord.
type Int struct {
	v big.Int
}

// New returns a new Int with magnitude 0.
func New() *Int { return &Int{} }

// NewFromInt64 returns an Int equal to x.
func NewFromInt64(x int64) *Int { z := New(); z.v.SetInt64(x); return z }

// NewFromWord returns an Int equal to the unsigned word x.
func NewFromWord(x uint64) *Int { z := New(); z.v.SetUint64(x); return z }

// NewFromBytes interprets buf as a big-endian unsigned magnitude.
func NewFromBytes(buf []byte) *Int { z := New(); z.v.SetBytes(buf); return z }

// Clone returns an independent copy of z.
func (z *Int) Clone() *Int { c := New(); c.v.Set(&z.v); return c }

// Set sets z = x and returns z.
func (z *Int) Set(x *Int) *Int { z.v.Set(&x.v); return z }

// SetWord sets z to the unsigned word x.
func (z *Int) SetWord(x uint64) *Int { z.v.SetUint64(x); return z }

// SetInt64 sets z to x.
func (z *Int) SetInt64(x int64) *Int { z.v.SetInt64(x); return z }

// Add sets z = x + y and returns z.
func (z *Int) Add(x, y *Int) *Int { z.v.Add(&x.v, &y.v); return z }

// Sub sets z = x - y and returns z.
func (z *Int) Sub(x, y *Int) *Int { z.v.Sub(&x.v, &y.v); return z }

// Mul sets z = x * y and returns z.
func (z *Int) Mul(x, y *Int) *Int { z.v.Mul(&x.v, &y.v); return z }

// Neg sets z = -x and returns z.
func (z *Int) Neg(x *Int) *Int { z.v.Neg(&x.v); return z }

// Abs sets z = |x| and returns z.
func (z *Int) Abs(x *Int) *Int { z.v.Abs(&x.v); return z }

// DivRem sets q = x/y truncated toward zero and r = x - y*q (the remainder
// has the sign of x, matching the spec's "truncating toward zero"
// contract). Returns errs.InvalidInput if y is zero.
func DivRem(x, y *Int) (q, r *Int, err error) {
	if y.v.Sign() == 0 {
		return nil, nil, errs.New(errs.InvalidInput, "bigint.DivRem: division by zero")
	}
	q, r = New(), New()
	q.v.Quo(&x.v, &y.v)
	r.v.Rem(&x.v, &y.v)
	return q, r, nil
}

// DivQuo returns the truncating quotient x/y. Returns errs.InvalidInput if
// y is zero.
func DivQuo(x, y *Int) (*Int, error) {
	if y.v.Sign() == 0 {
		return nil, errs.New(errs.InvalidInput, "bigint.DivQuo: division by zero")
	}
	z := New()
	z.v.Quo(&x.v, &y.v)
	return z, nil
}

// Mod sets z = x mod y with a Euclidean (always non-negative, for y>0)
// remainder, matching the C2 "mod" operation.
func (z *Int) Mod(x, y *Int) *Int { z.v.Mod(&x.v, &y.v); return z }

// ModUi returns x mod m as a machine word, 0 <= result < m.
func ModUi(x *Int, m uint64) uint64 {
	mb := new(big.Int).SetUint64(m)
	r := new(big.Int).Mod(&x.v, mb)
	return r.Uint64()
}

// PowUi sets z = x^e and returns z.
func (z *Int) PowUi(x *Int, e uint64) *Int {
	eb := new(big.Int).SetUint64(e)
	z.v.Exp(&x.v, eb, nil)
	return z
}

// Sqrt sets z = floor(sqrt(x)) for x >= 0 and returns z. Panics for x < 0,
// matching math/big.Int.Sqrt's own contract (the C2 contract has no
// negative-root case to report as a recoverable failure).
func (z *Int) Sqrt(x *Int) *Int { z.v.Sqrt(&x.v); return z }

// Cmp compares x and y as signed values: -1, 0, +1.
func Cmp(x, y *Int) int { return x.v.Cmp(&y.v) }

// CmpAbs compares |x| and |y|: -1, 0, +1.
func CmpAbs(x, y *Int) int { return x.v.CmpAbs(&y.v) }

// Sign returns -1, 0 or +1 for the sign of x.
func (z *Int) Sign() int { return z.v.Sign() }

// IsZero reports whether z is the zero value.
func (z *Int) IsZero() bool { return z.v.Sign() == 0 }

// InvMod sets z = x⁻¹ mod m and returns (z, true), or returns (nil, false)
// if x is not a unit mod m (spec: "invmod fails when gcd != 1", never
// panics).
func InvMod(x, m *Int) (*Int, bool) {
	z := New()
	r := z.v.ModInverse(&x.v, &m.v)
	if r == nil {
		return nil, false
	}
	return z, true
}

// GCD sets z = gcd(|x|, |y|) and returns z.
func GCD(x, y *Int) *Int {
	z := New()
	z.v.GCD(nil, nil, new(big.Int).Abs(&x.v), new(big.Int).Abs(&y.v))
	return z
}

// XGCD computes (g, s, t) such that x*s + y*t = g = gcd(x, y), with Bezout
// coefficients bounded as the spec requires: |s| <= |y|/(2g), |t| <=
// |x|/(2g). This is exactly the bound math/big.Int.GCD documents and
// enforces for its Bezout outputs, so XGCD delegates to it directly.
func XGCD(x, y *Int) (g, s, t *Int) {
	g, s, t = New(), New(), New()
	g.v.GCD(&s.v, &t.v, &x.v, &y.v)
	return g, s, t
}

// Text returns the string representation of z in the given base (2-62, as
// accepted by math/big).
func (z *Int) Text(base int) string { return z.v.Text(base) }

// BitLen returns the length of the absolute value of z in bits; 0 for z==0.
func (z *Int) BitLen() int { return z.v.BitLen() }

// Bytes returns the big-endian unsigned magnitude of z (sign is dropped —
// callers needing signed serialization must track the sign themselves, as
// spec §6's persisted-key format does via a fixed bit-width per coefficient).
func (z *Int) Bytes() []byte { return z.v.Bytes() }

// Int64 returns the int64 value of z if it fits, and whether it fit.
func (z *Int) Int64() (int64, bool) {
	if !z.v.IsInt64() {
		return 0, false
	}
	return z.v.Int64(), true
}

// Uint64 returns the uint64 value of z if it fits, and whether it fit.
func (z *Int) Uint64() (uint64, bool) {
	if !z.v.IsUint64() {
		return 0, false
	}
	return z.v.Uint64(), true
}

// Big returns the underlying *big.Int view of z. Mutating the result
// mutates z; used by polyz for interop with gonum/ALTree-bigfloat helpers
// that want a raw *big.Int.
func (z *Int) Big() *big.Int { return &z.v }

// FromBig sets z from a raw *big.Int (copying).
func (z *Int) FromBig(x *big.Int) *Int { z.v.Set(x); return z }
