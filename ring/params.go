// Package ring defines the cyclotomic ring parameters (spec §3's Params
// record) and the dense small-integer polynomial type PolyZ that every
// other component operates over.
package ring

import (
	"math/big"
	"math/bits"

	"github.com/ALTree/bigfloat"
	"github.com/klauspost/cpuid/v2"

	"github.com/latticecore/gpvcore/errs"
)

// ReductionMode selects the modular-reduction policy used when a component
// needs to reduce a value mod Q, replacing the source's preprocessor
// `flt/dbl/ldbl`-style switches with an explicit configuration field
// (Design Notes §9).
type ReductionMode int

const (
	// ReductionReference is the portable division-based reduction, always
	// correct and always available.
	ReductionReference ReductionMode = iota
	// ReductionBarrett uses the precomputed Barrett constants of the limb
	// package where a component reduces many values against the same
	// modulus.
	ReductionBarrett
	// ReductionFP uses a floating-point reciprocal approximation, suitable
	// only where the modulus is small enough that floating-point rounding
	// cannot introduce an off-by-one.
	ReductionFP
	// ReductionAVX marks that the runtime CPU supports AVX2 and callers may
	// route reduction through a vectorised code path; gpvcore itself does
	// not ship hand-written SIMD, it only exposes the policy decision so
	// that a collaborator NTT/reduction backend can act on it.
	ReductionAVX
)

// Params is the immutable ring-parameter record of spec §3: dimension N (a
// power of two), prime modulus Q with Q ≡ 1 (mod 2N), its bit width, the
// base tail parameter, and the derived key-generation Gaussian width
// σ_key = √(1.36·Q/(2N)).
type Params struct {
	N          int
	Q          *big.Int
	QBits      int
	Tail       float64
	SigmaKey   float64
	Reduction  ReductionMode
}

// New validates (N, Q) and constructs a Params record. N must be a power of
// two; Q must be prime-shaped at the bit level expected by the caller (full
// primality is the caller's responsibility — N and Q typically come from a
// vetted parameter set, spec §6) and must satisfy Q ≡ 1 (mod 2N), which is
// the condition spec §3 requires for a primitive 2N-th root of unity to
// exist mod Q.
func New(n int, q *big.Int, tail float64) (*Params, error) {
	const op = "ring.New"
	if n <= 0 || n&(n-1) != 0 {
		return nil, errs.New(errs.InvalidParameter, op+": N must be a power of two")
	}
	if q == nil || q.Sign() <= 0 {
		return nil, errs.New(errs.InvalidParameter, op+": Q must be positive")
	}
	twoN := big.NewInt(int64(2 * n))
	mod := new(big.Int).Mod(q, twoN)
	if mod.Cmp(big.NewInt(1)) != 0 {
		return nil, errs.New(errs.InvalidParameter, op+": Q must be congruent to 1 mod 2N")
	}

	sigma := sigmaKey(n, q)

	return &Params{
		N:         n,
		Q:         new(big.Int).Set(q),
		QBits:     q.BitLen(),
		Tail:      tail,
		SigmaKey:  sigma,
		Reduction: defaultReductionMode(q),
	}, nil
}

// sigmaKey computes σ_key = √(1.36·q/(2N)) at arbitrary precision via
// github.com/ALTree/bigfloat, matching original_source/gpv.c's
// `sigma = sqrt((1.36 * q / 2) / n)` but carried out without the
// double-precision rounding the C source accepts, since q can exceed the
// range a float64 represents exactly for the larger parameter sets (spec
// typical N=1024 with q around 12-18 bits is fine in float64, but the
// formula is kept precision-safe for any N/Q pair the caller supplies).
func sigmaKey(n int, q *big.Int) float64 {
	prec := uint(q.BitLen() + 64)
	qf := new(big.Float).SetPrec(prec).SetInt(q)
	num := new(big.Float).SetPrec(prec).Mul(qf, big.NewFloat(1.36))
	den := new(big.Float).SetPrec(prec).SetInt64(int64(2 * n))
	ratio := new(big.Float).SetPrec(prec).Quo(num, den)
	root := bigfloat.Sqrt(ratio)
	f, _ := root.Float64()
	return f
}

// defaultReductionMode picks Barrett for moduli that fit the limb package's
// word contract and falls back to reference reduction otherwise; it
// upgrades to ReductionAVX when the host CPU advertises AVX2, matching
// Design Notes §9's {reference, Barrett, FP, AVX} enumeration.
func defaultReductionMode(q *big.Int) ReductionMode {
	if !q.IsUint64() || q.Uint64() > (uint64(1)<<63) {
		return ReductionReference
	}
	if cpuid.CPU.Supports(cpuid.AVX2) {
		return ReductionAVX
	}
	return ReductionBarrett
}

// PolyZ is a dense small-integer polynomial in Z[x]/(x^N+1): coefficient i
// is the coefficient of x^i. Lifetime: owned by whoever allocates it; call
// Zero before release when it carries secret material (spec §3/§5).
type PolyZ struct {
	Coeffs []int64
}

// NewPolyZ allocates a zeroed polynomial of length n.
func NewPolyZ(n int) *PolyZ { return &PolyZ{Coeffs: make([]int64, n)} }

// Zero overwrites every coefficient with 0, the scrub-on-drop discipline
// required wherever a PolyZ carries (f, g, F, G) (spec §5).
func (p *PolyZ) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// Clone returns an independent copy.
func (p *PolyZ) Clone() *PolyZ {
	c := NewPolyZ(len(p.Coeffs))
	copy(c.Coeffs, p.Coeffs)
	return c
}

// NormSquared returns the squared Euclidean norm Σ a_i².
func (p *PolyZ) NormSquared() float64 {
	var sum float64
	for _, c := range p.Coeffs {
		sum += float64(c) * float64(c)
	}
	return sum
}

// BitLen returns the number of bits needed to represent the largest-magnitude
// coefficient, useful for sizing serialization widths (spec §6).
func (p *PolyZ) BitLen() int {
	max := 0
	for _, c := range p.Coeffs {
		u := c
		if u < 0 {
			u = -u
		}
		if b := bits.Len64(uint64(u)); b > max {
			max = b
		}
	}
	return max
}
