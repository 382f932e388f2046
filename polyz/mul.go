package polyz

import (
	"math/big"
	"math/bits"

	"github.com/latticecore/gpvcore/bigint"
)

// MulPolicy selects which multiplication algorithm Mul dispatches to,
// mirroring the length-and-bit-width cascade in `sc_poly_mpz_mul` (spec
// §4.3's "mul policy").
type MulPolicy int

const (
	// MulAuto picks schoolbook for short operands, then Karatsuba or
	// Kronecker substitution for longer ones depending on operand bit
	// width relative to length, matching the source's cascade exactly
	// (see mulAutoDispatch).
	MulAuto MulPolicy = iota
	MulSchoolbook
	MulKaratsuba
	MulKronecker
)

const (
	karatsubaThreshold = 32

	// limbBits is the machine word width the bit-count/limb-count thresholds
	// below are expressed in, matching `SC_LIMB_BITS` on a 64-bit build.
	limbBits = 64
)

// Mul returns p*q (full convolution, not reduced modulo any ring), using
// policy to choose the algorithm. MulAuto reproduces the source's
// length-then-bit-width cascade (`sc_poly_mpz_mul`), not a flat length
// band: short operands go to schoolbook, then the choice between Karatsuba
// and Kronecker substitution turns on how many machine words the operands'
// coefficients actually occupy relative to their length, since Kronecker's
// packed-integer multiply only pays off once coefficients are wide enough
// that a single big.Int multiply beats repeated small multiplies.
func Mul(p, q *Poly, policy MulPolicy) *Poly {
	switch policy {
	case MulSchoolbook:
		return mulSchoolbook(p, q)
	case MulKaratsuba:
		return mulKaratsuba(p, q)
	case MulKronecker:
		return mulKronecker(p, q)
	default:
		return mulAutoDispatch(p, q)
	}
}

// mulAutoDispatch mirrors `sc_poly_mpz_mul`'s cascade: normalise so p is the
// longer (or equal-length) operand, take the schoolbook fast path for short
// inputs, then pick Karatsuba vs. Kronecker from each operand's bit width
// measured in limbBits-wide limbs.
func mulAutoDispatch(p, q *Poly) *Poly {
	degP, degQ := p.Degree(), q.Degree()
	if degP < 0 || degQ < 0 {
		return New(1)
	}
	lenP, lenQ := degP+1, degQ+1
	if lenP < lenQ {
		return mulAutoDispatch(q, p)
	}
	if lenQ < 7 {
		return mulSchoolbook(p, q)
	}

	limbsP := mulLimbs(maxBits(p))
	limbsQ := mulLimbs(maxBits(q))

	switch {
	case lenP < 16 && (limbsP > 12 || limbsQ > 12):
		return mulKaratsuba(p, q)
	case limbsP+limbsQ <= 8:
		return mulKronecker(p, q)
	case (limbsP+limbsQ)/2048 > lenP+lenQ:
		return mulKronecker(p, q)
	case (limbsP+limbsQ)*limbBits*4 < lenP+lenQ:
		return mulKronecker(p, q)
	default:
		return mulKaratsuba(p, q)
	}
}

// mulLimbs converts a coefficient's bit length into a limbBits-wide limb
// count, as `sc_poly_mpz_max_bits`'s callers do before comparing against the
// dispatch thresholds.
func mulLimbs(bitLen int) int {
	if bitLen <= 0 {
		return 1
	}
	return (bitLen + limbBits - 1) / limbBits
}

// mulSchoolbook is the O(n²) grade-school convolution, `sc_poly_mpz_mul_gradeschool`.
func mulSchoolbook(p, q *Poly) *Poly {
	degP, degQ := p.Degree(), q.Degree()
	if degP < 0 || degQ < 0 {
		return New(1)
	}
	r := New(degP + degQ + 1)
	for i := 0; i <= degP; i++ {
		if p.Coeffs[i].IsZero() {
			continue
		}
		for j := 0; j <= degQ; j++ {
			if q.Coeffs[j].IsZero() {
				continue
			}
			t := bigint.New().Mul(p.Coeffs[i], q.Coeffs[j])
			r.Coeffs[i+j].Add(r.Coeffs[i+j], t)
		}
	}
	return r
}

// mulKaratsuba implements the standard divide-and-conquer Karatsuba
// recursion (`sc_poly_mpz_mul_karatsuba`, minus the source's bit-reversal
// scratch-buffer bookkeeping: big.Int allocation cost dominates here, not
// buffer reuse, so the recursion operates directly on Poly slices split at
// the midpoint).
func mulKaratsuba(p, q *Poly) *Poly {
	degP, degQ := p.Degree(), q.Degree()
	if degP < 0 || degQ < 0 {
		return New(1)
	}
	n := degP + 1
	if degQ+1 > n {
		n = degQ + 1
	}
	if n <= karatsubaThreshold/2 {
		return mulSchoolbook(p, q)
	}
	m := n / 2

	pLo, pHi := split(p, m)
	qLo, qHi := split(q, m)

	z0 := mulKaratsuba(pLo, qLo)
	z2 := mulKaratsuba(pHi, qHi)
	z1 := mulKaratsuba(Add(pLo, pHi), Add(qLo, qHi))
	z1 = Sub(Sub(z1, z0), z2)

	r := New(2*n + 1)
	for i, c := range z0.Coeffs {
		r.Coeffs[i].Add(r.Coeffs[i], c)
	}
	for i, c := range z1.Coeffs {
		r.Coeffs[i+m].Add(r.Coeffs[i+m], c)
	}
	for i, c := range z2.Coeffs {
		r.Coeffs[i+2*m].Add(r.Coeffs[i+2*m], c)
	}
	return r
}

func split(p *Poly, m int) (lo, hi *Poly) {
	lo = New(m)
	for i := 0; i < m && i < len(p.Coeffs); i++ {
		lo.Coeffs[i].Set(p.Coeffs[i])
	}
	hiLen := len(p.Coeffs) - m
	if hiLen < 1 {
		hiLen = 1
	}
	hi = New(hiLen)
	for i := m; i < len(p.Coeffs); i++ {
		hi.Coeffs[i-m].Set(p.Coeffs[i])
	}
	return lo, hi
}

// mulKronecker implements Kronecker substitution (`sc_poly_mpz_mul_kronecker`):
// pack each operand's non-negative coefficients into a single big integer
// at a bit spacing wide enough that the schoolbook convolution terms cannot
// overlap, multiply the two packed integers with math/big's multiplier
// (sub-quadratic for large operands), then unpack.
//
// Signed coefficients are handled by splitting each operand into its
// non-negative and non-positive parts (p = pPos - pNeg, both >= 0
// coefficient-wise) and combining the four non-negative products, rather
// than biasing the packed value — simpler to get right than tracking a
// per-slot offset through the multiply.
func mulKronecker(p, q *Poly) *Poly {
	degP, degQ := p.Degree(), q.Degree()
	if degP < 0 || degQ < 0 {
		return New(1)
	}

	pPos, pNeg := splitSign(p)
	qPos, qNeg := splitSign(q)

	maxBits := 0
	for _, poly := range []*Poly{pPos, pNeg, qPos, qNeg} {
		for _, c := range poly.Coeffs {
			if b := c.BitLen(); b > maxBits {
				maxBits = b
			}
		}
	}
	n := degP + degQ + 2
	// Slot width: each convolution entry sums at most n products of
	// maxBits-bit magnitudes, plus a guard bit.
	width := 2*maxBits + bits.Len(uint(n)) + 2
	if width < 8 {
		width = 8
	}

	pp := kroneckerUnsignedMul(pPos, qPos, degP, degQ, width)
	pn := kroneckerUnsignedMul(pPos, qNeg, degP, degQ, width)
	np := kroneckerUnsignedMul(pNeg, qPos, degP, degQ, width)
	nn := kroneckerUnsignedMul(pNeg, qNeg, degP, degQ, width)

	return Sub(Add(pp, nn), Add(pn, np))
}

// splitSign decomposes p into non-negative polynomials (pos, neg) with
// p == pos - neg, coefficient-wise.
func splitSign(p *Poly) (pos, neg *Poly) {
	pos, neg = New(len(p.Coeffs)), New(len(p.Coeffs))
	for i, c := range p.Coeffs {
		switch c.Sign() {
		case 1:
			pos.Coeffs[i].Set(c)
		case -1:
			neg.Coeffs[i].Neg(c)
		}
	}
	return pos, neg
}

// kroneckerUnsignedMul multiplies two non-negative-coefficient polynomials
// via bit packing at the given slot width.
func kroneckerUnsignedMul(p, q *Poly, degP, degQ, width int) *Poly {
	packedP := kroneckerPack(p, degP, width)
	packedQ := kroneckerPack(q, degQ, width)
	product := new(big.Int).Mul(packedP, packedQ)

	r := New(degP + degQ + 1)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width)), big.NewInt(1))
	cur := new(big.Int).Set(product)
	for i := 0; i <= degP+degQ; i++ {
		slot := new(big.Int).And(cur, mask)
		r.Coeffs[i].FromBig(slot)
		cur.Rsh(cur, uint(width))
	}
	return r
}

func kroneckerPack(p *Poly, deg int, width int) *big.Int {
	packed := new(big.Int)
	for i := deg; i >= 0; i-- {
		packed.Lsh(packed, uint(width))
		if i < len(p.Coeffs) {
			packed.Add(packed, p.Coeffs[i].Big())
		}
	}
	return packed
}
