package polyz

import (
	"github.com/latticecore/gpvcore/bigint"
	"github.com/latticecore/gpvcore/errs"
)

// GCD computes the polynomial GCD of a and b over Z via the primitive PRS
// (pseudo-remainder sequence with content stripped at every step), the same
// algorithm family as resultantEuclidean (Cohen ch. 3). `sc_poly_mpz_gcd`
// instead runs a modular-image/CRT loop that reconstructs the GCD from its
// reductions mod a growing set of primes; that reconstruction exists there
// to bound the bit-growth of a fixed-limb-width bignum type. bigint.Int is
// already arbitrary precision, so the coefficient blow-up the CRT loop
// guards against is not a correctness hazard here, only a (smaller)
// performance one — see DESIGN.md's polyz entry.
func GCD(a, b *Poly) (*Poly, error) {
	const op = "polyz.GCD"
	degA, degB := a.Degree(), b.Degree()
	if degA < 0 || degB < 0 {
		return nil, errs.New(errs.InvalidInput, op+": zero operand")
	}

	contA, err := Content(a)
	if err != nil {
		return nil, err
	}
	contB, err := Content(b)
	if err != nil {
		return nil, err
	}
	contGCD := bigint.GCD(contA, contB)

	ptrA, err := ContentScale(a, contGCD)
	if err != nil {
		return nil, err
	}
	ptrB, err := ContentScale(b, contGCD)
	if err != nil {
		return nil, err
	}
	if Cmp := contGCD.Sign(); Cmp < 0 {
		ptrA = Negate(ptrA)
		ptrB = Negate(ptrB)
	}

	for ptrB.Degree() >= 0 {
		rem, perr := PseudoRemainder(ptrA, ptrB)
		if perr != nil {
			return nil, errs.Wrap(errs.NumericInstability, op, perr)
		}
		if remCont, cerr := Content(rem); cerr == nil {
			rem, err = ContentScale(rem, remCont)
			if err != nil {
				return nil, err
			}
		}
		ptrA, ptrB = ptrB, rem
	}

	result, err := normalizeLeading(ptrA)
	if err != nil {
		return nil, err
	}
	return MulScalar(result, contGCD), nil
}

// normalizeLeading divides out the content so the returned polynomial is
// primitive (content 1, up to sign).
func normalizeLeading(p *Poly) (*Poly, error) {
	deg := p.Degree()
	if deg < 0 {
		return p, nil
	}
	cont, err := Content(p)
	if err != nil {
		return nil, err
	}
	if cont.IsZero() {
		return p, nil
	}
	return ContentScale(p, cont)
}
