package polyz

import (
	"math/big"

	"github.com/latticecore/gpvcore/errs"
)

// XGCD computes (g, u, v) such that a*u + b*v = g, a scalar multiple of
// gcd(a, b), via the extended Euclidean algorithm carried out over Q[x]
// (exact field division at every step, tracked with math/big.Rat) and then
// cleared of denominators.
//
// `sc_poly_mpz_xgcd` instead runs the computation modulo a growing set of
// machine-word primes and verifies stability via CRT reconstruction before
// trusting a candidate (s, t) pair — a technique for bounding intermediate
// bignum growth on a fixed-limb-width integer type. Since bigint.Int is
// already arbitrary precision, the rational-field algorithm below is exact
// at every step and needs no stabilisation loop; see DESIGN.md's polyz
// entry for the full rationale. This is the operation `gpv.GenerateBasis`
// calls as XGCD(f, xᴺ+1) and XGCD(g, xᴺ+1) (spec §4.5 step 3).
func XGCD(a, b *Poly) (g *Poly, u *Poly, v *Poly, err error) {
	const op = "polyz.XGCD"
	if a.Degree() < 0 || b.Degree() < 0 {
		return nil, nil, nil, errs.New(errs.InvalidInput, op+": zero operand")
	}

	r0, r1 := toRat(a), toRat(b)
	s0, s1 := ratOne(), ratZero()
	t0, t1 := ratZero(), ratOne()

	for ratDegree(r1) >= 0 {
		q, rem := ratDivMod(r0, r1)
		r0, r1 = r1, rem
		s0, s1 = s1, ratSub(s0, ratMul(q, s1))
		t0, t1 = t1, ratSub(t0, ratMul(q, t1))
	}

	gPoly, uPoly, vPoly, derr := clearDenominators(r0, s0, t0)
	if derr != nil {
		return nil, nil, nil, errs.Wrap(errs.NumericInstability, op, derr)
	}
	return gPoly, uPoly, vPoly, nil
}

type ratPoly []*big.Rat

func ratZero() ratPoly { return ratPoly{} }
func ratOne() ratPoly  { return ratPoly{new(big.Rat).SetInt64(1)} }

func toRat(p *Poly) ratPoly {
	deg := p.Degree()
	if deg < 0 {
		return ratPoly{}
	}
	r := make(ratPoly, deg+1)
	for i := 0; i <= deg; i++ {
		r[i] = new(big.Rat).SetInt(p.Coeffs[i].Big())
	}
	return r
}

func ratDegree(p ratPoly) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Sign() != 0 {
			return i
		}
	}
	return -1
}

func ratTrim(p ratPoly) ratPoly {
	d := ratDegree(p)
	if d < 0 {
		return ratPoly{}
	}
	return p[:d+1]
}

func ratAdd(a, b ratPoly) ratPoly {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	r := make(ratPoly, n)
	for i := range r {
		r[i] = new(big.Rat)
		if i < len(a) {
			r[i].Add(r[i], a[i])
		}
		if i < len(b) {
			r[i].Add(r[i], b[i])
		}
	}
	return ratTrim(r)
}

func ratNeg(a ratPoly) ratPoly {
	r := make(ratPoly, len(a))
	for i, c := range a {
		r[i] = new(big.Rat).Neg(c)
	}
	return r
}

func ratSub(a, b ratPoly) ratPoly { return ratAdd(a, ratNeg(b)) }

func ratMul(a, b ratPoly) ratPoly {
	da, db := ratDegree(a), ratDegree(b)
	if da < 0 || db < 0 {
		return ratPoly{}
	}
	r := make(ratPoly, da+db+1)
	for i := range r {
		r[i] = new(big.Rat)
	}
	for i := 0; i <= da; i++ {
		if a[i].Sign() == 0 {
			continue
		}
		for j := 0; j <= db; j++ {
			if b[j].Sign() == 0 {
				continue
			}
			t := new(big.Rat).Mul(a[i], b[j])
			r[i+j].Add(r[i+j], t)
		}
	}
	return ratTrim(r)
}

// ratDivMod performs exact polynomial division over Q: num = q*den + rem
// with deg(rem) < deg(den). Field division by the leading coefficient is
// always exact, unlike DivQuo's integer truncation.
func ratDivMod(num, den ratPoly) (q, rem ratPoly) {
	degDen := ratDegree(den)
	if degDen < 0 {
		return ratPoly{}, num
	}
	degNum := ratDegree(num)
	if degNum < degDen {
		return ratPoly{}, num
	}
	r := make(ratPoly, len(num))
	for i, c := range num {
		r[i] = new(big.Rat).Set(c)
	}
	qc := make(ratPoly, degNum-degDen+1)
	for i := range qc {
		qc[i] = new(big.Rat)
	}
	lc := den[degDen]
	lcInv := new(big.Rat).Inv(lc)
	for k := degNum - degDen; k >= 0; k-- {
		if degDen+k >= len(r) {
			continue
		}
		coeff := new(big.Rat).Mul(r[degDen+k], lcInv)
		qc[k] = coeff
		if coeff.Sign() == 0 {
			continue
		}
		for j := degDen + k; j >= k; j-- {
			t := new(big.Rat).Mul(coeff, den[j-k])
			r[j].Sub(r[j], t)
		}
	}
	return ratTrim(qc), ratTrim(r)
}

// clearDenominators scales (g, u, v) by the least common multiple of every
// denominator appearing in them, producing integer Bezout polynomials and
// the integer scalar g (which must have degree 0, since a, b are coprime
// over Q whenever this is invoked with f and xᴺ+1 over a prime-ordered
// lattice field).
func clearDenominators(g, u, v ratPoly) (*Poly, *Poly, *Poly, error) {
	lcm := big.NewInt(1)
	for _, poly := range []ratPoly{g, u, v} {
		for _, c := range poly {
			if c.Sign() == 0 {
				continue
			}
			d := c.Denom()
			gcd := new(big.Int).GCD(nil, nil, lcm, d)
			lcm.Div(lcm, gcd)
			lcm.Mul(lcm, d)
		}
	}

	scale := func(p ratPoly) *Poly {
		out := New(len(p))
		for i, c := range p {
			num := new(big.Int).Mul(c.Num(), new(big.Int).Div(lcm, c.Denom()))
			out.Coeffs[i].FromBig(num)
		}
		return out
	}

	gInt := scale(g)
	if gInt.Degree() > 0 {
		return nil, nil, nil, errs.New(errs.NumericInstability, "polyz.XGCD: operands not coprime over Q")
	}

	return gInt, scale(u), scale(v), nil
}
