package polyz

import (
	"github.com/latticecore/gpvcore/bigint"
	"github.com/latticecore/gpvcore/errs"
)

// DivQuo returns the truncating quotient of num/den (coefficients divided
// with DivQuo at each step), matching `sc_poly_mpz_divquo`. It does not
// require exact divisibility: each coefficient division truncates toward
// zero, same as the source.
func DivQuo(num, den *Poly) (*Poly, error) {
	const op = "polyz.DivQuo"
	degNum, degDen := num.Degree(), den.Degree()
	if degNum < 0 || degDen < 0 {
		return nil, errs.New(errs.InvalidInput, op+": zero operand")
	}
	q := New(degNum + 1)
	if degNum < degDen {
		return q, nil
	}
	r := num.Clone()
	lc := den.Coeffs[degDen]
	for k := degNum - degDen; k >= 0; k-- {
		qk, err := bigint.DivQuo(r.Coeffs[degDen+k], lc)
		if err != nil {
			return nil, errs.Wrap(errs.InvalidInput, op, err)
		}
		q.Coeffs[k] = qk
		for j := degDen + k - 1; j >= k; j-- {
			t := bigint.New().Mul(qk, den.Coeffs[j-k])
			r.Coeffs[j].Sub(r.Coeffs[j], t)
		}
	}
	return q, nil
}

// Div returns (quotient, remainder) for num/den, matching `sc_poly_mpz_div`.
func Div(num, den *Poly) (q, r *Poly, err error) {
	const op = "polyz.Div"
	degNum, degDen := num.Degree(), den.Degree()
	if degNum < 0 || degDen < 0 {
		return nil, nil, errs.New(errs.InvalidInput, op+": zero operand")
	}
	q = New(degNum + 1)
	r = num.Clone()
	if degNum < degDen {
		return q, r, nil
	}
	lc := den.Coeffs[degDen]
	for k := degNum - degDen; k >= 0; k-- {
		qk, derr := bigint.DivQuo(r.Coeffs[degDen+k], lc)
		if derr != nil {
			return nil, nil, errs.Wrap(errs.InvalidInput, op, derr)
		}
		q.Coeffs[k] = qk
		for j := degDen + k; j >= k; j-- {
			t := bigint.New().Mul(qk, den.Coeffs[j-k])
			r.Coeffs[j].Sub(r.Coeffs[j], t)
		}
	}
	return q, r, nil
}

// PseudoRemainder computes the Cohen-style pseudo remainder of a by b
// (Algorithm 3.1.2 / the scaling step used inside the Euclidean resultant,
// `sc_poly_mpz_pseudo_remainder`): rem = lc(b)^(deg(a)-deg(b)+1) * a mod b,
// computed via the same coefficient-elimination loop as Div but scaling the
// running remainder by lc(b) at each step instead of dividing, so the
// computation stays exact over Z even when lc(b) does not divide evenly.
func PseudoRemainder(a, b *Poly) (*Poly, error) {
	const op = "polyz.PseudoRemainder"
	degA, degB := a.Degree(), b.Degree()
	if degA < 0 || degB < 0 {
		return nil, errs.New(errs.InvalidInput, op+": zero operand")
	}
	r := a.Clone()
	if degA < degB {
		return r, nil
	}
	lcB := b.Coeffs[degB]
	e := degA - degB + 1
	for {
		degR := r.Degree()
		if degR < degB {
			break
		}
		coeff := r.Coeffs[degR]
		// Scale the remainder by lc(b) then eliminate the leading term
		// using coeff*b shifted to align with degR.
		scaled := MulScalar(r, lcB)
		shift := degR - degB
		term := MulScalar(b, coeff)
		shifted := New(len(scaled.Coeffs))
		for i, c := range term.Coeffs {
			if i+shift < len(shifted.Coeffs) {
				shifted.Coeffs[i+shift].Set(c)
			}
		}
		r = Sub(scaled, shifted)
		e--
	}
	// Apply the lc(b) factors of the steps skipped when the remainder's
	// degree dropped by more than one at a time.
	if e > 0 {
		r = MulScalar(r, bigint.New().PowUi(lcB, uint64(e)))
	}
	return r, nil
}
