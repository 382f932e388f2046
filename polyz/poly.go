// Package polyz implements the arbitrary-precision polynomial kernel of
// spec §4.3 (component C3): multiplication policy selection, pseudo
// division, content extraction, Euclidean and modular resultants, and the
// extended-GCD used by trapdoor basis generation to solve the NTRU
// equation modulo (xᴺ+1).
//
// Coefficients are bigint.Int, not raw limb arrays — the arbitrary
// precision MPZ layer underneath, per spec §4.2/§4.3.
package polyz

import (
	"github.com/latticecore/gpvcore/bigint"
	"github.com/latticecore/gpvcore/errs"
)

// Poly is a dense polynomial Σ Coeffs[i]·xⁱ over Z. The zero polynomial has
// every coefficient 0; Degree returns -1 for it.
type Poly struct {
	Coeffs []*bigint.Int
}

// New allocates a zero polynomial with n coefficient slots.
func New(n int) *Poly {
	c := make([]*bigint.Int, n)
	for i := range c {
		c[i] = bigint.New()
	}
	return &Poly{Coeffs: c}
}

// FromInt64 builds a Poly from small integer coefficients (the common case
// for f, g sampled by the Gaussian sampler, and for F, G once solved).
func FromInt64(coeffs []int64) *Poly {
	p := New(len(coeffs))
	for i, c := range coeffs {
		p.Coeffs[i].SetInt64(c)
	}
	return p
}

// Len returns the number of coefficient slots (not the degree).
func (p *Poly) Len() int { return len(p.Coeffs) }

// Degree returns the index of the highest-order non-zero coefficient, or -1
// for the zero polynomial.
func (p *Poly) Degree() int {
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		if !p.Coeffs[i].IsZero() {
			return i
		}
	}
	return -1
}

// IsZero reports whether every coefficient is zero.
func (p *Poly) IsZero() bool { return p.Degree() < 0 }

// Clone returns an independent deep copy.
func (p *Poly) Clone() *Poly {
	c := New(len(p.Coeffs))
	for i, v := range p.Coeffs {
		c.Coeffs[i].Set(v)
	}
	return c
}

// Resize returns a copy truncated or zero-extended to n coefficients.
func (p *Poly) Resize(n int) *Poly {
	c := New(n)
	m := n
	if len(p.Coeffs) < m {
		m = len(p.Coeffs)
	}
	for i := 0; i < m; i++ {
		c.Coeffs[i].Set(p.Coeffs[i])
	}
	return c
}

// Equal reports whether p and q have the same coefficients (shorter one is
// treated as zero-padded).
func Equal(p, q *Poly) bool {
	n := len(p.Coeffs)
	if len(q.Coeffs) > n {
		n = len(q.Coeffs)
	}
	for i := 0; i < n; i++ {
		a, b := bigint.New(), bigint.New()
		if i < len(p.Coeffs) {
			a = p.Coeffs[i]
		}
		if i < len(q.Coeffs) {
			b = q.Coeffs[i]
		}
		if bigint.Cmp(a, b) != 0 {
			return false
		}
	}
	return true
}

// Negate returns -p.
func Negate(p *Poly) *Poly {
	r := New(len(p.Coeffs))
	for i, c := range p.Coeffs {
		r.Coeffs[i].Neg(c)
	}
	return r
}

// Reverse returns the coefficient-reversed polynomial of length n (used by
// gpv.GenerateBasis to build the reversed f and g).
func Reverse(p *Poly, n int) *Poly {
	r := New(n)
	for i := 0; i < n && i < len(p.Coeffs); i++ {
		r.Coeffs[n-1-i].Set(p.Coeffs[i])
	}
	return r
}

// Add returns p+q.
func Add(p, q *Poly) *Poly {
	n := len(p.Coeffs)
	if len(q.Coeffs) > n {
		n = len(q.Coeffs)
	}
	r := New(n)
	for i := 0; i < len(p.Coeffs); i++ {
		r.Coeffs[i].Add(r.Coeffs[i], p.Coeffs[i])
	}
	for i := 0; i < len(q.Coeffs); i++ {
		r.Coeffs[i].Add(r.Coeffs[i], q.Coeffs[i])
	}
	return r
}

// Sub returns p-q.
func Sub(p, q *Poly) *Poly { return Add(p, Negate(q)) }

// AddScalar returns p with its constant term incremented by c.
func AddScalar(p *Poly, c *bigint.Int) *Poly {
	r := p.Clone()
	if len(r.Coeffs) == 0 {
		return r
	}
	r.Coeffs[0].Add(r.Coeffs[0], c)
	return r
}

// MulScalar returns c*p.
func MulScalar(p *Poly, c *bigint.Int) *Poly {
	r := New(len(p.Coeffs))
	for i, v := range p.Coeffs {
		r.Coeffs[i].Mul(v, c)
	}
	return r
}

// DivPointwise divides every coefficient of p by the scalar c (truncating
// quotient), the C3 "content scale" helper used after Content extracts a
// common factor.
func DivPointwise(p *Poly, c *bigint.Int) (*Poly, error) {
	r := New(len(p.Coeffs))
	for i, v := range p.Coeffs {
		q, err := bigint.DivQuo(v, c)
		if err != nil {
			return nil, errs.Wrap(errs.InvalidInput, "polyz.DivPointwise", err)
		}
		r.Coeffs[i] = q
	}
	return r, nil
}

// ModRing reduces p modulo (xᴺ+1), returning a new polynomial of length n
// and leaving p unchanged: coefficients at index >= n fold back with a sign
// flip, since xᴺ ≡ -1.
func ModRing(p *Poly, n int) *Poly {
	r := New(n)
	for i, c := range p.Coeffs {
		if i < n {
			r.Coeffs[i].Add(r.Coeffs[i], c)
			continue
		}
		fold := i % n
		if (i/n)%2 == 1 {
			r.Coeffs[fold].Sub(r.Coeffs[fold], c)
		} else {
			r.Coeffs[fold].Add(r.Coeffs[fold], c)
		}
	}
	return r
}

// Content returns the GCD of all non-zero coefficients of p (spec §4.3's
// `sc_poly_mpz_content`). Returns an error for the zero polynomial, which
// has no well-defined content.
func Content(p *Poly) (*bigint.Int, error) {
	deg := p.Degree()
	if deg < 0 {
		return nil, errs.New(errs.InvalidInput, "polyz.Content: zero polynomial")
	}
	res := bigint.New()
	for i := deg; i >= 0; i-- {
		res = bigint.GCD(p.Coeffs[i], res)
	}
	return res, nil
}

// ContentScale divides every coefficient of p by content (spec §4.3's
// `sc_poly_mpz_content_scale`).
func ContentScale(p *Poly, content *bigint.Int) (*Poly, error) {
	return DivPointwise(p, content)
}
