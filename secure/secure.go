// Package secure implements the "scrub on drop" memory discipline required
// by spec §5/§7: any buffer that held (f, g, F, G), an MGS row, sampler
// internal state, or a decrypted plaintext must be explicitly zeroed before
// release, on every exit path including error returns.
package secure

import (
	"math/big"

	"github.com/latticecore/gpvcore/polyz"
)

// Zero overwrites every element of s with zero. It does not shrink or
// release the backing array — callers that want the memory released also
// drop the slice reference.
func Zero(s []int64) {
	for i := range s {
		s[i] = 0
	}
}

// ZeroBytes overwrites b with zero.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroFloat64 overwrites s with zero.
func ZeroFloat64(s []float64) {
	for i := range s {
		s[i] = 0
	}
}

// ZeroBigInts sets every element of s to the zero value, discarding any
// secret magnitude they held. big.Int has no exported way to wipe its limb
// array in place, so this replaces each element wholesale; callers must also
// drop any other alias to the original values.
func ZeroBigInts(s []*big.Int) {
	for i := range s {
		s[i] = big.NewInt(0)
	}
}

// ZeroPoly overwrites every coefficient of p in place, for the bigint.Int
// coefficient slices the C3/C5 intermediate polynomials (f, g, F, G, k, the
// reduction quotient, ...) are built from.
func ZeroPoly(p *polyz.Poly) {
	if p == nil {
		return
	}
	for _, c := range p.Coeffs {
		if c != nil {
			c.SetInt64(0)
		}
	}
}
