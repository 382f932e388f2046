// Package preimage implements the GPV preimage sampler (spec §4.6,
// component C6): anticirculant expansion of a trapdoor basis into its dense
// 2N×2N integer matrix, the fast Gram-Schmidt recurrence that orthogonalises
// it without ever materialising the expansion, and the row-walking sampler
// that uses both to draw a short vector above a target coset.
package preimage

import (
	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/gpv"
)

// BasisB is the expanded 2N×2N trapdoor basis
//
//	B = [ rot(g)   -rot(f) ]
//	    [ rot(G)   -rot(F) ]
//
// (spec §4.5's data flow note "the basis is expanded into its 2N×2N
// anticirculant matrix"). DESIGN.md Open Question 1 records that the sign
// flip on f, F lives here, not in the stored SecretKey.
type BasisB struct {
	N    int
	Rows [][]int64
}

// ExpandBasis materialises the 2N×2N anticirculant basis from a trapdoor,
// grounded on `gpv_expand_basis`/`poly_limb_anticirculant`
// (original_source/src/utils/arith/gpv.c lines 135-207): each quadrant is the
// anticirculant (negacyclic rotation) matrix of one trapdoor polynomial,
// with f and F negated.
func ExpandBasis(sk *gpv.SecretKey) *BasisB {
	n := len(sk.F.Coeffs)
	rows := make([][]int64, 2*n)
	for i := range rows {
		rows[i] = make([]int64, 2*n)
	}

	smallF := sk.SmallF()
	smallG := sk.SmallG()
	rotG := anticirculant(sk.G.Coeffs, n)
	rotF := anticirculant(sk.F.Coeffs, n)
	rotg := anticirculant(smallG.Coeffs, n)
	rotf := anticirculant(smallF.Coeffs, n)

	for i := 0; i < n; i++ {
		copy(rows[i][:n], rotg[i])
		for j := 0; j < n; j++ {
			rows[i][n+j] = -rotf[i][j]
		}
		copy(rows[n+i][:n], rotG[i])
		for j := 0; j < n; j++ {
			rows[n+i][n+j] = -rotF[i][j]
		}
	}

	return &BasisB{N: n, Rows: rows}
}

// anticirculant returns the n×n negacyclic rotation matrix of p (a length-n
// representative of an element of Z[x]/(xⁿ+1)):
//
//	A[row][col] =  p[(col-row) mod n]  if col >= row
//	A[row][col] = -p[(col-row) mod n]  if col <  row
//
// matching `poly_limb_anticirculant`'s two-loop construction (direct terms
// for col >= row, negated wraparound terms for col < row).
func anticirculant(p []int64, n int) [][]int64 {
	a := make([][]int64, n)
	for row := 0; row < n; row++ {
		a[row] = make([]int64, n)
		for col := 0; col < n; col++ {
			k := ((col - row) % n + n) % n
			if col >= row {
				a[row][col] = p[k]
			} else {
				a[row][col] = -p[k]
			}
		}
	}
	return a
}

// Row returns row i of the expanded basis (0 <= i < 2N).
func (b *BasisB) Row(i int) ([]int64, error) {
	if i < 0 || i >= len(b.Rows) {
		return nil, errs.New(errs.InvalidParameter, "preimage.BasisB.Row: index out of range")
	}
	return b.Rows[i], nil
}
