package preimage

import (
	"github.com/latticecore/gpvcore/errs"
)

// Float is the element type a BasisGS is computed over. The source carries
// three copies of the fast Gram-Schmidt recurrence (`_flt`, `_dbl`, `_ldbl`
// for float, double, long double); Go has no long double, so this generic
// implementation collapses the two it can express (float32, float64) into
// one function parameterised on T, per Design Notes §9's "generics instead
// of fixed-width copies" redesign.
type Float interface {
	~float32 | ~float64
}

// BasisGS is the Gram-Schmidt orthogonalisation of a 2N×2N trapdoor basis,
// computed without ever materialising BasisB: row i's orthogonalised vector
// and its squared norm (spec §4.6 step 2).
type BasisGS[T Float] struct {
	N      int
	Rows   [][]T
	NormSq []T
}

// ComputeGSO runs the fast MGS recurrence of spec §4.6 step 2, grounded on
// `modified_gram_schmidt_fast_dbl` (original_source/src/utils/arith/gpv.c
// lines 557-645): it only needs f, g and q, because the NTRU relation lets
// the second half's orthogonalisation be derived from the first half's last
// row scaled by q/D_{N-1}, without referencing F or G at all.
func ComputeGSO[T Float](f, g []int64, q int64) (*BasisGS[T], error) {
	const op = "preimage.ComputeGSO"
	n := len(f)
	if n == 0 || n != len(g) || n&(n-1) != 0 {
		return nil, errs.New(errs.InvalidParameter, op+": f, g must be equal non-zero power-of-two length")
	}
	total := 2 * n

	bgs := make([][]T, total)
	for i := range bgs {
		bgs[i] = make([]T, total)
	}
	normSq := make([]T, total)
	v := make([]T, total)
	v1 := make([]T, total)

	// First half, row 0: b_gs,0 = (g, -f).
	for i := 0; i < n; i++ {
		bgs[0][i] = T(g[i])
		bgs[0][n+i] = -T(f[i])
	}
	rotate(bgs[0], v, n)
	copy(v1, v)

	ck := dot(bgs[0], v)
	dk := dotSelf(v)
	normSq[0] = dk

	ck, dk = mgsRecurrence(bgs, normSq, v, v1, 1, n, n, ck, dk)

	// Second half, row n: reversed last first-half row, scaled by q/D_{n-1}.
	invD := T(1) / dk
	for i := 0; i < n; i++ {
		bgs[n][n+i] = bgs[n-1][n-1-i] * T(q) * invD
		bgs[n][i] = -bgs[n-1][2*n-1-i] * T(q) * invD
	}
	rotate(bgs[n], v, n)
	copy(v1, v)

	ck = dot(bgs[n], v1)
	dk = dotSelf(bgs[n])
	normSq[n] = dk

	mgsRecurrence(bgs, normSq, v, v1, n+1, total, n, ck, dk)

	return &BasisGS[T]{N: n, Rows: bgs, NormSq: normSq}, nil
}

// rotate fills v with the negacyclic rotation-by-one of row (split in half
// at n, each half wrapping independently with a sign flip), matching the
// source's per-half `v[i] = b_gs[i+1]; ...; v[n-1] = -b_gs[0]` shift.
func rotate[T Float](row, v []T, n int) {
	for i := 0; i < n-1; i++ {
		v[i] = row[i+1]
		v[n+i] = row[n+i+1]
	}
	v[n-1] = -row[0]
	v[2*n-1] = -row[n]
}

// mgsRecurrence runs the shared row recurrence for rows [start, end) of a
// 2N-row GSO table: b_gs,i is built from b_gs,i-1 and the running rotation
// v, then C_i, D_i are updated from the previous pair, reproducing
// `modified_gram_schmidt_fast_dbl`'s inner loop for both halves.
func mgsRecurrence[T Float](bgs [][]T, normSq []T, v, v1 []T, start, end, n int, ck, dk T) (T, T) {
	for i := start; i < end; i++ {
		aux := ck / dk
		bgs[i][0] = -bgs[i-1][n-1] + aux*v[n-1]
		bgs[i][n] = -bgs[i-1][2*n-1] + aux*v[2*n-1]
		for j := 1; j < n; j++ {
			bgs[i][j] = bgs[i-1][j-1] - aux*v[j-1]
			bgs[i][n+j] = bgs[i-1][n+j-1] - aux*v[n+j-1]
		}
		for j := 0; j < 2*n; j++ {
			v[j] -= aux * bgs[i-1][j]
		}

		cko, dko := ck, dk
		ck = dot(bgs[i], v1)
		dk = dko - cko*cko/dko
		normSq[i] = dk
	}
	return ck, dk
}

func dot[T Float](a, b []T) T {
	var sum T
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func dotSelf[T Float](a []T) T { return dot(a, a) }
