package preimage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticecore/gpvcore/gpv"
	"github.com/latticecore/gpvcore/ring"
)

func TestAnticirculantDirectAndWrappedTerms(t *testing.T) {
	// p = [2, 3]; n = 2.
	p := []int64{2, 3}
	a := anticirculant(p, 2)
	// row0: col>=row direct terms -> [p0, p1] = [2,3]
	assert.Equal(t, []int64{2, 3}, a[0])
	// row1: col0 wraps (col<row) -> -p[(0-1)%2] = -p[1] = -3; col1 direct -> p[0]=2
	assert.Equal(t, []int64{-3, 2}, a[1])
}

func TestExpandBasisLayoutMatchesAnticirculantBlocks(t *testing.T) {
	n := 2
	f := ring.PolyZ{Coeffs: []int64{1, 0}}
	g := ring.PolyZ{Coeffs: []int64{0, 1}}
	F := ring.PolyZ{Coeffs: []int64{5, 0}}
	G := ring.PolyZ{Coeffs: []int64{0, 5}}

	sk := gpv.NewSecretKey(f, g, F, G)

	b := ExpandBasis(sk)
	require.Equal(t, n, b.N)
	require.Len(t, b.Rows, 2*n)

	// Row 0: [rot(g)[0], -rot(f)[0]] = [0, 1, -1, 0].
	assert.Equal(t, []int64{0, 1, -1, 0}, b.Rows[0])
	// Row 1: [rot(g)[1], -rot(f)[1]] = [-1, 0, 0, -1].
	assert.Equal(t, []int64{-1, 0, 0, -1}, b.Rows[1])
	// Row 2: [rot(G)[0], -rot(F)[0]] = [0, 5, -5, 0].
	assert.Equal(t, []int64{0, 5, -5, 0}, b.Rows[2])
	// Row 3: [rot(G)[1], -rot(F)[1]] = [-5, 0, 0, -5].
	assert.Equal(t, []int64{-5, 0, 0, -5}, b.Rows[3])
}

func TestBasisBRowBoundsChecked(t *testing.T) {
	sk := gpv.NewSecretKey(
		ring.PolyZ{Coeffs: []int64{1, 0}},
		ring.PolyZ{Coeffs: []int64{0, 1}},
		ring.PolyZ{Coeffs: []int64{1, 0}},
		ring.PolyZ{Coeffs: []int64{0, 1}},
	)
	b := ExpandBasis(sk)
	_, err := b.Row(-1)
	assert.Error(t, err)
	_, err = b.Row(4)
	assert.Error(t, err)
	row, err := b.Row(0)
	require.NoError(t, err)
	assert.Len(t, row, 4)
}
