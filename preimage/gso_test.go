package preimage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestComputeGSORejectsMismatchedOrNonPowerOfTwoLength(t *testing.T) {
	_, err := ComputeGSO[float64]([]int64{1, 2, 3}, []int64{1, 2}, 97)
	assert.Error(t, err)

	_, err = ComputeGSO[float64]([]int64{1, 2, 3}, []int64{1, 2, 3}, 97)
	assert.Error(t, err, "length 3 is not a power of two")
}

func TestComputeGSOFirstRowIsGAndNegF(t *testing.T) {
	f := []int64{1, 1, 0, -1}
	g := []int64{2, -1, 1, 0}
	basis, err := ComputeGSO[float64](f, g, 97)
	require.NoError(t, err)

	n := 4
	for i := 0; i < n; i++ {
		assert.Equal(t, float64(g[i]), basis.Rows[0][i])
		assert.Equal(t, -float64(f[i]), basis.Rows[0][n+i])
	}
}

// TestComputeGSOFirstHalfIsOrthogonal checks the defining Gram-Schmidt
// property on rows [0, N) of the table, which the fast MGS recurrence
// derives purely from f and g (the second half additionally assumes the
// NTRU relation on F, G, so it is not exercised by this property check).
func TestComputeGSOFirstHalfIsOrthogonal(t *testing.T) {
	f := []int64{1, 1, 0, -1}
	g := []int64{2, -1, 1, 0}
	n := 4
	basis, err := ComputeGSO[float64](f, g, 97)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		selfDot := dot(basis.Rows[i], basis.Rows[i])
		assert.InDelta(t, selfDot, basis.NormSq[i], 1e-6, "NormSq[%d] must equal the row's own squared norm", i)
		assert.Greater(t, basis.NormSq[i], 0.0)

		for j := 0; j < i; j++ {
			d := dot(basis.Rows[i], basis.Rows[j])
			assert.InDelta(t, 0, d, 1e-6, "rows %d and %d must be orthogonal", i, j)

			// Secondary sanity check using gonum/stat: Pearson correlation
			// between any two rows must stay within [-1, 1], a coarse but
			// independent numerical-sanity lens on the same row data the
			// exact dot-product check above already verified.
			weights := make([]float64, len(basis.Rows[i]))
			for w := range weights {
				weights[w] = 1
			}
			corr := stat.Correlation(basis.Rows[i], basis.Rows[j], weights)
			assert.GreaterOrEqual(t, corr, -1.0-1e-9)
			assert.LessOrEqual(t, corr, 1.0+1e-9)
		}
	}
}

func TestDenseMatchesRowAccess(t *testing.T) {
	f := []int64{1, 1, 0, -1}
	g := []int64{2, -1, 1, 0}
	basis, err := ComputeGSO[float64](f, g, 97)
	require.NoError(t, err)

	d := Dense(basis)
	rows, cols := d.Dims()
	require.Equal(t, 8, rows)
	require.Equal(t, 8, cols)
	for i, row := range basis.Rows {
		for j, want := range row {
			assert.Equal(t, want, d.At(i, j))
		}
	}
}

func TestComputeGSOTotalShapeIsTwoNByTwoN(t *testing.T) {
	f := []int64{1, 0, -1, 2, 0, 1, -1, 0}
	g := []int64{0, 1, 1, -1, 2, 0, -1, 1}
	basis, err := ComputeGSO[float64](f, g, 12289)
	require.NoError(t, err)
	require.Equal(t, 8, basis.N)
	require.Len(t, basis.Rows, 16)
	for _, row := range basis.Rows {
		require.Len(t, row, 16)
	}
	require.Len(t, basis.NormSq, 16)
}
