package polyz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultantEuclideanKnownValue(t *testing.T) {
	// Res(x^2-1, x-1) = (1)^2 - 1 = 0 (shared root at x=1).
	a := FromInt64([]int64{-1, 0, 1})
	b := FromInt64([]int64{-1, 1})
	r, err := Resultant(a, b)
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	// Res(x^2-1, x-2) = 2^2 - 1 = 3.
	c := FromInt64([]int64{-2, 1})
	r2, err := Resultant(a, c)
	require.NoError(t, err)
	v, ok := r2.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(3), v)
}

func TestResultantModularPathAgreesWithEuclidean(t *testing.T) {
	// Force the modular path by padding b past the threshold with zero
	// coefficients above its true degree.
	a := FromInt64([]int64{-2, 1}) // x - 2
	bSmall := FromInt64([]int64{-3, 1})
	bPadded := New(resultantModularThreshold + 1)
	copy(bPadded.Coeffs[:2], bSmall.Coeffs)

	rSmall, err := resultantEuclidean(a, bSmall)
	require.NoError(t, err)
	rPadded, err := resultantModular(a, bPadded)
	require.NoError(t, err)

	vSmall, ok := rSmall.Int64()
	require.True(t, ok)
	vPadded, ok := rPadded.Int64()
	require.True(t, ok)
	assert.Equal(t, vSmall, vPadded)
}
