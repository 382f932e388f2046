package polyz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXGCDSatisfiesBezoutIdentity(t *testing.T) {
	// a = x^4 + 1 (the NTRU modulus for N=4), b = x + 2 (coprime to it).
	a := FromInt64([]int64{1, 0, 0, 0, 1})
	b := FromInt64([]int64{2, 1})

	g, u, v, err := XGCD(a, b)
	require.NoError(t, err)
	require.Equal(t, 0, g.Degree(), "gcd of coprime polynomials must be a scalar")

	lhs := Add(Mul(a, u, MulSchoolbook), Mul(b, v, MulSchoolbook))
	assert.True(t, Equal(lhs, g))
}

func TestXGCDRejectsZeroOperand(t *testing.T) {
	_, _, _, err := XGCD(New(3), FromInt64([]int64{1, 1}))
	assert.Error(t, err)
}

func TestGCDOfCoprimePolynomialsIsConstant(t *testing.T) {
	a := FromInt64([]int64{1, 0, 0, 0, 1})
	b := FromInt64([]int64{2, 1})
	g, err := GCD(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Degree())
	assert.False(t, g.Coeffs[0].IsZero())
}

func TestGCDOfSharedFactor(t *testing.T) {
	shared := FromInt64([]int64{1, 1}) // (x+1)
	a := Mul(shared, FromInt64([]int64{2, -1}), MulSchoolbook)
	b := Mul(shared, FromInt64([]int64{3, 1}), MulSchoolbook)
	g, err := GCD(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Degree())

	content, err := Content(g)
	require.NoError(t, err)
	normalized, err := ContentScale(g, content)
	require.NoError(t, err)
	if normalized.Coeffs[normalized.Degree()].Sign() < 0 {
		normalized = Negate(normalized)
	}
	assert.True(t, Equal(normalized, shared))
}
