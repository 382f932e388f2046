package polyz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivQuoExactDivision(t *testing.T) {
	// (x^2 - 1) / (x - 1) = x + 1
	num := FromInt64([]int64{-1, 0, 1})
	den := FromInt64([]int64{-1, 1})
	q, err := DivQuo(num, den)
	require.NoError(t, err)
	assert.True(t, Equal(q, FromInt64([]int64{1, 1})))
}

func TestDivReturnsQuotientAndRemainder(t *testing.T) {
	num := FromInt64([]int64{1, 0, 1}) // x^2 + 1
	den := FromInt64([]int64{1, 1})    // x + 1
	q, r, err := Div(num, den)
	require.NoError(t, err)
	recombined := Add(Mul(q, den, MulSchoolbook), r)
	assert.True(t, Equal(recombined, num))
}

func TestPseudoRemainderClearsDenominators(t *testing.T) {
	a := FromInt64([]int64{1, 0, 1}) // x^2+1
	b := FromInt64([]int64{1, 2})    // 2x+1, leading coeff 2 does not divide evenly
	rem, err := PseudoRemainder(a, b)
	require.NoError(t, err)
	assert.Less(t, rem.Degree(), b.Degree())
}

func TestDivZeroOperandErrors(t *testing.T) {
	_, err := DivQuo(New(3), New(3))
	assert.Error(t, err)
}
