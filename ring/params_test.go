package ring

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPowerOfTwoN(t *testing.T) {
	_, err := New(100, big.NewInt(12289), 10)
	assert.Error(t, err)
}

func TestNewRejectsQNotCongruentToOneModTwoN(t *testing.T) {
	_, err := New(1024, big.NewInt(12288), 10)
	assert.Error(t, err)
}

func TestNewComputesSigmaKey(t *testing.T) {
	n := 1024
	q := big.NewInt(12289) // 12289 = 6*2048 + 1
	p, err := New(n, q, 10)
	require.NoError(t, err)
	assert.Equal(t, n, p.N)
	assert.Equal(t, 0, p.Q.Cmp(q))

	want := math.Sqrt((1.36 * 12289) / (2 * 1024))
	assert.InDelta(t, want, p.SigmaKey, 1e-9)
}

func TestPolyZZeroScrubs(t *testing.T) {
	p := NewPolyZ(4)
	copy(p.Coeffs, []int64{1, -2, 3, -4})
	p.Zero()
	for _, c := range p.Coeffs {
		assert.Equal(t, int64(0), c)
	}
}

func TestPolyZCloneIsIndependent(t *testing.T) {
	p := NewPolyZ(3)
	copy(p.Coeffs, []int64{1, 2, 3})
	c := p.Clone()
	c.Coeffs[0] = 99
	assert.Equal(t, int64(1), p.Coeffs[0])
}

func TestPolyZNormSquared(t *testing.T) {
	p := NewPolyZ(3)
	copy(p.Coeffs, []int64{1, 2, 3})
	assert.Equal(t, float64(14), p.NormSquared())
}

func TestPolyZBitLen(t *testing.T) {
	p := NewPolyZ(2)
	copy(p.Coeffs, []int64{-255, 3})
	assert.Equal(t, 8, p.BitLen())
}
