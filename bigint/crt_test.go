package bigint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRTPairReconstructs(t *testing.T) {
	ma, mb := NewFromInt64(7), NewFromInt64(11)
	inv, ok := InvMod(ma, mb)
	require.True(t, ok)

	a, b := NewFromInt64(3), NewFromInt64(5)
	x := CRTPair(a, ma, b, mb, inv)

	assert.Equal(t, int64(3), mustInt64(t, New().Mod(x, ma)))
	assert.Equal(t, int64(5), mustInt64(t, New().Mod(x, mb)))
}

func TestCombCombinesSeveralPrimes(t *testing.T) {
	primes := []uint64{1000003, 1000033, 1000037}
	comb := NewComb(primes)

	want := NewFromInt64(123456789012)
	residues := make([]uint64, len(primes))
	for i, p := range primes {
		residues[i] = ModUi(want, p)
	}

	got := comb.Combine(residues)
	modResult := New().Mod(got, comb.Modulus())
	modWant := New().Mod(want, comb.Modulus())
	assert.Equal(t, 0, Cmp(modResult, modWant))
}
