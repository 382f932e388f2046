package limb

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulModAgainstBigInt(t *testing.T) {
	m := NewModulus(1<<61 - 1)
	cases := []struct{ a, b uint64 }{
		{0, 0},
		{1, 1},
		{m.M - 1, m.M - 1},
		{123456789, 987654321},
		{m.M / 2, m.M/2 + 1},
	}
	for _, c := range cases {
		got := MulMod(c.a, c.b, m)
		want := new(big.Int).Mod(new(big.Int).Mul(
			new(big.Int).SetUint64(c.a), new(big.Int).SetUint64(c.b)),
			new(big.Int).SetUint64(m.M))
		assert.Equal(t, want.Uint64(), got, "MulMod(%d, %d)", c.a, c.b)
	}
}

func TestAddSubModRoundTrip(t *testing.T) {
	m := NewModulus(97)
	for a := uint64(0); a < m.M; a++ {
		for b := uint64(0); b < m.M; b++ {
			sum := AddMod(a, b, m)
			back := SubMod(sum, b, m)
			assert.Equal(t, a, back)
		}
	}
}

func TestInvModRejectsNonUnit(t *testing.T) {
	_, ok := InvMod(6, 9)
	assert.False(t, ok, "6 is not a unit mod 9")

	inv, ok := InvMod(5, 9)
	require.True(t, ok)
	assert.Equal(t, uint64(1), MulMod(5, inv, NewModulus(9)))
}

func TestNextPrime(t *testing.T) {
	assert.Equal(t, uint64(3), NextPrime(0))
	assert.Equal(t, uint64(3), NextPrime(2))
	assert.Equal(t, uint64(11), NextPrime(7))
	p := NextPrime(1 << 40)
	assert.True(t, isPrime(p))
	assert.Greater(t, p, uint64(1)<<40)
}
