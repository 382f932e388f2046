package gpv

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticecore/gpvcore/bigint"
	"github.com/latticecore/gpvcore/gauss"
	"github.com/latticecore/gpvcore/gauss/entropy"
	"github.com/latticecore/gpvcore/polyz"
	"github.com/latticecore/gpvcore/ring"
)

func testParams(t *testing.T) *ring.Params {
	t.Helper()
	// N=16, q=97 is prime and 97 mod 32 == 1.
	p, err := ring.New(16, big.NewInt(97), 10)
	require.NoError(t, err)
	return p
}

func testSampler(t *testing.T, params *ring.Params) gauss.Sampler {
	t.Helper()
	var seed [32]byte
	seed[1] = 7
	src := entropy.NewDeterministicChaCha8(seed)
	s, err := gauss.New(gauss.Config{
		Variant: gauss.CDT,
		Sigma:   params.SigmaKey,
		Tail:    params.Tail,
	}, src)
	require.NoError(t, err)
	return s
}

func TestGenerateBasisSatisfiesNTRUIdentity(t *testing.T) {
	params := testParams(t)
	sampler := testSampler(t, params)

	sk, pk, stats, err := GenerateBasis(params, sampler)
	require.NoError(t, err)
	require.NotNil(t, sk)
	require.NotNil(t, pk)
	assert.GreaterOrEqual(t, stats.Attempts, 1)

	n := params.N
	fPoly := polyz.FromInt64(sk.SmallF().Coeffs)
	gPoly := polyz.FromInt64(sk.SmallG().Coeffs)
	FPoly := polyz.FromInt64(sk.F.Coeffs)
	GPoly := polyz.FromInt64(sk.G.Coeffs)

	lhs := polyz.ModRing(polyz.Sub(
		polyz.Mul(fPoly, GPoly, polyz.MulAuto),
		polyz.Mul(gPoly, FPoly, polyz.MulAuto),
	), n)

	q := bigint.New().FromBig(params.Q)
	assert.True(t, ntruIdentityHolds(lhs, q), "f*G - g*F must equal q mod (x^N+1)")
}

func TestGenerateBasisPublicKeyConsistentWithSecretKey(t *testing.T) {
	params := testParams(t)
	sampler := testSampler(t, params)

	sk, pk, _, err := GenerateBasis(params, sampler)
	require.NoError(t, err)

	n := params.N
	q := bigint.New().FromBig(params.Q)
	fPoly := polyz.FromInt64(sk.SmallF().Coeffs)
	hPoly := polyz.FromInt64(pk.H.Coeffs)

	product := reduceModQ(polyz.ModRing(polyz.Mul(fPoly, hPoly, polyz.MulAuto), n), q)
	gPoly := reduceModQ(polyz.FromInt64(sk.SmallG().Coeffs), q)
	assert.True(t, polyz.Equal(product, gPoly), "f*h must equal g mod q")
}

func TestSecretKeyZeroScrubs(t *testing.T) {
	params := testParams(t)
	sampler := testSampler(t, params)
	sk, _, _, err := GenerateBasis(params, sampler)
	require.NoError(t, err)

	sk.Zero()
	for _, c := range sk.F.Coeffs {
		assert.Equal(t, int64(0), c)
	}
	for _, c := range sk.SmallF().Coeffs {
		assert.Equal(t, int64(0), c)
	}
}
