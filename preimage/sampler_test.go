package preimage

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticecore/gpvcore/gauss"
	"github.com/latticecore/gpvcore/gauss/entropy"
	"github.com/latticecore/gpvcore/gpv"
	"github.com/latticecore/gpvcore/ring"
)

func deterministicEntropy(b byte) entropy.Source {
	var seed [32]byte
	seed[0] = b
	return entropy.NewDeterministicChaCha8(seed)
}

func generateTestTrapdoor(t *testing.T) (*ring.Params, *gpv.SecretKey) {
	t.Helper()
	params, err := ring.New(16, big.NewInt(97), 10)
	require.NoError(t, err)

	s, err := gauss.New(gauss.Config{
		Variant: gauss.CDT,
		Sigma:   params.SigmaKey,
		Tail:    params.Tail,
	}, deterministicEntropy(3))
	require.NoError(t, err)

	sk, _, _, err := gpv.GenerateBasis(params, s)
	require.NoError(t, err)
	return params, sk
}

func TestSampleGenericAndEfficientModesProduceFullLengthVector(t *testing.T) {
	params, sk := generateTestTrapdoor(t)
	n := params.N

	basisB := ExpandBasis(sk)
	basisGS, err := ComputeGSO[float64](sk.SmallF().Coeffs, sk.SmallG().Coeffs, mustInt64(t, params.Q))
	require.NoError(t, err)

	target := make([]int64, n)
	for i := range target {
		target[i] = int64(i % 3)
	}

	sigmaSample := params.SigmaKey * 8

	for _, mode := range []Mode{ModeGeneric, ModeEfficient} {
		cfg := Config{Mode: mode, Variant: gauss.CDT, Tail: params.Tail}
		z, err := Sample(basisB, basisGS, target, sigmaSample, deterministicEntropy(9), cfg)
		require.NoError(t, err, "mode %v", mode)
		assert.Len(t, z, 2*n)
	}
}

func TestSampleRejectsWrongTargetLength(t *testing.T) {
	_, sk := generateTestTrapdoor(t)
	basisB := ExpandBasis(sk)
	basisGS, err := ComputeGSO[float64](sk.SmallF().Coeffs, sk.SmallG().Coeffs, 97)
	require.NoError(t, err)

	cfg := Config{Mode: ModeGeneric, Variant: gauss.CDT, Tail: 10}
	_, err = Sample(basisB, basisGS, []int64{1, 2, 3}, 40, deterministicEntropy(1), cfg)
	assert.Error(t, err)
}

func TestRowSamplersBootstrapModeUsesBaseDirectlyAtMinimum(t *testing.T) {
	rowSigma := []float64{5, 5, 20, 50}
	rs, err := buildSamplers(rowSigma, 2, deterministicEntropy(2), Config{Mode: ModeBootstrap, Variant: gauss.CDT, Tail: 10})
	require.NoError(t, err)

	// Rows at the minimum sigma (index 0, 1) must succeed via the base
	// sampler without needing the bootstrap inequality to hold.
	_, err = rs.sample(0, 0)
	assert.NoError(t, err)
	_, err = rs.sample(1, 0)
	assert.NoError(t, err)

	// Row 3's sigma (50) is far enough above the minimum (5) to satisfy the
	// bootstrap inequality sqrt(50^2-5^2) > 6*2.0 = 12.
	_, err = rs.sample(3, 0)
	assert.NoError(t, err)
}

func TestRowSamplersGenericModeBuildsOnePerRow(t *testing.T) {
	rowSigma := []float64{4, 8, 12}
	rs, err := buildSamplers(rowSigma, 1, deterministicEntropy(4), Config{Mode: ModeGeneric, Variant: gauss.CDT, Tail: 10})
	require.NoError(t, err)
	require.Len(t, rs.perRow, 3)
	for i, s := range rs.perRow {
		assert.Equal(t, rowSigma[i], s.Sigma())
	}
}

func mustInt64(t *testing.T, z *big.Int) int64 {
	t.Helper()
	if !z.IsInt64() {
		t.Fatalf("value does not fit in int64: %s", z.String())
	}
	return z.Int64()
}
