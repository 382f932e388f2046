package preimage

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"

	"github.com/latticecore/gpvcore/gauss"
	"github.com/latticecore/gpvcore/gauss/entropy"
	"github.com/latticecore/gpvcore/gpv"
	"github.com/latticecore/gpvcore/ring"
)

// hashToSyndrome is a test-only stand-in for the Hash/XOF collaborator of
// spec §6 ("supplies init/update/final for the oracle used by IBE H1 and
// signature H ... called only by scheme-level code, never by the core
// itself"). It derives an N-coefficient target vector from a message by
// expanding a BLAKE3 XOF over the ring modulus, exercising the exact
// scheme-level role the core itself never plays.
func hashToSyndrome(msg []byte, n int, q int64) []int64 {
	h := blake3.New()
	_, _ = h.Write(msg)
	digest := h.Digest()

	out := make([]int64, n)
	var chunk [8]byte
	for i := range out {
		_, _ = digest.Read(chunk[:])
		v := int64(0)
		for _, b := range chunk {
			v = (v << 8) | int64(b)
		}
		if v < 0 {
			v = -v
		}
		out[i] = v % q
	}
	return out
}

func TestSampleAgainstHashDerivedSyndrome(t *testing.T) {
	params, err := ring.New(16, big.NewInt(97), 10)
	require.NoError(t, err)

	var seed [32]byte
	seed[0] = 11
	s, err := gauss.New(gauss.Config{
		Variant: gauss.CDT,
		Sigma:   params.SigmaKey,
		Tail:    params.Tail,
	}, entropy.NewDeterministicChaCha8(seed))
	require.NoError(t, err)

	sk, _, _, err := gpv.GenerateBasis(params, s)
	require.NoError(t, err)

	basisB := ExpandBasis(sk)
	basisGS, err := ComputeGSO[float64](sk.SmallF().Coeffs, sk.SmallG().Coeffs, 97)
	require.NoError(t, err)

	target := hashToSyndrome([]byte("gpvcore preimage test message"), params.N, 97)

	cfg := Config{Mode: ModeGeneric, Variant: gauss.CDT, Tail: params.Tail}
	z, err := Sample(basisB, basisGS, target, params.SigmaKey*8, entropy.NewDeterministicChaCha8([32]byte{1}), cfg)
	require.NoError(t, err)
	require.Len(t, z, 2*params.N)
}
