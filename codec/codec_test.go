package codec

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/latticecore/gpvcore/gauss"
	"github.com/latticecore/gpvcore/gauss/entropy"
	"github.com/latticecore/gpvcore/gpv"
	"github.com/latticecore/gpvcore/ring"
)

func testTrapdoor(t *testing.T) (*ring.Params, *gpv.SecretKey, *gpv.PublicKey) {
	t.Helper()
	params, err := ring.New(16, big.NewInt(97), 10)
	require.NoError(t, err)

	var seed [32]byte
	seed[0] = 7
	s, err := gauss.New(gauss.Config{
		Variant: gauss.CDT,
		Sigma:   params.SigmaKey,
		Tail:    params.Tail,
	}, entropy.NewDeterministicChaCha8(seed))
	require.NoError(t, err)

	sk, pk, _, err := gpv.GenerateBasis(params, s)
	require.NoError(t, err)
	return params, sk, pk
}

func TestSecretKeyRoundTrip(t *testing.T) {
	params, sk, _ := testTrapdoor(t)

	buf, err := EncodeSecretKey(params, sk)
	require.NoError(t, err)

	got, err := DecodeSecretKey(params, buf)
	require.NoError(t, err)

	if diff := cmp.Diff(sk.SmallF().Coeffs, got.SmallF().Coeffs); diff != "" {
		t.Errorf("f mismatch after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sk.SmallG().Coeffs, got.SmallG().Coeffs); diff != "" {
		t.Errorf("g mismatch after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sk.F.Coeffs, got.F.Coeffs); diff != "" {
		t.Errorf("F mismatch after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sk.G.Coeffs, got.G.Coeffs); diff != "" {
		t.Errorf("G mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	params, _, pk := testTrapdoor(t)

	buf, err := EncodePublicKey(params, pk)
	require.NoError(t, err)

	got, err := DecodePublicKey(params, buf)
	require.NoError(t, err)

	if diff := cmp.Diff(pk.H.Coeffs, got.H.Coeffs); diff != "" {
		t.Errorf("public key mismatch after round trip (-want +got):\n%s", diff)
	}
}

func TestDecodeSecretKeyRejectsTruncatedBuffer(t *testing.T) {
	params, sk, _ := testTrapdoor(t)
	buf, err := EncodeSecretKey(params, sk)
	require.NoError(t, err)

	_, err = DecodeSecretKey(params, buf[:len(buf)-1])
	require.Error(t, err)
}
