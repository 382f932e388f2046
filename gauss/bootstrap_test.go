package gauss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapSamplerRejectsSigmaBelowBase(t *testing.T) {
	src := deterministicSource(t)
	base, err := New(Config{Variant: CDT, Sigma: 4, Tail: 10}, src)
	require.NoError(t, err)

	b := NewBootstrapSampler(base, src, false, 0.5)
	_, err = b.Sample(4, 0)
	assert.Error(t, err, "target sigma equal to base sigma must be rejected")

	_, err = b.Sample(3, 0)
	assert.Error(t, err, "target sigma below base sigma must be rejected")
}

func TestBootstrapSamplerRejectsInequalityViolation(t *testing.T) {
	src := deterministicSource(t)
	base, err := New(Config{Variant: CDT, Sigma: 4, Tail: 10}, src)
	require.NoError(t, err)

	// smoothingEta=6, sigmaSmoothing=10 means extra must exceed 60, which a
	// modestly larger sigma cannot satisfy.
	b := NewBootstrapSampler(base, src, false, 10)
	_, err = b.Sample(4.1, 0)
	assert.Error(t, err)
}

func TestBootstrapSamplerSucceedsAboveThreshold(t *testing.T) {
	src := deterministicSource(t)
	base, err := New(Config{Variant: CDT, Sigma: 4, Tail: 10}, src)
	require.NoError(t, err)

	b := NewBootstrapSampler(base, src, false, 0.1)
	_, err = b.Sample(50, 0)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, b.Sigma())
}
