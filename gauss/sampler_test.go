package gauss

import (
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticecore/gpvcore/gauss/entropy"
)

func deterministicSource(t *testing.T) entropy.Source {
	t.Helper()
	var seed [32]byte
	seed[0] = 0x42
	return entropy.NewDeterministicChaCha8(seed)
}

func TestAllVariantsConstructAndSample(t *testing.T) {
	variants := []Variant{CDT, KnuthYao, KnuthYaoFast, Bernoulli, Ziggurat, Huffman, BAC}
	for _, v := range variants {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			s, err := New(Config{Variant: v, Precision: Precision64, Sigma: 4.0, Tail: 10}, deterministicSource(t))
			require.NoError(t, err)
			assert.Equal(t, 4.0, s.Sigma())

			vec, err := s.Vector(200, 0)
			require.NoError(t, err)
			assert.Len(t, vec, 200)
		})
	}
}

func TestNewRejectsNonPositiveSigmaOrTail(t *testing.T) {
	src := deterministicSource(t)
	_, err := New(Config{Variant: CDT, Sigma: 0, Tail: 10}, src)
	assert.Error(t, err)
	_, err = New(Config{Variant: CDT, Sigma: 4, Tail: 0}, src)
	assert.Error(t, err)
}

func TestNewRejectsUnknownVariant(t *testing.T) {
	_, err := New(Config{Variant: Variant(999), Sigma: 4, Tail: 10}, deterministicSource(t))
	assert.Error(t, err)
}

// TestSampleDistributionMatchesSigma draws a large CDT sample and checks the
// empirical standard deviation against the configured sigma within a loose
// tolerance (spec §8 item 7's sampler-distribution testable property).
func TestSampleDistributionMatchesSigma(t *testing.T) {
	const sigma = 8.0
	s, err := New(Config{Variant: CDT, Sigma: sigma, Tail: 10}, deterministicSource(t))
	require.NoError(t, err)

	vec, err := s.Vector(20000, 0)
	require.NoError(t, err)

	data := make([]float64, len(vec))
	for i, v := range vec {
		data[i] = float64(v)
	}

	mean, err := stats.Mean(data)
	require.NoError(t, err)
	assert.InDelta(t, 0, mean, 0.5)

	stdDev, err := stats.StandardDeviation(data)
	require.NoError(t, err)
	assert.InDelta(t, sigma, stdDev, 1.0)
}

func TestOffCentreSampleShiftsMean(t *testing.T) {
	s, err := New(Config{Variant: CDT, Sigma: 4, Tail: 10}, deterministicSource(t))
	require.NoError(t, err)

	vec, err := s.Vector(5000, 20)
	require.NoError(t, err)

	data := make([]float64, len(vec))
	for i, v := range vec {
		data[i] = float64(v)
	}
	mean, err := stats.Mean(data)
	require.NoError(t, err)
	assert.InDelta(t, 20, mean, 1.0)
}
