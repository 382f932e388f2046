package polyz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGramSchmidtNormEstimateFirstNormMatchesEuclidean(t *testing.T) {
	f := []int64{1, -2, 3, 0}
	g := []int64{0, 1, -1, 2}
	b1, b2 := GramSchmidtNormEstimate(f, g, 12289)

	var want float64
	for i := range f {
		want += float64(f[i])*float64(f[i]) + float64(g[i])*float64(g[i])
	}
	assert.InDelta(t, want, b1*b1, 1e-6)
	assert.False(t, b2 != b2, "second norm must not be NaN") // NaN check
}

func TestGramSchmidtNormEstimateIsDeterministic(t *testing.T) {
	f := []int64{3, -1, 4, -1, 5, -9, 2, 6}
	g := []int64{2, -7, 1, -8, 2, 8, -1, -8}
	b1a, b2a := GramSchmidtNormEstimate(f, g, 12289)
	b1b, b2b := GramSchmidtNormEstimate(f, g, 12289)
	assert.Equal(t, b1a, b1b)
	assert.Equal(t, b2a, b2b)
}
