package gauss

import (
	"math"

	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/gauss/entropy"
)

// cdtSampler stores the cumulative distribution table of D_{Z,σ,0} and
// samples by binary-searching a uniform variate against it, the classical
// CDT algorithm (spec §4.4, §9's "stores the CDF ... binary-searches a
// uniform variate").
type cdtSampler struct {
	cfg    Config
	src    entropy.Source
	bound  int
	cdf    []float64 // cdf[i] = P(X <= i - bound), length 2*bound+1
}

func newCDTSampler(cfg Config, src entropy.Source) (Sampler, error) {
	bound := tailBound(cfg.Sigma, cfg.Tail)
	if bound <= 0 {
		return nil, errs.New(errs.SamplerFailure, "gauss.newCDTSampler: degenerate tail bound")
	}
	s := &cdtSampler{cfg: cfg, src: src, bound: bound}
	s.cdf = buildCDF(cfg.Sigma, 0, bound)
	return s, nil
}

// buildCDF returns the cumulative distribution of D_{Z,σ,centre} restricted
// to the integers [⌊centre⌋-bound, ⌊centre⌋+bound], normalized to sum to 1:
// entry i belongs to the integer i-bound+⌊centre⌋.
func buildCDF(sigma, centre float64, bound int) []float64 {
	n := 2*bound + 1
	weights := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		x := float64(i-bound) + math.Floor(centre)
		weights[i] = gaussianDensity(x, sigma, centre)
		total += weights[i]
	}
	cdf := make([]float64, n)
	var running float64
	for i, w := range weights {
		running += w / total
		cdf[i] = running
	}
	cdf[n-1] = 1
	return cdf
}

func (s *cdtSampler) Sigma() float64 { return s.cfg.Sigma }

func (s *cdtSampler) Sample(centre float64) (int64, error) {
	cdf := s.cdf
	bound := s.bound
	if centre != 0 {
		cdf = buildCDF(s.cfg.Sigma, centre, bound)
	}
	u := s.src.Float64()
	blind(s.cfg.Blinding)
	lo, hi := 0, len(cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		blind(s.cfg.Blinding)
		if cdf[mid] < u {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return int64(lo-bound) + int64(math.Floor(centre)), nil
}

func (s *cdtSampler) Vector(n int, centre float64) ([]int64, error) {
	out := make([]int64, n)
	for i := range out {
		v, err := s.Sample(centre)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
