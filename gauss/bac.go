package gauss

import (
	"math"

	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/gauss/entropy"
)

// bacSampler implements binary arithmetic coding sampling: rather than
// drawing a single full-precision uniform variate up front like the CDT
// sampler, it consumes random bits one at a time, narrowing a candidate
// interval [lo, hi) until it lies entirely within one CDF bucket — the
// other memory-efficient, variable-length alternative to a full CDT the
// source offers alongside Huffman coding (spec §4.4, §9).
type bacSampler struct {
	cfg   Config
	src   entropy.Source
	bound int
	cdf   []float64
}

func newBACSampler(cfg Config, src entropy.Source) (Sampler, error) {
	bound := tailBound(cfg.Sigma, cfg.Tail)
	if bound <= 0 {
		return nil, errs.New(errs.SamplerFailure, "gauss.newBACSampler: degenerate tail bound")
	}
	return &bacSampler{cfg: cfg, src: src, bound: bound, cdf: buildCDF(cfg.Sigma, 0, bound)}, nil
}

func (s *bacSampler) Sigma() float64 { return s.cfg.Sigma }

func (s *bacSampler) Sample(centre float64) (int64, error) {
	cdf := s.cdf
	if centre != 0 {
		cdf = buildCDF(s.cfg.Sigma, centre, s.bound)
	}

	lo, hi := 0.0, 1.0
	for {
		blind(s.cfg.Blinding)
		mid := (lo + hi) / 2
		if s.src.Uint64()&1 == 0 {
			hi = mid
		} else {
			lo = mid
		}

		loCol := bucketOf(cdf, lo)
		hiCol := bucketOf(cdf, hi)
		blind(s.cfg.Blinding)
		if loCol == hiCol {
			return int64(loCol) - int64(s.bound) + int64(math.Floor(centre)), nil
		}
	}
}

// bucketOf returns the index of the first CDF entry >= u, i.e. which
// symbol's bucket contains u.
func bucketOf(cdf []float64, u float64) int {
	lo, hi := 0, len(cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cdf[mid] < u {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (s *bacSampler) Vector(n int, centre float64) ([]int64, error) {
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
