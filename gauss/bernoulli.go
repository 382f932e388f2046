package gauss

import (
	"math"

	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/gauss/entropy"
)

// bernoulliSampler implements rejection sampling against
// exp(-x²/2σ²) using a Bernoulli oracle keyed by precomputed powers of
// exp(-1/2σ²) (spec §4.4, §9: "samples via rejection ... with a Bernoulli
// oracle keyed by precomputed probabilities of 1/2, 1/4, …").
//
// exp(-e/2σ²) for integer e = x² is decomposed bit by bit: writing
// e = Σ b_k·2^k, exp(-e/2σ²) = Π_k exp(-2^k/2σ²)^{b_k}. Each factor is an
// independent Bernoulli trial against a precomputed probability table, so
// the full acceptance test never evaluates exp() at sample time.
type bernoulliSampler struct {
	cfg     Config
	src     entropy.Source
	bound   int
	powers  []float64 // powers[k] = exp(-2^k / (2*sigma^2))
}

func newBernoulliSampler(cfg Config, src entropy.Source) (Sampler, error) {
	bound := tailBound(cfg.Sigma, cfg.Tail)
	if bound <= 0 {
		return nil, errs.New(errs.SamplerFailure, "gauss.newBernoulliSampler: degenerate tail bound")
	}
	maxExp := bound * bound
	nbits := 1
	for (1 << uint(nbits)) <= maxExp {
		nbits++
	}
	powers := make([]float64, nbits+1)
	for k := range powers {
		powers[k] = math.Exp(-float64(int64(1)<<uint(k)) / (2 * cfg.Sigma * cfg.Sigma))
	}
	return &bernoulliSampler{cfg: cfg, src: src, bound: bound, powers: powers}, nil
}

func (s *bernoulliSampler) Sigma() float64 { return s.cfg.Sigma }

// bernoulliTrial returns true with probability p using a single uniform
// draw.
func (s *bernoulliSampler) bernoulliTrial(p float64) bool {
	return s.src.Float64() < p
}

func (s *bernoulliSampler) Sample(centre float64) (int64, error) {
	for {
		blind(s.cfg.Blinding)
		u := s.src.Float64()
		x := int64(u*float64(2*s.bound+1)) - int64(s.bound)
		d := float64(x) - centre
		e := int64(d * d)

		accept := true
		for k := 0; e > 0; k++ {
			if e&1 == 1 {
				if k >= len(s.powers) || !s.bernoulliTrial(s.powers[k]) {
					accept = false
					break
				}
			}
			e >>= 1
		}
		blind(s.cfg.Blinding)
		if accept {
			return x, nil
		}
	}
}

func (s *bernoulliSampler) Vector(n int, centre float64) ([]int64, error) {
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
