package gauss

import (
	"math"

	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/gauss/entropy"
)

// zigguratSampler implements the classical rectangle-based ziggurat
// rejection method adapted to the discrete Gaussian (spec §4.4, §9:
// "classical rejection/fallback structure adapted to the discrete
// Gaussian"): the continuous half-Gaussian tail is partitioned into
// equal-area horizontal strips; most draws resolve inside a strip with a
// single comparison, with a tail fallback for the outermost strip. The
// continuous result is rounded to the nearest integer and randomly signed,
// the standard technique for turning a continuous ziggurat into a discrete
// sampler.
type zigguratSampler struct {
	cfg    Config
	src    entropy.Source
	sigma  float64
	layers int
	x      []float64 // x[i] is the right edge of strip i, x[0] is the tail threshold
	y      []float64 // y[i] = f(x[i])
}

const zigguratLayers = 128

func newZigguratSampler(cfg Config, src entropy.Source) (Sampler, error) {
	if cfg.Sigma <= 0 {
		return nil, errs.New(errs.SamplerFailure, "gauss.newZigguratSampler: sigma must be positive")
	}
	x, y, err := buildZigguratLayers(cfg.Sigma, zigguratLayers)
	if err != nil {
		return nil, errs.Wrap(errs.SamplerFailure, "gauss.newZigguratSampler", err)
	}
	return &zigguratSampler{cfg: cfg, src: src, sigma: cfg.Sigma, layers: zigguratLayers, x: x, y: y}, nil
}

// zigguratDensity is the unnormalized Gaussian density f(x) = exp(-x²/2σ²).
func zigguratDensity(x, sigma float64) float64 {
	return math.Exp(-(x * x) / (2 * sigma * sigma))
}

// buildZigguratLayers solves for n equal-area horizontal strips covering
// the half-Gaussian tail, using the standard iterative construction:
// starting from a tail threshold x[0] whose base strip has the common area
// A = x[0]*f(x[0]) + tail_area(x[0]), each subsequent x[i] is recovered in
// closed form from A = x[i-1]*(f(x[i]) - f(x[i-1])).
func buildZigguratLayers(sigma float64, n int) ([]float64, []float64, error) {
	x := make([]float64, n+1)
	y := make([]float64, n+1)

	// Binary-search the tail threshold x[0] so the n equal-area strips
	// exactly tile the region under the curve above x[0].
	lo, hi := 0.01*sigma, 12*sigma
	var x0 float64
	for iter := 0; iter < 200; iter++ {
		x0 = (lo + hi) / 2
		area := ziggAreaFor(x0, sigma, n)
		if area < 0 {
			hi = x0
		} else {
			lo = x0
		}
	}
	x[0] = x0
	y[0] = zigguratDensity(x0, sigma)
	a := x0*y[0] + tailArea(x0, sigma)

	for i := 1; i <= n; i++ {
		y[i] = y[i-1] + a/x[i-1]
		if y[i] >= 1 {
			// Degenerate top layer, clamp to the peak.
			x[i] = 0
			y[i] = 1
			continue
		}
		x[i] = math.Sqrt(-2 * sigma * sigma * math.Log(y[i]))
	}
	return x, y, nil
}

// ziggAreaFor is the sign test used by the bisection in
// buildZigguratLayers: it returns n-i >= 0 when the i-th strip built from x0
// already reaches the peak (x0 too small), and -1 when all n strips stay
// below the peak (x0 too large).
func ziggAreaFor(x0, sigma float64, n int) float64 {
	y0 := zigguratDensity(x0, sigma)
	a := x0*y0 + tailArea(x0, sigma)
	y := y0
	xPrev := x0
	for i := 1; i <= n; i++ {
		y = y + a/xPrev
		if y >= 1 {
			return float64(n - i)
		}
		xPrev = math.Sqrt(-2 * sigma * sigma * math.Log(y))
	}
	return -1
}

// tailArea approximates ∫_{x0}^∞ exp(-t²/2σ²) dt via the standard Gaussian
// tail asymptotic (Mills ratio first-order approximation), sufficient for
// the layer construction's equal-area bookkeeping.
func tailArea(x0, sigma float64) float64 {
	return sigma * sigma / x0 * zigguratDensity(x0, sigma)
}

func (s *zigguratSampler) Sigma() float64 { return s.cfg.Sigma }

func (s *zigguratSampler) Sample(centre float64) (int64, error) {
	for {
		blind(s.cfg.Blinding)
		i := int(s.src.Float64() * float64(s.layers+1))
		if i > s.layers {
			i = s.layers
		}
		u := s.src.Float64()
		xLayer := s.x[i]
		if i == s.layers {
			xLayer = s.x[0] + s.sigma*s.sigma/s.x[0]
		}
		xVal := u * xLayer

		var accept bool
		if i == s.layers && xVal >= s.x[0] {
			// Base strip (rectangle under y[0] plus the tail): draws past
			// x[0] fall back to exponential-tail sampling.
			accept = true
			xVal = sampleTail(s.src, s.x[0], s.sigma)
		} else if i == s.layers || xVal < s.x[i+1] {
			accept = true
		} else {
			// Edge of the strip: accept with probability proportional to
			// how far under the curve xVal actually falls.
			fx := zigguratDensity(xVal, s.sigma)
			yLo, yHi := s.y[i], s.y[i+1]
			threshold := yLo + s.src.Float64()*(yHi-yLo)
			accept = fx >= threshold
		}
		blind(s.cfg.Blinding)
		if !accept {
			continue
		}

		signed := xVal
		if s.src.Uint64()&1 == 1 {
			signed = -signed
		}
		result := centre + signed
		return int64(math.Round(result)), nil
	}
}

// sampleTail draws from the tail of the half-Gaussian beyond x0 via
// rejection against an exponential envelope, the classical Marsaglia tail
// algorithm.
func sampleTail(src entropy.Source, x0, sigma float64) float64 {
	for {
		e1 := -math.Log(src.Float64()+1e-300) / x0 * sigma * sigma
		e2 := -math.Log(src.Float64() + 1e-300)
		x := x0 + e1
		if e2+e2 >= e1*e1/(sigma*sigma) {
			return x
		}
	}
}

func (s *zigguratSampler) Vector(n int, centre float64) ([]int64, error) {
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
