package preimage

import (
	"math"

	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/gauss"
	"github.com/latticecore/gpvcore/gauss/entropy"
	"github.com/latticecore/gpvcore/secure"
)

// Mode selects how the row-walking sampler reuses discrete Gaussian
// samplers across the 2N-row walk (spec §4.6 step 3's "efficient" vs
// "bootstrapped" modes, DESIGN.md Open Question 3).
type Mode int

const (
	// ModeGeneric builds a fresh sampler, tuned to that exact row's sigma,
	// for every one of the 2N rows. Slowest, exact per spec's contract.
	ModeGeneric Mode = iota
	// ModeEfficient builds one sampler per half of the walk, sized to the
	// half's largest required sigma, and reuses it for every row in that
	// half. This trades the per-row table rebuild for a single
	// conservative (slightly wider) sampler per half, the simplification
	// spec §4.6/§9 describes as "a single sampler is created per half".
	ModeEfficient
	// ModeBootstrap uses one persistent Sampler built at the smallest
	// sigma the walk will need, convolving it (via gauss.BootstrapSampler)
	// up to every row's larger target sigma (Micciancio-Walter variable-σ
	// mode, spec §4.6 step 3's "bootstrapped" case).
	ModeBootstrap
)

// Config configures the row-walking sampler of spec §4.6 step 3.
type Config struct {
	Mode      Mode
	Variant   gauss.Variant
	Precision gauss.Precision
	Blinding  bool
	Tail      float64
}

// Sample draws a short vector (z_0, ..., z_{2N-1}) above the extended target
// (target, 0) ∈ Z^{2N}, walking the expanded basis rows top-down from 2N-1
// to 0 (spec §4.6 step 3). basisB supplies the actual lattice rows B_j used
// to update the running target; basisGS supplies the orthogonalised rows
// and squared norms used to compute each row's projection coefficient and
// per-row sigma.
func Sample(basisB *BasisB, basisGS *BasisGS[float64], target []int64, sigmaSample float64, src entropy.Source, cfg Config) ([]int64, error) {
	const op = "preimage.Sample"
	n := basisB.N
	if len(target) != n {
		return nil, errs.New(errs.InvalidParameter, op+": target length must equal N")
	}
	total := 2 * n

	c := make([]float64, total)
	defer secure.ZeroFloat64(c)
	for i := 0; i < n; i++ {
		c[i] = float64(target[i])
	}

	rowSigma := make([]float64, total)
	defer secure.ZeroFloat64(rowSigma)
	for j := 0; j < total; j++ {
		if basisGS.NormSq[j] <= 0 {
			return nil, errs.New(errs.NumericInstability, op+": non-positive GSO norm")
		}
		rowSigma[j] = sigmaSample / math.Sqrt(basisGS.NormSq[j])
	}

	samplers, err := buildSamplers(rowSigma, n, src, cfg)
	if err != nil {
		return nil, errs.Wrap(errs.SamplerFailure, op, err)
	}

	z := make([]int64, total)
	for j := total - 1; j >= 0; j-- {
		d := dot(c, basisGS.Rows[j]) / basisGS.NormSq[j]
		zj, err := samplers.sample(j, d)
		if err != nil {
			secure.Zero(z)
			return nil, errs.Wrap(errs.SamplerFailure, op, err)
		}
		z[j] = zj

		row, err := basisB.Row(j)
		if err != nil {
			secure.Zero(z)
			return nil, err
		}
		for k := 0; k < total; k++ {
			c[k] -= float64(zj) * float64(row[k])
		}
	}

	return z, nil
}

// rowSamplers abstracts over the three Mode strategies for picking which
// Sampler serves row j.
type rowSamplers struct {
	mode       Mode
	perRow     []gauss.Sampler // ModeGeneric: one per row
	firstHalf  gauss.Sampler   // ModeEfficient: rows [N, 2N)
	secondHalf gauss.Sampler   // ModeEfficient: rows [0, N)
	n          int

	base      gauss.Sampler // ModeBootstrap
	bootstrap *gauss.BootstrapSampler
	sigmaMin  float64
	rowSigma  []float64
}

func buildSamplers(rowSigma []float64, n int, src entropy.Source, cfg Config) (*rowSamplers, error) {
	tail := cfg.Tail
	if tail <= 0 {
		tail = 10
	}

	newSampler := func(sigma float64) (gauss.Sampler, error) {
		return gauss.New(gauss.Config{
			Variant:   cfg.Variant,
			Precision: cfg.Precision,
			Blinding:  cfg.Blinding,
			Sigma:     sigma,
			Tail:      tail,
		}, src)
	}

	rs := &rowSamplers{mode: cfg.Mode, n: n, rowSigma: rowSigma}
	total := len(rowSigma)

	switch cfg.Mode {
	case ModeEfficient:
		maxFirst, maxSecond := rowSigma[n], rowSigma[0]
		for j := n; j < total; j++ {
			if rowSigma[j] > maxFirst {
				maxFirst = rowSigma[j]
			}
		}
		for j := 0; j < n; j++ {
			if rowSigma[j] > maxSecond {
				maxSecond = rowSigma[j]
			}
		}
		var err error
		rs.firstHalf, err = newSampler(maxFirst)
		if err != nil {
			return nil, err
		}
		rs.secondHalf, err = newSampler(maxSecond)
		if err != nil {
			return nil, err
		}

	case ModeBootstrap:
		sigmaMin := rowSigma[0]
		for _, s := range rowSigma {
			if s < sigmaMin {
				sigmaMin = s
			}
		}
		base, err := newSampler(sigmaMin)
		if err != nil {
			return nil, err
		}
		rs.base = base
		rs.sigmaMin = sigmaMin
		// smoothingParam approximates the lattice's smoothing parameter
		// η_ε(Z) for the bootstrap inequality check; a small constant
		// independent of sigmaMin, since conflating the two would make the
		// inequality in gauss.BootstrapSampler.Sample unsatisfiable for any
		// row whose sigma is merely a little above sigmaMin.
		const smoothingParam = 2.0
		rs.bootstrap = gauss.NewBootstrapSampler(base, src, cfg.Blinding, smoothingParam)

	default: // ModeGeneric
		rs.perRow = make([]gauss.Sampler, total)
		for j := 0; j < total; j++ {
			s, err := newSampler(rowSigma[j])
			if err != nil {
				return nil, err
			}
			rs.perRow[j] = s
		}
	}

	return rs, nil
}

// sample draws row j's contribution using whichever strategy Mode selected.
// In ModeBootstrap, a row whose target sigma is (within tolerance) the
// walk's minimum is served directly by the base sampler, since
// BootstrapSampler.Sample requires its target sigma to strictly exceed the
// base sigma it convolves from.
func (rs *rowSamplers) sample(j int, centre float64) (int64, error) {
	switch rs.mode {
	case ModeEfficient:
		if j >= rs.n {
			return rs.firstHalf.Sample(centre)
		}
		return rs.secondHalf.Sample(centre)
	case ModeBootstrap:
		sigma := rs.rowSigma[j]
		if sigma <= rs.sigmaMin*(1+1e-9) {
			return rs.base.Sample(centre)
		}
		return rs.bootstrap.Sample(sigma, centre)
	default:
		return rs.perRow[j].Sample(centre)
	}
}
