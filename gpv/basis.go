// Package gpv implements trapdoor basis generation for the GPV lattice
// signature scheme (spec §4.5, component C5): sample a short (f, g), solve
// the NTRU equation f·G − g·F = q for a matching short (F, G), reduce the
// result via Babai nearest-plane against (f, g), and derive the public key
// h = g·f⁻¹ mod q.
package gpv

import (
	"math"
	"math/big"

	"github.com/latticecore/gpvcore/bigint"
	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/gauss"
	"github.com/latticecore/gpvcore/logger"
	"github.com/latticecore/gpvcore/polyz"
	"github.com/latticecore/gpvcore/ring"
	"github.com/latticecore/gpvcore/secure"
)

// maxRetries is the hard failure bound on outer-loop restarts (Design Notes
// §9 replacing the source's setjmp/goto restart with "an outer loop with a
// bounded retry budget (soft) and a final failure path (hard after, e.g.,
// 1024 retries)"). The procedure's expected retry count is small; this
// bound exists only to turn a pathological parameter set into a returned
// error instead of an infinite loop.
const maxRetries = 1024

// reductionIterations bounds the Babai reduction loop (spec §4.5 step 7,
// `gpv_gen_basis`'s `for (j=0; j<16; j++)`).
const reductionIterations = 16

// SecretKey holds the four trapdoor polynomials (f, g, F, G) satisfying the
// NTRU equation f·G − g·F = q in Z[x]/(x^N+1) (spec §2's SecretKey record).
// Coefficients are stored positive, as sampled/solved; the sign flip used by
// the anticirculant basis expansion (component C6) is applied only at
// expansion time, never here (DESIGN.md Open Question 1).
type SecretKey struct {
	F ring.PolyZ
	G ring.PolyZ
	f ring.PolyZ
	g ring.PolyZ
}

// NewSecretKey assembles a SecretKey from its four trapdoor polynomials,
// for the spec §6 deserialization path that reconstructs a persisted key
// rather than running GenerateBasis.
func NewSecretKey(f, g, F, G ring.PolyZ) *SecretKey {
	return &SecretKey{f: f, g: g, F: F, G: G}
}

// SmallF returns the sampled trapdoor polynomial f.
func (sk *SecretKey) SmallF() ring.PolyZ { return sk.f }

// SmallG returns the sampled trapdoor polynomial g.
func (sk *SecretKey) SmallG() ring.PolyZ { return sk.g }

// Zero scrubs every coefficient of the secret key (spec §5's scrub-on-drop
// discipline for key material).
func (sk *SecretKey) Zero() {
	sk.F.Zero()
	sk.G.Zero()
	sk.f.Zero()
	sk.g.Zero()
}

// Destroy is the caller-facing lifecycle entry point for discarding a
// SecretKey once it is no longer needed: it scrubs every trapdoor
// coefficient exactly as Zero does. Name it Destroy, not just Zero, to make
// the end-of-lifetime intent explicit at call sites (spec §5/§7 scrub-on-drop).
func (sk *SecretKey) Destroy() {
	sk.Zero()
}

// PublicKey is h = g·f⁻¹ mod q.
type PublicKey struct {
	H ring.PolyZ
}

// Stats records the per-attempt rejection counts of one GenerateBasis call,
// matching spec §4.5's "the caller records retry counts as a statistic".
type Stats struct {
	Attempts          int
	NormRejections    int
	GCDRejections     int
	ReductionFailures int
	VerifyFailures    int
}

// GenerateBasis runs the spec §4.5 core sequence until a valid trapdoor
// basis is produced or the retry budget is exhausted. sampler must be
// constructed with σ = params.SigmaKey (spec §4.5 step 1's D_{Z^N,σ_key}).
func GenerateBasis(params *ring.Params, sampler gauss.Sampler) (*SecretKey, *PublicKey, *Stats, error) {
	const op = "gpv.GenerateBasis"
	log := logger.Logger().With().Int("n", params.N).Str("op", op).Logger()

	n := params.N
	qFloat, _ := new(big.Float).SetInt(params.Q).Float64()
	threshold := 1.17 * math.Sqrt(qFloat)
	phi := ntruModulus(n)
	qInt := bigint.New().FromBig(params.Q)
	negQ := bigint.New().Neg(qInt)

	stats := &Stats{}
	for stats.Attempts < maxRetries {
		stats.Attempts++

		sk, pk, retry, err := attemptBasis(n, qFloat, threshold, phi, qInt, negQ, sampler, stats)
		if err != nil {
			return nil, nil, stats, err
		}
		if retry {
			continue
		}

		log.Info().Int("attempts", stats.Attempts).Msg("trapdoor basis generated")
		return sk, pk, stats, nil
	}

	log.Error().Int("attempts", stats.Attempts).Msg("trapdoor basis generation exhausted retry budget")
	return nil, nil, stats, errs.New(errs.SamplerFailure, op+": retry budget exhausted")
}

// attemptBasis runs a single pass of spec §4.5 steps 1-9. It reports
// retry=true on any rejection the outer loop should retry, or a non-nil
// err on a hard failure the caller should abort on. Every bigint-backed
// polynomial and raw sampled vector allocated during the attempt — whether
// it survives to a returned SecretKey or is rejected along the way — is
// scrubbed before this function returns, via the deferred sweep over
// touched, matching spec §5/§7's scrub-on-drop discipline: once toKeys has
// copied the surviving coefficients into the small-int SecretKey, the
// bigint originals are dead and must not linger with the secret magnitude
// still readable.
func attemptBasis(n int, qFloat, threshold float64, phi, qInt, negQ *bigint.Int, sampler gauss.Sampler, stats *Stats) (sk *SecretKey, pk *PublicKey, retry bool, err error) {
	const op = "gpv.GenerateBasis"

	var touched []*polyz.Poly
	track := func(p *polyz.Poly) *polyz.Poly {
		touched = append(touched, p)
		return p
	}
	defer func() {
		for _, p := range touched {
			secure.ZeroPoly(p)
		}
	}()

	fVec, err := sampler.Vector(n, 0)
	if err != nil {
		return nil, nil, false, errs.Wrap(errs.SamplerFailure, op, err)
	}
	defer secure.Zero(fVec)
	gVec, err := sampler.Vector(n, 0)
	if err != nil {
		return nil, nil, false, errs.Wrap(errs.SamplerFailure, op, err)
	}
	defer secure.Zero(gVec)

	b1, b2 := polyz.GramSchmidtNormEstimate(fVec, gVec, qFloat)
	if b1 >= threshold {
		stats.NormRejections++
		return nil, nil, true, nil
	}
	if math.IsNaN(b2) || b2 >= threshold {
		stats.NormRejections++
		return nil, nil, true, nil
	}

	fPoly := track(polyz.FromInt64(fVec))
	gPoly := track(polyz.FromInt64(gVec))

	// Step 3: XGCD(f, phi) -> Rf, rho_f; reject early if gcd(Rf, q) != 1.
	rfPoly, rhoF, _, err := polyz.XGCD(fPoly, phi)
	if err != nil {
		stats.GCDRejections++
		return nil, nil, true, nil
	}
	track(rfPoly)
	track(rhoF)
	rf := rfPoly.Coeffs[0]
	if bigint.Cmp(bigint.GCD(rf, qInt), bigint.NewFromInt64(1)) != 0 {
		stats.GCDRejections++
		return nil, nil, true, nil
	}

	// Step 4: XGCD(g, phi) -> Rg, rho_g.
	rgPoly, rhoG, _, err := polyz.XGCD(gPoly, phi)
	if err != nil {
		stats.GCDRejections++
		return nil, nil, true, nil
	}
	track(rgPoly)
	track(rhoG)
	rg := rgPoly.Coeffs[0]

	// Step 5: integer XGCD(Rf, Rg) -> alpha, beta with alpha*Rf+beta*Rg=1.
	gcd1, alpha, beta := bigint.XGCD(rf, rg)
	if bigint.Cmp(gcd1, bigint.NewFromInt64(1)) != 0 {
		stats.GCDRejections++
		return nil, nil, true, nil
	}

	// Step 6: initial F = -q*beta*rho_g, G = q*alpha*rho_f.
	qv := bigint.New().Mul(beta, negQ)
	qu := bigint.New().Mul(alpha, qInt)
	F := track(polyz.MulScalar(rhoG, qv))
	G := track(polyz.MulScalar(rhoF, qu))

	fbar := track(polyz.Reverse(fPoly, n))
	gbar := track(polyz.Reverse(gPoly, n))

	den := track(polyz.ModRing(polyz.Add(
		polyz.Mul(fPoly, fbar, polyz.MulAuto),
		polyz.Mul(gPoly, gbar, polyz.MulAuto),
	), n))

	denGPoly, denRho, _, err := polyz.XGCD(den, phi)
	if err != nil {
		stats.ReductionFailures++
		return nil, nil, true, nil
	}
	track(denGPoly)
	track(denRho)
	denScale := denGPoly.Coeffs[0]

	k, err := reductionFactor(F, G, fbar, gbar, denRho, denScale, n)
	if err != nil {
		stats.ReductionFailures++
		return nil, nil, true, nil
	}
	track(k)

	reduced := false
	for j := 0; j < reductionIterations; j++ {
		if k.Degree() < 0 {
			reduced = true
			break
		}
		F = track(polyz.ModRing(polyz.Sub(F, polyz.Mul(k, fPoly, polyz.MulAuto)), n))
		G = track(polyz.ModRing(polyz.Sub(G, polyz.Mul(k, gPoly, polyz.MulAuto)), n))
		k, err = reductionFactor(F, G, fbar, gbar, denRho, denScale, n)
		if err != nil {
			break
		}
		track(k)
	}
	if err != nil || !reduced && k.Degree() >= 0 {
		stats.ReductionFailures++
		return nil, nil, true, nil
	}

	// Step 8: verify f*G - g*F == q in Z[x]/(x^N+1).
	verify := track(polyz.ModRing(polyz.Sub(
		polyz.Mul(fPoly, G, polyz.MulAuto),
		polyz.Mul(gPoly, F, polyz.MulAuto),
	), n))
	if !ntruIdentityHolds(verify, qInt) {
		stats.VerifyFailures++
		return nil, nil, true, nil
	}

	// Step 9: h = g * f^-1 mod q.
	h, ok := publicKeyH(fPoly, gPoly, phi, qInt, n)
	if !ok {
		stats.VerifyFailures++
		return nil, nil, true, nil
	}
	track(h)

	sk, pk, err = toKeys(fPoly, gPoly, F, G, h, n)
	if err != nil {
		return nil, nil, false, errs.Wrap(errs.NumericInstability, op, err)
	}
	return sk, pk, false, nil
}

// ntruModulus returns x^n + 1.
func ntruModulus(n int) *polyz.Poly {
	p := polyz.New(n + 1)
	p.Coeffs[0].SetInt64(1)
	p.Coeffs[n].SetInt64(1)
	return p
}

// reductionFactor computes k = round((F*fbar + G*gbar) / (f*fbar + g*gbar))
// in Z[x]/(x^N+1) (spec §4.5 step 7), using the precomputed modular inverse
// (denRho, denScale) of the denominator: 1/den = denRho/denScale.
func reductionFactor(F, G, fbar, gbar, denRho, denScale *polyz.Poly, n int) (*polyz.Poly, error) {
	num := polyz.ModRing(polyz.Add(
		polyz.Mul(F, fbar, polyz.MulAuto),
		polyz.Mul(G, gbar, polyz.MulAuto),
	), n)
	defer secure.ZeroPoly(num)
	scaled := polyz.ModRing(polyz.Mul(num, denRho, polyz.MulAuto), n)
	defer secure.ZeroPoly(scaled)
	return polyz.DivPointwise(scaled, denScale)
}

// ntruIdentityHolds reports whether verify (already reduced mod (x^N+1))
// equals the constant polynomial q (spec §4.5 step 8).
func ntruIdentityHolds(verify *polyz.Poly, q *bigint.Int) bool {
	if bigint.Cmp(verify.Coeffs[0], q) != 0 {
		return false
	}
	for i := 1; i < len(verify.Coeffs); i++ {
		if !verify.Coeffs[i].IsZero() {
			return false
		}
	}
	return true
}

// publicKeyH computes h = g*f^-1 mod q and checks f*h == g (mod q, mod the
// ring) as spec §4.5 step 9 requires before accepting the key.
func publicKeyH(fPoly, gPoly, phi *polyz.Poly, q *bigint.Int, n int) (*polyz.Poly, bool) {
	rfPoly, rhoF, _, err := polyz.XGCD(fPoly, phi)
	if err != nil {
		return nil, false
	}
	defer secure.ZeroPoly(rfPoly)
	defer secure.ZeroPoly(rhoF)

	rfInv, ok := bigint.InvMod(rfPoly.Coeffs[0], q)
	if !ok {
		return nil, false
	}
	invF := polyz.MulScalar(rhoF, rfInv)
	defer secure.ZeroPoly(invF)

	check := reduceModQ(polyz.ModRing(polyz.Mul(invF, fPoly, polyz.MulAuto), n), q)
	defer secure.ZeroPoly(check)
	if bigint.Cmp(check.Coeffs[0], bigint.NewFromInt64(1)) != 0 {
		return nil, false
	}
	for i := 1; i < len(check.Coeffs); i++ {
		if !check.Coeffs[i].IsZero() {
			return nil, false
		}
	}

	h := reduceModQ(polyz.ModRing(polyz.Mul(invF, gPoly, polyz.MulAuto), n), q)
	return h, true
}

// reduceModQ reduces every coefficient of p into [0, q).
func reduceModQ(p *polyz.Poly, q *bigint.Int) *polyz.Poly {
	r := polyz.New(len(p.Coeffs))
	for i, c := range p.Coeffs {
		r.Coeffs[i].Mod(c, q)
	}
	return r
}

// toKeys converts the bigint-coefficient polynomials of a successful attempt
// into the small-integer ring.PolyZ representation SecretKey/PublicKey use.
func toKeys(fPoly, gPoly, F, G, h *polyz.Poly, n int) (*SecretKey, *PublicKey, error) {
	toSmall := func(p *polyz.Poly) (ring.PolyZ, error) {
		out := ring.PolyZ{Coeffs: make([]int64, n)}
		for i := 0; i < n; i++ {
			var c *bigint.Int
			if i < len(p.Coeffs) {
				c = p.Coeffs[i]
			} else {
				c = bigint.New()
			}
			v, ok := c.Int64()
			if !ok {
				return ring.PolyZ{}, errs.New(errs.NumericInstability, "gpv.toKeys: coefficient overflow")
			}
			out.Coeffs[i] = v
		}
		return out, nil
	}

	fSmall, err := toSmall(fPoly)
	if err != nil {
		return nil, nil, err
	}
	gSmall, err := toSmall(gPoly)
	if err != nil {
		return nil, nil, err
	}
	FSmall, err := toSmall(F)
	if err != nil {
		return nil, nil, err
	}
	GSmall, err := toSmall(G)
	if err != nil {
		return nil, nil, err
	}
	hSmall, err := toSmall(h)
	if err != nil {
		return nil, nil, err
	}

	return &SecretKey{F: FSmall, G: GSmall, f: fSmall, g: gSmall}, &PublicKey{H: hSmall}, nil
}
