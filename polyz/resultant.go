package polyz

import (
	"golang.org/x/sync/errgroup"

	"github.com/latticecore/gpvcore/bigint"
	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/limb"
)

// resultantModularThreshold is the length of b (its coefficient count) above
// which Resultant switches from the Euclidean (Cohen 3.3.7 pseudo-remainder)
// path to the modular/CRT path. Kept at the source's fixed `len(b) > 128`
// (see DESIGN.md's Open
// Questions): test expectations are pinned to both paths being reachable at
// this exact boundary.
const resultantModularThreshold = 128

// Resultant computes Res(a, b) dispatching on the length of b: the modular
// path for len(b.Coeffs) > resultantModularThreshold, the Euclidean path
// otherwise
// (`sc_poly_mpz_resultant`).
func Resultant(a, b *Poly) (*bigint.Int, error) {
	if len(b.Coeffs) > resultantModularThreshold {
		return resultantModular(a, b)
	}
	return resultantEuclidean(a, b)
}

// resultantEuclidean computes the resultant via Cohen's Algorithm 3.3.7:
// repeated pseudo-remainder with the (g, h) scaling sequence that keeps
// coefficient growth sub-resultant-sized, matching
// `sc_poly_mpz_resultant_euclidean`.
func resultantEuclidean(a, b *Poly) (*bigint.Int, error) {
	const op = "polyz.resultantEuclidean"
	degA, degB := a.Degree(), b.Degree()
	if degA < 0 || degB < 0 {
		return nil, errs.New(errs.InvalidInput, op+": zero operand")
	}
	if degB == 0 {
		return bigint.New().PowUi(b.Coeffs[0], uint64(degA)), nil
	}

	contA, err := Content(a)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, op, err)
	}
	contB, err := Content(b)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, op, err)
	}
	scaledA, err := ContentScale(a, contA)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, op, err)
	}
	scaledB, err := ContentScale(b, contB)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, op, err)
	}

	contAPow := bigint.New().PowUi(contA, uint64(degB))
	contBPow := bigint.New().PowUi(contB, uint64(degA))
	scale := bigint.New().Mul(contAPow, contBPow)

	g := bigint.NewFromInt64(1)
	h := bigint.NewFromInt64(1)
	sign := 1

	ptrA, ptrB := scaledA, scaledB
	for degB != 0 {
		if degA%2 == 1 && degB%2 == 1 {
			sign = -sign
		}
		degDiff := degA - degB

		rem, err := PseudoRemainder(ptrA, ptrB)
		if err != nil {
			return nil, errs.Wrap(errs.NumericInstability, op, err)
		}
		degRem := rem.Degree()
		if degRem < 0 {
			return bigint.NewFromInt64(0), nil
		}

		ptrA, ptrB = ptrB, rem
		degA, degB = degB, degRem

		hPowDiff := bigint.New().PowUi(h, uint64(degDiff))
		denom := bigint.New().Mul(g, hPowDiff)
		scaledPtrB, err := ContentScale(ptrB, denom)
		if err != nil {
			return nil, errs.Wrap(errs.NumericInstability, op, err)
		}
		ptrB = scaledPtrB

		gPowDiff := bigint.New().PowUi(ptrA.Coeffs[degA], uint64(degDiff))
		hNum := bigint.New().Mul(h, gPowDiff)
		hNext, err := bigint.DivQuo(hNum, hPowDiff)
		if err != nil {
			return nil, errs.Wrap(errs.NumericInstability, op, err)
		}
		h = hNext
		g = ptrA.Coeffs[degA].Clone()
	}

	hPowDegA := bigint.New().PowUi(h, uint64(degA))
	lcPowDegA := bigint.New().PowUi(ptrB.Coeffs[degB], uint64(degA))
	num := bigint.New().Mul(h, lcPowDegA)
	hFinal, err := bigint.DivQuo(num, hPowDegA)
	if err != nil {
		return nil, errs.Wrap(errs.NumericInstability, op, err)
	}

	result := bigint.New().Mul(scale, hFinal)
	if sign < 0 {
		result.Neg(result)
	}
	return result, nil
}

// resultantModular computes the resultant by evaluating it modulo enough
// word-sized primes to exceed a Hadamard-style bound, then CRT-recombining
// (`sc_poly_mpz_resultant_modular`). The per-prime reductions are
// independent, so they fan out across an errgroup — the teacher's own
// concurrency idiom for independent prover-stage work
// (backend/fflonk/bn254/prove.go), applied here to independent modular
// resultant evaluations.
func resultantModular(a, b *Poly) (*bigint.Int, error) {
	const op = "polyz.resultantModular"
	degA, degB := a.Degree(), b.Degree()
	if degA < 0 || degB < 0 {
		return nil, errs.New(errs.InvalidInput, op+": zero operand")
	}
	if degB == 0 {
		return bigint.New().PowUi(b.Coeffs[0], uint64(degA)), nil
	}

	contA, err := Content(a)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, op, err)
	}
	contB, err := Content(b)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, op, err)
	}
	scaledA, err := ContentScale(a, contA)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, op, err)
	}
	scaledB, err := ContentScale(b, contB)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, op, err)
	}

	aBits := maxBits(scaledA)
	bBits := maxBits(scaledB)
	// Hadamard-style bound on the bit length of the resultant.
	n := degA + degB + 1
	bound := n*bitLen(uint64(n)) + 3 + degA*bBits + degB*aBits
	if bound < 64 {
		bound = 64
	}

	var primes []uint64
	cur := uint64(1) << 62
	bits := 0
	for bits < bound {
		cur = limb.NextPrime(cur)
		primes = append(primes, cur)
		bits += 62
	}

	residues := make([]uint64, len(primes))
	var g errgroup.Group
	for i := range primes {
		i := i
		g.Go(func() error {
			p := primes[i]
			m := limb.NewModulus(p)
			residues[i] = resultantModP(scaledA, scaledB, m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errs.Wrap(errs.NumericInstability, op, err)
	}

	comb := bigint.NewComb(primes)
	result := comb.Combine(residues)

	// Comb.Combine only ever returns a value in [0, M); recentre into the
	// signed range before scaling back by the content factors, matching
	// spec.md §4.3's "recombine via signed CRT".
	modulus := comb.Modulus()
	half, err := bigint.DivQuo(modulus, bigint.NewFromInt64(2))
	if err != nil {
		return nil, errs.Wrap(errs.NumericInstability, op, err)
	}
	if bigint.Cmp(result, half) > 0 {
		result.Sub(result, modulus)
	}

	if bigint.Cmp(contA, bigint.NewFromInt64(1)) != 0 {
		result.Mul(result, bigint.New().PowUi(contA, uint64(degB)))
	}
	if bigint.Cmp(contB, bigint.NewFromInt64(1)) != 0 {
		result.Mul(result, bigint.New().PowUi(contB, uint64(degA)))
	}
	return result, nil
}

func maxBits(p *Poly) int {
	m := 0
	for _, c := range p.Coeffs {
		if b := c.BitLen(); b > m {
			m = b
		}
	}
	return m
}

func bitLen(x uint64) int {
	n := 0
	for x > 0 {
		n++
		x >>= 1
	}
	return n
}

// resultantModP evaluates Res(a, b) mod m.M via the classical Euclidean
// polynomial-remainder sequence over the prime field, mirroring
// `poly_limb_resultant`.
func resultantModP(a, b *Poly, m limb.Modulus) uint64 {
	ac := polyModP(a, m)
	bc := polyModP(b, m)
	degA := degreeModP(ac)
	degB := degreeModP(bc)
	if degB < 0 {
		return 0
	}
	sign := uint64(1)
	res := uint64(1)
	for degB >= 0 {
		if degA%2 == 1 && degB%2 == 1 && m.M > 2 {
			sign = limb.SubMod(0, sign, m)
		}
		rem := remModP(ac, degA, bc, degB, m)
		degRem := degreeModP(rem)
		lc := bc[degB]
		if degRem < 0 {
			if degB == 0 {
				res = limb.MulMod(res, powModLimb(lc, uint64(degA), m), m)
				return limb.MulMod(res, sign, m)
			}
			return 0
		}
		scale := powModLimb(lc, uint64(degA-degRem), m)
		res = limb.MulMod(res, scale, m)
		ac, degA = bc, degB
		bc, degB = rem, degRem
	}
	if degA == 0 {
		return limb.MulMod(res, sign, m)
	}
	return 0
}

func polyModP(p *Poly, m limb.Modulus) []uint64 {
	out := make([]uint64, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = bigint.ModUi(c, m.M)
	}
	return out
}

func degreeModP(c []uint64) int {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i] != 0 {
			return i
		}
	}
	return -1
}

func remModP(a []uint64, degA int, b []uint64, degB int, m limb.Modulus) []uint64 {
	r := make([]uint64, len(a))
	copy(r, a)
	if degA < degB {
		return r
	}
	lcInv, ok := limb.InvMod(b[degB], m.M)
	if !ok {
		return r
	}
	for k := degA - degB; k >= 0; k-- {
		coeff := limb.MulMod(r[degB+k], lcInv, m)
		if coeff == 0 {
			continue
		}
		for j := degB + k; j >= k; j-- {
			t := limb.MulMod(coeff, b[j-k], m)
			r[j] = limb.SubMod(r[j], t, m)
		}
	}
	return r
}

func powModLimb(base, exp uint64, m limb.Modulus) uint64 {
	result := uint64(1) % m.M
	base %= m.M
	for exp > 0 {
		if exp&1 == 1 {
			result = limb.MulMod(result, base, m)
		}
		base = limb.MulMod(base, base, m)
		exp >>= 1
	}
	return result
}
