package polyz

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// GramSchmidtNormEstimate computes the two-stage Gram-Schmidt norm test
// used to accept or reject a freshly sampled (f, g) pair before committing
// to the (expensive) exact XGCD/Babai reduction steps of GenerateBasis
// (spec §4.5 step 2, `gram_schmidt_norm`).
//
// The first norm ||(g,-f)|| is the cheap Euclidean norm of the sampled
// coefficients. The second, b_2 = q·||(F,G)|| with F = f̂/(f·f̄+g·ḡ),
// G = ĝ/(f·f̄+g·ḡ) evaluated pointwise in the DFT domain, requires a
// complex FFT — computed here with gonum's dsp/fourier, the pack's
// complex-transform library (grounded on its use as a direct dependency of
// comparable "numeric helper for a crypto core" repos in the manifests).
//
// Returns (firstNorm, secondNorm). GenerateBasis rejects the sample as soon
// as firstNorm exceeds the bound, mirroring the source's early return.
func GramSchmidtNormEstimate(f, g []int64, q float64) (firstNorm, secondNorm float64) {
	n := len(f)
	var modx float64
	for i := 0; i < n; i++ {
		modx += float64(f[i])*float64(f[i]) + float64(g[i])*float64(g[i])
	}
	firstNorm = math.Sqrt(modx)

	fFFT := forwardComplexFFT(int64ToFloat(f))
	gFFT := forwardComplexFFT(int64ToFloat(g))

	n2 := len(fFFT)
	capF := make([]complex128, n2)
	capG := make([]complex128, n2)
	for i := 0; i < n2; i++ {
		j := n2 - 1 - i
		temp := fFFT[i]*fFFT[j] + gFFT[i]*gFFT[j]
		if temp == 0 {
			temp = 1
		}
		capF[i] = fFFT[i] / temp
		capG[i] = gFFT[i] / temp
	}

	f2 := inverseComplexFFT(capF, n)
	g2 := inverseComplexFFT(capG, n)

	var bN1 float64
	for i := 0; i < n; i++ {
		bN1 += f2[i]*f2[i] + g2[i]*g2[i]
	}
	secondNorm = q * math.Sqrt(bN1)
	return firstNorm, secondNorm
}

func int64ToFloat(v []int64) []float64 {
	out := make([]float64, len(v))
	for i, c := range v {
		out[i] = float64(c)
	}
	return out
}

// forwardComplexFFT evaluates the real coefficient vector at the n-th
// roots of unity.
func forwardComplexFFT(coeffs []float64) []complex128 {
	n := len(coeffs)
	in := make([]complex128, n)
	for i, c := range coeffs {
		in[i] = complex(c, 0)
	}
	cfft := fourier.NewCmplxFFT(n)
	out := make([]complex128, n)
	cfft.Coefficients(out, in)
	return out
}

// inverseComplexFFT inverts a complex spectrum back to n real-valued
// samples (discarding any residual imaginary rounding noise, as the source
// does by storing into a DOUBLE array). gonum's Sequence already applies
// the 1/n inverse-transform normalisation.
func inverseComplexFFT(spectrum []complex128, n int) []float64 {
	cfft := fourier.NewCmplxFFT(n)
	out := make([]complex128, n)
	cfft.Sequence(out, spectrum)
	real := make([]float64, n)
	for i, c := range out {
		real[i] = realPart(c)
	}
	return real
}

func realPart(c complex128) float64 { return real(c) }
