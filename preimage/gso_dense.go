package preimage

import "gonum.org/v1/gonum/mat"

// Dense materialises a float64 BasisGS as a gonum dense matrix, for callers
// that want matrix operations (norms, solves) over the full 2N×2N table
// rather than the row-streaming access ComputeGSO otherwise provides.
func Dense(bgs *BasisGS[float64]) *mat.Dense {
	total := 2 * bgs.N
	flat := make([]float64, 0, total*total)
	for _, row := range bgs.Rows {
		flat = append(flat, row...)
	}
	return mat.NewDense(total, total, flat)
}
