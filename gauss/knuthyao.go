package gauss

import (
	"math"

	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/gauss/entropy"
)

// knuthYaoSampler implements the discrete distribution generating (DDG)
// tree algorithm: each candidate value's probability is expanded as a
// fixed-point binary fraction, and a column is selected by walking the
// resulting probability matrix one random bit at a time (spec §4.4,
// §9's "Knuth-Yao: ... derived from fixed-point probability matrix").
//
// The "fast" variant collapses the first fastRows rows into a single
// byte-indexed jump table (spec §9's "fast variant replaces top levels
// with a single byte-indexed jump table"): most samples resolve after
// consuming only that byte, falling back to the row-by-row walk only when
// the byte leaves the DDG state unresolved.
type knuthYaoSampler struct {
	cfg       Config
	src       entropy.Source
	bound     int
	matrix    [][]uint8 // matrix[row][col], row-major, MSB-first
	rows      int
	fast      bool
	fastRows  int
	fastTable []fastEntry
}

type fastEntry struct {
	resolved bool
	value    int64
	carryD   int64
}

func newKnuthYaoSampler(cfg Config, src entropy.Source, fast bool) (Sampler, error) {
	bound := tailBound(cfg.Sigma, cfg.Tail)
	if bound <= 0 {
		return nil, errs.New(errs.SamplerFailure, "gauss.newKnuthYaoSampler: degenerate tail bound")
	}
	rows := int(cfg.Precision)
	if rows <= 0 {
		rows = 64
	}
	cdf := buildCDF(cfg.Sigma, 0, bound)
	n := len(cdf)
	weights := make([]float64, n)
	var prev float64
	for i, c := range cdf {
		weights[i] = c - prev
		prev = c
	}

	matrix := buildProbabilityMatrix(weights, rows)

	s := &knuthYaoSampler{cfg: cfg, src: src, bound: bound, matrix: matrix, rows: rows, fast: fast}
	if fast {
		s.fastRows = 8
		if s.fastRows > rows {
			s.fastRows = rows
		}
		s.fastTable = buildFastTable(matrix, s.fastRows, len(weights))
	}
	return s, nil
}

// buildProbabilityMatrix expands each weight as a fixed-point binary
// fraction with `rows` bits (MSB first) and lays the bits out row-major:
// matrix[row][col] is the row-th bit of column col's probability.
func buildProbabilityMatrix(weights []float64, rows int) [][]uint8 {
	n := len(weights)
	matrix := make([][]uint8, rows)
	for r := range matrix {
		matrix[r] = make([]uint8, n)
	}
	for col, w := range weights {
		rem := w
		for r := 0; r < rows; r++ {
			rem *= 2
			bit := uint8(0)
			if rem >= 1 {
				bit = 1
				rem -= 1
			}
			matrix[r][col] = bit
		}
	}
	return matrix
}

// buildFastTable simulates the DDG walk for every possible 8-bit prefix,
// recording either the resolved column or the running distance `d` carried
// into the slow row-by-row continuation.
func buildFastTable(matrix [][]uint8, fastRows, cols int) []fastEntry {
	table := make([]fastEntry, 1<<uint(fastRows))
	for b := 0; b < len(table); b++ {
		d := int64(0)
		resolvedAt := -1
		for r := 0; r < fastRows; r++ {
			bit := int64((b >> uint(fastRows-1-r)) & 1)
			d = 2*d + bit
			for col := 0; col < cols; col++ {
				d -= int64(matrix[r][col])
				if d < 0 {
					resolvedAt = col
					break
				}
			}
			if resolvedAt >= 0 {
				break
			}
		}
		if resolvedAt >= 0 {
			table[b] = fastEntry{resolved: true, value: int64(resolvedAt)}
		} else {
			table[b] = fastEntry{resolved: false, carryD: d}
		}
	}
	return table
}

func (s *knuthYaoSampler) Sigma() float64 { return s.cfg.Sigma }

func (s *knuthYaoSampler) Sample(centre float64) (int64, error) {
	// Centred sampling rebuilds the matrix, same trade-off as the CDT
	// sampler: correctness over per-call table reuse when centre != 0.
	matrix := s.matrix
	rows := s.rows
	startRow := 0
	d := int64(0)

	if centre == 0 && s.fast {
		b := 0
		for i := 0; i < s.fastRows; i++ {
			b = (b << 1) | int(s.readBit())
		}
		entry := s.fastTable[b]
		if entry.resolved {
			return entry.value - int64(s.bound), nil
		}
		d = entry.carryD
		startRow = s.fastRows
	}

	if centre != 0 {
		cdf := buildCDF(s.cfg.Sigma, centre, s.bound)
		weights := make([]float64, len(cdf))
		var prev float64
		for i, c := range cdf {
			weights[i] = c - prev
			prev = c
		}
		matrix = buildProbabilityMatrix(weights, rows)
	}

	for r := startRow; r < rows; r++ {
		d = 2*d + int64(s.readBit())
		for col := 0; col < len(matrix[r]); col++ {
			d -= int64(matrix[r][col])
			blind(s.cfg.Blinding)
			if d < 0 {
				return int64(col) - int64(s.bound) + int64(math.Floor(centre)), nil
			}
		}
	}
	// Exhausted precision without resolving: fall back to the last column,
	// which carries the (negligible) tail mass truncated by fixed-point
	// rounding.
	return int64(len(matrix[0])-1) - int64(s.bound) + int64(math.Floor(centre)), nil
}

func (s *knuthYaoSampler) readBit() uint64 {
	return s.src.Uint64() & 1
}

func (s *knuthYaoSampler) Vector(n int, centre float64) ([]int64, error) {
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
