package gauss

import (
	"math"
	"sort"

	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/gauss/entropy"
)

// huffmanSampler encodes D_{Z,σ,0} as a Huffman tree over its discrete
// probability masses and samples by walking random bits down the tree
// until a leaf is reached — the standard technique for drawing from a
// Huffman-coded distribution, and the memory-efficient alternative to a
// full CDT the source offers (spec §4.4, §9: "variable-length coded CDT
// lookups (memory-efficient)").
type huffmanSampler struct {
	cfg   Config
	src   entropy.Source
	bound int
	root  *huffmanNode
}

type huffmanNode struct {
	weight      float64
	symbol      int64 // valid only when leaf
	left, right *huffmanNode
}

func (n *huffmanNode) isLeaf() bool { return n.left == nil && n.right == nil }

func newHuffmanSampler(cfg Config, src entropy.Source) (Sampler, error) {
	bound := tailBound(cfg.Sigma, cfg.Tail)
	if bound <= 0 {
		return nil, errs.New(errs.SamplerFailure, "gauss.newHuffmanSampler: degenerate tail bound")
	}
	cdf := buildCDF(cfg.Sigma, 0, bound)
	weights := make([]float64, len(cdf))
	var prev float64
	for i, c := range cdf {
		weights[i] = c - prev
		prev = c
	}

	nodes := make([]*huffmanNode, len(weights))
	for i, w := range weights {
		nodes[i] = &huffmanNode{weight: w, symbol: int64(i) - int64(bound)}
	}
	root := buildHuffmanTree(nodes)

	return &huffmanSampler{cfg: cfg, src: src, bound: bound, root: root}, nil
}

// buildHuffmanTree repeatedly merges the two lowest-weight nodes, the
// standard greedy Huffman construction. Re-sorting on every merge keeps the
// implementation simple; the symbol alphabet here (2*bound+1 values) is
// small enough that the O(n² log n) cost is immaterial next to the
// once-per-σ construction cost of the CDT/Knuth-Yao tables.
func buildHuffmanTree(nodes []*huffmanNode) *huffmanNode {
	work := append([]*huffmanNode(nil), nodes...)
	for len(work) > 1 {
		sort.Slice(work, func(i, j int) bool { return work[i].weight < work[j].weight })
		a, b := work[0], work[1]
		merged := &huffmanNode{weight: a.weight + b.weight, left: a, right: b}
		work = append(work[2:], merged)
	}
	return work[0]
}

func (s *huffmanSampler) Sigma() float64 { return s.cfg.Sigma }

func (s *huffmanSampler) Sample(centre float64) (int64, error) {
	root := s.root
	if centre != 0 {
		cdf := buildCDF(s.cfg.Sigma, centre, s.bound)
		weights := make([]float64, len(cdf))
		var prev float64
		for i, c := range cdf {
			weights[i] = c - prev
			prev = c
		}
		nodes := make([]*huffmanNode, len(weights))
		for i, w := range weights {
			nodes[i] = &huffmanNode{weight: w, symbol: int64(i) - int64(s.bound) + int64(math.Floor(centre))}
		}
		root = buildHuffmanTree(nodes)
	}

	n := root
	for !n.isLeaf() {
		blind(s.cfg.Blinding)
		if s.src.Uint64()&1 == 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.symbol, nil
}

func (s *huffmanSampler) Vector(n int, centre float64) ([]int64, error) {
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
