package bigint

import "math/big"

// CRTPair combines a residue a (mod ma) with a residue b (mod mb), given
// gcd(ma, mb) = 1 and a precomputed modular inverse of ma mod mb, into the
// unique value in [0, ma*mb) congruent to a mod ma and b mod mb. This is the
// C2 "CRT recombination helper" of spec §4.2.
func CRTPair(a, ma, b, mb, maInvModMb *Int) *Int {
	// x = a + ma * (((b - a) * maInvModMb) mod mb)
	diff := new(big.Int).Sub(&b.v, &a.v)
	t := new(big.Int).Mul(diff, &maInvModMb.v)
	t.Mod(t, &mb.v)
	x := new(big.Int).Mul(&ma.v, t)
	x.Add(x, &a.v)
	mod := new(big.Int).Mul(&ma.v, &mb.v)
	x.Mod(x, mod)
	z := New()
	z.v.Set(x)
	return z
}

// Comb precomputes a binary-tree-shaped product of a list of small prime
// moduli plus the per-level modular inverses needed for repeated CRT
// recombination (spec §3's "MPZ comb" data model). Leaves are the input
// primes; each internal node's modulus is the product of its children's,
// and carries the inverse of the left child's modulus mod the right child's,
// which is exactly the datum CRTPair needs to merge two already-combined
// subtrees.
type Comb struct {
	primes []uint64
	nodes  []combNode
}

type combNode struct {
	modulus    *Int
	left       int // index into nodes, or -1 for a leaf
	right      int
	leftInvRt  *Int // inverse of left.modulus mod right.modulus, nil at leaves
	leafPrime  uint64
	isLeaf     bool
}

// NewComb builds the comb tree over primes. Panics if primes is empty.
// Pairwise coprimality is not checked (callers are expected to pass a list
// of distinct primes, as the modular resultant prime search in polyz does).
func NewComb(primes []uint64) *Comb {
	if len(primes) == 0 {
		panic("bigint: NewComb requires at least one prime")
	}
	c := &Comb{primes: append([]uint64(nil), primes...)}
	leaves := make([]int, len(primes))
	for i, p := range primes {
		idx := len(c.nodes)
		c.nodes = append(c.nodes, combNode{
			modulus:   NewFromWord(p),
			left:      -1,
			right:     -1,
			leafPrime: p,
			isLeaf:    true,
		})
		leaves[i] = idx
	}
	level := leaves
	for len(level) > 1 {
		var next []int
		for i := 0; i+1 < len(level); i += 2 {
			l, r := level[i], level[i+1]
			mod := new(Int).Mul(c.nodes[l].modulus, c.nodes[r].modulus)
			inv, ok := InvMod(c.nodes[l].modulus, c.nodes[r].modulus)
			if !ok {
				// Non-coprime moduli: the prime search feeding this comb is
				// responsible for avoiding duplicate/dividing primes; surface
				// this as a zero inverse rather than panicking deep in CRT.
				inv = NewFromWord(0)
			}
			idx := len(c.nodes)
			c.nodes = append(c.nodes, combNode{modulus: mod, left: l, right: r, leftInvRt: inv})
			next = append(next, idx)
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}
	return c
}

// Combine reconstructs the integer congruent to residues[i] mod primes[i]
// for every i, using the comb tree built from the same prime list.
func (c *Comb) Combine(residues []uint64) *Int {
	if len(residues) != len(c.primes) {
		panic("bigint: Comb.Combine residue count mismatch")
	}
	vals := make([]*Int, len(c.nodes))
	for i := range c.primes {
		vals[i] = NewFromWord(residues[i] % c.primes[i])
	}
	// Walk internal nodes in the order they were appended (post-order by
	// construction: children always precede parents).
	for i := len(c.primes); i < len(c.nodes); i++ {
		n := c.nodes[i]
		vals[i] = CRTPair(vals[n.left], c.nodes[n.left].modulus, vals[n.right], c.nodes[n.right].modulus, n.leftInvRt)
	}
	return vals[len(c.nodes)-1]
}

// Modulus returns the product of all primes in the comb.
func (c *Comb) Modulus() *Int {
	return c.nodes[len(c.nodes)-1].modulus
}
