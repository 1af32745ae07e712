package gopoly

import "math/bits"

// ============================================================
// Composition
// ============================================================

// Compose substitutes q[i] for the variable x_i of p, for i < len(q).
// Variables of p past len(q) are replaced by zero.
//
// Powers of every substitute are cached as q[i]^1, q[i]^2, q[i]^4, ... up to
// the highest exponent x_i reaches in p, so each x_i^e costs at most
// log2(e) multiplications.
func (p Poly) Compose(q []Poly) Poly {
	maxExp := make([]int32, len(q))
	fillMaxExp(p, maxExp, 0)

	powers := make([][]Poly, len(q))
	for i, sub := range q {
		n := max(bits.Len32(uint32(maxExp[i])), 1)
		powers[i] = make([]Poly, n)
		powers[i][0] = sub.Clone()
		for j := 1; j < n; j++ {
			powers[i][j] = powers[i][j-1].Mul(powers[i][j-1])
		}
	}
	return composeAt(p, powers, 0)
}

// fillMaxExp records in maxExp[d] the largest exponent found at nesting
// depth d, for every d < len(maxExp).
func fillMaxExp(p Poly, maxExp []int32, depth int) {
	if p.IsCoeff() || depth >= len(maxExp) {
		return
	}
	for _, m := range p.monos {
		fillMaxExp(m.p, maxExp, depth+1)
		maxExp[depth] = max(maxExp[depth], m.exp)
	}
}

func composeAt(p Poly, powers [][]Poly, depth int) Poly {
	if p.IsCoeff() {
		return p.Clone()
	}
	if depth >= len(powers) {
		// No substitute left: only the x^0 term survives.
		if p.monos[0].exp != 0 {
			return Zero()
		}
		return composeAt(p.monos[0].p, powers, depth+1)
	}

	acc := Zero()
	for _, m := range p.monos {
		inner := composeAt(m.p, powers, depth+1)
		acc = acc.Add(inner.Mul(powFromCache(powers[depth], m.exp)))
	}
	return acc
}

// powFromCache rebuilds base^exp from cache[i] = base^(2^i), taking the set
// bits of exp from the highest down.
func powFromCache(cache []Poly, exp int32) Poly {
	acc := One()
	for i := len(cache) - 1; i >= 0; i-- {
		if exp&(1<<i) != 0 {
			acc = acc.Mul(cache[i])
		}
	}
	return acc
}
