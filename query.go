package gopoly

// ============================================================
// Queries and evaluation
// ============================================================

// Equal reports whether p and q are the same polynomial. Both must be
// canonical, which every exported constructor guarantees.
func (p Poly) Equal(q Poly) bool {
	if p.IsCoeff() != q.IsCoeff() {
		return false
	}
	if p.IsCoeff() {
		return p.coeff == q.coeff
	}
	if len(p.monos) != len(q.monos) {
		return false
	}
	for i := range p.monos {
		if p.monos[i].exp != q.monos[i].exp || !p.monos[i].p.Equal(q.monos[i].p) {
			return false
		}
	}
	return true
}

// Deg returns the total degree of p, or -1 for the zero polynomial. The sum
// of exponents can pass MaxInt32, so it is int64 unlike DegBy.
func (p Poly) Deg() int64 {
	if p.IsZero() {
		return -1
	}
	var deg int64
	for _, m := range p.monos {
		deg = max(deg, int64(m.exp)+m.p.Deg())
	}
	return deg
}

// DegBy returns the degree of p in the variable x_idx, or -1 for the zero
// polynomial. Index 0 is the leading variable of p.
func (p Poly) DegBy(idx uint64) int32 {
	if p.IsZero() {
		return -1
	}
	var deg int32
	for _, m := range p.monos {
		if idx == 0 {
			deg = max(deg, m.exp)
		} else {
			deg = max(deg, m.p.DegBy(idx-1))
		}
	}
	return deg
}

// At substitutes x for the leading variable. The result is a polynomial in
// the remaining variables, renumbered from x_0.
func (p Poly) At(x int64) Poly {
	if p.IsCoeff() {
		return p.Clone()
	}
	acc := Zero()
	for _, m := range p.monos {
		acc = acc.Add(m.p.Mul(FromCoeff(powCoeff(x, m.exp))))
	}
	return acc
}
