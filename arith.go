package gopoly

// ============================================================
// Arithmetic
// ============================================================

// lift wraps a scalar as the one-monomial composite c*x^0 so that it can be
// merged with a composite of the same variable. The result is not canonical
// and never escapes this package.
func lift(c Poly) Poly { return Poly{monos: []Mono{{exp: 0, p: c}}} }

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	switch {
	case p.IsCoeff() && q.IsCoeff():
		return FromCoeff(p.coeff + q.coeff)
	case p.IsCoeff():
		return lift(p).Add(q)
	case q.IsCoeff():
		return p.Add(lift(q))
	}

	out := make([]Mono, 0, len(p.monos)+len(q.monos))
	i, j := 0, 0
	for i < len(p.monos) || j < len(q.monos) {
		switch {
		case j == len(q.monos) || (i < len(p.monos) && p.monos[i].exp < q.monos[j].exp):
			out = appendNonZero(out, p.monos[i])
			i++
		case i == len(p.monos) || q.monos[j].exp < p.monos[i].exp:
			out = appendNonZero(out, q.monos[j])
			j++
		default:
			sum := p.monos[i].p.Add(q.monos[j].p)
			if !sum.IsZero() {
				out = append(out, Mono{exp: p.monos[i].exp, p: sum})
			}
			i++
			j++
		}
	}
	return collapse(out)
}

// appendNonZero copies m into out unless its coefficient is zero, which only
// happens for a lifted zero scalar.
func appendNonZero(out []Mono, m Mono) []Mono {
	if m.p.IsZero() {
		return out
	}
	return append(out, m.Clone())
}

// Mul returns p * q.
func (p Poly) Mul(q Poly) Poly {
	switch {
	case p.IsCoeff() && q.IsCoeff():
		return FromCoeff(p.coeff * q.coeff)
	case p.IsCoeff():
		return lift(p).Mul(q)
	case q.IsCoeff():
		return p.Mul(lift(q))
	}

	if len(p.monos) > len(q.monos) {
		p, q = q, p
	}
	acc := Zero()
	for _, a := range p.monos {
		// q is sorted, so shifting every exponent by a.exp keeps it sorted.
		row := make([]Mono, len(q.monos))
		for k, b := range q.monos {
			row[k] = Mono{exp: a.exp + b.exp, p: a.p.Mul(b.p)}
		}
		acc = acc.Add(Poly{monos: row})
	}
	return acc
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	if p.IsCoeff() {
		return FromCoeff(-p.coeff)
	}
	monos := make([]Mono, len(p.monos))
	for i, m := range p.monos {
		monos[i] = Mono{exp: m.exp, p: m.p.Neg()}
	}
	return Poly{monos: monos}
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly { return p.Add(q.Neg()) }

// Pow returns p^n by binary exponentiation. Non-positive n gives 1.
func (p Poly) Pow(n int32) Poly {
	acc := One()
	if n <= 0 {
		return acc
	}
	base := p.Clone()
	for {
		if n&1 == 1 {
			acc = acc.Mul(base)
		}
		n >>= 1
		if n == 0 {
			return acc
		}
		base = base.Mul(base)
	}
}

// powCoeff is x^n over int64 with native wraparound.
func powCoeff(x int64, n int32) int64 {
	acc := int64(1)
	for n > 0 {
		if n&1 == 1 {
			acc *= x
		}
		x *= x
		n >>= 1
	}
	return acc
}
