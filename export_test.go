package gopoly

// IsCanonical checks the canonical-form invariants at every level of p.
func IsCanonical(p Poly) bool {
	if p.IsCoeff() {
		return true
	}
	if len(p.monos) == 0 {
		return false
	}
	if len(p.monos) == 1 && p.monos[0].exp == 0 && p.monos[0].p.IsCoeff() {
		return false
	}
	for i, m := range p.monos {
		if m.exp < 0 || m.p.IsZero() || !IsCanonical(m.p) {
			return false
		}
		if i > 0 && m.exp <= p.monos[i-1].exp {
			return false
		}
	}
	return true
}
