// Package gopoly provides exact arithmetic on sparse multivariate polynomials
// with integer coefficients.
//
// A polynomial in x_0 is stored recursively: every coefficient with respect
// to x_0 is itself a polynomial in x_1, x_2, ... down to a plain integer.
// All values are kept in a unique canonical form:
//   - monomials are sorted by strictly increasing exponent
//   - no monomial has a zero coefficient
//   - a value that can be a plain integer is one
//
// Values are immutable. Every operation returns a fresh polynomial and never
// touches its operands. Coefficients are int64 and wrap on overflow.
// Exponents are int32 and a product whose exponent passes MaxInt32 wraps to
// a negative exponent; such a value is no longer canonical and its String
// form does not parse. Callers that multiply near the limit must check
// DegBy first.
package gopoly

import "sort"

// ============================================================
// Poly - recursive canonical polynomial
// ============================================================

// Poly is either a scalar (monos == nil) or a non-empty, canonical list of
// monomials in the leading variable. The zero value is the zero polynomial.
type Poly struct {
	coeff int64
	monos []Mono
}

// Mono is the term p * x^exp, where p is a polynomial in the next variable.
type Mono struct {
	exp int32
	p   Poly
}

func FromCoeff(c int64) Poly { return Poly{coeff: c} }
func Zero() Poly             { return Poly{} }
func One() Poly              { return Poly{coeff: 1} }

// NewMono builds the monomial p * x^exp. It takes ownership of p.
func NewMono(p Poly, exp int32) Mono { return Mono{exp: exp, p: p} }

func (m Mono) Exp() int32    { return m.exp }
func (m Mono) Poly() Poly    { return m.p }
func (m Mono) Clone() Mono   { return Mono{exp: m.exp, p: m.p.Clone()} }
func (p Poly) IsCoeff() bool { return p.monos == nil }
func (p Poly) IsZero() bool  { return p.monos == nil && p.coeff == 0 }

// Coeff returns the value of a scalar polynomial and 0 for anything else.
func (p Poly) Coeff() int64 {
	if !p.IsCoeff() {
		return 0
	}
	return p.coeff
}

// Len is the number of monomials in the leading variable (0 for scalars).
func (p Poly) Len() int { return len(p.monos) }

// Monos returns a copy of the monomial list.
func (p Poly) Monos() []Mono {
	if p.IsCoeff() {
		return nil
	}
	out := make([]Mono, len(p.monos))
	for i, m := range p.monos {
		out[i] = m.Clone()
	}
	return out
}

// Clone makes a deep copy.
func (p Poly) Clone() Poly {
	if p.IsCoeff() {
		return FromCoeff(p.coeff)
	}
	monos := make([]Mono, len(p.monos))
	for i, m := range p.monos {
		monos[i] = m.Clone()
	}
	return Poly{monos: monos}
}

// Var returns the polynomial x_i.
func Var(i int) Poly {
	p := Poly{monos: []Mono{{exp: 1, p: One()}}}
	for ; i > 0; i-- {
		p = Poly{monos: []Mono{{exp: 0, p: p}}}
	}
	return p
}

// ============================================================
// Normalization
// ============================================================

// collapse re-establishes the "scalar when possible" rule on a monomial list
// that is already sorted and free of zero coefficients.
func collapse(monos []Mono) Poly {
	switch {
	case len(monos) == 0:
		return Zero()
	case len(monos) == 1 && monos[0].exp == 0 && monos[0].p.IsCoeff():
		return monos[0].p
	}
	return Poly{monos: monos}
}

// OwnMonos sums an unordered list of monomials, which may repeat exponents,
// into a canonical polynomial. It takes ownership of monos and may reorder
// it. An empty list gives the zero polynomial.
func OwnMonos(monos []Mono) Poly {
	if len(monos) == 0 {
		return Zero()
	}
	sort.SliceStable(monos, func(i, j int) bool { return monos[i].exp < monos[j].exp })

	out := monos[:0]
	for i := 0; i < len(monos); {
		acc := monos[i]
		j := i + 1
		for ; j < len(monos) && monos[j].exp == acc.exp; j++ {
			acc.p = acc.p.Add(monos[j].p)
		}
		if !acc.p.IsZero() {
			out = append(out, acc)
		}
		i = j
	}
	// out aliases monos; drop the tail so nothing stale stays reachable.
	for k := len(out); k < len(monos); k++ {
		monos[k] = Mono{}
	}
	return collapse(out)
}

// CloneMonos is OwnMonos on a deep copy of monos; the input is left intact.
func CloneMonos(monos []Mono) Poly {
	if len(monos) == 0 {
		return Zero()
	}
	cp := make([]Mono, len(monos))
	for i, m := range monos {
		cp[i] = m.Clone()
	}
	return OwnMonos(cp)
}

// AddMonos sums monos without reordering the caller's slice. The monomial
// coefficients are not copied, which is safe because values are immutable.
func AddMonos(monos []Mono) Poly {
	if len(monos) == 0 {
		return Zero()
	}
	return OwnMonos(append([]Mono(nil), monos...))
}
