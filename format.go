package gopoly

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Text and LaTeX output
// ============================================================

// String renders p in the textual grammar accepted by Parse.
func (p Poly) String() string {
	var sb strings.Builder
	p.writeTo(&sb)
	return sb.String()
}

func (p Poly) writeTo(sb *strings.Builder) {
	if p.IsCoeff() {
		sb.WriteString(strconv.FormatInt(p.coeff, 10))
		return
	}
	for i, m := range p.monos {
		if i > 0 {
			sb.WriteByte('+')
		}
		sb.WriteByte('(')
		m.p.writeTo(sb)
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatInt(int64(m.exp), 10))
		sb.WriteByte(')')
	}
}

// LaTeX renders p with variables x_{0}, x_{1}, ... in canonical term order.
func (p Poly) LaTeX() string { return p.latex(0) }

func (p Poly) latex(depth int) string {
	if p.IsCoeff() {
		return strconv.FormatInt(p.coeff, 10)
	}
	v := fmt.Sprintf("x_{%d}", depth)
	terms := make([]string, 0, len(p.monos))
	for _, m := range p.monos {
		coeff := m.p.latex(depth + 1)
		var pow string
		switch m.exp {
		case 0:
		case 1:
			pow = v
		default:
			pow = fmt.Sprintf("%s^{%d}", v, m.exp)
		}
		switch {
		case pow == "":
			terms = append(terms, coeff)
		case !m.p.IsCoeff():
			terms = append(terms, `\left(`+coeff+`\right) `+pow)
		case m.p.coeff == 1:
			terms = append(terms, pow)
		case m.p.coeff == -1:
			terms = append(terms, "-"+pow)
		default:
			terms = append(terms, coeff+" "+pow)
		}
	}
	out := terms[0]
	for _, t := range terms[1:] {
		if strings.HasPrefix(t, "-") {
			out += " - " + t[1:]
		} else {
			out += " + " + t
		}
	}
	return out
}

// ============================================================
// JSON Serialization
// ============================================================

type jsonMono struct {
	Exp  int32 `json:"exp"`
	Poly Poly  `json:"poly"`
}

type jsonPoly struct {
	Coeff *int64     `json:"coeff,omitempty"`
	Monos []jsonMono `json:"monos,omitempty"`
}

// MarshalJSON encodes a scalar as {"coeff": c} and a composite as
// {"monos": [{"exp": e, "poly": ...}, ...]}.
func (p Poly) MarshalJSON() ([]byte, error) {
	if p.IsCoeff() {
		c := p.coeff
		return json.Marshal(jsonPoly{Coeff: &c})
	}
	monos := make([]jsonMono, len(p.monos))
	for i, m := range p.monos {
		monos[i] = jsonMono{Exp: m.exp, Poly: m.p}
	}
	return json.Marshal(jsonPoly{Monos: monos})
}

// UnmarshalJSON accepts monomials in any order and normalizes them.
func (p *Poly) UnmarshalJSON(data []byte) error {
	var raw jsonPoly
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Coeff != nil && raw.Monos != nil:
		return fmt.Errorf("gopoly: polynomial has both coeff and monos")
	case raw.Coeff != nil:
		*p = FromCoeff(*raw.Coeff)
		return nil
	}
	monos := make([]Mono, len(raw.Monos))
	for i, m := range raw.Monos {
		if m.Exp < 0 {
			return fmt.Errorf("gopoly: monomial %d: negative exponent %d", i, m.Exp)
		}
		monos[i] = NewMono(m.Poly, m.Exp)
	}
	*p = OwnMonos(monos)
	return nil
}

func ToJSON(p Poly) (string, error) {
	b, err := json.Marshal(p)
	return string(b), err
}

func FromJSON(data []byte) (Poly, error) {
	var p Poly
	err := json.Unmarshal(data, &p)
	return p, err
}
