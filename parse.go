package gopoly

import (
	"fmt"
	"math"
	"strconv"
)

// ============================================================
// Parsing
// ============================================================
//
//	polynomial := scalar | monomial ('+' monomial)*
//	monomial   := '(' polynomial ',' exponent ')'
//	scalar     := ['-'] digit+
//	exponent   := ['-'] digit+   (value in [0, MaxInt32])

// SyntaxError describes why a string is not a polynomial.
type SyntaxError struct {
	Offset int // byte offset of the offending input
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("gopoly: syntax error at offset %d: %s", e.Offset, e.Msg)
}

type parser struct {
	src string
	pos int
}

// Parse reads a polynomial written in the textual grammar. Monomials may
// come in any order and may repeat exponents; the result is canonical.
func Parse(s string) (Poly, error) {
	ps := &parser{src: s}
	p, err := ps.poly()
	if err != nil {
		return Zero(), err
	}
	if ps.pos != len(ps.src) {
		return Zero(), ps.errorf("unexpected %q", ps.src[ps.pos])
	}
	return p, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Poly {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (ps *parser) errorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Offset: ps.pos, Msg: fmt.Sprintf(format, args...)}
}

func (ps *parser) peek() (byte, bool) {
	if ps.pos >= len(ps.src) {
		return 0, false
	}
	return ps.src[ps.pos], true
}

func (ps *parser) expect(c byte) error {
	got, ok := ps.peek()
	if !ok {
		return ps.errorf("want %q, got end of input", c)
	}
	if got != c {
		return ps.errorf("want %q, got %q", c, got)
	}
	ps.pos++
	return nil
}

func (ps *parser) poly() (Poly, error) {
	c, ok := ps.peek()
	if !ok {
		return Zero(), ps.errorf("empty polynomial")
	}
	if c != '(' {
		v, err := ps.integer(64)
		if err != nil {
			return Zero(), err
		}
		return FromCoeff(v), nil
	}

	var monos []Mono
	for {
		m, err := ps.mono()
		if err != nil {
			return Zero(), err
		}
		monos = append(monos, m)
		if c, ok := ps.peek(); !ok || c != '+' {
			return OwnMonos(monos), nil
		}
		ps.pos++
	}
}

func (ps *parser) mono() (Mono, error) {
	if err := ps.expect('('); err != nil {
		return Mono{}, err
	}
	p, err := ps.poly()
	if err != nil {
		return Mono{}, err
	}
	if err := ps.expect(','); err != nil {
		return Mono{}, err
	}
	start := ps.pos
	exp, err := ps.integer(32)
	if err != nil {
		return Mono{}, err
	}
	if exp < 0 {
		ps.pos = start
		return Mono{}, ps.errorf("negative exponent %d", exp)
	}
	if err := ps.expect(')'); err != nil {
		return Mono{}, err
	}
	return NewMono(p, int32(exp)), nil
}

// integer consumes an optionally negative decimal number that fits in a
// signed integer of the given bit size.
func (ps *parser) integer(bitSize int) (int64, error) {
	start := ps.pos
	if c, ok := ps.peek(); ok && c == '-' {
		ps.pos++
	}
	digits := ps.pos
	for ps.pos < len(ps.src) && ps.src[ps.pos] >= '0' && ps.src[ps.pos] <= '9' {
		ps.pos++
	}
	if ps.pos == digits {
		if c, ok := ps.peek(); ok {
			return 0, ps.errorf("want digit, got %q", c)
		}
		return 0, ps.errorf("want digit, got end of input")
	}
	v, err := strconv.ParseInt(ps.src[start:ps.pos], 10, bitSize)
	if err != nil {
		ps.pos = start
		lo, hi := int64(math.MinInt64), int64(math.MaxInt64)
		if bitSize == 32 {
			lo, hi = math.MinInt32, math.MaxInt32
		}
		return 0, ps.errorf("number out of range [%d, %d]", lo, hi)
	}
	return v, nil
}
