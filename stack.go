package gopoly

// ============================================================
// Stack - LIFO of polynomials
// ============================================================

// Stack holds the polynomials a Calculator works on. The zero value is an
// empty stack ready to use. A Stack is not safe for concurrent use.
type Stack struct {
	items []Poly
}

func (s *Stack) Len() int    { return len(s.items) }
func (s *Stack) Push(p Poly) { s.items = append(s.items, p) }
func (s *Stack) Clear()      { s.items = nil }

// Underflow reports whether fewer than n polynomials are on the stack.
func (s *Stack) Underflow(n uint64) bool { return uint64(len(s.items)) < n }

// Pop removes and returns the top polynomial.
func (s *Stack) Pop() (Poly, bool) {
	if len(s.items) == 0 {
		return Zero(), false
	}
	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = Poly{}
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Top returns the top polynomial without removing it.
func (s *Stack) Top() (Poly, bool) {
	if len(s.items) == 0 {
		return Zero(), false
	}
	return s.items[len(s.items)-1], true
}

// PrevTop returns the polynomial just below the top.
func (s *Stack) PrevTop() (Poly, bool) {
	if len(s.items) < 2 {
		return Zero(), false
	}
	return s.items[len(s.items)-2], true
}
