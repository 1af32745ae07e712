package gopoly_test

import (
	"testing"

	"github.com/njchilds90/gopoly"
)

func TestCompose_Identity(t *testing.T) {
	ids := []gopoly.Poly{gopoly.Var(0), gopoly.Var(1), gopoly.Var(2), gopoly.Var(3)}
	for _, p := range samples() {
		if got := p.Compose(ids); !got.Equal(p) {
			t.Errorf("%s composed with identity: got %s", p, got)
		}
	}
}

func TestCompose_NoSubstitutes(t *testing.T) {
	tests := []struct {
		p, want string
	}{
		{"(1,0)+(1,2)", "1"},
		{"((1,1),0)+(2,1)", "0"},
		{"((3,0)+(1,1),0)+(2,1)", "3"},
		{"-4", "-4"},
	}
	for _, tt := range tests {
		if got := gopoly.MustParse(tt.p).Compose(nil); got.String() != tt.want {
			t.Errorf("compose(%s, []): want %s, got %s", tt.p, tt.want, got)
		}
	}
}

func TestCompose_Polynomial(t *testing.T) {
	got := gopoly.MustParse("(1,2)").Compose([]gopoly.Poly{gopoly.MustParse("(1,0)+(1,1)")})
	if got.String() != "(1,0)+(2,1)+(1,2)" {
		t.Errorf("x^2 o (1+x): want (1,0)+(2,1)+(1,2), got %s", got)
	}
}

func TestCompose_ScalarMatchesAt(t *testing.T) {
	p := gopoly.MustParse("(1,0)+(1,2)")
	if got := p.Compose([]gopoly.Poly{gopoly.FromCoeff(3)}); got.String() != "10" {
		t.Errorf("want 10, got %s", got)
	}
}

func TestCompose_SwapVariables(t *testing.T) {
	// x^2 + y  ->  y^2 + x
	p := gopoly.MustParse("((1,1),0)+(1,2)")
	got := p.Compose([]gopoly.Poly{gopoly.Var(1), gopoly.Var(0)})
	if got.String() != "((1,2),0)+(1,1)" {
		t.Errorf("want ((1,2),0)+(1,1), got %s", got)
	}
}

func TestCompose_ExtraVariableIsZero(t *testing.T) {
	// x_1 with only x_0 substituted
	if got := gopoly.Var(1).Compose([]gopoly.Poly{gopoly.FromCoeff(7)}); !got.IsZero() {
		t.Errorf("want 0, got %s", got)
	}
}

func TestCompose_MoreSubstitutesThanVariables(t *testing.T) {
	p := gopoly.MustParse("(1,2)")
	if got := p.Compose([]gopoly.Poly{gopoly.Var(0), gopoly.FromCoeff(5)}); !got.Equal(p) {
		t.Errorf("want %s, got %s", p, got)
	}
}

func TestCompose_MatchesPow(t *testing.T) {
	base := gopoly.MustParse("(1,0)+(1,1)")
	for _, e := range []int32{1, 2, 5, 10, 16} {
		target := gopoly.OwnMonos([]gopoly.Mono{gopoly.NewMono(gopoly.One(), e)})
		got := target.Compose([]gopoly.Poly{base})
		if !got.Equal(base.Pow(e)) {
			t.Errorf("x^%d o (1+x) disagrees with Pow: %s", e, got)
		}
	}
}

func TestCompose_OperandsUntouched(t *testing.T) {
	p := gopoly.MustParse("(1,0)+(1,3)")
	q := gopoly.MustParse("(2,0)+(1,1)")
	p.Compose([]gopoly.Poly{q})
	if p.String() != "(1,0)+(1,3)" || q.String() != "(2,0)+(1,1)" {
		t.Errorf("operands changed: %s, %s", p, q)
	}
}
