package dice_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/dice"
	"github.com/zephyrtronium/dice/internal/dicetest"
)

func TestRender(t *testing.T) {
	i := dice.Int
	cases := []struct {
		name string
		e    *dice.Expr
		want string
	}{
		{"int", i(4), "4"},
		{"negative-int", i(-4), "-4"},
		{"dice", dice.Dice(3, 6), "3d6"},
		{"neg", dice.Neg(i(1)), "-1"},
		{"neg-neg", dice.Neg(dice.Neg(i(1))), "--1"},
		{"neg-binary", dice.Neg(dice.Add(i(1), i(2))), "-(1 + 2)"},
		{"label", dice.Label(dice.Dice(1, 20), "to hit"), "1d20[to hit]"},
		{"label-neg", dice.Label(dice.Neg(i(1)), "x"), "-1[x]"},
		{"label-binary", dice.Label(dice.Add(i(1), i(2)), "sum"), "(1 + 2)[sum]"},
		{"label-neg-binary", dice.Label(dice.Neg(dice.Add(i(1), i(2))), "x"), "(-(1 + 2))[x]"},
		{"add-chain-left", dice.Add(dice.Add(i(1), i(2)), i(3)), "1 + 2 + 3"},
		{"add-chain-right", dice.Add(i(1), dice.Add(i(2), i(3))), "1 + 2 + 3"},
		{"sub-left", dice.Sub(dice.Sub(i(1), i(2)), i(3)), "1 - 2 - 3"},
		{"sub-right", dice.Sub(i(1), dice.Sub(i(2), i(3))), "1 - (2 - 3)"},
		{"sub-add-right", dice.Sub(i(1), dice.Add(i(2), i(3))), "1 - (2 + 3)"},
		{"add-sub-right", dice.Add(i(1), dice.Sub(i(2), i(3))), "1 + 2 - 3"},
		{"mul-add", dice.Mul(dice.Add(i(1), i(2)), i(3)), "(1 + 2) * 3"},
		{"add-mul", dice.Add(i(1), dice.Mul(i(2), i(3))), "1 + 2 * 3"},
		{"div-right", dice.Div(i(8), dice.Div(i(4), i(2))), "8 / (4 / 2)"},
		{"div-left", dice.Div(dice.Div(i(8), i(4)), i(2)), "8 / 4 / 2"},
		{"div-mul-right", dice.Div(i(8), dice.Mul(i(4), i(2))), "8 / (4 * 2)"},
		{"mul-div-left", dice.Mul(dice.Div(i(8), i(4)), i(2)), "8 / 4 * 2"},
		{"mul-div-right", dice.Mul(i(4), dice.Div(i(3), i(2))), "4 * (3 / 2)"},
		{"mul-neg", dice.Mul(dice.Neg(i(2)), dice.Neg(i(3))), "-2 * -3"},
		{"sub-neg", dice.Sub(i(1), dice.Neg(i(1))), "1 - -1"},
		{"mul-label", dice.Mul(i(2), dice.Label(dice.Add(i(1), i(2)), "x")), "2 * (1 + 2)[x]"},
		{
			"scenario",
			dice.Div(
				dice.Div(dice.Mul(i(4), dice.Add(i(1), i(3))), i(7)),
				dice.Mul(dice.Add(i(8), i(9)), i(2)),
			),
			"4 * (1 + 3) / 7 / ((8 + 9) * 2)",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := dice.Render(c.e); got != c.want {
				t.Errorf("wrong rendering: want %q, got %q", c.want, got)
			}
			if got := c.e.String(); got != c.want {
				t.Errorf("String differs from Render: %q", got)
			}
		})
	}
}

func TestRenderAddNoParens(t *testing.T) {
	g := dicetest.NewGen(1, 8)
	for n := 0; n < 500; n++ {
		e := dice.Expand(g.MaxDepth, func(depth int) dice.Frame[int] {
			if depth <= 1 || g.Rand.IntN(4) == 0 {
				if g.Rand.IntN(2) == 0 {
					return dice.Frame[int]{Kind: dice.KindDice, Count: 1 + g.Rand.Int32N(4), Sides: 6}
				}
				return dice.Frame[int]{Kind: dice.KindInt, Value: g.Rand.Int32N(100)}
			}
			return dice.Frame[int]{Kind: dice.KindAdd, L: depth - 1, R: depth - 1}
		})
		s := e.String()
		if strings.ContainsAny(s, "()") {
			t.Fatalf("parentheses in sum: %s", s)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	g := dicetest.NewGen(2, 7)
	for n := 0; n < 2000; n++ {
		e := g.Expr()
		s := e.String()
		r, err := dice.Parse(s)
		if err != nil {
			t.Fatalf("couldn't parse rendering %q: %v", s, err)
		}
		src := dicetest.NewSequence(uint64(n), 7, 11, 13)
		want, wok := dicetest.Exact(e, src)
		src.Reset()
		got, gok := dicetest.Exact(r, src)
		if wok != gok || wok && want.Cmp(got) != 0 {
			t.Fatalf("%q evaluates differently after parsing: want %v (%t), got %v (%t)", s, want, wok, got, gok)
		}
		// The parsed expression is in normal form.
		s2 := r.String()
		r2, err := dice.Parse(s2)
		if err != nil {
			t.Fatalf("couldn't parse rendering %q: %v", s2, err)
		}
		if s3 := r2.String(); s3 != s2 {
			t.Fatalf("rendering not stable: %q became %q", s2, s3)
		}
	}
}
