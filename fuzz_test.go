package dice_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/dice"
	"github.com/zephyrtronium/dice/internal/dicetest"
)

func FuzzParse(f *testing.F) {
	f.Add("1d20 - 1")
	f.Add("1 [lbl1] [lbl2]")
	f.Add("4 * (1 + 3) / 7 / ((8 + 9) * 2)")
	f.Add("--1[x]")
	f.Add("(((")
	f.Fuzz(func(t *testing.T, s string) {
		a, aerr := dice.Parse(s, dice.MaxNesting(64))
		b, berr := dice.ParseTokens(s, dice.MaxNesting(64), dice.UseShuntingYard())
		if (aerr == nil) != (berr == nil) {
			t.Fatalf("%q: parsers disagree: %v and %v", s, aerr, berr)
		}
		if aerr != nil {
			var ie dice.InputError
			if !errors.As(aerr, &ie) || !errors.As(berr, &ie) {
				t.Fatalf("%q: errors are not InputErrors: %v and %v", s, aerr, berr)
			}
			return
		}
		if !a.Equal(b) {
			t.Fatalf("%q: parsers disagree: %v and %v", s, a, b)
		}
		if !smallDice(a) {
			return
		}
		r := a.String()
		c, err := dice.Parse(r)
		if err != nil {
			t.Fatalf("%q rendered as %q which does not parse: %v", s, r, err)
		}
		want, wok := dicetest.Exact(a, dicetest.Ones())
		got, gok := dicetest.Exact(c, dicetest.Ones())
		if wok != gok || wok && want.Cmp(got) != 0 {
			t.Fatalf("%q rendered as %q with a different value: %v and %v", s, r, want, got)
		}
		// A label over a negation renders as a negated label, so only the
		// second rendering must be stable.
		r2 := c.String()
		c2, err := dice.Parse(r2)
		if err != nil {
			t.Fatalf("%q rendered as %q which does not parse: %v", r, r2, err)
		}
		if got := c2.String(); got != r2 {
			t.Fatalf("%q rendered as %q then %q", r, r2, got)
		}
	})
}

func FuzzEval(f *testing.F) {
	f.Add("1d20 + (-((4 + 4) / 2) * (0 - 5d20)[subtraction])", uint64(0))
	f.Add("2147483647 * 2147483647 * 2", uint64(1))
	f.Add("1 / (1d2 - 1)", uint64(0))
	f.Fuzz(func(t *testing.T, s string, seed uint64) {
		e, err := dice.Parse(s, dice.MaxNesting(64))
		if err != nil {
			return
		}
		if !smallDice(e) {
			return
		}
		want, ok := dicetest.Naive(e, dicetest.NewSequence(seed))
		got, err := dice.TryEval(e, dicetest.NewSequence(seed))
		if !ok {
			var ae dice.ArithmeticError
			if !errors.As(err, &ae) {
				t.Fatalf("%q: expected arithmetic error, got %d, %v", s, got, err)
			}
			return
		}
		if err != nil || got != want {
			t.Fatalf("%q: want %d, got %d, %v", s, want, got, err)
		}
	})
}

// smallDice reports whether every dice term in e is fast to roll.
func smallDice(e *dice.Expr) bool {
	for _, d := range dice.DiceTerms(e) {
		if c, _ := d.Dice(); c > 1000 {
			return false
		}
	}
	return true
}
