package dice_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zephyrtronium/dice"
	"github.com/zephyrtronium/dice/internal/dicetest"
)

func TestNewDiceSpec(t *testing.T) {
	cases := []struct {
		count, sides int64
		want         dice.DiceSpec
		err          dice.DiceErrorKind
		ok           bool
	}{
		{1, 20, dice.DiceSpec{Count: 1, Sides: 20}, 0, true},
		{math.MaxUint16, math.MaxUint16, dice.DiceSpec{Count: math.MaxUint16, Sides: math.MaxUint16}, 0, true},
		{0, 6, dice.DiceSpec{}, dice.DiceZero, false},
		{6, 0, dice.DiceSpec{}, dice.DiceZero, false},
		{-1, 6, dice.DiceSpec{}, dice.DiceOverflow, false},
		{6, -1, dice.DiceSpec{}, dice.DiceOverflow, false},
		{math.MaxUint16 + 1, 6, dice.DiceSpec{}, dice.DiceOverflow, false},
		{6, math.MaxInt64, dice.DiceSpec{}, dice.DiceOverflow, false},
		{0, -1, dice.DiceSpec{}, dice.DiceOverflow, false},
		{math.MaxUint16 + 1, 0, dice.DiceSpec{}, dice.DiceOverflow, false},
	}
	for _, c := range cases {
		got, err := dice.NewDiceSpec(c.count, c.sides)
		if c.ok {
			if err != nil || got != c.want {
				t.Errorf("%dd%d: want %v, got %v, %v", c.count, c.sides, c.want, got, err)
			}
			continue
		}
		var de *dice.DiceError
		if !errors.As(err, &de) || de.Kind != c.err {
			t.Errorf("%dd%d: want %v error, got %v, %v", c.count, c.sides, c.err, got, err)
		}
	}
}

func TestDiceOf(t *testing.T) {
	d, err := dice.DiceOf(dice.Dice(3, 6))
	if err != nil || d != (dice.DiceSpec{Count: 3, Sides: 6}) {
		t.Errorf("wrong spec: %v, %v", d, err)
	}
	if got := d.String(); got != "3d6" {
		t.Errorf("wrong string: %q", got)
	}
	_, err = dice.DiceOf(dice.Dice(70000, 6))
	var de *dice.DiceError
	if !errors.As(err, &de) || de.Kind != dice.DiceOverflow {
		t.Errorf("wrong error for large dice: %v", err)
	}
	for _, e := range []*dice.Expr{nil, dice.Int(3), dice.Label(dice.Dice(1, 6), "x"), dice.Neg(dice.Dice(1, 6))} {
		_, err := dice.DiceOf(e)
		if !errors.As(err, &de) || de.Kind != dice.DiceInvalid {
			t.Errorf("%v: wrong error: %v", e, err)
		}
	}
}

func TestRollSpec(t *testing.T) {
	r := dice.NewRoller(dicetest.NewSequence(0, 1, 2, 3))
	got := r.RollSpec(dice.DiceSpec{Count: 4, Sides: 3})
	want := []int64{1, 2, 3, 1}
	if got.Count != 4 || got.Sides != 3 || got.Sum != 7 || len(got.Faces) != len(want) {
		t.Fatalf("wrong roll: %+v", got)
	}
	for i, f := range want {
		if got.Faces[i] != f {
			t.Errorf("face %d: want %d, got %d", i, f, got.Faces[i])
		}
	}
}

func TestDiceTerms(t *testing.T) {
	e, err := dice.Parse("1d4 + 2 * (3d6 - 1d8[fire]) / -2d10")
	if err != nil {
		t.Fatal(err)
	}
	got := dice.DiceTerms(e)
	want := []dice.DiceSpec{{Count: 1, Sides: 4}, {Count: 3, Sides: 6}, {Count: 1, Sides: 8}, {Count: 2, Sides: 10}}
	if len(got) != len(want) {
		t.Fatalf("wrong terms: %v", got)
	}
	for i, w := range want {
		d, err := dice.DiceOf(got[i])
		if err != nil || d != w {
			t.Errorf("term %d: want %v, got %v, %v", i, w, d, err)
		}
	}
	if got := dice.DiceTerms(dice.Int(1)); len(got) != 0 {
		t.Errorf("terms in a literal: %v", got)
	}
	if got := dice.DiceCount(e); got != 7 {
		t.Errorf("wrong dice count: want 7, got %d", got)
	}
	big := dice.Add(dice.Dice(math.MaxInt32, 2), dice.Neg(dice.Dice(math.MaxInt32, 2)))
	if got := dice.DiceCount(big); got != 2*math.MaxInt32 {
		t.Errorf("wrong dice count: want %d, got %d", 2*math.MaxInt32, got)
	}
}
