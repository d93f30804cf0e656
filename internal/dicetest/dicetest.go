// Package dicetest provides deterministic random sources and a reference
// evaluator for testing dice expressions.
package dicetest

import (
	"math/big"

	"github.com/zephyrtronium/dice"
)

// Sequence is a dice.Source that cycles through a fixed list of values. Each
// draw maps the next value into the requested range by its remainder, so that
// the same list always produces the same rolls.
type Sequence struct {
	vals []uint64
	i    int
}

// NewSequence creates a Sequence. Panics if there are no values.
func NewSequence(vals ...uint64) *Sequence {
	if len(vals) == 0 {
		panic("dicetest: empty sequence")
	}
	return &Sequence{vals: append([]uint64(nil), vals...)}
}

// Ones returns a source that always rolls the lowest value.
func Ones() *Sequence {
	return NewSequence(0)
}

// IntRange implements dice.Source.
func (s *Sequence) IntRange(lo, hi int64) int64 {
	v := s.vals[s.i]
	s.i = (s.i + 1) % len(s.vals)
	n := uint64(hi-lo) + 1
	if n == 0 {
		// The full range of int64.
		return lo + int64(v)
	}
	return lo + int64(v%n)
}

// Reset restarts the sequence from its first value.
func (s *Sequence) Reset() {
	s.i = 0
}

// Naive evaluates an expression by direct recursion with arbitrary precision,
// reporting whether every intermediate result fits in 64 bits. ok is false
// for division by zero as well. It draws from src in the same order as
// dice.TryEval.
func Naive(e *dice.Expr, src dice.Source) (v int64, ok bool) {
	r, ok := naive(e, src, true)
	if !ok {
		return 0, false
	}
	return r.Int64(), true
}

// Exact evaluates an expression with arbitrary precision throughout. ok is
// false only for division by zero.
func Exact(e *dice.Expr, src dice.Source) (v *big.Int, ok bool) {
	return naive(e, src, false)
}

func naive(e *dice.Expr, src dice.Source, check bool) (*big.Int, bool) {
	fits := func(x *big.Int) (*big.Int, bool) {
		return x, !check || x.IsInt64()
	}
	switch e.Kind() {
	case dice.KindInt:
		return big.NewInt(int64(e.Value())), true
	case dice.KindDice:
		c, s := e.Dice()
		var t int64
		for i := int32(0); i < c; i++ {
			t += src.IntRange(1, int64(s))
		}
		return big.NewInt(t), true
	case dice.KindNeg:
		x, ok := naive(e.Operand(), src, check)
		if !ok {
			return nil, false
		}
		return fits(x.Neg(x))
	case dice.KindLabel:
		return naive(e.Operand(), src, check)
	}
	l, ok := naive(e.Left(), src, check)
	if !ok {
		return nil, false
	}
	r, ok := naive(e.Right(), src, check)
	if !ok {
		return nil, false
	}
	switch e.Kind() {
	case dice.KindAdd:
		return fits(l.Add(l, r))
	case dice.KindSub:
		return fits(l.Sub(l, r))
	case dice.KindMul:
		return fits(l.Mul(l, r))
	case dice.KindDiv:
		if r.Sign() == 0 {
			return nil, false
		}
		return fits(l.Quo(l, r))
	}
	panic("dicetest: invalid expression kind " + e.Kind().String())
}
