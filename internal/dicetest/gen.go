package dicetest

import (
	"math"
	"math/rand/v2"

	"github.com/zephyrtronium/dice"
)

// Gen generates random expressions.
type Gen struct {
	// Rand is the source of randomness for choosing expressions.
	Rand *rand.Rand
	// MaxDepth bounds the depth of generated expressions.
	MaxDepth int
	// Wide allows integer literals across the full range of int32 except its
	// minimum, which does not parse. Otherwise literals are small.
	Wide bool
	// NoDivide excludes division.
	NoDivide bool
}

// NewGen creates a generator with a fixed seed.
func NewGen(seed uint64, depth int) *Gen {
	return &Gen{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), MaxDepth: depth}
}

var labels = []string{"dmg", "fire", "to hit", "x", "lbl1", "a-b_c"}

// Expr generates an expression. Leaves are always non-negative literals or
// dice terms, as a parser would produce.
func (g *Gen) Expr() *dice.Expr {
	return dice.Expand(g.MaxDepth, func(depth int) dice.Frame[int] {
		k := g.kind(depth)
		f := dice.Frame[int]{Kind: k, L: depth - 1, R: depth - 1}
		switch k {
		case dice.KindInt:
			if g.Wide {
				f.Value = g.Rand.Int32N(math.MaxInt32)
			} else {
				f.Value = g.Rand.Int32N(100)
			}
		case dice.KindDice:
			f.Count = 1 + g.Rand.Int32N(10)
			f.Sides = 1 + g.Rand.Int32N(20)
		case dice.KindLabel:
			f.Text = labels[g.Rand.IntN(len(labels))]
		}
		return f
	})
}

func (g *Gen) kind(depth int) dice.Kind {
	if depth <= 1 {
		if g.Rand.IntN(3) == 0 {
			return dice.KindDice
		}
		return dice.KindInt
	}
	kinds := []dice.Kind{dice.KindInt, dice.KindDice, dice.KindNeg, dice.KindLabel, dice.KindAdd, dice.KindSub, dice.KindMul, dice.KindDiv}
	if g.NoDivide {
		kinds = kinds[:len(kinds)-1]
	}
	return kinds[g.Rand.IntN(len(kinds))]
}
