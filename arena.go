package dice

import (
	"strconv"
	"strings"
)

// arenaBlock is the number of nodes in each block of an Arena.
const arenaBlock = 256

// Arena allocates expression nodes in contiguous blocks. Nodes allocated from
// an arena share its lifetime: they are released together once neither the
// arena nor any of its expressions are reachable. An Arena is not safe for
// concurrent use.
//
// The zero Arena is ready to use.
type Arena struct {
	// cur is the block currently being filled.
	cur []Expr
	n   int
}

// NewArena creates an arena with room for at least n nodes before it needs to
// allocate another block.
func NewArena(n int) *Arena {
	if n < arenaBlock {
		n = arenaBlock
	}
	return &Arena{cur: make([]Expr, 0, n)}
}

func (a *Arena) alloc() *Expr {
	if len(a.cur) == cap(a.cur) {
		// Nodes in the old block keep it alive.
		a.cur = make([]Expr, 0, arenaBlock)
	}
	a.cur = a.cur[:len(a.cur)+1]
	a.n++
	return &a.cur[len(a.cur)-1]
}

// Len returns the number of nodes allocated from the arena.
func (a *Arena) Len() int {
	return a.n
}

// Int creates an integer literal in the arena.
func (a *Arena) Int(x int32) *Expr { return setInt(a.alloc(), x) }

// Dice creates a dice term in the arena. Panics if count or sides is not
// positive.
func (a *Arena) Dice(count, sides int32) *Expr { return setDice(a.alloc(), count, sides) }

// Neg creates a negation in the arena.
func (a *Arena) Neg(x *Expr) *Expr { return setUnary(a.alloc(), KindNeg, x) }

// Label labels x in the arena, following the same rules as the package-level
// Label.
func (a *Arena) Label(x *Expr, text string) *Expr { return allocator{a}.label(x, text) }

// Add creates a sum in the arena.
func (a *Arena) Add(l, r *Expr) *Expr { return setBinary(a.alloc(), KindAdd, l, r) }

// Sub creates a difference in the arena.
func (a *Arena) Sub(l, r *Expr) *Expr { return setBinary(a.alloc(), KindSub, l, r) }

// Mul creates a product in the arena.
func (a *Arena) Mul(l, r *Expr) *Expr { return setBinary(a.alloc(), KindMul, l, r) }

// Div creates a quotient in the arena.
func (a *Arena) Div(l, r *Expr) *Expr { return setBinary(a.alloc(), KindDiv, l, r) }

// allocator creates nodes in an arena, or on the heap if the arena is nil.
type allocator struct {
	a *Arena
}

// heap is the allocator for ordinary nodes.
var heap allocator

func (al allocator) node() *Expr {
	if al.a == nil {
		return new(Expr)
	}
	return al.a.alloc()
}

func (al allocator) label(x *Expr, text string) *Expr {
	if x == nil {
		panic("dice: nil operand to Label")
	}
	if i := strings.IndexFunc(text, badLabelRune); i >= 0 {
		panic("dice: label text " + strconv.Quote(text) + " contains " + strconv.QuoteRune([]rune(text[i:])[0]))
	}
	text = strings.TrimSpace(text)
	if text == "" || x.kind == KindLabel {
		return x
	}
	return setLabel(al.node(), x, text)
}

// badLabelRune reports whether r cannot appear between the brackets of a
// label.
func badLabelRune(r rune) bool {
	return r == '[' || r == ']' || r == '\\' || r >= 0x80
}

// frame rolls up one layer of an expression.
func (al allocator) frame(f Frame[*Expr]) *Expr {
	switch f.Kind {
	case KindInt:
		return setInt(al.node(), f.Value)
	case KindDice:
		return setDice(al.node(), f.Count, f.Sides)
	case KindNeg:
		return setUnary(al.node(), KindNeg, f.L)
	case KindLabel:
		return al.label(f.L, f.Text)
	case KindAdd, KindSub, KindMul, KindDiv:
		return setBinary(al.node(), f.Kind, f.L, f.R)
	default:
		panic("dice: invalid frame kind " + f.Kind.String())
	}
}
