package dice

import "strconv"

// Kind is the variant of an expression node.
type Kind uint8

const (
	kindNone Kind = iota
	// KindInt is an integer literal.
	KindInt
	// KindDice is a dice term: roll Sides-sided dice Count times and sum.
	KindDice
	// KindNeg is arithmetic negation of its operand.
	KindNeg
	// KindLabel attaches text to its operand without changing its value.
	KindLabel
	// KindAdd, KindSub, KindMul, and KindDiv are binary arithmetic.
	KindAdd
	KindSub
	KindMul
	KindDiv

	kindCount
)

var kindNames = [kindCount]string{
	kindNone:  "None",
	KindInt:   "Int",
	KindDice:  "Dice",
	KindNeg:   "Neg",
	KindLabel: "Label",
	KindAdd:   "Add",
	KindSub:   "Sub",
	KindMul:   "Mul",
	KindDiv:   "Div",
}

func (k Kind) String() string {
	if k >= kindCount {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// arity is the number of children of a node of kind k.
func (k Kind) arity() int {
	switch k {
	case KindNeg, KindLabel:
		return 1
	case KindAdd, KindSub, KindMul, KindDiv:
		return 2
	default:
		return 0
	}
}

// Expr is a parsed dice expression. An Expr is immutable once built, and each
// node is the only owner of its children.
//
// The zero Expr is not a valid expression. Use the constructor functions, an
// Arena, or Parse to create expressions.
type Expr struct {
	kind Kind
	// x is the literal value or the dice count; y is the dice sides.
	x, y int32
	// text is the label text.
	text string
	// l is the left operand of binary nodes and the operand of unary ones.
	l, r *Expr
}

// Int creates an integer literal.
func Int(x int32) *Expr {
	return setInt(new(Expr), x)
}

// Dice creates a dice term. Panics if count or sides is not positive.
func Dice(count, sides int32) *Expr {
	return setDice(new(Expr), count, sides)
}

// Neg creates the negation of x.
func Neg(x *Expr) *Expr {
	return setUnary(new(Expr), KindNeg, x)
}

// Label attaches text to x. The text is trimmed of surrounding whitespace. If
// the result is empty, or if x is already labeled, then the result is x
// itself. Panics if text holds a character that label syntax excludes:
// brackets, backslashes, and anything outside ASCII.
func Label(x *Expr, text string) *Expr {
	return heap.label(x, text)
}

// Add creates the sum of l and r.
func Add(l, r *Expr) *Expr { return setBinary(new(Expr), KindAdd, l, r) }

// Sub creates the difference of l and r.
func Sub(l, r *Expr) *Expr { return setBinary(new(Expr), KindSub, l, r) }

// Mul creates the product of l and r.
func Mul(l, r *Expr) *Expr { return setBinary(new(Expr), KindMul, l, r) }

// Div creates the truncated quotient of l and r.
func Div(l, r *Expr) *Expr { return setBinary(new(Expr), KindDiv, l, r) }

func setInt(e *Expr, x int32) *Expr {
	*e = Expr{kind: KindInt, x: x}
	return e
}

func setDice(e *Expr, count, sides int32) *Expr {
	if count <= 0 || sides <= 0 {
		panic("dice: non-positive dice term " + strconv.Itoa(int(count)) + "d" + strconv.Itoa(int(sides)))
	}
	*e = Expr{kind: KindDice, x: count, y: sides}
	return e
}

func setUnary(e *Expr, k Kind, x *Expr) *Expr {
	if x == nil {
		panic("dice: nil operand to " + k.String())
	}
	*e = Expr{kind: k, l: x}
	return e
}

func setLabel(e *Expr, x *Expr, text string) *Expr {
	setUnary(e, KindLabel, x)
	e.text = text
	return e
}

func setBinary(e *Expr, k Kind, l, r *Expr) *Expr {
	if l == nil || r == nil {
		panic("dice: nil operand to " + k.String())
	}
	*e = Expr{kind: k, l: l, r: r}
	return e
}

// Kind returns the variant of the expression's root node.
func (e *Expr) Kind() Kind {
	return e.kind
}

// Value returns the value of an integer literal. It is zero for other kinds.
func (e *Expr) Value() int32 {
	if e.kind != KindInt {
		return 0
	}
	return e.x
}

// Dice returns the count and sides of a dice term. They are zero for other
// kinds.
func (e *Expr) Dice() (count, sides int32) {
	if e.kind != KindDice {
		return 0, 0
	}
	return e.x, e.y
}

// Text returns the text of a label. It is empty for other kinds.
func (e *Expr) Text() string {
	return e.text
}

// Operand returns the operand of a negation or label, or nil for other kinds.
func (e *Expr) Operand() *Expr {
	if e.kind.arity() != 1 {
		return nil
	}
	return e.l
}

// Left returns the left operand of a binary expression, or nil for other
// kinds.
func (e *Expr) Left() *Expr {
	if e.kind.arity() != 2 {
		return nil
	}
	return e.l
}

// Right returns the right operand of a binary expression, or nil for other
// kinds.
func (e *Expr) Right() *Expr {
	if e.kind.arity() != 2 {
		return nil
	}
	return e.r
}

// Equal reports whether two expressions have the same structure and payloads.
func (e *Expr) Equal(f *Expr) bool {
	type pair struct{ a, b *Expr }
	stack := []pair{{e, f}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a == p.b {
			continue
		}
		if p.a == nil || p.b == nil {
			return false
		}
		if p.a.kind != p.b.kind || p.a.x != p.b.x || p.a.y != p.b.y || p.a.text != p.b.text {
			return false
		}
		switch p.a.kind.arity() {
		case 2:
			stack = append(stack, pair{p.a.r, p.b.r})
			fallthrough
		case 1:
			stack = append(stack, pair{p.a.l, p.b.l})
		}
	}
	return true
}

// String renders the expression with minimal parentheses. It is the same as
// Render.
func (e *Expr) String() string {
	return Render(e)
}
