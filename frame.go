package dice

// Frame is one layer of an expression with its children replaced by values of
// type A. Folding an expression into a value of type A computes each node's
// value from a Frame[A] holding the values of its children.
type Frame[A any] struct {
	Kind Kind
	// Value is the value of an integer literal.
	Value int32
	// Count and Sides describe a dice term.
	Count, Sides int32
	// Text is the text of a label.
	Text string
	// L is the left operand of a binary node or the operand of a negation or
	// label. R is the right operand of a binary node.
	L, R A
}

// Frame unrolls one layer of e.
func (e *Expr) Frame() Frame[*Expr] {
	f := Frame[*Expr]{Kind: e.kind, Text: e.text}
	switch e.kind {
	case KindInt:
		f.Value = e.x
	case KindDice:
		f.Count, f.Sides = e.x, e.y
	case KindNeg, KindLabel:
		f.L = e.l
	default:
		f.L, f.R = e.l, e.r
	}
	return f
}

// FromFrame rolls up one layer of an expression. Labels follow the same rules
// as Label.
func FromFrame(f Frame[*Expr]) *Expr {
	return heap.frame(f)
}

// MapFrame applies fn to each child of f, left to right.
func MapFrame[A, B any](f Frame[A], fn func(A) B) Frame[B] {
	r := Frame[B]{Kind: f.Kind, Value: f.Value, Count: f.Count, Sides: f.Sides, Text: f.Text}
	switch f.Kind.arity() {
	case 1:
		r.L = fn(f.L)
	case 2:
		r.L = fn(f.L)
		r.R = fn(f.R)
	}
	return r
}

// Collapse folds e bottom-up. fn is called once per node, after it has been
// called on all of the node's descendants, visiting left subtrees before right
// ones. Collapse uses an explicit stack, so it is safe for arbitrarily deep
// expressions.
func Collapse[A any](e *Expr, fn func(Frame[A]) A) A {
	r, _ := TryCollapse(e, func(f Frame[A]) (A, error) { return fn(f), nil })
	return r
}

// TryCollapse is like Collapse, but stops at the first error from fn.
func TryCollapse[A any](e *Expr, fn func(Frame[A]) (A, error)) (A, error) {
	type work struct {
		e    *Expr
		done bool
	}
	stack := []work{{e: e}}
	var vals []A
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := w.e.kind.arity()
		if !w.done && n > 0 {
			stack = append(stack, work{e: w.e, done: true})
			if n == 2 {
				stack = append(stack, work{e: w.e.r})
			}
			stack = append(stack, work{e: w.e.l})
			continue
		}
		f := Frame[A]{Kind: w.e.kind, Text: w.e.text}
		switch w.e.kind {
		case KindInt:
			f.Value = w.e.x
		case KindDice:
			f.Count, f.Sides = w.e.x, w.e.y
		}
		switch n {
		case 1:
			f.L = vals[len(vals)-1]
			vals = vals[:len(vals)-1]
		case 2:
			f.L, f.R = vals[len(vals)-2], vals[len(vals)-1]
			vals = vals[:len(vals)-2]
		}
		v, err := fn(f)
		if err != nil {
			var zero A
			return zero, err
		}
		vals = append(vals, v)
	}
	return vals[0], nil
}

// Expand unfolds an expression top-down from a seed. fn describes the layer
// for each seed, with the seeds of its children in place of subexpressions.
// Expand uses an explicit stack, so it is safe for arbitrarily deep
// expressions.
func Expand[S any](seed S, fn func(S) Frame[S]) *Expr {
	return expand(seed, fn, heap.frame)
}

func expand[S any](seed S, fn func(S) Frame[S], build func(Frame[*Expr]) *Expr) *Expr {
	// Generate frames in preorder, then build them in reverse so that each
	// node's children exist before it does.
	var order []Frame[S]
	stack := []S{seed}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f := fn(s)
		order = append(order, f)
		switch f.Kind.arity() {
		case 1:
			stack = append(stack, f.L)
		case 2:
			stack = append(stack, f.R, f.L)
		}
	}
	var vals []*Expr
	for i := len(order) - 1; i >= 0; i-- {
		f := MapFrame(order[i], func(S) *Expr { return nil })
		// In reverse preorder, the left child was built most recently.
		switch f.Kind.arity() {
		case 1:
			f.L = vals[len(vals)-1]
			vals = vals[:len(vals)-1]
		case 2:
			f.L, f.R = vals[len(vals)-1], vals[len(vals)-2]
			vals = vals[:len(vals)-2]
		}
		vals = append(vals, build(f))
	}
	return vals[0]
}

// Size returns the number of nodes in e.
func Size(e *Expr) int {
	return Collapse(e, func(f Frame[int]) int { return 1 + f.L + f.R })
}

// Depth returns the number of nodes on the longest path from the root of e to
// a leaf.
func Depth(e *Expr) int {
	return Collapse(e, func(f Frame[int]) int { return 1 + max(f.L, f.R) })
}
