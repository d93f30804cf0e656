package pratt

// ShuntingYard parses a value from in exactly as Precedence does, but keeps
// pending operators and operands on explicit stacks so that the Go call stack
// does not grow with the nesting of the input.
func ShuntingYard[K, T any](in Input[K], min Power, g Grammar[K, T]) (T, error) {
	var zero T
	limit := g.limit()
	// Each entry of ops is one pending level of the equivalent recursive
	// parse. vals holds the left operands of pending infix operators.
	ops := make([]pending[T], 1, 16)
	ops[0] = pending[T]{min: min, last: noAssoc}
	var vals []T
	for {
		// Operand position: unwind prefix operators and groups.
		for {
			k, ok := in.Peek()
			if !ok {
				break
			}
			if op, ok := g.prefix(k); ok {
				in.Next()
				ops = append(ops, pending[T]{min: op.Power, last: noAssoc, kind: pendingPrefix, prefix: op})
			} else if g.open(k) {
				in.Next()
				ops = append(ops, pending[T]{min: 0, last: noAssoc, kind: pendingGroup})
			} else {
				break
			}
			if len(ops)-1 > limit {
				return zero, &LimitError{Limit: limit}
			}
		}
		x, err := g.Operand(in)
		if err != nil {
			return zero, err
		}
		// Operator position: reduce until an infix operator starts a new
		// right operand.
	reduce:
		for {
			top := &ops[len(ops)-1]
			k, ok := in.Peek()
			if ok {
				if op, ok := g.postfix(k); ok && op.Power >= top.min {
					in.Next()
					x, err = op.Apply(x)
					if err != nil {
						return zero, err
					}
					continue
				}
				if op, ok := g.infix(k); ok && op.Left >= top.min {
					if err := assocCheck(op, top.last); err != nil {
						return zero, err
					}
					in.Next()
					vals = append(vals, x)
					ops = append(ops, pending[T]{min: op.Right, last: noAssoc, kind: pendingInfix, infix: op})
					if len(ops)-1 > limit {
						return zero, &LimitError{Limit: limit}
					}
					break reduce
				}
			}
			// The current level is complete.
			done := ops[len(ops)-1]
			ops = ops[:len(ops)-1]
			switch done.kind {
			case pendingRoot:
				return x, nil
			case pendingPrefix:
				x, err = done.prefix.Apply(x)
			case pendingInfix:
				lhs := vals[len(vals)-1]
				vals = vals[:len(vals)-1]
				x, err = done.infix.Apply(lhs, x)
				ops[len(ops)-1].last = assocNext(done.infix)
			case pendingGroup:
				if k, ok := in.Peek(); !ok || !g.close(k) {
					return zero, ErrUnclosed
				}
				in.Next()
			}
			if err != nil {
				return zero, err
			}
		}
	}
}

type pendingKind int8

const (
	pendingRoot pendingKind = iota
	pendingPrefix
	pendingInfix
	pendingGroup
)

// pending is a level of parsing awaiting the completion of its operand.
type pending[T any] struct {
	// min is the threshold for operators continuing the level.
	min Power
	// last is the power of the last non-associative operator applied at this
	// level, or noAssoc.
	last   Power
	kind   pendingKind
	prefix Prefix[T]
	infix  Infix[T]
}
