package pratt

// Precedence parses a value from in by precedence climbing. Only operators
// binding at least as tightly as min continue the expression; parsing stops
// at the first token that neither continues it nor is required to, leaving
// that token unconsumed.
func Precedence[K, T any](in Input[K], min Power, g Grammar[K, T]) (T, error) {
	p := climber[K, T]{in: in, g: &g, limit: g.limit()}
	return p.expr(min, 0)
}

type climber[K, T any] struct {
	in    Input[K]
	g     *Grammar[K, T]
	limit int
}

// expr parses an expression whose operators bind at least as tightly as min.
func (p *climber[K, T]) expr(min Power, depth int) (T, error) {
	var zero T
	if depth > p.limit {
		return zero, &LimitError{Limit: p.limit}
	}
	lhs, err := p.lhs(depth)
	if err != nil {
		return zero, err
	}
	last := noAssoc
	for {
		k, ok := p.in.Peek()
		if !ok {
			return lhs, nil
		}
		if op, ok := p.g.postfix(k); ok && op.Power >= min {
			p.in.Next()
			lhs, err = op.Apply(lhs)
			if err != nil {
				return zero, err
			}
			continue
		}
		op, ok := p.g.infix(k)
		if !ok || op.Left < min {
			return lhs, nil
		}
		if err := assocCheck(op, last); err != nil {
			return zero, err
		}
		p.in.Next()
		rhs, err := p.expr(op.Right, depth+1)
		if err != nil {
			return zero, err
		}
		lhs, err = op.Apply(lhs, rhs)
		if err != nil {
			return zero, err
		}
		last = assocNext(op)
	}
}

// lhs parses the first operand of an expression, including any prefix
// operator or group.
func (p *climber[K, T]) lhs(depth int) (T, error) {
	var zero T
	k, ok := p.in.Peek()
	if !ok {
		return p.g.Operand(p.in)
	}
	if op, ok := p.g.prefix(k); ok {
		p.in.Next()
		x, err := p.expr(op.Power, depth+1)
		if err != nil {
			return zero, err
		}
		return op.Apply(x)
	}
	if p.g.open(k) {
		p.in.Next()
		x, err := p.expr(0, depth+1)
		if err != nil {
			return zero, err
		}
		if k, ok := p.in.Peek(); !ok || !p.g.close(k) {
			return zero, ErrUnclosed
		}
		p.in.Next()
		return x, nil
	}
	return p.g.Operand(p.in)
}
