package dice

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/dice/pratt"
)

const (
	// MaxLiteralDigits is the default maximum number of digits in a number.
	MaxLiteralDigits = 10
	// MaxNestingDepth is the default maximum depth of parentheses and
	// operators.
	MaxNestingDepth = 512
)

// Parse parses a dice expression. The given options are applied in order.
//
// The input is checked against the grammar of dice expressions before any
// expression is built, so syntax errors are reported as *SyntaxError. Other
// errors from invalid input implement InputError.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := newParsectx(opts)
	if err := p.checkNesting(src); err != nil {
		return nil, err
	}
	eq, err := grammar().ParseString("", src)
	if err != nil {
		return nil, syntaxError(err)
	}
	in := tokens{toks: eq.flatten(nil), eof: utf8.RuneCountInString(src) + 1}
	return p.build(src, &in)
}

// ParseTokens parses a dice expression directly from its tokens, without
// first checking it against the grammar. It accepts the same inputs and builds
// the same expressions as Parse, but errors in the structure of the input are
// reported as errors from building rather than as *SyntaxError.
func ParseTokens(src string, opts ...ParseOption) (*Expr, error) {
	p := newParsectx(opts)
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	in := tokens{toks: toks, eof: utf8.RuneCountInString(src) + 1}
	return p.build(src, &in)
}

// checkNesting checks that parentheses in src nest no deeper than the limit,
// so that the grammar never recurses too deeply.
func (p *parsectx) checkNesting(src string) error {
	depth, col := 0, 0
	label := false
	for _, r := range src {
		col++
		switch {
		case label:
			label = r != ']'
		case r == '[':
			label = true
		case r == '(':
			depth++
			if depth > p.nesting {
				return &NestingError{Col: col, Limit: p.nesting}
			}
		case r == ')':
			depth--
		}
	}
	return nil
}

// build runs the engine over tokens to produce an expression.
func (p *parsectx) build(src string, in *tokens) (*Expr, error) {
	g := p.grammar(in)
	var e *Expr
	var err error
	if p.shunt {
		e, err = pratt.ShuntingYard[lexToken, *Expr](in, 0, g)
	} else {
		e, err = pratt.Precedence[lexToken, *Expr](in, 0, g)
	}
	if err != nil {
		return nil, p.engineError(in, err)
	}
	if tok, ok := in.Peek(); ok {
		if tok.kind == tokenClose {
			return nil, &BracketError{Col: tok.pos, Right: tok.text}
		}
		return nil, &TokenError{Col: tok.pos, Token: tok.text}
	}
	if p.log.Enabled(context.Background(), slog.LevelDebug) {
		p.log.Debug("parsed dice expression", slog.String("src", src), slog.Int("nodes", Size(e)), slog.Bool("shunting", p.shunt))
	}
	return e, nil
}

// engineError converts errors from the engine itself to input errors.
func (p *parsectx) engineError(in *tokens, err error) error {
	var lim *pratt.LimitError
	switch {
	case errors.Is(err, pratt.ErrUnclosed):
		tok, ok := in.Peek()
		if !ok {
			return &BracketError{Col: in.eof, Left: "("}
		}
		return &TokenError{Col: tok.pos, Token: tok.text}
	case errors.As(err, &lim):
		col := in.eof
		if in.i > 0 {
			col = in.toks[in.i-1].pos
		}
		return &NestingError{Col: col, Limit: lim.Limit}
	}
	return err
}

// grammar specializes the engine to dice expressions.
func (p *parsectx) grammar(in *tokens) pratt.Grammar[lexToken, *Expr] {
	al := allocator{p.arena}
	ops := operators()
	return pratt.Grammar[lexToken, *Expr]{
		Operand: func(pratt.Input[lexToken]) (*Expr, error) {
			return p.operand(in, al)
		},
		Prefix: func(tok lexToken) (pratt.Prefix[*Expr], bool) {
			if tok.kind != tokenOp {
				return pratt.Prefix[*Expr]{}, false
			}
			op, ok := ops.prefix[tok.text]
			if !ok {
				return pratt.Prefix[*Expr]{}, false
			}
			return pratt.Prefix[*Expr]{Power: op.power, Apply: unop(al, op.kind)}, true
		},
		Postfix: func(tok lexToken) (pratt.Postfix[*Expr], bool) {
			if tok.kind != tokenLabel {
				return pratt.Postfix[*Expr]{}, false
			}
			text := strings.TrimSuffix(strings.TrimPrefix(tok.text, "["), "]")
			apply := func(x *Expr) (*Expr, error) { return al.label(x, text), nil }
			return pratt.Postfix[*Expr]{Power: ops.postfix.power, Apply: apply}, true
		},
		Infix: func(tok lexToken) (pratt.Infix[*Expr], bool) {
			if tok.kind != tokenOp {
				return pratt.Infix[*Expr]{}, false
			}
			op, ok := ops.infix[tok.text]
			if !ok {
				return pratt.Infix[*Expr]{}, false
			}
			return pratt.Left(op.power, binop(al, op.kind)), true
		},
		Open:  func(tok lexToken) bool { return tok.kind == tokenOpen },
		Close: func(tok lexToken) bool { return tok.kind == tokenClose },
		Limit: p.nesting,
	}
}

// unop gets the combinator for a prefix operator building nodes of kind k.
// Unary plus has kind kindNone and builds nothing.
func unop(al allocator, k Kind) func(*Expr) (*Expr, error) {
	if k == kindNone {
		return func(x *Expr) (*Expr, error) { return x, nil }
	}
	return func(x *Expr) (*Expr, error) { return setUnary(al.node(), k, x), nil }
}

// binop gets the combinator for an infix operator building nodes of kind k.
func binop(al allocator, k Kind) func(l, r *Expr) (*Expr, error) {
	return func(l, r *Expr) (*Expr, error) { return setBinary(al.node(), k, l, r), nil }
}

// operand parses a number or dice term.
func (p *parsectx) operand(in *tokens, al allocator) (*Expr, error) {
	tok, ok := in.Peek()
	if !ok {
		return nil, &EmptyExpressionError{Col: in.eof}
	}
	switch tok.kind {
	case tokenInt:
		x, err := p.integer(tok.text, tok.pos)
		if err != nil {
			return nil, err
		}
		in.Next()
		return setInt(al.node(), x), nil
	case tokenDice:
		k := strings.IndexAny(tok.text, "dD")
		c, err := p.integer(tok.text[:k], tok.pos)
		if err != nil {
			return nil, err
		}
		s, err := p.integer(tok.text[k+1:], tok.pos+k+1)
		if err != nil {
			return nil, err
		}
		if c <= 0 {
			return nil, &DiceRangeError{Col: tok.pos, Text: tok.text, Value: int64(c)}
		}
		if s <= 0 {
			return nil, &DiceRangeError{Col: tok.pos, Text: tok.text, Value: int64(s)}
		}
		in.Next()
		return setDice(al.node(), c, s), nil
	case tokenOp:
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
	case tokenClose:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	default:
		return nil, &TokenError{Col: tok.pos, Token: tok.text}
	}
}

// integer parses the digits of a number.
func (p *parsectx) integer(s string, col int) (int32, error) {
	if len(s) > p.digits {
		return 0, &LiteralTooLongError{Col: col, Text: s, Max: p.digits}
	}
	x, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, &IntegerError{Col: col, Text: s, Err: err}
	}
	return int32(x), nil
}
