package dice

import (
	"math"
	"math/rand/v2"
	"strconv"
)

// Source is a source of random integers for rolling dice.
type Source interface {
	// IntRange returns a uniformly distributed integer in [lo, hi]. It is
	// only called with lo <= hi.
	IntRange(lo, hi int64) int64
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) IntRange(lo, hi int64) int64 {
	return lo + rand.Int64N(hi-lo+1)
}

// RandSource adapts a math/rand/v2 generator to a Source, for reproducible
// rolls from a seed.
func RandSource(r *rand.Rand) Source {
	return randSource{r}
}

type randSource struct {
	r *rand.Rand
}

func (s randSource) IntRange(lo, hi int64) int64 {
	return lo + s.r.Int64N(hi-lo+1)
}

// Roller evaluates expressions by rolling dice from a random source. A Roller
// is not safe for concurrent use unless its source is.
type Roller struct {
	src Source
}

// NewRoller creates a roller drawing from src. If src is nil, the roller uses
// the top-level generator of math/rand/v2.
func NewRoller(src Source) *Roller {
	if src == nil {
		src = globalSource{}
	}
	return &Roller{src: src}
}

// Roll rolls count dice with the given number of sides and returns the sum.
// The sum cannot overflow because both arguments fit in 32 bits. Each die
// draws from the source separately, so the time taken grows with count; use
// DiceCount to bound untrusted expressions before evaluating them. Panics if
// sides is not positive.
func (r *Roller) Roll(count, sides int32) int64 {
	if sides <= 0 {
		panic("dice: roll with non-positive sides " + strconv.Itoa(int(sides)))
	}
	var s int64
	for i := int32(0); i < count; i++ {
		s += r.src.IntRange(1, int64(sides))
	}
	return s
}

// TryEval evaluates an expression. Arithmetic that overflows 64 bits and
// division by zero result in an error implementing ArithmeticError.
func (r *Roller) TryEval(e *Expr) (int64, error) {
	return TryCollapse(e, r.tryFrame)
}

func (r *Roller) tryFrame(f Frame[int64]) (int64, error) {
	switch f.Kind {
	case KindInt:
		return int64(f.Value), nil
	case KindDice:
		return r.Roll(f.Count, f.Sides), nil
	case KindNeg:
		if f.L == math.MinInt64 {
			return 0, &OverflowError{Op: KindNeg, Rhs: f.L, Unary: true}
		}
		return -f.L, nil
	case KindLabel:
		return f.L, nil
	case KindAdd:
		s := f.L + f.R
		if (s > f.L) != (f.R > 0) {
			return 0, &OverflowError{Lhs: f.L, Op: KindAdd, Rhs: f.R}
		}
		return s, nil
	case KindSub:
		s := f.L - f.R
		if (s < f.L) != (f.R > 0) {
			return 0, &OverflowError{Lhs: f.L, Op: KindSub, Rhs: f.R}
		}
		return s, nil
	case KindMul:
		if f.L == 0 || f.R == 0 {
			return 0, nil
		}
		p := f.L * f.R
		if p/f.R != f.L || (f.L == -1 && f.R == math.MinInt64) || (f.R == -1 && f.L == math.MinInt64) {
			return 0, &OverflowError{Lhs: f.L, Op: KindMul, Rhs: f.R}
		}
		return p, nil
	case KindDiv:
		if f.R == 0 {
			return 0, &DivideByZeroError{Numerator: f.L}
		}
		if f.R == -1 && f.L == math.MinInt64 {
			return 0, &OverflowError{Lhs: f.L, Op: KindDiv, Rhs: f.R}
		}
		return f.L / f.R, nil
	default:
		panic("dice: invalid expression kind " + f.Kind.String())
	}
}

// Eval evaluates an expression without checking arithmetic. Overflow wraps
// around, and division by zero panics with a runtime error. Use TryEval to
// handle those cases gracefully.
func (r *Roller) Eval(e *Expr) int64 {
	return Collapse(e, r.frame)
}

func (r *Roller) frame(f Frame[int64]) int64 {
	switch f.Kind {
	case KindInt:
		return int64(f.Value)
	case KindDice:
		return r.Roll(f.Count, f.Sides)
	case KindNeg:
		return -f.L
	case KindLabel:
		return f.L
	case KindAdd:
		return f.L + f.R
	case KindSub:
		return f.L - f.R
	case KindMul:
		return f.L * f.R
	case KindDiv:
		return f.L / f.R
	default:
		panic("dice: invalid expression kind " + f.Kind.String())
	}
}

// TryEval is a shortcut to evaluate an expression with a new Roller.
func TryEval(e *Expr, src Source) (int64, error) {
	return NewRoller(src).TryEval(e)
}

// Eval is a shortcut to evaluate an expression with a new Roller without
// checking arithmetic.
func Eval(e *Expr, src Source) int64 {
	return NewRoller(src).Eval(e)
}

// ArithmeticError is an error from evaluating an expression.
type ArithmeticError interface {
	error
	arithmetic()
}

// OverflowError is an error indicating arithmetic that overflows 64 bits.
type OverflowError struct {
	// Lhs is the left operand. It is zero for negation.
	Lhs int64
	// Op is the operation which overflowed.
	Op Kind
	// Rhs is the right operand, or the operand of negation.
	Rhs int64
	// Unary is true for negation.
	Unary bool
}

func (err *OverflowError) Error() string {
	if err.Unary {
		return "overflow performing " + err.Op.symbol() + strconv.FormatInt(err.Rhs, 10)
	}
	return "overflow performing " + strconv.FormatInt(err.Lhs, 10) + " " + err.Op.symbol() + " " + strconv.FormatInt(err.Rhs, 10)
}

func (*OverflowError) arithmetic() {}

// DivideByZeroError is an error indicating division by zero.
type DivideByZeroError struct {
	// Numerator is the value that was divided by zero.
	Numerator int64
}

func (err *DivideByZeroError) Error() string {
	return "tried to divide " + strconv.FormatInt(err.Numerator, 10) + " by 0"
}

func (*DivideByZeroError) arithmetic() {}

var (
	_ ArithmeticError = (*OverflowError)(nil)
	_ ArithmeticError = (*DivideByZeroError)(nil)
)
