package dice

import (
	"math"
	"strconv"
)

// DiceSpec is a dice term narrowed to 16 bits, for uses with smaller integer
// domains than expressions.
type DiceSpec struct {
	Count uint16
	Sides uint16
}

func (d DiceSpec) String() string {
	return strconv.Itoa(int(d.Count)) + "d" + strconv.Itoa(int(d.Sides))
}

// DiceErrorKind is the reason a DiceSpec could not be created.
type DiceErrorKind int8

const (
	// DiceInvalid indicates an expression that is not a dice term.
	DiceInvalid DiceErrorKind = iota
	// DiceOverflow indicates a count or number of sides that does not fit.
	DiceOverflow
	// DiceZero indicates a count or number of sides of zero.
	DiceZero
)

func (k DiceErrorKind) String() string {
	switch k {
	case DiceInvalid:
		return "invalid"
	case DiceOverflow:
		return "overflow"
	case DiceZero:
		return "zero"
	default:
		return "DiceErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// DiceError is an error converting to a DiceSpec.
type DiceError struct {
	Kind DiceErrorKind
}

func (err *DiceError) Error() string {
	switch err.Kind {
	case DiceInvalid:
		return "expression is not a dice term"
	case DiceOverflow:
		return "dice term does not fit in 16 bits"
	case DiceZero:
		return "dice term has zero count or sides"
	default:
		return "invalid dice term: " + err.Kind.String()
	}
}

// NewDiceSpec creates a DiceSpec from a count and number of sides.
func NewDiceSpec(count, sides int64) (DiceSpec, error) {
	// Range errors take priority over zeros.
	if count < 0 || sides < 0 || count > math.MaxUint16 || sides > math.MaxUint16 {
		return DiceSpec{}, &DiceError{Kind: DiceOverflow}
	}
	if count == 0 || sides == 0 {
		return DiceSpec{}, &DiceError{Kind: DiceZero}
	}
	return DiceSpec{Count: uint16(count), Sides: uint16(sides)}, nil
}

// DiceOf converts a dice term to a DiceSpec.
func DiceOf(e *Expr) (DiceSpec, error) {
	if e == nil || e.kind != KindDice {
		return DiceSpec{}, &DiceError{Kind: DiceInvalid}
	}
	return NewDiceSpec(int64(e.x), int64(e.y))
}

// Roll is the outcome of rolling one dice term.
type Roll struct {
	Count, Sides int32
	// Faces holds each die in the order rolled.
	Faces []int64
	Sum   int64
}

// RollSpec rolls a DiceSpec, keeping each face.
func (r *Roller) RollSpec(d DiceSpec) Roll {
	return r.rollFaces(int32(d.Count), int32(d.Sides))
}

func (r *Roller) rollFaces(count, sides int32) Roll {
	if sides <= 0 {
		panic("dice: roll with non-positive sides " + strconv.Itoa(int(sides)))
	}
	t := Roll{Count: count, Sides: sides, Faces: make([]int64, 0, max(count, 0))}
	for i := int32(0); i < count; i++ {
		f := r.src.IntRange(1, int64(sides))
		t.Faces = append(t.Faces, f)
		t.Sum += f
	}
	return t
}

// Outcome is the result of evaluating an expression along with every die
// rolled to reach it.
type Outcome struct {
	Total int64
	// Rolls holds the dice terms in the order they were evaluated, which is
	// left to right.
	Rolls []Roll
}

// Trace evaluates an expression like TryEval, recording each roll. Large
// dice terms record every face, so callers evaluating untrusted input should
// bound the counts of dice terms first.
func (r *Roller) Trace(e *Expr) (Outcome, error) {
	var o Outcome
	v, err := TryCollapse(e, func(f Frame[int64]) (int64, error) {
		if f.Kind != KindDice {
			return r.tryFrame(f)
		}
		t := r.rollFaces(f.Count, f.Sides)
		o.Rolls = append(o.Rolls, t)
		return t.Sum, nil
	})
	if err != nil {
		return Outcome{}, err
	}
	o.Total = v
	return o, nil
}

// DiceCount returns the total number of dice that evaluating e rolls.
func DiceCount(e *Expr) int64 {
	var n int64
	for _, d := range DiceTerms(e) {
		n += int64(d.x)
	}
	return n
}

// DiceTerms returns the dice terms of e from left to right.
func DiceTerms(e *Expr) []*Expr {
	var r []*Expr
	stack := []*Expr{e}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n.kind.arity() {
		case 0:
			if n.kind == KindDice {
				r = append(r, n)
			}
		case 1:
			stack = append(stack, n.l)
		case 2:
			stack = append(stack, n.r, n.l)
		}
	}
	return r
}
