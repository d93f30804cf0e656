// Package pratt implements operator precedence parsing over an arbitrary token
// stream, producing values of an arbitrary type.
//
// A Grammar describes operands and the prefix, postfix, and infix operators
// recognized at each token. Precedence parses by precedence climbing, i.e.
// Pratt parsing. ShuntingYard parses the same grammars with explicit stacks
// instead of recursion. For every input, the two call the grammar's functions
// in the same order and return the same results and errors.
//
// Binding powers are ordered so that higher powers bind more tightly. An infix
// operator has a left power, compared against the current threshold to decide
// whether the operator continues the current expression, and a right power,
// which is the threshold used to parse its right operand. Left associativity
// is a right power one greater than the left power. Right associativity is
// equal powers.
package pratt

import (
	"errors"
	"strconv"
)

// Power is a binding power. Higher powers bind more tightly.
type Power int

// Input is a stream of tokens of type K.
type Input[K any] interface {
	// Peek returns the next token without consuming it. The second result is
	// false at the end of the input.
	Peek() (K, bool)
	// Next consumes the token most recently returned from Peek.
	Next()
}

// Assoc is the associativity of an infix operator.
type Assoc int8

const (
	// AssocLeft groups equal-power operators to the left: a-b-c is (a-b)-c.
	AssocLeft Assoc = iota
	// AssocRight groups equal-power operators to the right: a^b^c is a^(b^c).
	AssocRight
	// AssocNone rejects two operators of the same power at the same level.
	AssocNone
)

// Prefix is a prefix operator descriptor.
type Prefix[T any] struct {
	// Power is the threshold for parsing the operand.
	Power Power
	// Apply combines the operand.
	Apply func(T) (T, error)
}

// Postfix is a postfix operator descriptor.
type Postfix[T any] struct {
	// Power is the minimum threshold at which the operator applies.
	Power Power
	// Apply combines the operand.
	Apply func(T) (T, error)
}

// Infix is an infix operator descriptor.
type Infix[T any] struct {
	Left  Power
	Right Power
	Assoc Assoc
	// Apply combines the left and right operands.
	Apply func(T, T) (T, error)
}

// Left creates a left-associative infix operator.
func Left[T any](p Power, apply func(T, T) (T, error)) Infix[T] {
	return Infix[T]{Left: p, Right: p + 1, Assoc: AssocLeft, Apply: apply}
}

// Right creates a right-associative infix operator.
func Right[T any](p Power, apply func(T, T) (T, error)) Infix[T] {
	return Infix[T]{Left: p, Right: p, Assoc: AssocRight, Apply: apply}
}

// Neither creates a non-associative infix operator.
func Neither[T any](p Power, apply func(T, T) (T, error)) Infix[T] {
	return Infix[T]{Left: p, Right: p + 1, Assoc: AssocNone, Apply: apply}
}

// DefaultLimit is the nesting limit used when a Grammar's Limit is not
// positive.
const DefaultLimit = 512

// Grammar describes the operands and operators of a language with tokens of
// type K and values of type T. Nil functions recognize nothing.
type Grammar[K, T any] struct {
	// Operand parses an operand. It is called when the next token is not a
	// prefix operator or an open group, including at the end of the input,
	// so it is responsible for reporting missing operands.
	Operand func(Input[K]) (T, error)
	// Prefix, Postfix, and Infix look up the operator for a token.
	Prefix  func(K) (Prefix[T], bool)
	Postfix func(K) (Postfix[T], bool)
	Infix   func(K) (Infix[T], bool)
	// Open and Close recognize the tokens that delimit a group, which is
	// parsed with a threshold of zero wherever an operand may appear.
	Open  func(K) bool
	Close func(K) bool
	// Limit is the maximum nesting of operators and groups.
	Limit int
}

func (g *Grammar[K, T]) limit() int {
	if g.Limit <= 0 {
		return DefaultLimit
	}
	return g.Limit
}

func (g *Grammar[K, T]) prefix(k K) (Prefix[T], bool) {
	if g.Prefix == nil {
		return Prefix[T]{}, false
	}
	return g.Prefix(k)
}

func (g *Grammar[K, T]) postfix(k K) (Postfix[T], bool) {
	if g.Postfix == nil {
		return Postfix[T]{}, false
	}
	return g.Postfix(k)
}

func (g *Grammar[K, T]) infix(k K) (Infix[T], bool) {
	if g.Infix == nil {
		return Infix[T]{}, false
	}
	return g.Infix(k)
}

func (g *Grammar[K, T]) open(k K) bool {
	return g.Open != nil && g.Open(k)
}

func (g *Grammar[K, T]) close(k K) bool {
	return g.Close != nil && g.Close(k)
}

// ErrUnclosed is returned when a group is not followed by its close token.
// The offending token, if any, is the next token in the input.
var ErrUnclosed = errors.New("pratt: unclosed group")

// LimitError is an error indicating nesting beyond a grammar's limit.
type LimitError struct {
	Limit int
}

func (err *LimitError) Error() string {
	return "pratt: nesting exceeds limit of " + strconv.Itoa(err.Limit)
}

// AssocError is an error indicating two adjacent non-associative operators of
// the same power. The second operator is the next token in the input.
type AssocError struct {
	Power Power
}

func (err *AssocError) Error() string {
	return "pratt: chained non-associative operators of power " + strconv.Itoa(int(err.Power))
}

// noAssoc is a sentinel for no pending non-associative operator.
const noAssoc Power = -1 << 31

// assocCheck reports an error if op is non-associative and the last operator
// applied at the same level was a non-associative operator of equal power.
func assocCheck[T any](op Infix[T], last Power) error {
	if op.Assoc == AssocNone && last == op.Left {
		return &AssocError{Power: op.Left}
	}
	return nil
}

// assocNext is the last power to record after applying op.
func assocNext[T any](op Infix[T]) Power {
	if op.Assoc == AssocNone {
		return op.Left
	}
	return noAssoc
}
