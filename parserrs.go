package dice

import "strconv"

// SyntaxError is an error from the grammar of dice expressions, such as a
// character that starts no token or a misplaced token. It implements
// InputError.
type SyntaxError struct {
	// Col is the position of the error.
	Col int
	// Offset is the byte offset of the error.
	Offset int
	// Msg describes the error.
	Msg string

	err error
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// Unwrap returns the underlying grammar error.
func (err *SyntaxError) Unwrap() error {
	return err.err
}

// LiteralTooLongError is an error indicating a number with more digits than
// the parser accepts. It implements InputError.
type LiteralTooLongError struct {
	// Col is the position of the literal.
	Col int
	// Text is the offending literal.
	Text string
	// Max is the maximum number of digits.
	Max int
}

func (err *LiteralTooLongError) Error() string {
	return errpos(err.Col, "number "+strconv.Quote(err.Text)+" is longer than "+strconv.Itoa(err.Max)+" digits")
}

func (err *LiteralTooLongError) Pos() int {
	return err.Col
}

// IntegerError is an error indicating a number which cannot be represented.
// It implements InputError.
type IntegerError struct {
	// Col is the position of the literal.
	Col int
	// Text is the offending literal.
	Text string
	// Err is the error from converting the literal.
	Err error
}

func (err *IntegerError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text)+": "+err.Err.Error())
}

func (err *IntegerError) Pos() int {
	return err.Col
}

func (err *IntegerError) Unwrap() error {
	return err.Err
}

// DiceRangeError is an error indicating a dice term with a count or number of
// sides that is not positive. It implements InputError.
type DiceRangeError struct {
	// Col is the position of the dice term.
	Col int
	// Text is the dice term.
	Text string
	// Value is the offending count or number of sides.
	Value int64
}

func (err *DiceRangeError) Error() string {
	return errpos(err.Col, "dice term "+strconv.Quote(err.Text)+" has out of range value "+strconv.FormatInt(err.Value, 10))
}

func (err *DiceRangeError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating an operator token that is not
// understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis, or of the token found
	// in place of a close parenthesis.
	Col int
	// Left is the opening parenthesis, if any.
	Left string
	// Right is the unmatched closing parenthesis, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression. It
// implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token where none of its kind may
// appear, such as a second operand with no operator between. It implements
// InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the unexpected token.
	Token string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Token))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// NestingError is an error indicating parentheses or operators nested more
// deeply than the parser allows. It implements InputError.
type NestingError struct {
	// Col is the position at which the limit was exceeded.
	Col int
	// Limit is the maximum nesting depth.
	Limit int
}

func (err *NestingError) Error() string {
	return errpos(err.Col, "expression nests deeper than "+strconv.Itoa(err.Limit))
}

func (err *NestingError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*LiteralTooLongError)(nil)
	_ InputError = (*IntegerError)(nil)
	_ InputError = (*DiceRangeError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*NestingError)(nil)
)
