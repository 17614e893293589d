package scriptexpr

import (
	"math/big"
	"strconv"
	"strings"
)

// ParseError indicates a token that is neither the name of a binding nor a
// valid literal. It implements InputError.
type ParseError struct {
	// Col is the position of the token.
	Col int
	// Text is the token.
	Text string
}

func (err *ParseError) Error() string {
	return errpos(err.Col, "undefined name or invalid literal "+strconv.Quote(err.Text))
}

func (err *ParseError) Pos() int {
	return err.Col
}

// SyntaxError indicates an expression that cannot be split into alternating
// values and operators. It implements InputError.
type SyntaxError struct {
	// Col is the position of the token that ended the expression, or one past
	// the end of the input if the expression ended early.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// TypeError indicates an operator or function applied to operands of kinds
// that it does not support.
type TypeError struct {
	// Op is the operator identifier or function name.
	Op string
	// Kinds are the kinds of the operands, in order.
	Kinds []Kind
}

func (err *TypeError) Error() string {
	k := make([]string, len(err.Kinds))
	for i, x := range err.Kinds {
		k[i] = x.String()
	}
	return "unsupported operand types for " + err.Op + ": " + strings.Join(k, ", ")
}

// NameError is an error from an assignment to a variable that is missing from
// the context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// CallError indicates a function call with the wrong number of arguments.
type CallError struct {
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
}

func (err *CallError) Error() string {
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments"
}

// DomainError is an error returned when an operator or function is applied to
// arguments outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the operator or function.
	Func string
}

func (err DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err DomainError) Unwrap() error {
	return big.ErrNaN{}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// a malformed expression implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*ParseError)(nil)
	_ InputError = (*SyntaxError)(nil)
)
