package scriptexpr

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Value.
type Kind int8

const (
	// KindNone is the kind of the zero Value.
	KindNone Kind = iota
	// KindNumber is an arbitrary-precision real number.
	KindNumber
	// KindString is a string.
	KindString
	// KindBool is true or false.
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a runtime value. The zero Value is none. Values are immutable;
// copying a Value is always safe.
type Value struct {
	kind Kind
	// n is never modified after the Value is created.
	n *big.Float
	s string
	b bool
}

// Number creates a number Value holding a copy of x.
func Number(x *big.Float) Value {
	return Value{kind: KindNumber, n: new(big.Float).Copy(x)}
}

// Float creates a number Value from a float64 with 64 bits of precision.
func Float(x float64) Value {
	return Value{kind: KindNumber, n: new(big.Float).SetPrec(64).SetFloat64(x)}
}

// String creates a string Value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Bool creates a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// num wraps x without copying. x must not be modified afterward.
func num(x *big.Float) Value {
	return Value{kind: KindNumber, n: x}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNone returns whether v is none.
func (v Value) IsNone() bool {
	return v.kind == KindNone
}

// Num returns a copy of the number held by v. ok is false if v is not a
// number.
func (v Value) Num() (x *big.Float, ok bool) {
	if v.kind != KindNumber {
		return nil, false
	}
	return new(big.Float).Copy(v.n), true
}

// Str returns the string held by v. ok is false if v is not a string.
func (v Value) Str() (s string, ok bool) {
	return v.s, v.kind == KindString
}

// Truth returns the boolean held by v. ok is false if v is not a boolean.
func (v Value) Truth() (b, ok bool) {
	return v.b, v.kind == KindBool
}

// Equal returns whether v and w are of the same kind and hold the same value.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.n.Cmp(w.n) == 0
	case KindString:
		return v.s == w.s
	case KindBool:
		return v.b == w.b
	}
	return true
}

// String formats v in the same form ParseValue accepts.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return v.n.Text('g', -1)
	case KindString:
		return `"` + v.s + `"`
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return "none"
	}
}

// Format implements fmt.Formatter. Numbers accept every verb that *big.Float
// does, so e.g. %.3g rounds them. Other kinds, and %s for any kind, format as
// String.
func (v Value) Format(s fmt.State, verb rune) {
	if v.kind == KindNumber && verb != 's' {
		v.n.Format(s, verb)
		return
	}
	io.WriteString(s, v.String())
}

// ParseValue parses a literal with prec bits of precision for numbers. The
// literal grammar is none, true, false, a string in double or single quotes,
// or a number in any form accepted by big.Float.Parse with base 0, including
// inf and ∞. Numbers too large to represent become infinities. The result is
// a *ParseError at column 1 if tok is not a literal.
func ParseValue(tok string, prec uint) (Value, error) {
	switch tok {
	case "none":
		return Value{}, nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "":
		return Value{}, &ParseError{Col: 1, Text: tok}
	}
	if len(tok) >= 2 && (tok[0] == '"' || tok[0] == '\'') && tok[len(tok)-1] == tok[0] {
		return String(tok[1 : len(tok)-1]), nil
	}
	x, err := parseNum(tok, prec)
	if err != nil {
		return Value{}, &ParseError{Col: 1, Text: tok}
	}
	return num(x), nil
}

func parseNum(s string, prec uint) (*big.Float, error) {
	if s == "∞" {
		s = "inf"
	}
	r, _, err := new(big.Float).SetPrec(prec).Parse(s, 0)
	switch {
	case err == nil:
		return r, nil
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		return new(big.Float).SetPrec(prec).SetInf(s[0] == '-'), nil
	default:
		return nil, err
	}
}
