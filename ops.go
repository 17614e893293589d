package scriptexpr

import (
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Operator is a binary operator over Values.
type Operator struct {
	id string
	fn func(x, y Value) (Value, error)
}

// Ident returns the operator's identifier, e.g. "==".
func (op *Operator) Ident() string {
	return op.id
}

// Apply evaluates x op y.
func (op *Operator) Apply(x, y Value) (Value, error) {
	return op.fn(x, y)
}

func (op *Operator) String() string {
	return op.id
}

// operators is the operator table in discovery order. Each identifier must be
// a single rune repeated.
var operators = []*Operator{
	{"==", equal},
	{"&&", logic("&&", func(a, b bool) bool { return a && b })},
	{"||", logic("||", func(a, b bool) bool { return a || b })},
	{"<", compare("<", func(c int) bool { return c < 0 })},
	{">", compare(">", func(c int) bool { return c > 0 })},
	{"+", add},
	{"-", arith("-", (*big.Float).Sub)},
	{"*", arith("*", (*big.Float).Mul)},
	{"/", quo},
	{"^", pow},
}

// noop ends every SubExpression chain. It is never discovered in input.
var noop = &Operator{fn: func(x, _ Value) (Value, error) { return x, nil }}

// Operators returns the identifiers of all operators in discovery order.
func Operators() []string {
	r := make([]string, len(operators))
	for i, op := range operators {
		r[i] = op.id
	}
	return r
}

// isOpRune returns whether r alone makes up the identifier of any operator.
func isOpRune(r rune) bool {
	for _, op := range operators {
		if strings.Trim(op.id, string(r)) == "" {
			return true
		}
	}
	return false
}

// lookupOp finds the operator whose identifier is exactly run.
func lookupOp(run string) *Operator {
	for _, op := range operators {
		if op.id == run {
			return op
		}
	}
	return nil
}

func maxPrec(x, y *big.Float) uint {
	if x.Prec() > y.Prec() {
		return x.Prec()
	}
	return y.Prec()
}

// arith lifts a big.Float method to an operator on numbers. A NaN result, e.g.
// from inf-inf, becomes a DomainError.
func arith(id string, f func(z, x, y *big.Float) *big.Float) func(x, y Value) (Value, error) {
	return func(x, y Value) (r Value, err error) {
		if x.kind != KindNumber || y.kind != KindNumber {
			return Value{}, &TypeError{Op: id, Kinds: []Kind{x.kind, y.kind}}
		}
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if _, ok := p.(big.ErrNaN); !ok {
				panic(p)
			}
			// Blame the infinite operand, or y if both are.
			if x.n.IsInf() && !y.n.IsInf() {
				r, err = Value{}, DomainError{X: x.n, Arg: 1, Func: id}
				return
			}
			r, err = Value{}, DomainError{X: y.n, Arg: 2, Func: id}
		}()
		z := new(big.Float).SetPrec(maxPrec(x.n, y.n))
		return num(f(z, x.n, y.n)), nil
	}
}

func add(x, y Value) (Value, error) {
	if x.kind == KindString && y.kind == KindString {
		return String(x.s + y.s), nil
	}
	return addNum(x, y)
}

var addNum = arith("+", (*big.Float).Add)

func quo(x, y Value) (Value, error) {
	if x.kind == KindNumber && y.kind == KindNumber {
		// Guard against invalid divisions, 0/0 or inf/inf.
		if x.n.Sign() == 0 && y.n.Sign() == 0 || x.n.IsInf() && y.n.IsInf() {
			return Value{}, DomainError{X: y.n, Arg: 2, Func: "/"}
		}
	}
	return quoNum(x, y)
}

var quoNum = arith("/", (*big.Float).Quo)

func pow(x, y Value) (Value, error) {
	if x.kind != KindNumber || y.kind != KindNumber {
		return Value{}, &TypeError{Op: "^", Kinds: []Kind{x.kind, y.kind}}
	}
	a, b := x.n, y.n
	z := new(big.Float).SetPrec(maxPrec(a, b))
	if b.IsInf() {
		return powInf(z, a, b)
	}
	if b.IsInt() {
		if k, acc := b.Int64(); acc == big.Exact {
			return powInt(z, a, k)
		}
		return powHuge(z, a, b)
	}
	// Non-integer exponents are only defined for non-negative bases.
	switch {
	case a.Sign() < 0:
		return Value{}, DomainError{X: a, Arg: 1, Func: "^"}
	case a.IsInf():
		if b.Sign() > 0 {
			return num(z.SetInf(false)), nil
		}
		return num(z.SetInt64(0)), nil
	case a.Sign() == 0:
		if b.Sign() > 0 {
			return num(z.SetInt64(0)), nil
		}
		return Value{}, DomainError{X: a, Arg: 1, Func: "^"}
	}
	return arith("^", bigfloat.Pow)(x, y)
}

// cmpAbsOne compares |x| with 1.
func cmpAbsOne(x *big.Float) int {
	return new(big.Float).Abs(x).Cmp(big.NewFloat(1))
}

// powInf computes x^±inf. The result is 1, 0, or +inf; bases that would
// oscillate, i.e. -1 or negative bases tending to infinity, are outside the
// domain.
func powInf(z, x, y *big.Float) (Value, error) {
	m := cmpAbsOne(x)
	switch {
	case m == 0 && x.Sign() > 0:
		return num(z.SetInt64(1)), nil
	case m == 0, (m > 0) == (y.Sign() > 0) && x.Sign() < 0:
		return Value{}, DomainError{X: x, Arg: 1, Func: "^"}
	case (m > 0) == (y.Sign() > 0):
		return num(z.SetInf(false)), nil
	default:
		return num(z.SetInt64(0)), nil
	}
}

// powHuge computes x^y for integers y outside int64. Only |x| is raised to y;
// the sign of the result follows x when y is odd.
func powHuge(z, x, y *big.Float) (Value, error) {
	n, _ := y.Int(nil)
	switch {
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return Value{}, DomainError{X: x, Arg: 1, Func: "^"}
		}
		z.SetInt64(0)
	case x.IsInf():
		if y.Sign() > 0 {
			z.SetInf(false)
		} else {
			z.SetInt64(0)
		}
	case cmpAbsOne(x) == 0:
		z.SetInt64(1)
	default:
		z = bigfloat.Pow(z, new(big.Float).Abs(x), y)
	}
	if x.Sign() < 0 && n.Abs(n).Bit(0) == 1 {
		z.Neg(z)
	}
	return num(z), nil
}

// powInt computes x^k by repeated squaring, which is exact whenever the result
// fits in the precision of z.
func powInt(z, x *big.Float, k int64) (Value, error) {
	neg := k < 0
	if neg {
		if x.Sign() == 0 {
			return Value{}, DomainError{X: x, Arg: 1, Func: "^"}
		}
		k = -k
	}
	b := new(big.Float).SetPrec(z.Prec()).Set(x)
	z.SetInt64(1)
	for k > 0 {
		if k&1 != 0 {
			z.Mul(z, b)
		}
		b.Mul(b, b)
		k >>= 1
	}
	if neg {
		z.Quo(new(big.Float).SetPrec(z.Prec()).SetInt64(1), z)
	}
	return num(z), nil
}

func equal(x, y Value) (Value, error) {
	if x.kind != y.kind {
		return Value{}, &TypeError{Op: "==", Kinds: []Kind{x.kind, y.kind}}
	}
	return Bool(x.Equal(y)), nil
}

func compare(id string, f func(int) bool) func(x, y Value) (Value, error) {
	return func(x, y Value) (Value, error) {
		switch {
		case x.kind == KindNumber && y.kind == KindNumber:
			return Bool(f(x.n.Cmp(y.n))), nil
		case x.kind == KindString && y.kind == KindString:
			return Bool(f(strings.Compare(x.s, y.s))), nil
		}
		return Value{}, &TypeError{Op: id, Kinds: []Kind{x.kind, y.kind}}
	}
}

func logic(id string, f func(a, b bool) bool) func(x, y Value) (Value, error) {
	return func(x, y Value) (Value, error) {
		if x.kind != KindBool || y.kind != KindBool {
			return Value{}, &TypeError{Op: id, Kinds: []Kind{x.kind, y.kind}}
		}
		return Bool(f(x.b, y.b)), nil
	}
}
