package scriptexpr

import (
	"errors"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function registered in a Context. The implementations are
// *UserFunc, whose body is script text run by the statement interpreter, and
// *NativeFunc, whose body is a host callback.
type Func interface {
	// Name returns the name under which the function is registered.
	Name() string
	// Arity returns the number of arguments the function takes, or -1 if it
	// takes any number.
	Arity() int

	fn()
}

// UserFunc is a function defined in script.
type UserFunc struct {
	name   string
	params []string
	body   string
	ret    Value
}

// NewUserFunc creates a script function. params are the parameter names in
// order, body is the unparsed body text, and ret is the declared return
// placeholder.
func NewUserFunc(name string, params []string, body string, ret Value) *UserFunc {
	return &UserFunc{
		name:   name,
		params: append([]string(nil), params...),
		body:   body,
		ret:    ret,
	}
}

func (f *UserFunc) Name() string { return f.name }
func (f *UserFunc) Arity() int   { return len(f.params) }
func (*UserFunc) fn()            {}

// Params returns the parameter names in order.
func (f *UserFunc) Params() []string {
	return append([]string(nil), f.params...)
}

// Body returns the function's body text.
func (f *UserFunc) Body() string {
	return f.body
}

// Ret returns the declared return placeholder.
func (f *UserFunc) Ret() Value {
	return f.ret
}

// Bind pairs args with the function's parameters for a call. Pass the result
// to Context.Frame to create the call's context.
func (f *UserFunc) Bind(args []Value) ([]*Parameter, error) {
	if len(args) != len(f.params) {
		return nil, &CallError{Func: f.name, Len: len(args)}
	}
	p := make([]*Parameter, len(args))
	for i, v := range args {
		p[i] = NewParameter(f.params[i], i, v)
	}
	return p, nil
}

// NativeFunc is a function implemented by the host.
type NativeFunc struct {
	name  string
	arity int
	f     func(ctx *Context, args []Value) (Value, error)
}

// Native creates a host function. arity is the exact number of arguments f
// accepts, or -1 to accept any number. f may look up variables in ctx but
// should not modify args.
func Native(name string, arity int, f func(ctx *Context, args []Value) (Value, error)) *NativeFunc {
	return &NativeFunc{name: name, arity: arity, f: f}
}

func (f *NativeFunc) Name() string { return f.name }
func (f *NativeFunc) Arity() int   { return f.arity }
func (*NativeFunc) fn()            {}

// Call invokes the function in ctx.
func (f *NativeFunc) Call(ctx *Context, args []Value) (Value, error) {
	if f.arity >= 0 && len(args) != f.arity {
		return Value{}, &CallError{Func: f.name, Len: len(args)}
	}
	return f.f(ctx, args)
}

// Monadic wraps a function of one number into a native function. f must
// return its result, usually by setting out to the precision of out. If f is
// called on an argument outside its domain, it should panic with an error of
// type big.ErrNaN, or that unwraps to it.
func Monadic(name string, f func(out, in *big.Float) *big.Float) *NativeFunc {
	return Native(name, 1, func(ctx *Context, args []Value) (r Value, err error) {
		in, ok := args[0].Num()
		if !ok {
			return Value{}, &TypeError{Op: name, Kinds: []Kind{args[0].Kind()}}
		}
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			err = p.(error) // panic if not error
			if errors.As(err, &DomainError{}) || errors.As(err, &big.ErrNaN{}) {
				r, err = Value{}, DomainError{X: in, Arg: 1, Func: name}
				return
			}
			panic(err)
		}()
		out := new(big.Float).SetPrec(ctx.Prec())
		return num(f(out, in)), nil
	})
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a native function. f must return its result,
// usually out. Unlike Monadic, the wrapped function is expected never to
// panic.
func Niladic(name string, f func(out *big.Float) *big.Float) *NativeFunc {
	return Native(name, 0, func(ctx *Context, args []Value) (Value, error) {
		out := new(big.Float).SetPrec(ctx.Prec())
		return num(f(out)), nil
	})
}

// DefaultFuncs returns new copies of the standard native functions: exp, ln,
// log (base 10, or log(x, b) for base b), sqrt, pi, and e.
func DefaultFuncs() []Func {
	return []Func{
		Monadic("exp", bigfloat.Exp),
		Monadic("ln", bigfloat.Log),
		Native("log", -1, nativeLog),
		Monadic("sqrt", (*big.Float).Sqrt),
		Niladic("pi", bigfloat.Pi),
		Niladic("e", func(out *big.Float) *big.Float {
			var one big.Float
			one.SetFloat64(1)
			return bigfloat.Exp(out, &one)
		}),
	}
}

func nativeLog(ctx *Context, args []Value) (Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return Value{}, &CallError{Func: "log", Len: len(args)}
	}
	k := make([]Kind, len(args))
	x := make([]*big.Float, len(args))
	for i, a := range args {
		k[i] = a.Kind()
		x[i], _ = a.Num()
	}
	for _, v := range x {
		if v == nil {
			return Value{}, &TypeError{Op: "log", Kinds: k}
		}
	}
	for i, v := range x {
		if v.Sign() <= 0 {
			return Value{}, DomainError{X: v, Arg: i + 1, Func: "log"}
		}
	}
	out := bigfloat.Log(new(big.Float).SetPrec(ctx.Prec()), x[0])
	base := new(big.Float).SetPrec(ctx.Prec()).SetFloat64(10)
	if len(x) == 2 {
		base.Set(x[1])
	}
	base = bigfloat.Log(base, base)
	if base.Sign() == 0 {
		// log base 1
		return Value{}, DomainError{X: x[1], Arg: 2, Func: "log"}
	}
	return num(out.Quo(out, base)), nil
}
