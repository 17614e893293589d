package scriptexpr

import (
	"math/big"

	"github.com/rs/zerolog"
)

// Context holds the variables, parameters, and functions visible to one
// scope. Every expression evaluated in the scope shares the same Context.
// It is not safe to use a Context concurrently.
type Context struct {
	vars  map[string]Binding
	funcs map[string]Func
	nums  map[string]*big.Float
	prec  uint
	log   zerolog.Logger
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  Value
	}
	varsopt  map[string]Value
	funcsopt []Func
	precopt  uint
	logopt   zerolog.Logger
)

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (funcsopt) ctxOption() {}
func (precopt) ctxOption()  {}
func (logopt) ctxOption()   {}

// Var declares a variable in the context.
func Var(name string, val Value) ContextOption {
	return varopt{name, val}
}

// Vars declares any number of variables in the context.
func Vars(vars map[string]Value) ContextOption {
	return varsopt(vars)
}

// Funcs registers functions in the context.
func Funcs(fns ...Func) ContextOption {
	return funcsopt(fns)
}

// Prec sets the precision of number literals and functions.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// Logger sets the logger for diagnostics. Diagnostics are written at debug
// level and never affect evaluation.
func Logger(log zerolog.Logger) ContextOption {
	return logopt(log)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		vars:  make(map[string]Binding),
		funcs: make(map[string]Func),
		nums:  make(map[string]*big.Float),
		prec:  64,
		log:   zerolog.Nop(),
	}
	// Settings first, so that declarations are logged and parsed with them.
	for _, opt := range opts {
		switch opt := opt.(type) {
		case precopt:
			ctx.prec = uint(opt)
		case logopt:
			ctx.log = zerolog.Logger(opt)
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			ctx.PushVar(NewVariable(opt.name, opt.val))
		case varsopt:
			for k, v := range opt {
				ctx.PushVar(NewVariable(k, v))
			}
		case funcsopt:
			for _, f := range opt {
				ctx.PushFunc(f)
			}
		case precopt, logopt:
			// Already done. Do nothing.
		default:
			panic("scriptexpr: unknown option type")
		}
	}
	return &ctx
}

// Frame creates the context for a function call made from ctx. The new
// context has the same precision, logger, and functions as ctx, and its only
// variables are params.
func (ctx *Context) Frame(params ...*Parameter) *Context {
	n := Context{
		vars:  make(map[string]Binding, len(params)),
		funcs: make(map[string]Func, len(ctx.funcs)),
		nums:  ctx.nums,
		prec:  ctx.prec,
		log:   ctx.log,
	}
	for k, f := range ctx.funcs {
		n.funcs[k] = f
	}
	for _, p := range params {
		n.PushVar(p)
	}
	return &n
}

// Prec returns the precision to which literals and functions are computed in
// the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// PushVar stores b under its own name, replacing any binding with that name.
func (ctx *Context) PushVar(b Binding) {
	ctx.log.Debug().Str("name", b.Name()).Stringer("value", b.Value()).Msg("push var")
	ctx.vars[b.Name()] = b
}

// GetVar returns the live binding stored under name. Later calls to SetVar
// for the same name are visible through the returned binding.
func (ctx *Context) GetVar(name string) (Binding, bool) {
	b, ok := ctx.vars[name]
	return b, ok
}

// SetVar changes the value of the variable stored under name. If there is no
// such binding, the result is a *NameError and the context is unchanged.
// Panics if the binding is a *Parameter; parameters are immutable for their
// whole call, so assigning one is a bug in the caller.
func (ctx *Context) SetVar(name string, val Value) error {
	b, ok := ctx.vars[name]
	if !ok {
		return &NameError{Name: name}
	}
	switch b := b.(type) {
	case *Variable:
		ctx.log.Debug().Str("name", name).Stringer("value", val).Msg("set var")
		b.val = val
	case *Parameter:
		panic("scriptexpr: assignment to parameter " + name)
	default:
		panic("scriptexpr: unknown binding type")
	}
	return nil
}

// ContainsVar returns whether a binding is stored under name.
func (ctx *Context) ContainsVar(name string) bool {
	_, ok := ctx.vars[name]
	return ok
}

// PushFunc registers f under its own name, replacing any function with that
// name.
func (ctx *Context) PushFunc(f Func) {
	ctx.log.Debug().Str("name", f.Name()).Int("arity", f.Arity()).Msg("push func")
	ctx.funcs[f.Name()] = f
}

// GetFunc returns the function registered under name.
func (ctx *Context) GetFunc(name string) (Func, bool) {
	f, ok := ctx.funcs[name]
	return f, ok
}

// ContainsFunc returns whether a function is registered under name.
func (ctx *Context) ContainsFunc(name string) bool {
	_, ok := ctx.funcs[name]
	return ok
}

// Register registers a host function. It is shorthand for
// ctx.PushFunc(Native(name, arity, f)).
func (ctx *Context) Register(name string, arity int, f func(ctx *Context, args []Value) (Value, error)) {
	ctx.PushFunc(Native(name, arity, f))
}

// resolve gets the value of a value token: the current value of the binding
// it names, or else the literal it spells.
func (ctx *Context) resolve(tok lexToken) (Value, error) {
	if b, ok := ctx.vars[tok.text]; ok {
		return b.Value(), nil
	}
	if x := ctx.nums[tok.text]; x != nil {
		return num(x), nil
	}
	v, err := ParseValue(tok.text, ctx.prec)
	if err != nil {
		return Value{}, &ParseError{Col: tok.pos, Text: tok.text}
	}
	if v.kind == KindNumber {
		ctx.nums[tok.text] = v.n
	}
	return v, nil
}
