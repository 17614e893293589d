package scriptexpr

import (
	"io"
	"strconv"
	"strings"
)

// Expression is an expression bound to the context it is evaluated in.
type Expression struct {
	src string
	ctx *Context
}

// NewExpression binds src to ctx.
func NewExpression(src string, ctx *Context) *Expression {
	return &Expression{src: src, ctx: ctx}
}

// Evaluate tokenizes the expression, resolves each value token against the
// context as it is scanned, and evaluates the result. Names resolve to the
// values their bindings hold at the time of the call.
func (e *Expression) Evaluate() (Value, error) {
	n, err := Parse(strings.NewReader(e.src), e.ctx)
	if err != nil {
		return Value{}, err
	}
	r, err := n.Eval()
	if err != nil {
		return Value{}, err
	}
	e.ctx.log.Debug().Str("expr", e.src).Stringer("result", r).Msg("evaluated")
	return r, nil
}

// Parse tokenizes an expression and builds its SubExpression chain. Each value
// token is resolved as soon as it is scanned: if ctx has a binding with that
// name, the token takes the binding's current value; otherwise it must be a
// literal. Input must not contain whitespace.
func Parse(src io.RuneScanner, ctx *Context) (*SubExpression, error) {
	l := lex(src)
	var (
		vals []Value
		ops  []*Operator
	)
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenEOF:
			return chain(vals, ops, tok.pos)
		case tokenValue:
			// The lexer never emits two value tokens in a row.
			v, err := ctx.resolve(tok)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		case tokenOp:
			op := lookupOp(tok.text)
			if op == nil {
				return nil, &SyntaxError{Col: tok.pos, Msg: "unknown operator " + strconv.Quote(tok.text)}
			}
			if len(vals) == len(ops) {
				return nil, &SyntaxError{Col: tok.pos, Msg: "no expression before operator " + strconv.Quote(tok.text)}
			}
			ops = append(ops, op)
		default:
			panic("scriptexpr: invalid token " + tok.String())
		}
	}
}

// Eval is a shortcut to evaluate an expression in ctx.
func Eval(ctx *Context, src string) (Value, error) {
	return NewExpression(src, ctx).Evaluate()
}

// EvalString is a shortcut to evaluate an expression in a new context created
// with opts.
func EvalString(src string, opts ...ContextOption) (Value, error) {
	return Eval(NewContext(opts...), src)
}
