package scriptexpr_test

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/scriptexpr"
)

func TestPushGetVar(t *testing.T) {
	ctx := scriptexpr.NewContext()
	v := scriptexpr.NewVariable("x", scriptexpr.Float(3))
	ctx.PushVar(v)
	b, ok := ctx.GetVar("x")
	if !ok {
		t.Fatal("pushed variable not found")
	}
	if b != scriptexpr.Binding(v) {
		t.Errorf("GetVar returned a different binding %#v", b)
	}
	if !b.Value().Equal(scriptexpr.Float(3)) {
		t.Errorf("want 3, got %v", b.Value())
	}
	if !ctx.ContainsVar("x") {
		t.Error("ContainsVar false after push")
	}
	if _, ok := ctx.GetVar("y"); ok {
		t.Error("found unpushed variable")
	}
	if ctx.ContainsVar("y") {
		t.Error("ContainsVar true for unpushed variable")
	}
}

func TestPushVarReplaces(t *testing.T) {
	ctx := scriptexpr.NewContext(scriptexpr.Var("x", scriptexpr.Float(1)))
	ctx.PushVar(scriptexpr.NewVariable("x", scriptexpr.String("two")))
	b, _ := ctx.GetVar("x")
	if !b.Value().Equal(scriptexpr.String("two")) {
		t.Errorf("want \"two\", got %v", b.Value())
	}
}

func TestSetVarShared(t *testing.T) {
	ctx := scriptexpr.NewContext(scriptexpr.Var("x", scriptexpr.Float(1)))
	a, _ := ctx.GetVar("x")
	b, _ := ctx.GetVar("x")
	if a != b {
		t.Fatal("repeated lookups gave different bindings")
	}
	if err := ctx.SetVar("x", scriptexpr.Bool(true)); err != nil {
		t.Fatal(err)
	}
	for _, h := range []scriptexpr.Binding{a, b} {
		if !h.Value().Equal(scriptexpr.Bool(true)) {
			t.Errorf("holder sees stale value %v", h.Value())
		}
	}
}

func TestSetVarUnbound(t *testing.T) {
	ctx := scriptexpr.NewContext(scriptexpr.Var("x", scriptexpr.Float(1)))
	err := ctx.SetVar("y", scriptexpr.Float(2))
	var ne *scriptexpr.NameError
	if !errors.As(err, &ne) {
		t.Fatalf("want NameError, got %#v", err)
	}
	if ne.Name != "y" {
		t.Errorf("NameError names %q, not y", ne.Name)
	}
	if !strings.Contains(err.Error(), `"y"`) {
		t.Errorf("%q doesn't mention y", err.Error())
	}
	if ctx.ContainsVar("y") {
		t.Error("failed SetVar created a variable")
	}
	b, _ := ctx.GetVar("x")
	if !b.Value().Equal(scriptexpr.Float(1)) {
		t.Errorf("failed SetVar changed x to %v", b.Value())
	}
}

func TestSetVarParameterPanics(t *testing.T) {
	ctx := scriptexpr.NewContext()
	ctx.PushVar(scriptexpr.NewParameter("p", 0, scriptexpr.Float(1)))
	defer func() {
		if recover() == nil {
			t.Error("assigning a parameter didn't panic")
		}
	}()
	ctx.SetVar("p", scriptexpr.Float(2))
}

func TestFuncs(t *testing.T) {
	ctx := scriptexpr.NewContext()
	if ctx.ContainsFunc("f") {
		t.Fatal("new context has function f")
	}
	f := scriptexpr.NewUserFunc("f", []string{"a", "b"}, "return a+b", scriptexpr.Value{})
	ctx.PushFunc(f)
	g, ok := ctx.GetFunc("f")
	if !ok || g != scriptexpr.Func(f) {
		t.Fatalf("GetFunc gave %#v, %t", g, ok)
	}
	if !ctx.ContainsFunc("f") {
		t.Error("ContainsFunc false after push")
	}
	ctx.Register("f", 0, func(*scriptexpr.Context, []scriptexpr.Value) (scriptexpr.Value, error) {
		return scriptexpr.Float(1), nil
	})
	g, _ = ctx.GetFunc("f")
	if _, ok := g.(*scriptexpr.NativeFunc); !ok {
		t.Errorf("Register didn't replace f, have %#v", g)
	}
	if ctx.ContainsVar("f") {
		t.Error("functions and variables share names")
	}
}

func TestFrame(t *testing.T) {
	ctx := scriptexpr.NewContext(
		scriptexpr.Var("y", scriptexpr.Float(100)),
		scriptexpr.Funcs(scriptexpr.DefaultFuncs()...),
	)
	f := scriptexpr.NewUserFunc("add", []string{"a", "b"}, "a+b", scriptexpr.Value{})
	ctx.PushFunc(f)
	params, err := f.Bind([]scriptexpr.Value{scriptexpr.Float(2), scriptexpr.Float(3)})
	if err != nil {
		t.Fatal(err)
	}
	frame := ctx.Frame(params...)
	if frame.ContainsVar("y") {
		t.Error("frame sees caller's variable")
	}
	if !frame.ContainsFunc("add") || !frame.ContainsFunc("sqrt") {
		t.Error("frame doesn't see caller's functions")
	}
	r, err := scriptexpr.Eval(frame, f.Body())
	if err != nil {
		t.Fatal(err)
	}
	if !r.Equal(scriptexpr.Float(5)) {
		t.Errorf("want 5, got %v", r)
	}
	frame.PushFunc(scriptexpr.NewUserFunc("local", nil, "", scriptexpr.Value{}))
	if ctx.ContainsFunc("local") {
		t.Error("frame function leaked to caller")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := scriptexpr.NewContext(scriptexpr.Logger(log), scriptexpr.Var("x", scriptexpr.Float(1)))
	if err := ctx.SetVar("x", scriptexpr.Float(2)); err != nil {
		t.Fatal(err)
	}
	ctx.PushFunc(scriptexpr.Niladic("one", func(out *big.Float) *big.Float { return out.SetInt64(1) }))
	r, err := scriptexpr.Eval(ctx, "x+1")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Equal(scriptexpr.Float(3)) {
		t.Errorf("want 3, got %v", r)
	}
	out := buf.String()
	for _, msg := range []string{"push var", "set var", "push func", "evaluated"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log doesn't mention %q:\n%s", msg, out)
		}
	}
}
