package scriptexpr

import (
	"errors"
	"testing"
)

func TestChain(t *testing.T) {
	n, err := chain([]Value{Float(2), Float(3), Float(2)}, []*Operator{lookupOp("+"), lookupOp("*")}, 6)
	if err != nil {
		t.Fatal(err)
	}
	if n.Len() != 3 {
		t.Errorf("want 3 nodes, got %d", n.Len())
	}
	var tail *SubExpression
	for tail = n; tail.next != nil; tail = tail.next {
	}
	if tail.op != noop {
		t.Errorf("tail has operator %v, not no-op", tail.op)
	}
	if !n.value.Equal(Float(2)) || n.op.id != "+" || n.next.op.id != "*" {
		t.Errorf("head is not the first token: %v", n)
	}
	r, err := n.Eval()
	if err != nil {
		t.Fatal(err)
	}
	if !r.Equal(Float(10)) {
		t.Errorf("want 10, got %v", r)
	}
}

func TestChainSingle(t *testing.T) {
	n, err := chain([]Value{String("s")}, nil, 4)
	if err != nil {
		t.Fatal(err)
	}
	if n.next != nil || n.op != noop {
		t.Errorf("single value chain is %#v", n)
	}
	r, err := n.Eval()
	if err != nil || !r.Equal(String("s")) {
		t.Errorf(`want "s", got %v, %v`, r, err)
	}
}

func TestChainErrors(t *testing.T) {
	cases := []struct {
		name string
		vals []Value
		ops  []*Operator
	}{
		{"empty", nil, nil},
		{"no-operator", []Value{Float(1), Float(2)}, nil},
		{"trailing-operator", []Value{Float(1)}, []*Operator{lookupOp("+")}},
		{"too-few-operators", []Value{Float(1), Float(2), Float(3)}, []*Operator{lookupOp("+")}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := chain(c.vals, c.ops, 1)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Errorf("want SyntaxError, got %v, %v", n, err)
			}
		})
	}
}

func TestChainDoesNotAliasOps(t *testing.T) {
	ops := make([]*Operator, 1, 4)
	ops[0] = lookupOp("+")
	if _, err := chain([]Value{Float(1), Float(2)}, ops, 4); err != nil {
		t.Fatal(err)
	}
	if ops[:2][1] != nil {
		t.Error("chain wrote past the caller's operators")
	}
}
