package scriptexpr

import (
	"strconv"
	"strings"
)

// SubExpression is one node of a tokenized expression: a value and the
// operator that combines it with the rest of the chain. The last node's
// operator is a no-op and it has no successor.
type SubExpression struct {
	value Value
	op    *Operator
	next  *SubExpression
}

// chain links values and ops into a SubExpression chain. There must be exactly
// one fewer operator than values. end is the position just past the input.
func chain(vals []Value, ops []*Operator, end int) (*SubExpression, error) {
	if len(vals) == 0 {
		return nil, &SyntaxError{Col: end, Msg: "no expression"}
	}
	if len(ops) == 0 && len(vals) > 1 {
		return nil, &SyntaxError{Col: end, Msg: "ambiguous expression: " + strconv.Itoa(len(vals)) + " values with no operator"}
	}
	if len(ops) != len(vals)-1 {
		return nil, &SyntaxError{Col: end, Msg: "no expression at end"}
	}
	ops = append(ops[:len(ops):len(ops)], noop)
	// Build from the tail so that each node can link to its successor.
	var n *SubExpression
	for i := len(vals) - 1; i >= 0; i-- {
		n = &SubExpression{value: vals[i], op: ops[i], next: n}
	}
	return n, nil
}

// Eval evaluates the chain strictly left to right: "2+3*2" is (2+3)*2.
func (n *SubExpression) Eval() (Value, error) {
	return n.eval(n.value)
}

// eval combines acc, the result of everything up to and including n, with the
// rest of the chain.
func (n *SubExpression) eval(acc Value) (Value, error) {
	if n.next == nil {
		return acc, nil
	}
	r, err := n.op.Apply(acc, n.next.value)
	if err != nil {
		return Value{}, err
	}
	return n.next.eval(r)
}

// Len returns the number of values in the chain.
func (n *SubExpression) Len() int {
	k := 0
	for ; n != nil; n = n.next {
		k++
	}
	return k
}

// String formats the chain with the grouping its evaluation uses, e.g.
// ((2 + 3) * 2).
func (n *SubExpression) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("(", n.Len()-1))
	b.WriteString(n.value.String())
	for ; n.next != nil; n = n.next {
		b.WriteByte(' ')
		b.WriteString(n.op.id)
		b.WriteByte(' ')
		b.WriteString(n.next.value.String())
		b.WriteByte(')')
	}
	return b.String()
}
