//go:build go1.18
// +build go1.18

package scriptexpr_test

import (
	"testing"

	"github.com/zephyrtronium/scriptexpr"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1+2*3")
	f.Add(`"a"+x==none`)
	f.Add("inf-inf")
	f.Fuzz(func(t *testing.T, s string) {
		r, err := scriptexpr.EvalString(s, scriptexpr.Var("x", scriptexpr.Float(0)))
		if err != nil && !r.IsNone() {
			t.Errorf("%q gave result %v with error %v", s, r, err)
		}
	})
}
