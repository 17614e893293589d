// Package scriptexpr evaluates the flat infix expressions of a small embedded
// scripting language.
//
// Expressions contain no whitespace. "x+1" adds one to the variable x; "2+3*2"
// is 10, not 8, because operators apply strictly from left to right with no
// precedence. Every token between operators is either the name of a binding in
// the evaluation Context or a literal: a number, a quoted string, true, false,
// or none.
//
// Operators are found by scanning for runs of a single repeated rune, so "=="
// and "&&" are operators but "!=" and "<=" can never be. A Context holds the
// variables, call parameters, and functions visible to one scope.
package scriptexpr
