// Package formulas implements a calculator with named formulas.
//
// A program is one line of statements. Each statement is either an
// arithmetic expression over float64 numbers with + - * / and parentheses,
// or a function definition:
//
//	function hyp(a, b) (sqrt(a*a + b*b))
//	hyp(3, 4)
//
// The body of a function is a single parenthesized expression. Names refer
// only to parameters of calls, and name lookup is dynamic: a function called
// from inside another sees the caller's parameters unless it declares a
// parameter of the same name. So after
//
//	function f(x) (g())
//	function g() (x + 1)
//
// f(2) is 3, while g() on its own fails because x is undefined.
//
// An Interpreter keeps its function table across programs, so definitions
// made by one line are available to the next.
package formulas
