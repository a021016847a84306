// Package rpncalc implements an interactive floating-point calculator with
// variables and user-defined functions.
//
// Input is lexed into tokens, reordered into reverse Polish notation with the
// shunting-yard algorithm, and evaluated on a stack. "-2 + 3 * 4 ^ 2" is
// "(-2) + (3 * (4 ^ 2))": negation binds tightest, then exponentiation (right
// associative), then multiplication and division, then addition and
// subtraction.
//
// A Context holds the session's variables and functions:
//
//	var a = 10
//	function f x = x + a
//	f 5
//
// evaluates to 15. Function bodies read variables when they are called, and
// may call other functions. Calls bind tighter than operators, so "f 5 * 2"
// is "f(5) * 2"; commas separate arguments, as in "max(1, -2)". The builtins
// sin, cos, tan, asin, acos, atan, min, and max are available unless a user
// function or variable takes the name.
package rpncalc
