package rpncalc

import (
	"errors"
	"testing"
)

// parseContext creates a context with a variable a = 10, a function f x of
// one parameter, and a function g a b of two.
func parseContext(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext(SetVar(MustIdent("a"), 10))
	for _, line := range []string{"function f x = x + a", "function g a b = a - b"} {
		if _, err := ctx.Exec(line); err != nil {
			t.Fatalf("%q failed: %v", line, err)
		}
	}
	return ctx
}

func TestParseRPN(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  []Token
	}{
		{"num", "1", []Token{num(1)}},
		{"mul-add", "1 + 2 * 3", []Token{num(1), num(2), num(3), mul, add}},
		{"paren", "(1 + 2) * 3", []Token{num(1), num(2), add, num(3), mul}},
		{"sub-left", "8 - 4 - 2", []Token{num(8), num(4), sub, num(2), sub}},
		{"div-left", "8 / 4 / 2", []Token{num(8), num(4), div, num(2), div}},
		{"pow-right", "2 ^ 3 ^ 2", []Token{num(2), num(3), num(2), pow, pow}},
		{"neg", "-2 + 3", []Token{num(2), neg, num(3), add}},
		{"neg-mul", "2 * -3", []Token{num(2), num(3), neg, mul}},
		{"neg-neg", "--3", []Token{num(3), neg, neg}},
		{"neg-pow", "-2 ^ 2", []Token{num(2), neg, num(2), pow}},
		{"var", "a * 2", []Token{num(10), num(2), mul}},
		{"call", "f 5", []Token{num(5), call("f", 1)}},
		{"call-binds", "f 2 + 3", []Token{num(2), call("f", 1), num(3), add}},
		{"call-paren", "f(2 + 3)", []Token{num(2), num(3), add, call("f", 1)}},
		{"call-two", "g(1, 2) * 3", []Token{num(1), num(2), call("g", 2), num(3), mul}},
		{"call-bare", "g 1 2", []Token{num(1), num(2), call("g", 2)}},
		{"call-nested", "g(f(1), 3)", []Token{num(1), call("f", 1), num(3), call("g", 2)}},
		{"builtin", "min(10, 15)", []Token{num(10), num(15), call("min", 2)}},
		{"neg-call", "-f(3)", []Token{num(3), call("f", 1), neg}},
		{"neg-first-arg", "g(-1, 2)", []Token{num(1), neg, num(2), call("g", 2)}},
		{"sum-arg", "g(1 + 2, 3)", []Token{num(1), num(2), add, num(3), call("g", 2)}},
		{"bare-call-arg", "g(f 1, 3)", []Token{num(1), call("f", 1), num(3), call("g", 2)}},
		{"bare-comma", "g 1, -2", []Token{num(1), num(2), neg, call("g", 2)}},
		{"group-bare-comma", "(g 7, 2)", []Token{num(7), num(2), call("g", 2)}},
		{"sum-group-bare-comma", "1 + (g 7, 2)", []Token{num(1), num(7), num(2), call("g", 2), add}},
		{"builtin-group-bare-comma", "(min 1, 2)", []Token{num(1), num(2), call("min", 2)}},
		{"call-in-group-call", "g((g 7, 2), 1)", []Token{num(7), num(2), call("g", 2), num(1), call("g", 2)}},
		{"juxtaposed-group", "g (1+1) 3", []Token{num(1), num(1), add, num(3), call("g", 2)}},
		{"juxtaposed-groups", "g (5) (2)", []Token{num(5), num(2), call("g", 2)}},
		{"short-list-then-op", "g (5) 2 * 3", []Token{num(5), num(2), call("g", 2), num(3), mul}},
	}
	ctx := parseContext(t)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := TokenizeString(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to lex:", err)
			}
			rpn, err := ParseRPN(toks, ctx)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			if !equalTokens(rpn, c.rpn) {
				t.Errorf("%q gave wrong RPN:\n\twant %v\n\tgot  %v", c.src, c.rpn, rpn)
			}
		})
	}
}

func TestParseRPNErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		check func(error) bool
	}{
		{"unknown", "x + 1", func(err error) bool {
			var e *NameError
			return errors.As(err, &e) && e.Name == "x"
		}},
		{"open", "(2 + 3", func(err error) bool {
			var e *BracketError
			return errors.As(err, &e) && e.Open
		}},
		{"close", "2 + 3)", func(err error) bool {
			var e *BracketError
			return errors.As(err, &e) && !e.Open
		}},
		{"close-first", ")(", func(err error) bool {
			var e *BracketError
			return errors.As(err, &e) && !e.Open
		}},
		{"assign", "2 = 3", func(err error) bool {
			var e *SyntaxError
			return errors.As(err, &e) && e.Token == "="
		}},
		{"keyword", "1 + var", func(err error) bool {
			var e *SyntaxError
			return errors.As(err, &e) && e.Token == "var"
		}},
	}
	ctx := parseContext(t)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := TokenizeString(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to lex:", err)
			}
			rpn, err := ParseRPN(toks, ctx)
			if err == nil {
				t.Fatalf("%q parsed without error to %v", c.src, rpn)
			}
			if !c.check(err) {
				t.Errorf("%q gave wrong error %#v", c.src, err)
			}
			if Phase(err) != "parse" {
				t.Errorf("%q: error %v has phase %q", c.src, err, Phase(err))
			}
		})
	}
}

func TestDominates(t *testing.T) {
	cases := []struct {
		top  Token
		op   Operator
		want bool
	}{
		{call("f", 1), OpAdd, true},
		{call("f", 1), OpNeg, true},
		{Op(OpLParen), OpMul, false},
		{Op(OpMul), OpAdd, true},
		{Op(OpAdd), OpMul, false},
		{Op(OpSub), OpAdd, true},
		{Op(OpPow), OpPow, false},
		{Op(OpNeg), OpNeg, false},
		{Op(OpNeg), OpPow, true},
		{num(1), OpAdd, false},
	}
	for _, c := range cases {
		if got := dominates(c.top, c.op); got != c.want {
			t.Errorf("dominates(%v, %v): want %t, got %t", c.top, c.op, c.want, got)
		}
	}
}
