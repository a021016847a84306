package rpncalc

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// EvalRPN evaluates a postfix token sequence as produced by ParseRPN. Calls
// consume their arity's worth of values from the stack, with the earliest
// pushed value as the first argument. Exactly one value must remain at the
// end.
func EvalRPN(rpn []Token, ctx *Context) (float64, error) {
	stack := make([]float64, 0, len(rpn))
	for _, tok := range rpn {
		switch tok.Kind {
		case TokenValue:
			stack = append(stack, tok.Value)
		case TokenOp:
			n := 2
			if tok.Op.Unary() {
				n = 1
			}
			if len(stack) < n {
				return 0, &StackError{Op: tok.Op.String(), Want: n, Have: len(stack)}
			}
			rhs := stack[len(stack)-1]
			var lhs float64
			if n == 2 {
				lhs = stack[len(stack)-2]
			}
			r, err := tok.Op.Operate(rhs, lhs)
			if err != nil {
				return 0, err
			}
			stack = stack[:len(stack)-n]
			stack = append(stack, r)
		case TokenFunc:
			n := tok.Func.Arity
			if len(stack) < n {
				return 0, &StackError{Op: tok.Func.Name.String(), Want: n, Have: len(stack)}
			}
			k := len(stack) - n
			args := make([]float64, n)
			copy(args, stack[k:])
			r, err := ctx.CallFunction(tok.Func.Name, args)
			if err != nil {
				return 0, err
			}
			stack = append(stack[:k], r)
		case TokenIdent, TokenKeyword:
			panic("rpncalc: unresolved token in RPN: " + tok.String())
		default:
			panic("rpncalc: unknown token: " + tok.Kind.String())
		}
	}
	if len(stack) != 1 {
		return 0, &StackError{Want: 1, Have: len(stack)}
	}
	return stack[0], nil
}

// Eval parses an infix token sequence against ctx and evaluates it.
func Eval(toks []Token, ctx *Context) (float64, error) {
	rpn, err := ParseRPN(toks, ctx)
	if err != nil {
		return 0, err
	}
	ctx.log.WithFields(logrus.Fields{"rpn": FormatTokens(rpn), "depth": ctx.depth}).Debug("evaluating")
	return EvalRPN(rpn, ctx)
}

// EvalReader is a shortcut to lex, parse, and evaluate an expression.
func EvalReader(src io.RuneScanner, ctx *Context) (float64, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return 0, err
	}
	return Eval(toks, ctx)
}

// EvalString is a shortcut to lex, parse, and evaluate a string expression.
func EvalString(src string, ctx *Context) (float64, error) {
	return EvalReader(strings.NewReader(src), ctx)
}
