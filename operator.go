package rpncalc

import (
	"math"
	"strconv"
)

// Operator is an arithmetic operator, assignment, or parenthesis.
type Operator int8

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	// OpNeg is unary negation. The lexer produces it for a - in operand
	// position.
	OpNeg
	OpPow
	// OpAssign separates a declaration from its body. It never reaches the
	// evaluator.
	OpAssign
	OpLParen
	OpRParen
	// OpComma separates function arguments. It orders parsing but never
	// reaches the parser's output.
	OpComma
)

// Operators contains the runes which the lexer reads as operators.
const Operators = "+-*/^=(),"

func operator(r rune) Operator {
	switch r {
	case '+':
		return OpAdd
	case '-':
		return OpSub
	case '*':
		return OpMul
	case '/':
		return OpDiv
	case '^':
		return OpPow
	case '=':
		return OpAssign
	case '(':
		return OpLParen
	case ')':
		return OpRParen
	case ',':
		return OpComma
	default:
		return OpNone
	}
}

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub, OpNeg:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpAssign:
		return "="
	case OpLParen:
		return "("
	case OpRParen:
		return ")"
	case OpComma:
		return ","
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// Precedence returns the binding strength of op. Higher binds tighter.
// Operators without an arithmetic meaning have precedence 0.
func (op Operator) Precedence() int {
	switch op {
	case OpNeg:
		return 7
	case OpPow:
		return 6
	case OpMul, OpDiv:
		return 5
	case OpAdd, OpSub:
		return 4
	default:
		return 0
	}
}

// RightAssoc returns whether op groups right to left. Exponentiation and
// the prefix negation do; everything else groups left to right.
func (op Operator) RightAssoc() bool {
	return op == OpPow || op == OpNeg
}

// Unary returns whether op takes a single operand.
func (op Operator) Unary() bool {
	return op == OpNeg
}

// Operate applies a binary operator to operands in stack pop order: rhs was
// popped first, so it is the later operand in the source text. OpNeg negates
// rhs and ignores lhs. A NaN produced from non-NaN operands is a DomainError.
func (op Operator) Operate(rhs, lhs float64) (float64, error) {
	var r float64
	switch op {
	case OpAdd:
		r = lhs + rhs
	case OpSub:
		r = lhs - rhs
	case OpMul:
		r = lhs * rhs
	case OpDiv:
		r = lhs / rhs
	case OpPow:
		r = math.Pow(lhs, rhs)
	case OpNeg:
		return -rhs, nil
	default:
		panic("rpncalc: Operate on " + op.String())
	}
	if math.IsNaN(r) && !math.IsNaN(lhs) && !math.IsNaN(rhs) {
		return 0, &DomainError{X: lhs, Func: op.String()}
	}
	return r, nil
}
