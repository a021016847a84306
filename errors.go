package rpncalc

import (
	"errors"
	"strconv"
)

// DeclReason identifies why a declaration is malformed.
type DeclReason int8

const (
	// NoName means the declaration keyword is not followed by an identifier.
	NoName DeclReason = iota + 1
	// BadParam means a function parameter list contains a non-identifier.
	BadParam
	// EmptyBody means there is nothing after the =.
	EmptyBody
	// DupParam means a function names the same parameter twice.
	DupParam
	// NoAssign means a variable name is not followed by =.
	NoAssign
)

func (r DeclReason) String() string {
	switch r {
	case NoName:
		return "missing identifier"
	case BadParam:
		return "expected parameter identifier"
	case EmptyBody:
		return "empty body"
	case DupParam:
		return "duplicate parameter"
	case NoAssign:
		return "expected ="
	default:
		return "DeclReason(" + strconv.Itoa(int(r)) + ")"
	}
}

// DeclError is an error indicating a malformed function or variable
// declaration.
type DeclError struct {
	// Decl is the declaration keyword, "function" or "var".
	Decl string
	// Name is the declared name, if one was found.
	Name string
	// Reason is what was wrong.
	Reason DeclReason
	// Got is the offending token, if any.
	Got string
}

func (err *DeclError) Error() string {
	s := "in " + err.Decl + " declaration"
	if err.Name != "" {
		s += " of " + err.Name
	}
	s += ": " + err.Reason.String()
	if err.Got != "" {
		s += ", got " + strconv.Quote(err.Got)
	}
	return s
}

// NameError is an error from a lookup for a name that is neither a variable
// nor a function.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "unknown identifier " + strconv.Quote(err.Name)
}

// BracketError is an error indicating mismatched parentheses.
type BracketError struct {
	// Open is true for an open parenthesis that is never closed and false
	// for a close parenthesis with no open one.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return "mismatched parentheses: ( with no )"
	}
	return "mismatched parentheses: ) with no ("
}

// SyntaxError is an error indicating a token that cannot appear in an
// expression, such as = or a declaration keyword.
type SyntaxError struct {
	// Token is the string form of the token.
	Token string
}

func (err *SyntaxError) Error() string {
	return "unexpected " + strconv.Quote(err.Token) + " in expression"
}

// StackError is an error indicating that the operand stack did not hold the
// expected number of values.
type StackError struct {
	// Op is the operator or function that needed operands. If Op is empty,
	// the error is about the stack at the end of evaluation.
	Op string
	// Want is the number of values needed.
	Want int
	// Have is the number of values available.
	Have int
}

func (err *StackError) Error() string {
	if err.Op == "" {
		return "failed: stack not fully reduced (" + strconv.Itoa(err.Have) + " values remain)"
	}
	return "not enough items on stack to call " + err.Op + ": need " + strconv.Itoa(err.Want) + ", have " + strconv.Itoa(err.Have)
}

// CallError is an error indicating a function call with the wrong number of
// arguments.
type CallError struct {
	// Func is the function name that was called.
	Func string
	// Want is the number of arguments the function takes.
	Want int
	// Have is the number of arguments supplied.
	Have int
}

func (err *CallError) Error() string {
	return "cannot call " + err.Func + ": expected " + strconv.Itoa(err.Want) + " arguments, received " + strconv.Itoa(err.Have)
}

// DomainError is an error returned when an operator or function is applied
// to arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

// DepthError is an error indicating that function calls nested deeper than
// the context allows, usually because a function calls itself.
type DepthError struct {
	// Func is the function whose call exceeded the limit.
	Func string
	// Depth is the limit.
	Depth int
}

func (err *DepthError) Error() string {
	return "calling " + err.Func + ": exceeded maximum call depth " + strconv.Itoa(err.Depth)
}

// FuncError wraps an error that occurred while evaluating the body of a
// user-defined function.
type FuncError struct {
	// Func is the function being called.
	Func string
	// Err is the error from the body.
	Err error
}

func (err *FuncError) Error() string {
	return "in " + err.Func + ": " + err.Err.Error()
}

func (err *FuncError) Unwrap() error {
	return err.Err
}

// Phase classifies an error by the stage that produced it: "lex",
// "declaration", "parse", or "eval". The result is the empty string for
// errors from outside the package.
func Phase(err error) string {
	var (
		lex    *LexError
		decl   *DeclError
		name   *NameError
		brack  *BracketError
		syntax *SyntaxError
		stack  *StackError
		call   *CallError
		domain *DomainError
		depth  *DepthError
		fn     *FuncError
	)
	switch {
	case errors.As(err, &fn):
		// Anything that fails inside a function body fails at call time.
		return "eval"
	case errors.As(err, &lex):
		return "lex"
	case errors.As(err, &decl):
		return "declaration"
	case errors.As(err, &brack), errors.As(err, &syntax), errors.As(err, &name):
		return "parse"
	case errors.As(err, &stack), errors.As(err, &call), errors.As(err, &domain), errors.As(err, &depth):
		return "eval"
	default:
		return ""
	}
}
