package rpncalc

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Function is a user-defined function: a named body of tokens with a fixed
// list of parameters. A Function is immutable once created.
type Function struct {
	name Ident
	args []Ident
	code []Token
}

// NewFunction creates a function. The name must not be the zero Ident, the
// parameter names must be distinct, and the body must be non-empty. The body
// is not checked further until the function is called.
func NewFunction(name Ident, args []Ident, code []Token) (*Function, error) {
	if name.IsZero() {
		return nil, &DeclError{Decl: "function", Reason: NoName}
	}
	seen := make(map[Ident]bool, len(args))
	for _, a := range args {
		if seen[a] {
			return nil, &DeclError{Decl: "function", Name: name.name, Reason: DupParam, Got: a.name}
		}
		seen[a] = true
	}
	if len(code) == 0 {
		return nil, &DeclError{Decl: "function", Name: name.name, Reason: EmptyBody}
	}
	f := Function{
		name: name,
		args: append([]Ident(nil), args...),
		code: append([]Token(nil), code...),
	}
	return &f, nil
}

// Name returns the function's name.
func (f *Function) Name() Ident {
	return f.name
}

// Arity returns the number of parameters.
func (f *Function) Arity() int {
	return len(f.args)
}

// Args returns a copy of the parameter names.
func (f *Function) Args() []Ident {
	return append([]Ident(nil), f.args...)
}

// Code returns a copy of the body.
func (f *Function) Code() []Token {
	return append([]Token(nil), f.code...)
}

// Call evaluates the function body with args bound to its parameters. Other
// names in the body are the context's variables, read at call time, or
// functions, resolved when the substituted body is parsed.
func (f *Function) Call(ctx *Context, args []float64) (float64, error) {
	if len(args) != len(f.args) {
		return 0, &CallError{Func: f.name.name, Want: len(f.args), Have: len(args)}
	}
	if ctx.depth >= ctx.max {
		return 0, &DepthError{Func: f.name.name, Depth: ctx.max}
	}
	code, err := f.substitute(ctx, args)
	if err != nil {
		return 0, &FuncError{Func: f.name.name, Err: err}
	}
	ctx.depth++
	defer func() { ctx.depth-- }()
	ctx.log.WithFields(logrus.Fields{"func": f.name.name, "args": args, "depth": ctx.depth}).Debug("call")
	r, err := Eval(code, ctx)
	if err != nil {
		if _, ok := err.(*DepthError); ok {
			return 0, err
		}
		return 0, &FuncError{Func: f.name.name, Err: err}
	}
	return r, nil
}

// substitute builds the body to evaluate for a call.
func (f *Function) substitute(ctx *Context, args []float64) ([]Token, error) {
	code := make([]Token, len(f.code))
	for i, tok := range f.code {
		if tok.Kind != TokenIdent {
			code[i] = tok
			continue
		}
		if k := f.param(tok.Ident); k >= 0 {
			code[i] = Num(args[k])
			continue
		}
		if v, ok := ctx.Lookup(tok.Ident); ok {
			code[i] = Num(v)
			continue
		}
		if !ctx.isFunc(tok.Ident) {
			return nil, &NameError{Name: tok.Ident.name}
		}
		code[i] = tok
	}
	return code, nil
}

// param returns the index of the named parameter, or -1.
func (f *Function) param(name Ident) int {
	for i, a := range f.args {
		if a == name {
			return i
		}
	}
	return -1
}

// String renders f as a declaration that lexes back to the same tokens.
func (f *Function) String() string {
	var b strings.Builder
	b.WriteString("function ")
	b.WriteString(f.name.name)
	for _, a := range f.args {
		b.WriteByte(' ')
		b.WriteString(a.name)
	}
	b.WriteString(" = ")
	b.WriteString(FormatTokens(f.code))
	return b.String()
}
