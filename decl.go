package rpncalc

import "strings"

// ParseFunctionDecl creates a function from a declaration of the form
// "function name a b ... = body". The first token must be the function
// keyword.
func ParseFunctionDecl(toks []Token) (*Function, error) {
	if len(toks) == 0 || toks[0] != Kw(KeywordFunction) {
		panic("rpncalc: ParseFunctionDecl without function keyword")
	}
	if len(toks) < 2 || toks[1].Kind != TokenIdent {
		return nil, &DeclError{Decl: "function", Reason: NoName, Got: tokenAt(toks, 1)}
	}
	name := toks[1].Ident
	var args []Ident
	k := 2
	for ; k < len(toks); k++ {
		tok := toks[k]
		if tok.Is(OpAssign) {
			break
		}
		if tok.Kind != TokenIdent {
			return nil, &DeclError{Decl: "function", Name: name.name, Reason: BadParam, Got: tok.String()}
		}
		args = append(args, tok.Ident)
	}
	if k == len(toks) {
		return nil, &DeclError{Decl: "function", Name: name.name, Reason: NoAssign}
	}
	return NewFunction(name, args, toks[k+1:])
}

// ParseVarDecl splits a declaration of the form "var name = body" into the
// variable name and the body. The first token must be the var keyword.
func ParseVarDecl(toks []Token) (Ident, []Token, error) {
	if len(toks) == 0 || toks[0] != Kw(KeywordVar) {
		panic("rpncalc: ParseVarDecl without var keyword")
	}
	if len(toks) < 2 || toks[1].Kind != TokenIdent {
		return Ident{}, nil, &DeclError{Decl: "var", Reason: NoName, Got: tokenAt(toks, 1)}
	}
	name := toks[1].Ident
	if len(toks) < 3 || !toks[2].Is(OpAssign) {
		return Ident{}, nil, &DeclError{Decl: "var", Name: name.name, Reason: NoAssign, Got: tokenAt(toks, 2)}
	}
	if len(toks) == 3 {
		return Ident{}, nil, &DeclError{Decl: "var", Name: name.name, Reason: EmptyBody}
	}
	return name, toks[3:], nil
}

func tokenAt(toks []Token, k int) string {
	if k >= len(toks) {
		return ""
	}
	return toks[k].String()
}

// ResultKind identifies what an executed line did.
type ResultKind int8

const (
	// ResultExpr is an evaluated expression.
	ResultExpr ResultKind = iota
	// ResultVar is a variable declaration.
	ResultVar
	// ResultFunc is a function declaration.
	ResultFunc
)

// Result is the outcome of executing a line.
type Result struct {
	Kind ResultKind
	// Value is the value of the expression or the new variable.
	Value float64
	// Name is the declared name for ResultVar and ResultFunc.
	Name Ident
	// Func is the new function for ResultFunc.
	Func *Function
}

// Exec executes one line of input: a function declaration, a variable
// declaration, or an expression. Variable declarations evaluate their
// bodies immediately. If Exec returns an error, ctx is unchanged.
func (ctx *Context) Exec(line string) (Result, error) {
	toks, err := Tokenize(strings.NewReader(line))
	if err != nil {
		return Result{}, err
	}
	return ctx.ExecTokens(toks)
}

// ExecTokens is like Exec but with a line that is already tokenized.
func (ctx *Context) ExecTokens(toks []Token) (Result, error) {
	if len(toks) == 0 || toks[0].Kind != TokenKeyword {
		v, err := Eval(toks, ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultExpr, Value: v}, nil
	}
	switch toks[0].Keyword {
	case KeywordFunction:
		f, err := ParseFunctionDecl(toks)
		if err != nil {
			return Result{}, err
		}
		ctx.Define(f)
		return Result{Kind: ResultFunc, Name: f.name, Func: f}, nil
	case KeywordVar:
		name, body, err := ParseVarDecl(toks)
		if err != nil {
			return Result{}, err
		}
		v, err := Eval(body, ctx)
		if err != nil {
			return Result{}, err
		}
		ctx.Set(name, v)
		return Result{Kind: ResultVar, Value: v, Name: name}, nil
	default:
		panic("rpncalc: unknown keyword " + toks[0].Keyword.String())
	}
}
