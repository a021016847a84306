package rpncalc

import (
	"regexp"
	"strconv"
	"strings"
)

// Ident is a validated identifier. The zero Ident is not valid; create one
// with NewIdent. Idents compare by name and may be used as map keys.
type Ident struct {
	name string
}

var identre = regexp.MustCompile(`^[\pL_][\pL\p{Nd}_]*$`)

// NewIdent validates name as an identifier. An identifier starts with a letter
// or underscore, followed by any number of letters, digits, and underscores.
func NewIdent(name string) (Ident, bool) {
	if !identre.MatchString(name) {
		return Ident{}, false
	}
	return Ident{name}, true
}

// MustIdent is like NewIdent but panics if name is not a valid identifier.
func MustIdent(name string) Ident {
	id, ok := NewIdent(name)
	if !ok {
		panic("rpncalc: invalid identifier " + strconv.Quote(name))
	}
	return id
}

func (id Ident) String() string {
	return id.name
}

// IsZero returns whether id is the zero Ident.
func (id Ident) IsZero() bool {
	return id.name == ""
}

// Keyword is a declaration marker. Keywords never appear in an evaluated
// expression.
type Keyword int8

const (
	KeywordNone Keyword = iota
	// KeywordFunction starts a function declaration.
	KeywordFunction
	// KeywordVar starts a variable declaration.
	KeywordVar
)

func keyword(s string) Keyword {
	switch s {
	case "function":
		return KeywordFunction
	case "var":
		return KeywordVar
	default:
		return KeywordNone
	}
}

func (k Keyword) String() string {
	switch k {
	case KeywordFunction:
		return "function"
	case KeywordVar:
		return "var"
	default:
		return "Keyword(" + strconv.Itoa(int(k)) + ")"
	}
}

// FuncRef is a resolved function call marker. Arity is the number of operands
// the call consumes, captured when the name was resolved.
type FuncRef struct {
	Name  Ident
	Arity int
}

// TokenKind identifies the variant of a Token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenValue is a numeric literal or resolved variable.
	TokenValue
	// TokenOp is an operator or parenthesis.
	TokenOp
	// TokenFunc is a resolved function call. It appears only in parser
	// output.
	TokenFunc
	// TokenIdent is an unresolved name.
	TokenIdent
	// TokenKeyword is a declaration keyword.
	TokenKeyword
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenValue:
		return "Value"
	case TokenOp:
		return "Op"
	case TokenFunc:
		return "Func"
	case TokenIdent:
		return "Ident"
	case TokenKeyword:
		return "Keyword"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one unit of an expression. Kind selects which of the remaining
// fields is meaningful; the others are zero. Tokens are comparable, and two
// tokens are equal iff they have the same kind and payload.
type Token struct {
	Kind    TokenKind
	Value   float64
	Op      Operator
	Func    FuncRef
	Ident   Ident
	Keyword Keyword
}

// Num creates a value token.
func Num(v float64) Token {
	return Token{Kind: TokenValue, Value: v}
}

// Op creates an operator token.
func Op(op Operator) Token {
	return Token{Kind: TokenOp, Op: op}
}

// Name creates an identifier token.
func Name(id Ident) Token {
	return Token{Kind: TokenIdent, Ident: id}
}

// Call creates a resolved function call token.
func Call(name Ident, arity int) Token {
	return Token{Kind: TokenFunc, Func: FuncRef{Name: name, Arity: arity}}
}

// Kw creates a keyword token.
func Kw(k Keyword) Token {
	return Token{Kind: TokenKeyword, Keyword: k}
}

// Is returns whether t is the given operator.
func (t Token) Is(op Operator) bool {
	return t.Kind == TokenOp && t.Op == op
}

// String formats the token the way the lexer reads it, so that joining a
// token sequence with spaces and lexing it again gives the same sequence.
func (t Token) String() string {
	switch t.Kind {
	case TokenValue:
		return strconv.FormatFloat(t.Value, 'f', -1, 64)
	case TokenOp:
		return t.Op.String()
	case TokenFunc:
		return t.Func.Name.String()
	case TokenIdent:
		return t.Ident.String()
	case TokenKeyword:
		return t.Keyword.String()
	default:
		return "<none>"
	}
}

// FormatTokens joins the string forms of a token sequence with spaces.
func FormatTokens(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}
