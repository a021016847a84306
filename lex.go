package rpncalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	toks []Token
	// operand is whether the next token is in operand position, where a -
	// is negation rather than subtraction.
	operand bool
}

// Tokenize reads src to EOF and returns its tokens.
func Tokenize(src io.RuneScanner) ([]Token, error) {
	l := lexer{src: src, operand: true}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return l.toks, nil
			}
			return nil, err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '-' && l.operand:
			l.emit(Op(OpNeg))
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			v, err := l.scanNum()
			if err != nil {
				return nil, err
			}
			l.emit(Num(v))
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			tok, err := l.scanIdent()
			if err != nil {
				return nil, err
			}
			l.emit(tok)
		default:
			op := operator(r)
			if op == OpNone {
				// Write the rune so that it shows up in the error message.
				l.buf.WriteRune(r)
				return nil, l.error("")
			}
			l.emit(Op(op))
		}
	}
}

// TokenizeString is a shortcut to tokenize a string.
func TokenizeString(src string) ([]Token, error) {
	return Tokenize(strings.NewReader(src))
}

// emit appends a token and updates whether the next token is an operand.
func (l *lexer) emit(tok Token) {
	l.toks = append(l.toks, tok)
	l.operand = tok.Kind == TokenOp && tok.Op != OpRParen
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// scanNum scans a literal of digits with at most one decimal point.
func (l *lexer) scanNum() (float64, error) {
	defer l.buf.Reset()
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		if r == '.' {
			if dot {
				l.buf.WriteRune(r)
				return 0, l.error("number")
			}
			dot = true
		} else if '0' <= r && r <= '9' {
			dig = true
		} else {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	if !dig {
		return 0, l.error("number")
	}
	v, err := strconv.ParseFloat(l.buf.String(), 64)
	if err != nil {
		// The literal is well-formed, so it overflows.
		return 0, l.error("number")
	}
	return v, nil
}

// scanIdent scans a word and classifies it as a keyword or identifier.
func (l *lexer) scanIdent() (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Tokenize unreads the rune that decides ident scanning
				// before calling scanIdent, so we have scanned at least one
				// rune.
				break
			}
			return Token{}, err
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
	}
	s := l.buf.String()
	if k := keyword(s); k != KeywordNone {
		return Kw(k), nil
	}
	id, ok := NewIdent(s)
	if !ok {
		return Token{}, l.error("identifier")
	}
	return Name(id), nil
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// LexError indicates an invalid token.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "identifier", or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	if err.Kind == "number" && strings.Count(err.Text, ".") > 1 {
		return "unexpected '.' at " + pos + " when parsing " + strconv.Quote(err.Text[:len(err.Text)-1])
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

// Pos returns the column of the error.
func (err *LexError) Pos() int {
	return err.Col
}
