package rpncalc_test

import "github.com/zephyrtronium/rpncalc"

var (
	add    = rpncalc.Op(rpncalc.OpAdd)
	sub    = rpncalc.Op(rpncalc.OpSub)
	mul    = rpncalc.Op(rpncalc.OpMul)
	div    = rpncalc.Op(rpncalc.OpDiv)
	neg    = rpncalc.Op(rpncalc.OpNeg)
	pow    = rpncalc.Op(rpncalc.OpPow)
	assign = rpncalc.Op(rpncalc.OpAssign)
	lparen = rpncalc.Op(rpncalc.OpLParen)
	rparen = rpncalc.Op(rpncalc.OpRParen)
	comma  = rpncalc.Op(rpncalc.OpComma)
)

func num(v float64) rpncalc.Token {
	return rpncalc.Num(v)
}

func name(s string) rpncalc.Token {
	return rpncalc.Name(rpncalc.MustIdent(s))
}

func call(s string, n int) rpncalc.Token {
	return rpncalc.Call(rpncalc.MustIdent(s), n)
}

func equalTokens(a, b []rpncalc.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
