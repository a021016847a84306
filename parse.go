package rpncalc

// ParseRPN reorders an infix token sequence into postfix order with the
// shunting-yard algorithm. Identifiers are resolved against ctx as they are
// read: variables become values and functions become call tokens, so the
// result holds only values, arithmetic operators, and calls.
//
// A call binds tighter than any operator: it is moved to the output as soon
// as an operator would pop past it, so "f 2 + 3" is "f(2) + 3" while
// "f(2 + 3)" passes the sum to f. A call is also output when a parenthesized
// argument list directly after it closes holding all of its arguments, so
// "max(f(1), 3)" passes f(1) to max. A shorter list leaves the call waiting
// for the rest, as in "g (1+1) 3".
func ParseRPN(toks []Token, ctx *Context) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	var stack []Token
	// groups has an entry for each open parenthesis on stack.
	var groups []group
	for _, tok := range toks {
		switch tok.Kind {
		case TokenValue:
			out = append(out, tok)
		case TokenIdent:
			r, err := ctx.resolve(tok.Ident)
			if err != nil {
				return nil, err
			}
			if r.Kind == TokenFunc {
				stack = append(stack, r)
			} else {
				out = append(out, r)
			}
		case TokenFunc:
			stack = append(stack, tok)
		case TokenKeyword:
			return nil, &SyntaxError{Token: tok.String()}
		case TokenOp:
			switch tok.Op {
			case OpLParen:
				call := len(stack) > 0 && stack[len(stack)-1].Kind == TokenFunc
				groups = append(groups, group{call: call})
				stack = append(stack, tok)
			case OpRParen:
				for {
					if len(stack) == 0 {
						return nil, &BracketError{Open: false}
					}
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					if top.Is(OpLParen) {
						break
					}
					out = append(out, top)
				}
				g := groups[len(groups)-1]
				groups = groups[:len(groups)-1]
				if g.call {
					// The call is directly beneath the parenthesis.
					top := stack[len(stack)-1]
					if top.Func.Arity == g.commas+1 {
						out = append(out, top)
						stack = stack[:len(stack)-1]
					}
				}
			case OpComma:
				// Finish the previous argument. In a call's argument list,
				// that is everything down to the open parenthesis. Elsewhere,
				// the argument belongs to the nearest pending call.
				var inCall bool
				if len(groups) > 0 {
					groups[len(groups)-1].commas++
					inCall = groups[len(groups)-1].call
				}
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					if top.Is(OpLParen) || !inCall && top.Kind == TokenFunc {
						break
					}
					out = append(out, top)
					stack = stack[:len(stack)-1]
				}
			case OpAssign:
				// Declarations strip their = before the body is parsed.
				return nil, &SyntaxError{Token: tok.String()}
			case OpAdd, OpSub, OpMul, OpDiv, OpNeg, OpPow:
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					if !dominates(top, tok.Op) {
						break
					}
					out = append(out, top)
					stack = stack[:len(stack)-1]
				}
				stack = append(stack, tok)
			default:
				panic("rpncalc: unknown operator " + tok.Op.String())
			}
		default:
			panic("rpncalc: unknown token: " + tok.Kind.String())
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Is(OpLParen) {
			return nil, &BracketError{Open: true}
		}
		out = append(out, top)
	}
	return out, nil
}

// dominates returns whether the operator stack top must be output before op
// is pushed.
func dominates(top Token, op Operator) bool {
	switch top.Kind {
	case TokenFunc:
		return true
	case TokenOp:
		if top.Op == OpLParen {
			return false
		}
		if op.RightAssoc() {
			return top.Op.Precedence() > op.Precedence()
		}
		return top.Op.Precedence() >= op.Precedence()
	default:
		return false
	}
}

// group is an open parenthesis being parsed.
type group struct {
	// call is whether the parenthesis opens the argument list of the call
	// beneath it on the operator stack.
	call bool
	// commas is the number of commas at this nesting level so far.
	commas int
}
