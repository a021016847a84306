package rpncalc

import (
	"strings"
)

// Tree is the expression tree of a postfix token sequence, used to show how
// an expression was grouped.
type Tree struct {
	n *node
}

// node is a node in the tree of an expression. Operators have their operands
// in args, in source order; calls have their arguments.
type node struct {
	tok  Token
	args []*node
}

// BuildTree reconstructs the tree of a postfix token sequence. It fails in
// the same ways as EvalRPN when operands are missing or left over, without
// calling any functions.
func BuildTree(rpn []Token) (*Tree, error) {
	var stack []*node
	for _, tok := range rpn {
		var n int
		switch tok.Kind {
		case TokenValue:
			n = 0
		case TokenOp:
			n = 2
			if tok.Op.Unary() {
				n = 1
			}
		case TokenFunc:
			n = tok.Func.Arity
		default:
			panic("rpncalc: unresolved token in RPN: " + tok.String())
		}
		if len(stack) < n {
			return nil, &StackError{Op: tok.String(), Want: n, Have: len(stack)}
		}
		k := len(stack) - n
		nd := &node{tok: tok, args: append([]*node(nil), stack[k:]...)}
		stack = append(stack[:k], nd)
	}
	if len(stack) != 1 {
		return nil, &StackError{Want: 1, Have: len(stack)}
	}
	return &Tree{n: stack[0]}, nil
}

// String creates a string representation of the tree, with alternating round
// and square brackets grouping each term.
func (t *Tree) String() string {
	var b strings.Builder
	t.n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.tok.Kind {
	case TokenValue:
		b.WriteString(n.tok.String())
	case TokenFunc:
		b.WriteString(n.tok.String())
		n.fmtargs(b, !square)
	case TokenOp:
		if n.tok.Op.Unary() {
			b.WriteString(n.tok.String())
			n.args[0].fmt(b, !square)
			return
		}
		n.args[0].fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.tok.String())
		b.WriteByte(' ')
		n.args[1].fmt(b, !square)
	default:
		panic("rpncalc: invalid node " + n.tok.Kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtargs(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	for i, a := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b, !square)
	}
}
