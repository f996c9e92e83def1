package optimizer

import (
	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/token"
	"github.com/vismutlang/vismut/internal/types"
)

// literalIsZero/literalIsOne report whether lit is the literal 0/1 of
// its own numeric type (I64 or F64).
func literalIsZero(lit *ast.Node) bool {
	if lit.Kind != ast.Literal {
		return false
	}
	switch lit.ExprType {
	case types.I64:
		return lit.IntValue == 0
	case types.F64:
		return lit.FloatValue == 0
	default:
		return false
	}
}

func literalIsOne(lit *ast.Node) bool {
	if lit.Kind != ast.Literal {
		return false
	}
	switch lit.ExprType {
	case types.I64:
		return lit.IntValue == 1
	case types.F64:
		return lit.FloatValue == 1
	default:
		return false
	}
}

func zeroOfType(a *arena.Arena, t types.VT, span token.Span) *ast.Node {
	if t == types.F64 {
		return ast.NewFloatLiteral(a, 0, span)
	}
	return ast.NewIntLiteral(a, 0, span)
}

func oneOfType(a *arena.Arena, t types.VT, span token.Span) *ast.Node {
	if t == types.F64 {
		return ast.NewFloatLiteral(a, 1, span)
	}
	return ast.NewIntLiteral(a, 1, span)
}

// applyAlgebraicIdentity implements spec §4.6's algebraic-identity
// table. It fires only when exactly one side needs to stay dynamic
// (the other is the identity's literal operand); a binary with both
// sides literal is handled by foldBinary instead.
func applyAlgebraicIdentity(a *arena.Arena, n *ast.Node) (*ast.Node, bool) {
	if !types.IsNumeric(n.Left.ExprType) || n.Left.ExprType != n.Right.ExprType {
		return nil, false
	}

	switch n.BinOp {
	case types.Mul:
		if literalIsZero(n.Left) || literalIsZero(n.Right) {
			return zeroOfType(a, n.ExprType, n.Span), true
		}
		if literalIsOne(n.Left) {
			return n.Right, true
		}
		if literalIsOne(n.Right) {
			return n.Left, true
		}
	case types.Add:
		if literalIsZero(n.Left) {
			return n.Right, true
		}
		if literalIsZero(n.Right) {
			return n.Left, true
		}
	case types.Pow:
		if literalIsZero(n.Right) {
			return oneOfType(a, n.ExprType, n.Span), true
		}
		if literalIsOne(n.Right) {
			return n.Left, true
		}
		if literalIsZero(n.Left) {
			// 0 ** x -> 0. x == 0 is not assumed (matches the source;
			// 0 ** 0 is handled by x ** 0 -> 1 above, which is checked
			// first).
			return zeroOfType(a, n.ExprType, n.Span), true
		}
		if literalIsOne(n.Left) {
			return oneOfType(a, n.ExprType, n.Span), true
		}
	}
	return nil, false
}
