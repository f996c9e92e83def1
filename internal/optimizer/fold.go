package optimizer

import (
	"math"

	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/token"
	"github.com/vismutlang/vismut/internal/types"
)

const (
	maxI64 = math.MaxInt64
	minI64 = math.MinInt64
)

// optimizeExpr rewrites *slot in place, post-order: children first,
// then the node itself if it is pure.
func (o *optimizer) optimizeExpr(slot **ast.Node) {
	n := *slot
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Binary:
		o.optimizeExpr(&n.Left)
		o.optimizeExpr(&n.Right)
	case ast.Unary:
		o.optimizeExpr(&n.Operand)
	case ast.Ternary:
		o.optimizeExpr(&n.Cond)
		o.optimizeExpr(&n.ThenExpr)
		o.optimizeExpr(&n.ElseExpr)
	case ast.TypeCast:
		o.optimizeExpr(&n.Expr)
	case ast.FunctionCall:
		o.optimizeStatementList(&n.FirstArgument)
	}
	n = *slot // children may have been replaced

	// Branch folding does not require the ternary's own purity (which
	// by construction excludes the condition's purity, spec §4.5): a
	// literal condition statically selects one branch regardless of
	// whether that branch itself is pure, since the other branch never
	// executes either way.
	if n.Kind == ast.Ternary {
		if selected, ok := foldTernaryBranch(n); ok {
			*slot = selected
			n = selected
		}
	}

	if !n.Purity {
		return
	}

	switch n.Kind {
	case ast.Binary:
		if folded, ok := foldBinary(o.arena, n); ok {
			*slot = folded
			return
		}
		if rewritten, ok := applyAlgebraicIdentity(o.arena, n); ok {
			*slot = rewritten
		}
	case ast.Unary:
		if folded, ok := foldUnary(o.arena, n); ok {
			*slot = folded
		}
	case ast.TypeCast:
		if n.FromType == n.TargetType {
			// Identity cast elimination: replace with the inner
			// expression, preserving the outer span (spec §4.6).
			inner := n.Expr
			inner.Span = n.Span
			*slot = inner
			return
		}
		if folded, ok := foldTypeCast(o.arena, n); ok {
			*slot = folded
		}
	}
}

func foldTernaryBranch(n *ast.Node) (*ast.Node, bool) {
	if n.Cond.Kind != ast.Literal {
		return nil, false
	}
	if !isTruthy(n.Cond) {
		return n.ElseExpr, true
	}
	return n.ThenExpr, true
}

func isTruthy(lit *ast.Node) bool {
	switch lit.LiteralKind {
	case token.IntLit:
		return lit.IntValue != 0
	case token.FloatLit:
		return lit.FloatValue != 0
	default:
		return lit.StringValue != ""
	}
}

// foldBinary evaluates n when both operands are LITERAL, per spec
// §4.6's constant-folding rules: integer overflow in `*`/`**`
// saturates to the I64 bound; `/` always yields F64; `//` yields
// floor(a/b); float ops use IEEE-754 semantics.
func foldBinary(a *arena.Arena, n *ast.Node) (*ast.Node, bool) {
	left, right := n.Left, n.Right
	if left.Kind != ast.Literal || right.Kind != ast.Literal {
		return nil, false
	}

	switch {
	case left.ExprType == types.I64 && right.ExprType == types.I64:
		return foldIntBinary(a, n, left.IntValue, right.IntValue)
	case left.ExprType == types.F64 && right.ExprType == types.F64:
		return foldFloatBinary(a, n, left.FloatValue, right.FloatValue)
	case left.ExprType == types.STR && right.ExprType == types.STR && n.BinOp == types.Add:
		return ast.NewStringLiteral(a, left.StringValue+right.StringValue, n.Span), true
	default:
		return nil, false
	}
}

func saturatingAdd(x, y int64) int64 {
	sum := x + y
	if (y > 0 && sum < x) || (y < 0 && sum > x) {
		if y > 0 {
			return maxI64
		}
		return minI64
	}
	return sum
}

func saturatingSub(x, y int64) int64 {
	if y == minI64 {
		if x >= 0 {
			return maxI64
		}
		return saturatingAdd(x, maxI64)
	}
	return saturatingAdd(x, -y)
}

func saturatingMul(x, y int64) int64 {
	if x == 0 || y == 0 {
		return 0
	}
	p := x * y
	if p/y != x {
		if (x > 0) == (y > 0) {
			return maxI64
		}
		return minI64
	}
	return p
}

// saturatingPow computes x**y for y >= 0 by fast exponentiation by
// squaring, saturating on overflow (spec §4.6).
func saturatingPow(x int64, y int64) int64 {
	if y < 0 {
		if x == 1 {
			return 1
		}
		if x == -1 {
			if y%2 == 0 {
				return 1
			}
			return -1
		}
		return 0 // integer division of a fraction truncates to 0
	}
	result := int64(1)
	base := x
	exp := y
	for exp > 0 {
		if exp&1 == 1 {
			result = saturatingMul(result, base)
		}
		exp >>= 1
		if exp > 0 {
			base = saturatingMul(base, base)
		}
	}
	return result
}

func floorDivInt(x, y int64) int64 {
	if y == 0 {
		if x > 0 {
			return maxI64
		} else if x < 0 {
			return minI64
		}
		return 0
	}
	q := x / y
	r := x % y
	if r != 0 && (r < 0) != (y < 0) {
		q--
	}
	return q
}

func foldIntBinary(a *arena.Arena, n *ast.Node, l, r int64) (*ast.Node, bool) {
	switch n.BinOp {
	case types.Add:
		return ast.NewIntLiteral(a, saturatingAdd(l, r), n.Span), true
	case types.Sub:
		return ast.NewIntLiteral(a, saturatingSub(l, r), n.Span), true
	case types.Mul:
		return ast.NewIntLiteral(a, saturatingMul(l, r), n.Span), true
	case types.Div:
		// Integer `/` always produces F64 (spec §4.6).
		if r == 0 {
			return ast.NewFloatLiteral(a, math.Inf(sign(l)), n.Span), true
		}
		return ast.NewFloatLiteral(a, float64(l)/float64(r), n.Span), true
	case types.IDiv:
		return ast.NewIntLiteral(a, floorDivInt(l, r), n.Span), true
	case types.Pow:
		return ast.NewIntLiteral(a, saturatingPow(l, r), n.Span), true
	case types.Lt:
		return boolLiteral(a, l < r, n.Span), true
	case types.Le:
		return boolLiteral(a, l <= r, n.Span), true
	case types.Gt:
		return boolLiteral(a, l > r, n.Span), true
	case types.Ge:
		return boolLiteral(a, l >= r, n.Span), true
	case types.Eq:
		return boolLiteral(a, l == r, n.Span), true
	case types.Ne:
		return boolLiteral(a, l != r, n.Span), true
	case types.And:
		return boolLiteral(a, l != 0 && r != 0, n.Span), true
	case types.Or:
		return boolLiteral(a, l != 0 || r != 0, n.Span), true
	case types.BAnd:
		return ast.NewIntLiteral(a, l&r, n.Span), true
	case types.BOr:
		return ast.NewIntLiteral(a, l|r, n.Span), true
	case types.Shl:
		return ast.NewIntLiteral(a, l<<uint64(r), n.Span), true
	case types.Shr:
		return ast.NewIntLiteral(a, l>>uint64(r), n.Span), true
	default:
		return nil, false
	}
}

func sign(x int64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func boolLiteral(a *arena.Arena, b bool, span token.Span) *ast.Node {
	if b {
		return ast.NewIntLiteral(a, 1, span)
	}
	return ast.NewIntLiteral(a, 0, span)
}

func foldFloatBinary(a *arena.Arena, n *ast.Node, l, r float64) (*ast.Node, bool) {
	switch n.BinOp {
	case types.Add:
		return ast.NewFloatLiteral(a, l+r, n.Span), true
	case types.Sub:
		return ast.NewFloatLiteral(a, l-r, n.Span), true
	case types.Mul:
		return ast.NewFloatLiteral(a, l*r, n.Span), true
	case types.Div:
		return ast.NewFloatLiteral(a, l/r, n.Span), true
	case types.IDiv:
		// Float `//` produces floor(a/b), result type I64 (spec §4.5.1, §4.6).
		return ast.NewIntLiteral(a, int64(math.Floor(l/r)), n.Span), true
	case types.Pow:
		return ast.NewFloatLiteral(a, math.Pow(l, r), n.Span), true
	case types.And:
		return boolLiteral(a, l != 0 && r != 0, n.Span), true
	case types.Or:
		return boolLiteral(a, l != 0 || r != 0, n.Span), true
	default:
		return nil, false
	}
}

// foldUnary evaluates n when the operand is a LITERAL (spec §4.6):
// `!` on F64 yields an I64 0/1 result.
func foldUnary(a *arena.Arena, n *ast.Node) (*ast.Node, bool) {
	operand := n.Operand
	if operand.Kind != ast.Literal {
		return nil, false
	}
	switch n.UnOp {
	case types.Pos:
		return operand, true
	case types.Neg:
		if operand.ExprType == types.I64 {
			return ast.NewIntLiteral(a, saturatingSub(0, operand.IntValue), n.Span), true
		}
		return ast.NewFloatLiteral(a, -operand.FloatValue, n.Span), true
	case types.Not:
		return boolLiteral(a, !isTruthy(operand), n.Span), true
	case types.BNot:
		if operand.ExprType != types.I64 {
			return nil, false
		}
		return ast.NewIntLiteral(a, ^operand.IntValue, n.Span), true
	default:
		return nil, false
	}
}

// foldTypeCast evaluates a TYPE_CAST whose child is a LITERAL and
// whose conversion is I64<->F64 (spec §4.6); other cast targets are
// left in place.
func foldTypeCast(a *arena.Arena, n *ast.Node) (*ast.Node, bool) {
	inner := n.Expr
	if inner.Kind != ast.Literal {
		return nil, false
	}
	switch {
	case n.FromType == types.I64 && n.TargetType == types.F64:
		return ast.NewFloatLiteral(a, float64(inner.IntValue), n.Span), true
	case n.FromType == types.F64 && n.TargetType == types.I64:
		return ast.NewIntLiteral(a, int64(inner.FloatValue), n.Span), true
	default:
		return nil, false
	}
}
