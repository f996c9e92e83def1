package analyzer

import (
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/diag"
	"github.com/vismutlang/vismut/internal/scope"
	"github.com/vismutlang/vismut/internal/types"
)

// analyzeExpr dispatches on kind for every node that can appear in
// expression position and returns its resolved type.
func (a *analyzer) analyzeExpr(sc *scope.Scope, n *ast.Node) (types.VT, error) {
	switch n.Kind {
	case ast.Literal:
		return n.ExprType, nil
	case ast.VarRef:
		return a.analyzeVarRef(sc, n)
	case ast.Binary:
		return a.analyzeBinary(sc, n)
	case ast.Unary:
		return a.analyzeUnary(sc, n)
	case ast.Ternary:
		return a.analyzeTernary(sc, n)
	case ast.TypeCast:
		return a.analyzeTypeCast(sc, n)
	case ast.FunctionCall:
		return a.analyzeFunctionCall(sc, n)
	default:
		return types.UNKNOWN, a.newErr(diag.KindUnexpectedToken, n, "%s is not valid in expression position", n.Kind)
	}
}

// analyzeVarRef implements VAR_REF: resolve name; on success copy the
// symbol's type and mark it used.
func (a *analyzer) analyzeVarRef(sc *scope.Scope, n *ast.Node) (types.VT, error) {
	sym, ok := sc.Resolve(n.Name)
	if !ok {
		return types.UNKNOWN, a.newErr(diag.KindSymbolNotDefined, n, "symbol %q is not defined", n.Name)
	}
	sc.MarkUsed(n.Name)
	n.ExprType = sym.Type
	return sym.Type, nil
}

// analyzeBinary implements BINARY, including the assignment
// special-case (spec §4.5).
func (a *analyzer) analyzeBinary(sc *scope.Scope, n *ast.Node) (types.VT, error) {
	leftType, err := a.analyzeExpr(sc, n.Left)
	if err != nil {
		return types.UNKNOWN, err
	}
	rightType, err := a.analyzeExpr(sc, n.Right)
	if err != nil {
		return types.UNKNOWN, err
	}
	n.Purity = n.Left.Purity && n.Right.Purity && n.Purity

	if n.BinOp == types.AssignOp {
		return a.analyzeAssign(sc, n, leftType, rightType)
	}

	if result, ok := types.LookupBinary(n.BinOp, leftType, rightType); ok {
		n.ExprType = result
		return result, nil
	}

	common, ok := types.CommonType(leftType, rightType)
	if !ok {
		return types.UNKNOWN, a.newErr(diag.KindUnsupportedOperation, n, "no typing rule for %s(%s, %s) and no common type", n.Kind, leftType, rightType)
	}
	if leftType != common {
		cast, err := a.insertImplicitCast(n.Left, leftType, common)
		if err != nil {
			return types.UNKNOWN, err
		}
		n.Left = cast
	}
	if rightType != common {
		cast, err := a.insertImplicitCast(n.Right, rightType, common)
		if err != nil {
			return types.UNKNOWN, err
		}
		n.Right = cast
	}
	result, ok := types.LookupBinary(n.BinOp, common, common)
	if !ok {
		return types.UNKNOWN, a.newErr(diag.KindUnsupportedOperation, n, "no typing rule for %s(%s, %s)", n.Kind, common, common)
	}
	n.ExprType = result
	return result, nil
}

// analyzeAssign implements the assignment special-case: the
// left-hand side must be a VAR_REF; the right side is cast to the
// left's type if needed; purity is always false.
func (a *analyzer) analyzeAssign(sc *scope.Scope, n *ast.Node, leftType, rightType types.VT) (types.VT, error) {
	if n.Left.Kind != ast.VarRef {
		return types.UNKNOWN, a.newErr(diag.KindAssignNotToVar, n, "left-hand side of = is not a variable")
	}
	if rightType != leftType {
		cast, err := a.insertImplicitCast(n.Right, rightType, leftType)
		if err != nil {
			return types.UNKNOWN, err
		}
		n.Right = cast
	}
	sc.MarkInitialized(n.Left.Name)
	n.Purity = false
	n.ExprType = leftType
	return leftType, nil
}

// analyzeUnary implements UNARY (spec §4.5.1 unary rules). Increment
// and decrement have no defined mutation semantics in this language
// (no lvalue-mutation primitive exists beyond plain assignment; see
// the implementer's note recorded in DESIGN.md) and are always
// rejected.
func (a *analyzer) analyzeUnary(sc *scope.Scope, n *ast.Node) (types.VT, error) {
	operandType, err := a.analyzeExpr(sc, n.Operand)
	if err != nil {
		return types.UNKNOWN, err
	}
	n.Purity = n.Operand.Purity && n.Purity

	switch n.UnOp {
	case types.PreInc, types.PreDec, types.PostInc, types.PostDec:
		return types.UNKNOWN, a.newErr(diag.KindUnsupportedOperation, n, "increment/decrement has no defined mutation semantics")
	}

	result, ok := types.UnaryResult(n.UnOp, operandType)
	if !ok {
		return types.UNKNOWN, a.newErr(diag.KindUnsupportedOperation, n, "no unary rule for operand type %s", operandType)
	}
	n.ExprType = result
	return result, nil
}

// analyzeTernary implements TERNARY: the condition's purity is
// irrelevant to the expression value's purity (spec §4.5).
func (a *analyzer) analyzeTernary(sc *scope.Scope, n *ast.Node) (types.VT, error) {
	if _, err := a.analyzeExpr(sc, n.Cond); err != nil {
		return types.UNKNOWN, err
	}
	thenType, err := a.analyzeExpr(sc, n.ThenExpr)
	if err != nil {
		return types.UNKNOWN, err
	}
	elseType, err := a.analyzeExpr(sc, n.ElseExpr)
	if err != nil {
		return types.UNKNOWN, err
	}
	n.Purity = n.ThenExpr.Purity && n.ElseExpr.Purity && n.Purity

	if thenType == elseType {
		n.ExprType = thenType
		return thenType, nil
	}
	common, ok := types.CommonType(thenType, elseType)
	if !ok {
		return types.UNKNOWN, a.newErr(diag.KindUnsupportedOperation, n, "ternary branches have incompatible types %s and %s", thenType, elseType)
	}
	if thenType != common {
		cast, err := a.insertImplicitCast(n.ThenExpr, thenType, common)
		if err != nil {
			return types.UNKNOWN, err
		}
		n.ThenExpr = cast
	} else {
		cast, err := a.insertImplicitCast(n.ElseExpr, elseType, common)
		if err != nil {
			return types.UNKNOWN, err
		}
		n.ElseExpr = cast
	}
	n.ExprType = common
	return common, nil
}

// analyzeTypeCast implements TYPE_CAST: analyze the inner expression,
// set from_type, and check cast permission using is_explicit.
func (a *analyzer) analyzeTypeCast(sc *scope.Scope, n *ast.Node) (types.VT, error) {
	fromType, err := a.analyzeExpr(sc, n.Expr)
	if err != nil {
		return types.UNKNOWN, err
	}
	n.FromType = fromType
	n.Purity = n.Expr.Purity && n.Purity
	if !types.IsCastAllowed(fromType, n.TargetType, n.IsExplicit) {
		return types.UNKNOWN, a.newErr(diag.KindCastIsNotAllowed, n, "cannot cast %s to %s", fromType, n.TargetType)
	}
	n.ExprType = n.TargetType
	return n.TargetType, nil
}

// analyzeFunctionCall implements FUNCTION_CALL: resolve the callee's
// signature (populated into a.funcs before any statement is
// analyzed), check arity and per-argument types (no coercion at call
// sites), and set the result type from the signature.
func (a *analyzer) analyzeFunctionCall(sc *scope.Scope, n *ast.Node) (types.VT, error) {
	decl, ok := a.funcs[n.Name]
	if !ok {
		return types.UNKNOWN, a.newErr(diag.KindFunctionNotDefined, n, "function %q is not defined", n.Name)
	}
	n.Sig = decl.Sig

	if n.ArgumentCount != len(decl.Sig.Params) {
		return types.UNKNOWN, a.newErr(diag.KindInvalidArgumentsCount, n, "function %q expects %d arguments, got %d", n.Name, len(decl.Sig.Params), n.ArgumentCount)
	}

	arg := n.FirstArgument
	for i, param := range decl.Sig.Params {
		argType, err := a.analyzeExpr(sc, arg)
		if err != nil {
			return types.UNKNOWN, err
		}
		if argType != param.Type {
			return types.UNKNOWN, a.newErr(diag.KindInvalidArgumentType, arg, "argument %d of %q has type %s, expected %s", i+1, n.Name, argType, param.Type)
		}
		arg = arg.NextSibling
	}

	n.ExprType = decl.Sig.ReturnType
	return decl.Sig.ReturnType, nil
}
