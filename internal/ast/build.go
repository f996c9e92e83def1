package ast

import (
	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/scope"
	"github.com/vismutlang/vismut/internal/token"
	"github.com/vismutlang/vismut/internal/types"
)

// New allocates a zeroed Node of the given kind and span from a.
// Callers fill in the kind-specific payload fields after this call.
func New(a *arena.Arena, kind Kind, span token.Span) *Node {
	n := arena.Alloc[Node](a)
	n.Kind = kind
	n.Span = span
	n.ExprType = types.UNKNOWN
	return n
}

// NewModule allocates a MODULE node.
func NewModule(a *arena.Arena, name string, sc *scope.Scope, span token.Span) *Node {
	n := New(a, Module, span)
	n.ModuleName = name
	n.Scope = sc
	n.ExprType = types.VOID
	return n
}

// NewBlock allocates a BLOCK node.
func NewBlock(a *arena.Arena, sc *scope.Scope, span token.Span) *Node {
	n := New(a, Block, span)
	n.Scope = sc
	n.ExprType = types.VOID
	return n
}

// NewIntLiteral allocates an integer LITERAL node.
func NewIntLiteral(a *arena.Arena, v int64, span token.Span) *Node {
	n := New(a, Literal, span)
	n.LiteralKind = token.IntLit
	n.IntValue = v
	n.ExprType = types.I64
	n.Purity = true
	return n
}

// NewFloatLiteral allocates a float LITERAL node.
func NewFloatLiteral(a *arena.Arena, v float64, span token.Span) *Node {
	n := New(a, Literal, span)
	n.LiteralKind = token.FloatLit
	n.FloatValue = v
	n.ExprType = types.F64
	n.Purity = true
	return n
}

// NewStringLiteral allocates a string LITERAL node.
func NewStringLiteral(a *arena.Arena, v string, span token.Span) *Node {
	n := New(a, Literal, span)
	n.LiteralKind = token.StringLit
	n.StringValue = v
	n.ExprType = types.STR
	n.Purity = true
	return n
}

// NewVarRef allocates a VAR_REF node. ExprType is filled in by the
// analyzer once the name has been resolved.
func NewVarRef(a *arena.Arena, name string, span token.Span) *Node {
	n := New(a, VarRef, span)
	n.Name = name
	n.Purity = true
	return n
}

// NewVarDecl allocates a VAR_DECL node. declType may be types.AUTO.
func NewVarDecl(a *arena.Arena, name string, declType types.VT, init *Node, span token.Span) *Node {
	n := New(a, VarDecl, span)
	n.Name = name
	n.DeclType = declType
	n.Init = init
	n.ExprType = types.VOID
	return n
}

// NewPrintStmt allocates a PRINT_STMT node.
func NewPrintStmt(a *arena.Arena, firstExpr *Node, span token.Span) *Node {
	n := New(a, PrintStmt, span)
	n.FirstExpr = firstExpr
	n.ExprType = types.VOID
	return n
}

// NewIfStmt allocates an IF_STMT node. elseBranch may be nil.
func NewIfStmt(a *arena.Arena, cond, thenBranch, elseBranch *Node, span token.Span) *Node {
	n := New(a, IfStmt, span)
	n.Cond = cond
	n.Then = thenBranch
	n.Else = elseBranch
	n.ExprType = types.VOID
	return n
}

// NewWhileStmt allocates a WHILE_STMT node.
func NewWhileStmt(a *arena.Arena, cond, body *Node, span token.Span) *Node {
	n := New(a, WhileStmt, span)
	n.Cond = cond
	n.Then = body
	n.ExprType = types.VOID
	return n
}

// NewFunctionDecl allocates a FUNCTION_DECL node.
func NewFunctionDecl(a *arena.Arena, sig *Signature, body *Node, sc *scope.Scope, span token.Span) *Node {
	n := New(a, FunctionDecl, span)
	n.Sig = sig
	n.Body = body
	n.Scope = sc
	n.ExprType = types.VOID
	return n
}

// NewFunctionCall allocates a FUNCTION_CALL node for a call to
// calleeName. Sig is left nil; the analyzer resolves it once all
// FUNCTION_DECLs in the module have been processed and sets both Sig
// and ExprType (spec §4.5: "analyze every function declaration
// first").
func NewFunctionCall(a *arena.Arena, calleeName string, firstArg *Node, argCount int, span token.Span) *Node {
	n := New(a, FunctionCall, span)
	n.Name = calleeName
	n.FirstArgument = firstArg
	n.ArgumentCount = argCount
	return n
}

// NewUnary allocates a UNARY node.
func NewUnary(a *arena.Arena, op types.UnOp, operand *Node, span token.Span) *Node {
	n := New(a, Unary, span)
	n.UnOp = op
	n.Operand = operand
	return n
}

// NewBinary allocates a BINARY node. It starts pure unless it is an
// assignment; the analyzer then ANDs in both operands' purity.
func NewBinary(a *arena.Arena, op types.BinOp, left, right *Node, span token.Span) *Node {
	n := New(a, Binary, span)
	n.BinOp = op
	n.Left = left
	n.Right = right
	n.Purity = op != types.AssignOp
	return n
}

// NewTernary allocates a TERNARY node.
func NewTernary(a *arena.Arena, cond, thenExpr, elseExpr *Node, span token.Span) *Node {
	n := New(a, Ternary, span)
	n.Cond = cond
	n.ThenExpr = thenExpr
	n.ElseExpr = elseExpr
	n.Purity = true
	return n
}

// NewTypeCast allocates a TYPE_CAST node wrapping expr.
func NewTypeCast(a *arena.Arena, fromType, targetType types.VT, expr *Node, isExplicit bool, span token.Span) *Node {
	n := New(a, TypeCast, span)
	n.FromType = fromType
	n.TargetType = targetType
	n.Expr = expr
	n.IsExplicit = isExplicit
	n.ExprType = targetType
	return n
}
