package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/parser"
	"github.com/vismutlang/vismut/internal/types"
)

func parseOK(t *testing.T, src string) *ast.Node {
	t.Helper()
	a := arena.New()
	mod, err := parser.Parse("(test)", []byte(src), a)
	require.NoError(t, err)
	require.NotNil(t, mod)
	require.Equal(t, ast.Module, mod.Kind)
	return mod
}

func TestEmptyModule(t *testing.T) {
	mod := parseOK(t, "")
	assert.Nil(t, mod.FirstStmt)
	assert.Nil(t, mod.FirstFunction)
}

func TestNameDeclWithInitializer(t *testing.T) {
	mod := parseOK(t, "$ x = 1 + 2;")
	require.NotNil(t, mod.FirstStmt)
	decl := mod.FirstStmt
	assert.Equal(t, ast.VarDecl, decl.Kind)
	assert.Equal(t, "x", decl.Name)
	assert.Equal(t, types.AUTO, decl.DeclType)
	require.NotNil(t, decl.Init)
	assert.Equal(t, ast.Binary, decl.Init.Kind)
}

func TestNameDeclWithTypeNoInitializer(t *testing.T) {
	mod := parseOK(t, "$ x : i64;")
	decl := mod.FirstStmt
	assert.Equal(t, types.I64, decl.DeclType)
	assert.Nil(t, decl.Init)
}

func TestNameDeclMissingTypeAndInitializerFails(t *testing.T) {
	a := arena.New()
	_, err := parser.Parse("(test)", []byte("$ x;"), a)
	assert.Error(t, err)
}

func TestIfElseIfElseChain(t *testing.T) {
	mod := parseOK(t, `# 1 { :: 1; } !# 0 { :: 2; } ! { :: 3; }`)
	ifStmt := mod.FirstStmt
	assert.Equal(t, ast.IfStmt, ifStmt.Kind)
	require.NotNil(t, ifStmt.Else)
	assert.Equal(t, ast.IfStmt, ifStmt.Else.Kind) // else-if rewritten to nested if
	require.NotNil(t, ifStmt.Else.Else)
	assert.Equal(t, ast.Block, ifStmt.Else.Else.Kind)
}

func TestWhileLoop(t *testing.T) {
	mod := parseOK(t, `@ 1 { :: 1; }`)
	assert.Equal(t, ast.WhileStmt, mod.FirstStmt.Kind)
}

func TestPrintMultipleArgs(t *testing.T) {
	mod := parseOK(t, `:: 1, 2, 3;`)
	stmt := mod.FirstStmt
	assert.Equal(t, ast.PrintStmt, stmt.Kind)
	assert.Equal(t, 3, ast.Count(stmt.FirstExpr))
}

func TestTernaryRightAssociative(t *testing.T) {
	mod := parseOK(t, `$ x = 1 ? 2 : 0 ? 3 : 4;`)
	decl := mod.FirstStmt
	ternary := decl.Init
	require.Equal(t, ast.Ternary, ternary.Kind)
	assert.Equal(t, ast.Ternary, ternary.ElseExpr.Kind)
}

func TestPowerRightAssociative(t *testing.T) {
	mod := parseOK(t, `$ x = 2 ** 3 ** 2;`)
	bin := mod.FirstStmt.Init
	require.Equal(t, ast.Binary, bin.Kind)
	assert.Equal(t, types.Pow, bin.BinOp)
	assert.Equal(t, ast.Binary, bin.Right.Kind) // 3 ** 2 grouped on the right
}

func TestAssignmentRightAssociative(t *testing.T) {
	mod := parseOK(t, `$ x = 1; $ y = 1; $ z = x = y = 1;`)
	assert.Equal(t, 3, ast.Count(mod.FirstStmt))
	assign := ast.Siblings(mod.FirstStmt)[2].Init
	require.Equal(t, ast.Binary, assign.Kind)
	assert.Equal(t, types.AssignOp, assign.BinOp)
	require.Equal(t, ast.Binary, assign.Right.Kind) // y = 1 grouped on the right
	assert.Equal(t, types.AssignOp, assign.Right.BinOp)
}

func TestTypeCastPrefix(t *testing.T) {
	mod := parseOK(t, `$ x = f64(1);`)
	cast := mod.FirstStmt.Init
	require.Equal(t, ast.TypeCast, cast.Kind)
	assert.Equal(t, types.F64, cast.TargetType)
	assert.True(t, cast.IsExplicit)
}

func TestFunctionDeclAndCall(t *testing.T) {
	mod := parseOK(t, `-> add(a: i64, b: i64): i64 => a + b; $ x = add(1, 2);`)
	require.NotNil(t, mod.FirstFunction)
	fn := mod.FirstFunction
	assert.Equal(t, ast.FunctionDecl, fn.Kind)
	assert.Equal(t, "add", fn.Sig.Name)
	assert.Len(t, fn.Sig.Params, 2)

	decl := mod.FirstStmt
	call := decl.Init
	require.Equal(t, ast.FunctionCall, call.Kind)
	assert.Equal(t, "add", call.Name)
	assert.Equal(t, 2, call.ArgumentCount)
}

func TestSpanCoversSource(t *testing.T) {
	mod := parseOK(t, `$ x = 1 + 2;`)
	decl := mod.FirstStmt
	assert.Equal(t, 0, decl.Span.Offset)
	assert.Equal(t, len(`$ x = 1 + 2;`), decl.Span.Length)
}

func TestUnaryPrefixOperators(t *testing.T) {
	mod := parseOK(t, `$ x = -1; $ y = !1; $ z = ~1; $ w = ++x;`)
	stmts := ast.Siblings(mod.FirstStmt)
	require.Len(t, stmts, 4)
	assert.Equal(t, types.Neg, stmts[0].Init.UnOp)
	assert.Equal(t, types.Not, stmts[1].Init.UnOp)
	assert.Equal(t, types.BNot, stmts[2].Init.UnOp)
	assert.Equal(t, types.PreInc, stmts[3].Init.UnOp)
	assert.False(t, stmts[3].Init.Purity)
}

func TestPostfixIncrement(t *testing.T) {
	mod := parseOK(t, `$ x = 1; $ y = x++;`)
	stmts := ast.Siblings(mod.FirstStmt)
	assert.Equal(t, types.PostInc, stmts[1].Init.UnOp)
}
