package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vismutlang/vismut/internal/analyzer"
	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/parser"
	"github.com/vismutlang/vismut/internal/scope"
	"github.com/vismutlang/vismut/internal/types"
)

func analyzeSrc(t *testing.T, src string) (*ast.Node, error) {
	t.Helper()
	a := arena.New()
	mod, err := parser.Parse("(test)", []byte(src), a)
	require.NoError(t, err)
	err = analyzer.Analyze("(test)", mod, a)
	return mod, err
}

func TestVarDeclInfersAutoType(t *testing.T) {
	mod, err := analyzeSrc(t, "$ x = 1;")
	require.NoError(t, err)
	assert.Equal(t, types.I64, mod.FirstStmt.DeclType)
}

func TestVarRefResolvesAndMarksUsed(t *testing.T) {
	mod, err := analyzeSrc(t, "$ x = 1; $ y = x;")
	require.NoError(t, err)
	decl2 := mod.FirstStmt.NextSibling
	assert.Equal(t, types.I64, decl2.Init.ExprType)
	sym, ok := mod.Scope.Resolve("x")
	require.True(t, ok)
	assert.True(t, sym.Flags.Has(scope.Used))
}

func TestUndefinedSymbolFails(t *testing.T) {
	_, err := analyzeSrc(t, "$ x = y;")
	assert.Error(t, err)
}

func TestAssignmentRequiresVarRef(t *testing.T) {
	_, err := analyzeSrc(t, "$ x = 1; $ y = (1 = 2);")
	assert.Error(t, err)
}

func TestAssignmentInsertsImplicitCast(t *testing.T) {
	mod, err := analyzeSrc(t, "$ x : f64 = 1.0; $ y = (x = 1);")
	require.NoError(t, err)
	assign := mod.FirstStmt.NextSibling.Init
	require.Equal(t, ast.Binary, assign.Kind)
	assert.Equal(t, ast.TypeCast, assign.Right.Kind)
	assert.Equal(t, types.F64, assign.ExprType)
}

func TestBinaryPromotesIntToFloat(t *testing.T) {
	mod, err := analyzeSrc(t, "$ y = 1 + 2.5;")
	require.NoError(t, err)
	bin := mod.FirstStmt.Init
	require.Equal(t, ast.Binary, bin.Kind)
	assert.Equal(t, types.F64, bin.ExprType)
	assert.Equal(t, ast.TypeCast, bin.Left.Kind)
	assert.Equal(t, types.I64, bin.Left.FromType)
	assert.Equal(t, types.F64, bin.Left.TargetType)
}

func TestIntDivisionProducesFloat(t *testing.T) {
	mod, err := analyzeSrc(t, "$ y = 1 / 2;")
	require.NoError(t, err)
	assert.Equal(t, types.F64, mod.FirstStmt.Init.ExprType)
}

func TestFloorDivisionKeepsInt(t *testing.T) {
	mod, err := analyzeSrc(t, "$ y = 7 // 2;")
	require.NoError(t, err)
	assert.Equal(t, types.I64, mod.FirstStmt.Init.ExprType)
}

func TestUnsupportedOperationOnStrings(t *testing.T) {
	_, err := analyzeSrc(t, `$ x = "a" - "b";`)
	assert.Error(t, err)
}

func TestStringConcat(t *testing.T) {
	mod, err := analyzeSrc(t, `$ x = "a" + "b";`)
	require.NoError(t, err)
	assert.Equal(t, types.STR, mod.FirstStmt.Init.ExprType)
}

func TestTernaryCommonType(t *testing.T) {
	mod, err := analyzeSrc(t, "$ x = 1 ? 1 : 2.5;")
	require.NoError(t, err)
	ternary := mod.FirstStmt.Init
	assert.Equal(t, types.F64, ternary.ExprType)
}

func TestExplicitNarrowingCastAllowed(t *testing.T) {
	mod, err := analyzeSrc(t, "$ x = i64(2.9);")
	require.NoError(t, err)
	assert.Equal(t, types.I64, mod.FirstStmt.Init.ExprType)
}

func TestIncrementRejected(t *testing.T) {
	_, err := analyzeSrc(t, "$ x = 1; $ y = ++x;")
	assert.Error(t, err)
}

func TestUnusedVariableIsPrunedFromBlockScope(t *testing.T) {
	mod, err := analyzeSrc(t, "{ $ x = 1; $ y = 2; :: y; }")
	require.NoError(t, err)
	blk := mod.FirstStmt
	syms := blk.Scope.Symbols()
	require.Len(t, syms, 1)
	assert.Equal(t, "y", syms[0].Name)
}

func TestFunctionDeclAndCallTypecheck(t *testing.T) {
	mod, err := analyzeSrc(t, `-> add(a: i64, b: i64): i64 => a + b; $ x = add(1, 2);`)
	require.NoError(t, err)
	call := mod.FirstStmt.Init
	assert.Equal(t, types.I64, call.ExprType)
}

func TestFunctionCallArityMismatch(t *testing.T) {
	_, err := analyzeSrc(t, `-> add(a: i64, b: i64): i64 => a + b; $ x = add(1);`)
	assert.Error(t, err)
}

func TestFunctionCallArgumentTypeMismatch(t *testing.T) {
	_, err := analyzeSrc(t, `-> add(a: i64, b: i64): i64 => a + b; $ x = add(1, "s");`)
	assert.Error(t, err)
}

func TestExpressionBodiedFunctionCannotBeVoid(t *testing.T) {
	_, err := analyzeSrc(t, `-> f(): void => 1;`)
	assert.Error(t, err)
}
