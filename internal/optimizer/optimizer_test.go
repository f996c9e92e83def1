package optimizer_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/vismutlang/vismut/internal/analyzer"
	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/optimizer"
	"github.com/vismutlang/vismut/internal/parser"
	"github.com/vismutlang/vismut/internal/token"
)

// run parses, analyzes, and optimizes src, returning the sole
// top-level declaration's initializer expression.
func run(t *testing.T, src string) *ast.Node {
	t.Helper()
	a := arena.New()
	mod, err := parser.Parse("(test)", []byte(src), a)
	require.NoError(t, err)
	require.NoError(t, analyzer.Analyze("(test)", mod, a))
	optimizer.Optimize(mod, a)
	return mod.FirstStmt.Init
}

// requireIntLiteral asserts n folded down to a single INT_LIT of the
// given value, dumping the surviving subtree with go-spew on mismatch
// so a failure shows the whole unfolded shape, not just a single
// field's before/after.
func requireIntLiteral(t *testing.T, n *ast.Node, want int64) {
	t.Helper()
	if n.Kind != ast.Literal || n.LiteralKind != token.IntLit || n.IntValue != want {
		t.Fatalf("expected folded literal %d, got:\n%s", want, spew.Sdump(n))
	}
}

func requireFloatLiteral(t *testing.T, n *ast.Node, want float64) {
	t.Helper()
	if n.Kind != ast.Literal || n.LiteralKind != token.FloatLit || n.FloatValue != want {
		t.Fatalf("expected folded literal %g, got:\n%s", want, spew.Sdump(n))
	}
}

func TestConstantFoldingArithmetic(t *testing.T) {
	requireIntLiteral(t, run(t, "$ x = (2 + 3) * 4;"), 20)
	requireIntLiteral(t, run(t, "$ x = 7 // 2;"), 3)
	requireFloatLiteral(t, run(t, "$ x = 1 + 2.5;"), 3.5)
}

func TestConstantFoldingSaturatesOnOverflow(t *testing.T) {
	requireIntLiteral(t, run(t, "$ x = 9223372036854775807 + 1;"), 9223372036854775807)
}

func TestAlgebraicIdentityXTimesZero(t *testing.T) {
	a := arena.New()
	mod, err := parser.Parse("(test)", []byte("$ y = 1; $ x = y * 0;"), a)
	require.NoError(t, err)
	require.NoError(t, analyzer.Analyze("(test)", mod, a))
	optimizer.Optimize(mod, a)

	xDecl := mod.FirstStmt.NextSibling
	requireIntLiteral(t, xDecl.Init, 0)
}

func TestAlgebraicIdentityXTimesOneIsUnchanged(t *testing.T) {
	a := arena.New()
	mod, err := parser.Parse("(test)", []byte("$ y = 1; $ x = y * 1;"), a)
	require.NoError(t, err)
	require.NoError(t, analyzer.Analyze("(test)", mod, a))
	optimizer.Optimize(mod, a)

	xDecl := mod.FirstStmt.NextSibling
	got := xDecl.Init
	if got.Kind != ast.VarRef || got.Name != "y" {
		t.Fatalf("expected y*1 to fold to bare VarRef(y), got:\n%s", spew.Sdump(got))
	}
}

func TestAlgebraicIdentityXPlusZeroIsUnchanged(t *testing.T) {
	a := arena.New()
	mod, err := parser.Parse("(test)", []byte("$ y = 1; $ x = y + 0;"), a)
	require.NoError(t, err)
	require.NoError(t, analyzer.Analyze("(test)", mod, a))
	optimizer.Optimize(mod, a)

	xDecl := mod.FirstStmt.NextSibling
	got := xDecl.Init
	if got.Kind != ast.VarRef || got.Name != "y" {
		t.Fatalf("expected y+0 to fold to bare VarRef(y), got:\n%s", spew.Sdump(got))
	}
}

func TestIdentityCastElimination(t *testing.T) {
	n := run(t, "$ x : i64 = i64(2);")
	requireIntLiteral(t, n, 2)
	if n.Kind == ast.TypeCast {
		t.Fatalf("expected redundant identity cast to be eliminated, got:\n%s", spew.Sdump(n))
	}
}

func TestLiteralConditionBranchFolding(t *testing.T) {
	n := run(t, "$ x = 1 ? 2 : 3;")
	requireIntLiteral(t, n, 2)
}
