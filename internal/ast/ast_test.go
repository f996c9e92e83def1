package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/token"
	"github.com/vismutlang/vismut/internal/types"
)

func TestAppendSiblingBuildsTailAttachedList(t *testing.T) {
	a := arena.New()
	n1 := ast.NewIntLiteral(a, 1, token.Span{})
	n2 := ast.NewIntLiteral(a, 2, token.Span{})
	n3 := ast.NewIntLiteral(a, 3, token.Span{})

	var head *ast.Node
	head = ast.AppendSibling(head, n1)
	head = ast.AppendSibling(head, n2)
	head = ast.AppendSibling(head, n3)

	assert.Equal(t, 3, ast.Count(head))
	got := ast.Siblings(head)
	assert.Equal(t, []*ast.Node{n1, n2, n3}, got)
}

func TestLiteralString(t *testing.T) {
	a := arena.New()
	n := ast.NewIntLiteral(a, 42, token.Span{})
	assert.Equal(t, "42", n.String())
	assert.Equal(t, types.I64, n.ExprType)
	assert.True(t, n.Purity)
}

func TestBinaryString(t *testing.T) {
	a := arena.New()
	left := ast.NewIntLiteral(a, 2, token.Span{})
	right := ast.NewIntLiteral(a, 3, token.Span{})
	bin := ast.NewBinary(a, types.Add, left, right, token.Span{})
	assert.Equal(t, "(2 + 3)", bin.String())
}

func TestDumpFormat(t *testing.T) {
	a := arena.New()
	lit := ast.NewIntLiteral(a, 20, token.Span{Offset: 8, Length: 2})
	decl := ast.NewVarDecl(a, "x", types.I64, lit, token.Span{Offset: 0, Length: 10})
	out := ast.Dump(decl)
	assert.Contains(t, out, "VAR_DECL [x] (i64) [0-10]")
	assert.Contains(t, out, "    LITERAL [20] (i64) [8-10]")
}

func TestTypeCastDumpPayload(t *testing.T) {
	a := arena.New()
	lit := ast.NewIntLiteral(a, 1, token.Span{})
	cast := ast.NewTypeCast(a, types.I64, types.F64, lit, false, token.Span{})
	out := ast.Dump(cast)
	assert.Contains(t, out, "TYPE_CAST [implicit] (f64)")
}
