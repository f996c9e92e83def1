// Package optimizer implements the post-order AST rewriter of spec
// §4.6: constant folding, algebraic identities, identity-cast
// elimination, and literal-condition branch folding over an
// already-analyzed module. Rewrites apply only where the enclosing
// node is marked pure; impure nodes are walked but not folded at
// their own level, though their children still are.
package optimizer

import (
	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/ast"
)

type optimizer struct {
	arena *arena.Arena
}

// Optimize rewrites mod in place.
func Optimize(mod *ast.Node, a *arena.Arena) {
	o := &optimizer{arena: a}
	o.optimizeStatementList(&mod.FirstFunction)
	o.optimizeStatementList(&mod.FirstStmt)
}

// optimizeStatementList walks a sibling chain anchored at *head,
// rebinding each slot through the mutable pointer it is threaded
// with so that a fold returning a different node correctly updates
// the chain while preserving the remaining siblings (spec §4.6:
// "Statement lists... are walked by rebinding the owning first-child
// pointer through a mutable reference").
func (o *optimizer) optimizeStatementList(head **ast.Node) {
	slot := head
	for *slot != nil {
		next := (*slot).NextSibling
		o.optimizeStatement(slot)
		(*slot).NextSibling = next
		slot = &(*slot).NextSibling
	}
}

// optimizeStatement rewrites *slot in place (the pointed-to node may
// be replaced by a different node of the same static shape).
func (o *optimizer) optimizeStatement(slot **ast.Node) {
	n := *slot
	switch n.Kind {
	case ast.VarDecl:
		if n.Init != nil {
			o.optimizeExpr(&n.Init)
		}
	case ast.PrintStmt:
		o.optimizeStatementList(&n.FirstExpr)
	case ast.IfStmt:
		o.optimizeExpr(&n.Cond)
		o.optimizeStatement(&n.Then)
		if n.Else != nil {
			o.optimizeStatement(&n.Else)
		}
	case ast.WhileStmt:
		o.optimizeExpr(&n.Cond)
		o.optimizeStatement(&n.Then)
	case ast.Block:
		o.optimizeStatementList(&n.FirstStmt)
	case ast.FunctionDecl:
		if n.Body.Kind == ast.Block {
			o.optimizeStatement(&n.Body)
		} else {
			o.optimizeExpr(&n.Body)
		}
	default:
		o.optimizeExpr(slot)
	}
}
