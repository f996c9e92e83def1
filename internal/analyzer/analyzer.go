// Package analyzer implements the post-order type analyzer of spec
// §4.5: a single walk over the parsed module threading a current
// scope, resolving identifiers, inserting implicit TYPE_CAST nodes,
// stamping purity, and pruning unused symbols at block exit.
//
// The analyzer is fail-fast: every recursive function returns
// (types.VT, error) or just error, and the first failure aborts the
// whole walk. This is a deliberate rewrite of the teacher's
// panic-based `Panicf`/recover idiom (gql/panic.go) into Go's
// explicit-error-return discipline, per spec §4.5 ("errors propagate
// immediately; the analyzer is fail-fast") and spec §7's closed,
// process-exit-code-mapped error taxonomy, which calls for returning
// structured values rather than unwinding through the arena.
package analyzer

import (
	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/diag"
	"github.com/vismutlang/vismut/internal/scope"
	"github.com/vismutlang/vismut/internal/types"
)

// analyzer threads the module name (for diagnostics), the arena new
// TYPE_CAST nodes are allocated from, and a function-name lookup
// table through the recursive walk.
type analyzer struct {
	module string
	arena  *arena.Arena
	funcs  map[string]*ast.Node // function name -> FUNCTION_DECL, populated before statements are analyzed
}

// Analyze runs the type analyzer over mod in place, allocating any
// inserted TYPE_CAST nodes from a, and returns an error on the first
// contract violation.
func Analyze(module string, mod *ast.Node, a *arena.Arena) error {
	an := &analyzer{module: module, arena: a, funcs: map[string]*ast.Node{}}
	return an.analyzeModule(mod)
}

func (a *analyzer) newErr(kind diag.Kind, n *ast.Node, format string, args ...interface{}) error {
	return diag.New(kind, a.module, n.Span.Offset, n.Span.Length, format, args...)
}

// analyzeModule implements the MODULE contract: analyze every
// function declaration first, then every top-level statement (spec
// §4.5, §8 "function declarations are analyzed strictly before any
// top-level statement in the same module").
func (a *analyzer) analyzeModule(mod *ast.Node) error {
	for fn := mod.FirstFunction; fn != nil; fn = fn.NextSibling {
		a.funcs[fn.Sig.Name] = fn
	}
	for fn := mod.FirstFunction; fn != nil; fn = fn.NextSibling {
		if err := a.analyzeFunctionDecl(fn); err != nil {
			return err
		}
	}
	for stmt := mod.FirstStmt; stmt != nil; stmt = stmt.NextSibling {
		if err := a.analyzeStatement(mod.Scope, stmt); err != nil {
			return err
		}
	}
	mod.ExprType = types.VOID
	return nil
}

// analyzeStatement dispatches on kind for every node that can appear
// in a statement position (VAR_DECL, IF_STMT, WHILE_STMT, PRINT_STMT,
// BLOCK, FUNCTION_DECL, or a bare expression-statement).
func (a *analyzer) analyzeStatement(sc *scope.Scope, n *ast.Node) error {
	switch n.Kind {
	case ast.VarDecl:
		return a.analyzeVarDecl(sc, n)
	case ast.IfStmt:
		return a.analyzeIfStmt(sc, n)
	case ast.WhileStmt:
		return a.analyzeWhileStmt(sc, n)
	case ast.PrintStmt:
		return a.analyzePrintStmt(sc, n)
	case ast.Block:
		return a.analyzeBlock(n)
	case ast.FunctionDecl:
		return a.analyzeFunctionDecl(n)
	default:
		_, err := a.analyzeExpr(sc, n)
		return err
	}
}

// analyzeVarDecl implements the VAR_DECL contract: analyze the
// initializer, resolve AUTO from it (or require equality against a
// declared type), then declare the name in the current scope.
func (a *analyzer) analyzeVarDecl(sc *scope.Scope, n *ast.Node) error {
	var initType types.VT = types.VOID
	if n.Init != nil {
		t, err := a.analyzeExpr(sc, n.Init)
		if err != nil {
			return err
		}
		initType = t
	}

	if n.DeclType == types.AUTO {
		if n.Init == nil {
			return a.newErr(diag.KindUnexpectedToken, n, "declaration of %q needs either a type or an initializer", n.Name)
		}
		n.DeclType = initType
	} else if n.Init != nil && n.DeclType != initType {
		return a.newErr(diag.KindTypeIsIncompatible, n, "initializer of %q has type %s, declared type is %s", n.Name, initType, n.DeclType)
	}
	n.InitType = initType

	if _, ok := sc.Declare(n.Name, n.DeclType, 0); !ok {
		return a.newErr(diag.KindSymbolAlreadyDefined, n, "symbol %q already defined in this scope", n.Name)
	}
	if n.Init != nil {
		sc.MarkInitialized(n.Name)
	}
	n.ExprType = types.VOID
	return nil
}

// analyzeIfStmt implements IF_STMT: analyze condition and branches; type = VOID.
func (a *analyzer) analyzeIfStmt(sc *scope.Scope, n *ast.Node) error {
	if _, err := a.analyzeExpr(sc, n.Cond); err != nil {
		return err
	}
	if err := a.analyzeStatement(sc, n.Then); err != nil {
		return err
	}
	if n.Else != nil {
		if err := a.analyzeStatement(sc, n.Else); err != nil {
			return err
		}
	}
	n.ExprType = types.VOID
	return nil
}

// analyzeWhileStmt implements WHILE_STMT: analyze condition and body; type = VOID.
// The condition must be I64 or F64 (nonzero is true).
func (a *analyzer) analyzeWhileStmt(sc *scope.Scope, n *ast.Node) error {
	condType, err := a.analyzeExpr(sc, n.Cond)
	if err != nil {
		return err
	}
	if !types.IsNumeric(condType) {
		return a.newErr(diag.KindUnsupportedOperation, n.Cond, "while condition has type %s, expected i64 or f64", condType)
	}
	if err := a.analyzeStatement(sc, n.Then); err != nil {
		return err
	}
	n.ExprType = types.VOID
	return nil
}

// analyzePrintStmt implements PRINT_STMT: analyze every argument in order; type = VOID.
func (a *analyzer) analyzePrintStmt(sc *scope.Scope, n *ast.Node) error {
	for arg := n.FirstExpr; arg != nil; arg = arg.NextSibling {
		if _, err := a.analyzeExpr(sc, arg); err != nil {
			return err
		}
	}
	n.ExprType = types.VOID
	return nil
}

// analyzeBlock implements BLOCK: push into the block's own scope,
// analyze each statement, RemoveUnused on exit.
func (a *analyzer) analyzeBlock(n *ast.Node) error {
	for stmt := n.FirstStmt; stmt != nil; stmt = stmt.NextSibling {
		if err := a.analyzeStatement(n.Scope, stmt); err != nil {
			return err
		}
	}
	n.Scope.RemoveUnused()
	n.ExprType = types.VOID
	return nil
}

// analyzeFunctionDecl implements FUNCTION_DECL: pre-declare every
// parameter, then analyze the body in the function's scope.
func (a *analyzer) analyzeFunctionDecl(n *ast.Node) error {
	for _, param := range n.Sig.Params {
		if _, ok := n.Scope.Declare(param.Name, param.Type, scope.Initialized); !ok {
			return a.newErr(diag.KindSymbolAlreadyDefined, n, "parameter %q already defined", param.Name)
		}
		n.Scope.MarkUsed(param.Name) // parameters are never flagged unused
	}

	if n.Body.Kind == ast.Block {
		return a.analyzeBlock(n.Body)
	}

	// Expression-bodied function.
	if n.Sig.ReturnType == types.VOID {
		return a.newErr(diag.KindVoidForExpressionFunction, n, "function %q has an expression body but is declared void", n.Sig.Name)
	}
	bodyType, err := a.analyzeExpr(n.Scope, n.Body)
	if err != nil {
		return err
	}
	if n.Sig.ReturnType == types.AUTO {
		n.Sig.ReturnType = bodyType
	} else if n.Sig.ReturnType != bodyType {
		cast, err := a.insertImplicitCast(n.Body, bodyType, n.Sig.ReturnType)
		if err != nil {
			return a.newErr(diag.KindTypeIsIncompatible, n, "function %q body has type %s, declared return type %s", n.Sig.Name, bodyType, n.Sig.ReturnType)
		}
		n.Body = cast
	}
	n.ExprType = types.VOID
	return nil
}

// insertImplicitCast wraps expr in a TYPE_CAST from `from` to `to` if
// the implicit cast is allowed; otherwise returns an error.
func (a *analyzer) insertImplicitCast(expr *ast.Node, from, to types.VT) (*ast.Node, error) {
	if !types.IsCastAllowed(from, to, false) {
		return nil, a.newErr(diag.KindCastIsNotAllowed, expr, "cannot implicitly cast %s to %s", from, to)
	}
	cast := ast.NewTypeCast(a.arena, from, to, expr, false, expr.Span)
	cast.Purity = expr.Purity
	return cast, nil
}
