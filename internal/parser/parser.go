// Package parser implements the recursive-descent, Pratt-precedence
// parser of spec §4.4: one token of lookahead, a current-scope stack
// threaded through block/function entry and exit, and a module node
// under construction.
package parser

import (
	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/diag"
	"github.com/vismutlang/vismut/internal/lexer"
	"github.com/vismutlang/vismut/internal/scope"
	"github.com/vismutlang/vismut/internal/token"
	"github.com/vismutlang/vismut/internal/types"
)

// Parser holds the one-token lookahead, the arena nodes are allocated
// from, and the scope currently open.
type Parser struct {
	module string
	lex    *lexer.Lexer
	arena  *arena.Arena

	tok    token.Token
	cur    *scope.Scope
	funcs  *ast.Node // not used; the function list is built through fhead
	fhead  *ast.Node // head of the module's function list, built as we go
}

// New creates a Parser over src, ready to call Parse.
func New(module string, src []byte, a *arena.Arena) *Parser {
	return &Parser{
		module: module,
		lex:    lexer.New(module, src, a),
		arena:  a,
	}
}

func (p *Parser) errf(kind diag.Kind, span token.Span, format string, args ...interface{}) error {
	return diag.New(kind, p.module, span.Offset, span.Length, format, args...)
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.tok.Kind != k {
		return token.Token{}, p.errf(diag.KindUnexpectedToken, p.tok.Span, "expected %s, found %s", k, p.tok.Kind)
	}
	t := p.tok
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return t, nil
}

func (p *Parser) at(k token.Kind) bool { return p.tok.Kind == k }

// Parse tokenizes and parses the whole module, returning the MODULE
// root node. It is the sole entry point; parser failures propagate
// the first tokenizer or structural error with the offending token's
// span (spec §4.4).
func Parse(module string, src []byte, a *arena.Arena) (*ast.Node, error) {
	p := New(module, src, a)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseModule()
}

func (p *Parser) parseModule() (*ast.Node, error) {
	moduleScope := scope.New()
	p.cur = moduleScope

	start := p.tok.Span
	var stmtHead *ast.Node
	for !p.at(token.EOF) {
		if p.at(token.Semi) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt.Kind == ast.FunctionDecl {
			p.fhead = ast.AppendSibling(p.fhead, stmt)
		} else {
			stmtHead = ast.AppendSibling(stmtHead, stmt)
		}
	}
	end := p.tok.Span
	mod := ast.NewModule(p.arena, p.module, moduleScope, start.Cover(end))
	mod.FirstStmt = stmtHead
	mod.FirstFunction = p.fhead
	return mod, nil
}

// parseBlockOrExpr parses either a `{ ... }` block (opening a new
// scope) or, when the following token does not start a block, a
// single statement used as an implicit one-statement body (used by
// if/while bodies that are not braced and by function bodies).
func (p *Parser) parseBlockOrExpr() (*ast.Node, error) {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	return p.parseStatement()
}

func (p *Parser) parseBlock() (*ast.Node, error) {
	start := p.tok.Span
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	outer := p.cur
	blockScope := outer.NewChild()
	p.cur = blockScope

	var stmtHead *ast.Node
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			return nil, p.errf(diag.KindUnexpectedToken, p.tok.Span, "unterminated block, expected }")
		}
		if p.at(token.Semi) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmtHead = ast.AppendSibling(stmtHead, stmt)
	}
	end := p.tok.Span
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	p.cur = outer

	blk := ast.NewBlock(p.arena, blockScope, start.Cover(end))
	blk.FirstStmt = stmtHead
	return blk, nil
}

func (p *Parser) parseStatement() (*ast.Node, error) {
	switch p.tok.Kind {
	case token.DeclSigil:
		return p.parseNameDecl()
	case token.IfSigil:
		return p.parseIf()
	case token.WhileSigil:
		return p.parseWhile()
	case token.PrintSigil:
		return p.parsePrint()
	case token.Arrow:
		return p.parseFunctionDecl()
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() (*ast.Node, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.at(token.Semi) {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// parseNameDecl parses "$ IDENT (: TYPE)? (= expr)?" (spec §4.4).
func (p *Parser) parseNameDecl() (*ast.Node, error) {
	start := p.tok.Span
	if _, err := p.expect(token.DeclSigil); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	declType := types.AUTO
	if p.at(token.Colon) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		declType, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
	}

	var init *ast.Node
	if p.at(token.Assign) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	} else if declType == types.AUTO {
		return nil, p.errf(diag.KindUnexpectedToken, p.tok.Span, "declaration of %q needs either a type or an initializer", nameTok.Str)
	}

	end := p.tok.Span
	if p.at(token.Semi) {
		end = p.tok.Span
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	decl := ast.NewVarDecl(p.arena, nameTok.Str, declType, init, start.Cover(end))
	return decl, nil
}

func (p *Parser) parseTypeName() (types.VT, error) {
	switch p.tok.Kind {
	case token.TypeI64:
		if err := p.advance(); err != nil {
			return types.UNKNOWN, err
		}
		return types.I64, nil
	case token.TypeF64:
		if err := p.advance(); err != nil {
			return types.UNKNOWN, err
		}
		return types.F64, nil
	case token.TypeStr:
		if err := p.advance(); err != nil {
			return types.UNKNOWN, err
		}
		return types.STR, nil
	default:
		return types.UNKNOWN, p.errf(diag.KindUnknownType, p.tok.Span, "expected a type name, found %s", p.tok.Kind)
	}
}

// parseIf parses "# expr blockOrExpr (!# expr blockOrExpr)* (! blockOrExpr)?",
// rewriting else-if internally into a nested IF_STMT (spec §4.4).
func (p *Parser) parseIf() (*ast.Node, error) {
	start := p.tok.Span
	if _, err := p.expect(token.IfSigil); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlockOrExpr()
	if err != nil {
		return nil, err
	}
	var elseBranch *ast.Node
	switch {
	case p.at(token.ElseIfSigil):
		elseBranch, err = p.parseElseIf()
		if err != nil {
			return nil, err
		}
	case p.at(token.ElseSigil):
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBranch, err = p.parseBlockOrExpr()
		if err != nil {
			return nil, err
		}
	}
	end := p.tok.Span
	return ast.NewIfStmt(p.arena, cond, then, elseBranch, start.Cover(end)), nil
}

// parseElseIf handles a "!#" token by rewriting it into a nested
// IF_STMT, reusing parseIf's tail (else-if / else chain) logic.
func (p *Parser) parseElseIf() (*ast.Node, error) {
	start := p.tok.Span
	if _, err := p.expect(token.ElseIfSigil); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlockOrExpr()
	if err != nil {
		return nil, err
	}
	var elseBranch *ast.Node
	switch {
	case p.at(token.ElseIfSigil):
		elseBranch, err = p.parseElseIf()
		if err != nil {
			return nil, err
		}
	case p.at(token.ElseSigil):
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBranch, err = p.parseBlockOrExpr()
		if err != nil {
			return nil, err
		}
	}
	end := p.tok.Span
	return ast.NewIfStmt(p.arena, cond, then, elseBranch, start.Cover(end)), nil
}

func (p *Parser) parseWhile() (*ast.Node, error) {
	start := p.tok.Span
	if _, err := p.expect(token.WhileSigil); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockOrExpr()
	if err != nil {
		return nil, err
	}
	end := p.tok.Span
	return ast.NewWhileStmt(p.arena, cond, body, start.Cover(end)), nil
}

func (p *Parser) parsePrint() (*ast.Node, error) {
	start := p.tok.Span
	if _, err := p.expect(token.PrintSigil); err != nil {
		return nil, err
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	head := first
	for p.at(token.Comma) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		head = ast.AppendSibling(head, next)
	}
	end := p.tok.Span
	if p.at(token.Semi) {
		end = p.tok.Span
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return ast.NewPrintStmt(p.arena, first, start.Cover(end)), nil
}
