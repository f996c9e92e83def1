package parser

import (
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/diag"
	"github.com/vismutlang/vismut/internal/token"
	"github.com/vismutlang/vismut/internal/types"
)

// Precedence ladder, lowest to highest (spec §4.4). Assignment and
// power are right-associative; everything else left-associative.
const (
	precNone = iota
	precAssign
	precTernary
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precPower
	precUnary
)

func binOpPrec(k token.Kind) (types.BinOp, int, bool) {
	switch k {
	case token.Assign:
		return types.AssignOp, precAssign, true
	case token.OrOr:
		return types.Or, precOr, true
	case token.AndAnd:
		return types.And, precAnd, true
	case token.EqEq:
		return types.Eq, precEquality, true
	case token.NotEq:
		return types.Ne, precEquality, true
	case token.Lt:
		return types.Lt, precRelational, true
	case token.LtEq:
		return types.Le, precRelational, true
	case token.Gt:
		return types.Gt, precRelational, true
	case token.GtEq:
		return types.Ge, precRelational, true
	case token.Plus:
		return types.Add, precAdditive, true
	case token.Minus:
		return types.Sub, precAdditive, true
	case token.Star:
		return types.Mul, precMultiplicative, true
	case token.Slash:
		return types.Div, precMultiplicative, true
	case token.SlashSl:
		return types.IDiv, precMultiplicative, true
	case token.StarStar:
		return types.Pow, precPower, true
	case token.Amp:
		return types.BAnd, precEquality, true
	case token.Pipe:
		return types.BOr, precEquality, true
	case token.Shl:
		return types.Shl, precEquality, true
	case token.Shr:
		return types.Shr, precEquality, true
	default:
		return 0, precNone, false
	}
}

// parseExpression parses a full expression starting at the lowest
// precedence level (assignment).
func (p *Parser) parseExpression() (*ast.Node, error) {
	return p.parseBinary(precAssign)
}

// parseBinary implements Pratt/precedence-climbing: it parses a unary
// expression, then repeatedly consumes binary operators whose
// precedence is >= minPrec, recursing one level above the operator's
// own precedence (left-assoc) or at it (right-assoc: power).
// Assignment and ternary are handled here through parseAssignTail and
// parseTernaryTail.
func (p *Parser) parseBinary(minPrec int) (*ast.Node, error) {
	if minPrec <= precTernary {
		// Ternary is handled as its own level above logical-or, with
		// special-cased else-branch precedence (spec §4.4).
		left, err := p.parseBinaryAt(precOr)
		if err != nil {
			return nil, err
		}
		if p.at(token.Quest) {
			return p.parseTernaryTail(left)
		}
		if minPrec == precAssign && p.at(token.Assign) {
			return p.parseAssignTail(left)
		}
		return left, nil
	}
	return p.parseBinaryAt(minPrec)
}

func (p *Parser) parseAssignTail(left *ast.Node) (*ast.Node, error) {
	start := left.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseBinary(precAssign) // right-assoc
	if err != nil {
		return nil, err
	}
	end := right.Span
	n := ast.NewBinary(p.arena, types.AssignOp, left, right, start.Cover(end))
	return n, nil
}

func (p *Parser) parseTernaryTail(cond *ast.Node) (*ast.Node, error) {
	start := cond.Span
	if err := p.advance(); err != nil { // consume '?'
		return nil, err
	}
	thenExpr, err := p.parseBinary(precAssign)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	// Else-branch parsed one level below ternary precedence to keep
	// right-associativity (spec §4.4).
	elseExpr, err := p.parseBinary(precTernary)
	if err != nil {
		return nil, err
	}
	end := elseExpr.Span
	return ast.NewTernary(p.arena, cond, thenExpr, elseExpr, start.Cover(end)), nil
}

// parseBinaryAt parses operators at or above minPrec, where minPrec
// is one of the non-ternary, non-assignment levels.
func (p *Parser) parseBinaryAt(minPrec int) (*ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, prec, ok := binOpPrec(p.tok.Kind)
		if !ok || prec < minPrec || op == types.AssignOp {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		nextMin := prec + 1
		if op == types.Pow {
			nextMin = prec // right-associative
		}
		right, err := p.parseBinaryAt(nextMin)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(p.arena, op, left, right, left.Span.Cover(right.Span))
	}
}

func unaryOpFor(k token.Kind) (types.UnOp, bool, bool) {
	switch k {
	case token.Plus:
		return types.Pos, true, true
	case token.Minus:
		return types.Neg, true, true
	case token.ElseSigil: // '!' doubles as logical-not in expression position
		return types.Not, true, true
	case token.Tilde:
		return types.BNot, true, true
	case token.PlusPlus:
		return types.PreInc, false, true
	case token.MinusMin:
		return types.PreDec, false, true
	default:
		return 0, false, false
	}
}

func (p *Parser) parseUnary() (*ast.Node, error) {
	if op, pure, ok := unaryOpFor(p.tok.Kind); ok {
		start := p.tok.Span
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n := ast.NewUnary(p.arena, op, operand, start.Cover(operand.Span))
		n.Purity = pure
		return n, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles the postfix forms of ++ / -- on a primary.
func (p *Parser) parsePostfix() (*ast.Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok.Kind {
		case token.PlusPlus:
			end := p.tok.Span
			if err := p.advance(); err != nil {
				return nil, err
			}
			u := ast.NewUnary(p.arena, types.PostInc, n, n.Span.Cover(end))
			u.Purity = false
			n = u
		case token.MinusMin:
			end := p.tok.Span
			if err := p.advance(); err != nil {
				return nil, err
			}
			u := ast.NewUnary(p.arena, types.PostDec, n, n.Span.Cover(end))
			u.Purity = false
			n = u
		default:
			return n, nil
		}
	}
}

func castTargetType(k token.Kind) (types.VT, bool) {
	switch k {
	case token.TypeI64:
		return types.I64, true
	case token.TypeF64:
		return types.F64, true
	case token.TypeStr:
		return types.STR, true
	default:
		return types.UNKNOWN, false
	}
}

// parsePrimary handles literals, identifiers, parenthesized
// expressions, and the type-cast prefix form "TYPE ( expr )" (spec
// §4.4).
func (p *Parser) parsePrimary() (*ast.Node, error) {
	if target, ok := castTargetType(p.tok.Kind); ok {
		start := p.tok.Span
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		end := p.tok.Span
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		n := ast.NewTypeCast(p.arena, types.UNKNOWN, target, inner, true, start.Cover(end))
		n.Purity = true
		return n, nil
	}

	switch p.tok.Kind {
	case token.IntLiteral:
		tok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewIntLiteral(p.arena, tok.Int, tok.Span), nil
	case token.FloatLiteral:
		tok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewFloatLiteral(p.arena, tok.Float, tok.Span), nil
	case token.StringLiteral:
		tok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewStringLiteral(p.arena, tok.Str, tok.Span), nil
	case token.Ident:
		tok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.at(token.LParen) {
			firstArg, count, end, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			return ast.NewFunctionCall(p.arena, tok.Str, firstArg, count, tok.Span.Cover(end)), nil
		}
		return ast.NewVarRef(p.arena, tok.Str, tok.Span), nil
	case token.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errf(diag.KindUnexpectedToken, p.tok.Span, "expected an expression, found %s", p.tok.Kind)
	}
}
