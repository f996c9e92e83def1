package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vismutlang/vismut/internal/token"
	"github.com/vismutlang/vismut/internal/types"
)

// String renders n as a single-line, human-readable expression,
// matching the teacher's per-node String() idiom. It is for logging
// and test failure messages only; the result is not guaranteed to be
// re-parseable.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Literal:
		switch n.LiteralKind {
		case token.IntLit:
			return strconv.FormatInt(n.IntValue, 10)
		case token.FloatLit:
			return strconv.FormatFloat(n.FloatValue, 'g', -1, 64)
		default:
			return strconv.Quote(n.StringValue)
		}
	case VarRef:
		return n.Name
	case VarDecl:
		if n.Init != nil {
			return fmt.Sprintf("$ %s : %s = %s", n.Name, n.DeclType, n.Init)
		}
		return fmt.Sprintf("$ %s : %s", n.Name, n.DeclType)
	case Unary:
		return fmt.Sprintf("(%s%s)", unOpSymbol(n.UnOp), n.Operand)
	case Binary:
		return fmt.Sprintf("(%s %s %s)", n.Left, binOpSymbol(n.BinOp), n.Right)
	case Ternary:
		return fmt.Sprintf("(%s ? %s : %s)", n.Cond, n.ThenExpr, n.ElseExpr)
	case TypeCast:
		return fmt.Sprintf("%s(%s)", n.TargetType, n.Expr)
	case FunctionCall:
		var args []string
		for a := n.FirstArgument; a != nil; a = a.NextSibling {
			args = append(args, a.String())
		}
		name := n.Name
		if n.Sig != nil {
			name = n.Sig.Name
		}
		return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	case PrintStmt:
		var args []string
		for a := n.FirstExpr; a != nil; a = a.NextSibling {
			args = append(args, a.String())
		}
		return fmt.Sprintf(":: %s;", strings.Join(args, ", "))
	case IfStmt:
		s := fmt.Sprintf("# %s %s", n.Cond, n.Then)
		if n.Else != nil {
			s += " " + elseChainString(n.Else)
		}
		return s
	case WhileStmt:
		return fmt.Sprintf("@ %s %s", n.Cond, n.Then)
	case Block:
		var stmts []string
		for s := n.FirstStmt; s != nil; s = s.NextSibling {
			stmts = append(stmts, s.String())
		}
		return "{" + strings.Join(stmts, " ") + "}"
	case FunctionDecl:
		name := ""
		ret := ""
		var params []string
		if n.Sig != nil {
			name = n.Sig.Name
			ret = n.Sig.ReturnType.String()
			for _, p := range n.Sig.Params {
				params = append(params, fmt.Sprintf("%s: %s", p.Name, p.Type))
			}
		}
		if n.Body.Kind == Block {
			return fmt.Sprintf("-> %s(%s): %s %s", name, strings.Join(params, ", "), ret, n.Body)
		}
		return fmt.Sprintf("-> %s(%s): %s => %s;", name, strings.Join(params, ", "), ret, n.Body)
	case Module:
		var parts []string
		for s := n.FirstFunction; s != nil; s = s.NextSibling {
			parts = append(parts, s.String())
		}
		for s := n.FirstStmt; s != nil; s = s.NextSibling {
			parts = append(parts, s.String())
		}
		return strings.Join(parts, " ")
	default:
		return n.Kind.String()
	}
}

// elseChainString renders an IF_STMT's else-branch: a nested IF_STMT
// (the parser's internal rewrite of "!#") prints with the "!#"
// sigil so it keeps chaining, rather than a second "#" that would
// reparse as an unrelated top-level if-statement.
func elseChainString(n *Node) string {
	if n.Kind == IfStmt {
		s := fmt.Sprintf("!# %s %s", n.Cond, n.Then)
		if n.Else != nil {
			s += " " + elseChainString(n.Else)
		}
		return s
	}
	return fmt.Sprintf("! %s", n)
}

func unOpSymbol(op types.UnOp) string {
	switch op {
	case types.Pos:
		return "+"
	case types.Neg:
		return "-"
	case types.Not:
		return "!"
	case types.BNot:
		return "~"
	case types.PreInc:
		return "++"
	case types.PreDec:
		return "--"
	case types.PostInc:
		return "post++"
	case types.PostDec:
		return "post--"
	default:
		return "?"
	}
}

func binOpSymbol(op types.BinOp) string {
	switch op {
	case types.Add:
		return "+"
	case types.Sub:
		return "-"
	case types.Mul:
		return "*"
	case types.Div:
		return "/"
	case types.IDiv:
		return "//"
	case types.Pow:
		return "**"
	case types.Lt:
		return "<"
	case types.Le:
		return "<="
	case types.Gt:
		return ">"
	case types.Ge:
		return ">="
	case types.Eq:
		return "=="
	case types.Ne:
		return "!="
	case types.And:
		return "&&"
	case types.Or:
		return "||"
	case types.BAnd:
		return "&"
	case types.BOr:
		return "|"
	case types.Shl:
		return "<<"
	case types.Shr:
		return ">>"
	case types.AssignOp:
		return "="
	default:
		return "?"
	}
}

// Dump renders n and its descendants in the persisted AST dump format
// of spec §6: one node per line, 4-space indent per depth, each line
// "<kind> [<payload>] (<type>) [offset-endoffset]". The type shown for
// a VAR_DECL is its declared type; for every other node it is ExprType.
func Dump(n *Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("    ", depth))
	typ := n.ExprType
	if n.Kind == VarDecl {
		typ = n.DeclType
	}
	fmt.Fprintf(b, "%s [%s] (%s) [%d-%d]\n", n.Kind, dumpPayload(n), typ, n.Span.Offset, n.Span.End())
	for _, child := range dumpChildren(n) {
		dump(b, child, depth+1)
	}
}

func dumpPayload(n *Node) string {
	switch n.Kind {
	case Module:
		return n.ModuleName
	case Literal:
		return n.String()
	case VarRef, VarDecl:
		return n.Name
	case Unary:
		return unOpSymbol(n.UnOp)
	case Binary:
		return binOpSymbol(n.BinOp)
	case TypeCast:
		if n.IsExplicit {
			return "explicit"
		}
		return "implicit"
	case FunctionDecl, FunctionCall:
		if n.Sig != nil {
			return n.Sig.Name
		}
		return n.Name
	default:
		return ""
	}
}

func dumpChildren(n *Node) []*Node {
	var out []*Node
	add := func(c *Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch n.Kind {
	case Module:
		for s := n.FirstFunction; s != nil; s = s.NextSibling {
			add(s)
		}
		for s := n.FirstStmt; s != nil; s = s.NextSibling {
			add(s)
		}
	case Block:
		for s := n.FirstStmt; s != nil; s = s.NextSibling {
			add(s)
		}
	case VarDecl:
		add(n.Init)
	case PrintStmt:
		for s := n.FirstExpr; s != nil; s = s.NextSibling {
			add(s)
		}
	case IfStmt:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case WhileStmt:
		add(n.Cond)
		add(n.Then)
	case FunctionDecl:
		add(n.Body)
	case FunctionCall:
		for a := n.FirstArgument; a != nil; a = a.NextSibling {
			add(a)
		}
	case Unary:
		add(n.Operand)
	case Binary:
		add(n.Left)
		add(n.Right)
	case Ternary:
		add(n.Cond)
		add(n.ThenExpr)
		add(n.ElseExpr)
	case TypeCast:
		add(n.Expr)
	}
	return out
}
