// Package ast implements the tagged AST node model of spec §3: a
// single record type selected by Kind, with sibling links forming
// intrusive lists for statement sequences, argument lists, and
// print-argument lists. Nodes are arena-allocated; the analyzer and
// optimizer mutate specific fields in place (ExprType, Purity,
// FromType, DeclType, and child-pointer splices) but never the kind
// after creation. The span changes in one place only: identity-cast
// elimination gives the surviving inner node the removed cast's span.
package ast

import (
	"fmt"

	"github.com/vismutlang/vismut/internal/scope"
	"github.com/vismutlang/vismut/internal/token"
	"github.com/vismutlang/vismut/internal/types"
)

// Kind selects which payload fields of Node are meaningful.
type Kind int

const (
	Invalid Kind = iota
	Module
	Block
	Literal
	VarRef
	VarDecl
	PrintStmt
	IfStmt
	WhileStmt
	FunctionDecl
	FunctionCall
	Unary
	Binary
	Ternary
	TypeCast
)

var kindNames = map[Kind]string{
	Invalid:      "INVALID",
	Module:       "MODULE",
	Block:        "BLOCK",
	Literal:      "LITERAL",
	VarRef:       "VAR_REF",
	VarDecl:      "VAR_DECL",
	PrintStmt:    "PRINT_STMT",
	IfStmt:       "IF_STMT",
	WhileStmt:    "WHILE_STMT",
	FunctionDecl: "FUNCTION_DECL",
	FunctionCall: "FUNCTION_CALL",
	Unary:        "UNARY",
	Binary:       "BINARY",
	Ternary:      "TERNARY",
	TypeCast:     "TYPE_CAST",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Signature is a function signature (spec §3): shared by reference
// between a FUNCTION_DECL and every FUNCTION_CALL that targets it.
type Signature struct {
	Name       string
	NameHash   uint32
	ReturnType types.VT
	Params     []Param
}

// Param is one (name, type) entry of a Signature's ordered parameter list.
type Param struct {
	Name string
	Type types.VT
}

// Node is the tagged AST record (spec §3): {kind, span,
// next_sibling?, payload}. Every field below is a payload slot for
// some subset of Kind values; which fields are meaningful is
// determined entirely by Kind. NextSibling threads intrusive lists:
// MODULE.FirstStmt/FirstFunction, BLOCK.FirstStmt,
// PRINT_STMT.FirstExpr, FUNCTION_CALL.FirstArgument.
type Node struct {
	Kind Kind
	Span token.Span

	NextSibling *Node

	// Interior-mutable analysis results, written post-parse by the
	// analyzer/optimizer only: ExprType, Purity, FromType, DeclType,
	// and child-pointer fields they splice (Left/Right/Operand/etc,
	// ThenExpr/ElseExpr, Expr).
	ExprType types.VT
	Purity   bool

	// MODULE
	ModuleName    string
	Scope         *scope.Scope
	FirstStmt     *Node
	FirstFunction *Node

	// LITERAL
	LiteralKind  token.LiteralKind
	IntValue     int64
	FloatValue   float64
	StringValue  string

	// VAR_REF / VAR_DECL / FUNCTION_CALL (callee name before Sig resolution)
	Name        string
	DeclType    types.VT // VAR_DECL: declared type, may start AUTO
	InitType    types.VT // VAR_DECL: initializer's resolved type
	Init        *Node    // VAR_DECL: initializer expression, or nil

	// PRINT_STMT
	FirstExpr *Node

	// IF_STMT
	Cond   *Node
	Then   *Node
	Else   *Node // else-branch statement/block, or nil

	// WHILE_STMT uses Cond and Then as {condition, body}.

	// FUNCTION_DECL / FUNCTION_CALL
	Sig           *Signature
	Body          *Node // FUNCTION_DECL: expression or block
	FirstArgument *Node // FUNCTION_CALL
	ArgumentCount int   // FUNCTION_CALL

	// UNARY
	UnOp    types.UnOp
	Operand *Node

	// BINARY
	BinOp types.BinOp
	Left  *Node
	Right *Node

	// TERNARY
	ThenExpr *Node
	ElseExpr *Node

	// TYPE_CAST
	FromType   types.VT
	TargetType types.VT
	IsExplicit bool
	Expr       *Node
}

// AppendSibling walks from head following NextSibling and attaches n
// at the tail, returning the (possibly unchanged) head. Passing a nil
// head returns n as the new head. Lists are built tail-attaching
// during parse and are never mutated afterward except for optimizer
// splices of individual nodes in place.
func AppendSibling(head, n *Node) *Node {
	if head == nil {
		return n
	}
	tail := head
	for tail.NextSibling != nil {
		tail = tail.NextSibling
	}
	tail.NextSibling = n
	return head
}

// Siblings returns the nodes reachable from head via NextSibling, in order.
func Siblings(head *Node) []*Node {
	var out []*Node
	for n := head; n != nil; n = n.NextSibling {
		out = append(out, n)
	}
	return out
}

// Count returns the number of nodes reachable from head via NextSibling.
func Count(head *Node) int {
	n := 0
	for cur := head; cur != nil; cur = cur.NextSibling {
		n++
	}
	return n
}
