// Package types defines the closed value-type enumeration (spec §3)
// and the typing algebra (spec §4.5.1): binary/unary rule tables,
// cast permissions, and common-type search.
package types

// VT is the closed Value Type enumeration. AUTO is a parse-time
// placeholder ("infer"); UNKNOWN is an analyzer sentinel ("no valid
// rule"). After type analysis no live expression node carries AUTO or
// UNKNOWN (spec §3 invariant 2).
type VT int

const (
	UNKNOWN VT = iota
	VOID
	AUTO
	I64
	F64
	STR
)

func (t VT) String() string {
	switch t {
	case UNKNOWN:
		return "unknown"
	case VOID:
		return "void"
	case AUTO:
		return "auto"
	case I64:
		return "i64"
	case F64:
		return "f64"
	case STR:
		return "str"
	default:
		return "invalid"
	}
}

// BinOp is the closed set of binary operators.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div   // /
	IDiv  // //
	Pow   // **
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	And // &&
	Or  // ||
	BAnd
	BOr
	Shl
	Shr
	AssignOp
)

// UnOp is the closed set of unary operators.
type UnOp int

const (
	Pos UnOp = iota // +x
	Neg             // -x
	Not             // !x
	BNot            // ~x
	PreInc
	PreDec
	PostInc
	PostDec
)

type binKey struct {
	op   BinOp
	l, r VT
}

// binaryRules implements the table in spec §4.5.1: (op, L, R) ->
// result, for operand pairs that need no coercion.
var binaryRules = map[binKey]VT{
	{Add, I64, I64}: I64,
	{Add, F64, F64}: F64,
	{Add, STR, STR}: STR,

	{Sub, I64, I64}: I64,
	{Sub, F64, F64}: F64,
	{Mul, I64, I64}: I64,
	{Mul, F64, F64}: F64,

	{Div, I64, I64}: F64,
	{Div, F64, F64}: F64,

	{IDiv, I64, I64}: I64,
	{IDiv, F64, F64}: I64,

	{Pow, I64, I64}: I64,
	{Pow, F64, F64}: F64,

	{Lt, I64, I64}: I64,
	{Le, I64, I64}: I64,
	{Gt, I64, I64}: I64,
	{Ge, I64, I64}: I64,

	{Eq, I64, I64}: I64,
	{Ne, I64, I64}: I64,
	{And, I64, I64}: I64,
	{Or, I64, I64}: I64,
	{BAnd, I64, I64}: I64,
	{BOr, I64, I64}: I64,
	{Shl, I64, I64}: I64,
	{Shr, I64, I64}: I64,

	// && / || are also defined directly over F64 operands (truthiness:
	// nonzero is true), matching the way unary ! on an F64 literal
	// folds directly to an I64 0/1 result rather than going through a
	// generic implicit cast (spec §4.5.1 parenthetical, §4.6 unary
	// constant folding).
	{And, F64, F64}: I64,
	{Or, F64, F64}: I64,
}

// LookupBinary returns the result type for (op, l, r) with no
// coercion needed, or ok=false if the pair is not in the table (the
// caller must then try common-type coercion).
func LookupBinary(op BinOp, l, r VT) (VT, bool) {
	t, ok := binaryRules[binKey{op, l, r}]
	return t, ok
}

// IsNumeric reports whether t is I64 or F64.
func IsNumeric(t VT) bool { return t == I64 || t == F64 }

// IsCastAllowed reports whether a value of type from can be converted
// to type to. isExplicit widens the permission set to include
// explicit-only casts (spec §4.5.1 cast-permission table).
func IsCastAllowed(from, to VT, isExplicit bool) bool {
	if from == to {
		return true
	}
	if from == I64 && to == F64 {
		return true
	}
	if isExplicit && from == F64 && to == I64 {
		return true
	}
	return false
}

// CommonType searches for the smallest type reachable from a and b by
// at most one *implicit* cast on each side (spec glossary: "Common
// type"). It returns ok=false if no such type exists.
func CommonType(a, b VT) (VT, bool) {
	if a == b {
		return a, true
	}
	if IsCastAllowed(a, b, false) {
		return b, true
	}
	if IsCastAllowed(b, a, false) {
		return a, true
	}
	return UNKNOWN, false
}

// UnaryResult computes the result type of applying op to an operand of
// type operand, per spec §4.5.1's unary rules.
func UnaryResult(op UnOp, operand VT) (VT, bool) {
	switch op {
	case Pos, Neg:
		if IsNumeric(operand) {
			return operand, true
		}
	case Not:
		if IsNumeric(operand) {
			return I64, true
		}
	case BNot:
		if operand == I64 {
			return I64, true
		}
	case PreInc, PreDec, PostInc, PostDec:
		if IsNumeric(operand) {
			return operand, true
		}
	}
	return UNKNOWN, false
}
