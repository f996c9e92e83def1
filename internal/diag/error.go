// Package diag holds the compiler's structured diagnostic type, its
// closed error taxonomy (spec §7), and a human-readable renderer.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the closed set of error kinds a stage of the pipeline can
// report. Values are stable; the CLI driver returns Kind as the
// process exit code.
type Kind int

const (
	// KindNone is the zero value; never attached to a reported Error.
	KindNone Kind = iota

	KindIO
	KindAlloc
	KindEncoding
	KindBufferOverflow

	KindUnknownSymbol
	KindUnexpectedSymbol
	KindUnknownNumberFormat
	KindNumberOverflow
	KindNumberParse

	KindUnexpectedToken
	KindUnknownType

	KindSymbolAlreadyDefined
	KindSymbolNotDefined
	KindFunctionAlreadyDefined
	KindFunctionNotDefined
	KindUnsupportedOperation
	KindTypeIsIncompatible
	KindCastIsNotAllowed
	KindAssignNotToVar
	KindVoidForExpressionFunction
	KindInvalidArgumentsCount
	KindInvalidArgumentType
)

var kindNames = map[Kind]string{
	KindNone:                      "NONE",
	KindIO:                        "IO",
	KindAlloc:                     "ALLOC",
	KindEncoding:                  "ENCODING",
	KindBufferOverflow:            "BUFFER_OVERFLOW",
	KindUnknownSymbol:             "UNKNOWN_SYMBOL",
	KindUnexpectedSymbol:          "UNEXPECTED_SYMBOL",
	KindUnknownNumberFormat:       "UNKNOWN_NUMBER_FORMAT",
	KindNumberOverflow:            "NUMBER_OVERFLOW",
	KindNumberParse:               "NUMBER_PARSE",
	KindUnexpectedToken:           "UNEXPECTED_TOKEN",
	KindUnknownType:               "UNKNOWN_TYPE",
	KindSymbolAlreadyDefined:      "SYMBOL_ALREADY_DEFINED",
	KindSymbolNotDefined:          "SYMBOL_NOT_DEFINED",
	KindFunctionAlreadyDefined:    "FUNCTION_ALREADY_DEFINED",
	KindFunctionNotDefined:        "FUNCTION_NOT_DEFINED",
	KindUnsupportedOperation:      "UNSUPPORTED_OPERATION",
	KindTypeIsIncompatible:        "TYPE_IS_INCOMPATIBLE",
	KindCastIsNotAllowed:          "CAST_IS_NOT_ALLOWED",
	KindAssignNotToVar:            "ASSIGN_NOT_TO_VAR",
	KindVoidForExpressionFunction: "VOID_FOR_EXPRESSION_FUNCTION",
	KindInvalidArgumentsCount:     "INVALID_ARGUMENTS_COUNT",
	KindInvalidArgumentType:       "INVALID_ARGUMENT_TYPE",
}

// String renders the kind's wire name, e.g. "SYMBOL_NOT_DEFINED".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code returns the process exit code associated with the kind (spec §6:
// "nonzero, equal to the error kind"). KindNone has no valid code and
// is never used for a reported error.
func (k Kind) Code() int { return int(k) }

// Error is the structured diagnostic produced by any pipeline stage.
// Offset/Length locate the offending span in bytes; Line/Column are
// filled in lazily by Resolve (spec §4.7) so that stages which never
// render a diagnostic never pay for the scan.
type Error struct {
	Kind    Kind
	Module  string
	Offset  int
	Length  int
	Line    int // 1-based; 0 until Resolve is called.
	Column  int // 1-based; 0 until Resolve is called.
	Message string

	// wrapped carries additional context attached via Wrap, e.g. a
	// lower-level I/O failure that triggered a KindIO diagnostic.
	wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Module, e.Line, e.Column, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s:%d: %s: %s", e.Module, e.Offset, e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error { return e.wrapped }

// New constructs an Error at the given span with a formatted message.
func New(kind Kind, module string, offset, length int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Module:  module,
		Offset:  offset,
		Length:  length,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap attaches cause as the underlying reason for a newly constructed
// Error, annotated via github.com/pkg/errors with the stack trace at
// the point Wrap is called.
func Wrap(kind Kind, module string, offset, length int, cause error, format string, args ...interface{}) *Error {
	e := New(kind, module, offset, length, format, args...)
	e.wrapped = errors.WithStack(cause)
	return e
}
