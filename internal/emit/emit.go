// Package emit specifies, at its interface only, the final
// transpilation-target emitter (spec §1: "deliberately out of scope...
// specified only by interface"). It also provides a stub
// implementation that satisfies the interface by writing the
// persisted AST dump format of spec §6, so vismutc has something
// runnable end-to-end without this module claiming to emit C.
package emit

import (
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/diag"
)

// Target emits an analyzed-and-optimized module as target-language
// text. A real implementation (C, per spec §1) is an external
// collaborator: this package defines only the contract a driver needs
// to invoke one.
type Target interface {
	// Emit consumes mod (already walked by analyzer and optimizer) and
	// returns the target-language text, or an error if mod cannot be
	// represented in the target.
	Emit(mod *ast.Node) ([]byte, error)
}

// ErrNotImplemented is returned by a Target that declines to emit,
// e.g. because no real backend is wired in. vismutc surfaces it as a
// clean diagnostic rather than a panic.
var ErrNotImplemented = diag.New(diag.KindIO, "(emit)", 0, 0, "no target-language emitter is configured")

// ASTDump is the stub Target required by spec §6's "Persisted AST
// dump": one node per line, 4-space indent per depth, each line
// "<kind> [<payload>] (<type>) [offset-endoffset]". It never fails
// (ast.Dump only walks already-built structure).
type ASTDump struct {
	Color diag.Colorizer
}

// NewASTDump creates an ASTDump emitter; color may be nil, in which
// case diag.NoColor is used.
func NewASTDump(color diag.Colorizer) *ASTDump {
	if color == nil {
		color = diag.NoColor{}
	}
	return &ASTDump{Color: color}
}

// Emit renders mod via ast.Dump. The stable, whitespace-sensitive
// format is specified by spec §6; it is not guaranteed to be
// re-parseable and does not attempt to be equivalent target-language
// text, unlike a real Target.
func (d *ASTDump) Emit(mod *ast.Node) ([]byte, error) {
	return []byte(ast.Dump(mod)), nil
}

var _ Target = (*ASTDump)(nil)
