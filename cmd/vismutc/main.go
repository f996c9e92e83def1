// Command vismutc is the Vismut compiler front-end driver (spec §6):
// it takes a single source file, runs it through the lex → parse →
// analyze → optimize pipeline, and writes the artifacts the pipeline
// is actually able to produce next to the source file. Final
// target-language emission (the ".c"/".exe" artifacts) and invoking an
// external compiler/runner on them are out of scope per spec §1 and
// are left to an injectable emit.Target this driver does not wire a
// real implementation for.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vismutlang/vismut/internal/analyzer"
	"github.com/vismutlang/vismut/internal/arena"
	"github.com/vismutlang/vismut/internal/ast"
	"github.com/vismutlang/vismut/internal/diag"
	"github.com/vismutlang/vismut/internal/emit"
	"github.com/vismutlang/vismut/internal/optimizer"
	"github.com/vismutlang/vismut/internal/parser"
	"github.com/vismutlang/vismut/internal/source"
)

var (
	dumpASTFlag = flag.Bool("dump-ast", false, "write a <source>.ast.txt dump of the analyzed, optimized AST")
	emitCFlag   = flag.Bool("emit-c", false, "attempt to emit a <source>.c target file (out of scope: no backend is wired in)")
	colorFlag   = flag.Bool("color", false, "colorize the AST dump (no-op without a real Colorizer backend)")
	verboseFlag = flag.Int("v", 0, "verbosity: 0=errors only, 1=info, 2=debug")
)

func main() {
	os.Exit(run())
}

// run is separated from main so a deferred recover can still set the
// exit code (spec §4.1: "Out-of-memory is fatal"; a raw arena
// allocation failure must still surface as a clean nonzero exit
// rather than an unhandled panic trace, per spec §7's "user-visible
// behavior" contract).
func run() (code int) {
	flag.Parse()
	logger := diag.NewLogger(diag.Level(*verboseFlag))

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "vismutc: internal error: %v\n", r)
			code = diag.KindAlloc.Code()
		}
	}()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vismutc <source-file>")
		return diag.KindIO.Code()
	}
	path := flag.Arg(0)

	cfg, err := loadProjectConfig(filepath.Join(filepath.Dir(path), ".vismutc.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "vismutc: loading .vismutc.yaml: %v\n", err)
		return diag.KindIO.Code()
	}
	dumpAST := *dumpASTFlag || cfg.DumpAST
	colorEnabled := *colorFlag || cfg.ColorEnabled

	src, err := os.ReadFile(path)
	if err != nil {
		de := diag.Wrap(diag.KindIO, path, 0, 0, err, "reading source file: %v", err)
		fmt.Fprintln(os.Stderr, de.Error())
		return exitCode(de)
	}

	mod, buf, err := compile(path, src, logger)
	if err != nil {
		reportError(buf, err)
		return exitCode(err)
	}
	logger.Logf(buf, 0, "compiled %q: %d statement(s), %d function(s)",
		path, ast.Count(mod.FirstStmt), ast.Count(mod.FirstFunction))

	if dumpAST {
		var colorizer diag.Colorizer = diag.NoColor{}
		if colorEnabled {
			colorizer = diag.NoColor{} // real ANSI backend is an external collaborator (spec §9)
		}
		dumper := emit.NewASTDump(colorizer)
		out, _ := dumper.Emit(mod)
		dumpPath := withSuffix(path, ".ast.txt")
		if err := os.WriteFile(dumpPath, out, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "vismutc: writing %s: %v\n", dumpPath, err)
			return diag.KindIO.Code()
		}
		logger.Debugf(buf, 0, "wrote %s", dumpPath)
	}

	if *emitCFlag {
		logger.Errorf(buf, 0, "%s", emit.ErrNotImplemented.Message)
	}

	return 0
}

// compile runs the core pipeline: lexical analysis happens implicitly
// inside parser.Parse (spec §4.4's parser drives the tokenizer), then
// type analysis (§4.5), then optimization (§4.6).
func compile(module string, src []byte, logger *diag.Logger) (*ast.Node, *source.Buffer, error) {
	buf := source.New(module, src)
	a := arena.New()

	mod, err := parser.Parse(module, src, a)
	if err != nil {
		return nil, buf, err
	}
	logger.Debugf(buf, 0, "parsed %q", module)

	if err := analyzer.Analyze(module, mod, a); err != nil {
		return nil, buf, err
	}
	logger.Debugf(buf, 0, "analyzed %q", module)

	optimizer.Optimize(mod, a)
	logger.Debugf(buf, 0, "optimized %q", module)

	return mod, buf, nil
}

// reportError renders err in the human-readable diagnostic format of
// spec §6 (module, line/column, caret underline, description).
func reportError(buf *source.Buffer, err error) {
	de, ok := err.(*diag.Error)
	if !ok {
		fmt.Fprintf(os.Stderr, "vismutc: %v\n", err)
		return
	}
	pos := buf.Resolve(de.Offset)
	de.Line, de.Column = pos.Line, pos.Column
	fmt.Fprintf(os.Stderr, "%s\n%s\n", de.Error(), buf.Render(de.Offset, de.Length))
}

// exitCode maps err to the process exit code spec §6 requires:
// "nonzero, equal to the error kind's numeric code".
func exitCode(err error) int {
	if de, ok := err.(*diag.Error); ok {
		code := de.Kind.Code()
		if code == 0 {
			return 1
		}
		return code
	}
	return 1
}

// withSuffix replaces path's extension with suffix (e.g. ".c",
// ".ast.txt"), per spec §6: "written next to it with suffixes".
func withSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + suffix
}
