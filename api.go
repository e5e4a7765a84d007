package sindarin

import (
	"fmt"
	"os"

	"github.com/RealOrko/sindarin/ascii"
)

// CompileResult is everything Compile produces: the emitted C source
// (empty on failure) and every diagnostic collected across import
// resolution, parsing and type checking.
type CompileResult struct {
	Output string
	Diags  *DiagnosticSink
}

// Compile runs the full pipeline — import resolution, type checking,
// code generation — over the module rooted at entryPath, adapted from
// the teacher's api.go/cmd/langlang staged-pipeline wiring: each stage
// runs to completion and the next only starts if the previous left no
// fatal diagnostic (spec.md §6 CLI, §9 "single-threaded, each stage
// runs to completion before the next begins").
func Compile(entryPath string, cfg *Config) *CompileResult {
	return CompileWithLoader(entryPath, NewRelativeImportLoader(), cfg)
}

// CompileWithLoader runs the same pipeline as Compile but against an
// arbitrary ImportLoader, letting tests substitute an
// InMemoryImportLoader fixture for the filesystem.
func CompileWithLoader(entryPath string, loader ImportLoader, cfg *Config) *CompileResult {
	diags := NewDiagnosticSink()

	importer := NewImporter(loader, diags)
	mod := importer.ResolveModule(entryPath)
	if mod == nil || diags.HasErrors() {
		return &CompileResult{Diags: diags}
	}

	checker := NewChecker(diags, UnknownFileID, cfg)
	checker.CheckModule(mod)
	if diags.HasErrors() {
		return &CompileResult{Diags: diags}
	}

	cg := NewCodeGen(cfg, diags)
	output := cg.Generate(mod)
	return &CompileResult{Output: output, Diags: diags}
}

// WriteOutput writes result.Output to path, honoring the same 0644
// permission the teacher's CLI writes generated parsers with.
func WriteOutput(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// PrintDiagnostics renders every diagnostic in diags to stderr, one
// per line, colored by severity using the ascii package's default
// theme (grounded on the teacher's use of ascii.Color for its own
// AST/ASM printers, generalized here to diagnostic output).
func PrintDiagnostics(diags *DiagnosticSink) {
	theme := ascii.DefaultTheme
	for _, d := range diags.All() {
		color := theme.Info
		switch d.Severity {
		case DiagnosticError:
			color = theme.Error
		case DiagnosticWarning:
			color = theme.Warning
		case DiagnosticHint:
			color = theme.Hint
		}
		fmt.Fprintln(os.Stderr, ascii.Color(color, "%s [%s]", d.String(), d.Code))
	}
}
