package sindarin

import "fmt"

// Severity classifies a Diagnostic. The driver only treats
// DiagnosticError as fatal to code generation; the rest are surfaced
// to the user and otherwise ignored by the pipeline.
type Severity int

const (
	DiagnosticError Severity = iota
	DiagnosticWarning
	DiagnosticInfo
	DiagnosticHint
)

func (s Severity) String() string {
	switch s {
	case DiagnosticError:
		return "error"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticInfo:
		return "info"
	case DiagnosticHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is the single shape every lex, parse, type and capability
// error takes. Code carries the taxonomy name from spec.md §7
// (lex-error, parse-error, type-error, capability-error, internal).
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Location SourceLocation
}

func (d Diagnostic) String() string {
	file := d.Location.Span.Start.File
	if file == "" {
		file = "<unknown>"
	}
	return fmt.Sprintf("%s:%d: %s", file, d.Location.Span.Start.Line, d.Message)
}

// DiagnosticSink accumulates diagnostics across lexing, parsing and
// type checking of the entry module and every file it imports. It
// mirrors spec.md §7's "single aggregated error flag": HasErrors
// decides whether the driver invokes the code generator.
type DiagnosticSink struct {
	items []Diagnostic
}

func NewDiagnosticSink() *DiagnosticSink {
	return &DiagnosticSink{}
}

func (s *DiagnosticSink) Add(d Diagnostic) {
	s.items = append(s.items, d)
}

func (s *DiagnosticSink) Errorf(loc SourceLocation, code, format string, args ...any) {
	s.Add(Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	})
}

func (s *DiagnosticSink) HasErrors() bool {
	for _, d := range s.items {
		if d.Severity == DiagnosticError {
			return true
		}
	}
	return false
}

func (s *DiagnosticSink) All() []Diagnostic {
	return s.items
}

// LexError is raised by the lexer for invalid escapes, unterminated
// strings and malformed number literals (spec.md §7).
type LexError struct {
	Message string
	Loc     Location
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// ParseError is raised by the parser for unexpected tokens, missing
// delimiters and malformed blocks (spec.md §7). The parser recovers
// from it by skipping to the next statement boundary rather than
// unwinding the whole compilation.
type ParseError struct {
	Message string
	Loc     Location
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// isRecoverable reports whether err is one this compiler's recursive
// descent parser knows how to recover from by resynchronizing at the
// next statement boundary.
func isRecoverable(err error) bool {
	_, ok := err.(ParseError)
	return ok
}
