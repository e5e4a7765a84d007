package sindarin

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

const eof = -1

// Location is a single point in a source file: line and column are
// 1-indexed and rune-based; Cursor is the 0-indexed offset of the
// point: a rune index in Locations the lexer produces, a byte index in
// those LineIndex.LocationAt produces.
type Location struct {
	File   string
	Line   int
	Column int
	Cursor int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Span is a half-open range between two locations, used to tag every
// token and AST node for diagnostics.
type Span struct {
	Start Location
	End   Location
}

func NewSpan(start, end Location) Span {
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line && s.Start.Column == s.End.Column {
		return s.Start.String()
	}
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s:%d:%d..%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s:%d:%d..%d:%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// FileID identifies a source file within a compilation; the importer
// assigns these in discovery order so diagnostics can name the file
// without carrying the full path through every AST node.
type FileID int

const UnknownFileID FileID = -1

// SourceLocation pairs a FileID with a Span, letting diagnostics point
// at a location in an imported file distinct from the entry module.
type SourceLocation struct {
	FileID FileID
	Span   Span
}

// LineIndex converts byte cursor offsets into line/column pairs in
// O(log lines) after an O(n) build, so the lexer can track position
// cheaply while the error reporter can recompute exact columns
// on demand (e.g. after backtracking or macro-ish import splicing).
type LineIndex struct {
	input     []byte
	lineStart []int
}

func NewLineIndex(input []byte) *LineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &LineIndex{input: input, lineStart: lineStart}
}

func (li *LineIndex) LocationAt(file string, cursor int) Location {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(li.input) {
		cursor = len(li.input)
	}
	lineIdx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > cursor
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	lineStart := li.lineStart[lineIdx]
	col := utf8.RuneCount(li.input[lineStart:cursor]) + 1
	return Location{File: file, Line: lineIdx + 1, Column: col, Cursor: cursor}
}
