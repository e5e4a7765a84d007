package sindarin

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImportLoader resolves an import path relative to the file that
// names it and fetches its content — adapted from the teacher's
// RelativeImportLoader/InMemoryImportLoader pair in
// grammar_import_loaders.go, generalized from grammar files to
// Sindarin source modules.
type ImportLoader interface {
	GetPath(importPath, parentPath string) (string, error)
	GetContent(path string) ([]byte, error)
}

type RelativeImportLoader struct{}

func NewRelativeImportLoader() *RelativeImportLoader { return &RelativeImportLoader{} }

func (l *RelativeImportLoader) GetPath(importPath, parentPath string) (string, error) {
	return getRelativePath(importPath, parentPath)
}

func (l *RelativeImportLoader) GetContent(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// InMemoryImportLoader backs the import-scenario tests under tests/
// with in-process fixtures instead of real files.
type InMemoryImportLoader struct{ files map[string][]byte }

func NewInMemoryImportLoader() *InMemoryImportLoader {
	return &InMemoryImportLoader{files: map[string][]byte{}}
}

func (l *InMemoryImportLoader) Add(path, content string) {
	l.files[filepath.Clean(path)] = []byte(content)
}

func (l *InMemoryImportLoader) GetPath(importPath, parentPath string) (string, error) {
	return getRelativePath(importPath, parentPath)
}

func (l *InMemoryImportLoader) GetContent(path string) ([]byte, error) {
	b, ok := l.files[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("import not found: %s", path)
	}
	return b, nil
}

func getRelativePath(importPath, parentPath string) (string, error) {
	if importPath == parentPath {
		return importPath, nil
	}
	if len(importPath) < 4 {
		return "", fmt.Errorf("path too short, it should start with ./: %s", importPath)
	}
	if importPath[:2] != "./" {
		return "", fmt.Errorf("path isn't relative to the import site: %s", importPath)
	}
	return filepath.Join(filepath.Dir(parentPath), importPath[2:]), nil
}

// Importer resolves a module and every import it transitively names
// into one ordered statement list: imported modules' statements are
// spliced ahead of the importer's own, de-duplicated by the path the
// loader resolves (the importing file's directory joined with the
// import path, cleaned) so a diamond-shaped import graph is only parsed
// once. Paths are not made absolute: the entry file is recorded under
// the path it was given.
type Importer struct {
	loader    ImportLoader
	diags     *DiagnosticSink
	visited   map[string]bool
	fileNames []string
	arena     *Arena
}

func NewImporter(loader ImportLoader, diags *DiagnosticSink) *Importer {
	return &Importer{loader: loader, diags: diags, visited: map[string]bool{}, arena: NewArena()}
}

// allocFileID interns name in the importer's arena before recording
// it under a new FileID; FileName returns that interned copy.
// Diagnostics render the file name carried in their Span, not this
// copy.
func (imp *Importer) allocFileID(name string) FileID {
	id := FileID(len(imp.fileNames))
	imp.fileNames = append(imp.fileNames, imp.arena.Strdup(name))
	return id
}

// FileName returns the source path recorded for id, for diagnostic
// rendering after parsing has finished.
func (imp *Importer) FileName(id FileID) string {
	if int(id) < 0 || int(id) >= len(imp.fileNames) {
		return "<unknown>"
	}
	return imp.fileNames[id]
}

// ResolveModule reads, lexes and parses entryPath, then recursively
// splices every `import "..."` it (or its transitive imports) names.
func (imp *Importer) ResolveModule(entryPath string) *Module {
	content, err := imp.loader.GetContent(entryPath)
	if err != nil {
		imp.diags.Errorf(SourceLocation{FileID: UnknownFileID}, "internal", "cannot read %s: %s", entryPath, err)
		return nil
	}
	imp.visited[entryPath] = true
	fileID := imp.allocFileID(entryPath)
	p := NewParser(string(content), entryPath, fileID, imp.diags)
	mod := p.ParseModule(entryPath)
	return imp.spliceImports(mod, entryPath)
}

func (imp *Importer) spliceImports(mod *Module, parentPath string) *Module {
	var prelude, rest []Stmt
	for _, stmt := range mod.Stmts {
		imStmt, ok := stmt.(*ImportStmt)
		if !ok {
			rest = append(rest, stmt)
			continue
		}
		absPath, err := imp.loader.GetPath(imStmt.Path, parentPath)
		if err != nil {
			imp.diags.Errorf(SourceLocation{FileID: UnknownFileID, Span: imStmt.Span()}, "type-error", "%s", err)
			continue
		}
		if imp.visited[absPath] {
			continue
		}
		imp.visited[absPath] = true
		content, err := imp.loader.GetContent(absPath)
		if err != nil {
			imp.diags.Errorf(SourceLocation{FileID: UnknownFileID, Span: imStmt.Span()}, "internal", "cannot read import %s: %s", absPath, err)
			continue
		}
		fileID := imp.allocFileID(absPath)
		sub := NewParser(string(content), absPath, fileID, imp.diags)
		subMod := sub.ParseModule(absPath)
		subMod = imp.spliceImports(subMod, absPath)
		prelude = append(prelude, subMod.Stmts...)
	}
	mod.Stmts = append(prelude, rest...)
	if !mod.HasMain {
		for _, s := range mod.Stmts {
			if fn, ok := s.(*FunctionStmt); ok && fn.Name == "main" {
				mod.HasMain = true
				break
			}
		}
	}
	return mod
}
