package sindarin

import "fmt"

// SymbolKind classifies what a Symbol names.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymParameter
	SymFunction
)

// Symbol is what the SymbolTable binds a name to: its type, what
// kind of thing it is, its memory qualifier (parameters only) and,
// for functions, the modifier that decides arena-threading
// (spec.md §3 Symbol).
type Symbol struct {
	Name     string
	Type     *Type
	Kind     SymbolKind
	Qual     MemQual
	FuncMod  FuncMod
	IsFunc   bool
	FuncDecl *FunctionStmt // set when Kind == SymFunction

	// ViaClosure marks a symbol the code generator rebound, inside a
	// lifted lambda body, to a field of the `__closure__` parameter
	// rather than a plain local — set only during codegen, never by
	// the checker.
	ViaClosure bool
	Boxed      bool // captured primitive stored behind a pointer
}

// scope is one lexical level: a flat name->symbol map. Duplicate
// names within the same scope are rejected by Add.
type scope struct {
	names map[string]*Symbol
}

func newScope() *scope {
	return &scope{names: map[string]*Symbol{}}
}

// SymbolTable is a stack of scopes. Lookup walks the stack
// innermost-first; Add rejects a duplicate name in the active
// (innermost) scope only — shadowing an outer name is legal, matching
// the way a parameter symbol shadows outer bindings inside a function
// body (spec.md §3 SymbolTable, §4.4).
type SymbolTable struct {
	scopes []*scope
}

func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{}
	st.Push()
	return st
}

func (st *SymbolTable) Push() {
	st.scopes = append(st.scopes, newScope())
}

func (st *SymbolTable) Pop() {
	if len(st.scopes) == 0 {
		panic("sindarin: symbol table pop on empty stack")
	}
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// Add binds sym.Name in the innermost scope. It returns an error if
// the name is already bound in that same scope.
func (st *SymbolTable) Add(sym *Symbol) error {
	top := st.scopes[len(st.scopes)-1]
	if _, exists := top.names[sym.Name]; exists {
		return fmt.Errorf("`%s` is already declared in this scope", sym.Name)
	}
	top.names[sym.Name] = sym
	return nil
}

// Lookup returns the innermost binding for name, or nil if unbound.
func (st *SymbolTable) Lookup(name string) *Symbol {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i].names[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal reports whether name is bound in the innermost scope
// specifically, returning its Symbol or nil.
func (st *SymbolTable) LookupLocal(name string) *Symbol {
	top := st.scopes[len(st.scopes)-1]
	return top.names[name]
}

func (st *SymbolTable) Depth() int {
	return len(st.scopes)
}
