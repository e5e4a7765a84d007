package sindarin

import "fmt"

// CodeGen lowers a checked Module into one C translation unit
// (spec.md §4.6). State mirrors the spec's CodeGen contract closely:
// the arena-variable-in-scope, the lambda-lifting accumulators and the
// label/temp counters that guarantee deterministic output are all
// carried here rather than as package globals (spec.md §9's call to
// thread context explicitly instead of relying on process state).
type CodeGen struct {
	cfg   *Config
	diags *DiagnosticSink

	body *outputWriter

	labelCount  int
	lambdaCount int
	tempCount   int

	currentFunction   string
	currentReturnType *Type
	currentArenaVar   string

	enclosingLambdas []*LambdaExpr

	lambdaForwardDecls *outputWriter
	lambdaDefinitions  *outputWriter

	capturedPrimitives map[string]bool

	syms *SymbolTable

	externs     map[string]string // name -> C declaration, in first-use order via externOrder
	externOrder []string
}

func NewCodeGen(cfg *Config, diags *DiagnosticSink) *CodeGen {
	return &CodeGen{
		cfg:                cfg,
		diags:              diags,
		body:               newOutputWriter("    "),
		lambdaForwardDecls: newOutputWriter("    "),
		lambdaDefinitions:  newOutputWriter("    "),
		capturedPrimitives: map[string]bool{},
		syms:               NewSymbolTable(),
		externs:            map[string]string{},
	}
}

// declareExtern records that decl is required in the emitted header,
// skipping duplicates; externOrder keeps emission deterministic
// (spec.md §8 "two identical source inputs yield byte-identical
// generated output").
func (cg *CodeGen) declareExtern(name, decl string) {
	if _, ok := cg.externs[name]; ok {
		return
	}
	cg.externs[name] = decl
	cg.externOrder = append(cg.externOrder, name)
}

func (cg *CodeGen) nextLabel(prefix string) string {
	cg.labelCount++
	return fmt.Sprintf("%s_%d", prefix, cg.labelCount)
}

func (cg *CodeGen) nextTemp() string {
	cg.tempCount++
	return fmt.Sprintf("__t%d__", cg.tempCount)
}

func (cg *CodeGen) nextLambdaID() int {
	cg.lambdaCount++
	return cg.lambdaCount
}

// Generate emits the complete C translation unit for mod. The caller
// (api.go) must have already type-checked mod with zero diagnostics —
// Generate assumes every Expr carries a non-nil expr_type.
func (cg *CodeGen) Generate(mod *Module) string {
	cg.hoistTopLevelFunctions(mod.Stmts)

	var userFuncs []string
	var hasMain bool
	for _, stmt := range mod.Stmts {
		fn, ok := stmt.(*FunctionStmt)
		if !ok {
			continue
		}
		if fn.Name == "main" {
			hasMain = true
		}
		userFuncs = append(userFuncs, cg.emitFunction(fn))
	}

	out := newOutputWriter("    ")
	out.writel("#include <stdlib.h>")
	out.writel("#include <string.h>")
	out.writel("#include <stdio.h>")
	out.writel("#include <stdbool.h>")
	out.writel("")
	for _, name := range cg.externOrder {
		out.writel(cg.externs[name])
	}
	out.writel("")
	out.write(cg.lambdaForwardDecls.String())
	out.writel("")
	out.write(cg.lambdaDefinitions.String())
	out.writel("")
	for _, fn := range userFuncs {
		out.write(fn)
		out.writel("")
	}
	if !hasMain {
		out.writel("int main(void) {")
		out.writel("    return 0;")
		out.writel("}")
	}
	return out.String()
}

func (cg *CodeGen) hoistTopLevelFunctions(stmts []Stmt) {
	for _, stmt := range stmts {
		fn, ok := stmt.(*FunctionStmt)
		if !ok {
			continue
		}
		params := make([]*Type, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Type
		}
		cg.syms.Add(&Symbol{Name: fn.Name, Type: FunctionType(fn.ReturnType, params), Kind: SymFunction, FuncMod: fn.Mod, IsFunc: true, FuncDecl: fn})
	}
}

// cType maps a Sindarin Type to its C spelling (spec.md §4.6.1).
func cType(t *Type) string {
	switch t.Kind {
	case TypeInt, TypeInt32, TypeUint, TypeUint32, TypeLong:
		return "long"
	case TypeFloat, TypeDouble:
		return "double"
	case TypeChar:
		return "char"
	case TypeByte:
		return "unsigned char"
	case TypeBool:
		return "bool"
	case TypeString:
		return "char *"
	case TypeVoid:
		return "void"
	case TypeArray:
		return "rt_array_t *"
	case TypeFunction:
		return "__Closure__ *"
	default:
		return "void *" // opaque built-ins: text_file, time, process, sockets, ...
	}
}

// suffix names the runtime-function element-type suffix used for
// array/arith monomorphisation (spec.md §4.6.1 "suffix-monomorphised"
// runtime calls).
func suffix(t *Type) string {
	switch t.Kind {
	case TypeLong, TypeInt, TypeInt32, TypeUint, TypeUint32:
		return "long"
	case TypeDouble, TypeFloat:
		return "double"
	case TypeChar:
		return "char"
	case TypeBool:
		return "bool"
	case TypeByte:
		return "byte"
	case TypeString:
		return "string"
	default:
		return "ptr"
	}
}

func (cg *CodeGen) emitFunction(fn *FunctionStmt) string {
	out := newOutputWriter("    ")
	prevFunc, prevRet, prevArena := cg.currentFunction, cg.currentReturnType, cg.currentArenaVar
	cg.currentFunction = fn.Name
	cg.currentReturnType = fn.ReturnType
	cg.syms.Push()

	params := make([]string, 0, len(fn.Params)+1)
	if fn.Mod == FuncModShared {
		cg.currentArenaVar = "__arena__"
		params = append(params, "Arena *__arena__")
	} else {
		cg.currentArenaVar = "__arena_1__"
	}
	for _, p := range fn.Params {
		ctyp := cType(p.Type)
		if p.Qual == MemAsRef {
			ctyp = ctyp + " *"
		}
		params = append(params, fmt.Sprintf("%s %s", ctyp, p.Name))
		cg.syms.Add(&Symbol{Name: p.Name, Type: p.Type, Kind: SymParameter, Qual: p.Qual})
	}
	if len(params) == 0 {
		params = append(params, "void")
	}

	out.writel(fmt.Sprintf("%s %s(%s) {", cType(fn.ReturnType), sanitizeCIdent(fn.Name), joinParams(params)))
	out.indent()
	if fn.Mod != FuncModShared {
		cg.declareExtern("rt_arena_create", "extern Arena *rt_arena_create(void);")
		cg.declareExtern("rt_arena_destroy", "extern void rt_arena_destroy(Arena *);")
		out.writeil(fmt.Sprintf("Arena *%s = rt_arena_create();", cg.currentArenaVar))
	}

	if fn.IsExprBody {
		val := cg.emitExpr(out, fn.ExprBody)
		if fn.ReturnType.Kind != TypeVoid {
			if fn.Mod != FuncModShared {
				out.writeil(fmt.Sprintf("%s __rv__ = %s;", cType(fn.ReturnType), val))
				cg.declareExtern("rt_arena_destroy", "extern void rt_arena_destroy(Arena *);")
				out.writeil(fmt.Sprintf("rt_arena_destroy(%s);", cg.currentArenaVar))
				out.writeil("return __rv__;")
			} else {
				out.writeil(fmt.Sprintf("return %s;", val))
			}
		} else {
			if val != "" {
				out.writeil(val + ";")
			}
			if fn.Mod != FuncModShared {
				out.writeil(fmt.Sprintf("rt_arena_destroy(%s);", cg.currentArenaVar))
			}
		}
	} else {
		label := fmt.Sprintf("%s_return", sanitizeCIdent(fn.Name))
		if fn.ReturnType.Kind != TypeVoid {
			out.writeil(fmt.Sprintf("%s _return_value;", cType(fn.ReturnType)))
		}
		for _, stmt := range fn.Body {
			cg.emitStmt(out, stmt, label)
		}
		out.writeil(label + ":")
		if fn.Mod != FuncModShared {
			out.writeil(fmt.Sprintf("rt_arena_destroy(%s);", cg.currentArenaVar))
		}
		if fn.ReturnType.Kind != TypeVoid {
			out.writeil("return _return_value;")
		}
	}
	out.unindent()
	out.writel("}")

	cg.syms.Pop()
	cg.currentFunction, cg.currentReturnType, cg.currentArenaVar = prevFunc, prevRet, prevArena
	return out.String()
}

func joinParams(params []string) string {
	s := ""
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s
}

// sanitizeCIdent maps a Sindarin identifier to a safe C identifier,
// grounded on genc.go's sanitizeCIdent — Sindarin's identifier grammar
// is already C-compatible, so this only guards against reserved words
// a future surface extension might introduce.
func sanitizeCIdent(name string) string {
	switch name {
	case "register", "restrict", "inline":
		return "sindarin_" + name
	default:
		return name
	}
}
