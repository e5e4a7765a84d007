package sindarin

import (
	"fmt"
	"sort"
)

// emitLambdaRef lifts lam to a top-level function on first encounter
// (liftLambda), then emits the expression that allocates and
// populates its closure value at this use site (spec.md §4.6.2).
func (cg *CodeGen) emitLambdaRef(out *outputWriter, lam *LambdaExpr) string {
	if lam.LambdaID == 0 {
		cg.liftLambda(lam)
	}
	cg.declareExtern("rt_closure_alloc", "extern void *rt_closure_alloc(Arena *, unsigned long);")

	temp := cg.nextTemp()
	if len(lam.CapturedNames) == 0 {
		cg.declareExtern("__Closure__", "typedef struct { void *fn; Arena *arena; } __Closure__;")
		out.writeil(fmt.Sprintf("__Closure__ *%s = (__Closure__ *)rt_closure_alloc(%s, sizeof(__Closure__));", temp, cg.currentArenaVar))
		out.writeil(fmt.Sprintf("%s->fn = (void *)__lambda_%d__;", temp, lam.LambdaID))
		out.writeil(fmt.Sprintf("%s->arena = %s;", temp, cg.currentArenaVar))
		return temp
	}

	structName := fmt.Sprintf("__closure_%d__", lam.LambdaID)
	out.writeil(fmt.Sprintf("%s *%s = (%s *)rt_closure_alloc(%s, sizeof(%s));", structName, temp, structName, cg.currentArenaVar, structName))
	out.writeil(fmt.Sprintf("%s->fn = (void *)__lambda_%d__;", temp, lam.LambdaID))
	out.writeil(fmt.Sprintf("%s->arena = %s;", temp, cg.currentArenaVar))
	for _, name := range lam.CapturedNames {
		out.writeil(fmt.Sprintf("%s->%s = %s;", temp, name, cg.lvalue(name)))
	}
	return temp
}

// liftLambda assigns lam a stable id, runs capture analysis against
// the symbol table as it stands at the lambda's definition site, and
// emits the lifted function's forward declaration and definition into
// the module-wide lambdaForwardDecls/lambdaDefinitions accumulators
// (spec.md §4.6.2 "lambda lifting to top-level __lambda_N__
// functions").
func (cg *CodeGen) liftLambda(lam *LambdaExpr) {
	lam.LambdaID = cg.nextLambdaID()
	free := freeVariables(lam, cg.syms)
	lam.CapturedNames = free

	captureType := map[string]*Type{}
	for _, name := range free {
		if sym := cg.syms.Lookup(name); sym != nil {
			captureType[name] = sym.Type
			if sym.Type != nil && sym.Type.IsPrimitive() {
				cg.capturedPrimitives[name] = true
			}
		}
	}

	retType := lam.ReturnType
	if retType == nil {
		retType = lam.ExprType()
	}
	if retType == nil {
		retType = AnyType
	}

	closureParamType := "__Closure__ *"
	if len(free) > 0 {
		structName := fmt.Sprintf("__closure_%d__", lam.LambdaID)
		cg.lambdaForwardDecls.writel("typedef struct {")
		cg.lambdaForwardDecls.indent()
		cg.lambdaForwardDecls.writeil("void *fn;")
		cg.lambdaForwardDecls.writeil("Arena *arena;")
		for _, name := range free {
			ct := "void *"
			if t := captureType[name]; t != nil {
				ct = cType(t)
				if t.IsPrimitive() {
					ct += " *"
				}
			}
			cg.lambdaForwardDecls.writeil(fmt.Sprintf("%s %s;", ct, name))
		}
		cg.lambdaForwardDecls.unindent()
		cg.lambdaForwardDecls.writel(fmt.Sprintf("} %s;", structName))
		closureParamType = structName + " *"
	} else {
		cg.declareExtern("__Closure__", "typedef struct { void *fn; Arena *arena; } __Closure__;")
	}

	prevFunc, prevRet, prevArena := cg.currentFunction, cg.currentReturnType, cg.currentArenaVar
	cg.enclosingLambdas = append(cg.enclosingLambdas, lam)
	cg.currentFunction = fmt.Sprintf("__lambda_%d__", lam.LambdaID)
	cg.currentReturnType = retType
	cg.syms.Push()

	if lam.Mod == FuncModPrivate {
		cg.currentArenaVar = fmt.Sprintf("__lambda_arena_%d__", lam.LambdaID)
	} else {
		cg.currentArenaVar = "__closure__->arena"
	}

	for _, name := range free {
		cg.syms.Add(&Symbol{Name: name, Type: captureType[name], Kind: SymVariable, ViaClosure: true, Boxed: cg.capturedPrimitives[name]})
	}
	for _, p := range lam.Params {
		cg.syms.Add(&Symbol{Name: p.Name, Type: p.Type, Kind: SymParameter, Qual: p.Qual})
	}

	body := newOutputWriter("    ")
	params := []string{fmt.Sprintf("%s __closure__", closureParamType)}
	for _, p := range lam.Params {
		ct := cType(p.Type)
		if p.Qual == MemAsRef {
			ct += " *"
		}
		params = append(params, fmt.Sprintf("%s %s", ct, p.Name))
	}

	body.writel(fmt.Sprintf("%s __lambda_%d__(%s) {", cType(retType), lam.LambdaID, joinParams(params)))
	body.indent()
	if lam.Mod == FuncModPrivate {
		cg.declareExtern("rt_arena_create", "extern Arena *rt_arena_create(void);")
		body.writeil(fmt.Sprintf("Arena *%s = rt_arena_create();", cg.currentArenaVar))
	}

	if lam.IsExprBody {
		val := cg.emitExpr(body, lam.Body)
		if retType.Kind != TypeVoid {
			if lam.Mod == FuncModPrivate {
				body.writeil(fmt.Sprintf("%s __rv__ = %s;", cType(retType), val))
				cg.declareExtern("rt_arena_destroy", "extern void rt_arena_destroy(Arena *);")
				body.writeil(fmt.Sprintf("rt_arena_destroy(%s);", cg.currentArenaVar))
				body.writeil("return __rv__;")
			} else {
				body.writeil(fmt.Sprintf("return %s;", val))
			}
		} else {
			if val != "" {
				body.writeil(val + ";")
			}
			if lam.Mod == FuncModPrivate {
				cg.declareExtern("rt_arena_destroy", "extern void rt_arena_destroy(Arena *);")
				body.writeil(fmt.Sprintf("rt_arena_destroy(%s);", cg.currentArenaVar))
			}
		}
	} else {
		label := fmt.Sprintf("__lambda_%d___return", lam.LambdaID)
		if retType.Kind != TypeVoid {
			body.writeil(fmt.Sprintf("%s _return_value;", cType(retType)))
		}
		for _, st := range lam.BodyStmts {
			cg.emitStmt(body, st, label)
		}
		body.writeil(label + ":")
		if lam.Mod == FuncModPrivate {
			cg.declareExtern("rt_arena_destroy", "extern void rt_arena_destroy(Arena *);")
			body.writeil(fmt.Sprintf("rt_arena_destroy(%s);", cg.currentArenaVar))
		}
		if retType.Kind != TypeVoid {
			body.writeil("return _return_value;")
		}
	}
	body.unindent()
	body.writel("}")

	cg.lambdaDefinitions.write(body.String())
	cg.lambdaDefinitions.writel("")

	cg.syms.Pop()
	cg.enclosingLambdas = cg.enclosingLambdas[:len(cg.enclosingLambdas)-1]
	cg.currentFunction, cg.currentReturnType, cg.currentArenaVar = prevFunc, prevRet, prevArena
}

// freeVariables collects the names lam's body references that are
// bound neither by lam's own parameters nor by a declaration inside
// its body, and that resolve in the enclosing scope to a variable or
// parameter (not a global function — those are called directly, never
// captured). This is the capture set the lifted function receives
// through its `__closure__` parameter (spec.md §4.6.2).
func freeVariables(lam *LambdaExpr, syms *SymbolTable) []string {
	bound := map[string]bool{}
	for _, p := range lam.Params {
		bound[p.Name] = true
	}
	referenced := map[string]bool{}

	var walkExpr func(Expr)
	var walkStmt func(Stmt)

	walkExpr = func(e Expr) {
		if e == nil {
			return
		}
		switch v := e.(type) {
		case *VariableExpr:
			referenced[v.Name] = true
		case *AssignExpr:
			referenced[v.Name] = true
			walkExpr(v.Value)
		case *IndexAssignExpr:
			walkExpr(v.Target)
			walkExpr(v.Index)
			walkExpr(v.Value)
		case *UnaryExpr:
			walkExpr(v.Operand)
		case *BinaryExpr:
			walkExpr(v.Left)
			walkExpr(v.Right)
		case *CallExpr:
			walkExpr(v.Callee)
			for _, a := range v.Args {
				walkExpr(a)
			}
		case *StaticCallExpr:
			for _, a := range v.Args {
				walkExpr(a)
			}
		case *MemberExpr:
			walkExpr(v.Receiver)
		case *ArrayExpr:
			for _, el := range v.Elements {
				walkExpr(el)
			}
		case *ArrayAccessExpr:
			walkExpr(v.Array)
			walkExpr(v.Index)
		case *ArraySliceExpr:
			walkExpr(v.Array)
			walkExpr(v.Start)
			walkExpr(v.End)
			walkExpr(v.Step)
		case *RangeExpr:
			walkExpr(v.Start)
			walkExpr(v.End)
		case *SpreadExpr:
			walkExpr(v.Value)
		case *IncrementExpr:
			walkExpr(v.Target)
		case *DecrementExpr:
			walkExpr(v.Target)
		case *InterpolatedExpr:
			for _, p := range v.Parts {
				if !p.Literal {
					walkExpr(p.Value)
				}
			}
		case *LambdaExpr:
			inner := map[string]bool{}
			for name := range bound {
				inner[name] = true
			}
			for _, p := range v.Params {
				inner[p.Name] = true
			}
			save := bound
			bound = inner
			if v.IsExprBody {
				walkExpr(v.Body)
			} else {
				for _, st := range v.BodyStmts {
					walkStmt(st)
				}
			}
			bound = save
		case *SizedArrayAllocExpr:
			walkExpr(v.Size)
			walkExpr(v.Default)
		case *ThreadSpawnExpr:
			walkExpr(v.Call)
		case *ThreadSyncExpr:
			walkExpr(v.Handle)
		case *SyncListExpr:
			for _, h := range v.Handles {
				walkExpr(h)
			}
		case *AsValExpr:
			walkExpr(v.Value)
		case *TypeofExpr:
			walkExpr(v.Value)
		case *IsExpr:
			walkExpr(v.Value)
		case *AsTypeExpr:
			walkExpr(v.Value)
		}
	}

	walkStmt = func(s Stmt) {
		switch v := s.(type) {
		case *ExprStmt:
			walkExpr(v.Expr)
		case *VarDeclStmt:
			walkExpr(v.Init)
			bound[v.Name] = true
		case *ReturnStmt:
			walkExpr(v.Value)
		case *IfStmt:
			walkExpr(v.Cond)
			for _, st := range v.Then {
				walkStmt(st)
			}
			for _, st := range v.Else {
				walkStmt(st)
			}
		case *WhileStmt:
			walkExpr(v.Cond)
			for _, st := range v.Body {
				walkStmt(st)
			}
		case *ForStmt:
			if v.Init != nil {
				walkStmt(v.Init)
			}
			walkExpr(v.Cond)
			if v.Incr != nil {
				walkStmt(v.Incr)
			}
			for _, st := range v.Body {
				walkStmt(st)
			}
		case *ForEachStmt:
			walkExpr(v.Iterable)
			bound[v.VarName] = true
			for _, st := range v.Body {
				walkStmt(st)
			}
		case *BlockStmt:
			for _, st := range v.Stmts {
				walkStmt(st)
			}
		}
	}

	if lam.IsExprBody {
		walkExpr(lam.Body)
	} else {
		for _, st := range lam.BodyStmts {
			walkStmt(st)
		}
	}

	var free []string
	for name := range referenced {
		if bound[name] {
			continue
		}
		sym := syms.Lookup(name)
		if sym == nil || sym.Kind == SymFunction {
			continue
		}
		free = append(free, name)
	}
	sort.Strings(free)
	return free
}
