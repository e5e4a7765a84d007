package sindarin

import "fmt"

// emitStmt lowers one statement into out, threading returnLabel so a
// nested `return` can `goto` the function's single teardown point
// instead of destroying the arena from N different call sites
// (spec.md §4.6.3).
func (cg *CodeGen) emitStmt(out *outputWriter, stmt Stmt, returnLabel string) {
	switch s := stmt.(type) {
	case *ExprStmt:
		val := cg.emitExpr(out, s.Expr)
		if val != "" {
			out.writeil(val + ";")
		}

	case *VarDeclStmt:
		typ := s.Declared
		if typ == nil {
			typ = s.Init.ExprType()
		}
		val := cg.emitExpr(out, s.Init)
		ctyp := cType(typ)
		if cg.capturedPrimitives[s.Name] {
			out.writeil(fmt.Sprintf("%s *%s = rt_box_%s(%s);", ctyp, s.Name, suffix(typ), cg.currentArenaVar))
			out.writeil(fmt.Sprintf("*%s = %s;", s.Name, val))
		} else {
			out.writeil(fmt.Sprintf("%s %s = %s;", ctyp, s.Name, val))
		}
		cg.syms.Add(&Symbol{Name: s.Name, Type: typ, Kind: SymVariable})

	case *ReturnStmt:
		if s.Value != nil {
			val := cg.emitExpr(out, s.Value)
			out.writeil(fmt.Sprintf("_return_value = %s;", val))
		}
		out.writeil(fmt.Sprintf("goto %s;", returnLabel))

	case *IfStmt:
		cond := cg.emitExpr(out, s.Cond)
		out.writeil(fmt.Sprintf("if (%s) {", cond))
		out.indent()
		cg.syms.Push()
		for _, st := range s.Then {
			cg.emitStmt(out, st, returnLabel)
		}
		cg.syms.Pop()
		out.unindent()
		if s.Else != nil {
			out.writeil("} else {")
			out.indent()
			cg.syms.Push()
			for _, st := range s.Else {
				cg.emitStmt(out, st, returnLabel)
			}
			cg.syms.Pop()
			out.unindent()
		}
		out.writeil("}")

	case *WhileStmt:
		cond := cg.emitExpr(out, s.Cond)
		out.writeil(fmt.Sprintf("while (%s) {", cond))
		out.indent()
		cg.syms.Push()
		for _, st := range s.Body {
			cg.emitStmt(out, st, returnLabel)
		}
		cg.syms.Pop()
		out.unindent()
		out.writeil("}")

	case *ForStmt:
		out.writeil("{")
		out.indent()
		cg.syms.Push()
		initStr := ""
		if s.Init != nil {
			initStr = cg.emitInlineStmt(out, s.Init)
		}
		condStr := "true"
		if s.Cond != nil {
			condStr = cg.emitExpr(out, s.Cond)
		}
		incrStr := ""
		if s.Incr != nil {
			incrStr = cg.emitInlineStmt(out, s.Incr)
		}
		out.writeil(fmt.Sprintf("for (%s; %s; %s) {", initStr, condStr, incrStr))
		out.indent()
		for _, st := range s.Body {
			cg.emitStmt(out, st, returnLabel)
		}
		out.unindent()
		out.writeil("}")
		cg.syms.Pop()
		out.unindent()
		out.writeil("}")

	case *ForEachStmt:
		iterType := s.Iterable.ExprType()
		elem := AnyType
		if iterType != nil && iterType.Elem != nil {
			elem = iterType.Elem
		}
		arr := cg.emitExpr(out, s.Iterable)
		idx := cg.nextTemp()
		cg.declareExtern("rt_array_length", "extern long rt_array_length(rt_array_t *);")
		out.writeil(fmt.Sprintf("rt_array_t *__iter_%s__ = %s;", idx, arr))
		out.writeil(fmt.Sprintf("for (long %s = 0; %s < rt_array_length(__iter_%s__); %s++) {", idx, idx, idx, idx))
		out.indent()
		cg.declareExtern("rt_array_get_"+suffix(elem), fmt.Sprintf("extern %s rt_array_get_%s(rt_array_t *, long);", cType(elem), suffix(elem)))
		out.writeil(fmt.Sprintf("%s %s = rt_array_get_%s(__iter_%s__, %s);", cType(elem), s.VarName, suffix(elem), idx, idx))
		cg.syms.Push()
		cg.syms.Add(&Symbol{Name: s.VarName, Type: elem, Kind: SymVariable})
		for _, st := range s.Body {
			cg.emitStmt(out, st, returnLabel)
		}
		cg.syms.Pop()
		out.unindent()
		out.writeil("}")

	case *BlockStmt:
		cg.syms.Push()
		for _, st := range s.Stmts {
			cg.emitStmt(out, st, returnLabel)
		}
		cg.syms.Pop()

	case *BreakStmt:
		out.writeil("break;")

	case *ContinueStmt:
		out.writeil("continue;")

	case *FunctionStmt:
		// Nested function declarations are not emitted; only top-level
		// functions reach the output.

	case *ImportStmt:
		// fully resolved away by the importer before codegen runs.

	default:
		out.writeil(fmt.Sprintf("/* unreachable: unhandled statement %T */", stmt))
	}
}

// emitInlineStmt renders a statement usable as a C for-loop clause
// (no trailing newline/semicolon of its own management).
func (cg *CodeGen) emitInlineStmt(out *outputWriter, stmt Stmt) string {
	switch s := stmt.(type) {
	case *VarDeclStmt:
		typ := s.Declared
		if typ == nil {
			typ = s.Init.ExprType()
		}
		val := cg.emitExpr(out, s.Init)
		cg.syms.Add(&Symbol{Name: s.Name, Type: typ, Kind: SymVariable})
		return fmt.Sprintf("%s %s = %s", cType(typ), s.Name, val)
	case *ExprStmt:
		return cg.emitExpr(out, s.Expr)
	default:
		return ""
	}
}
