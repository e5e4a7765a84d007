package sindarin

import "fmt"

// emitArrayLiteral lowers an array literal, including spread and range
// elements, to the rt_array_create_<suffix> / rt_array_concat_<suffix>
// chain spec.md §4.6.1 describes for scenario 6
// (`[1..3, 5, ...[6,7]]`).
func (cg *CodeGen) emitArrayLiteral(out *outputWriter, e *ArrayExpr) string {
	elem := AnyType
	if t := e.ExprType(); t != nil && t.Elem != nil {
		elem = t.Elem
	}
	suf := suffix(elem)

	var plain []string
	var pieces []string
	flushPlain := func() {
		if len(plain) == 0 {
			return
		}
		cg.declareExtern("rt_array_create_"+suf, fmt.Sprintf("extern rt_array_t *rt_array_create_%s(Arena *, long, ...);", suf))
		args := fmt.Sprintf("%s, %dL", cg.currentArenaVar, len(plain))
		for _, p := range plain {
			args += ", " + p
		}
		pieces = append(pieces, fmt.Sprintf("rt_array_create_%s(%s)", suf, args))
		plain = nil
	}

	for _, el := range e.Elements {
		switch v := el.(type) {
		case *SpreadExpr:
			flushPlain()
			pieces = append(pieces, cg.emitExpr(out, v.Value))
		case *RangeExpr:
			flushPlain()
			pieces = append(pieces, cg.emitExpr(out, v))
		default:
			plain = append(plain, cg.emitExpr(out, el))
		}
	}
	flushPlain()

	if len(pieces) == 0 {
		cg.declareExtern("rt_array_create_"+suf, fmt.Sprintf("extern rt_array_t *rt_array_create_%s(Arena *, long, ...);", suf))
		return fmt.Sprintf("rt_array_create_%s(%s, 0L)", suf, cg.currentArenaVar)
	}
	result := pieces[0]
	if len(pieces) > 1 {
		cg.declareExtern("rt_array_concat_"+suf, fmt.Sprintf("extern rt_array_t *rt_array_concat_%s(Arena *, rt_array_t *, rt_array_t *);", suf))
		for _, p := range pieces[1:] {
			result = fmt.Sprintf("rt_array_concat_%s(%s, %s, %s)", suf, cg.currentArenaVar, result, p)
		}
	}
	return result
}

// emitArrayAccess applies spec.md §4.6.1's index-access optimization:
// a non-negative literal index compiles straight through, a negative
// literal index folds the `length + i` adjustment at compile time, and
// anything else gets the runtime bounds/negative-index helper.
func (cg *CodeGen) emitArrayAccess(out *outputWriter, e *ArrayAccessExpr) string {
	arr := cg.emitExpr(out, e.Array)
	elem := AnyType
	if t := e.Array.ExprType(); t != nil && t.Elem != nil {
		elem = t.Elem
	}
	suf := suffix(elem)

	if lit, negative, ok := literalIntIndex(e.Index); ok {
		cg.declareExtern("rt_array_get_"+suf, fmt.Sprintf("extern %s rt_array_get_%s(rt_array_t *, long);", cType(elem), suf))
		if !negative {
			return fmt.Sprintf("rt_array_get_%s(%s, %dL)", suf, arr, lit)
		}
		cg.declareExtern("rt_array_length", "extern long rt_array_length(rt_array_t *);")
		return fmt.Sprintf("rt_array_get_%s(%s, rt_array_length(%s) + (%d))", suf, arr, arr, lit)
	}

	idx := cg.emitExpr(out, e.Index)
	cg.declareExtern("rt_array_get_checked_"+suf, fmt.Sprintf("extern %s rt_array_get_checked_%s(rt_array_t *, long);", cType(elem), suf))
	return fmt.Sprintf("rt_array_get_checked_%s(%s, %s)", suf, arr, idx)
}

// literalIntIndex recognizes an index expression that is a compile-time
// integer constant — a bare literal or a literal directly under unary
// `-` (the parser never folds `-1` into a negative LiteralExpr) — so
// emitArrayAccess's literal-index optimization also covers negative
// literal indices written as `-N`.
func literalIntIndex(e Expr) (value int64, negative bool, ok bool) {
	if u, isUnary := e.(*UnaryExpr); isUnary && u.Op == TokMinus {
		if lit, isLit := u.Operand.(*LiteralExpr); isLit && (lit.Kind == TypeLong || lit.Kind == TypeInt) {
			return -lit.IntVal, true, true
		}
		return 0, false, false
	}
	if lit, isLit := e.(*LiteralExpr); isLit && (lit.Kind == TypeLong || lit.Kind == TypeInt) {
		return lit.IntVal, lit.IntVal < 0, true
	}
	return 0, false, false
}

func (cg *CodeGen) emitIndexAssign(out *outputWriter, e *IndexAssignExpr) string {
	arr := cg.emitExpr(out, e.Target)
	elem := AnyType
	if t := e.Target.ExprType(); t != nil && t.Elem != nil {
		elem = t.Elem
	}
	suf := suffix(elem)
	idx := cg.emitExpr(out, e.Index)
	val := cg.emitExpr(out, e.Value)
	cg.declareExtern("rt_array_set_"+suf, fmt.Sprintf("extern void rt_array_set_%s(rt_array_t *, long, %s);", suf, cType(elem)))
	out.writeil(fmt.Sprintf("rt_array_set_%s(%s, %s, %s);", suf, arr, idx, val))
	return fmt.Sprintf("rt_array_get_%s(%s, %s)", suf, arr, idx)
}

func (cg *CodeGen) emitArraySlice(out *outputWriter, e *ArraySliceExpr) string {
	arr := cg.emitExpr(out, e.Array)
	elem := AnyType
	if t := e.Array.ExprType(); t != nil && t.Elem != nil {
		elem = t.Elem
	}
	suf := suffix(elem)
	start, end, step := "0L", "-1L", "1L"
	if e.Start != nil {
		start = cg.emitExpr(out, e.Start)
	}
	if e.End != nil {
		end = cg.emitExpr(out, e.End)
	}
	if e.Step != nil {
		step = cg.emitExpr(out, e.Step)
	}
	cg.declareExtern("rt_array_slice_"+suf, fmt.Sprintf("extern rt_array_t *rt_array_slice_%s(Arena *, rt_array_t *, long, long, long);", suf))
	return fmt.Sprintf("rt_array_slice_%s(%s, %s, %s, %s, %s)", suf, cg.currentArenaVar, arr, start, end, step)
}

func (cg *CodeGen) emitSizedArrayAlloc(out *outputWriter, e *SizedArrayAllocExpr) string {
	suf := suffix(e.Elem)
	size := cg.emitExpr(out, e.Size)
	def := "0"
	if e.Default != nil {
		def = cg.emitExpr(out, e.Default)
	}
	cg.declareExtern("rt_array_alloc_"+suf, fmt.Sprintf("extern rt_array_t *rt_array_alloc_%s(Arena *, long, %s);", suf, cType(e.Elem)))
	return fmt.Sprintf("rt_array_alloc_%s(%s, %s, %s)", suf, cg.currentArenaVar, size, def)
}

// emitArrayMethodCall dispatches an array instance method (push, pop,
// concat, ...) to its monomorphised runtime function, reassigning the
// receiver variable in place when the method mutates (spec.md §4.6.1
// "in-place mutators reassign the variable").
func (cg *CodeGen) emitArrayMethodCall(out *outputWriter, recv Expr, method string, args []Expr) (string, bool) {
	recvType := recv.ExprType()
	if recvType == nil || recvType.Kind != TypeArray {
		return "", false
	}
	elem := recvType.Elem
	if elem == nil {
		elem = AnyType
	}
	suf := suffix(elem)

	if elem.Kind == TypeByte {
		if _, ok := byteArrayMethods[method]; ok {
			recvVal := cg.emitExpr(out, recv)
			fn := "rt_bytes_" + method
			cg.declareExtern(fn, fmt.Sprintf("extern char *%s(Arena *, rt_array_t *);", fn))
			return fmt.Sprintf("%s(%s, %s)", fn, cg.currentArenaVar, recvVal), true
		}
	}

	if _, ok := arrayMethods[method]; !ok {
		return "", false
	}
	recvVal := cg.emitExpr(out, recv)
	argVals := make([]string, len(args))
	for i, a := range args {
		argVals[i] = cg.emitExpr(out, a)
	}
	fn := fmt.Sprintf("rt_array_%s_%s", method, suf)
	sig := fmt.Sprintf("extern %s %s(Arena *, rt_array_t *", cType(arrayMethods[method](elem).Result), fn)
	for range argVals {
		sig += ", " + cType(elem)
	}
	sig += ");"
	cg.declareExtern(fn, sig)

	callArgs := cg.currentArenaVar + ", " + recvVal
	for _, v := range argVals {
		callArgs += ", " + v
	}
	call := fmt.Sprintf("%s(%s)", fn, callArgs)

	switch method {
	case "push", "clear", "concat", "reverse", "insert", "remove":
		if v, ok := recv.(*VariableExpr); ok {
			out.writeil(fmt.Sprintf("%s = %s;", v.Name, call))
			return v.Name, true
		}
	}
	return call, true
}
