package sindarin

import "fmt"

// emitInterpolated lowers a `"text {expr:spec} more"` literal into a
// left-associative rt_str_concat chain over rt_to_string_<kind> /
// rt_format_<kind> calls, per spec.md §4.6.1's interpolation rule.
// Each literal part and each embedded expression is appended to the
// chain in source order; no temporaries are introduced.
func (cg *CodeGen) emitInterpolated(out *outputWriter, e *InterpolatedExpr) string {
	var result string
	first := true
	appendPiece := func(piece string) {
		if first {
			result = piece
			first = false
			return
		}
		cg.declareExtern("rt_str_concat", "extern char *rt_str_concat(Arena *, char *, char *);")
		result = fmt.Sprintf("rt_str_concat(%s, %s, %s)", cg.currentArenaVar, result, piece)
	}

	for _, part := range e.Parts {
		if part.Literal {
			if part.Text == "" {
				continue
			}
			appendPiece("\"" + cEscapeString(part.Text) + "\"")
			continue
		}
		val := cg.emitExpr(out, part.Value)
		t := part.Value.ExprType()
		suf := suffix(t)
		if part.Spec != "" {
			fn := "rt_format_" + suf
			cg.declareExtern(fn, fmt.Sprintf("extern char *%s(Arena *, %s, const char *);", fn, cType(t)))
			appendPiece(fmt.Sprintf("%s(%s, %s, \"%s\")", fn, cg.currentArenaVar, val, cEscapeString(part.Spec)))
			continue
		}
		if t != nil && t.Kind == TypeString {
			appendPiece(val)
			continue
		}
		fn := "rt_to_string_" + suf
		cg.declareExtern(fn, fmt.Sprintf("extern char *%s(Arena *, %s);", fn, cType(t)))
		appendPiece(fmt.Sprintf("%s(%s, %s)", fn, cg.currentArenaVar, val))
	}
	if first {
		return "\"\""
	}
	return result
}

// emitStringMethodCall dispatches a string instance method to its
// runtime function (spec.md §4.6.1), matching the stringMethods table
// the checker validated the call against.
func (cg *CodeGen) emitStringMethodCall(out *outputWriter, recv Expr, method string, args []Expr) (string, bool) {
	recvType := recv.ExprType()
	if recvType == nil || recvType.Kind != TypeString {
		return "", false
	}
	sig, ok := stringMethods[method]
	if !ok {
		return "", false
	}
	recvVal := cg.emitExpr(out, recv)
	argVals := make([]string, len(args))
	for i, a := range args {
		argVals[i] = cg.emitExpr(out, a)
	}
	fn := "rt_str_" + method
	decl := fmt.Sprintf("extern %s %s(Arena *, char *", cType(sig.Result), fn)
	for _, p := range sig.Params {
		decl += ", " + cType(p)
	}
	decl += ");"
	cg.declareExtern(fn, decl)

	callArgs := cg.currentArenaVar + ", " + recvVal
	for _, v := range argVals {
		callArgs += ", " + v
	}
	return fmt.Sprintf("%s(%s)", fn, callArgs), true
}
