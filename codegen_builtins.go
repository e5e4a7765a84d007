package sindarin

import (
	"fmt"
	"strings"
)

// emitCall lowers a CallExpr. Three shapes are distinguished exactly
// as the checker validated them in checkCall/checkMethodCall: a method
// call (Callee is a MemberExpr over an array/string receiver), a direct
// call to a top-level function symbol (arena threaded in only when the
// callee is `shared`), or a call through a closure value (spec.md
// §4.6.2 "closure-call lowering").
func (cg *CodeGen) emitCall(out *outputWriter, e *CallExpr) string {
	if member, ok := e.Callee.(*MemberExpr); ok {
		if call, ok := cg.emitArrayMethodCall(out, member.Receiver, member.Name, e.Args); ok {
			return call
		}
		if call, ok := cg.emitStringMethodCall(out, member.Receiver, member.Name, e.Args); ok {
			return call
		}
	}

	if v, ok := e.Callee.(*VariableExpr); ok && v.Name == "print" {
		return cg.emitPrintCall(out, e.Args)
	}

	if v, ok := e.Callee.(*VariableExpr); ok {
		if sym := cg.syms.Lookup(v.Name); sym != nil && sym.Kind == SymFunction {
			args := make([]string, 0, len(e.Args)+1)
			if sym.FuncMod == FuncModShared {
				args = append(args, cg.currentArenaVar)
			}
			for _, a := range e.Args {
				args = append(args, cg.emitExpr(out, a))
			}
			return fmt.Sprintf("%s(%s)", sanitizeCIdent(v.Name), joinParams(args))
		}
	}

	// Closure value: callee is an expression of function type.
	closure := cg.emitExpr(out, e.Callee)
	retType := AnyType
	if t := e.ExprType(); t != nil {
		retType = t
	}
	sig := cType(retType) + " (*)(void *"
	args := closure
	for _, a := range e.Args {
		val := cg.emitExpr(out, a)
		sig += ", " + cType(a.ExprType())
		args += ", " + val
	}
	sig += ")"
	return fmt.Sprintf("((%s)((%s)->fn))(%s)", sig, closure, args)
}

// emitPrintCall lowers `print(args...)` to one rt_print_<suffix> call
// per argument, dispatched on each argument's own type the way spec.md
// §3/§8's `rt_print_*` runtime ABI group is suffixed (spec.md:144,
// spec.md:188). Multiple arguments chain left-to-right as a C comma
// expression so `print` still reads as a single call expression
// wherever it's used as a statement.
func (cg *CodeGen) emitPrintCall(out *outputWriter, args []Expr) string {
	if len(args) == 0 {
		return "((void)0)"
	}
	parts := make([]string, len(args))
	for i, a := range args {
		val := cg.emitExpr(out, a)
		t := a.ExprType()
		suf := suffix(t)
		fn := "rt_print_" + suf
		cg.declareExtern(fn, fmt.Sprintf("extern void %s(%s);", fn, cType(t)))
		parts[i] = fmt.Sprintf("%s(%s)", fn, val)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// emitMember lowers a bare property read `receiver.name` (spec.md
// §4.5 Member access): `length` reads the runtime length field/call,
// everything else reads a struct field off the opaque built-in handle.
func (cg *CodeGen) emitMember(out *outputWriter, e *MemberExpr) string {
	recv := cg.emitExpr(out, e.Receiver)
	recvType := e.Receiver.ExprType()
	if e.Name == "length" {
		if recvType != nil && recvType.Kind == TypeArray {
			cg.declareExtern("rt_array_length", "extern long rt_array_length(rt_array_t *);")
			return fmt.Sprintf("rt_array_length(%s)", recv)
		}
		cg.declareExtern("rt_str_length", "extern long rt_str_length(char *);")
		return fmt.Sprintf("rt_str_length(%s)", recv)
	}
	return fmt.Sprintf("(%s)->%s", recv, e.Name)
}

// emitStaticCall lowers `Type.method(args)` to the named runtime
// function the builtinStaticMethods table binds it to, threading the
// current arena as the first argument whenever the result is
// heap-borne (spec.md §4.5 Static call, §12).
func (cg *CodeGen) emitStaticCall(out *outputWriter, e *StaticCallExpr) string {
	sig, _ := lookupStaticMethod(e.TypeName, e.Method)
	fnName := fmt.Sprintf("rt_%s_%s", lowerFirst(e.TypeName), e.Method)

	args := make([]string, 0, len(e.Args)+1)
	needsArena := sig.Result != nil && sig.Result.IsReference()
	if needsArena {
		args = append(args, cg.currentArenaVar)
	}
	for _, a := range e.Args {
		args = append(args, cg.emitExpr(out, a))
	}

	decl := fmt.Sprintf("extern %s %s(", cType(sig.Result), fnName)
	if needsArena {
		decl += "Arena *"
		if len(sig.Params) > 0 {
			decl += ", "
		}
	}
	for i, p := range sig.Params {
		if i > 0 {
			decl += ", "
		}
		decl += cType(p)
	}
	decl += ");"
	cg.declareExtern(fnName, decl)

	return fmt.Sprintf("%s(%s)", fnName, joinParams(args))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

// emitTypeof lowers `typeof expr` to a compile-time tag constant when
// the static type is known, or to a runtime lookup (rt_any_get_tag)
// when the expression is statically typed `any` (spec.md §12: "typeof
// produces a runtime tag for any, otherwise a compile-time tag
// constant").
func (cg *CodeGen) emitTypeof(out *outputWriter, value Expr, val string) string {
	t := value.ExprType()
	if t != nil && t.Kind == TypeAny {
		cg.declareExtern("rt_any_get_tag", "extern int rt_any_get_tag(void *);")
		return fmt.Sprintf("rt_any_get_tag(%s)", val)
	}
	suf := suffix(t)
	cg.declareExtern("RT_TYPE_"+suf, fmt.Sprintf("extern const int RT_TYPE_%s;", suf))
	return fmt.Sprintf("RT_TYPE_%s", suf)
}

// emitIsExpr compares against the target type. A statically known
// source type resolves at compile time; an `any`-typed source defers
// to the same runtime tag rt_any_get_tag exposes for typeof, matching
// it against the target's tag (and, for array targets, the element
// tag too — spec.md §12: "for array types it also requires the
// element tag to match").
func (cg *CodeGen) emitIsExpr(out *outputWriter, e *IsExpr) string {
	val := cg.emitExpr(out, e.Value)
	srcType := e.Value.ExprType()
	if srcType == nil || srcType.Kind != TypeAny {
		if srcType != nil && srcType.Equal(e.Target) {
			return "true"
		}
		return "false"
	}
	cg.declareExtern("rt_any_get_tag", "extern int rt_any_get_tag(void *);")
	suf := suffix(e.Target)
	cg.declareExtern("RT_TYPE_"+suf, fmt.Sprintf("extern const int RT_TYPE_%s;", suf))
	check := fmt.Sprintf("(rt_any_get_tag(%s) == RT_TYPE_%s)", val, suf)
	if e.Target.Kind == TypeArray && e.Target.Elem != nil {
		cg.declareExtern("rt_any_array_elem_tag", "extern int rt_any_array_elem_tag(void *);")
		elemSuf := suffix(e.Target.Elem)
		cg.declareExtern("RT_TYPE_"+elemSuf, fmt.Sprintf("extern const int RT_TYPE_%s;", elemSuf))
		check = fmt.Sprintf("(%s && rt_any_array_elem_tag(%s) == RT_TYPE_%s)", check, val, elemSuf)
	}
	return check
}

// emitAsTypeExpr lowers a checked cast. `any[]` to a concretely typed
// array dispatches to the per-suffix runtime unboxer (spec.md §12,
// SPEC_FULL.md §12: "on any[] -> T[] it dispatches to a runtime
// unboxer"); every other cast is a plain C type cast.
func (cg *CodeGen) emitAsTypeExpr(out *outputWriter, e *AsTypeExpr) string {
	val := cg.emitExpr(out, e.Value)
	srcType := e.Value.ExprType()
	if srcType != nil && srcType.Kind == TypeArray && srcType.Elem != nil && srcType.Elem.Kind == TypeAny &&
		e.Target.Kind == TypeArray && e.Target.Elem != nil {
		suf := suffix(e.Target.Elem)
		fn := "rt_array_from_any_" + suf
		cg.declareExtern(fn, fmt.Sprintf("extern rt_array_t *%s(Arena *, rt_array_t *);", fn))
		return fmt.Sprintf("%s(%s, %s)", fn, cg.currentArenaVar, val)
	}
	return fmt.Sprintf("((%s)(%s))", cType(e.Target), val)
}

// emitThreadSpawnCall lowers `spawn f(args)` to a detached runtime
// thread handle (spec.md §9: the compiler only preserves source
// order, the runtime owns scheduling).
func (cg *CodeGen) emitThreadSpawnCall(out *outputWriter, call Expr) string {
	ce, ok := call.(*CallExpr)
	if !ok {
		val := cg.emitExpr(out, call)
		cg.declareExtern("rt_thread_spawn_value", "extern void *rt_thread_spawn_value(void *);")
		return fmt.Sprintf("rt_thread_spawn_value(%s)", val)
	}
	v, ok := ce.Callee.(*VariableExpr)
	if !ok {
		val := cg.emitExpr(out, call)
		return val
	}
	args := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		args[i] = cg.emitExpr(out, a)
	}
	cg.declareExtern("rt_thread_spawn", "extern void *rt_thread_spawn(void *(*)(void *), void *);")
	return fmt.Sprintf("rt_thread_spawn((void *(*)(void *))%s, rt_pack_args(%s))", sanitizeCIdent(v.Name), joinParams(args))
}

func (cg *CodeGen) emitSyncList(out *outputWriter, e *SyncListExpr) string {
	handles := make([]string, len(e.Handles))
	for i, h := range e.Handles {
		handles[i] = cg.emitExpr(out, h)
	}
	cg.declareExtern("rt_array_create_ptr", "extern rt_array_t *rt_array_create_ptr(Arena *, long, ...);")
	cg.declareExtern("rt_thread_sync_all", "extern rt_array_t *rt_thread_sync_all(Arena *, rt_array_t *);")
	list := fmt.Sprintf("rt_array_create_ptr(%s, %dL", cg.currentArenaVar, len(handles))
	for _, h := range handles {
		list += ", " + h
	}
	list += ")"
	return fmt.Sprintf("rt_thread_sync_all(%s, %s)", cg.currentArenaVar, list)
}
