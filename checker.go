package sindarin

// Checker is the type-checking pass of spec.md §4.5: it walks every
// statement and expression in a Module, assigns expr_type on each
// Expr, and records one diagnostic per violation without aborting the
// walk — so a single run surfaces every error it can find, mirroring
// the teacher's error-aggregation style in query_errors.go.
type Checker struct {
	syms   *SymbolTable
	diags  *DiagnosticSink
	fileID FileID
	cfg    *Config

	funcs []funcCtx
}

type funcCtx struct {
	returnType *Type
	mod        FuncMod
}

func NewChecker(diags *DiagnosticSink, fileID FileID, cfg *Config) *Checker {
	c := &Checker{syms: NewSymbolTable(), diags: diags, fileID: fileID, cfg: cfg}
	c.syms.Add(&Symbol{Name: "print", Type: FunctionType(VoidType, nil), Kind: SymFunction, IsFunc: true})
	return c
}

func (c *Checker) errorAt(sp Span, code, format string, args ...any) {
	c.diags.Errorf(SourceLocation{FileID: c.fileID, Span: sp}, code, format, args...)
}

// CheckModule hoists every top-level function signature first so
// forward references between top-level functions resolve regardless
// of declaration order, then checks every statement in sequence.
func (c *Checker) CheckModule(mod *Module) {
	for _, stmt := range mod.Stmts {
		if fn, ok := stmt.(*FunctionStmt); ok {
			c.declareFunction(fn)
		}
	}
	for _, stmt := range mod.Stmts {
		switch stmt.(type) {
		case *FunctionStmt, *ImportStmt:
		default:
			c.errorAt(stmt.Span(), "type-error", "top-level statements may only be a function or import declaration")
			continue
		}
		c.checkStmt(stmt)
	}
}

func (c *Checker) declareFunction(fn *FunctionStmt) {
	params := make([]*Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Type
	}
	sym := &Symbol{
		Name: fn.Name, Type: FunctionType(fn.ReturnType, params),
		Kind: SymFunction, FuncMod: fn.Mod, IsFunc: true, FuncDecl: fn,
	}
	if err := c.syms.Add(sym); err != nil {
		c.errorAt(fn.Span(), "type-error", "%s", err.Error())
	}
}

func (c *Checker) checkStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *ExprStmt:
		c.checkExpr(s.Expr)
	case *VarDeclStmt:
		c.checkVarDecl(s)
	case *FunctionStmt:
		c.checkFunctionBody(s)
	case *ReturnStmt:
		c.checkReturn(s)
	case *IfStmt:
		c.checkIf(s)
	case *WhileStmt:
		c.checkWhile(s)
	case *ForStmt:
		c.checkFor(s)
	case *ForEachStmt:
		c.checkForEach(s)
	case *BlockStmt:
		c.syms.Push()
		for _, inner := range s.Stmts {
			c.checkStmt(inner)
		}
		c.syms.Pop()
	case *ImportStmt, *BreakStmt, *ContinueStmt:
		// Import splicing happens before checking (importer.go); break/
		// continue carry no type information to verify here (spec.md §9
		// Open Questions — no documented closure-boundary interaction).
	}
}

func (c *Checker) checkVarDecl(s *VarDeclStmt) {
	lam, isLam := s.Init.(*LambdaExpr)
	inferRet := isLam && lam.IsExprBody && lam.ReturnType == nil
	initType := c.checkExpr(s.Init)
	declared := s.Declared
	if inferRet && declared != nil && declared.Kind == TypeFunction && declared.Return != nil &&
		declared.Return.Kind == TypeVoid && initType.Kind == TypeFunction {
		// An un-annotated expression-bodied lambda stored under a
		// declared `fn(...): void` type takes its void return from that
		// context; the body's value is discarded.
		lam.ReturnType = VoidType
		initType = FunctionType(VoidType, initType.Params)
	}
	if declared == nil {
		declared = initType
	} else if initType.Kind != TypeNil && !assignableTo(declared, initType) {
		c.errorAt(s.Init.Span(), "type-error",
			"cannot assign %s to `%s` of declared type %s", initType, s.Name, declared)
	}
	if err := c.syms.Add(&Symbol{Name: s.Name, Type: declared, Kind: SymVariable}); err != nil {
		c.errorAt(s.Span(), "type-error", "%s", err.Error())
	}
}

// checkFunctionBody checks a FunctionStmt encountered as a statement.
// Its signature was already hoisted by declareFunction, so this only
// verifies the body and the private-lambda-style capability rule that
// also binds ordinary `private` functions.
func (c *Checker) checkFunctionBody(fn *FunctionStmt) {
	c.syms.Push()
	for _, p := range fn.Params {
		c.validateParamQual(p)
		c.syms.Add(&Symbol{Name: p.Name, Type: p.Type, Kind: SymParameter, Qual: p.Qual})
	}
	c.funcs = append(c.funcs, funcCtx{returnType: fn.ReturnType, mod: fn.Mod})

	if fn.IsExprBody {
		bodyType := c.checkExpr(fn.ExprBody)
		if fn.ReturnType != nil && bodyType.Kind != TypeNil && !assignableTo(fn.ReturnType, bodyType) {
			c.errorAt(fn.ExprBody.Span(), "type-error",
				"function `%s` body type %s does not match declared return type %s", fn.Name, bodyType, fn.ReturnType)
		}
	} else {
		for _, stmt := range fn.Body {
			c.checkStmt(stmt)
		}
	}

	if fn.Mod == FuncModPrivate && fn.ReturnType != nil &&
		fn.ReturnType.Kind != TypeVoid && !fn.ReturnType.IsPrimitive() {
		c.errorAt(fn.Span(), "capability-error",
			"private function `%s` may only return a primitive type, got %s", fn.Name, fn.ReturnType)
	}

	c.funcs = c.funcs[:len(c.funcs)-1]
	c.syms.Pop()
}

func (c *Checker) validateParamQual(p *Param) {
	switch p.Qual {
	case MemAsRef:
		if !p.Type.IsPrimitive() {
			c.errorAt(p.NameTok.Span, "capability-error",
				"`as ref` is only legal on a primitive parameter type, got %s", p.Type)
		}
	case MemAsVal:
		if !p.Type.IsReference() {
			c.errorAt(p.NameTok.Span, "capability-error",
				"`as val` is only legal on a reference parameter type, got %s", p.Type)
		}
	}
}

func (c *Checker) checkReturn(s *ReturnStmt) {
	if len(c.funcs) == 0 {
		c.errorAt(s.Span(), "type-error", "`return` outside of a function")
		return
	}
	ctx := c.funcs[len(c.funcs)-1]
	if s.Value == nil {
		if ctx.returnType != nil && ctx.returnType.Kind != TypeVoid {
			c.errorAt(s.Span(), "type-error", "missing return value, expected %s", ctx.returnType)
		}
		return
	}
	vt := c.checkExpr(s.Value)
	if ctx.returnType != nil && vt.Kind != TypeNil && !assignableTo(ctx.returnType, vt) {
		c.errorAt(s.Value.Span(), "type-error", "returned %s, expected %s", vt, ctx.returnType)
	}
}

// isTruthy reports whether t is acceptable as a boolean/condition
// value: spec.md §4.5 "and/or ... accept any scalar", which this
// checker also applies to `if`/`while` conditions.
func isTruthy(t *Type) bool {
	return t.Kind == TypeBool || t.IsNumeric()
}

func (c *Checker) checkIf(s *IfStmt) {
	condType := c.checkExpr(s.Cond)
	if !isTruthy(condType) {
		c.errorAt(s.Cond.Span(), "type-error", "if condition must be a scalar, got %s", condType)
	}
	c.syms.Push()
	for _, stmt := range s.Then {
		c.checkStmt(stmt)
	}
	c.syms.Pop()
	if s.Else != nil {
		c.syms.Push()
		for _, stmt := range s.Else {
			c.checkStmt(stmt)
		}
		c.syms.Pop()
	}
}

func (c *Checker) checkWhile(s *WhileStmt) {
	condType := c.checkExpr(s.Cond)
	if !isTruthy(condType) {
		c.errorAt(s.Cond.Span(), "type-error", "while condition must be a scalar, got %s", condType)
	}
	c.syms.Push()
	for _, stmt := range s.Body {
		c.checkStmt(stmt)
	}
	c.syms.Pop()
}

func (c *Checker) checkFor(s *ForStmt) {
	c.syms.Push()
	if s.Init != nil {
		c.checkStmt(s.Init)
	}
	if s.Cond != nil {
		condType := c.checkExpr(s.Cond)
		if !isTruthy(condType) {
			c.errorAt(s.Cond.Span(), "type-error", "for condition must be a scalar, got %s", condType)
		}
	}
	if s.Incr != nil {
		c.checkStmt(s.Incr)
	}
	for _, stmt := range s.Body {
		c.checkStmt(stmt)
	}
	c.syms.Pop()
}

func (c *Checker) checkForEach(s *ForEachStmt) {
	iterType := c.checkExpr(s.Iterable)
	elem := AnyType
	if iterType.Kind == TypeArray {
		elem = iterType.Elem
	} else if iterType.Kind != TypeNil {
		c.errorAt(s.Iterable.Span(), "type-error", "for-each requires an array or range, got %s", iterType)
	}
	c.syms.Push()
	c.syms.Add(&Symbol{Name: s.VarName, Type: elem, Kind: SymVariable})
	for _, stmt := range s.Body {
		c.checkStmt(stmt)
	}
	c.syms.Pop()
}

// checkExpr assigns expr_type to e and returns it. On any violation it
// emits a diagnostic, assigns NilType (spec.md §4.5's "nil-type"
// failure sentinel) and keeps walking.
func (c *Checker) checkExpr(e Expr) *Type {
	t := c.checkExprKind(e)
	if t == nil {
		t = NilType
	}
	e.SetExprType(t)
	return t
}

func (c *Checker) checkExprKind(e Expr) *Type {
	switch ex := e.(type) {
	case *LiteralExpr:
		if ex.Typ != nil {
			return ex.Typ
		}
		return Primitive(ex.Kind)
	case *VariableExpr:
		sym := c.syms.Lookup(ex.Name)
		if sym == nil {
			c.errorAt(ex.Span(), "type-error", "unbound identifier `%s`", ex.Name)
			return NilType
		}
		return sym.Type
	case *AssignExpr:
		return c.checkAssign(ex)
	case *IndexAssignExpr:
		return c.checkIndexAssign(ex)
	case *UnaryExpr:
		return c.checkUnary(ex)
	case *BinaryExpr:
		return c.checkBinary(ex)
	case *CallExpr:
		return c.checkCall(ex)
	case *StaticCallExpr:
		return c.checkStaticCall(ex)
	case *MemberExpr:
		return c.checkMember(ex)
	case *ArrayExpr:
		return c.checkArrayLiteral(ex)
	case *ArrayAccessExpr:
		return c.checkArrayAccess(ex)
	case *ArraySliceExpr:
		return c.checkArraySlice(ex)
	case *RangeExpr:
		return c.checkRange(ex)
	case *SpreadExpr:
		inner := c.checkExpr(ex.Value)
		if inner.Kind != TypeArray {
			c.errorAt(ex.Span(), "type-error", "`...` spread requires an array, got %s", inner)
			return NilType
		}
		return inner
	case *IncrementExpr:
		return c.checkIncrDecr(ex.Target, ex.Span())
	case *DecrementExpr:
		return c.checkIncrDecr(ex.Target, ex.Span())
	case *InterpolatedExpr:
		for _, part := range ex.Parts {
			if !part.Literal {
				c.checkExpr(part.Value)
			}
		}
		return StringType
	case *LambdaExpr:
		return c.checkLambda(ex)
	case *SizedArrayAllocExpr:
		return c.checkSizedArrayAlloc(ex)
	case *ThreadSpawnExpr:
		if call, ok := ex.Call.(*CallExpr); ok {
			c.checkExpr(call)
		} else {
			c.errorAt(ex.Span(), "type-error", "`spawn` requires a call expression")
		}
		return AnyType
	case *ThreadSyncExpr:
		c.checkExpr(ex.Handle)
		return AnyType
	case *SyncListExpr:
		for _, h := range ex.Handles {
			c.checkExpr(h)
		}
		return ArrayType(AnyType)
	case *AsValExpr:
		inner := c.checkExpr(ex.Value)
		if !inner.IsReference() {
			c.errorAt(ex.Span(), "capability-error", "`val` copy requires a reference type, got %s", inner)
		}
		return inner
	case *TypeofExpr:
		c.checkExpr(ex.Value)
		return IntType
	case *IsExpr:
		c.checkExpr(ex.Value)
		return BoolType
	case *AsTypeExpr:
		c.checkExpr(ex.Value)
		return ex.Target
	}
	return NilType
}

func (c *Checker) checkAssign(ex *AssignExpr) *Type {
	sym := c.syms.Lookup(ex.Name)
	if sym == nil {
		c.errorAt(ex.Span(), "type-error", "assignment to unbound identifier `%s`", ex.Name)
		c.checkExpr(ex.Value)
		return NilType
	}
	valType := c.checkExpr(ex.Value)
	if ex.Op != TokAssign {
		if !sym.Type.IsNumeric() {
			c.errorAt(ex.Span(), "type-error", "compound assignment requires a numeric target, got %s", sym.Type)
		}
	} else if valType.Kind != TypeNil && !assignableTo(sym.Type, valType) {
		c.errorAt(ex.Value.Span(), "type-error", "cannot assign %s to `%s` of type %s", valType, ex.Name, sym.Type)
	}
	return sym.Type
}

func (c *Checker) checkIndexAssign(ex *IndexAssignExpr) *Type {
	arrType := c.checkExpr(ex.Target)
	idxType := c.checkExpr(ex.Index)
	if !idxType.IsNumeric() {
		c.errorAt(ex.Index.Span(), "type-error", "array index must be numeric, got %s", idxType)
	}
	valType := c.checkExpr(ex.Value)
	if arrType.Kind != TypeArray {
		c.errorAt(ex.Target.Span(), "type-error", "cannot index into non-array type %s", arrType)
		return NilType
	}
	if valType.Kind != TypeNil && !assignableTo(arrType.Elem, valType) {
		c.errorAt(ex.Value.Span(), "type-error", "cannot assign %s into %s", valType, arrType)
	}
	return arrType.Elem
}

func (c *Checker) checkUnary(ex *UnaryExpr) *Type {
	operand := c.checkExpr(ex.Operand)
	switch ex.Op {
	case TokMinus:
		if !operand.IsNumeric() {
			c.errorAt(ex.Span(), "type-error", "unary `-` requires a numeric operand, got %s", operand)
			return NilType
		}
		return operand
	case TokBang:
		if operand.Kind != TypeBool {
			c.errorAt(ex.Span(), "type-error", "unary `!` requires a bool operand, got %s", operand)
			return NilType
		}
		return BoolType
	}
	return NilType
}

// arithResultType implements spec.md §4.5's promotion rule: int
// promotes to long, and integer combined with double promotes to
// double.
func arithResultType(l, r *Type) (*Type, bool) {
	if !l.IsNumeric() || !r.IsNumeric() {
		return nil, false
	}
	if l.Kind == TypeDouble || r.Kind == TypeDouble || l.Kind == TypeFloat || r.Kind == TypeFloat {
		return DoubleType, true
	}
	return LongType, true
}

func (c *Checker) checkBinary(ex *BinaryExpr) *Type {
	lt := c.checkExpr(ex.Left)
	rt := c.checkExpr(ex.Right)

	switch ex.Op {
	case TokAnd, TokOr:
		if !isTruthy(lt) || !isTruthy(rt) {
			c.errorAt(ex.Span(), "type-error", "`%s` requires scalar operands", ex.Op)
		}
		return LongType
	case TokEqEq, TokNotEq:
		if lt.Kind != TypeNil && rt.Kind != TypeNil && !lt.Equal(rt) {
			c.errorAt(ex.Span(), "type-error", "cannot compare %s with %s", lt, rt)
		}
		return BoolType
	case TokLt, TokLtEq, TokGt, TokGtEq:
		if !lt.IsNumeric() || !rt.IsNumeric() {
			c.errorAt(ex.Span(), "type-error", "comparison requires numeric operands, got %s and %s", lt, rt)
		}
		return BoolType
	case TokPlus:
		if lt.Kind == TypeString && rt.Kind == TypeString {
			return StringType
		}
		if lt.Kind == TypeString || rt.Kind == TypeString {
			c.errorAt(ex.Span(), "type-error", "`+` string concatenation requires both operands to be strings")
			return NilType
		}
		rtype, ok := arithResultType(lt, rt)
		if !ok {
			c.errorAt(ex.Span(), "type-error", "`+` requires numeric or string operands, got %s and %s", lt, rt)
			return NilType
		}
		return rtype
	case TokMinus, TokStar, TokSlash, TokPercent:
		rtype, ok := arithResultType(lt, rt)
		if !ok {
			c.errorAt(ex.Span(), "type-error", "`%s` requires numeric operands, got %s and %s", ex.Op, lt, rt)
			return NilType
		}
		return rtype
	}
	return NilType
}

func (c *Checker) checkCall(ex *CallExpr) *Type {
	if member, ok := ex.Callee.(*MemberExpr); ok {
		return c.checkMethodCall(ex, member)
	}
	if v, ok := ex.Callee.(*VariableExpr); ok && v.Name == "print" {
		for _, arg := range ex.Args {
			c.checkExpr(arg)
		}
		return VoidType
	}
	calleeType := c.checkExpr(ex.Callee)
	if calleeType.Kind != TypeFunction {
		c.errorAt(ex.Span(), "type-error", "cannot call a value of type %s", calleeType)
		for _, arg := range ex.Args {
			c.checkExpr(arg)
		}
		return NilType
	}
	if len(ex.Args) != len(calleeType.Params) {
		c.errorAt(ex.Span(), "type-error", "expected %d argument(s), got %d", len(calleeType.Params), len(ex.Args))
	}
	for i, arg := range ex.Args {
		argType := c.checkExpr(arg)
		if i < len(calleeType.Params) && argType.Kind != TypeNil && !assignableTo(calleeType.Params[i], argType) {
			c.errorAt(arg.Span(), "type-error", "argument %d: expected %s, got %s", i+1, calleeType.Params[i], argType)
		}
	}
	return calleeType.Return
}

func (c *Checker) checkMethodCall(ex *CallExpr, member *MemberExpr) *Type {
	recvType := c.checkExpr(member.Receiver)
	var sig methodSig
	found := false
	switch recvType.Kind {
	case TypeArray:
		if mk, exists := arrayMethods[member.Name]; exists {
			sig, found = mk(recvType.Elem), true
		} else if recvType.Elem != nil && recvType.Elem.Kind == TypeByte {
			sig, found = byteArrayMethods[member.Name]
		}
	case TypeString:
		sig, found = stringMethods[member.Name]
	}
	if !found {
		c.errorAt(member.Span(), "type-error", "unknown method `%s` on %s", member.Name, recvType)
		for _, arg := range ex.Args {
			c.checkExpr(arg)
		}
		member.SetExprType(NilType)
		return NilType
	}
	if len(ex.Args) != len(sig.Params) {
		c.errorAt(ex.Span(), "type-error", "`%s` expects %d argument(s), got %d", member.Name, len(sig.Params), len(ex.Args))
	}
	for i, arg := range ex.Args {
		at := c.checkExpr(arg)
		if i < len(sig.Params) && at.Kind != TypeNil && !assignableTo(sig.Params[i], at) {
			c.errorAt(arg.Span(), "type-error", "argument %d to `%s`: expected %s, got %s", i+1, member.Name, sig.Params[i], at)
		}
	}
	member.SetExprType(sig.Result)
	return sig.Result
}

func (c *Checker) checkStaticCall(ex *StaticCallExpr) *Type {
	sig, ok := lookupStaticMethod(ex.TypeName, ex.Method)
	if !ok {
		c.errorAt(ex.Span(), "type-error", "unknown static method `%s.%s`", ex.TypeName, ex.Method)
		for _, arg := range ex.Args {
			c.checkExpr(arg)
		}
		return NilType
	}
	if len(ex.Args) != len(sig.Params) {
		c.errorAt(ex.Span(), "type-error", "`%s.%s` expects %d argument(s), got %d", ex.TypeName, ex.Method, len(sig.Params), len(ex.Args))
	}
	for i, arg := range ex.Args {
		at := c.checkExpr(arg)
		if i < len(sig.Params) && at.Kind != TypeNil && !assignableTo(sig.Params[i], at) {
			c.errorAt(arg.Span(), "type-error", "argument %d to `%s.%s`: expected %s, got %s", i+1, ex.TypeName, ex.Method, sig.Params[i], at)
		}
	}
	return sig.Result
}

func (c *Checker) checkMember(ex *MemberExpr) *Type {
	recvType := c.checkExpr(ex.Receiver)
	t, ok := memberType(recvType, ex.Name)
	if !ok {
		c.errorAt(ex.Span(), "type-error", "unknown property `%s` on %s", ex.Name, recvType)
		return NilType
	}
	return t
}

func (c *Checker) checkArrayLiteral(ex *ArrayExpr) *Type {
	var elem *Type
	for _, el := range ex.Elements {
		var t *Type
		switch v := el.(type) {
		case *SpreadExpr:
			inner := c.checkExpr(v.Value)
			if inner.Kind != TypeArray {
				c.errorAt(v.Span(), "type-error", "`...` spread requires an array, got %s", inner)
				continue
			}
			t = inner.Elem
		case *RangeExpr:
			c.checkExpr(v)
			t = LongType
		default:
			t = c.checkExpr(el)
		}
		if t == nil || t.Kind == TypeNil {
			continue
		}
		if elem == nil {
			elem = t
		} else if !elem.Equal(t) {
			c.errorAt(el.Span(), "type-error", "array literal elements must share one type: have %s and %s", elem, t)
		}
	}
	if elem == nil {
		elem = AnyType
	}
	return ArrayType(elem)
}

func (c *Checker) checkArrayAccess(ex *ArrayAccessExpr) *Type {
	arrType := c.checkExpr(ex.Array)
	idxType := c.checkExpr(ex.Index)
	if !idxType.IsNumeric() {
		c.errorAt(ex.Index.Span(), "type-error", "array index must be numeric, got %s", idxType)
	}
	if arrType.Kind != TypeArray {
		c.errorAt(ex.Array.Span(), "type-error", "cannot index into non-array type %s", arrType)
		return NilType
	}
	return arrType.Elem
}

func (c *Checker) checkArraySlice(ex *ArraySliceExpr) *Type {
	arrType := c.checkExpr(ex.Array)
	for _, bound := range []Expr{ex.Start, ex.End, ex.Step} {
		if bound == nil {
			continue
		}
		bt := c.checkExpr(bound)
		if !bt.IsNumeric() {
			c.errorAt(bound.Span(), "type-error", "slice bound must be numeric, got %s", bt)
		}
	}
	if arrType.Kind != TypeArray {
		c.errorAt(ex.Array.Span(), "type-error", "cannot slice non-array type %s", arrType)
		return NilType
	}
	return arrType
}

func (c *Checker) checkRange(ex *RangeExpr) *Type {
	startType := c.checkExpr(ex.Start)
	endType := c.checkExpr(ex.End)
	if !startType.IsNumeric() || !endType.IsNumeric() {
		c.errorAt(ex.Span(), "type-error", "range bounds must be numeric, got %s and %s", startType, endType)
	}
	return ArrayType(LongType)
}

func (c *Checker) checkIncrDecr(target Expr, sp Span) *Type {
	t := c.checkExpr(target)
	if !t.IsNumeric() {
		c.errorAt(sp, "type-error", "`++`/`--` requires a numeric target, got %s", t)
		return NilType
	}
	return t
}

// checkLambda checks a LambdaExpr and assigns it a function Type. Free
// variables referenced in the body resolve through the ordinary nested
// scope the symbol table already provides; which of those resolved
// names are actual closures-over-outer-scope captures is decided later
// by the code generator's capture-analysis pass (codegen_closures.go),
// not here (spec.md §8 invariant on capture analysis).
func (c *Checker) checkLambda(lam *LambdaExpr) *Type {
	c.syms.Push()
	for _, p := range lam.Params {
		c.validateParamQual(p)
		c.syms.Add(&Symbol{Name: p.Name, Type: p.Type, Kind: SymParameter, Qual: p.Qual})
	}

	if lam.IsExprBody {
		bodyType := c.checkExpr(lam.Body)
		if lam.ReturnType == nil {
			lam.ReturnType = bodyType
		} else if bodyType.Kind != TypeNil && !assignableTo(lam.ReturnType, bodyType) {
			c.errorAt(lam.Body.Span(), "type-error",
				"lambda body type %s does not match declared return type %s", bodyType, lam.ReturnType)
		}
	} else {
		retType := lam.ReturnType
		if retType == nil {
			retType = VoidType
		}
		c.funcs = append(c.funcs, funcCtx{returnType: retType, mod: lam.Mod})
		for _, stmt := range lam.BodyStmts {
			c.checkStmt(stmt)
		}
		c.funcs = c.funcs[:len(c.funcs)-1]
		lam.ReturnType = retType
	}

	if lam.Mod == FuncModPrivate && lam.ReturnType.Kind != TypeVoid && !lam.ReturnType.IsPrimitive() {
		c.errorAt(lam.Span(), "capability-error",
			"private lambda may only return a primitive type, got %s", lam.ReturnType)
	}

	params := make([]*Type, len(lam.Params))
	for i, p := range lam.Params {
		params[i] = p.Type
	}
	c.syms.Pop()
	return FunctionType(lam.ReturnType, params)
}

func (c *Checker) checkSizedArrayAlloc(ex *SizedArrayAllocExpr) *Type {
	sizeType := c.checkExpr(ex.Size)
	if !sizeType.IsNumeric() {
		c.errorAt(ex.Size.Span(), "type-error", "array allocation size must be numeric, got %s", sizeType)
	}
	if ex.Default != nil {
		defType := c.checkExpr(ex.Default)
		if defType.Kind != TypeNil && !assignableTo(ex.Elem, defType) {
			c.errorAt(ex.Default.Span(), "type-error", "default value type %s does not match element type %s", defType, ex.Elem)
		}
	}
	return ArrayType(ex.Elem)
}
