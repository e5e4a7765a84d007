package sindarin

// This file holds the declarative dispatch tables the type checker
// consults for built-in method/property/static-call resolution
// (spec.md §4.5), mirroring the teacher's (type, method)-keyed rule
// table style in grammar_builtin_handler.go, generalized from PEG
// grammar operators to Sindarin's runtime surface.

// methodSig describes one built-in instance-method signature: the
// exact parameter types the call site must match and the result type
// the checker assigns to the call expression.
type methodSig struct {
	Params []*Type
	Result *Type
}

// arrayMethods is keyed purely by method name: every array method's
// shape is the same regardless of element type (codegen picks the
// `_<suffix>` runtime function from the element type separately), per
// spec.md §4.6.1's array method-dispatch list.
var arrayMethods = map[string]func(elem *Type) methodSig{
	"push":    func(elem *Type) methodSig { return methodSig{Params: []*Type{elem}, Result: ArrayType(elem)} },
	"pop":     func(elem *Type) methodSig { return methodSig{Result: elem} },
	"clear":   func(elem *Type) methodSig { return methodSig{Result: ArrayType(elem)} },
	"concat":  func(elem *Type) methodSig { return methodSig{Params: []*Type{ArrayType(elem)}, Result: ArrayType(elem)} },
	"indexOf": func(elem *Type) methodSig { return methodSig{Params: []*Type{elem}, Result: IntType} },
	"contains": func(elem *Type) methodSig {
		return methodSig{Params: []*Type{elem}, Result: BoolType}
	},
	"clone":   func(elem *Type) methodSig { return methodSig{Result: ArrayType(elem)} },
	"join":    func(elem *Type) methodSig { return methodSig{Params: []*Type{StringType}, Result: StringType} },
	"reverse": func(elem *Type) methodSig { return methodSig{Result: ArrayType(elem)} },
	"insert": func(elem *Type) methodSig {
		return methodSig{Params: []*Type{IntType, elem}, Result: ArrayType(elem)}
	},
	"remove": func(elem *Type) methodSig { return methodSig{Params: []*Type{IntType}, Result: ArrayType(elem)} },
}

// byteArrayMethods are additionally available when the array's element
// type is `byte` (spec.md §4.6.1 "Byte arrays additionally expose...").
var byteArrayMethods = map[string]methodSig{
	"toString":       {Result: StringType},
	"toStringLatin1": {Result: StringType},
	"toHex":          {Result: StringType},
	"toBase64":       {Result: StringType},
}

// stringMethods are keyed by method name; every string method has a
// fixed signature independent of any type parameter (spec.md §4.6.1).
var stringMethods = map[string]methodSig{
	"substring":       {Params: []*Type{IntType, IntType}, Result: StringType},
	"indexOf":         {Params: []*Type{StringType}, Result: IntType},
	"split":           {Params: []*Type{StringType}, Result: ArrayType(StringType)},
	"trim":            {Result: StringType},
	"toUpper":         {Result: StringType},
	"toLower":         {Result: StringType},
	"startsWith":      {Params: []*Type{StringType}, Result: BoolType},
	"endsWith":        {Params: []*Type{StringType}, Result: BoolType},
	"contains":        {Params: []*Type{StringType}, Result: BoolType},
	"replace":         {Params: []*Type{StringType, StringType}, Result: StringType},
	"charAt":          {Params: []*Type{IntType}, Result: CharType},
	"toBytes":         {Result: ArrayType(ByteType)},
	"splitWhitespace": {Result: ArrayType(StringType)},
	"splitLines":      {Result: ArrayType(StringType)},
	"isBlank":         {Result: BoolType},
	"append":          {Params: []*Type{StringType}, Result: StringType},
}

// memberType resolves a property read `receiver.name` where receiver
// is not a call (spec.md §4.5 "Member access"). `length` is a shared
// property of both strings and arrays; the rest are opaque-built-in
// properties keyed by (kind, name).
func memberType(recv *Type, name string) (*Type, bool) {
	if name == "length" && (recv.Kind == TypeArray || recv.Kind == TypeString) {
		return IntType, true
	}
	if props, ok := builtinMembers[recv.Kind]; ok {
		if t, ok := props[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// builtinMembers is the (type_kind, member_name) table spec.md §4.5
// names explicitly: text_file.path/name/size, binary_file.*,
// process.exit_code/stdout/stderr, tcp_listener.port,
// tcp_stream.remote_address, udp_socket.port/last_sender.
var builtinMembers = map[TypeKind]map[string]*Type{
	TypeTextFile: {
		"path": StringType,
		"name": StringType,
		"size": LongType,
	},
	TypeBinaryFile: {
		"path": StringType,
		"name": StringType,
		"size": LongType,
	},
	TypeProcess: {
		"exit_code": IntType,
		"stdout":    StringType,
		"stderr":    StringType,
	},
	TypeTCPListener: {
		"port": IntType,
	},
	TypeTCPStream: {
		"remote_address": StringType,
	},
	TypeUDPSocket: {
		"port":        IntType,
		"last_sender": StringType,
	},
}

// staticMethodSig is a static-call signature: `TypeName.method(args)`.
type staticMethodSig struct {
	Params []*Type
	Result *Type
}

// builtinStaticMethods is the single declarative table backing every
// `Type.method(...)` call (spec.md §4.5 Static call, §12 of
// SPEC_FULL.md), keyed by (type name, method name) exactly as the
// parser already recognizes the receiver syntactically
// (asStaticCallBase in parser.go).
var builtinStaticMethods = map[string]map[string]staticMethodSig{
	"TextFile": {
		"open":   {Params: []*Type{StringType, StringType}, Result: Primitive(TypeTextFile)},
		"create": {Params: []*Type{StringType}, Result: Primitive(TypeTextFile)},
		"exists": {Params: []*Type{StringType}, Result: BoolType},
	},
	"BinaryFile": {
		"open":   {Params: []*Type{StringType, StringType}, Result: Primitive(TypeBinaryFile)},
		"create": {Params: []*Type{StringType}, Result: Primitive(TypeBinaryFile)},
	},
	"Time": {
		"now": {Result: Primitive(TypeTime)},
	},
	"Date": {
		"today": {Result: Primitive(TypeDate)},
	},
	"Path": {
		"join":     {Params: []*Type{StringType, StringType}, Result: StringType},
		"basename": {Params: []*Type{StringType}, Result: StringType},
		"dirname":  {Params: []*Type{StringType}, Result: StringType},
		"extname":  {Params: []*Type{StringType}, Result: StringType},
	},
	"Directory": {
		"list":   {Params: []*Type{StringType}, Result: ArrayType(StringType)},
		"create": {Params: []*Type{StringType}, Result: BoolType},
		"exists": {Params: []*Type{StringType}, Result: BoolType},
	},
	"Process": {
		"run": {Params: []*Type{StringType}, Result: Primitive(TypeProcess)},
	},
	"TcpListener": {
		"bind": {Params: []*Type{IntType}, Result: Primitive(TypeTCPListener)},
	},
	"TcpStream": {
		"connect": {Params: []*Type{StringType, IntType}, Result: Primitive(TypeTCPStream)},
	},
	"UdpSocket": {
		"bind": {Params: []*Type{IntType}, Result: Primitive(TypeUDPSocket)},
	},
	"Random": {
		"next":       {Result: LongType},
		"nextDouble": {Result: DoubleType},
	},
	"Uuid": {
		"generate": {Result: StringType},
	},
	"Array": {
		"alloc": {Params: []*Type{IntType}, Result: ArrayType(AnyType)},
	},
}

func lookupStaticMethod(typeName, method string) (staticMethodSig, bool) {
	methods, ok := builtinStaticMethods[typeName]
	if !ok {
		return staticMethodSig{}, false
	}
	sig, ok := methods[method]
	return sig, ok
}
