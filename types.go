package sindarin

import "fmt"

// TypeKind tags the structural shape of a Type. Equality between two
// Types is structural: same Kind, and (for composites) equal
// children — mirroring the teacher's AstNode.Equal convention in
// grammar_ast.go.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeLong
	TypeInt32
	TypeUint
	TypeUint32
	TypeFloat
	TypeDouble
	TypeBool
	TypeByte
	TypeChar
	TypeString
	TypeVoid
	TypeNil
	TypeAny

	TypeArray
	TypeFunction

	TypeTextFile
	TypeBinaryFile
	TypeTime
	TypeDate
	TypeProcess
	TypeTCPListener
	TypeTCPStream
	TypeUDPSocket
	TypeRandom
	TypeUUID
)

var primitiveNames = map[TypeKind]string{
	TypeInt:         "int",
	TypeLong:        "long",
	TypeInt32:       "int32",
	TypeUint:        "uint",
	TypeUint32:      "uint32",
	TypeFloat:       "float",
	TypeDouble:      "double",
	TypeBool:        "bool",
	TypeByte:        "byte",
	TypeChar:        "char",
	TypeString:      "string",
	TypeVoid:        "void",
	TypeNil:         "nil",
	TypeAny:         "any",
	TypeTextFile:    "text_file",
	TypeBinaryFile:  "binary_file",
	TypeTime:        "time",
	TypeDate:        "date",
	TypeProcess:     "process",
	TypeTCPListener: "tcp_listener",
	TypeTCPStream:   "tcp_stream",
	TypeUDPSocket:   "udp_socket",
	TypeRandom:      "random",
	TypeUUID:        "uuid",
}

// namedTypeKinds maps a source-level type name to its TypeKind, for
// both primitives and opaque built-ins. Built-in type names double as
// static-call receivers (spec.md §3, §4.5) without being lexer
// keywords — the parser/checker recognize them contextually here.
var namedTypeKinds = map[string]TypeKind{
	"int":          TypeInt,
	"long":         TypeLong,
	"int32":        TypeInt32,
	"uint":         TypeUint,
	"uint32":       TypeUint32,
	"float":        TypeFloat,
	"double":       TypeDouble,
	"bool":         TypeBool,
	"byte":         TypeByte,
	"char":         TypeChar,
	"string":       TypeString,
	"void":         TypeVoid,
	"any":          TypeAny,
	"TextFile":     TypeTextFile,
	"BinaryFile":   TypeBinaryFile,
	"Time":         TypeTime,
	"Date":         TypeDate,
	"Process":      TypeProcess,
	"TcpListener":  TypeTCPListener,
	"TcpStream":    TypeTCPStream,
	"UdpSocket":    TypeUDPSocket,
	"Random":       TypeRandom,
	"Uuid":         TypeUUID,
}

// builtinStaticReceivers additionally names types whose ONLY role is
// as a static-call receiver (spec.md §4.5 Static call), not as a
// value type a variable can hold: Path, Directory, Array, Socket
// namespaces used for free functions like `Path.join`, `Array.alloc`.
var builtinStaticReceivers = map[string]struct{}{
	"Path":      {},
	"Directory": {},
	"Array":     {},
	"Socket":    {},
}

// Type is a tagged variant. Array carries Elem; Function carries
// Return and Params. Everything else is identified by Kind alone.
type Type struct {
	Kind   TypeKind
	Elem   *Type
	Return *Type
	Params []*Type
}

func Primitive(k TypeKind) *Type { return &Type{Kind: k} }

func ArrayType(elem *Type) *Type { return &Type{Kind: TypeArray, Elem: elem} }

func FunctionType(ret *Type, params []*Type) *Type {
	return &Type{Kind: TypeFunction, Return: ret, Params: params}
}

var (
	IntType    = Primitive(TypeInt)
	LongType   = Primitive(TypeLong)
	DoubleType = Primitive(TypeDouble)
	FloatType  = Primitive(TypeFloat)
	BoolType   = Primitive(TypeBool)
	ByteType   = Primitive(TypeByte)
	CharType   = Primitive(TypeChar)
	StringType = Primitive(TypeString)
	VoidType   = Primitive(TypeVoid)
	NilType    = Primitive(TypeNil)
	AnyType    = Primitive(TypeAny)
)

func (t *Type) String() string {
	if t == nil {
		return "<nil-type>"
	}
	switch t.Kind {
	case TypeArray:
		return t.Elem.String() + "[]"
	case TypeFunction:
		s := "fn("
		for i, p := range t.Params {
			if i > 0 {
				s += ", "
			}
			s += p.String()
		}
		return s + "): " + t.Return.String()
	default:
		if n, ok := primitiveNames[t.Kind]; ok {
			return n
		}
		return fmt.Sprintf("Type(%d)", int(t.Kind))
	}
}

// Equal implements the structural-equality rule of spec.md §3: same
// tag and equal children. Array types share identity by element
// type; function types by return and positional parameter types.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TypeArray:
		return t.Elem.Equal(o.Elem)
	case TypeFunction:
		if !t.Return.Equal(o.Return) {
			return false
		}
		if len(t.Params) != len(o.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(o.Params[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// assignableTo reports whether a value of type source may be stored
// where target is expected: either the types match structurally, or
// both are `int`/`long` (arithmetic promotes int to long and both lower
// to C `long`), or target is `any`, which boxes any value (spec.md §3's
// `any` primitive;
// the reverse direction, unboxing an `any` into a concrete type, is
// deliberately not implicit here — spec.md §12 requires an explicit
// `as Type` cast for that).
func assignableTo(target, source *Type) bool {
	if target.Equal(source) {
		return true
	}
	if (target.Kind == TypeInt || target.Kind == TypeLong) && (source.Kind == TypeInt || source.Kind == TypeLong) {
		return true
	}
	return target.Kind == TypeAny
}

// IsPrimitive reports whether t is a scalar value type eligible for
// `as_ref` boxing (spec.md §3 Parameter, §4.5 memory qualifiers).
func (t *Type) IsPrimitive() bool {
	switch t.Kind {
	case TypeInt, TypeLong, TypeInt32, TypeUint, TypeUint32, TypeFloat, TypeDouble, TypeBool, TypeByte, TypeChar:
		return true
	default:
		return false
	}
}

// IsReference reports whether t is a heap-borne type eligible for
// `as_val` copy semantics and for making an owning function `shared`
// (spec.md §3 Symbol, §4.3).
func (t *Type) IsReference() bool {
	switch t.Kind {
	case TypeString, TypeArray, TypeFunction:
		return true
	default:
		return false
	}
}

func (t *Type) IsNumeric() bool {
	switch t.Kind {
	case TypeInt, TypeLong, TypeInt32, TypeUint, TypeUint32, TypeFloat, TypeDouble, TypeByte:
		return true
	default:
		return false
	}
}

// IsOpaqueBuiltin reports whether t is one of the runtime-owned
// built-in types dispatched through the static/member method tables
// in checker_builtins.go.
func (t *Type) IsOpaqueBuiltin() bool {
	switch t.Kind {
	case TypeTextFile, TypeBinaryFile, TypeTime, TypeDate, TypeProcess,
		TypeTCPListener, TypeTCPStream, TypeUDPSocket, TypeRandom, TypeUUID:
		return true
	default:
		return false
	}
}

// MemQual is a per-parameter memory qualifier (spec.md §3 Parameter).
type MemQual int

const (
	MemDefault MemQual = iota
	MemAsRef
	MemAsVal
)

func (m MemQual) String() string {
	switch m {
	case MemAsRef:
		return "ref"
	case MemAsVal:
		return "val"
	default:
		return "default"
	}
}

// FuncMod is a function-declaration modifier (spec.md §3 Symbol).
type FuncMod int

const (
	FuncModDefault FuncMod = iota
	FuncModPrivate
	FuncModShared
)

func (m FuncMod) String() string {
	switch m {
	case FuncModPrivate:
		return "private"
	case FuncModShared:
		return "shared"
	default:
		return "default"
	}
}
