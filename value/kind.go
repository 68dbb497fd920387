// Package value implements the universal typed value (TSON) that every
// decoded input, stored field and API response flows through.
package value

// Kind identifies the concrete variant carried by a Value.
type Kind uint8

// The available kinds. This is a closed set mirrored by the FieldType
// variants in package schema.
const (
	Null Kind = iota
	ObjectID
	Bool
	I8
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
	F32
	F64
	Decimal
	String
	Date
	DateTime
	Vec
	HashSet
	BTreeSet
	HashMap
	BTreeMap
	Object
)

// String returns a human readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case ObjectID:
		return "objectId"
	case Bool:
		return "bool"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case I128:
		return "i128"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case U128:
		return "u128"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Decimal:
		return "decimal"
	case String:
		return "string"
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	case Vec:
		return "vec"
	case HashSet:
		return "hashSet"
	case BTreeSet:
		return "btreeSet"
	case HashMap:
		return "hashMap"
	case BTreeMap:
		return "btreeMap"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// IsInteger reports whether the kind is one of the signed or unsigned
// integer variants.
func (k Kind) IsInteger() bool {
	return k >= I8 && k <= U128
}

// IsNumeric reports whether the kind is an integer, float or decimal.
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k == F32 || k == F64 || k == Decimal
}

// IsCollection reports whether the kind is a list, set or map variant.
func (k Kind) IsCollection() bool {
	return k == Vec || k == HashSet || k == BTreeSet || k == HashMap || k == BTreeMap
}
