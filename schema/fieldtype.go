package schema

import "github.com/Crackersssss/teo/value"

// TypeKind identifies the shape of a FieldType. Composite kinds (Vec, sets,
// maps, Object) carry an inner FieldType or a referenced model/enum name.
type TypeKind uint8

// The closed set of field type kinds, mirroring §3 of the core spec.
const (
	TypeUndefined TypeKind = iota
	TypeObjectID
	TypeBool
	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeI128
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeU128
	TypeF32
	TypeF64
	TypeDecimal
	TypeString
	TypeDate
	TypeDateTime
	TypeEnum
	TypeVec
	TypeHashSet
	TypeBTreeSet
	TypeHashMap
	TypeBTreeMap
	TypeObject
)

// FieldType describes the type of a field. Vec/HashSet/BTreeSet/HashMap/
// BTreeMap carry an Inner field type; Enum and Object carry a Ref name that
// is looked up against the Graph by name when used. Graph build does not
// check that the name exists.
type FieldType struct {
	Kind  TypeKind
	Inner *FieldType
	Ref   string // enum name for TypeEnum, model name for TypeObject
}

// T is a namespace of FieldType constructors, so call sites read like
// `T.String()` or `T.Vec(T.I64())`.
var T tConstructors

type tConstructors struct{}

func (tConstructors) Undefined() FieldType { return FieldType{Kind: TypeUndefined} }
func (tConstructors) ObjectID() FieldType  { return FieldType{Kind: TypeObjectID} }
func (tConstructors) Bool() FieldType      { return FieldType{Kind: TypeBool} }
func (tConstructors) I8() FieldType        { return FieldType{Kind: TypeI8} }
func (tConstructors) I16() FieldType       { return FieldType{Kind: TypeI16} }
func (tConstructors) I32() FieldType       { return FieldType{Kind: TypeI32} }
func (tConstructors) I64() FieldType       { return FieldType{Kind: TypeI64} }
func (tConstructors) I128() FieldType      { return FieldType{Kind: TypeI128} }
func (tConstructors) U8() FieldType        { return FieldType{Kind: TypeU8} }
func (tConstructors) U16() FieldType       { return FieldType{Kind: TypeU16} }
func (tConstructors) U32() FieldType       { return FieldType{Kind: TypeU32} }
func (tConstructors) U64() FieldType       { return FieldType{Kind: TypeU64} }
func (tConstructors) U128() FieldType      { return FieldType{Kind: TypeU128} }
func (tConstructors) F32() FieldType       { return FieldType{Kind: TypeF32} }
func (tConstructors) F64() FieldType       { return FieldType{Kind: TypeF64} }
func (tConstructors) Decimal() FieldType   { return FieldType{Kind: TypeDecimal} }
func (tConstructors) String() FieldType    { return FieldType{Kind: TypeString} }
func (tConstructors) Date() FieldType      { return FieldType{Kind: TypeDate} }
func (tConstructors) DateTime() FieldType  { return FieldType{Kind: TypeDateTime} }

func (tConstructors) Enum(name string) FieldType { return FieldType{Kind: TypeEnum, Ref: name} }
func (tConstructors) Object(model string) FieldType {
	return FieldType{Kind: TypeObject, Ref: model}
}

func (tConstructors) Vec(inner FieldType) FieldType {
	return FieldType{Kind: TypeVec, Inner: &inner}
}
func (tConstructors) HashSet(inner FieldType) FieldType {
	return FieldType{Kind: TypeHashSet, Inner: &inner}
}
func (tConstructors) BTreeSet(inner FieldType) FieldType {
	return FieldType{Kind: TypeBTreeSet, Inner: &inner}
}
func (tConstructors) HashMap(inner FieldType) FieldType {
	return FieldType{Kind: TypeHashMap, Inner: &inner}
}
func (tConstructors) BTreeMap(inner FieldType) FieldType {
	return FieldType{Kind: TypeBTreeMap, Inner: &inner}
}

// ValueKind returns the value.Kind a decoded scalar of this type carries.
// Composite kinds return the matching value.Kind; callers decode elements
// against Inner separately.
func (t FieldType) ValueKind() value.Kind {
	switch t.Kind {
	case TypeObjectID:
		return value.ObjectID
	case TypeBool:
		return value.Bool
	case TypeI8:
		return value.I8
	case TypeI16:
		return value.I16
	case TypeI32:
		return value.I32
	case TypeI64:
		return value.I64
	case TypeI128:
		return value.I128
	case TypeU8:
		return value.U8
	case TypeU16:
		return value.U16
	case TypeU32:
		return value.U32
	case TypeU64:
		return value.U64
	case TypeU128:
		return value.U128
	case TypeF32:
		return value.F32
	case TypeF64:
		return value.F64
	case TypeDecimal:
		return value.Decimal
	case TypeString, TypeEnum:
		return value.String
	case TypeDate:
		return value.Date
	case TypeDateTime:
		return value.DateTime
	case TypeVec:
		return value.Vec
	case TypeHashSet:
		return value.HashSet
	case TypeBTreeSet:
		return value.BTreeSet
	case TypeHashMap:
		return value.HashMap
	case TypeBTreeMap:
		return value.BTreeMap
	case TypeObject:
		return value.Object
	default:
		return value.Null
	}
}

// Filters returns the closed set of where-filter keys admissible for this
// type, per §4.2.
func (t FieldType) Filters() []string {
	switch {
	case t.Kind.isCollection():
		return []string{"has", "hasEvery", "hasSome", "isEmpty", "length"}
	case t.Kind == TypeString:
		return []string{"equals", "not", "gt", "gte", "lt", "lte", "in", "notIn",
			"contains", "startsWith", "endsWith", "matches", "mode"}
	default:
		return []string{"equals", "not", "gt", "gte", "lt", "lte", "in", "notIn"}
	}
}

func (k TypeKind) isCollection() bool {
	return k == TypeVec || k == TypeHashSet || k == TypeBTreeSet || k == TypeHashMap || k == TypeBTreeMap
}
