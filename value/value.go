package value

import (
	"math/big"
	"time"

	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is implemented by anything a Value can carry as its Object variant.
// Package object implements this interface on its Object type; keeping the
// dependency as a small interface here avoids a value <-> object import
// cycle.
type Record interface {
	// Field returns the current value of the named field.
	Field(name string) (Value, bool)
}

// Value is the universal typed value every decoded input, stored field and
// API response flows through. It is a closed tagged union: exactly one of
// the accessor methods below is meaningful for a given Kind().
type Value struct {
	kind Kind

	b    bool
	i    int64
	u    uint64
	big  *big.Int
	f32  float32
	f64  float64
	dec  decimal.Decimal
	str  string
	date civil.Date
	dt   time.Time
	oid  primitive.ObjectID
	list []Value
	keys []string
	dict map[string]Value
	rec  Record
}

// Of is a convenience namespace holding Value constructors, kept short so
// call sites read as `value.Of.String("x")`.
var Of ofConstructors

type ofConstructors struct{}

// Null returns the null value.
func (ofConstructors) Null() Value { return Value{kind: Null} }

// Bool returns a boolean value.
func (ofConstructors) Bool(b bool) Value { return Value{kind: Bool, b: b} }

// ObjectID returns an object id value.
func (ofConstructors) ObjectID(id primitive.ObjectID) Value { return Value{kind: ObjectID, oid: id} }

// Int returns a signed integer value of the given bit width (8, 16, 32, 64).
func (ofConstructors) Int(kind Kind, i int64) Value { return Value{kind: kind, i: i} }

// Uint returns an unsigned integer value of the given bit width (8, 16, 32, 64).
func (ofConstructors) Uint(kind Kind, u uint64) Value { return Value{kind: kind, u: u} }

// BigInt returns an I128 or U128 value backed by math/big.
func (ofConstructors) BigInt(kind Kind, b *big.Int) Value { return Value{kind: kind, big: b} }

// F32 returns a 32-bit float value.
func (ofConstructors) F32(f float32) Value { return Value{kind: F32, f32: f} }

// F64 returns a 64-bit float value.
func (ofConstructors) F64(f float64) Value { return Value{kind: F64, f64: f} }

// Decimal returns an arbitrary-precision decimal value.
func (ofConstructors) Decimal(d decimal.Decimal) Value { return Value{kind: Decimal, dec: d} }

// String returns a string value.
func (ofConstructors) String(s string) Value { return Value{kind: String, str: s} }

// Date returns a local calendar date value.
func (ofConstructors) Date(d civil.Date) Value { return Value{kind: Date, date: d} }

// DateTime returns a UTC timestamp value.
func (ofConstructors) DateTime(t time.Time) Value { return Value{kind: DateTime, dt: t.UTC()} }

// Vec returns an ordered list value.
func (ofConstructors) Vec(items []Value) Value { return Value{kind: Vec, list: items} }

// HashSet returns a deduplicated, unordered set value. Order of iteration
// matches insertion order of the first occurrence, mirroring Go map
// iteration being irrelevant to callers that only check membership.
func (ofConstructors) HashSet(items []Value) Value {
	return Value{kind: HashSet, list: dedupe(items)}
}

// BTreeSet returns a deduplicated, sorted set value.
func (ofConstructors) BTreeSet(items []Value) Value {
	items = dedupe(items)
	sortValues(items)
	return Value{kind: BTreeSet, list: items}
}

// HashMap returns an unordered string-keyed map value.
func (ofConstructors) HashMap(dict map[string]Value) Value {
	return Value{kind: HashMap, dict: dict}
}

// BTreeMap returns a string-keyed map value with sorted iteration.
func (ofConstructors) BTreeMap(dict map[string]Value) Value {
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sortStrings(keys)
	return Value{kind: BTreeMap, dict: dict, keys: keys}
}

// Object returns a value wrapping a record (a model instance).
func (ofConstructors) Object(rec Record) Value { return Value{kind: Object, rec: rec} }

// Kind returns the concrete variant carried by the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean payload; only meaningful when Kind() == Bool.
func (v Value) Bool() bool { return v.b }

// Int returns the signed integer payload for I8..I64.
func (v Value) Int() int64 { return v.i }

// Uint returns the unsigned integer payload for U8..U64.
func (v Value) Uint() uint64 { return v.u }

// BigInt returns the big integer payload for I128/U128.
func (v Value) BigInt() *big.Int { return v.big }

// F32 returns the 32-bit float payload.
func (v Value) F32() float32 { return v.f32 }

// F64 returns the 64-bit float payload.
func (v Value) F64() float64 { return v.f64 }

// DecimalValue returns the decimal payload.
func (v Value) DecimalValue() decimal.Decimal { return v.dec }

// Str returns the string payload.
func (v Value) Str() string { return v.str }

// DateValue returns the date payload.
func (v Value) DateValue() civil.Date { return v.date }

// Time returns the datetime payload, always normalized to UTC.
func (v Value) Time() time.Time { return v.dt }

// ObjectIDValue returns the object id payload.
func (v Value) ObjectIDValue() primitive.ObjectID { return v.oid }

// List returns the element slice for Vec/HashSet/BTreeSet kinds.
func (v Value) List() []Value { return v.list }

// Map returns the backing dictionary for HashMap/BTreeMap kinds.
func (v Value) Map() map[string]Value { return v.dict }

// Keys returns the sorted key order for a BTreeMap value.
func (v Value) Keys() []string { return v.keys }

// Record returns the wrapped record for an Object value.
func (v Value) Record() Record { return v.rec }

func dedupe(items []Value) []Value {
	out := make([]Value, 0, len(items))
	for _, item := range items {
		found := false
		for _, existing := range out {
			if Equal(existing, item) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, item)
		}
	}
	return out
}
