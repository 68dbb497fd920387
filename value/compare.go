package value

import "sort"

func sortStrings(s []string) {
	sort.Strings(s)
}

// sortValues sorts a slice of scalar values in place for BTreeSet storage.
// Mixed-kind slices sort by kind first so the order stays total.
func sortValues(items []Value) {
	sort.Slice(items, func(i, j int) bool {
		return Less(items[i], items[j])
	})
}

// Less defines the total order used by BTreeSet/BTreeMap. Values of
// different kinds are ordered by Kind().
func Less(a, b Value) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	switch a.kind {
	case Bool:
		return !a.b && b.b
	case I8, I16, I32, I64:
		return a.i < b.i
	case U8, U16, U32, U64:
		return a.u < b.u
	case I128, U128:
		if a.big == nil || b.big == nil {
			return a.big == nil && b.big != nil
		}
		return a.big.Cmp(b.big) < 0
	case F32:
		return a.f32 < b.f32
	case F64:
		return a.f64 < b.f64
	case Decimal:
		return a.dec.LessThan(b.dec)
	case String:
		return a.str < b.str
	case Date:
		return a.date.Before(b.date)
	case DateTime:
		return a.dt.Before(b.dt)
	case ObjectID:
		return a.oid.Hex() < b.oid.Hex()
	default:
		return false
	}
}

// Equal reports whether two values carry the same kind and payload. Two
// collections are equal when they have the same elements in the same
// position (Vec) or the same members (sets/maps).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case I8, I16, I32, I64:
		return a.i == b.i
	case U8, U16, U32, U64:
		return a.u == b.u
	case I128, U128:
		if a.big == nil || b.big == nil {
			return a.big == b.big
		}
		return a.big.Cmp(b.big) == 0
	case F32:
		return a.f32 == b.f32
	case F64:
		return a.f64 == b.f64
	case Decimal:
		return a.dec.Equal(b.dec)
	case String:
		return a.str == b.str
	case Date:
		return a.date == b.date
	case DateTime:
		return a.dt.Equal(b.dt)
	case ObjectID:
		return a.oid == b.oid
	case Vec, HashSet, BTreeSet:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case HashMap, BTreeMap:
		if len(a.dict) != len(b.dict) {
			return false
		}
		for k, v := range a.dict {
			other, ok := b.dict[k]
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
