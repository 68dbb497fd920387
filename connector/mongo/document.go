package mongo

import (
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Crackersssss/teo/errs"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

// valueFromBSON rehydrates a TSON Value from the driver-native Go value a
// bson.M document decode produces for a field of the given type, the
// inverse of value.ToJSON's lowering. It mirrors the shapes documentOf's
// value.ToJSON calls write: hex strings for ObjectID, int64/uint64 for the
// fixed-width integers, float64 for F32/F64 (bson has no float32), decimal
// strings for Decimal/I128/U128, and canonical date/datetime strings.
func valueFromBSON(graph *schema.Graph, ft schema.FieldType, raw interface{}) (value.Value, error) {
	if raw == nil {
		return value.Of.Null(), nil
	}

	switch ft.Kind {
	case schema.TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		return value.Of.Bool(b), nil

	case schema.TypeString:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		return value.Of.String(s), nil

	case schema.TypeEnum:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		return value.Of.String(s), nil

	case schema.TypeObjectID:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return value.Value{}, errs.Wrap(errs.InternalServerError, err, "decoding object id %q", s)
		}
		return value.Of.ObjectID(oid), nil

	case schema.TypeDate:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		d, err := civil.ParseDate(s)
		if err != nil {
			return value.Value{}, errs.Wrap(errs.InternalServerError, err, "decoding date %q", s)
		}
		return value.Of.Date(d), nil

	case schema.TypeDateTime:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return value.Value{}, errs.Wrap(errs.InternalServerError, err, "decoding datetime %q", s)
		}
		return value.Of.DateTime(t), nil

	case schema.TypeI8, schema.TypeI16, schema.TypeI32, schema.TypeI64:
		i, ok := asInt64(raw)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		return value.Of.Int(ft.ValueKind(), i), nil

	case schema.TypeU8, schema.TypeU16, schema.TypeU32, schema.TypeU64:
		i, ok := asInt64(raw)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		return value.Of.Uint(ft.ValueKind(), uint64(i)), nil

	case schema.TypeI128, schema.TypeU128:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		b, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return value.Value{}, errs.New(errs.InternalServerError, "", "not a valid 128 bit integer: %s", s)
		}
		return value.Of.BigInt(ft.ValueKind(), b), nil

	case schema.TypeF32:
		f, ok := asFloat64(raw)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		return value.Of.F32(float32(f)), nil

	case schema.TypeF64:
		f, ok := asFloat64(raw)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		return value.Of.F64(f), nil

	case schema.TypeDecimal:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return value.Value{}, errs.Wrap(errs.InternalServerError, err, "decoding decimal %q", s)
		}
		return value.Of.Decimal(d), nil

	case schema.TypeVec, schema.TypeHashSet, schema.TypeBTreeSet:
		items, ok := asSlice(raw)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		out := make([]value.Value, 0, len(items))
		for _, item := range items {
			v, err := valueFromBSON(graph, *ft.Inner, item)
			if err != nil {
				return value.Value{}, err
			}
			out = append(out, v)
		}
		switch ft.Kind {
		case schema.TypeHashSet:
			return value.Of.HashSet(out), nil
		case schema.TypeBTreeSet:
			return value.Of.BTreeSet(out), nil
		default:
			return value.Of.Vec(out), nil
		}

	case schema.TypeHashMap, schema.TypeBTreeMap:
		obj, ok := asMap(raw)
		if !ok {
			return value.Value{}, unexpectedBSONType(ft, raw)
		}
		out := make(map[string]value.Value, len(obj))
		for k, item := range obj {
			v, err := valueFromBSON(graph, *ft.Inner, item)
			if err != nil {
				return value.Value{}, err
			}
			out[k] = v
		}
		if ft.Kind == schema.TypeBTreeMap {
			return value.Of.BTreeMap(out), nil
		}
		return value.Of.HashMap(out), nil

	default:
		return value.Value{}, errs.New(errs.InternalServerError, "", "unsupported field type in mongo document")
	}
}

func asInt64(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func asFloat64(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	default:
		return 0, false
	}
}

func asSlice(raw interface{}) ([]interface{}, bool) {
	switch v := raw.(type) {
	case primitive.A:
		return []interface{}(v), true
	case []interface{}:
		return v, true
	default:
		return nil, false
	}
}

func asMap(raw interface{}) (map[string]interface{}, bool) {
	switch v := raw.(type) {
	case primitive.M:
		return map[string]interface{}(v), true
	case map[string]interface{}:
		return v, true
	default:
		return nil, false
	}
}

func unexpectedBSONType(ft schema.FieldType, raw interface{}) error {
	return errs.New(errs.InternalServerError, "", "unexpected bson type %T for field type %d", raw, ft.Kind)
}
