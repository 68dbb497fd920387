package decode

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/Crackersssss/teo/errs"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// signedRanges and unsignedRanges hold the inclusive bounds an integer
// FieldType admits.
// I128/U128 are bounded only by math/big's arbitrary precision.
var signedRanges = map[schema.TypeKind][2]int64{
	schema.TypeI8:  {math.MinInt8, math.MaxInt8},
	schema.TypeI16: {math.MinInt16, math.MaxInt16},
	schema.TypeI32: {math.MinInt32, math.MaxInt32},
	schema.TypeI64: {math.MinInt64, math.MaxInt64},
}

var unsignedRanges = map[schema.TypeKind]uint64{
	schema.TypeU8:  math.MaxUint8,
	schema.TypeU16: math.MaxUint16,
	schema.TypeU32: math.MaxUint32,
	schema.TypeU64: math.MaxUint64,
}

// DecodeValueForFieldType coerces a single decoded JSON value into a TSON
// Value per the field type, per §4.2's decode_value_for_field_type. Numeric
// input is expected as json.Number (decode with json.Decoder.UseNumber())
// so integer/decimal precision survives the JSON -> Go boundary.
func DecodeValueForFieldType(graph *schema.Graph, ft schema.FieldType, optional bool, raw interface{}, path *Path) (value.Value, error) {
	if raw == nil {
		if optional {
			return value.Of.Null(), nil
		}
		return value.Value{}, errs.New(errs.MissingRequiredInput, path.String(), "value is required")
	}

	switch ft.Kind {
	case schema.TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return value.Value{}, unexpectedType(path, "bool")
		}
		return value.Of.Bool(b), nil

	case schema.TypeString:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedType(path, "string")
		}
		return value.Of.String(s), nil

	case schema.TypeEnum:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedType(path, "string represents enum "+ft.Ref)
		}
		e, ok := graph.Enum(ft.Ref)
		if !ok || !e.Contains(s) {
			return value.Value{}, unexpectedType(path, "string represents enum "+ft.Ref)
		}
		return value.Of.String(s), nil

	case schema.TypeObjectID:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedType(path, "24-hex object id")
		}
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid object id: %s", s)
		}
		return value.Of.ObjectID(oid), nil

	case schema.TypeDate:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedType(path, "YYYY-MM-DD date string")
		}
		d, err := civil.ParseDate(s)
		if err != nil {
			return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid date: %s", s)
		}
		return value.Of.Date(d), nil

	case schema.TypeDateTime:
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedType(path, "RFC-3339 datetime string")
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid datetime: %s", s)
		}
		return value.Of.DateTime(t), nil

	case schema.TypeDecimal:
		return decodeDecimal(raw, path)

	case schema.TypeI8, schema.TypeI16, schema.TypeI32, schema.TypeI64:
		return decodeSignedInt(ft.Kind, raw, path)

	case schema.TypeU8, schema.TypeU16, schema.TypeU32, schema.TypeU64:
		return decodeUnsignedInt(ft.Kind, raw, path)

	case schema.TypeI128:
		return decodeBigInt(value.I128, raw, path)
	case schema.TypeU128:
		return decodeBigInt(value.U128, raw, path)

	case schema.TypeF32:
		f, err := decodeFloat(raw, path)
		if err != nil {
			return value.Value{}, err
		}
		return value.Of.F32(float32(f)), nil
	case schema.TypeF64:
		f, err := decodeFloat(raw, path)
		if err != nil {
			return value.Value{}, err
		}
		return value.Of.F64(f), nil

	case schema.TypeVec, schema.TypeHashSet, schema.TypeBTreeSet:
		return decodeList(graph, ft, path, raw)

	case schema.TypeHashMap, schema.TypeBTreeMap:
		return decodeMap(graph, ft, path, raw)

	default:
		return value.Value{}, errs.New(errs.UnexpectedInputType, path.String(), "unsupported field type")
	}
}

func unexpectedType(path *Path, expected string) error {
	return errs.New(errs.UnexpectedInputType, path.String(), "expected %s", expected)
}

func decodeDecimal(raw interface{}, path *Path) (value.Value, error) {
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid decimal: %s", v)
		}
		return value.Of.Decimal(d), nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid decimal: %s", v)
		}
		return value.Of.Decimal(d), nil
	default:
		return value.Value{}, unexpectedType(path, "decimal string or number")
	}
}

func asNumber(raw interface{}, path *Path) (json.Number, error) {
	switch v := raw.(type) {
	case json.Number:
		return v, nil
	case string:
		return json.Number(v), nil
	default:
		return "", unexpectedType(path, "number")
	}
}

func decodeSignedInt(kind schema.TypeKind, raw interface{}, path *Path) (value.Value, error) {
	n, err := asNumber(raw, path)
	if err != nil {
		return value.Value{}, err
	}
	i, err := n.Int64()
	if err != nil {
		return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid integer: %s", n)
	}
	rng := signedRanges[kind]
	if i < rng[0] || i > rng[1] {
		return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "%d out of %s bit integer range", i, ftName(kind))
	}
	return value.Of.Int(ftKindToValueKind(kind), i), nil
}

func decodeUnsignedInt(kind schema.TypeKind, raw interface{}, path *Path) (value.Value, error) {
	n, err := asNumber(raw, path)
	if err != nil {
		return value.Value{}, err
	}
	u, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid unsigned integer: %s", n)
	}
	if u > unsignedRanges[kind] {
		return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "%d out of %s bit integer range", u, ftName(kind))
	}
	return value.Of.Uint(ftKindToValueKind(kind), u), nil
}

// decodeBigInt handles I128/U128. Per §9's open question, both JSON number
// and JSON string input are accepted since the range exceeds float64/int64
// precision.
func decodeBigInt(kind value.Kind, raw interface{}, path *Path) (value.Value, error) {
	n, err := asNumber(raw, path)
	if err != nil {
		return value.Value{}, err
	}
	b, ok := new(big.Int).SetString(n.String(), 10)
	if !ok {
		return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid 128 bit integer: %s", n)
	}
	if kind == value.U128 && b.Sign() < 0 {
		return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "negative value for unsigned 128 bit integer")
	}
	return value.Of.BigInt(kind, b), nil
}

func decodeFloat(raw interface{}, path *Path) (float64, error) {
	n, err := asNumber(raw, path)
	if err != nil {
		return 0, err
	}
	f, err := n.Float64()
	if err != nil {
		return 0, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid number: %s", n)
	}
	return f, nil
}

func ftName(kind schema.TypeKind) string {
	return schema.FieldType{Kind: kind}.ValueKind().String()
}

func ftKindToValueKind(kind schema.TypeKind) value.Kind {
	return schema.FieldType{Kind: kind}.ValueKind()
}

func decodeList(graph *schema.Graph, ft schema.FieldType, path *Path, raw interface{}) (value.Value, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return value.Value{}, unexpectedType(path, "array")
	}
	out := make([]value.Value, 0, len(items))
	for i, item := range items {
		v, err := DecodeValueForFieldType(graph, *ft.Inner, false, item, path.Index(i))
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
}

func decodeMap(graph *schema.Graph, ft schema.FieldType, path *Path, raw interface{}) (value.Value, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return value.Value{}, unexpectedType(path, "object")
	}
	out := make(map[string]value.Value, len(obj))
	for k, item := range obj {
		v, err := DecodeValueForFieldType(graph, *ft.Inner, false, item, path.Field(k))
		if err != nil {
			return value.Value{}, err
		}
		out[k] = v
	}
	if ft.Kind == schema.TypeBTreeMap {
		return value.Of.BTreeMap(out), nil
	}
	return value.Of.HashMap(out), nil
}
