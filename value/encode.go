package value

import (
	"fmt"

	"github.com/256dpi/xo"
)

// ToJSON lowers a Value back into a plain Go value tree suitable for
// encoding/json, the inverse of the per-type decoding performed by package
// decode. Dates and datetimes are normalized to their canonical string
// forms and decimals to their canonical decimal string, matching the
// round-trip guarantee in the decoder contract.
func ToJSON(v Value) (interface{}, error) {
	switch v.kind {
	case Null:
		return nil, nil
	case ObjectID:
		return v.oid.Hex(), nil
	case Bool:
		return v.b, nil
	case I8, I16, I32, I64:
		return v.i, nil
	case U8, U16, U32, U64:
		return v.u, nil
	case I128, U128:
		if v.big == nil {
			return nil, nil
		}
		return v.big.String(), nil
	case F32:
		return v.f32, nil
	case F64:
		return v.f64, nil
	case Decimal:
		return v.dec.String(), nil
	case String:
		return v.str, nil
	case Date:
		return v.date.String(), nil
	case DateTime:
		return v.dt.UTC().Format("2006-01-02T15:04:05.000Z07:00"), nil
	case Vec, HashSet, BTreeSet:
		out := make([]interface{}, len(v.list))
		for i, item := range v.list {
			enc, err := ToJSON(item)
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil
	case HashMap:
		out := make(map[string]interface{}, len(v.dict))
		for k, item := range v.dict {
			enc, err := ToJSON(item)
			if err != nil {
				return nil, err
			}
			out[k] = enc
		}
		return out, nil
	case BTreeMap:
		out := make(map[string]interface{}, len(v.dict))
		for _, k := range v.keys {
			enc, err := ToJSON(v.dict[k])
			if err != nil {
				return nil, err
			}
			out[k] = enc
		}
		return out, nil
	case Object:
		return nil, xo.F("value: object kind cannot be encoded without a projection of fields")
	default:
		return nil, xo.F("value: %s", fmt.Sprintf("unknown kind %d", v.kind))
	}
}
