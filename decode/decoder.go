// Package decode implements the recursive JSON -> TSON transformer keyed by
// ActionType, grounded on original_source/src/core/tson/decoder.rs. Decode
// is pure: it performs no I/O and mutates nothing beyond building its
// result.
package decode

import (
	"encoding/json"

	"github.com/Crackersssss/teo/errs"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
)

// OrderByEntry is one decoded `orderBy` singleton.
type OrderByEntry struct {
	Field string
	Sort  schema.Sort
}

// IncludeEntry is a decoded `include` entry: either a bare `true` or a
// nested find spec against the related model.
type IncludeEntry struct {
	All    bool
	Nested *Decoded
}

// Decoded is the full result of decoding one action's JSON body.
type Decoded struct {
	Action ActionType

	Where       *Where
	WhereUnique map[string]value.Value

	OrderBy  []OrderByEntry
	Distinct []string

	Skip, Take, PageSize, PageNumber *uint64

	Select  map[string]bool
	Include map[string]IncludeEntry

	Create map[string]value.Value
	Update map[string]value.Value
}

// Decode lowers json (the already-unmarshaled request body, numbers as
// json.Number) into TSON per action and model, per §4.2's algorithm.
func Decode(graph *schema.Graph, model *schema.Model, action ActionType, raw interface{}) (*Decoded, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errs.New(errs.UnexpectedInputRootType, "", "expected object")
	}

	allowed := action.AllowedInputJSONKeys()
	for key := range obj {
		if !contains(allowed, key) {
			return nil, errs.New(errs.UnexpectedInputKey, key, "key %q is not allowed for action %s", key, action)
		}
	}

	out := &Decoded{Action: action}

	for _, key := range allowed {
		v, present := obj[key]
		if !present {
			continue
		}
		path := Root.Field(key)
		var err error
		switch key {
		case "where":
			if action.RequiresWhereUnique() {
				out.WhereUnique, err = decodeWhereUnique(graph, model, v, path)
			} else {
				out.Where, err = decodeWhere(graph, model, v, path)
			}
		case "whereUnique", "cursor":
			out.WhereUnique, err = decodeWhereUnique(graph, model, v, path)
		case "orderBy":
			out.OrderBy, err = decodeOrderBy(v, path)
		case "distinct":
			out.Distinct, err = decodeDistinct(model, v, path)
		case "select":
			out.Select, err = decodeSelect(model, v, path)
		case "include":
			out.Include, err = decodeInclude(graph, model, v, path)
		case "skip":
			out.Skip, err = decodeUnsigned(v, path)
		case "take":
			out.Take, err = decodeUnsigned(v, path)
		case "pageSize":
			out.PageSize, err = decodeUnsigned(v, path)
		case "pageNumber":
			out.PageNumber, err = decodeUnsigned(v, path)
		case "create":
			out.Create, err = decodeCreateOrUpdate(graph, model, v, path)
		case "update":
			out.Update, err = decodeCreateOrUpdate(graph, model, v, path)
		}
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func contains(set []string, key string) bool {
	for _, s := range set {
		if s == key {
			return true
		}
	}
	return false
}

func decodeUnsigned(raw interface{}, path *Path) (*uint64, error) {
	n, ok := raw.(json.Number)
	if !ok {
		if s, ok := raw.(string); ok {
			n = json.Number(s)
		} else {
			return nil, unexpectedType(path, "unsigned integer")
		}
	}
	i, err := n.Int64()
	if err != nil || i < 0 {
		return nil, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid unsigned integer: %s", n)
	}
	u := uint64(i)
	return &u, nil
}

// decodeWhere implements §4.2's decode_where.
func decodeWhere(graph *schema.Graph, model *schema.Model, raw interface{}, path *Path) (*Where, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, unexpectedType(path, "object")
	}

	w := newWhere()
	for key, v := range obj {
		switch key {
		case "AND":
			clauses, err := decodeClauseList(graph, model, v, path.Field(key))
			if err != nil {
				return nil, err
			}
			w.And = append(w.And, clauses...)
		case "OR":
			clauses, err := decodeClauseList(graph, model, v, path.Field(key))
			if err != nil {
				return nil, err
			}
			w.Or = append(w.Or, clauses...)
		case "NOT":
			sub, err := decodeWhere(graph, model, v, path.Field(key))
			if err != nil {
				return nil, err
			}
			w.Not = sub
		default:
			if r, ok := model.RelationsByName[key]; ok {
				rf, err := decodeRelationWhere(graph, model, r, v, path.Field(key))
				if err != nil {
					return nil, err
				}
				w.Relations[key] = rf
				continue
			}
			f, ok := model.Fields[key]
			if !ok || !f.IsQueryable() {
				return nil, errs.New(errs.UnexpectedInputKey, path.Field(key).String(), "key %q is not a query key", key)
			}
			ff, err := decodeWhereForField(graph, f.Type, f.Availability == schema.Optional, v, path.Field(key))
			if err != nil {
				return nil, err
			}
			w.Fields[key] = ff
		}
	}
	return w, nil
}

func decodeClauseList(graph *schema.Graph, model *schema.Model, raw interface{}, path *Path) ([]*Where, error) {
	if arr, ok := raw.([]interface{}); ok {
		out := make([]*Where, 0, len(arr))
		for i, item := range arr {
			w, err := decodeWhere(graph, model, item, path.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, w)
		}
		return out, nil
	}
	w, err := decodeWhere(graph, model, raw, path)
	if err != nil {
		return nil, err
	}
	return []*Where{w}, nil
}

func decodeRelationWhere(graph *schema.Graph, model *schema.Model, r *schema.Relation, raw interface{}, path *Path) (RelationFilter, error) {
	related, ok := graph.Model(r.Model)
	if !ok {
		return RelationFilter{}, errs.New(errs.InternalServerError, path.String(), "relation %q targets unresolved model %q", r.Name, r.Model)
	}
	obj, ok := raw.(map[string]interface{})
	if !ok || len(obj) != 1 {
		return RelationFilter{}, errs.New(errs.UnexpectedObjectLength, path.String(), "expected exactly one relation selector key")
	}
	for key, v := range obj {
		var op RelationOp
		switch key {
		case "is":
			op = RelIs
		case "isNot":
			op = RelIsNot
		case "some":
			op = RelSome
		case "every":
			op = RelEvery
		case "none":
			op = RelNone
		default:
			return RelationFilter{}, errs.New(errs.UnexpectedInputKey, path.Field(key).String(), "unknown relation selector %q", key)
		}
		if (op == RelIs || op == RelIsNot) != (r.Multiplicity == schema.One) {
			return RelationFilter{}, errs.New(errs.UnexpectedInputKey, path.Field(key).String(), "relation selector %q does not apply to relation %q", key, r.Name)
		}
		w, err := decodeWhere(graph, related, v, path.Field(key))
		if err != nil {
			return RelationFilter{}, err
		}
		return RelationFilter{Op: op, Where: w}, nil
	}
	panic("unreachable")
}

// decodeWhereForField implements §4.2's decode_where_for_field.
func decodeWhereForField(graph *schema.Graph, ft schema.FieldType, optional bool, raw interface{}, path *Path) (FieldFilter, error) {
	obj, isObject := raw.(map[string]interface{})
	if !isObject {
		v, err := DecodeValueForFieldType(graph, ft, optional, raw, path)
		if err != nil {
			return FieldFilter{}, err
		}
		return FieldFilter{Filters: map[string]value.Value{"equals": v}}, nil
	}

	allowed := ft.Filters()
	ff := FieldFilter{Filters: map[string]value.Value{}}
	for key, v := range obj {
		if key == "not" {
			sub, err := decodeWhereForField(graph, ft, optional, v, path.Field(key))
			if err != nil {
				return FieldFilter{}, err
			}
			ff.Not = &sub
			continue
		}
		if key == "mode" {
			s, ok := v.(string)
			if !ok || (s != "default" && s != "caseInsensitive") {
				return FieldFilter{}, errs.New(errs.UnexpectedInputValue, path.Field(key).String(), "mode must be default or caseInsensitive")
			}
			ff.Filters[key] = value.Of.String(s)
			continue
		}
		if !contains(allowed, key) {
			return FieldFilter{}, errs.New(errs.UnexpectedInputKey, path.Field(key).String(), "filter %q not admissible for this type", key)
		}
		decoded, err := decodeFilterValue(graph, ft, optional, key, v, path.Field(key))
		if err != nil {
			return FieldFilter{}, err
		}
		ff.Filters[key] = decoded
	}
	return ff, nil
}

func decodeFilterValue(graph *schema.Graph, ft schema.FieldType, optional bool, key string, raw interface{}, path *Path) (value.Value, error) {
	switch key {
	case "in", "notIn", "hasEvery", "hasSome":
		items, ok := raw.([]interface{})
		if !ok {
			return value.Value{}, unexpectedType(path, "array")
		}
		out := make([]value.Value, 0, len(items))
		for i, item := range items {
			v, err := DecodeValueForFieldType(graph, elemType(ft), optional, item, path.Index(i))
			if err != nil {
				return value.Value{}, err
			}
			out = append(out, v)
		}
		return value.Of.Vec(out), nil
	case "isEmpty":
		b, ok := raw.(bool)
		if !ok {
			return value.Value{}, unexpectedType(path, "bool")
		}
		return value.Of.Bool(b), nil
	case "length":
		return decodeUnsignedValue(raw, path)
	case "contains", "startsWith", "endsWith", "matches", "has":
		if key == "has" {
			return DecodeValueForFieldType(graph, elemType(ft), optional, raw, path)
		}
		s, ok := raw.(string)
		if !ok {
			return value.Value{}, unexpectedType(path, "string")
		}
		return value.Of.String(s), nil
	default:
		return DecodeValueForFieldType(graph, ft, optional, raw, path)
	}
}

// elemType returns the element FieldType for collection filters (has,
// hasEvery, hasSome, in on a collection field); for scalar fields the field
// type itself is the element type.
func elemType(ft schema.FieldType) schema.FieldType {
	if ft.Inner != nil {
		return *ft.Inner
	}
	return ft
}

func decodeUnsignedValue(raw interface{}, path *Path) (value.Value, error) {
	n, err := asNumber(raw, path)
	if err != nil {
		return value.Value{}, err
	}
	i, err := n.Int64()
	if err != nil || i < 0 {
		return value.Value{}, errs.New(errs.UnexpectedInputValue, path.String(), "not a valid unsigned integer: %s", n)
	}
	return value.Of.Uint(value.U64, uint64(i)), nil
}

// decodeWhereUnique implements §4.2's decode_where_unique. Go's
// map[string]interface{} does not preserve JSON object key order, so unlike
// the ordered-key-set wording in §3/§4.2, matching here is by key *set*
// rather than ordered sequence (documented in the design ledger).
func decodeWhereUnique(graph *schema.Graph, model *schema.Model, raw interface{}, path *Path) (map[string]value.Value, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok || len(obj) == 0 {
		return nil, errs.New(errs.UnexpectedInputKey, path.String(), "whereUnique must be a non-empty object")
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}

	if !matchesSomeUniqueIndex(model, keys) {
		return nil, errs.New(errs.UnexpectedInputKey, path.String(), "key set does not match any unique index")
	}

	out := make(map[string]value.Value, len(obj))
	for key, v := range obj {
		f, ok := model.Fields[key]
		if !ok {
			return nil, errs.New(errs.UnexpectedInputKey, path.Field(key).String(), "%q is not a field of %s", key, model.Name)
		}
		decoded, err := DecodeValueForFieldType(graph, f.Type, false, v, path.Field(key))
		if err != nil {
			return nil, err
		}
		out[key] = decoded
	}
	return out, nil
}

func matchesSomeUniqueIndex(model *schema.Model, keys []string) bool {
	if len(keys) == 1 {
		if f, ok := model.Fields[keys[0]]; ok && f.Index.Kind == schema.IndexUnique {
			return true
		}
		if len(model.PrimaryKey()) == 1 && model.PrimaryKey()[0] == keys[0] {
			return true
		}
	}
	if keySetEquals(model.PrimaryKey(), keys) {
		return true
	}
	for _, idx := range model.Indexes {
		if idx.Unique && keySetEquals(idx.FieldNames(), keys) {
			return true
		}
	}
	return false
}

func keySetEquals(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := map[string]bool{}
	for _, k := range a {
		set[k] = true
	}
	for _, k := range b {
		if !set[k] {
			return false
		}
	}
	return true
}

// decodeOrderBy implements §4.2's decode_order_by.
func decodeOrderBy(raw interface{}, path *Path) ([]OrderByEntry, error) {
	if arr, ok := raw.([]interface{}); ok {
		out := make([]OrderByEntry, 0, len(arr))
		for i, item := range arr {
			entry, err := decodeOrderBySingleton(item, path.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
		}
		return out, nil
	}
	entry, err := decodeOrderBySingleton(raw, path)
	if err != nil {
		return nil, err
	}
	return []OrderByEntry{entry}, nil
}

func decodeOrderBySingleton(raw interface{}, path *Path) (OrderByEntry, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return OrderByEntry{}, unexpectedType(path, "object")
	}
	if len(obj) != 1 {
		return OrderByEntry{}, errs.New(errs.UnexpectedObjectLength, path.String(), "expected exactly 1 key, got %d", len(obj))
	}
	for field, dir := range obj {
		s, ok := dir.(string)
		if !ok {
			return OrderByEntry{}, unexpectedType(path.Field(field), "asc or desc")
		}
		switch s {
		case "asc":
			return OrderByEntry{Field: field, Sort: schema.Asc}, nil
		case "desc":
			return OrderByEntry{Field: field, Sort: schema.Desc}, nil
		default:
			return OrderByEntry{}, errs.New(errs.UnexpectedInputValue, path.Field(field).String(), "expected asc or desc, got %q", s)
		}
	}
	panic("unreachable")
}

// decodeDistinct implements §4.2's decode_distinct.
func decodeDistinct(model *schema.Model, raw interface{}, path *Path) ([]string, error) {
	var names []string
	switch v := raw.(type) {
	case string:
		names = []string{v}
	case []interface{}:
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, unexpectedType(path.Index(i), "string")
			}
			names = append(names, s)
		}
	default:
		return nil, unexpectedType(path, "string or array of strings")
	}
	for _, name := range names {
		if !contains(model.ScalarKeys, name) {
			return nil, errs.New(errs.UnexpectedInputKey, path.String(), "%q is not a scalar key", name)
		}
	}
	return names, nil
}

// decodeSelect implements §4.2's decode_select.
func decodeSelect(model *schema.Model, raw interface{}, path *Path) (map[string]bool, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, unexpectedType(path, "object")
	}
	out := make(map[string]bool, len(obj))
	for key, v := range obj {
		if !contains(model.LocalOutputKeys, key) {
			return nil, errs.New(errs.UnexpectedInputKey, path.Field(key).String(), "%q is not an output key", key)
		}
		b, ok := v.(bool)
		if !ok {
			return nil, unexpectedType(path.Field(key), "bool")
		}
		out[key] = b
	}
	return out, nil
}

// decodeInclude implements §4.2's decode_include, resolving the §9 open
// question by treating the object branch as a nested find against the
// related model with the {where, select, include, orderBy, skip, take}
// grammar.
func decodeInclude(graph *schema.Graph, model *schema.Model, raw interface{}, path *Path) (map[string]IncludeEntry, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, unexpectedType(path, "object")
	}
	out := make(map[string]IncludeEntry, len(obj))
	for key, v := range obj {
		r, ok := model.RelationsByName[key]
		if !ok {
			return nil, errs.New(errs.UnexpectedInputKey, path.Field(key).String(), "%q is not a relation", key)
		}
		if b, ok := v.(bool); ok {
			out[key] = IncludeEntry{All: b}
			continue
		}
		related, ok := graph.Model(r.Model)
		if !ok {
			return nil, errs.New(errs.InternalServerError, path.Field(key).String(), "relation %q targets unresolved model %q", key, r.Model)
		}
		nested, err := Decode(graph, related, FindMany, v)
		if err != nil {
			return nil, err
		}
		out[key] = IncludeEntry{Nested: nested}
	}
	return out, nil
}

// decodeCreateOrUpdate implements §4.2's decode_create_or_update for scalar
// fields. Only direct scalar assignment is decoded: relation keys are
// accepted and skipped, so nested relation mutations do not appear in the
// result.
func decodeCreateOrUpdate(graph *schema.Graph, model *schema.Model, raw interface{}, path *Path) (map[string]value.Value, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, unexpectedType(path, "object")
	}
	out := make(map[string]value.Value, len(obj))
	for key, v := range obj {
		f, ok := model.Fields[key]
		if !ok {
			if _, ok := model.RelationsByName[key]; ok {
				continue
			}
			return nil, errs.New(errs.UnexpectedInputKey, path.Field(key).String(), "%q is not a field of %s", key, model.Name)
		}
		if f.StoreKind == schema.Calculated {
			return nil, errs.New(errs.UnexpectedInputKey, path.Field(key).String(), "%q is calculated and cannot be written directly", key)
		}
		decoded, err := DecodeValueForFieldType(graph, f.Type, f.Availability == schema.Optional, v, path.Field(key))
		if err != nil {
			return nil, err
		}
		out[key] = decoded
	}
	return out, nil
}
