package schema

// Sort identifies the direction of a single field within an Index.
type Sort uint8

const (
	Asc Sort = iota
	Desc
)

// IndexField is one (field, sort) pair within an ordered Index.
type IndexField struct {
	Field string
	Sort  Sort
}

// Index is an ordered list of fields plus a uniqueness flag. An index is
// addressable by the exact, ordered set of field names it covers, as
// Model.FindUniqueIndex does; the decoder's whereUnique check compares key
// sets without regard to order.
type Index struct {
	Fields []IndexField
	Unique bool
}

// FieldNames returns the ordered field name list, used for addressing.
func (i Index) FieldNames() []string {
	names := make([]string, len(i.Fields))
	for idx, f := range i.Fields {
		names[idx] = f.Field
	}
	return names
}

// MatchesKeySet reports whether keys (in the order given) is exactly the
// index's field list, the rule Model.FindUniqueIndex applies.
func (i Index) MatchesKeySet(keys []string) bool {
	names := i.FieldNames()
	if len(names) != len(keys) {
		return false
	}
	for idx, name := range names {
		if name != keys[idx] {
			return false
		}
	}
	return true
}
