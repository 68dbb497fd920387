package decode

import "github.com/Crackersssss/teo/value"

// RelationOp is the closed set of relation selectors admissible inside a
// `where` clause, chosen per the target relation's multiplicity (§4.2).
type RelationOp uint8

const (
	RelIs RelationOp = iota
	RelIsNot
	RelSome
	RelEvery
	RelNone
)

// FieldFilter is a field's decoded `where` clause: a map from filter key
// (drawn from the field type's closed Filters() set) to its decoded value.
type FieldFilter struct {
	Filters map[string]value.Value
	Not     *FieldFilter
}

// RelationFilter is a relation's decoded `where` clause.
type RelationFilter struct {
	Op    RelationOp
	Where *Where
}

// Where is the decoded form of a `where` clause: logical connectives plus
// per-field and per-relation filters, all ANDed together at each level.
type Where struct {
	And       []*Where
	Or        []*Where
	Not       *Where
	Fields    map[string]FieldFilter
	Relations map[string]RelationFilter
}

func newWhere() *Where {
	return &Where{Fields: map[string]FieldFilter{}, Relations: map[string]RelationFilter{}}
}
