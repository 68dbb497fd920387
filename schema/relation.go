package schema

// Multiplicity identifies whether a relation refers to one or many remote
// records.
type Multiplicity uint8

const (
	One Multiplicity = iota
	Many
)

// Relation describes a named reference from this model to another, per §3.
type Relation struct {
	Name         string
	Fields       []string // local field names
	References   []string // remote field names
	Model        string   // remote model name, resolved by name against the Graph
	Optionality  Availability
	Multiplicity Multiplicity
}

// validate checks the relation-level invariants from §3: `fields` and
// `references` have matching lengths, and each named local field exists.
func (r *Relation) validate(m *Model) error {
	if len(r.Fields) != len(r.References) {
		return xoErrf("relation %q: fields and references length mismatch (%d != %d)",
			r.Name, len(r.Fields), len(r.References))
	}
	for _, name := range r.Fields {
		if _, ok := m.Fields[name]; !ok {
			return xoErrf("relation %q: local field %q does not exist on model %q", r.Name, name, m.Name)
		}
	}
	if _, ok := m.Fields[r.Name]; ok {
		return xoErrf("relation %q: name collides with a field on model %q", r.Name, m.Name)
	}
	return nil
}
