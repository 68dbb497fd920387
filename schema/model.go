package schema

// Model has a name, an ordered list of Fields, an ordered list of Relations
// and an ordered list of Indexes, plus the derived key sets computed once
// at build time (§3).
type Model struct {
	Name string

	OrderedFields []*Field
	Fields        map[string]*Field

	Relations     []*Relation
	RelationsByName map[string]*Relation

	Indexes []Index

	// Derived sets, computed by build().
	ScalarKeys         []string
	QueryKeys          []string
	LocalOutputKeys    []string
	RelationOutputKeys []string
}

func newModel(name string) *Model {
	return &Model{
		Name:            name,
		Fields:          map[string]*Field{},
		RelationsByName: map[string]*Relation{},
	}
}

// PrimaryKey returns the ordered list of field names making up the model's
// primary key (single or compound).
func (m *Model) PrimaryKey() []string {
	var keys []string
	for _, f := range m.OrderedFields {
		if f.Primary {
			keys = append(keys, f.Name)
		}
	}
	return keys
}

// FindUniqueIndex returns the unique index whose field set exactly matches
// keys (order sensitive), or nil.
func (m *Model) FindUniqueIndex(keys []string) *Index {
	for i := range m.Indexes {
		if m.Indexes[i].Unique && m.Indexes[i].MatchesKeySet(keys) {
			return &m.Indexes[i]
		}
	}
	return nil
}

func (m *Model) build() error {
	// validate exactly one primary key declaration (single or compound is
	// both fine, zero is not).
	if len(m.PrimaryKey()) == 0 {
		return xoErrf("model %q: must declare exactly one primary key (single or compound)", m.Name)
	}

	m.ScalarKeys = nil
	m.QueryKeys = nil
	m.LocalOutputKeys = nil
	m.RelationOutputKeys = nil

	for _, f := range m.OrderedFields {
		if f.StoreKind == Temp {
			continue
		}
		if f.StoreKind == Embedded || f.StoreKind == LocalKey || f.StoreKind == ForeignKey || f.StoreKind == Calculated {
			m.ScalarKeys = append(m.ScalarKeys, f.Name)
			if f.QueryAbility == Queryable {
				m.QueryKeys = append(m.QueryKeys, f.Name)
			}
		}
		if f.ReadRule == Read {
			m.LocalOutputKeys = append(m.LocalOutputKeys, f.Name)
		}
	}

	for _, r := range m.Relations {
		if err := r.validate(m); err != nil {
			return err
		}
		m.RelationOutputKeys = append(m.RelationOutputKeys, r.Name)
		m.RelationsByName[r.Name] = r
	}

	return nil
}
