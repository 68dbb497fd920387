package schema

// ModelBuilder is the fluent builder surface for a Model, per §6's schema
// DSL: Model{field(name, ...), relation(name, ...)}.
type ModelBuilder struct {
	model *Model
}

// NewModelBuilder starts building a model with the given name.
func NewModelBuilder(name string) *ModelBuilder {
	return &ModelBuilder{model: newModel(name)}
}

// Field appends a field built by fn, in declaration order.
func (b *ModelBuilder) Field(name string, fn func(*FieldBuilder)) *ModelBuilder {
	fb := NewFieldBuilder(name)
	if fn != nil {
		fn(fb)
	}
	f := fb.Build()
	b.model.OrderedFields = append(b.model.OrderedFields, f)
	b.model.Fields[f.Name] = f
	return b
}

// Relation appends a relation, in declaration order.
func (b *ModelBuilder) Relation(name string, fn func(*RelationBuilder)) *ModelBuilder {
	rb := &RelationBuilder{relation: &Relation{Name: name, Optionality: Required, Multiplicity: One}}
	if fn != nil {
		fn(rb)
	}
	b.model.Relations = append(b.model.Relations, rb.relation)
	return b
}

// Index declares a model-level index over one or more fields.
func (b *ModelBuilder) Index(unique bool, fields ...IndexField) *ModelBuilder {
	b.model.Indexes = append(b.model.Indexes, Index{Fields: fields, Unique: unique})
	return b
}

// Build finalizes the model, computing its derived key sets and validating
// its relations and primary key declaration.
func (b *ModelBuilder) Build() (*Model, error) {
	if err := b.model.build(); err != nil {
		return nil, err
	}
	return b.model, nil
}

// RelationBuilder is the fluent builder surface for a Relation.
type RelationBuilder struct {
	relation *Relation
}

// Fields sets the local field names forming the relation's foreign key.
func (b *RelationBuilder) Fields(names ...string) *RelationBuilder {
	b.relation.Fields = names
	return b
}

// References sets the referenced model's field names the relation's local
// fields point to, one-to-one positional with Fields.
func (b *RelationBuilder) References(names ...string) *RelationBuilder {
	b.relation.References = names
	return b
}

// Model sets the relation's target model name.
func (b *RelationBuilder) Model(name string) *RelationBuilder {
	b.relation.Model = name
	return b
}

// Optional marks the relation as optional.
func (b *RelationBuilder) Optional() *RelationBuilder {
	b.relation.Optionality = Optional
	return b
}

// Many marks the relation as to-many.
func (b *RelationBuilder) Many() *RelationBuilder {
	b.relation.Multiplicity = Many
	return b
}
