package schema

import "github.com/Crackersssss/teo/pipeline"

// FieldBuilder is the fluent builder surface for a Field, grounded in
// original_source/src/core/builders/field_builder.rs and exposed per §6.
type FieldBuilder struct {
	field *Field
}

// NewFieldBuilder starts building a field with the given name, defaulting
// to a required, writable, readable, embedded, queryable scalar.
func NewFieldBuilder(name string) *FieldBuilder {
	return &FieldBuilder{field: &Field{
		Name:         name,
		Availability: Required,
		StoreKind:    Embedded,
		ReadRule:     Read,
		WriteRule:    Write,
		QueryAbility: Queryable,
	}}
}

// LocalizedName sets the field's human-readable label.
func (b *FieldBuilder) LocalizedName(name string) *FieldBuilder {
	b.field.LocalizedName = name
	return b
}

// Description sets the field's documentation string.
func (b *FieldBuilder) Description(desc string) *FieldBuilder {
	b.field.Description = desc
	return b
}

// Type sets the field's FieldType.
func (b *FieldBuilder) Type(t FieldType) *FieldBuilder {
	b.field.Type = t
	return b
}

// Optional marks the field as optional (nullable).
func (b *FieldBuilder) Optional() *FieldBuilder {
	b.field.Availability = Optional
	return b
}

// Primary marks the field as (part of) the model's primary key.
func (b *FieldBuilder) Primary() *FieldBuilder {
	b.field.Primary = true
	return b
}

// Embedded stores the field inline (the default).
func (b *FieldBuilder) Embedded() *FieldBuilder {
	b.field.StoreKind = Embedded
	return b
}

// LocalKey marks the field as holding the local side of a relation key.
func (b *FieldBuilder) LocalKey() *FieldBuilder {
	b.field.StoreKind = LocalKey
	return b
}

// ForeignKey marks the field as holding a remote relation's key, named by
// the owning relation.
func (b *FieldBuilder) ForeignKey(relationName string) *FieldBuilder {
	b.field.StoreKind = ForeignKey
	b.field.ForeignKeyName = relationName
	return b
}

// Temp marks the field as never persisted; it is cleared after save.
func (b *FieldBuilder) Temp() *FieldBuilder {
	b.field.StoreKind = Temp
	return b
}

// Calculated marks the field as recomputed via on_output on every read and
// never sent to the connector.
func (b *FieldBuilder) Calculated() *FieldBuilder {
	b.field.StoreKind = Calculated
	return b
}

// NoRead hides the field from to_json output.
func (b *FieldBuilder) NoRead() *FieldBuilder {
	b.field.ReadRule = NoRead
	return b
}

// NoWrite rejects any set_value on the field.
func (b *FieldBuilder) NoWrite() *FieldBuilder {
	b.field.WriteRule = NoWrite
	return b
}

// WriteOnce allows set_value only while the field has no non-null
// persisted value.
func (b *FieldBuilder) WriteOnce() *FieldBuilder {
	b.field.WriteRule = WriteOnce
	return b
}

// WriteOnCreate allows set_value only while the object is new.
func (b *FieldBuilder) WriteOnCreate() *FieldBuilder {
	b.field.WriteRule = WriteOnCreate
	return b
}

// WriteNonNull rejects Null values on set_value.
func (b *FieldBuilder) WriteNonNull() *FieldBuilder {
	b.field.WriteRule = WriteNonNull
	return b
}

// Index marks the field as covered by a single-field, non-unique index.
func (b *FieldBuilder) Index() *FieldBuilder {
	b.field.Index = FieldIndex{Kind: IndexNormal}
	return b
}

// Unique marks the field as covered by a single-field unique index.
func (b *FieldBuilder) Unique() *FieldBuilder {
	b.field.Index = FieldIndex{Kind: IndexUnique}
	return b
}

// CompoundIndex marks the field as part of a non-unique compound index
// grouped with other fields sharing the same key.
func (b *FieldBuilder) CompoundIndex(key string) *FieldBuilder {
	b.field.Index = FieldIndex{Kind: CompoundIndex, Key: key}
	return b
}

// CompoundUnique marks the field as part of a unique compound index grouped
// with other fields sharing the same key.
func (b *FieldBuilder) CompoundUnique(key string) *FieldBuilder {
	b.field.Index = FieldIndex{Kind: CompoundUnique, Key: key}
	return b
}

// Unqueryable excludes the field from `where`/`orderBy`/`distinct`.
func (b *FieldBuilder) Unqueryable() *FieldBuilder {
	b.field.QueryAbility = Unqueryable
	return b
}

// CopyOnAssign marks relation/object values assigned to this field as
// deep-copied rather than shared by reference.
func (b *FieldBuilder) CopyOnAssign() *FieldBuilder {
	b.field.ObjectAssignment = Copy
	return b
}

// AssignedByDatabase marks the field's value as produced by the storage
// backend (e.g. a server-side default) rather than by pipelines.
func (b *FieldBuilder) AssignedByDatabase() *FieldBuilder {
	b.field.AssignedByDB = true
	return b
}

// AutoIncrement marks the field as backed by a backend-native sequence.
func (b *FieldBuilder) AutoIncrement() *FieldBuilder {
	b.field.AutoIncrement = true
	return b
}

// AuthIdentity marks the field as usable as a SignIn identity (e.g. email).
func (b *FieldBuilder) AuthIdentity() *FieldBuilder {
	b.field.AuthIdentity = true
	return b
}

// Default sets the field's default value provider (a literal, pipeline or
// function Argument).
func (b *FieldBuilder) Default(v *Argument) *FieldBuilder {
	b.field.Default = v
	return b
}

// DefaultByPipeline sets a pipeline-evaluated default value.
func (b *FieldBuilder) DefaultByPipeline(p pipeline.Pipeline) *FieldBuilder {
	b.field.Default = PipelineArgument(p)
	return b
}

// DefaultByFn sets a Go-function default value.
func (b *FieldBuilder) DefaultByFn(fn ArgumentFunc) *FieldBuilder {
	b.field.Default = FunctionArgument(fn)
	return b
}

// OnSet sets the field's on_set pipeline, run by set_value.
func (b *FieldBuilder) OnSet(p pipeline.Pipeline) *FieldBuilder {
	b.field.OnSet = p
	return b
}

// OnSave sets the field's on_save pipeline, run by save.
func (b *FieldBuilder) OnSave(p pipeline.Pipeline) *FieldBuilder {
	b.field.OnSave = p
	return b
}

// OnOutput sets the field's on_output pipeline, run by to_json.
func (b *FieldBuilder) OnOutput(p pipeline.Pipeline) *FieldBuilder {
	b.field.OnOutput = p
	return b
}

// Database sets an advisory physical column type override.
func (b *FieldBuilder) Database(dt *DatabaseType) *FieldBuilder {
	b.field.Database = dt
	return b
}

// Build finalizes and returns the Field.
func (b *FieldBuilder) Build() *Field {
	return b.field
}
