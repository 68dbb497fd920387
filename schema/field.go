package schema

import "github.com/Crackersssss/teo/pipeline"

// Availability marks whether a field must be present on create.
type Availability uint8

const (
	Required Availability = iota
	Optional
)

// Store identifies where a field's value comes from / goes to.
type Store uint8

const (
	// Embedded fields are stored inline on the document/row.
	Embedded Store = iota
	// LocalKey fields hold the local side of a relation's foreign key.
	LocalKey
	// ForeignKey fields hold the name of the field on the other side of a
	// relation owning the key.
	ForeignKey
	// Temp fields are never persisted and are cleared after save.
	Temp
	// Calculated fields are recomputed on every read via on_output and
	// never sent to the connector.
	Calculated
)

// ReadRule controls whether a field is emitted by to_json.
type ReadRule uint8

const (
	Read ReadRule = iota
	NoRead
)

// WriteRule controls whether/when set_value accepts a new value.
type WriteRule uint8

const (
	Write WriteRule = iota
	NoWrite
	WriteOnce
	WriteOnCreate
	WriteNonNull
)

// FieldIndexKind identifies the declared index shape for a field.
type FieldIndexKind uint8

const (
	NoIndex FieldIndexKind = iota
	IndexNormal
	IndexUnique
	CompoundIndex
	CompoundUnique
)

// FieldIndex describes the index (if any) a field participates in.
type FieldIndex struct {
	Kind FieldIndexKind
	Key  string // compound index/unique key grouping fields that share it
}

// QueryAbility controls whether a field may appear in `where`.
type QueryAbility uint8

const (
	Queryable QueryAbility = iota
	Unqueryable
)

// ObjectAssignment controls copy-vs-reference semantics when a field's
// value is an Object/relation.
type ObjectAssignment uint8

const (
	Reference ObjectAssignment = iota
	Copy
)

// Field is the meta information about a single field of a Model, per §3.
type Field struct {
	Name              string
	LocalizedName     string
	Description       string
	Type              FieldType
	Availability      Availability
	StoreKind         Store
	ForeignKeyName    string // set when StoreKind == ForeignKey
	Primary           bool
	ReadRule          ReadRule
	WriteRule         WriteRule
	Index             FieldIndex
	QueryAbility      QueryAbility
	ObjectAssignment  ObjectAssignment
	AssignedByDB      bool
	AutoIncrement     bool
	AuthIdentity      bool
	Default           *Argument
	OnSet             pipeline.Pipeline
	OnSave            pipeline.Pipeline
	OnOutput          pipeline.Pipeline
	Database          *DatabaseType
}

// IsQueryable reports whether the field may be referenced in `where`.
func (f *Field) IsQueryable() bool {
	return f.QueryAbility == Queryable
}
