package schema

// DBKind identifies the physical column shape advised for a relational
// backend. These overrides are advisory: a connector that does not
// understand a particular kind falls back to a default derived from the
// field's FieldType (the mongo-flavored reference connector ignores this
// entirely), per §6 / original_source/src/core/db_type/builder.rs.
type DBKind uint8

const (
	DBTinyInt DBKind = iota
	DBInt
	DBBigInt
	DBChar
	DBVarChar
	DBText
	DBTimestamp
	DBReal
	DBDouble
	DBFloat
	DBDate
)

// DatabaseType is the advisory physical column type override for a field.
type DatabaseType struct {
	kind DBKind

	Unsigned bool // Tiny/Int/BigInt

	Length    int // Char/VarChar
	Charset   string
	Collation string

	FSP          int // Timestamp fractional seconds precision
	WithTimezone bool

	Precision int // Real/Double/Float
}

// DBKind returns the physical column shape this override advises.
func (d *DatabaseType) DBKind() DBKind { return d.kind }

// TinyInt builds an advisory TINYINT column type.
func TinyInt() *DatabaseType { return &DatabaseType{kind: DBTinyInt} }

// Int builds an advisory INT column type.
func Int() *DatabaseType { return &DatabaseType{kind: DBInt} }

// BigInt builds an advisory BIGINT column type.
func BigInt() *DatabaseType { return &DatabaseType{kind: DBBigInt} }

// SetUnsigned marks an integer column type as unsigned.
func (d *DatabaseType) SetUnsigned() *DatabaseType {
	d.Unsigned = true
	return d
}

// Char builds an advisory fixed-length CHAR(length) column type.
func Char(length int) *DatabaseType { return &DatabaseType{kind: DBChar, Length: length} }

// VarChar builds an advisory VARCHAR(length) column type.
func VarChar(length int) *DatabaseType { return &DatabaseType{kind: DBVarChar, Length: length} }

// Text builds an advisory TEXT column type.
func Text() *DatabaseType { return &DatabaseType{kind: DBText} }

// SetCharset sets the character set on a Char/VarChar/Text column type.
func (d *DatabaseType) SetCharset(charset string) *DatabaseType {
	d.Charset = charset
	return d
}

// SetCollation sets the collation on a Char/VarChar/Text column type.
func (d *DatabaseType) SetCollation(collation string) *DatabaseType {
	d.Collation = collation
	return d
}

// Timestamp builds an advisory TIMESTAMP(fsp) column type.
func Timestamp(fsp int) *DatabaseType { return &DatabaseType{kind: DBTimestamp, FSP: fsp} }

// SetWithTimezone marks a timestamp column type as timezone-aware.
func (d *DatabaseType) SetWithTimezone() *DatabaseType {
	d.WithTimezone = true
	return d
}

// Real builds an advisory REAL(precision) column type.
func Real(precision int) *DatabaseType { return &DatabaseType{kind: DBReal, Precision: precision} }

// Double builds an advisory DOUBLE(precision) column type.
func Double(precision int) *DatabaseType { return &DatabaseType{kind: DBDouble, Precision: precision} }

// Float builds an advisory FLOAT(precision) column type.
func Float(precision int) *DatabaseType { return &DatabaseType{kind: DBFloat, Precision: precision} }

// DateColumn builds an advisory DATE column type.
func DateColumn() *DatabaseType { return &DatabaseType{kind: DBDate} }
