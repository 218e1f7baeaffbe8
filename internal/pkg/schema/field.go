// Package schema describes persistent entities as field catalogues and derives
// restricted-field views of them for validating API input and shaping API output.
//
// An Entity is declared once at start-up from Field values. Derive and
// DeriveInput then produce named Schema variants that keep the entity's field
// order, names, kinds and constraints; derivation only removes fields.
package schema

import "fmt"

// Kind is the value type of a field.
type Kind int

const (
	KindInt Kind = iota + 1
	KindString
	KindText
	KindBool
	KindDecimal
	KindDate
	KindTimestamp
	KindEnum
	KindReference
)

var kindNames = map[Kind]string{
	KindInt:       "int",
	KindString:    "string",
	KindText:      "text",
	KindBool:      "bool",
	KindDecimal:   "decimal",
	KindDate:      "date",
	KindTimestamp: "timestamp",
	KindEnum:      "enum",
	KindReference: "reference",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field declares one column of an entity and the constraints on its values.
type Field struct {
	Name string
	Kind Kind

	// MaxLength bounds string, text and enum values in characters. Zero means unbounded.
	MaxLength int

	// Digits and Places describe decimal precision: Digits significant digits,
	// Places of them after the decimal point.
	Digits int
	Places int

	PrimaryKey bool
	Unique     bool
	Indexed    bool
	Nullable   bool

	// ReadOnly marks values the system populates itself (identity, computed
	// values, creation timestamps). DeriveInput drops them.
	ReadOnly bool

	// Default is the documented default applied on write, empty when none.
	Default string

	// Enum lists the permitted values of a KindEnum field.
	Enum []string

	// References names the target entity of a KindReference field.
	References string
}

// ID declares an integer primary key generated by the storage layer.
func ID(name string) Field {
	return Field{Name: name, Kind: KindInt, PrimaryKey: true, Indexed: true, ReadOnly: true}
}

// Int declares an integer field.
func Int(name string) Field {
	return Field{Name: name, Kind: KindInt}
}

// Char declares a bounded string field.
func Char(name string, maxLength int) Field {
	return Field{Name: name, Kind: KindString, MaxLength: maxLength}
}

// Text declares an unbounded string field.
func Text(name string) Field {
	return Field{Name: name, Kind: KindText}
}

// Bool declares a boolean field.
func Bool(name string) Field {
	return Field{Name: name, Kind: KindBool}
}

// Decimal declares a fixed-point field with the given precision.
func Decimal(name string, digits, places int) Field {
	return Field{Name: name, Kind: KindDecimal, Digits: digits, Places: places}
}

// Date declares a calendar date field.
func Date(name string) Field {
	return Field{Name: name, Kind: KindDate}
}

// Timestamp declares an instant-in-time field.
func Timestamp(name string) Field {
	return Field{Name: name, Kind: KindTimestamp}
}

// Enum declares a string field restricted to a closed set of values.
func Enum(name string, maxLength int, values ...string) Field {
	return Field{Name: name, Kind: KindEnum, MaxLength: maxLength, Enum: append([]string(nil), values...)}
}

// ForeignKey declares a reference to the identity of another entity.
func ForeignKey(name, entity string) Field {
	return Field{Name: name, Kind: KindReference, Indexed: true, References: entity}
}

// AsUnique returns a copy of f with a uniqueness constraint.
func (f Field) AsUnique() Field {
	f.Unique = true
	f.Indexed = true
	return f
}

// AsIndexed returns a copy of f marked for lookup.
func (f Field) AsIndexed() Field {
	f.Indexed = true
	return f
}

// AsNullable returns a copy of f that accepts null.
func (f Field) AsNullable() Field {
	f.Nullable = true
	return f
}

// AsReadOnly returns a copy of f populated by the system.
func (f Field) AsReadOnly() Field {
	f.ReadOnly = true
	return f
}

// WithDefault returns a copy of f with a default applied on write.
func (f Field) WithDefault(value string) Field {
	f.Default = value
	return f
}

// Required reports whether an input payload must carry the field.
func (f Field) Required() bool {
	return !f.Nullable && f.Default == "" && !f.ReadOnly
}

func (f Field) clone() Field {
	f.Enum = append([]string(nil), f.Enum...)
	return f
}
