package schema

import (
	"fmt"
	"strings"
)

// Entity is the full field catalogue of a persistent record type.
type Entity struct {
	name   string
	table  string
	fields []Field
	index  map[string]int
}

// NewEntity declares an entity stored in table with the given fields, in order.
func NewEntity(name, table string, fields ...Field) (*Entity, error) {
	if name == "" {
		return nil, fmt.Errorf("entity name cannot be empty")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("entity %s declares no fields", name)
	}

	e := &Entity{
		name:   name,
		table:  table,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if err := checkField(f); err != nil {
			return nil, fmt.Errorf("entity %s: %w", name, err)
		}
		if _, dup := e.index[f.Name]; dup {
			return nil, fmt.Errorf("entity %s: field %q declared twice", name, f.Name)
		}
		e.index[f.Name] = len(e.fields)
		e.fields = append(e.fields, f.clone())
	}

	return e, nil
}

// MustEntity is like NewEntity but panics on an invalid declaration.
// Intended for package-level entity definitions.
func MustEntity(name, table string, fields ...Field) *Entity {
	e, err := NewEntity(name, table, fields...)
	if err != nil {
		panic(err)
	}
	return e
}

func checkField(f Field) error {
	if f.Name == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	if _, ok := kindNames[f.Kind]; !ok {
		return fmt.Errorf("field %q has unknown kind %d", f.Name, int(f.Kind))
	}
	if f.MaxLength < 0 {
		return fmt.Errorf("field %q has negative max length", f.Name)
	}
	switch f.Kind {
	case KindEnum:
		if len(f.Enum) == 0 {
			return fmt.Errorf("enum field %q has no values", f.Name)
		}
		for _, v := range f.Enum {
			if strings.Contains(v, "'") {
				return fmt.Errorf("enum field %q value %q contains a single quote", f.Name, v)
			}
		}
		if f.MaxLength > 0 {
			for _, v := range f.Enum {
				if runeLen(v) > f.MaxLength {
					return fmt.Errorf("enum field %q value %q exceeds max length %d", f.Name, v, f.MaxLength)
				}
			}
		}
	case KindDecimal:
		if f.Digits <= 0 || f.Places < 0 || f.Places > f.Digits {
			return fmt.Errorf("decimal field %q has invalid precision (%d,%d)", f.Name, f.Digits, f.Places)
		}
	case KindReference:
		if f.References == "" {
			return fmt.Errorf("reference field %q has no target entity", f.Name)
		}
	}
	return nil
}

// Name returns the entity name.
func (e *Entity) Name() string { return e.name }

// Table returns the storage table of the entity.
func (e *Entity) Table() string { return e.table }

// Fields returns a copy of the field catalogue in declaration order.
func (e *Entity) Fields() []Field {
	out := make([]Field, len(e.fields))
	for i, f := range e.fields {
		out[i] = f.clone()
	}
	return out
}

// FieldNames returns the field names in declaration order.
func (e *Entity) FieldNames() []string {
	names := make([]string, len(e.fields))
	for i, f := range e.fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by name.
func (e *Entity) Field(name string) (Field, bool) {
	i, ok := e.index[name]
	if !ok {
		return Field{}, false
	}
	return e.fields[i].clone(), true
}

// position returns the 1-based declaration position of a field.
func (e *Entity) position(name string) int {
	return e.index[name] + 1
}
