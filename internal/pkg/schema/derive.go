package schema

import (
	"fmt"
)

// Schema is a named, restricted-field view of an Entity.
type Schema struct {
	name   string
	entity *Entity
	fields []Field
}

// Name returns the variant name, e.g. "UserOut".
func (s *Schema) Name() string { return s.name }

// Entity returns the entity the schema was derived from.
func (s *Schema) Entity() *Entity { return s.entity }

// Fields returns a copy of the included fields in entity order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}
	return out
}

// FieldNames returns the included field names in entity order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the schema includes the named field.
func (s *Schema) Has(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// Field looks up an included field by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.clone(), true
		}
	}
	return Field{}, false
}

// policy collects derivation options.
type policy struct {
	exclude         []string
	excludeReadOnly bool
}

// Option configures a derivation.
type Option func(*policy)

// Exclude removes the named fields from the derived schema.
func Exclude(fields ...string) Option {
	return func(p *policy) {
		p.exclude = append(p.exclude, fields...)
	}
}

// ExcludeReadOnly removes every field the system populates itself.
func ExcludeReadOnly() Option {
	return func(p *policy) {
		p.excludeReadOnly = true
	}
}

// Derive returns a schema named name holding the fields of e that survive opts.
// Excluding a field the entity does not declare is an error.
func Derive(e *Entity, name string, opts ...Option) (*Schema, error) {
	if e == nil {
		return nil, fmt.Errorf("cannot derive %s from nil entity", name)
	}
	if name == "" {
		return nil, fmt.Errorf("derived schema of %s needs a name", e.Name())
	}

	var p policy
	for _, opt := range opts {
		opt(&p)
	}

	excluded := make(map[string]bool, len(p.exclude))
	for _, fieldName := range p.exclude {
		if _, ok := e.index[fieldName]; !ok {
			return nil, fmt.Errorf("derive %s: %w: %s.%s", name, ErrUnknownField, e.Name(), fieldName)
		}
		excluded[fieldName] = true
	}

	fields := make([]Field, 0, len(e.fields))
	for _, f := range e.fields {
		if excluded[f.Name] || (p.excludeReadOnly && f.ReadOnly) {
			continue
		}
		fields = append(fields, f.clone())
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("derive %s: every field of %s was excluded", name, e.Name())
	}

	return &Schema{name: name, entity: e, fields: fields}, nil
}

// DeriveInput derives a schema for validating creation payloads: read-only
// fields are always dropped, opts may drop more.
func DeriveInput(e *Entity, name string, opts ...Option) (*Schema, error) {
	return Derive(e, name, append([]Option{ExcludeReadOnly()}, opts...)...)
}

// MustDerive is like Derive but panics on error. Intended for start-up wiring.
func MustDerive(e *Entity, name string, opts ...Option) *Schema {
	s, err := Derive(e, name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// MustDeriveInput is like DeriveInput but panics on error.
func MustDeriveInput(e *Entity, name string, opts ...Option) *Schema {
	s, err := DeriveInput(e, name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
