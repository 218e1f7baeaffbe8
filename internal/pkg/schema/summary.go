package schema

// FieldSummary is the serialisable description of one field.
type FieldSummary struct {
	Name       string   `json:"name" yaml:"name"`
	Kind       string   `json:"kind" yaml:"kind"`
	MaxLength  int      `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Digits     int      `json:"digits,omitempty" yaml:"digits,omitempty"`
	Places     int      `json:"places,omitempty" yaml:"places,omitempty"`
	Required   bool     `json:"required" yaml:"required"`
	Unique     bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Indexed    bool     `json:"indexed,omitempty" yaml:"indexed,omitempty"`
	Nullable   bool     `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	ReadOnly   bool     `json:"read_only,omitempty" yaml:"read_only,omitempty"`
	Default    string   `json:"default,omitempty" yaml:"default,omitempty"`
	Enum       []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	References string   `json:"references,omitempty" yaml:"references,omitempty"`
}

// Summary is the serialisable description of a schema variant.
type Summary struct {
	Name   string         `json:"name" yaml:"name"`
	Entity string         `json:"entity" yaml:"entity"`
	Table  string         `json:"table" yaml:"table"`
	Fields []FieldSummary `json:"fields" yaml:"fields"`
}

// Summary describes the schema for API listings and tooling output.
func (s *Schema) Summary() Summary {
	out := Summary{
		Name:   s.name,
		Entity: s.entity.Name(),
		Table:  s.entity.Table(),
		Fields: make([]FieldSummary, len(s.fields)),
	}
	for i, f := range s.fields {
		out.Fields[i] = FieldSummary{
			Name:       f.Name,
			Kind:       f.Kind.String(),
			MaxLength:  f.MaxLength,
			Digits:     f.Digits,
			Places:     f.Places,
			Required:   f.Required(),
			Unique:     f.Unique,
			Indexed:    f.Indexed,
			Nullable:   f.Nullable,
			ReadOnly:   f.ReadOnly,
			Default:    f.Default,
			Enum:       append([]string(nil), f.Enum...),
			References: f.References,
		}
	}
	return out
}
