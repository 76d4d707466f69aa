package schema

import (
	c "varsift/api/models/constants"
)

// FieldMetadata is the resolved form of one ##INFO header declaration.
type FieldMetadata struct {
	Id          string
	Arity       c.FieldArity
	ArityCount  int // only meaningful when Arity is FixedCount
	Type        c.FieldType
	Description string

	// SubfieldSchema fixes the positional meaning of every pipe-delimited
	// segment of this field's values, for every row. Nil when the
	// description carries no quoted format hint.
	SubfieldSchema []string
}

func (m FieldMetadata) HasSubfieldSchema() bool {
	return len(m.SubfieldSchema) > 0
}

// SubfieldPosition returns the schema position of a named subfield.
func (m FieldMetadata) SubfieldPosition(name string) (int, bool) {
	for i, subfield := range m.SubfieldSchema {
		if subfield == name {
			return i, true
		}
	}
	return 0, false
}

// VcfHeaderSchema holds every resolved field keyed by id. It is built once
// per header and never mutated afterwards, so it is safe to share across
// goroutines decoding and evaluating different rows.
type VcfHeaderSchema struct {
	fields map[string]FieldMetadata
}

func New(fields map[string]FieldMetadata) *VcfHeaderSchema {
	if fields == nil {
		fields = map[string]FieldMetadata{}
	}
	return &VcfHeaderSchema{fields: fields}
}

func Empty() *VcfHeaderSchema {
	return New(nil)
}

func (s *VcfHeaderSchema) Field(id string) (FieldMetadata, bool) {
	meta, ok := s.fields[id]
	return meta, ok
}

func (s *VcfHeaderSchema) Size() int {
	return len(s.fields)
}
