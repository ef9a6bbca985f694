package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFieldNotFound is returned when a schema lookup misses.
	ErrFieldNotFound = errors.New("model: field not found")
	// ErrNotSelect is returned when options are assigned to a non-select field.
	ErrNotSelect = errors.New("model: field is not a select")
)

// Schema is the ordered list of descriptors for one form. Order is the
// evaluation order of the validation engine and the render order.
type Schema []FieldDescriptor

// IDs returns the field ids in schema order.
func (s Schema) IDs() []string {
	ids := make([]string, 0, len(s))
	for _, field := range s {
		ids = append(ids, field.ID)
	}
	return ids
}

// Lookup returns the descriptor with the given id.
func (s Schema) Lookup(id string) (FieldDescriptor, bool) {
	for _, field := range s {
		if field.ID == id {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// Has reports whether the schema declares id.
func (s Schema) Has(id string) bool {
	_, ok := s.Lookup(id)
	return ok
}

// Clone returns a deep copy.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	for i, field := range s {
		out[i] = field.Clone()
	}
	return out
}

// WithOptions returns a copy of the schema where the select field id carries
// the provided options.
func (s Schema) WithOptions(id string, options []string) (Schema, error) {
	out := s.Clone()
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if out[i].Kind != KindSelect {
			return nil, fmt.Errorf("%w: %s", ErrNotSelect, id)
		}
		out[i].Options = append([]string(nil), options...)
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, id)
}

// Check reports authoring mistakes: empty or duplicate ids, unknown kinds and
// options declared on non-select fields. The validation engine does not call
// it; loaders do.
func (s Schema) Check() error {
	var problems []string
	seen := make(map[string]struct{}, len(s))
	for idx, field := range s {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			problems = append(problems, fmt.Sprintf("field %d has an empty id", idx))
			continue
		}
		if _, dup := seen[id]; dup {
			problems = append(problems, fmt.Sprintf("duplicate field id %q", id))
		}
		seen[id] = struct{}{}
		if !field.Kind.Valid() {
			problems = append(problems, fmt.Sprintf("field %q has unknown kind %q", id, field.Kind))
		}
		if len(field.Options) > 0 && field.Kind != KindSelect {
			problems = append(problems, fmt.Sprintf("field %q declares options but is %s", id, field.Kind))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("model: invalid schema: %s", strings.Join(problems, "; "))
}
