// Package activation tracks which optional fields are included in the
// current submission. Only descriptors with OptionalToggle participate; a
// field that is absent from the map or mapped to false is skipped by the
// validation engine.
package activation

import "github.com/goliatone/go-formstate/pkg/model"

// Map holds the activation flag per optional field id.
type Map map[string]bool

// SetActive returns a copy of m with the flag for id set. Deactivation keeps
// an explicit false entry so repeated calls compare equal.
func SetActive(m Map, id string, active bool) Map {
	out := make(Map, len(m)+1)
	for key, value := range m {
		out[key] = value
	}
	out[id] = active
	return out
}

// IsActive reports whether id is explicitly activated.
func IsActive(m Map, id string) bool {
	return m[id]
}

// Prune drops entries for ids that are not optional toggles in schema.
func Prune(m Map, schema model.Schema) Map {
	out := make(Map, len(m))
	for _, field := range schema {
		if !field.OptionalToggle {
			continue
		}
		if value, ok := m[field.ID]; ok {
			out[field.ID] = value
		}
	}
	return out
}

// Included reports whether field takes part in validation and submission:
// always for regular fields, only when activated for optional toggles.
func Included(m Map, field model.FieldDescriptor) bool {
	return !field.OptionalToggle || IsActive(m, field.ID)
}
