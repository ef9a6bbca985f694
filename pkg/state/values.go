package state

import (
	"strings"
	"time"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Values maps field ids to their current value. A nil value is "absent".
// Supported value types are string, time.Time, numbers, bool and
// []model.FileHandle.
type Values map[string]any

// Initialize returns a state whose key set equals the schema's id set, every
// field absent.
func Initialize(schema model.Schema) Values {
	out := make(Values, len(schema))
	for _, field := range schema {
		out[field.ID] = nil
	}
	return out
}

// Set returns a copy of values where id maps to value.
func Set(values Values, id string, value any) Values {
	out := values.Clone()
	out[id] = cloneValue(value)
	return out
}

// Clear returns a copy of values where id is absent again.
func Clear(values Values, id string) Values {
	return Set(values, id, nil)
}

// Rederive reconciles values with a new schema: ids still declared keep their
// value, new ids start absent and ids no longer declared are dropped.
func Rederive(values Values, schema model.Schema) Values {
	out := Initialize(schema)
	for id := range out {
		if value, ok := values[id]; ok {
			out[id] = cloneValue(value)
		}
	}
	return out
}

// Get returns the value stored for id.
func (v Values) Get(id string) (any, bool) {
	value, ok := v[id]
	return value, ok
}

// String returns the value for id as a string; absent or non-string values
// yield "".
func (v Values) String(id string) string {
	if s, ok := v[id].(string); ok {
		return s
	}
	return ""
}

// Files returns the file selection stored for id.
func (v Values) Files(id string) []model.FileHandle {
	files, _ := v[id].([]model.FileHandle)
	return files
}

// Clone returns a copy; file selections are copied as well so the snapshot
// does not alias the live state.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for id, value := range v {
		out[id] = cloneValue(value)
	}
	return out
}

// IsEmpty reports whether a value counts as empty for the required rule:
// absent, a string that is blank after trimming, an empty sequence, or the
// zero time.
func IsEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case *string:
		return typed == nil || strings.TrimSpace(*typed) == ""
	case []model.FileHandle:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case []any:
		return len(typed) == 0
	case time.Time:
		return typed.IsZero()
	case *time.Time:
		return typed == nil || typed.IsZero()
	default:
		return false
	}
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case []model.FileHandle:
		if typed == nil {
			return typed
		}
		return append([]model.FileHandle{}, typed...)
	case []string:
		if typed == nil {
			return typed
		}
		return append([]string{}, typed...)
	case []any:
		if typed == nil {
			return typed
		}
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return typed
	}
}
