package validation

import "sort"

// ErrorMap maps field ids to ordered violation messages. Only fields with at
// least one message have an entry.
type ErrorMap map[string][]string

// For returns the messages for id (nil when the field is valid).
func (m ErrorMap) For(id string) []string {
	if len(m) == 0 {
		return nil
	}
	return m[id]
}

// Has reports whether id has at least one message.
func (m ErrorMap) Has(id string) bool {
	return len(m.For(id)) > 0
}

// Valid reports whether no field carries a message.
func (m ErrorMap) Valid() bool {
	for _, messages := range m {
		if len(messages) > 0 {
			return false
		}
	}
	return true
}

// Fields returns the ids with messages, sorted for stable output.
func (m ErrorMap) Fields() []string {
	ids := make([]string, 0, len(m))
	for id, messages := range m {
		if len(messages) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for id, messages := range m {
		out[id] = append([]string(nil), messages...)
	}
	return out
}

func (m ErrorMap) add(id string, messages ...string) {
	if len(messages) == 0 {
		return
	}
	m[id] = append(m[id], messages...)
}

// Result is the outcome of one validation pass.
type Result struct {
	Errors ErrorMap `json:"errors"`
	Valid  bool     `json:"valid"`
}
