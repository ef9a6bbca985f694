package render

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Renderer turns a form view into a byte representation (HTML, plain text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, opts Options) ([]byte, error)
}

// Options carry per-request data that is not part of the form state.
type Options struct {
	Title       string
	Action      string
	Method      string
	SubmitLabel string
	Hidden      []HiddenField
}

// HiddenField is an extra hidden input emitted with the form, such as a CSRF
// token.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken builds the hidden field carrying a CSRF token. Callers pick the
// input name their backend expects ("_csrf", "csrf_token").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// SortedHidden drops unnamed entries and sorts by name; the last value wins
// for repeated names.
func SortedHidden(fields []HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		byName[name] = field.Value
	}
	if len(byName) == 0 {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: byName[name]})
	}
	return out
}
