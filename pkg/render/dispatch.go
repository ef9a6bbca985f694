package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formstate/pkg/model"
)

// View is the read-only slice of a form that rendering needs. *form.Form
// satisfies it.
type View interface {
	Schema() model.Schema
	Value(id string) any
	VisibleErrors(id string) []string
	Active(id string) bool
}

// ControlSpec is everything a front end needs to draw one field.
type ControlSpec struct {
	ID          string             `json:"id"`
	Kind        model.FieldKind    `json:"kind"`
	Control     Control            `json:"control"`
	InputType   string             `json:"inputType"`
	Label       string             `json:"label,omitempty"`
	Placeholder string             `json:"placeholder,omitempty"`
	UploadLabel string             `json:"uploadLabel,omitempty"`
	Value       string             `json:"value,omitempty"`
	Files       []model.FileHandle `json:"files,omitempty"`
	Options     []string           `json:"options,omitempty"`
	Min         string             `json:"min,omitempty"`
	Max         string             `json:"max,omitempty"`
	Required    bool               `json:"required,omitempty"`
	// Toggle is set for optional fields; the front end draws an activation
	// checkbox next to the control.
	Toggle     bool     `json:"toggle,omitempty"`
	Active     bool     `json:"active"`
	Disabled   bool     `json:"disabled,omitempty"`
	ShowErrors bool     `json:"showErrors,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// Dispatch builds the ControlSpec for field from the current view.
func Dispatch(field model.FieldDescriptor, view View) (ControlSpec, error) {
	control, err := ControlFor(field.Kind)
	if err != nil {
		return ControlSpec{}, fmt.Errorf("render: field %q: %w", field.ID, err)
	}

	active := view.Active(field.ID)
	spec := ControlSpec{
		ID:          field.ID,
		Kind:        field.Kind,
		Control:     control,
		InputType:   InputType(field.Kind),
		Label:       field.Label,
		Placeholder: field.Placeholder,
		UploadLabel: field.UploadLabel,
		Required:    field.Required(),
		Toggle:      field.OptionalToggle,
		Active:      active,
		Disabled:    field.OptionalToggle && !active,
	}

	value := view.Value(field.ID)
	switch control {
	case ControlFileUpload:
		if files, ok := value.([]model.FileHandle); ok && len(files) > 0 {
			spec.Files = append([]model.FileHandle(nil), files...)
		}
	case ControlDropdown:
		spec.Options = append([]string(nil), field.Options...)
		if strings.TrimSpace(spec.Placeholder) == "" {
			spec.Placeholder = SelectPlaceholder(field.Label)
		}
		spec.Value = BindValue(value)
	default:
		spec.Value = BindValue(value)
	}

	if field.Kind == model.KindNumber || field.Kind == model.KindDate {
		spec.Min = boundString(field.Min)
		spec.Max = boundString(field.Max)
	}

	if errs := view.VisibleErrors(field.ID); len(errs) > 0 {
		spec.ShowErrors = true
		spec.Errors = append([]string(nil), errs...)
	}
	return spec, nil
}

// DispatchAll builds specs for every field in schema order.
func DispatchAll(view View) ([]ControlSpec, error) {
	schema := view.Schema()
	out := make([]ControlSpec, 0, len(schema))
	for _, field := range schema {
		spec, err := Dispatch(field, view)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

// SelectPlaceholder is the placeholder used for selects that declare none.
func SelectPlaceholder(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "Select an option"
	}
	return "Select a " + label
}

// BindValue renders a stored value as the string a control binds to. Absent
// values bind to "".
func BindValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.DateOnly)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(time.DateOnly)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func boundString(b *model.Bound) string {
	if b == nil {
		return ""
	}
	return b.String()
}
