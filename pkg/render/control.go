package render

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrUnknownKind is returned when a descriptor carries a kind with no control.
var ErrUnknownKind = errors.New("render: unknown field kind")

// Control names the widget family drawn for a field.
type Control string

const (
	ControlText       Control = "text"
	ControlTextarea   Control = "textarea"
	ControlCalendar   Control = "calendar"
	ControlDropdown   Control = "dropdown"
	ControlFileUpload Control = "fileUpload"
)

// ControlFor selects the control for kind. Text, email, password and number
// share the single-line text control and differ by input type only.
func ControlFor(kind model.FieldKind) (Control, error) {
	switch kind {
	case model.KindText, model.KindEmail, model.KindPassword, model.KindNumber:
		return ControlText, nil
	case model.KindTextarea:
		return ControlTextarea, nil
	case model.KindDate:
		return ControlCalendar, nil
	case model.KindSelect:
		return ControlDropdown, nil
	case model.KindFile:
		return ControlFileUpload, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// InputType returns the HTML input type used for kind.
func InputType(kind model.FieldKind) string {
	switch kind {
	case model.KindEmail:
		return "email"
	case model.KindPassword:
		return "password"
	case model.KindNumber:
		return "number"
	case model.KindDate:
		return "date"
	case model.KindFile:
		return "file"
	default:
		return "text"
	}
}
