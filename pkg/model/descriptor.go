package model

// FieldDescriptor describes one form field. Descriptors are authored by page
// level configuration (see pkg/schemafile) and never mutated in place.
type FieldDescriptor struct {
	ID          string    `json:"id" yaml:"id"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	// UploadLabel is the caption of the picker button for file fields.
	UploadLabel string `json:"uploadLabel,omitempty" yaml:"uploadLabel,omitempty"`
	// RequiredMessage marks the field as required by its presence. The text is
	// what the validation engine reports when the field is empty (and, for
	// email fields, when the address is malformed).
	RequiredMessage *string  `json:"requiredMessage,omitempty" yaml:"requiredMessage,omitempty"`
	Options         []string `json:"options,omitempty" yaml:"options,omitempty"`
	Min             *Bound   `json:"min,omitempty" yaml:"min,omitempty"`
	Max             *Bound   `json:"max,omitempty" yaml:"max,omitempty"`
	// OptionalToggle opts the field into the activation tracker: it is only
	// validated and submitted while activated.
	OptionalToggle bool `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Required reports whether a required message is present.
func (d FieldDescriptor) Required() bool {
	return d.RequiredMessage != nil
}

// Message returns the required message or an empty string.
func (d FieldDescriptor) Message() string {
	if d.RequiredMessage == nil {
		return ""
	}
	return *d.RequiredMessage
}

// WithRequired returns a copy of d carrying msg as its required message.
func (d FieldDescriptor) WithRequired(msg string) FieldDescriptor {
	d.RequiredMessage = &msg
	return d
}

// Clone returns a deep copy of the descriptor.
func (d FieldDescriptor) Clone() FieldDescriptor {
	out := d
	if d.RequiredMessage != nil {
		msg := *d.RequiredMessage
		out.RequiredMessage = &msg
	}
	if d.Options != nil {
		out.Options = append([]string(nil), d.Options...)
	}
	out.Min = d.Min.clone()
	out.Max = d.Max.clone()
	return out
}
