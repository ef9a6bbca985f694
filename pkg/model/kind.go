package model

import (
	"fmt"
	"strings"
)

// FieldKind is the closed set of input kinds a descriptor may declare. It
// drives both the value's semantic type and which validation rules apply.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindEmail    FieldKind = "email"
	KindPassword FieldKind = "password"
	KindNumber   FieldKind = "number"
	KindDate     FieldKind = "date"
	KindFile     FieldKind = "file"
	KindSelect   FieldKind = "select"
)

var allKinds = []FieldKind{
	KindText,
	KindTextarea,
	KindEmail,
	KindPassword,
	KindNumber,
	KindDate,
	KindFile,
	KindSelect,
}

// AllFieldKinds returns every supported kind in declaration order.
func AllFieldKinds() []FieldKind {
	return append([]FieldKind(nil), allKinds...)
}

// Valid reports whether k is one of the supported kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindTextarea, KindEmail, KindPassword, KindNumber, KindDate, KindFile, KindSelect:
		return true
	default:
		return false
	}
}

func (k FieldKind) String() string {
	return string(k)
}

// ParseFieldKind normalises raw (case and surrounding whitespace) and returns
// the matching kind.
func ParseFieldKind(raw string) (FieldKind, error) {
	kind := FieldKind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", fmt.Errorf("model: unknown field kind %q", raw)
	}
	return kind, nil
}

// UnmarshalText lets JSON and YAML decoders reject unknown kinds up front.
func (k *FieldKind) UnmarshalText(text []byte) error {
	kind, err := ParseFieldKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k), nil
}
