package schemafile

import (
	"sort"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Form is one loaded form definition.
type Form struct {
	Name           string
	Source         string
	Title          string
	SubmitLabel    string
	SecondaryLabel string
	SuccessMessage string
	ErrorMessage   string
	Schema         model.Schema
}

// Store holds the forms found by LoadFS, keyed by name.
type Store struct {
	forms map[string]Form
}

// Form returns the definition registered under name. The schema is a copy.
func (s *Store) Form(name string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[name]
	if !ok {
		return Form{}, false
	}
	form.Schema = form.Schema.Clone()
	return form, true
}

// Names returns the form names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Title          string      `json:"title" yaml:"title"`
	SubmitLabel    string      `json:"submitLabel" yaml:"submitLabel"`
	SecondaryLabel string      `json:"secondaryLabel" yaml:"secondaryLabel"`
	SuccessMessage string      `json:"successMessage" yaml:"successMessage"`
	ErrorMessage   string      `json:"errorMessage" yaml:"errorMessage"`
	Fields         []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	ID          string     `json:"id" yaml:"id"`
	Kind        string     `json:"kind" yaml:"kind"`
	Label       string     `json:"label" yaml:"label"`
	Placeholder string     `json:"placeholder" yaml:"placeholder"`
	UploadLabel string     `json:"uploadLabel" yaml:"uploadLabel"`
	Required    *string    `json:"required" yaml:"required"`
	Options     []string   `json:"options" yaml:"options"`
	Min         *boundFile `json:"min" yaml:"min"`
	Max         *boundFile `json:"max" yaml:"max"`
	Optional    bool       `json:"optional" yaml:"optional"`
}

type boundFile struct {
	Number   *float64 `json:"number" yaml:"number"`
	Date     string   `json:"date" yaml:"date"`
	YearsAgo *int     `json:"yearsAgo" yaml:"yearsAgo"`
}
