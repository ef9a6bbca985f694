package form

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/submit"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Option configures a Form.
type Option func(*Form)

// WithName labels the form in logs and submission snapshots.
func WithName(name string) Option {
	return func(f *Form) {
		f.name = name
	}
}

// WithValidator injects a configured validation engine.
func WithValidator(v *validation.Validator) Option {
	return func(f *Form) {
		if v != nil {
			f.validator = v
		}
	}
}

// WithSubmitter sets the collaborator that receives snapshots on Submit.
func WithSubmitter(s submit.Submitter) Option {
	return func(f *Form) {
		f.submitter = s
	}
}

// WithLogger sets the structured logger. Forms log nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithValues prefills the initial state (for example a profile edit page).
// Ids the schema does not declare are ignored. Reset returns to these values.
func WithValues(values map[string]any) Option {
	return func(f *Form) {
		if len(values) == 0 {
			return
		}
		if f.prefill == nil {
			f.prefill = make(map[string]any, len(values))
		}
		for id, value := range values {
			f.prefill[id] = value
		}
	}
}
