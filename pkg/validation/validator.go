package validation

import (
	"fmt"
	"time"

	"github.com/goliatone/go-formstate/pkg/activation"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/password"
	"github.com/goliatone/go-formstate/pkg/state"
)

const (
	// PasswordID is the field id that receives strength checks.
	PasswordID = "password"
	// ConfirmPasswordID is the field id compared against PasswordID.
	ConfirmPasswordID = "confirmPassword"
)

// Messages holds the fixed messages of the confirm-password rule.
type Messages struct {
	ConfirmPassword  string
	PasswordMismatch string
}

// DefaultMessages returns the English confirm-password messages.
func DefaultMessages() Messages {
	return Messages{
		ConfirmPassword:  "Please confirm your password",
		PasswordMismatch: "Passwords do not match",
	}
}

// Option configures a Validator.
type Option func(*Validator)

// WithPasswordPolicy replaces the strength policy (default password.DefaultPolicy).
func WithPasswordPolicy(policy password.Policy) Option {
	return func(v *Validator) {
		if policy != nil {
			v.policy = policy
		}
	}
}

// WithMessages overrides the confirm-password messages. Empty entries keep
// the defaults.
func WithMessages(messages Messages) Option {
	return func(v *Validator) {
		if messages.ConfirmPassword != "" {
			v.messages.ConfirmPassword = messages.ConfirmPassword
		}
		if messages.PasswordMismatch != "" {
			v.messages.PasswordMismatch = messages.PasswordMismatch
		}
	}
}

// Validator runs validation passes. It holds configuration only, so one
// instance can serve any number of forms.
type Validator struct {
	policy   password.Policy
	messages Messages
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	v := &Validator{
		policy:   password.DefaultPolicy(),
		messages: DefaultMessages(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Validate runs a pass with the default configuration.
func Validate(values state.Values, schema model.Schema, active activation.Map) Result {
	return New().Validate(values, schema, active)
}

// Validate evaluates every field of schema against values.
func (v *Validator) Validate(values state.Values, schema model.Schema, active activation.Map) Result {
	errs := make(ErrorMap)
	signup := schema.Has(ConfirmPasswordID)
	hasPassword := schema.Has(PasswordID)

	for _, field := range schema {
		if !activation.Included(active, field) {
			continue
		}

		value := values[field.ID]
		empty := state.IsEmpty(value)

		if empty && field.Required() {
			errs.add(field.ID, field.Message())
		}

		if field.Kind == model.KindEmail && !empty && field.Required() {
			if !IsValidEmail(stringValue(value)) {
				errs.add(field.ID, field.Message())
			}
		}

		if field.ID == PasswordID && signup && !empty {
			errs.add(field.ID, v.policy.Check(stringValue(value))...)
		}

		if field.ID == ConfirmPasswordID && hasPassword {
			switch {
			case empty:
				errs.add(field.ID, v.messages.ConfirmPassword)
			case stringValue(values[PasswordID]) != stringValue(value):
				errs.add(field.ID, v.messages.PasswordMismatch)
			}
		}
	}

	return Result{Errors: errs, Valid: errs.Valid()}
}

func stringValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case *string:
		if typed == nil {
			return ""
		}
		return *typed
	case time.Time:
		return typed.Format(time.RFC3339)
	default:
		return fmt.Sprint(typed)
	}
}
