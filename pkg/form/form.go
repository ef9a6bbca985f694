package form

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/activation"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/options"
	"github.com/goliatone/go-formstate/pkg/state"
	"github.com/goliatone/go-formstate/pkg/submit"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Form is the stateful engine behind one rendered form.
type Form struct {
	name      string
	schema    model.Schema
	prefill   map[string]any
	initial   state.Values
	values    state.Values
	touched   state.Touched
	active    activation.Map
	result    validation.Result
	validator *validation.Validator
	submitter submit.Submitter
	logger    *zap.Logger
}

// New builds a Form for schema. The schema is copied; later changes go
// through ReplaceSchema or SetOptions.
func New(schema model.Schema, opts ...Option) (*Form, error) {
	if err := schema.Check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	f := &Form{
		validator: validation.New(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}

	f.schema = schema.Clone()
	f.initial = f.initialValues(f.schema)
	f.values = f.initial.Clone()
	f.touched = state.Reset()
	f.active = activation.Map{}
	f.recompute()
	return f, nil
}

// Name returns the configured form name.
func (f *Form) Name() string {
	return f.name
}

// Schema returns a copy of the current schema.
func (f *Form) Schema() model.Schema {
	return f.schema.Clone()
}

// Field returns the descriptor for id.
func (f *Form) Field(id string) (model.FieldDescriptor, bool) {
	return f.schema.Lookup(id)
}

// Values returns a snapshot of every field value.
func (f *Form) Values() state.Values {
	return f.values.Clone()
}

// Value returns a copy of the current value of id (nil when absent or
// unknown). File selections are copied so callers cannot edit state in place.
func (f *Form) Value(id string) any {
	value, ok := f.values[id]
	if !ok {
		return nil
	}
	return state.Values{id: value}.Clone()[id]
}

// Errors returns a copy of the latest error map, touched or not.
func (f *Form) Errors() validation.ErrorMap {
	return f.result.Errors.Clone()
}

// Valid reports whether the latest validation pass found no errors.
func (f *Form) Valid() bool {
	return f.result.Valid
}

// Touched reports whether id was edited since the last reset.
func (f *Form) Touched(id string) bool {
	return f.touched.Is(id)
}

// Active reports whether id takes part in validation and submission.
func (f *Form) Active(id string) bool {
	field, ok := f.schema.Lookup(id)
	if !ok {
		return false
	}
	return activation.Included(f.active, field)
}

// VisibleErrors returns the messages to show for id: nothing until the field
// has been touched.
func (f *Form) VisibleErrors(id string) []string {
	if !f.touched.Is(id) {
		return nil
	}
	return append([]string(nil), f.result.Errors.For(id)...)
}

// SetField stores value for id, marks it touched and revalidates.
func (f *Form) SetField(id string, value any) error {
	field, ok := f.schema.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	if !activation.Included(f.active, field) {
		return fmt.Errorf("%w: %s", ErrFieldInactive, id)
	}

	f.values = state.Set(f.values, id, value)
	f.touched = state.Touch(f.touched, id)
	f.recompute()
	return nil
}

// SetActive toggles an optional field. Deactivating clears its value and its
// touched flag, so it can never show a stale value or message.
func (f *Form) SetActive(id string, active bool) error {
	field, ok := f.schema.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	if !field.OptionalToggle {
		return fmt.Errorf("%w: %s", ErrNotOptional, id)
	}

	f.active = activation.SetActive(f.active, id, active)
	if !active {
		f.values = state.Clear(f.values, id)
		f.touched = state.Untouch(f.touched, id)
	}
	f.recompute()
	return nil
}

// AddFiles appends files to the selection of a file field. Files already
// selected (same name and size) are not added twice.
func (f *Form) AddFiles(id string, files ...model.FileHandle) error {
	current, err := f.fileSelection(id)
	if err != nil {
		return err
	}
	next := append([]model.FileHandle{}, current...)
	for _, file := range files {
		if containsFile(next, file) {
			continue
		}
		next = append(next, file)
	}
	return f.SetField(id, next)
}

// RemoveFile drops file from the selection by identity (name and size),
// never by position.
func (f *Form) RemoveFile(id string, file model.FileHandle) error {
	current, err := f.fileSelection(id)
	if err != nil {
		return err
	}
	next := make([]model.FileHandle, 0, len(current))
	for _, candidate := range current {
		if candidate.SameFile(file) {
			continue
		}
		next = append(next, candidate)
	}
	return f.SetField(id, next)
}

// ReplaceSchema swaps the schema, keeping values of ids that survive. The
// activation map is reset, which also clears optional field values, and the
// error map is recomputed from scratch.
func (f *Form) ReplaceSchema(schema model.Schema) error {
	if err := schema.Check(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	f.schema = schema.Clone()
	f.initial = f.initialValues(f.schema)
	f.values = state.Rederive(f.values, f.schema)
	f.active = activation.Map{}

	touched := state.Reset()
	for _, field := range f.schema {
		if field.OptionalToggle {
			f.values = state.Clear(f.values, field.ID)
			continue
		}
		if f.touched.Is(field.ID) {
			touched = state.Touch(touched, field.ID)
		}
	}
	f.touched = touched

	f.logger.Debug("form schema replaced",
		zap.String("form", f.name),
		zap.Strings("fields", f.schema.IDs()),
	)
	f.recompute()
	return nil
}

// SetOptions replaces the options of a select field (for example after a
// category fetch) and re-derives the form.
func (f *Form) SetOptions(id string, opts []string) error {
	schema, err := f.schema.WithOptions(id, opts)
	if err != nil {
		if errors.Is(err, model.ErrFieldNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownField, id)
		}
		return fmt.Errorf("form: set options: %w", err)
	}
	return f.ReplaceSchema(schema)
}

// LoadOptions fetches options for a select field from src and applies them.
func (f *Form) LoadOptions(ctx context.Context, id string, src options.Source) error {
	if src == nil {
		return errors.New("form: options source is nil")
	}
	opts, err := src.Options(ctx)
	if err != nil {
		f.logger.Warn("form options fetch failed",
			zap.String("form", f.name),
			zap.String("field", id),
			zap.Error(err),
		)
		return fmt.Errorf("form: load options for %s: %w", id, err)
	}
	return f.SetOptions(id, opts)
}

// Reset returns the form to its initial values and clears touched and
// activation state.
func (f *Form) Reset() {
	f.values = f.initial.Clone()
	f.touched = state.Reset()
	f.active = activation.Map{}
	f.recompute()
}

// Snapshot returns the values that take part in a submission: every regular
// field plus activated optional fields.
func (f *Form) Snapshot() submit.Snapshot {
	values := make(state.Values, len(f.schema))
	for _, field := range f.schema {
		if !activation.Included(f.active, field) {
			continue
		}
		values[field.ID] = f.values[field.ID]
	}
	return submit.Snapshot{
		Form:   f.name,
		Values: values.Clone(),
	}
}

// Submit hands a snapshot to the configured Submitter. Invalid forms are
// refused with ErrInvalid. On success the form resets; on failure the state
// is kept so the user can retry.
func (f *Form) Submit(ctx context.Context) error {
	if ctx == nil {
		return errors.New("form: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !f.result.Valid {
		f.logger.Warn("form submit rejected",
			zap.String("form", f.name),
			zap.Strings("invalid", f.result.Errors.Fields()),
		)
		return fmt.Errorf("%w: %d field(s)", ErrInvalid, len(f.result.Errors.Fields()))
	}
	if f.submitter == nil {
		return submit.ErrNoSubmitter
	}

	if err := f.submitter.Submit(ctx, f.Snapshot()); err != nil {
		f.logger.Warn("form submit failed", zap.String("form", f.name), zap.Error(err))
		return fmt.Errorf("form: submit: %w", err)
	}

	f.logger.Debug("form submitted", zap.String("form", f.name))
	f.Reset()
	return nil
}

func (f *Form) recompute() {
	f.result = f.validator.Validate(f.values, f.schema, f.active)
	f.logger.Debug("form validated",
		zap.String("form", f.name),
		zap.Bool("valid", f.result.Valid),
		zap.Int("invalid_fields", len(f.result.Errors.Fields())),
	)
}

func (f *Form) initialValues(schema model.Schema) state.Values {
	values := state.Initialize(schema)
	for _, field := range schema {
		if field.OptionalToggle {
			continue
		}
		if value, ok := f.prefill[field.ID]; ok {
			values = state.Set(values, field.ID, value)
		}
	}
	return values
}

func (f *Form) fileSelection(id string) ([]model.FileHandle, error) {
	field, ok := f.schema.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, id)
	}
	if field.Kind != model.KindFile {
		return nil, fmt.Errorf("%w: %s", ErrNotFileField, id)
	}
	return f.values.Files(id), nil
}

func containsFile(files []model.FileHandle, file model.FileHandle) bool {
	for _, candidate := range files {
		if candidate.SameFile(file) {
			return true
		}
	}
	return false
}
