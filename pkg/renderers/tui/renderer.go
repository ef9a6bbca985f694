package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/submit"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Editable is a view that also accepts input. *form.Form satisfies it.
type Editable interface {
	render.View
	SetField(id string, value any) error
	SetActive(id string, active bool) error
	Snapshot() submit.Snapshot
}

// Renderer fills forms interactively in a terminal.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	stat         StatFunc
	maxAttempts  int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a terminal renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       NewSurveyDriver(),
		outputFormat: OutputFormatJSON,
		stat:         statFile,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the format Render produces.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render fills view (which must be Editable) and serialises the resulting
// submission snapshot.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.Options) ([]byte, error) {
	target, ok := view.(Editable)
	if !ok {
		return nil, ErrNotEditable
	}
	if title := strings.TrimSpace(opts.Title); title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+title); err != nil {
			return nil, err
		}
	}
	if err := r.Fill(ctx, target); err != nil {
		return nil, err
	}
	return r.serialize(target.Snapshot())
}

// Fill walks the schema in order, prompting for every field and writing each
// answer through the form. A field is re-prompted while it shows errors.
func (r *Renderer) Fill(ctx context.Context, target Editable) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if r.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}
	for _, field := range target.Schema() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.fillField(ctx, target, field); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) fillField(ctx context.Context, target Editable, field model.FieldDescriptor) error {
	if field.OptionalToggle {
		include, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Include %s?", displayLabel(field)),
			Default: target.Active(field.ID),
		})
		if err != nil {
			return err
		}
		if err := target.SetActive(field.ID, include); err != nil {
			return err
		}
		if !include {
			return nil
		}
	}

	for attempt := 1; ; attempt++ {
		value, err := r.ask(ctx, target, field)
		if err != nil {
			var invalid *inputError
			if errors.As(err, &invalid) {
				if infoErr := r.driver.Info(ctx, r.theme.ErrorPrefix+invalid.Error()); infoErr != nil {
					return infoErr
				}
				if r.exhausted(attempt) {
					return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.ID)
				}
				continue
			}
			return err
		}

		if err := target.SetField(field.ID, value); err != nil {
			return err
		}
		messages := target.VisibleErrors(field.ID)
		if len(messages) == 0 {
			return nil
		}
		for _, msg := range messages {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
				return err
			}
		}
		if r.exhausted(attempt) {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.ID)
		}
		if passwordMismatch(target, field) {
			// Re-enter the password before the next confirmation.
			password, _ := target.Schema().Lookup(validation.PasswordID)
			if err := r.fillField(ctx, target, password); err != nil {
				return err
			}
		}
	}
}

// passwordMismatch reports whether field is a filled confirmation that
// differs from the password.
func passwordMismatch(target Editable, field model.FieldDescriptor) bool {
	if field.ID != validation.ConfirmPasswordID {
		return false
	}
	if !target.Schema().Has(validation.PasswordID) {
		return false
	}
	confirm := render.BindValue(target.Value(field.ID))
	return strings.TrimSpace(confirm) != "" && confirm != render.BindValue(target.Value(validation.PasswordID))
}

func (r *Renderer) exhausted(attempt int) bool {
	return r.maxAttempts > 0 && attempt >= r.maxAttempts
}

func (r *Renderer) ask(ctx context.Context, view render.View, field model.FieldDescriptor) (any, error) {
	spec, err := render.Dispatch(field, view)
	if err != nil {
		return nil, err
	}
	label := displayLabel(field)

	switch field.Kind {
	case model.KindPassword:
		return r.driver.Password(ctx, InputConfig{Message: label, Help: spec.Placeholder})
	case model.KindTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: spec.Value, Help: spec.Placeholder})
	case model.KindSelect:
		return r.askSelect(ctx, spec, label)
	case model.KindNumber:
		raw, err := r.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   spec.Value,
			Help:      boundsHelp(spec),
			Validator: checkParse(parseNumber),
		})
		if err != nil {
			return nil, err
		}
		return parseNumber(raw)
	case model.KindDate:
		raw, err := r.driver.Input(ctx, InputConfig{
			Message:   label + " (YYYY-MM-DD)",
			Default:   spec.Value,
			Help:      boundsHelp(spec),
			Validator: checkParse(parseDate),
		})
		if err != nil {
			return nil, err
		}
		return parseDate(raw)
	case model.KindFile:
		help := spec.UploadLabel
		if help == "" {
			help = "Comma separated file paths"
		}
		raw, err := r.driver.Input(ctx, InputConfig{Message: label, Help: help})
		if err != nil {
			return nil, err
		}
		return r.parseFiles(raw)
	default:
		return r.driver.Input(ctx, InputConfig{Message: label, Default: spec.Value, Help: spec.Placeholder})
	}
}

func (r *Renderer) askSelect(ctx context.Context, spec render.ControlSpec, label string) (any, error) {
	if len(spec.Options) == 0 {
		return r.driver.Input(ctx, InputConfig{Message: label, Default: spec.Value, Help: spec.Placeholder})
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      spec.Options,
		DefaultIndex: indexOf(spec.Options, spec.Value),
		Help:         spec.Placeholder,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(spec.Options) {
		return nil, nil
	}
	return spec.Options[idx], nil
}

func (r *Renderer) parseFiles(raw string) (any, error) {
	var files []model.FileHandle
	for _, part := range strings.Split(raw, ",") {
		path := strings.TrimSpace(part)
		if path == "" {
			continue
		}
		file, err := r.stat(path)
		if err != nil {
			return nil, &inputError{msg: fmt.Sprintf("cannot read %s: %v", path, err)}
		}
		files = append(files, file)
	}
	return files, nil
}

func (r *Renderer) serialize(snapshot submit.Snapshot) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(submit.EncodeForm(snapshot)), nil
	case OutputFormatPrettyText:
		var buf bytes.Buffer
		for _, key := range snapshot.Keys() {
			fmt.Fprintf(&buf, "%s: %s\n", key, prettyValue(snapshot.Values[key]))
		}
		return buf.Bytes(), nil
	default:
		return submit.EncodeJSON(snapshot)
	}
}

type inputError struct {
	msg string
}

func (e *inputError) Error() string {
	return e.msg
}

// checkParse adapts a parser into a prompt validator so drivers that support
// inline validation re-ask before returning.
func checkParse(parse func(string) (any, error)) func(string) error {
	return func(raw string) error {
		_, err := parse(raw)
		return err
	}
}

func parseNumber(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, &inputError{msg: fmt.Sprintf("%q is not a number", trimmed)}
	}
	return value, nil
}

func parseDate(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	value, err := time.Parse(time.DateOnly, trimmed)
	if err != nil {
		return nil, &inputError{msg: fmt.Sprintf("%q is not a date (YYYY-MM-DD)", trimmed)}
	}
	return value, nil
}

func statFile(path string) (model.FileHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.FileHandle{}, err
	}
	if info.IsDir() {
		return model.FileHandle{}, fmt.Errorf("%s is a directory", path)
	}
	return model.FileHandle{
		Name:        info.Name(),
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Path:        path,
	}, nil
}

func displayLabel(field model.FieldDescriptor) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label
	}
	return field.ID
}

func boundsHelp(spec render.ControlSpec) string {
	switch {
	case spec.Min != "" && spec.Max != "":
		return fmt.Sprintf("between %s and %s", spec.Min, spec.Max)
	case spec.Min != "":
		return "at least " + spec.Min
	case spec.Max != "":
		return "at most " + spec.Max
	default:
		return ""
	}
}

func prettyValue(value any) string {
	if files, ok := value.([]model.FileHandle); ok {
		names := make([]string, 0, len(files))
		for _, file := range files {
			names = append(names, file.Name)
		}
		return strings.Join(names, ", ")
	}
	return render.BindValue(value)
}
