// Package html renders forms server-side with pongo2 templates. Author text
// (labels, placeholders, upload labels, titles) passes through a bluemonday
// policy; field values and messages are escaped by the template engine.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
)

// Option configures the HTML renderer.
type Option func(*config)

type config struct {
	templates fs.FS
	entry     string
	policy    *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithEntryTemplate names the template executed by Render.
func WithEntryTemplate(name string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(name) != "" {
			cfg.entry = strings.TrimSpace(name)
		}
	}
}

// WithPolicy replaces the sanitiser applied to author text.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	template *pongo2.Template
	policy   *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New compiles the entry template once.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templates: TemplatesFS(),
		entry:     FormTemplate,
		policy:    TextPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	set := pongo2.NewSet("formstate", pongo2.NewFSLoader(cfg.templates))
	tmpl, err := set.FromFile(cfg.entry)
	if err != nil {
		return nil, fmt.Errorf("html renderer: load template %q: %w", cfg.entry, err)
	}
	return &Renderer{template: tmpl, policy: cfg.policy}, nil
}

// TextPolicy allows inline emphasis only. Everything else, including script
// content, is removed.
func TextPolicy() *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	policy.AllowElements("strong", "em", "b", "i", "small", "br")
	return policy
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws every field of view. Errors appear only for touched fields and
// the submit button is disabled while the form has errors.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.Options) ([]byte, error) {
	if r == nil || r.template == nil {
		return nil, errors.New("html renderer: template is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	specs, err := render.DispatchAll(view)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	fields := make([]fieldView, 0, len(specs))
	multipart := false
	for _, spec := range specs {
		fields = append(fields, r.fieldView(spec))
		if spec.Control == render.ControlFileUpload {
			multipart = true
		}
	}

	method := strings.ToLower(strings.TrimSpace(opts.Method))
	if method == "" {
		method = "post"
	}
	submitLabel := strings.TrimSpace(opts.SubmitLabel)
	if submitLabel == "" {
		submitLabel = "Submit"
	}

	out, err := r.template.ExecuteBytes(pongo2.Context{
		"title":       r.clean(opts.Title),
		"action":      strings.TrimSpace(opts.Action),
		"method":      method,
		"multipart":   multipart,
		"hidden":      render.SortedHidden(opts.Hidden),
		"fields":      fields,
		"valid":       isValid(view),
		"submitLabel": r.clean(submitLabel),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: execute: %w", err)
	}
	return out, nil
}

func (r *Renderer) clean(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(r.policy.Sanitize(text))
}

// isValid asks the view for its overall validity when it exposes one;
// otherwise no errors on any field counts as valid.
func isValid(view render.View) bool {
	if v, ok := view.(interface{ Valid() bool }); ok {
		return v.Valid()
	}
	for _, field := range view.Schema() {
		if len(view.VisibleErrors(field.ID)) > 0 {
			return false
		}
	}
	return true
}

// fieldView flattens a ControlSpec into plain strings; template comparisons
// do not see through named string types.
type fieldView struct {
	ID          string
	Control     string
	InputType   string
	Label       string
	Placeholder string
	UploadLabel string
	Value       string
	Files       []model.FileHandle
	Options     []string
	Min         string
	Max         string
	Toggle      bool
	Active      bool
	Disabled    bool
	ShowErrors  bool
	Errors      []string
}

func (r *Renderer) fieldView(spec render.ControlSpec) fieldView {
	return fieldView{
		ID:          spec.ID,
		Control:     string(spec.Control),
		InputType:   spec.InputType,
		Label:       r.clean(spec.Label),
		Placeholder: r.clean(spec.Placeholder),
		UploadLabel: r.clean(spec.UploadLabel),
		Value:       spec.Value,
		Files:       spec.Files,
		Options:     spec.Options,
		Min:         spec.Min,
		Max:         spec.Max,
		Toggle:      spec.Toggle,
		Active:      spec.Active,
		Disabled:    spec.Disabled,
		ShowErrors:  spec.ShowErrors,
		Errors:      spec.Errors,
	}
}
