// Package formstate is a schema-driven form engine. A form is described by an
// ordered list of field descriptors; the engine keeps its values, tracks
// which optional fields are switched on, validates after every edit and tells
// renderers which control to draw and which messages to show.
//
// Most callers start with the orchestrator:
//
//	gen := formstate.NewOrchestrator()
//	html, err := gen.Generate(ctx, formstate.Request{Form: "signup"})
//
// or drive a form directly:
//
//	f, err := formstate.NewForm(schema, form.WithSubmitter(api))
//	_ = f.SetField("email", "user@mail.com")
//	err = f.Submit(ctx)
package formstate

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
	"github.com/goliatone/go-formstate/pkg/schemafile"
	"github.com/goliatone/go-formstate/pkg/state"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Schema aliases model.Schema.
type Schema = model.Schema

// FieldDescriptor aliases model.FieldDescriptor.
type FieldDescriptor = model.FieldDescriptor

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the module root.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewForm builds a form engine for schema.
func NewForm(schema Schema, options ...form.Option) (*form.Form, error) {
	return form.New(schema, options...)
}

// NewImporter constructs an OpenAPI importer.
func NewImporter(options ...openapi.Option) *openapi.Importer {
	return openapi.New(options...)
}

// Validate runs one validation pass with the default configuration.
func Validate(values state.Values, schema Schema) validation.Result {
	return validation.Validate(values, schema, nil)
}

// GenerateHTML renders the named form from the embedded storefront schemas.
func GenerateHTML(ctx context.Context, formName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Form: formName})
}

// EmbeddedTemplates exposes the HTML renderer templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// EmbeddedSchemas exposes the bundled storefront form documents.
func EmbeddedSchemas() fs.FS {
	return schemafile.EmbeddedFS()
}
