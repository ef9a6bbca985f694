package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
	"github.com/goliatone/go-formstate/pkg/schemafile"
	"github.com/goliatone/go-formstate/pkg/submit"
	"github.com/goliatone/go-formstate/pkg/validation"
)

const defaultRendererName = "html"

// ErrFormNotFound is returned when a request names a form the store lacks.
var ErrFormNotFound = errors.New("orchestrator: form not found")

// Option customises the orchestrator.
type Option func(*Orchestrator)

// WithSchemaFS loads form documents from fsys instead of the embedded
// storefront set.
func WithSchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.schemaFS = fsys
	}
}

// WithStore injects an already loaded store.
func WithStore(store *schemafile.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithImporter injects the OpenAPI importer.
func WithImporter(importer *openapi.Importer) Option {
	return func(o *Orchestrator) {
		if importer != nil {
			o.importer = importer
		}
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.defaultRenderer = name
		}
	}
}

// WithValidator sets the validation engine handed to every built form.
func WithValidator(v *validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = v
	}
}

// WithSubmitter sets the submitter handed to every built form.
func WithSubmitter(s submit.Submitter) Option {
	return func(o *Orchestrator) {
		o.submitter = s
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates schema resolution, form construction and
// rendering. Missing collaborators default to the built-in implementations.
type Orchestrator struct {
	schemaFS        fs.FS
	store           *schemafile.Store
	importer        *openapi.Importer
	registry        *render.Registry
	defaultRenderer string
	validator       *validation.Validator
	submitter       submit.Submitter
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator. Initialisation errors (bad schema
// documents, template failures) surface on first use.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.importer == nil {
		o.importer = openapi.New()
	}
	if o.validator == nil {
		o.validator = validation.New()
	}
	if o.store == nil {
		var err error
		if o.schemaFS != nil {
			o.store, err = schemafile.LoadFS(o.schemaFS)
		} else {
			o.store, err = schemafile.Default()
		}
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load schemas: %w", err)
			return
		}
	}
	if o.registry == nil {
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: configure html renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.registry = registry
	}
}

// Request describes which schema to use and how to render it.
type Request struct {
	// Form names a form in the schema store. Ignored when OpenAPI is set.
	Form string

	// OpenAPI carries a raw OpenAPI document; OperationID selects the
	// operation whose request body becomes the schema.
	OpenAPI     []byte
	OperationID string

	// Options fills select fields whose options are not part of the schema,
	// keyed by field id.
	Options map[string][]string

	// Values prefills the form.
	Values map[string]any

	// Renderer names the renderer; empty selects the default.
	Renderer string

	// RenderOptions is passed to the renderer untouched except that Title and
	// SubmitLabel default to the schema document's values.
	RenderOptions render.Options
}

// Store returns the schema store in use.
func (o *Orchestrator) Store() (*schemafile.Store, error) {
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}
	return o.store, nil
}

// Registry returns the renderer registry in use.
func (o *Orchestrator) Registry() (*render.Registry, error) {
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}
	return o.registry, nil
}

// Build resolves the request's schema and returns a ready Form together with
// the render options completed from the schema document.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*form.Form, render.Options, error) {
	if ctx == nil {
		return nil, render.Options{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, render.Options{}, err
	}
	if o.initialiseErr != nil {
		return nil, render.Options{}, o.initialiseErr
	}

	name, schema, opts, err := o.resolveSchema(ctx, req)
	if err != nil {
		return nil, render.Options{}, err
	}

	ids := make([]string, 0, len(req.Options))
	for id := range req.Options {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		schema, err = schema.WithOptions(id, req.Options[id])
		if err != nil {
			return nil, render.Options{}, fmt.Errorf("orchestrator: options for %s: %w", id, err)
		}
	}

	f, err := form.New(schema,
		form.WithName(name),
		form.WithValidator(o.validator),
		form.WithSubmitter(o.submitter),
		form.WithLogger(o.logger.With(zap.String("form", name))),
		form.WithValues(req.Values),
	)
	if err != nil {
		return nil, render.Options{}, fmt.Errorf("orchestrator: build form: %w", err)
	}
	o.logger.Debug("form built", zap.String("form", name), zap.Int("fields", len(schema)))
	return f, opts, nil
}

// Generate builds the form and renders it with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	f, opts, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	name := req.Renderer
	if name == "" {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	out, err := renderer.Render(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render: %w", err)
	}
	return out, nil
}

func (o *Orchestrator) resolveSchema(ctx context.Context, req Request) (string, model.Schema, render.Options, error) {
	opts := req.RenderOptions

	if len(req.OpenAPI) > 0 {
		if req.OperationID == "" {
			return "", nil, opts, errors.New("orchestrator: operation id is required")
		}
		doc, err := o.importer.Load(ctx, req.OpenAPI)
		if err != nil {
			return "", nil, opts, fmt.Errorf("orchestrator: %w", err)
		}
		schema, err := doc.Schema(req.OperationID)
		if err != nil {
			return "", nil, opts, fmt.Errorf("orchestrator: %w", err)
		}
		return req.OperationID, schema, opts, nil
	}

	if req.Form == "" {
		return "", nil, opts, errors.New("orchestrator: form name is required")
	}
	def, ok := o.store.Form(req.Form)
	if !ok {
		return "", nil, opts, fmt.Errorf("%w: %s", ErrFormNotFound, req.Form)
	}
	if opts.Title == "" {
		opts.Title = def.Title
	}
	if opts.SubmitLabel == "" {
		opts.SubmitLabel = def.SubmitLabel
	}
	return def.Name, def.Schema, opts, nil
}
