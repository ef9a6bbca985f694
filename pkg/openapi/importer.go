package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/model"
)

const (
	extKind            = "x-formstate-kind"
	extLabel           = "x-formstate-label"
	extPlaceholder     = "x-formstate-placeholder"
	extRequiredMessage = "x-formstate-required-message"
	extOptional        = "x-formstate-optional"
	extOrder           = "x-formstate-order"
)

var (
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation carries no usable body.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
	// ErrUnsupportedProperty is returned for properties no field kind covers.
	ErrUnsupportedProperty = errors.New("openapi: unsupported property")
)

var mediaTypes = []string{"application/json", "multipart/form-data", "application/x-www-form-urlencoded"}

// Option configures an Importer.
type Option func(*Importer)

// WithExternalRefs allows $ref values pointing outside the document.
func WithExternalRefs(allow bool) Option {
	return func(i *Importer) {
		i.externalRefs = allow
	}
}

// WithRequiredMessage sets the message generator used for required properties
// that declare no x-formstate-required-message.
func WithRequiredMessage(fn func(label string) string) Option {
	return func(i *Importer) {
		if fn != nil {
			i.requiredMessage = fn
		}
	}
}

// Importer loads OpenAPI documents.
type Importer struct {
	externalRefs    bool
	requiredMessage func(label string) string
}

// New constructs an Importer.
func New(opts ...Option) *Importer {
	i := &Importer{
		requiredMessage: func(label string) string {
			return label + " is required"
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Document is a loaded OpenAPI document.
type Document struct {
	api      *openapi3.T
	importer *Importer
}

// Load parses raw (JSON or YAML) into a Document.
func (i *Importer) Load(ctx context.Context, raw []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.externalRefs,
	}
	api, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return &Document{api: api, importer: i}, nil
}

// Operations lists the ids of operations with a request body, sorted.
// Operations without an operationId are listed as "<method>:<path>".
func (d *Document) Operations() []string {
	var ids []string
	d.eachOperation(func(id string, op *openapi3.Operation) bool {
		if op.RequestBody != nil {
			ids = append(ids, id)
		}
		return true
	})
	sort.Strings(ids)
	return ids
}

// Schema builds the form schema for operationID's request body.
func (d *Document) Schema(operationID string) (model.Schema, error) {
	var found *openapi3.Operation
	d.eachOperation(func(id string, op *openapi3.Operation) bool {
		if id == operationID {
			found = op
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
	}

	body := requestSchema(found.RequestBody)
	if body == nil || len(body.Properties) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRequestBody, operationID)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	type entry struct {
		order int
		field model.FieldDescriptor
	}
	entries := make([]entry, 0, len(body.Properties))
	for name, ref := range body.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		field, err := d.importer.field(name, ref.Value, required[name])
		if err != nil {
			return nil, fmt.Errorf("openapi: operation %s: %w", operationID, err)
		}
		order, ok := intExtension(ref.Value.Extensions, extOrder)
		if !ok {
			order = math.MaxInt
		}
		entries = append(entries, entry{order: order, field: field})
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].order != entries[b].order {
			return entries[a].order < entries[b].order
		}
		return entries[a].field.ID < entries[b].field.ID
	})

	schema := make(model.Schema, 0, len(entries))
	for _, e := range entries {
		schema = append(schema, e.field)
	}
	if err := schema.Check(); err != nil {
		return nil, fmt.Errorf("openapi: operation %s: %w", operationID, err)
	}
	return schema, nil
}

func (d *Document) eachOperation(fn func(id string, op *openapi3.Operation) bool) {
	if d == nil || d.api == nil || d.api.Paths == nil {
		return
	}
	paths := d.api.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for method := range ops {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		for _, method := range methods {
			op := ops[method]
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			if !fn(id, op) {
				return
			}
		}
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func (i *Importer) field(name string, src *openapi3.Schema, required bool) (model.FieldDescriptor, error) {
	kind, err := kindOf(name, src)
	if err != nil {
		return model.FieldDescriptor{}, err
	}

	label := stringExtension(src.Extensions, extLabel)
	if label == "" {
		label = strings.TrimSpace(src.Title)
	}
	if label == "" {
		label = humanize(name)
	}
	placeholder := stringExtension(src.Extensions, extPlaceholder)
	if placeholder == "" {
		if example, ok := src.Example.(string); ok {
			placeholder = example
		}
	}

	field := model.FieldDescriptor{
		ID:             name,
		Kind:           kind,
		Label:          label,
		Placeholder:    placeholder,
		OptionalToggle: boolExtension(src.Extensions, extOptional),
	}

	if kind == model.KindSelect {
		field.Options = enumOptions(src)
	}
	if kind == model.KindNumber {
		if src.Min != nil {
			field.Min = model.NumberBound(*src.Min)
		}
		if src.Max != nil {
			field.Max = model.NumberBound(*src.Max)
		}
	}

	if msg := stringExtension(src.Extensions, extRequiredMessage); msg != "" {
		field = field.WithRequired(msg)
	} else if required {
		field = field.WithRequired(i.requiredMessage(label))
	}
	return field, nil
}

func kindOf(name string, src *openapi3.Schema) (model.FieldKind, error) {
	if raw := stringExtension(src.Extensions, extKind); raw != "" {
		kind, err := model.ParseFieldKind(raw)
		if err != nil {
			return "", fmt.Errorf("property %q: %w", name, err)
		}
		return kind, nil
	}
	if len(src.Enum) > 0 {
		return model.KindSelect, nil
	}

	switch {
	case src.Type.Is(openapi3.TypeString):
		switch strings.ToLower(src.Format) {
		case "email":
			return model.KindEmail, nil
		case "password":
			return model.KindPassword, nil
		case "date", "date-time":
			return model.KindDate, nil
		case "binary":
			return model.KindFile, nil
		default:
			return model.KindText, nil
		}
	case src.Type.Is(openapi3.TypeNumber), src.Type.Is(openapi3.TypeInteger):
		return model.KindNumber, nil
	case src.Type.Is(openapi3.TypeArray):
		if src.Items != nil && src.Items.Value != nil {
			items := src.Items.Value
			if items.Type.Is(openapi3.TypeString) && strings.EqualFold(items.Format, "binary") {
				return model.KindFile, nil
			}
		}
	}
	return "", fmt.Errorf("%w %q (type %v)", ErrUnsupportedProperty, name, typeNames(src.Type))
}

func enumOptions(src *openapi3.Schema) []string {
	values := src.Enum
	if len(values) == 0 && src.Items != nil && src.Items.Value != nil {
		values = src.Items.Value.Enum
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, fmt.Sprint(value))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func typeNames(types *openapi3.Types) []string {
	if types == nil {
		return nil
	}
	return types.Slice()
}

func stringExtension(ext map[string]any, key string) string {
	switch v := ext[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func boolExtension(ext map[string]any, key string) bool {
	switch v := ext[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	case json.RawMessage:
		var b bool
		_ = json.Unmarshal(v, &b)
		return b
	}
	return false
}

func intExtension(ext map[string]any, key string) (int, bool) {
	switch v := ext[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.RawMessage:
		var n float64
		if err := json.Unmarshal(v, &n); err == nil {
			return int(n), true
		}
	}
	return 0, false
}

// humanize turns "product_name" or "productName" into "Product name".
func humanize(name string) string {
	var b strings.Builder
	for idx, r := range name {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && idx > 0:
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return name
	}
	runes := []rune(out)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
