package schemafile

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Option configures LoadFS.
type Option func(*loader)

// WithClock sets the clock relative bounds resolve against. Defaults to
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *loader) {
		if now != nil {
			l.now = now
		}
	}
}

type loader struct {
	now func() time.Time
}

// LoadFS walks fsys and parses every JSON/YAML form document. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS, opts ...Option) (*Store, error) {
	l := &loader{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schemafile: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawName, raw := range doc.Forms {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("schemafile: file %s defines a form with an empty name", path)
			}
			if existing, exists := store.forms[name]; exists {
				return fmt.Errorf("schemafile: duplicate form %q (files %s and %s)", name, existing.Source, path)
			}
			form, err := l.normaliseForm(raw, name, path)
			if err != nil {
				return err
			}
			store.forms[name] = form
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Default loads the embedded storefront forms.
func Default(opts ...Option) (*Store, error) {
	return LoadFS(EmbeddedFS(), opts...)
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("schemafile: file %s is empty", source)
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("schemafile: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("schemafile: parse %s: %w", source, err)
	}
	return doc, nil
}

func (l *loader) normaliseForm(raw formFile, name, source string) (Form, error) {
	if len(raw.Fields) == 0 {
		return Form{}, fmt.Errorf("schemafile: form %q (file %s) has no fields", name, source)
	}

	schema := make(model.Schema, 0, len(raw.Fields))
	for idx, field := range raw.Fields {
		descriptor, err := l.normaliseField(field)
		if err != nil {
			return Form{}, fmt.Errorf("schemafile: form %q (file %s) field %d: %w", name, source, idx, err)
		}
		schema = append(schema, descriptor)
	}
	if err := schema.Check(); err != nil {
		return Form{}, fmt.Errorf("schemafile: form %q (file %s): %w", name, source, err)
	}

	return Form{
		Name:           name,
		Source:         source,
		Title:          strings.TrimSpace(raw.Title),
		SubmitLabel:    strings.TrimSpace(raw.SubmitLabel),
		SecondaryLabel: strings.TrimSpace(raw.SecondaryLabel),
		SuccessMessage: strings.TrimSpace(raw.SuccessMessage),
		ErrorMessage:   strings.TrimSpace(raw.ErrorMessage),
		Schema:         schema,
	}, nil
}

func (l *loader) normaliseField(raw fieldFile) (model.FieldDescriptor, error) {
	kind, err := model.ParseFieldKind(raw.Kind)
	if err != nil {
		return model.FieldDescriptor{}, err
	}
	out := model.FieldDescriptor{
		ID:             strings.TrimSpace(raw.ID),
		Kind:           kind,
		Label:          raw.Label,
		Placeholder:    raw.Placeholder,
		UploadLabel:    raw.UploadLabel,
		Options:        append([]string(nil), raw.Options...),
		OptionalToggle: raw.Optional,
	}
	if len(out.Options) == 0 {
		out.Options = nil
	}
	if raw.Required != nil {
		out = out.WithRequired(*raw.Required)
	}
	if out.Min, err = l.bound(raw.Min, kind); err != nil {
		return model.FieldDescriptor{}, fmt.Errorf("min: %w", err)
	}
	if out.Max, err = l.bound(raw.Max, kind); err != nil {
		return model.FieldDescriptor{}, fmt.Errorf("max: %w", err)
	}
	return out, nil
}

func (l *loader) bound(raw *boundFile, kind model.FieldKind) (*model.Bound, error) {
	if raw == nil {
		return nil, nil
	}
	set := 0
	if raw.Number != nil {
		set++
	}
	if strings.TrimSpace(raw.Date) != "" {
		set++
	}
	if raw.YearsAgo != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("bound must set exactly one of number, date or yearsAgo")
	}

	switch {
	case raw.Number != nil:
		if kind != model.KindNumber {
			return nil, fmt.Errorf("numeric bound on %s field", kind)
		}
		return model.NumberBound(*raw.Number), nil
	case raw.YearsAgo != nil:
		if kind != model.KindDate {
			return nil, fmt.Errorf("date bound on %s field", kind)
		}
		return model.DateBound(dateOnly(model.YearsAgo(l.now(), *raw.YearsAgo))), nil
	default:
		if kind != model.KindDate {
			return nil, fmt.Errorf("date bound on %s field", kind)
		}
		parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(raw.Date))
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", raw.Date, err)
		}
		return model.DateBound(parsed), nil
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
