package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
)

var errInvalidForm = errors.New("form is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <form>",
	Short: "Validate values against a form and print the error map",
	Long: `Builds the named form, applies values from --values (YAML or JSON) and
--set id=value flags, then prints every field's error messages. Exits non-zero
when the form is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringArray("set", nil, "Field value as id=value (repeatable)")
	validateCmd.Flags().String("values", "", "YAML or JSON file with field values")
	validateCmd.Flags().StringArray("activate", nil, "Optional field to switch on (repeatable)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, _, err := newOrchestrator(cmd, logger).Build(context.Background(), orchestrator.Request{Form: args[0]})
	if err != nil {
		return err
	}

	activate, _ := cmd.Flags().GetStringArray("activate")
	for _, id := range activate {
		if err := f.SetActive(strings.TrimSpace(id), true); err != nil {
			return err
		}
	}

	values := map[string]string{}
	if path, _ := cmd.Flags().GetString("values"); path != "" {
		loaded, err := readValues(path)
		if err != nil {
			return err
		}
		for id, value := range loaded {
			values[id] = value
		}
	}
	sets, _ := cmd.Flags().GetStringArray("set")
	for _, entry := range sets {
		id, value, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("invalid --set value %q (want id=value)", entry)
		}
		values[strings.TrimSpace(id)] = value
	}

	for _, field := range f.Schema() {
		raw, ok := values[field.ID]
		if !ok || !f.Active(field.ID) {
			continue
		}
		value, err := coerce(field, raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.ID, err)
		}
		if err := f.SetField(field.ID, value); err != nil {
			return err
		}
	}

	return printResult(cmd, f)
}

func printResult(cmd *cobra.Command, f *form.Form) error {
	report := struct {
		Form   string              `yaml:"form"`
		Valid  bool                `yaml:"valid"`
		Errors map[string][]string `yaml:"errors,omitempty"`
	}{
		Form:   f.Name(),
		Valid:  f.Valid(),
		Errors: f.Errors(),
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if !report.Valid {
		return errInvalidForm
	}
	return nil
}

func readValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", filepath.Base(path), err)
	}
	out := make(map[string]string, len(raw))
	for id, value := range raw {
		switch v := value.(type) {
		case nil:
			out[id] = ""
		case time.Time:
			out[id] = v.Format(time.DateOnly)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			out[id] = strings.Join(parts, ",")
		default:
			out[id] = fmt.Sprint(v)
		}
	}
	return out, nil
}

// coerce converts a raw string into the value type the field kind stores.
// Blank input means absent.
func coerce(field model.FieldDescriptor, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	switch field.Kind {
	case model.KindNumber:
		if trimmed == "" {
			return nil, nil
		}
		return strconv.ParseFloat(trimmed, 64)
	case model.KindDate:
		if trimmed == "" {
			return nil, nil
		}
		return time.Parse(time.DateOnly, trimmed)
	case model.KindFile:
		var files []model.FileHandle
		for _, part := range strings.Split(trimmed, ",") {
			path := strings.TrimSpace(part)
			if path == "" {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				return nil, err
			}
			files = append(files, model.FileHandle{Name: info.Name(), Size: info.Size(), Path: path})
		}
		return files, nil
	default:
		return raw, nil
	}
}
