package tui

import (
	"github.com/goliatone/go-formstate/pkg/model"
)

// OutputFormat controls how Render serialises the filled form.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme holds optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// StatFunc turns a path typed by the user into a file handle.
type StatFunc func(path string) (model.FileHandle, error)

// Option configures the terminal renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the Render output format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithStat overrides how file paths are resolved. Defaults to os.Stat.
func WithStat(fn StatFunc) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.stat = fn
		}
	}
}

// WithMaxAttempts bounds how many times an invalid field is re-prompted.
// Zero means no bound.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}
