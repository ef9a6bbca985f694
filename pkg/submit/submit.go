// Package submit defines the contract between a form and the page supplied
// submission collaborator, plus encoders that turn a snapshot into the
// payload formats storefront endpoints accept (JSON, urlencoded, multipart).
// Network transport stays with the caller.
package submit

import (
	"context"
	"errors"
	"sort"

	"github.com/goliatone/go-formstate/pkg/state"
)

// ErrNoSubmitter is returned when a form is submitted without a collaborator.
var ErrNoSubmitter = errors.New("submit: submitter is not configured")

// Snapshot is the frozen form state handed to a Submitter. Values only holds
// fields that take part in the submission (inactive optional fields are
// omitted).
type Snapshot struct {
	Form   string       `json:"form,omitempty"`
	Values state.Values `json:"values"`
}

// Keys returns the value keys in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.Values))
	for key := range s.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Submitter performs the actual submission (usually an HTTP call).
type Submitter interface {
	Submit(ctx context.Context, snapshot Snapshot) error
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, snapshot Snapshot) error

// Submit delegates to the underlying function.
func (fn SubmitterFunc) Submit(ctx context.Context, snapshot Snapshot) error {
	return fn(ctx, snapshot)
}
