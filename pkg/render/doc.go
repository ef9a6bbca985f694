// Package render maps a field descriptor plus the live form state to the
// control a front end should draw. Dispatch is the single source of truth for
// kind to control selection, value binding, disabled state and error
// visibility; concrete renderers (HTML, terminal) consume the resulting
// ControlSpec and register themselves in a Registry.
package render
