// Package form provides Form, the injectable engine object page controllers
// drive. A Form owns the schema, the value store, the touched map, the
// activation map and the latest validation result, and recomputes the full
// result after every mutation so no stale message survives an edit.
//
// A Form is not safe for concurrent use. Input events are expected to arrive
// one at a time, each completing its recompute before the next.
package form
