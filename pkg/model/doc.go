// Package model defines the declarative field schema consumed by the form
// state store, the activation tracker, the validation engine and renderers.
// Descriptors are plain values: they carry no behaviour beyond small lookup
// helpers, and a Schema is treated as immutable once handed to a form. The
// only sanctioned mutation is WithOptions, which returns a new Schema with the
// option list of a select field replaced (for example after fetching
// categories from an API).
package model
