// Package orchestrator wires schema sources, the form engine and the renderer
// registry into a single entry point: resolve a schema (a named document form
// or an OpenAPI operation), build a Form, prefill it and render it.
package orchestrator
