// Package schemafile loads named form schemas from JSON or YAML documents.
//
// A document maps form names to their configuration:
//
//	forms:
//	  login:
//	    title: Sign in
//	    submitLabel: Sign in
//	    fields:
//	      - id: email
//	        kind: email
//	        label: Your email
//	        required: Please enter a valid email.
//
// Bounds are written as {number: 1}, {date: "2024-01-31"} or {yearsAgo: 18};
// relative bounds resolve against the loader clock. Every file under the
// walked filesystem with a .json, .yaml or .yml extension is read, and a form
// name may only be defined once across all of them.
package schemafile
