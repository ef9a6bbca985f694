// Package openapi derives form schemas from the request bodies of OpenAPI 3
// operations, so a backend contract can drive the same engine as hand written
// schema documents.
//
// Properties map to field kinds as follows: string to text (formats email,
// password, date, date-time and binary select the matching kind), number and
// integer to number, any enum to select, and an array of binary strings to
// file. The x-formstate-* extensions refine the result:
//
//	x-formstate-kind              override the derived kind
//	x-formstate-label             field label (defaults to title, then the name)
//	x-formstate-placeholder       placeholder (defaults to a string example)
//	x-formstate-required-message  message for required properties
//	x-formstate-optional          mark the field as an optional toggle
//	x-formstate-order             sort key; ties fall back to the property name
package openapi
