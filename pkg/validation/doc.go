// Package validation implements the form validation engine: a pure function
// from (values, schema, activation) to per-field ordered error lists plus an
// overall validity flag.
//
// Fields are evaluated independently in schema order. For each field the
// rules run in a fixed order, which is also the order of its messages:
//
//  1. optional toggles that are not activated are skipped entirely;
//  2. empty values report the descriptor's required message, if any;
//  3. email fields with a value must match the address shape, reusing the
//     required message on failure;
//  4. the "password" field runs the strength policy when the schema also
//     declares "confirmPassword" (signup shaped forms);
//  5. the "confirmPassword" field must be filled and equal "password" when
//     the schema declares both.
//
// Cross-field rules are keyed by the literal ids PasswordID and
// ConfirmPasswordID. The engine never returns Go errors: malformed
// descriptors simply produce fewer messages.
package validation
