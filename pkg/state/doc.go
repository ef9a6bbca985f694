// Package state holds the form value store and the companion touched map.
// Every operation returns a fresh map so callers can keep earlier snapshots
// (for submission or diffing) without defensive copies.
package state
