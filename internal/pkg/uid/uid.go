// Package uid provides ID and token generators used across the application.
//
// NumberID produces sortable int64 identifiers for database rows, StringID
// produces opaque string values (correlation IDs, credentials). Generators are
// injected as interfaces so tests can substitute deterministic fakes.
package uid

// NumberID generates int64 identifiers.
type NumberID interface {
	// Generate returns a new int64 identifier.
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	// Generate returns a new string identifier.
	Generate() string
}
