// Package uid generates identifiers: UUIDv7 strings for request correlation
// and snowflake numbers for batch runs.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates roughly time-ordered numeric identifiers.
type NumberID interface {
	Generate() int64
}
