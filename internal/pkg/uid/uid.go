package uid

// NumberID generates numeric identifiers for persisted records.
type NumberID interface {
	Generate() int64
}

// StringID generates opaque string identifiers.
//
// The identity module uses these as per-attempt correlation ids: every signup
// or login call gets a fresh one, and the id must be presented again on verify.
type StringID interface {
	Generate() string
}
