package uid

import "github.com/google/uuid"

// UUID generates RFC 4122 UUID strings. Correlation ids are v7 so they sort
// roughly by creation time in logs and caches.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back to v4.
		return uuid.NewString()
	}
	return id.String()
}
