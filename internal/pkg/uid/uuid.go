package uid

import "github.com/google/uuid"

// UUID generates RFC 9562 version 7 UUID strings.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string, falling back to a random v4 if the
// v7 clock source fails.
func (u *UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
