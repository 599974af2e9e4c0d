package idgen

import (
	"github.com/google/uuid"
)

// NewJobID mints a fresh job idempotency key.
func NewJobID() string {
	return uuid.NewString()
}

// IsValidJobID reports whether s is a syntactically valid idempotency key.
// The remote registry deduplicates on this value, so we only ever forward
// identifiers that parse; anything else gets replaced with a fresh one.
func IsValidJobID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// NormalizeJobID returns the supplied id when valid, otherwise a fresh one.
func NormalizeJobID(s string) string {
	if IsValidJobID(s) {
		return s
	}
	return NewJobID()
}
