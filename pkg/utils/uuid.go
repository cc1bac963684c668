package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateOrderNo generates the human-readable order reference printed on
// receipts, e.g. "POS-3F2A91BC".
func GenerateOrderNo() string {
	return "POS-" + strings.ToUpper(uuid.New().String()[:8])
}
