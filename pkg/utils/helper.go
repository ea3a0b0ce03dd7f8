package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseUUIDs parses ids in order, reporting the first malformed one.
func ParseUUIDs(ids []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(ids))
	for i, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q at index %d: %w", s, i, err)
		}
		out[i] = id
	}
	return out, nil
}

// UUIDStrings is the inverse of ParseUUIDs.
func UUIDStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
