package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseItemID parses a catalog number as typed by a user. A leading '#'
// and leading zeros are accepted, so "#007", "007" and "7" are equal.
func ParseItemID(s string) (int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if trimmed == "" {
		return 0, fmt.Errorf("item ID is required")
	}

	id, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("item ID %q is not a number", s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("item ID must be positive, got %d", id)
	}
	return id, nil
}
