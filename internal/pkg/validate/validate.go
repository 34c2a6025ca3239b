package validate

import "strings"

// Required reports whether a user-supplied field carries more than
// whitespace. Event submissions use it for title, description and location
// name before anything is persisted.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}
