// Package options provides shared utilities for option validation across packages.
package options

import (
	"fmt"
	"strings"
)

// RequireExactlyOne returns an error unless exactly one of the named inputs
// is set. names and set are parallel.
func RequireExactlyOne(names []string, set ...bool) error {
	count := 0
	for _, s := range set {
		if s {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return fmt.Errorf("exactly one of %s must be provided (got %d)", joinOr(names), count)
}

// joinOr renders names as "a", "a or b" or "a, b, or c".
func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}
