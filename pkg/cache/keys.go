package cache

import "strings"

// Key builds a namespaced cache key by joining parts with ":". Keys carry
// both the operation name and the subject (e.g. "tenant", "with-data",
// slug) so different cached operations for the same subject never collide.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
