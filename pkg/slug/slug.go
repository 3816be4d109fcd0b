package slug

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxLength is the longest slug accepted as a routing key. Matches the
// subdomain label limit so slugs stay usable as storefront hostnames.
const MaxLength = 63

var validSlug = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// IsValid reports whether s is a well-formed tenant slug: lowercase
// alphanumerics and hyphens, no leading or trailing hyphen, at most
// MaxLength characters.
func IsValid(s string) bool {
	if s == "" || len(s) > MaxLength {
		return false
	}
	return validSlug.MatchString(s)
}

// Normalize converts an arbitrary string into slug form: lowercased, spaces
// and underscores become hyphens, other non-alphanumerics are dropped, runs
// of separators collapse to one hyphen. Returns "" when nothing usable
// remains.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if len(out) > MaxLength {
		out = strings.TrimRight(out[:MaxLength], "-")
	}
	return out
}
