package blog

import (
	"strconv"
	"strings"
)

const maxSlugLen = 80

// Slugify derives a URL-safe slug from a human-readable title or label:
// lowercase, runs of anything outside [a-z0-9] collapsed into single
// hyphens, trimmed, capped at maxSlugLen. Returns "" when nothing usable
// remains.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	hyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		default:
			hyphen = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slug
}

// NumberedSlug returns the candidate slug for the given attempt: the base
// itself first, then base-2, base-3, and so on. Combined with the unique
// constraint on the slug column this closes the race two concurrent
// creations with the same title would otherwise hit.
func NumberedSlug(base string, attempt int) string {
	if attempt <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(attempt)
}
