package domain

import "strings"

// Slug returns the wire form of a category: " & " and plain spaces collapse
// to a single underscore, then the whole value is lowercased.
// "Care & Tips" -> "care_tips".
func (c Category) Slug() string {
	s := strings.ReplaceAll(string(c), " & ", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ToLower(s)
}

// CategoryFromSlug inverts Slug for every known category. Unknown slugs are
// preserved verbatim rather than dropped so that normalization stays total;
// such values simply never match a category filter.
func CategoryFromSlug(slug string) Category {
	for _, known := range Categories {
		if known.Slug() == slug {
			return known
		}
	}
	return Category(slug)
}
