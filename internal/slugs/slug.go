// Package slugs resolves content entities from caller supplied slugs using an
// ordered list of progressively looser lookup strategies.
package slugs

import (
	"strings"
)

// Field names a Source must understand.
const (
	FieldSlug = "slug"
	FieldID   = "id"
)

// MatchKind selects the comparison a Source applies to a Lookup.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchInsensitive
	MatchContains
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchInsensitive:
		return "insensitive"
	case MatchContains:
		return "contains"
	default:
		return "unknown"
	}
}

// Lookup is a single query issued against a Source.
type Lookup struct {
	Field string
	Match MatchKind
	Value string
}

// Normalize trims whitespace and surrounding slashes and lower-cases the slug.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "/")
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether a stored value satisfies value under kind. It backs
// in-memory sources and client side filtering of remote results.
func Matches(kind MatchKind, stored, value string) bool {
	switch kind {
	case MatchExact:
		return stored == value
	case MatchInsensitive:
		return strings.EqualFold(stored, value)
	case MatchContains:
		return strings.Contains(strings.ToLower(stored), strings.ToLower(value))
	default:
		return false
	}
}

// EscapeLike escapes LIKE wildcards so a contains lookup matches literally.
// Backslash is the escape character.
func EscapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}

// Slugged is implemented by rows that expose their stored slug. The resolver
// uses it to list slugs in diagnostic output.
type Slugged interface {
	GetSlug() string
}
