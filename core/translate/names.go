package translate

import (
	"strings"
	"unicode"
)

// DefaultPrefix is the type-name prefix applied when none is configured.
const DefaultPrefix = "Contentful"

// Namer derives emitted type names from content-type identifiers. The
// same normalization backs content-type object names, link targets and
// synthesized union members.
type Namer struct {
	// Prefix is prepended to every emitted type name. Empty means
	// DefaultPrefix.
	Prefix string
}

func (n Namer) prefix() string {
	if n.Prefix == "" {
		return DefaultPrefix
	}
	return n.Prefix
}

// TypeName returns the full emitted name for a content-type identifier,
// e.g. "blogPost" -> "ContentfulBlogPost".
func (n Namer) TypeName(id string) string {
	return n.prefix() + CompactName(id)
}

// FallbackName returns the generic type emitted for a link with no
// target constraint, e.g. linkType "Entry" -> "ContentfulEntry".
func (n Namer) FallbackName(linkType string) string {
	return n.prefix() + linkType
}

// UnionName derives the deterministic name of a synthesized union from
// its member identifiers in their declared order. The member sequence is
// the union's identity: the same targets listed in a different order name
// a different union.
func (n Namer) UnionName(ids []string) string {
	var b strings.Builder
	b.WriteString(n.prefix())
	b.WriteString("Union")
	for _, id := range ids {
		b.WriteString(CompactName(id))
	}
	return b.String()
}

// CompactName is the short normalized variant of a content-type
// identifier: the identifier with its first rune upper-cased.
func CompactName(id string) string {
	if id == "" {
		return ""
	}
	r := []rune(id)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Identifier reduces an arbitrary display name to a type-system
// identifier: words split on non-alphanumeric runes, upper-cased at each
// word start and joined, e.g. "blog post!" -> "BlogPost".
func Identifier(name string) string {
	var b strings.Builder
	wordStart := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			wordStart = true
			continue
		}
		if wordStart {
			r = unicode.ToUpper(r)
			wordStart = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
