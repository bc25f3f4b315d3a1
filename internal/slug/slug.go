// Package slug derives the canonical identifiers used throughout a site
// document: section keys, entry keys and tags.
package slug

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxTagLength is the tag length bound used when none is configured.
const DefaultMaxTagLength = 32

// Make converts free text into a parameter-case slug: lowercase ASCII letters
// and digits, words joined by single hyphens. Accents are folded
// ("Café" -> "cafe") and every other character acts as a word separator.
// Case changes inside a word start a new word ("myPost" -> "my-post").
// Returns "" when nothing usable remains.
func Make(s string) string {
	folded, _, err := transform.String(accentFolder(), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingHyphen := false
	var prev rune
	for _, r := range folded {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
				pendingHyphen = true
			}
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingHyphen = true
		}
		prev = r
	}
	return b.String()
}

// Tag normalizes a raw tag: slugged first, then truncated to maxLength
// characters. A hyphen left dangling by the cut is trimmed so the result is
// itself a fixed point of Tag. A maxLength <= 0 uses DefaultMaxTagLength.
// Returns "" when the input is unusable; callers treat that as a rejected tag.
func Tag(raw string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxTagLength
	}
	tag := Make(raw)
	if len(tag) > maxLength {
		tag = strings.TrimRight(tag[:maxLength], "-")
	}
	return tag
}

// FileKey derives an entry key from a content-relative file path: the
// directory and extension are stripped and the file name slugged, so
// "posts/My Post.html" becomes "my-post". Two files with the same name in
// different folders therefore collide.
func FileKey(file string) string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	return Make(strings.TrimSuffix(base, path.Ext(base)))
}

// Title renders a key as a human title: "my-first-post" -> "My First Post".
func Title(key string) string {
	words := strings.ReplaceAll(key, "-", " ")
	return cases.Title(language.English).String(words)
}

func accentFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
