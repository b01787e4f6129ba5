package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugTransformer decomposes characters and strips combining marks so
// accented letters fold to their ASCII base ("é" -> "e").
var slugTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Slugify converts text into a URL-safe slug: lowercase ASCII letters and
// digits separated by single hyphens. Accented characters are folded to
// their base letters; everything else becomes a separator.
func Slugify(text string) string {
	folded, _, err := transform.String(slugTransformer, text)
	if err != nil {
		// Fall back to the raw input; non-ASCII runes are dropped below.
		folded = text
	}

	var sb strings.Builder
	lastHyphen := true // Suppress leading hyphens
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(sb.String(), "-")
}
