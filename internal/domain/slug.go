package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that do not decompose into an ASCII base letter plus marks.
var slugReplacer = strings.NewReplacer(
	"ß", "ss", "ẞ", "SS",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "TH",
	"ı", "i",
	"€", "EUR",
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts arbitrary text into a URL-safe token:
//  1. transliterate to ASCII (NFKD, drop combining marks, fold a few
//     non-decomposable letters, drop whatever is left outside ASCII)
//  2. lowercase
//  3. collapse every run of characters outside [a-z0-9] into one hyphen
//  4. trim leading and trailing hyphens
//
// The result matches ^[a-z0-9-]*$ and may be empty. Slugify is idempotent.
func Slugify(text string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	ascii, _, err := transform.String(t, slugReplacer.Replace(text))
	if err != nil {
		return ""
	}

	slug := slugSeparators.ReplaceAllString(strings.ToLower(ascii), "-")
	return strings.Trim(strings.ToLower(slug), "-")
}
