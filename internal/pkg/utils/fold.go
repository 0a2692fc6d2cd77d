package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchKey folds a name for accent and case insensitive matching:
// "Kolín, zast." and "KOLIN, ZAST." share a key.
func SearchKey(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)
	return s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns a LIKE pattern (escape character '\') matching
// keys that contain the folded query.
func ContainsPattern(query string) string {
	return "%" + likeEscaper.Replace(SearchKey(query)) + "%"
}
