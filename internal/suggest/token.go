package suggest

import "strings"

// CityToken derives the locality a stop name belongs to: the text before
// the first " [", else before the first ",", else the whole name. The
// result is replaced by its remap entry when one exists.
func CityToken(name string, remap map[string]string) string {
	token := name
	if before, _, found := strings.Cut(name, " ["); found {
		token = before
	} else if before, _, found := strings.Cut(name, ","); found {
		token = before
	}

	if mapped, ok := remap[token]; ok {
		return mapped
	}
	return token
}

// CityTokens maps every stop name of a chain to its token, keeping
// positions and duplicates.
func CityTokens(names []string, remap map[string]string) []string {
	tokens := make([]string, len(names))
	for i, n := range names {
		tokens[i] = CityToken(n, remap)
	}
	return tokens
}
