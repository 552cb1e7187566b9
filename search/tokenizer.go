package search

import "strings"

// Tokenize splits raw text into lowercase word tokens. The text is lowercased
// and split on every maximal run of characters outside [a-z0-9]; punctuation,
// whitespace, and symbols are all plain separators. Duplicates are retained in
// source order. An empty or all-separator string yields no tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
}

// Stem reduces a lowercase token to an approximate root form using fixed
// suffix rules, first match wins:
//
//	length <= 3        -> unchanged
//	"ies"              -> strip, append "y" ("puppies" -> "puppy")
//	"es"               -> strip ("boxes" -> "box")
//	"s"                -> strip ("cats" -> "cat")
//	otherwise          -> unchanged
//
// This is a crude plural heuristic, not a linguistic stemmer. Stems are used
// only for fuzzy match detection, never for display, and scoring parity
// depends on these exact rules.
func Stem(token string) string {
	if len(token) <= 3 {
		return token
	}
	switch {
	case strings.HasSuffix(token, "ies"):
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "es"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "s"):
		return token[:len(token)-1]
	}
	return token
}
