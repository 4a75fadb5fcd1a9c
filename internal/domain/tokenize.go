package domain

import "strings"

// Tokenize splits text into display tokens. Tokens are maximal runs of
// non-whitespace characters: any run of spaces, tabs, or newlines acts as
// a single separator, empty strings never appear, and source order is
// preserved. No case folding or punctuation stripping is applied.
func Tokenize(text string) []string {
	return strings.Fields(text)
}
