// Package wordlist splits raw user input into word-cloud tokens.
package wordlist

import "strings"

// Split tokenizes raw text on commas, semicolons, and newlines, trims
// surrounding whitespace from each token, and drops empty tokens. Order is
// preserved and duplicates are kept; downstream weight assignment collapses
// duplicates by map key.
func Split(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := strings.TrimSpace(f); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Join renders words back into editable text, one per line. Inverse of Split
// for lists without separator characters inside tokens.
func Join(words []string) string {
	return strings.Join(words, "\n")
}
