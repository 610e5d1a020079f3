package simpleutils

import "unicode"

// CountWords returns the number of tokens in text, where a token is a
// maximal run of non-whitespace characters.
//
// Leading, trailing and repeated whitespace never produce empty tokens, so
// an empty or whitespace-only input yields zero.
func CountWords(text string) int {
	count := 0
	inToken := false
	for _, r := range text {
		if isSpace(r) {
			inToken = false
			continue
		}
		if !inToken {
			count++
			inToken = true
		}
	}
	return count
}

// isSpace reports whether r separates tokens. The ASCII information
// separators (FS, GS, RS, US) count as whitespace in addition to
// unicode.IsSpace.
func isSpace(r rune) bool {
	if r >= '\x1c' && r <= '\x1f' {
		return true
	}
	return unicode.IsSpace(r)
}
