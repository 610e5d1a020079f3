package simpleutils

import "unicode/utf8"

// Reverse returns text with its characters in reverse order.
//
// Characters are Unicode code points. A byte that does not start a valid
// UTF-8 sequence is treated as a single character and copied as-is, so the
// character count of the result always equals that of the input.
func Reverse(text string) string {
	if len(text) < 2 {
		return text
	}

	out := make([]byte, len(text))
	end := len(out)
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		end -= size
		copy(out[end:], text[i:i+size])
		i += size
	}
	return string(out)
}
