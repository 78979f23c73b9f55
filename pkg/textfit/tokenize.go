package textfit

import "strings"

// Tokenize splits text into words for wrapping. breaks[i] is true when the
// text has a hard line break after words[i].
//
// Runs of spaces, tabs and carriage returns separate words and collapse.
// A blank line becomes an empty word carrying a break so the block keeps the
// empty line. Trailing blank lines are dropped, and the last word never
// carries a break. Whitespace-only text yields no words.
func Tokenize(text string) (words []string, breaks []bool) {
	for _, line := range strings.Split(text, "\n") {
		fields := strings.FieldsFunc(line, isSpace)
		if len(fields) == 0 {
			words = append(words, "")
			breaks = append(breaks, true)
			continue
		}
		for i, f := range fields {
			words = append(words, f)
			breaks = append(breaks, i == len(fields)-1)
		}
	}

	n := len(words)
	for n > 0 && words[n-1] == "" {
		n--
	}
	if n == 0 {
		return nil, nil
	}
	words, breaks = words[:n], breaks[:n]
	breaks[n-1] = false
	return words, breaks
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
