package text

import "strings"

// SplitWords splits line on ASCII space and '\n', treating any
// <...> ruby group as a single token regardless of the spaces it
// contains, and emitting a standalone "\n" token for every literal
// newline so forced breaks survive tokenization.
func SplitWords(line string) []string {
	var words []string
	var acc strings.Builder
	inRuby := false

	flush := func() {
		if acc.Len() > 0 {
			words = append(words, acc.String())
			acc.Reset()
		}
	}

	for _, c := range line {
		switch {
		case c == '<':
			inRuby = true
		case c == '>':
			inRuby = false
		}

		if (c == ' ' || c == '\n') && !inRuby {
			flush()
			if c == '\n' {
				words = append(words, "\n")
			}
			continue
		}
		acc.WriteRune(c)
	}
	flush()

	return words
}
