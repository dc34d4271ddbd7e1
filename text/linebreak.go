package text

import "strings"

// Linebreak greedily word-wraps line to maxCols columns, starting the
// first line at startCol. Ruby groups count as a single token but
// contribute their NoRubyLen width. An explicit "\n" token (see
// SplitWords) always starts a new line without consuming a separating
// space. If line already fits at startCol, or if any single token
// exceeds maxCols, line is returned unchanged.
func Linebreak(line string, maxCols, startCol int) string {
	if NoRubyLen(line)+startCol <= maxCols {
		return line
	}

	words := SplitWords(line)

	longest := 0
	for _, w := range words {
		if n := NoRubyLen(w); n > longest {
			longest = n
		}
	}
	if longest > maxCols {
		return line
	}

	var broken []string
	var acc strings.Builder
	accLen := 0
	firstWord := true
	cursor := startCol

	for _, word := range words {
		if word == "\n" {
			broken = append(broken, acc.String())
			acc.Reset()
			accLen = 0
			firstWord = true
			cursor = 0
			continue
		}

		wordLen := NoRubyLen(word)
		addedLen := wordLen
		if !firstWord {
			addedLen = accLen + 1 + wordLen
		}

		if !firstWord && cursor+addedLen > maxCols {
			broken = append(broken, acc.String())
			acc.Reset()
			acc.WriteString(word)
			accLen = wordLen
			cursor = 0
			firstWord = false
			continue
		}

		if firstWord {
			acc.WriteString(word)
			accLen = wordLen
		} else {
			acc.WriteByte(' ')
			acc.WriteString(word)
			accLen = addedLen
		}
		firstWord = false
	}

	if acc.Len() > 0 || (len(words) > 0 && words[len(words)-1] == "\n") {
		broken = append(broken, acc.String())
	}

	return strings.Join(broken, "\n")
}
