package text

import "strings"

// RemoveRuby strips every <base|annotation> ruby group down to just the
// base portion, returning plain text with no '<', '|', or '>' left in
// it. A ruby group that starts without closing, a '|' seen outside a
// ruby group, or a '>' seen without a preceding '|' is reported as a
// MalformedRubyError.
func RemoveRuby(line string) (string, error) {
	var out strings.Builder
	inRuby := false
	seenBar := false

	for _, c := range line {
		switch c {
		case '<':
			if inRuby {
				return "", &MalformedRubyError{Text: line, Reason: "nested ruby start"}
			}
			inRuby = true
			seenBar = false
		case '|':
			if !inRuby {
				return "", &MalformedRubyError{Text: line, Reason: "'|' outside ruby group"}
			}
			seenBar = true
		case '>':
			if !inRuby {
				return "", &MalformedRubyError{Text: line, Reason: "'>' outside ruby group"}
			}
			if !seenBar {
				return "", &MalformedRubyError{Text: line, Reason: "ruby end without '|'"}
			}
			inRuby = false
		default:
			if !inRuby || !seenBar {
				out.WriteRune(c)
			}
		}
	}
	if inRuby {
		return "", &MalformedRubyError{Text: line, Reason: "unterminated ruby group"}
	}
	return out.String(), nil
}

// HasRuby reports whether s contains a ruby-annotation marker. It does
// not validate the grammar — callers that need a plain-text rendering
// should call RemoveRuby and handle MalformedRubyError.
func HasRuby(s string) bool {
	return strings.ContainsRune(s, '<')
}
