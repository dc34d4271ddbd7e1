package text

import "strings"

// styleIndex maps an opening style code to its PUA style slot.
var styleIndex = map[string]int{
	"i":  0,
	"r":  1,
	"ri": 2,
	"g":  3,
}

// ControlCodeResult is the outcome of expanding a %{...} control-code
// string: the printable text plus the two non-printing hints the
// rewriter needs to finish laying the line out.
type ControlCodeResult struct {
	Text string
	// ForceGlue mirrors a %{force_glue} code: the string produces no
	// output of its own but asks the rewriter not to reset the cursor.
	ForceGlue bool
	// NoBreak mirrors a %{no_break} code: disables the line-breaker for
	// the string containing it.
	NoBreak bool
}

// ApplyControlCodes expands the %{CODE} mini-language described in
// SPEC_FULL.md §4.4. When enablePUA is true, ASCII glyphs inside an
// active style are shifted into the Private Use Area region reserved
// for that style. When strict is true, unclosed or unmatched style
// tags are reported as BadControlCodeError; otherwise they are
// tolerated silently.
func ApplyControlCodes(in string, strict, enablePUA bool) (ControlCodeResult, error) {
	var out strings.Builder
	var result ControlCodeResult

	hasPct := false
	inCode := false
	var code strings.Builder
	var glyphOffset *int
	styleOpen := false
	pos := 0

	closeStyle := func(code string) error {
		name := code[1:]
		if _, ok := styleIndex[name]; !ok {
			if strict {
				return &BadControlCodeError{Code: code, Pos: pos}
			}
			return nil
		}
		if !styleOpen {
			if strict {
				return &BadControlCodeError{Code: code, Pos: pos}
			}
			return nil
		}
		styleOpen = false
		glyphOffset = nil
		return nil
	}

	openStyle := func(name string) error {
		idx := styleIndex[name]
		if styleOpen && strict {
			return &BadControlCodeError{Code: name, Pos: pos}
		}
		styleOpen = true
		if enablePUA {
			off := puaStart + 128*idx
			glyphOffset = &off
		}
		return nil
	}

	runes := []rune(in)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		pos = i

		if c == '%' {
			hasPct = true
			continue
		}

		if hasPct {
			hasPct = false
			if c == '{' {
				inCode = true
				code.Reset()
				continue
			}
			out.WriteByte('%')
			out.WriteRune(c)
			continue
		}

		if inCode && c == '}' {
			inCode = false
			acc := code.String()
			switch {
			case acc == "n":
				out.WriteByte('\n')
			case acc == "s":
				out.WriteByte(' ')
			case acc == "nothing":
				// intentionally empty
			case acc == "force_glue":
				result.ForceGlue = true
			case acc == "no_break":
				result.NoBreak = true
			case acc == "i" || acc == "r" || acc == "ri" || acc == "g":
				if err := openStyle(acc); err != nil {
					return ControlCodeResult{}, err
				}
			case strings.HasPrefix(acc, "/"):
				if err := closeStyle(acc); err != nil {
					return ControlCodeResult{}, err
				}
			default:
				if strict {
					return ControlCodeResult{}, &BadControlCodeError{Code: acc, Pos: pos}
				}
			}
			continue
		}

		if inCode {
			code.WriteRune(c)
			continue
		}

		isWhitespace := c == ' ' || c == '\n'
		if glyphOffset != nil && c < 128 && !isWhitespace {
			out.WriteRune(rune(*glyphOffset + int(c)))
		} else {
			out.WriteRune(c)
		}
	}

	if styleOpen && strict {
		return ControlCodeResult{}, &BadControlCodeError{Code: "<unclosed>", Pos: pos}
	}

	result.Text = out.String()
	return result, nil
}
