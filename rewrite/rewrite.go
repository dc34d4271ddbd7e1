// Package rewrite implements the script rewriter: the per-scene,
// per-command pass that converts a translation database into a new
// string-table archive, honoring glue, pagination, ruby, forced
// breaks and the fixed-width layout constraints the game engine
// expects (§4.6).
package rewrite

import (
	"strings"

	"seehuhn.de/go/deepluna/script"
	"seehuhn.de/go/deepluna/text"
	"seehuhn.de/go/deepluna/tldb"
)

// charsPerLine is the fixed display width the engine wraps text to.
const charsPerLine = 55

// isQAScene reports whether a scene name identifies a QA scene: these
// are treated as having all lines glued and manually laid out, so the
// automatic line-breaker and cursor tracking are both skipped (§9,
// open question 3 — the rendering mechanism itself is an engine
// invariant, not a rewriter concern).
func isQAScene(name string) bool {
	return strings.HasPrefix(name, "QA_")
}

// Rewrite runs the per-scene, per-command pass over every scene in db
// and returns the resulting offset-to-string map. "Previous command"
// in steps 4 and 7 means the previous command that actually produced
// translated output in this scene — an untranslated command's cursor
// and page state is not advanced (step 2), so it does not participate
// in the next command's reset/glue checks either.
func Rewrite(db *tldb.DB, enableCharSwap bool) (map[uint32]string, error) {
	offsetToString := make(map[uint32]string)

	for _, scene := range db.SceneNames(true) {
		if err := rewriteScene(db, scene, db.LinesForScene(scene), enableCharSwap, offsetToString); err != nil {
			return nil, err
		}
	}

	return offsetToString, nil
}

func rewriteScene(db *tldb.DB, scene string, cmds []script.TextCommand, enableCharSwap bool, offsetToString map[uint32]string) error {
	qa := isQAScene(scene)

	cursor := 0
	prevPageNumber := int32(-1)
	prevEndsNewline := false
	havePrev := false

	for i, cmd := range cmds {
		line := db.TLLineForCmd(cmd)

		// Step 2: untranslated lines pass through verbatim; the cursor
		// and "previous command" state are left untouched.
		if line.EnText == "" {
			offsetToString[cmd.Offset] = line.JPText
			continue
		}

		// Step 3: strip literal newlines; displayed breaks must come
		// from %{n}.
		enText := stripLiteralNewlines(line.EnText)

		// Step 4: cursor reset.
		resetCursor := !havePrev
		if havePrev {
			notGlued := !cmd.IsGlued && !qa && !strings.Contains(line.EnText, "%{force_glue}")
			pageChanged := cmd.PageNumber != prevPageNumber
			resetCursor = notGlued || pageChanged
		}
		if resetCursor {
			cursor = 0
		}

		// Step 5: control-code expansion.
		expanded, err := text.ApplyControlCodes(enText, false, true)
		if err != nil {
			return err
		}
		expandedText := expanded.Text

		// Step 6: charswap.
		if enableCharSwap {
			expandedText = applyCharSwap(expandedText, db.CharSwap)
		}

		// Step 7: drop a leading space continuing a glued line.
		if havePrev && cmd.IsGlued && prevEndsNewline && strings.HasPrefix(expandedText, " ") {
			expandedText = expandedText[1:]
		}

		// Step 8: line-break, unless this is a QA scene or the text
		// carries %{no_break}.
		var broken string
		if qa || expanded.NoBreak {
			broken = expandedText
		} else {
			broken = text.Linebreak(expandedText, charsPerLine, cursor)
		}

		// Step 9: cursor update.
		newCursor := advanceCursor(cursor, broken)

		// Step 10: glue lookahead against the next command.
		if i+1 < len(cmds) {
			broken, newCursor, err = glueLookahead(db, scene, cmd.Offset, cmds[i+1], enableCharSwap, broken, newCursor)
			if err != nil {
				return err
			}
		}

		// Step 11: restore the trailing record terminator.
		final := broken
		if strings.HasSuffix(line.JPText, "\r\n") && !strings.HasSuffix(final, "\r\n") {
			final += "\r\n"
		}

		offsetToString[cmd.Offset] = final
		cursor = newCursor
		prevPageNumber = cmd.PageNumber
		prevEndsNewline = strings.HasSuffix(broken, "\n")
		havePrev = true
	}

	return nil
}

func stripLiteralNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "")
	return strings.ReplaceAll(s, "\n", "")
}

// advanceCursor implements step 9: if a forced break was inserted, the
// cursor becomes the width of the final line; otherwise it advances
// modulo CHARS_PER_LINE.
func advanceCursor(cursor int, broken string) int {
	if idx := strings.LastIndex(broken, "\n"); idx >= 0 {
		return text.NoRubyLen(broken[idx+1:])
	}
	return (cursor + text.NoRubyLen(broken)) % charsPerLine
}

// glueLookahead implements step 10: it peeks at the next command's
// expanded (but not yet line-broken) text, which is independent of
// cursor position, so no recursive re-processing of the next command
// is needed.
func glueLookahead(db *tldb.DB, scene string, offset uint32, next script.TextCommand, enableCharSwap bool, broken string, cursor int) (string, int, error) {
	if !next.IsGlued {
		return broken, cursor, nil
	}
	nextLine := db.TLLineForCmd(next)
	if nextLine.EnText == "" {
		return broken, cursor, nil
	}

	nextExpanded, err := text.ApplyControlCodes(stripLiteralNewlines(nextLine.EnText), false, true)
	if err != nil {
		return broken, cursor, err
	}
	nextText := nextExpanded.Text
	if enableCharSwap {
		nextText = applyCharSwap(nextText, db.CharSwap)
	}
	if nextText == "" {
		return broken, cursor, nil
	}

	if strings.HasPrefix(nextText, " ") {
		if !strings.HasSuffix(broken, "\n") && cursor == 0 {
			broken += "\n"
		}
		return broken, cursor, nil
	}

	nextWords := text.SplitWords(nextText)
	nextWordLen := 0
	if len(nextWords) > 0 {
		nextWordLen = text.NoRubyLen(nextWords[0])
	}
	if cursor+nextWordLen < charsPerLine {
		return broken, cursor, nil
	}

	if nextWordLen > charsPerLine {
		return "", 0, &UnbreakableGlueError{Scene: scene, Offset: offset}
	}

	lastSpace := strings.LastIndex(broken, " ")
	if lastSpace < 0 {
		return "", 0, &UnbreakableGlueError{Scene: scene, Offset: offset}
	}
	broken = broken[:lastSpace] + "\n" + broken[lastSpace+1:]
	cursor = advanceCursor(0, broken)
	return broken, cursor, nil
}

func applyCharSwap(s string, swap map[rune]rune) string {
	if len(swap) == 0 {
		return s
	}
	var out strings.Builder
	for _, r := range s {
		if to, ok := swap[r]; ok {
			out.WriteRune(to)
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}
