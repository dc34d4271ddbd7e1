package tldb

import (
	"fmt"

	"golang.org/x/text/width"

	"seehuhn.de/go/deepluna/script"
	"seehuhn.de/go/deepluna/text"
)

// LintFinding reports one observable-property violation found by
// Lint, with enough context for a CLI to print a line number. This is
// a library-level, UI-free rendering of the check list luna_linter.py
// ran interactively (SPEC_FULL.md §C): only the checks expressible as
// properties over the core data model are kept; free-text style
// linters (banned phrases, American spelling, name-typo detection)
// belong to the external editor, not the core.
type LintFinding struct {
	Rule   string
	Scene  string
	Offset uint32
	Detail string
}

// verbotenRunes are full-width or curly-punctuation code points that
// should never survive translation into the engine's fixed-width
// font, mirroring luna_linter.py's LintVerbotenUnicode table.
var verbotenRunes = map[rune]string{
	'　': " ",
	'…': "...",
	'“': `"`,
	'”': `"`,
	'’': "'",
	'、': ",",
	'！': "!",
	'？': "?",
}

// Lint runs every observable testable property from §8 plus the
// supplemented checks in SPEC_FULL.md §C as a single batch pass and
// returns every violation found; it never mutates db.
func Lint(db *DB) []LintFinding {
	var findings []LintFinding

	for hash, line := range db.LineByHash {
		if got := newTLLine(line.JPText).ContentHash; got != hash {
			findings = append(findings, LintFinding{
				Rule:   "hash-mismatch",
				Detail: fmt.Sprintf("line keyed %q but SHA1(jp_text) is %q", hash, got),
			})
		}
	}

	for scene, cmds := range db.SceneMap {
		lintPageMonotonic(scene, cmds, &findings)
		lintGlueContract(scene, cmds, &findings)
		if scene == OrphanedScene {
			continue
		}
		lintChoices(db, scene, cmds, &findings)
		lintVerbotenUnicode(db, scene, cmds, &findings)
		lintStrayFullwidth(db, scene, cmds, &findings)
		lintBrokenFormatting(db, scene, cmds, &findings)
	}

	lintOrphanPartition(db, &findings)

	return findings
}

// lintOrphanPartition checks invariant I3: ORPHANED_LINES and the set
// of offsets referenced by every other scene's commands are disjoint.
// An offset that shows up in both means the orphan pass ran against a
// stale or hand-edited scene map.
func lintOrphanPartition(db *DB, findings *[]LintFinding) {
	referenced := make(map[uint32]bool)
	for scene, cmds := range db.SceneMap {
		if scene == OrphanedScene {
			continue
		}
		for _, cmd := range cmds {
			referenced[cmd.Offset] = true
		}
	}

	for _, cmd := range db.SceneMap[OrphanedScene] {
		if referenced[cmd.Offset] {
			*findings = append(*findings, LintFinding{
				Rule:   "orphan-partition",
				Scene:  OrphanedScene,
				Offset: cmd.Offset,
				Detail: fmt.Sprintf("offset %d is in ORPHANED_LINES but also referenced by a non-orphan scene", cmd.Offset),
			})
		}
	}
}

// lintPageMonotonic checks invariant I5: page numbers within a scene
// are non-decreasing in command order.
func lintPageMonotonic(scene string, cmds []script.TextCommand, findings *[]LintFinding) {
	last := int32(-1)
	for _, cmd := range cmds {
		if cmd.PageNumber < last {
			*findings = append(*findings, LintFinding{
				Rule:   "page-monotonicity",
				Scene:  scene,
				Offset: cmd.Offset,
				Detail: fmt.Sprintf("page %d follows page %d", cmd.PageNumber, last),
			})
		}
		last = cmd.PageNumber
	}
}

// lintGlueContract checks invariant I6: a glued command is never the
// first command on its page.
func lintGlueContract(scene string, cmds []script.TextCommand, findings *[]LintFinding) {
	firstOnPage := true
	lastPage := int32(-2)
	for _, cmd := range cmds {
		firstOnPage = cmd.PageNumber != lastPage
		lastPage = cmd.PageNumber
		if cmd.IsGlued && firstOnPage {
			*findings = append(*findings, LintFinding{
				Rule:   "glue-contract",
				Scene:  scene,
				Offset: cmd.Offset,
				Detail: "command is glued but is the first command on its page",
			})
		}
	}
}

// lintChoices mirrors luna_linter.py's LintChoices: choice text should
// carry a leading space. Only the leading space is checked; an opening
// ellipsis is not flagged.
func lintChoices(db *DB, scene string, cmds []script.TextCommand, findings *[]LintFinding) {
	for _, cmd := range cmds {
		if !cmd.IsChoice {
			continue
		}
		line := db.TLLineForCmd(cmd)
		if line.EnText == "" {
			continue
		}
		if line.EnText[0] != ' ' {
			*findings = append(*findings, LintFinding{
				Rule:   "choice-leading-space",
				Scene:  scene,
				Offset: cmd.Offset,
				Detail: "choice text must begin with a leading space",
			})
		}
	}
}

// lintVerbotenUnicode flags curly-quote/full-width punctuation that
// must be normalized to its ASCII form before translation ships.
func lintVerbotenUnicode(db *DB, scene string, cmds []script.TextCommand, findings *[]LintFinding) {
	for _, cmd := range cmds {
		line := db.TLLineForCmd(cmd)
		for _, r := range line.EnText {
			if repl, ok := verbotenRunes[r]; ok {
				*findings = append(*findings, LintFinding{
					Rule:   "verboten-unicode",
					Scene:  scene,
					Offset: cmd.Offset,
					Detail: fmt.Sprintf("replace %q with %q", string(r), repl),
				})
			}
		}
	}
}

// lintBrokenFormatting mirrors luna_linter.py's LintBrokenFormatting:
// it runs the control-code expander in strict mode, surfacing the
// BadControlCode errors that ApplyControlCodes tolerates silently in
// non-strict (rewriter) use, per §7's "only surfaced when strict mode
// is requested (used by the linter)".
func lintBrokenFormatting(db *DB, scene string, cmds []script.TextCommand, findings *[]LintFinding) {
	for _, cmd := range cmds {
		line := db.TLLineForCmd(cmd)
		if line.EnText == "" {
			continue
		}
		if _, err := text.ApplyControlCodes(line.EnText, true, true); err != nil {
			*findings = append(*findings, LintFinding{
				Rule:   "broken-formatting",
				Scene:  scene,
				Offset: cmd.Offset,
				Detail: err.Error(),
			})
		}
	}
}

// lintStrayFullwidth flags East-Asian-width full/wide code points
// surviving in translated text outside of ruby/PUA glyph ranges — a
// sign a JP character slipped through untranslated. Uses
// golang.org/x/text/width's East Asian width classification (text.Width
// does not use it), per SPEC_FULL.md §B.
func lintStrayFullwidth(db *DB, scene string, cmds []script.TextCommand, findings *[]LintFinding) {
	for _, cmd := range cmds {
		line := db.TLLineForCmd(cmd)
		for _, r := range line.EnText {
			if r >= 0xE000 {
				continue // PUA glyph, not stray text
			}
			if r <= 0xFF {
				continue
			}
			p := width.LookupRune(r)
			switch p.Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				*findings = append(*findings, LintFinding{
					Rule:   "stray-fullwidth-character",
					Scene:  scene,
					Offset: cmd.Offset,
					Detail: fmt.Sprintf("full-width character %q in translated text", string(r)),
				})
			}
		}
	}
}
