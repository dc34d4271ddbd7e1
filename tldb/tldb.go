// Package tldb implements the content-addressed translation database:
// the canonical store joining JP strings, translations, comments,
// per-offset overrides, per-scene command lists and the character
// swap map. See container, mzx and script for the archive formats the
// database is bootstrapped from.
package tldb

import (
	"seehuhn.de/go/deepluna/script"
)

// OrphanedScene is the synthetic scene name collecting every
// StringTable offset that is not referenced by any scene's commands.
const OrphanedScene = "ORPHANED_LINES"

// TLLine is one content-addressed translation entry: the JP source
// text, keyed by its own SHA-1 hash, plus the mutable EN translation
// and editor comment.
type TLLine struct {
	JPText      string `json:"jp_text"`
	EnText      string `json:"en_text,omitempty"`
	Comment     string `json:"comment,omitempty"`
	ContentHash string `json:"content_hash"`
}

// newTLLine builds a fresh, untranslated TLLine from its JP source
// text, deriving ContentHash so the two are never allowed to drift.
func newTLLine(jp string) TLLine {
	return TLLine{JPText: jp, ContentHash: script.Hash(jp)}
}

// DB is the in-memory translation database. It owns every TLLine and
// the SceneMap; TextCommands are values and may be copied freely. Per
// SPEC_FULL.md §5, a DB is exclusively owned by one editor session at
// a time — callers are responsible for preventing concurrent passes
// over the same DB.
type DB struct {
	SceneMap         map[string][]script.TextCommand
	LineByHash       map[string]TLLine
	OverrideByOffset map[uint32]TLLine
	CharSwap         map[rune]rune
}

// New returns an empty database, ready for FromMRG or FromJSON to
// populate.
func New() *DB {
	return &DB{
		SceneMap:         make(map[string][]script.TextCommand),
		LineByHash:       make(map[string]TLLine),
		OverrideByOffset: make(map[uint32]TLLine),
		CharSwap:         make(map[rune]rune),
	}
}
