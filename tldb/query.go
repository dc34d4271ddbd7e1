package tldb

import (
	"log"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/deepluna/script"
)

// SceneNames returns every scene key, sorted lexicographically.
// Scenes with zero commands are excluded unless includeEmpty is set.
func (db *DB) SceneNames(includeEmpty bool) []string {
	names := make([]string, 0, len(db.SceneMap))
	for name, cmds := range db.SceneMap {
		if len(cmds) == 0 && !includeEmpty {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LinesForScene returns the ordered command list for a scene, or nil
// if the scene is unknown.
func (db *DB) LinesForScene(name string) []script.TextCommand {
	return db.SceneMap[name]
}

// TLLineWithHash returns the hash-addressed line, if one exists.
func (db *DB) TLLineWithHash(hash string) (TLLine, bool) {
	line, ok := db.LineByHash[hash]
	return line, ok
}

// TLOverrideForOffset returns the per-offset override, if one exists.
func (db *DB) TLOverrideForOffset(offset uint32) (TLLine, bool) {
	line, ok := db.OverrideByOffset[offset]
	return line, ok
}

// TLLineForCmd resolves the effective TLLine for a command: the
// per-offset override wins, else the hash-addressed line.
func (db *DB) TLLineForCmd(cmd script.TextCommand) TLLine {
	if line, ok := db.OverrideByOffset[cmd.Offset]; ok {
		return line
	}
	return db.LineByHash[cmd.JPHash]
}

// SetTranslationAndCommentForHash updates the hash-addressed line's
// translation and comment. A hash with no existing TLLine is ignored;
// from_mrg/FromJSON always populate LineByHash for every jp_hash that
// appears in any scene, so this only happens for a stale/unknown hash.
func (db *DB) SetTranslationAndCommentForHash(hash, en, comment string) {
	line, ok := db.LineByHash[hash]
	if !ok {
		log.Printf("tldb: no translation line for hash %q, ignoring", hash)
		return
	}
	line.EnText = en
	line.Comment = comment
	db.LineByHash[hash] = line
}

// OverrideTranslationAndCommentForOffset sets a per-offset override,
// copying the current hash-addressed line as the starting point the
// first time an offset is overridden. It fails silently (logging) if
// the offset has no known hash, per §4.5.
func (db *DB) OverrideTranslationAndCommentForOffset(offset uint32, en, comment string) {
	hash, ok := db.hashForOffset(offset)
	if !ok {
		log.Printf("tldb: offset %d is not referenced by any scene, ignoring override", offset)
		return
	}

	line, ok := db.OverrideByOffset[offset]
	if !ok {
		line = db.LineByHash[hash]
	}
	line.EnText = en
	line.Comment = comment
	db.OverrideByOffset[offset] = line
}

// ClearOffsetOverrides discards every per-offset override.
func (db *DB) ClearOffsetOverrides() {
	db.OverrideByOffset = make(map[uint32]TLLine)
}

// TranslatedPercent returns the fraction of TLLines whose EnText is
// non-empty, expressed as a percentage (0..100).
func (db *DB) TranslatedPercent() float64 {
	if len(db.LineByHash) == 0 {
		return 0
	}
	translated := 0
	for _, line := range db.LineByHash {
		if line.EnText != "" {
			translated++
		}
	}
	return 100.0 * float64(translated) / float64(len(db.LineByHash))
}

// TLLineForOffset linear-scans every scene's command list for the
// first command at the given offset and returns its jp_hash. Not a
// hot path — see §4.5.
func (db *DB) TLLineForOffset(offset uint32) (hash string, ok bool) {
	return db.hashForOffset(offset)
}

func (db *DB) hashForOffset(offset uint32) (string, bool) {
	for _, cmds := range db.SceneMap {
		for _, cmd := range cmds {
			if cmd.Offset == offset {
				return cmd.JPHash, true
			}
		}
	}
	return "", false
}

// sortedHashes returns every hash key in LineByHash, sorted.
func (db *DB) sortedHashes() []string {
	hashes := maps.Keys(db.LineByHash)
	slices.Sort(hashes)
	return hashes
}

// sortedOffsets returns every offset key in OverrideByOffset, sorted.
func (db *DB) sortedOffsets() []uint32 {
	offsets := maps.Keys(db.OverrideByOffset)
	slices.Sort(offsets)
	return offsets
}
