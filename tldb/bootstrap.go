package tldb

import (
	"fmt"
	"sort"

	"seehuhn.de/go/deepluna/container"
	"seehuhn.de/go/deepluna/mzx"
	"seehuhn.de/go/deepluna/script"
	"seehuhn.de/go/deepluna/text"
)

// sceneNameEntryBase is the index of the first allscr entry that
// holds an MZX-compressed script, per §6: entry 0 is scene names,
// entries 1-2 are opaque, entries 3..N are one script per scene name.
const sceneNameEntryBase = 3

// FromMRG bootstraps a database from the raw allscr and script_text
// archives: it decodes the StringTable, content-hashes every JP
// string, decompresses and parses every scene's script, and emits the
// SceneMap plus the synthetic ORPHANED_LINES scene. Malformed script
// commands are collected rather than logged, since library code
// reports rather than prints (see SPEC_FULL.md §A.2) — callers that
// want stderr output should log the returned warnings themselves.
func FromMRG(allscr, scriptText []byte) (db *DB, warnings []error, err error) {
	allscrEntries, err := container.Parse(allscr)
	if err != nil {
		return nil, nil, fmt.Errorf("tldb: parsing allscr: %w", err)
	}
	if len(allscrEntries) < sceneNameEntryBase {
		return nil, nil, fmt.Errorf("tldb: allscr has only %d entries, need at least %d", len(allscrEntries), sceneNameEntryBase)
	}
	sceneNames := container.DecodeSceneNames(allscrEntries[0])

	scriptTextEntries, err := container.Parse(scriptText)
	if err != nil {
		return nil, nil, fmt.Errorf("tldb: parsing script_text: %w", err)
	}
	if len(scriptTextEntries) < 2 {
		return nil, nil, fmt.Errorf("tldb: script_text has only %d entries, need at least 2", len(scriptTextEntries))
	}
	jpStrings, err := container.DecodeStringTable(scriptTextEntries[0], scriptTextEntries[1])
	if err != nil {
		return nil, nil, fmt.Errorf("tldb: decoding string table: %w", err)
	}
	// The offset table repeats the final data position before its
	// 0xFFFFFFFF terminator; DecodeStringTable turns that repeat into one
	// trailing empty string, which is a sentinel and not a StringTable
	// entry.
	if n := len(jpStrings); n > 0 && jpStrings[n-1] == "" {
		jpStrings = jpStrings[:n-1]
	}

	compressedScripts := allscrEntries[sceneNameEntryBase:]
	if len(compressedScripts) > len(sceneNames) {
		compressedScripts = compressedScripts[:len(sceneNames)]
	}
	decompressed, decompErrs := mzx.DecompressAll(compressedScripts, true)
	for i, derr := range decompErrs {
		if derr != nil {
			name := "?"
			if i < len(sceneNames) {
				name = sceneNames[i]
			}
			return nil, nil, fmt.Errorf("tldb: decompressing scene %q: %w", name, derr)
		}
	}

	db = New()
	referenced := make(map[uint32]bool)

	for i, name := range sceneNames {
		if i >= len(decompressed) {
			break
		}
		cmds := script.Parse(string(decompressed[i]), jpStrings, func(e error) {
			warnings = append(warnings, fmt.Errorf("scene %q: %w", name, e))
		})
		db.SceneMap[name] = cmds
		for _, cmd := range cmds {
			referenced[cmd.Offset] = true
			if _, ok := db.LineByHash[cmd.JPHash]; !ok {
				db.LineByHash[cmd.JPHash] = newTLLine(jpStrings[cmd.Offset])
			}
		}
	}

	var orphanOffsets []uint32
	for offset := range jpStrings {
		o := uint32(offset)
		if !referenced[o] {
			orphanOffsets = append(orphanOffsets, o)
		}
	}
	sort.Slice(orphanOffsets, func(i, j int) bool { return orphanOffsets[i] < orphanOffsets[j] })

	orphanCmds := make([]script.TextCommand, 0, len(orphanOffsets))
	for _, offset := range orphanOffsets {
		jp := jpStrings[offset]
		hash := script.Hash(jp)
		orphanCmds = append(orphanCmds, script.TextCommand{
			Offset:     offset,
			JPHash:     hash,
			PageNumber: -1,
			HasRuby:    text.HasRuby(jp),
		})
		if _, ok := db.LineByHash[hash]; !ok {
			db.LineByHash[hash] = newTLLine(jp)
		}
	}
	db.SceneMap[OrphanedScene] = orphanCmds

	return db, warnings, nil
}
