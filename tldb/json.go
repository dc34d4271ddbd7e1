package tldb

import (
	"encoding/json"
	"fmt"
	"strconv"

	"seehuhn.de/go/deepluna/script"
)

// dbDocument is the on-disk JSON shape: {scene_map, line_by_hash,
// override_by_offset, charswap_map}. encoding/json sorts map keys
// with a string key type automatically, which gives scene_map and
// line_by_hash their required lexicographic ordering for free;
// override_by_offset's offsets are stringified here per §4.5.
type dbDocument struct {
	SceneMap         map[string][]script.TextCommand `json:"scene_map"`
	LineByHash       map[string]TLLine                `json:"line_by_hash"`
	OverrideByOffset map[string]TLLine                `json:"override_by_offset"`
	CharSwap         map[string]string                `json:"charswap_map"`
}

// AsJSON serializes the database to its stable, sorted, indent=2 JSON
// form.
func (db *DB) AsJSON() ([]byte, error) {
	doc := dbDocument{
		SceneMap:         db.SceneMap,
		LineByHash:       db.LineByHash,
		OverrideByOffset: make(map[string]TLLine, len(db.OverrideByOffset)),
		CharSwap:         make(map[string]string, len(db.CharSwap)),
	}
	for offset, line := range db.OverrideByOffset {
		doc.OverrideByOffset[strconv.FormatUint(uint64(offset), 10)] = line
	}
	for from, to := range db.CharSwap {
		doc.CharSwap[string(from)] = string(to)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FromJSON reconstructs a database from its serialized form. Every
// TLLine's content_hash is re-derived from jp_text and compared
// against the stored value; a mismatch is a fatal HashMismatchError,
// since the rest of the document can no longer be trusted to be
// content-addressed correctly.
func FromJSON(data []byte) (*DB, error) {
	var doc dbDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("tldb: decoding database: %w", err)
	}

	db := New()
	db.SceneMap = doc.SceneMap
	if db.SceneMap == nil {
		db.SceneMap = make(map[string][]script.TextCommand)
	}

	for hash, line := range doc.LineByHash {
		want := script.Hash(line.JPText)
		if line.ContentHash != want {
			return nil, &HashMismatchError{Hash: line.ContentHash, Got: want}
		}
		line.ContentHash = want
		db.LineByHash[hash] = line
	}

	for offsetStr, line := range doc.OverrideByOffset {
		offset64, err := strconv.ParseUint(offsetStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("tldb: override key %q is not a valid offset: %w", offsetStr, err)
		}
		want := script.Hash(line.JPText)
		if line.ContentHash != want {
			return nil, &HashMismatchError{Hash: line.ContentHash, Got: want}
		}
		db.OverrideByOffset[uint32(offset64)] = line
	}

	for from, to := range doc.CharSwap {
		fromRunes, toRunes := []rune(from), []rune(to)
		if len(fromRunes) != 1 || len(toRunes) != 1 {
			return nil, fmt.Errorf("tldb: charswap entry %q -> %q is not single-character", from, to)
		}
		db.CharSwap[fromRunes[0]] = toRunes[0]
	}

	return db, nil
}
