package tldb

// DiffCandidate is one proposed (en_text, comment) pair for a given
// hash or offset, as produced by the readable-text import parser
// (treated as an external black box per §1).
type DiffCandidate struct {
	EnText  string `json:"en_text"`
	Comment string `json:"comment,omitempty"`
}

// Diff is the import parser's output contract: a set of candidate
// translations keyed by hash, plus a set keyed by offset (used for
// per-offset overrides). A key with more than one candidate is a
// conflict the importer could not resolve; apply_diff skips those.
// The JSON shape lets cmd/deepluna's import subcommand consume an
// already-parsed diff without the core reimplementing the
// readable-text grammar's parser, which is an external collaborator's
// job per §1.
type Diff struct {
	ByHash   map[string][]DiffCandidate `json:"by_hash"`
	ByOffset map[uint32][]DiffCandidate `json:"by_offset"`
}

// ApplyDiff commits every unique (single-candidate) entry in diff and
// skips every conflicting (multi-candidate) entry. It returns the
// number of entries applied and skipped; conflict resolution itself
// is an external concern (§4.5).
func (db *DB) ApplyDiff(diff Diff) (applied, skipped int) {
	for hash, candidates := range diff.ByHash {
		if len(candidates) != 1 {
			skipped++
			continue
		}
		db.SetTranslationAndCommentForHash(hash, candidates[0].EnText, candidates[0].Comment)
		applied++
	}

	for offset, candidates := range diff.ByOffset {
		if len(candidates) != 1 {
			skipped++
			continue
		}
		db.OverrideTranslationAndCommentForOffset(offset, candidates[0].EnText, candidates[0].Comment)
		applied++
	}

	return applied, skipped
}
