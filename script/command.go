// Package script tokenizes a decompressed script's "_OPCODE(ARGS);"
// bytecode into typed TextCommands, extracting the page, glue, choice
// and modifier metadata each text-emitting opcode carries alongside
// its StringTable offset references.
package script

// TextCommand is one text-emission event extracted from a script.
type TextCommand struct {
	Offset uint32 `json:"offset"`
	JPHash string `json:"jp_hash"`
	// PageNumber is the most recent PGST argument seen before this
	// command (0 if none has been seen yet), or -1 for orphaned
	// (unreferenced) offsets.
	PageNumber       int32    `json:"page_number"`
	HasRuby          bool     `json:"has_ruby,omitempty"`
	IsGlued          bool     `json:"is_glued,omitempty"`
	IsChoice         bool     `json:"is_choice,omitempty"`
	Modifiers        []string `json:"modifiers,omitempty"`
	HasForcedNewline bool     `json:"has_forced_newline,omitempty"`
}
