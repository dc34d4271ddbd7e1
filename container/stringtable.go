package container

import (
	"encoding/binary"
	"strings"
)

// sceneNameSize is the fixed width of a ScriptFileName record in the
// allscr container's entry 0.
const sceneNameSize = 32

// DecodeSceneNames splits the allscr container's entry 0 into its
// fixed 32-byte, NUL-padded ASCII scene name records, trimming
// trailing NUL bytes from each.
func DecodeSceneNames(entry0 []byte) []string {
	names := make([]string, 0, len(entry0)/sceneNameSize)
	for off := 0; off+sceneNameSize <= len(entry0); off += sceneNameSize {
		names = append(names, strings.TrimRight(string(entry0[off:off+sceneNameSize]), "\x00"))
	}
	return names
}

// DecodeStringTable decodes a script_text container's entry 0 (a
// big-endian u32 offset table terminated by 0xFFFFFFFF) together with
// entry 1 (the concatenated UTF-8 string payload) into the logical
// StringTable: an ordered sequence of strings addressed by integer
// offset. Consecutive table entries delimit each string; the final
// table entry before the terminator marks the end of the last string
// rather than the start of one, so N table entries (before the
// terminator) yield N-1 strings.
func DecodeStringTable(offsetTable, stringData []byte) ([]string, error) {
	var starts []uint32
	for i := 0; i+4 <= len(offsetTable); i += 4 {
		v := binary.BigEndian.Uint32(offsetTable[i : i+4])
		if v == 0xFFFFFFFF {
			break
		}
		starts = append(starts, v)
	}
	if len(starts) == 0 {
		return nil, ErrTruncatedStringTable
	}

	strs := make([]string, 0, len(starts)-1)
	for i := 0; i+1 < len(starts); i++ {
		from, to := starts[i], starts[i+1]
		if to < from || int64(to) > int64(len(stringData)) {
			return nil, ErrTruncatedStringTable
		}
		strs = append(strs, string(stringData[from:to]))
	}
	return strs, nil
}
