package rewrite

import (
	"encoding/binary"

	"seehuhn.de/go/deepluna/container"
	"seehuhn.de/go/deepluna/tldb"
)

// fillerNL and fillerSP are the filler-table strings §4.6 specifies;
// their semantic role is undocumented in the source format (§9, open
// question 2), so they are emitted verbatim with no interpretation
// attached.
const (
	fillerNL = "  \r\n"
	fillerSP = "　\r\n"
)

// Generate runs Rewrite over db and packs the result into a new
// script_text container image, implementing §4.6's "generate a
// script_text_mrg" operation. It lives in this package rather than as
// a tldb.DB method to keep the dependency direction rewrite -> tldb,
// not the reverse.
func Generate(db *tldb.DB, enableCharSwap bool) ([]byte, error) {
	offsetToString, err := Rewrite(db, enableCharSwap)
	if err != nil {
		return nil, err
	}

	offsets, strs := buildOffsetAndStringTable(offsetToString)
	fillNL := buildFillerTable(offsets, fillerNL)
	fillSP := buildFillerTable(offsets, fillerSP)

	sections := [][]byte{
		offsets, strs,
		fillNL.offsets, fillNL.strings,
		fillSP.offsets, fillSP.strings,
		fillSP.offsets, fillSP.strings,
		fillSP.offsets, fillSP.strings,
	}
	return container.Pack(sections), nil
}

// buildOffsetAndStringTable builds the real offset table + string
// table pair: for each offset in 0..=max_offset, a big-endian u32
// pointing at the current position of the string-table writer,
// followed by that offset's UTF-8 bytes (or nothing if absent).
// The table is terminated by the final data position twice, then
// 0xFFFFFFFF.
func buildOffsetAndStringTable(offsetToString map[uint32]string) (offsetTable, stringTable []byte) {
	maxOffset := uint32(0)
	for offset := range offsetToString {
		if offset > maxOffset {
			maxOffset = offset
		}
	}

	var offsets []byte
	var strs []byte
	for o := uint32(0); o <= maxOffset; o++ {
		offsets = binary.BigEndian.AppendUint32(offsets, uint32(len(strs)))
		if s, ok := offsetToString[o]; ok {
			strs = append(strs, []byte(s)...)
		}
	}
	finalPos := uint32(len(strs))
	offsets = binary.BigEndian.AppendUint32(offsets, finalPos)
	offsets = binary.BigEndian.AppendUint32(offsets, finalPos)
	offsets = binary.BigEndian.AppendUint32(offsets, 0xFFFFFFFF)

	return offsets, strs
}

type fillerTable struct {
	offsets []byte
	strings []byte
}

// buildFillerTable emits the same offset/string table shape as
// buildOffsetAndStringTable but with every string replaced by the
// fixed filler value, for every offset 0..max_offset of the real
// table, including offsets that have no string.
func buildFillerTable(realOffsets []byte, filler string) fillerTable {
	count := (len(realOffsets) - 12) / 4 // minus the three terminator words

	var offsets []byte
	var strs []byte
	for i := 0; i < count; i++ {
		offsets = binary.BigEndian.AppendUint32(offsets, uint32(len(strs)))
		strs = append(strs, []byte(filler)...)
	}
	finalPos := uint32(len(strs))
	offsets = binary.BigEndian.AppendUint32(offsets, finalPos)
	offsets = binary.BigEndian.AppendUint32(offsets, finalPos)
	offsets = binary.BigEndian.AppendUint32(offsets, 0xFFFFFFFF)

	return fillerTable{offsets: offsets, strings: strs}
}
