// Package container implements the sectored archive format shared by
// both input archives (allscr, script_text) and by the string-table
// archive the rewriter produces: a 6-byte magic, a table of fixed-size
// entry headers, and a data region addressed by sector/byte offsets.
package container

import (
	"encoding/binary"
	"fmt"
)

const (
	magic      = "mrgd00"
	sectorSize = 0x800
	headerSize = 8
	padBoundary = 16
	tailBoundary = 8
)

// entryHeader is the 8-byte, little-endian on-disk entry descriptor.
type entryHeader struct {
	SectorOffset uint16
	ByteOffset   uint16
	SizeSectors  uint16
	SizeBytes    uint16
}

// relativeStart returns the entry's byte offset relative to the start
// of the data region.
func (h entryHeader) relativeStart() int64 {
	return int64(h.SectorOffset)*sectorSize + int64(h.ByteOffset)
}

// dataSize returns the entry's payload length. The low 16 bits come
// from SizeBytes; the high bits come from the sector-rounded size.
// This formula is preserved exactly as specified. It returns the true
// length when that length is an exact multiple of 0x10000 (SizeBytes
// 0) and whenever the length's low 16 bits are at most 0xF800; when
// they are above 0xF800, the sector round-up carries into bit 16 and
// the result is 0x10000 larger than the true length.
func (h entryHeader) dataSize() int64 {
	upper := int64(h.SizeSectors) * sectorSize
	return (upper &^ 0xFFFF) | int64(h.SizeBytes)
}

// Parse splits a container image into its entry payloads. It fails
// with ErrBadMagic if the first 6 bytes don't match, and with
// ErrTruncatedEntry if any entry's advertised size runs past the end
// of data.
func Parse(data []byte) ([][]byte, error) {
	if len(data) < headerSize || string(data[:6]) != magic {
		return nil, ErrBadMagic
	}
	entryCount := int(binary.LittleEndian.Uint16(data[6:8]))

	headersEnd := headerSize + headerSize*entryCount
	if headersEnd > len(data) {
		return nil, fmt.Errorf("%w: entry table runs past end of input", ErrTruncatedEntry)
	}

	headers := make([]entryHeader, entryCount)
	for i := range headers {
		off := headerSize + i*headerSize
		headers[i] = entryHeader{
			SectorOffset: binary.LittleEndian.Uint16(data[off : off+2]),
			ByteOffset:   binary.LittleEndian.Uint16(data[off+2 : off+4]),
			SizeSectors:  binary.LittleEndian.Uint16(data[off+4 : off+6]),
			SizeBytes:    binary.LittleEndian.Uint16(data[off+6 : off+8]),
		}
	}

	dataStart := int64(headersEnd)
	payloads := make([][]byte, entryCount)
	for i, h := range headers {
		start := dataStart + h.relativeStart()
		size := h.dataSize()
		if start < 0 || size < 0 || start+size > int64(len(data)) {
			return nil, fmt.Errorf("%w: entry %d wants [%d:%d), input is %d bytes",
				ErrTruncatedEntry, i, start, start+size, len(data))
		}
		payloads[i] = data[start : start+size]
	}
	return payloads, nil
}

// Pack builds a fresh container image from the given section payloads.
// Each section is padded to a 16-byte boundary with 0xFF before being
// written; the final image is padded to an 8-byte boundary with 0xFF.
// Pack does not attempt to reproduce any particular original byte
// layout — only the logical invariants (entry count, offsets, sizes,
// and payload bytes) are contractual.
func Pack(sections [][]byte) []byte {
	headers := make([]entryHeader, len(sections))
	var data []byte
	var pos int64

	for i, section := range sections {
		padded := padTo(section, padBoundary)
		headers[i] = entryHeader{
			SectorOffset: uint16(pos / sectorSize),
			ByteOffset:   uint16(pos % sectorSize),
			SizeSectors:  uint16((len(padded) + sectorSize - 1) / sectorSize),
			SizeBytes:    uint16(len(padded) & 0xFFFF),
		}
		data = append(data, padded...)
		pos += int64(len(padded))
	}

	out := make([]byte, 0, headerSize+headerSize*len(sections)+len(data))
	out = append(out, magic...)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(sections)))
	for _, h := range headers {
		out = binary.LittleEndian.AppendUint16(out, h.SectorOffset)
		out = binary.LittleEndian.AppendUint16(out, h.ByteOffset)
		out = binary.LittleEndian.AppendUint16(out, h.SizeSectors)
		out = binary.LittleEndian.AppendUint16(out, h.SizeBytes)
	}
	out = append(out, data...)

	return padTo(out, tailBoundary)
}

// padTo returns data padded with 0xFF bytes up to the next multiple of
// boundary. data itself is never modified.
func padTo(data []byte, boundary int) []byte {
	rem := len(data) % boundary
	if rem == 0 {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}
	padLen := boundary - rem
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = 0xFF
	}
	return out
}
