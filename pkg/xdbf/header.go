package xdbf

import "encoding/binary"

// On-disk record sizes. Records are packed and big-endian.
const (
	headerSize    = 16
	entrySize     = 18
	freeEntrySize = 8
)

// Header is the fixed container header.
type Header struct {
	Magic         uint32
	SlotCount     uint32
	UsedSlotCount uint32
	FreeSlotCount uint32
}

// Valid reports whether the header carries the container magic.
func (h *Header) Valid() bool {
	return h.Magic == MagicXDBF
}

// Entry is one directory record. Offset is relative to the content region.
type Entry struct {
	Section Section
	ID      uint64
	Offset  uint32
	Size    uint32
}

// End returns the content-relative end of the entry's range.
func (e Entry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Size)
}

// FreeEntry describes a free-list record. The reader only skips these.
type FreeEntry struct {
	Offset uint32
	Size   uint32
}

func decodeHeader(b []byte) (Header, bool) {
	if len(b) < headerSize {
		return Header{}, false
	}
	return Header{
		Magic:         binary.BigEndian.Uint32(b[0:4]),
		SlotCount:     binary.BigEndian.Uint32(b[4:8]),
		UsedSlotCount: binary.BigEndian.Uint32(b[8:12]),
		FreeSlotCount: binary.BigEndian.Uint32(b[12:16]),
	}, true
}

func decodeEntry(b []byte) (Entry, bool) {
	if len(b) < entrySize {
		return Entry{}, false
	}
	return Entry{
		Section: Section(binary.BigEndian.Uint16(b[0:2])),
		ID:      binary.BigEndian.Uint64(b[2:10]),
		Offset:  binary.BigEndian.Uint32(b[10:14]),
		Size:    binary.BigEndian.Uint32(b[14:18]),
	}, true
}

func decodeFreeEntry(b []byte) (FreeEntry, bool) {
	if len(b) < freeEntrySize {
		return FreeEntry{}, false
	}
	return FreeEntry{
		Offset: binary.BigEndian.Uint32(b[0:4]),
		Size:   binary.BigEndian.Uint32(b[4:8]),
	}, true
}
