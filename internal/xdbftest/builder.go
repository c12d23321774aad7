// Package xdbftest builds synthetic XDBF containers for tests.
//
// It deliberately does not import pkg/xdbf so that the decoder's own
// in-package tests can use it.
package xdbftest

import "encoding/binary"

const (
	SectionMetadata    uint16 = 1
	SectionImage       uint16 = 2
	SectionStringTable uint16 = 3

	IDTitle        uint64 = 0x8000
	IDAchievements uint64 = 0x58414348
	IDLocale       uint64 = 0x58535443

	magicXDBF uint32 = 0x58444246
	magicXSTR uint32 = 0x58535452
	magicXACH uint32 = 0x58414348
	magicXSTC uint32 = 0x58535443
)

type entry struct {
	section uint16
	id      uint64
	data    []byte
}

// Builder assembles a container. Blocks are laid out in the order added.
type Builder struct {
	entries    []entry
	spareSlots int
	freeSlots  int
	magic      uint32
}

func New() *Builder {
	return &Builder{magic: magicXDBF}
}

// Add appends a directory entry and its block.
func (b *Builder) Add(section uint16, id uint64, data []byte) *Builder {
	b.entries = append(b.entries, entry{section: section, id: id, data: data})
	return b
}

// SpareSlots reserves n directory slots beyond the used ones.
func (b *Builder) SpareSlots(n int) *Builder {
	b.spareSlots = n
	return b
}

// FreeSlots reserves n free-list records.
func (b *Builder) FreeSlots(n int) *Builder {
	b.freeSlots = n
	return b
}

// Magic overrides the container magic.
func (b *Builder) Magic(m uint32) *Builder {
	b.magic = m
	return b
}

// Bytes serializes the container.
func (b *Builder) Bytes() []byte {
	slots := len(b.entries) + b.spareSlots
	out := make([]byte, 16, 16+slots*18+b.freeSlots*8)
	binary.BigEndian.PutUint32(out[0:4], b.magic)
	binary.BigEndian.PutUint32(out[4:8], uint32(slots))
	binary.BigEndian.PutUint32(out[8:12], uint32(len(b.entries)))
	binary.BigEndian.PutUint32(out[12:16], uint32(b.freeSlots))

	var content []byte
	for _, e := range b.entries {
		var rec [18]byte
		binary.BigEndian.PutUint16(rec[0:2], e.section)
		binary.BigEndian.PutUint64(rec[2:10], e.id)
		binary.BigEndian.PutUint32(rec[10:14], uint32(len(content)))
		binary.BigEndian.PutUint32(rec[14:18], uint32(len(e.data)))
		out = append(out, rec[:]...)
		content = append(content, e.data...)
	}
	out = append(out, make([]byte, b.spareSlots*18)...)
	for i := 0; i < b.freeSlots; i++ {
		var rec [8]byte
		binary.BigEndian.PutUint32(rec[0:4], uint32(len(content)))
		out = append(out, rec[:]...)
	}
	return append(out, content...)
}

// String is one string table record.
type String struct {
	ID   uint16
	Text string
}

// StringTable encodes a version 1 string table block.
func StringTable(records ...String) []byte {
	out := make([]byte, 12)
	binary.BigEndian.PutUint32(out[0:4], magicXSTR)
	binary.BigEndian.PutUint32(out[4:8], 1)
	binary.BigEndian.PutUint32(out[8:12], uint32(len(records)))
	for _, r := range records {
		var hdr [4]byte
		binary.BigEndian.PutUint16(hdr[0:2], r.ID)
		binary.BigEndian.PutUint16(hdr[2:4], uint16(len(r.Text)))
		out = append(out, hdr[:]...)
		out = append(out, r.Text...)
	}
	return out
}

// Achievement is one achievements record.
type Achievement struct {
	ID            uint32
	ImageID       uint32
	Gamerscore    uint32
	Flags         uint32
	LabelID       uint16
	DescriptionID uint16
	UnachievedID  uint16
}

// Achievements encodes a version 1 achievements block.
func Achievements(records ...Achievement) []byte {
	out := make([]byte, 12, 12+22*len(records))
	binary.BigEndian.PutUint32(out[0:4], magicXACH)
	binary.BigEndian.PutUint32(out[4:8], 1)
	binary.BigEndian.PutUint32(out[8:12], uint32(len(records)))
	for _, r := range records {
		var rec [22]byte
		binary.BigEndian.PutUint32(rec[0:4], r.ID)
		binary.BigEndian.PutUint32(rec[4:8], r.ImageID)
		binary.BigEndian.PutUint32(rec[8:12], r.Gamerscore)
		binary.BigEndian.PutUint32(rec[12:16], r.Flags)
		binary.BigEndian.PutUint16(rec[16:18], r.LabelID)
		binary.BigEndian.PutUint16(rec[18:20], r.DescriptionID)
		binary.BigEndian.PutUint16(rec[20:22], r.UnachievedID)
		out = append(out, rec[:]...)
	}
	return out
}

// LocaleBlock encodes a locale configuration block.
func LocaleBlock(defaultLanguage uint32) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint32(out[0:4], magicXSTC)
	binary.BigEndian.PutUint32(out[4:8], defaultLanguage)
	return out
}

// Title builds a small but complete title container: a locale block, an
// English and a Japanese string table, an icon and two achievements.
func Title(name string) []byte {
	en := StringTable(
		String{ID: uint16(IDTitle), Text: name},
		String{ID: 1, Text: "First Steps"},
		String{ID: 2, Text: "Finish the tutorial"},
		String{ID: 3, Text: "Secret"},
		String{ID: 4, Text: "Veteran"},
		String{ID: 5, Text: "Win 100 matches"},
	)
	ja := StringTable(
		String{ID: uint16(IDTitle), Text: name + " (JP)"},
		String{ID: 1, Text: "はじめの一歩"},
	)
	ach := Achievements(
		Achievement{ID: 1, ImageID: 10, Gamerscore: 10, Flags: 0x8 | 3, LabelID: 1, DescriptionID: 2, UnachievedID: 3},
		Achievement{ID: 2, ImageID: 11, Gamerscore: 40, Flags: 2, LabelID: 4, DescriptionID: 5, UnachievedID: 3},
	)
	return New().
		Add(SectionMetadata, IDLocale, LocaleBlock(1)).
		Add(SectionStringTable, 1, en).
		Add(SectionStringTable, 2, ja).
		Add(SectionMetadata, IDAchievements, ach).
		Add(SectionImage, IDTitle, []byte("\x89PNG\r\n\x1a\nicon")).
		FreeSlots(1).
		Bytes()
}
