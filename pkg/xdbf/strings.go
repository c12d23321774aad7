package xdbf

import (
	"encoding/binary"
	"fmt"
)

const (
	stringTableHeaderSize  = 12
	stringRecordHeaderSize = 4
)

// StringRecord is one entry of a string table. Text is the raw stored bytes.
type StringRecord struct {
	ID   uint16
	Text string
}

// StringTable is a decoded locale string table.
type StringTable struct {
	records []StringRecord
}

type stringTableHeader struct {
	Magic   uint32
	Version uint32
	Count   uint32
}

func decodeStringTableHeader(b []byte) (stringTableHeader, error) {
	if len(b) < stringTableHeaderSize {
		return stringTableHeader{}, fmt.Errorf("%w: string table header needs %d bytes, have %d",
			ErrTruncated, stringTableHeaderSize, len(b))
	}
	h := stringTableHeader{
		Magic:   binary.BigEndian.Uint32(b[0:4]),
		Version: binary.BigEndian.Uint32(b[4:8]),
		Count:   binary.BigEndian.Uint32(b[8:12]),
	}
	if h.Magic != MagicXSTR {
		return h, fmt.Errorf("%w: string table magic %#08x", ErrBadMagic, h.Magic)
	}
	if h.Version != StringTableVersion {
		return h, fmt.Errorf("%w: string table version %d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}

// stringRecords walks the records of a validated table. fn returns false to
// stop early. The walk stops with ErrTruncated at the first record that does
// not fit inside b.
func stringRecords(b []byte, count uint32, fn func(id uint16, text []byte) bool) error {
	off := stringTableHeaderSize
	for i := uint32(0); i < count; i++ {
		if len(b)-off < stringRecordHeaderSize {
			return fmt.Errorf("%w: string record %d header at offset %d", ErrTruncated, i, off)
		}
		id := binary.BigEndian.Uint16(b[off : off+2])
		n := int(binary.BigEndian.Uint16(b[off+2 : off+4]))
		off += stringRecordHeaderSize
		if len(b)-off < n {
			return fmt.Errorf("%w: string record %d (id %d) needs %d bytes at offset %d",
				ErrTruncated, i, id, n, off)
		}
		if !fn(id, b[off:off+n]) {
			return nil
		}
		off += n
	}
	return nil
}

// ParseStringTable strictly decodes a string table block.
func ParseStringTable(b Block) (*StringTable, error) {
	st, err := decodeStringTable(b)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// decodeStringTable returns the records that decoded cleanly along with the
// first error hit. The soft accessors use the partial table so that they
// agree with ResolveString on truncated blocks.
func decodeStringTable(b Block) (*StringTable, error) {
	if !b.Found() {
		return nil, b.Err()
	}
	data := b.Bytes()
	h, err := decodeStringTableHeader(data)
	if err != nil {
		return nil, err
	}
	// Every record takes at least its header, which bounds the allocation.
	capHint := min(uint64(h.Count), uint64(len(data)/stringRecordHeaderSize))
	st := &StringTable{records: make([]StringRecord, 0, capHint)}
	err = stringRecords(data, h.Count, func(id uint16, text []byte) bool {
		st.records = append(st.records, StringRecord{ID: id, Text: string(text)})
		return true
	})
	return st, err
}

// Lookup returns the text of the first record with the given id.
func (t *StringTable) Lookup(id uint16) (string, bool) {
	if t == nil {
		return "", false
	}
	for i := range t.records {
		if t.records[i].ID == id {
			return t.records[i].Text, true
		}
	}
	return "", false
}

// Len returns the number of records.
func (t *StringTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Records returns the records in storage order.
func (t *StringTable) Records() []StringRecord {
	if t == nil {
		return nil
	}
	out := make([]StringRecord, len(t.records))
	copy(out, t.records)
	return out
}

// ResolveString returns the text stored under id in a string table block.
// It returns "" when the block is missing, fails validation, does not hold
// the id, or is truncated before the id is reached.
func ResolveString(b Block, id uint16) string {
	if !b.Found() {
		return ""
	}
	data := b.Bytes()
	h, err := decodeStringTableHeader(data)
	if err != nil {
		return ""
	}
	var text string
	_ = stringRecords(data, h.Count, func(rid uint16, raw []byte) bool {
		if rid == id {
			text = string(raw)
			return false
		}
		return true
	})
	return text
}
