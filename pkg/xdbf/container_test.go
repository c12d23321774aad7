package xdbf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/samcharles93/xdbf/internal/xdbftest"
)

func TestLookupReturnsEntryRanges(t *testing.T) {
	t.Parallel()

	buf := xdbftest.New().
		Add(xdbftest.SectionMetadata, 7, []byte("meta")).
		Add(xdbftest.SectionImage, IDTitle, []byte("icon-bytes")).
		Add(xdbftest.SectionStringTable, 1, []byte("strings")).
		FreeSlots(2).
		SpareSlots(3).
		Bytes()

	c := New(buf)
	if !c.Valid() {
		t.Fatalf("container invalid: %v", c.Err())
	}
	if got := c.Header().SlotCount; got != 6 {
		t.Fatalf("slot count: got %d want 6", got)
	}
	if got := len(c.Entries()); got != 3 {
		t.Fatalf("live entries: got %d want 3", got)
	}
	if got := len(c.FreeList()); got != 2 {
		t.Fatalf("free list: got %d want 2", got)
	}
	wantContent := uint64(16 + 6*18 + 2*8)
	if c.ContentOffset() != wantContent {
		t.Fatalf("content offset: got %d want %d", c.ContentOffset(), wantContent)
	}

	cases := []struct {
		section Section
		id      uint64
		want    string
	}{
		{SectionMetadata, 7, "meta"},
		{SectionImage, IDTitle, "icon-bytes"},
		{SectionStringTable, 1, "strings"},
	}
	for _, tc := range cases {
		b := c.Lookup(tc.section, tc.id)
		if !b.Found() {
			t.Fatalf("lookup %s/%#x: not found: %v", tc.section, tc.id, b.Err())
		}
		if !bytes.Equal(b.Bytes(), []byte(tc.want)) {
			t.Fatalf("lookup %s/%#x: got %q want %q", tc.section, tc.id, b.Bytes(), tc.want)
		}
		if b.Err() != nil {
			t.Fatalf("found block reported error: %v", b.Err())
		}
	}

	miss := c.Lookup(SectionImage, 7)
	if miss.Found() || miss.Len() != 0 {
		t.Fatalf("expected miss for wrong section")
	}
	if !errors.Is(miss.Err(), ErrNotFound) {
		t.Fatalf("miss error: got %v want ErrNotFound", miss.Err())
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	t.Parallel()

	buf := xdbftest.New().
		Add(xdbftest.SectionMetadata, 1, []byte("first")).
		Add(xdbftest.SectionMetadata, 1, []byte("second")).
		Bytes()
	b := New(buf).Lookup(SectionMetadata, 1)
	if string(b.Bytes()) != "first" {
		t.Fatalf("duplicate key: got %q want first", b.Bytes())
	}
}

func TestLookupIgnoresUnusedSlots(t *testing.T) {
	t.Parallel()

	buf := xdbftest.New().
		Add(xdbftest.SectionMetadata, 1, []byte("live")).
		Add(xdbftest.SectionMetadata, 2, []byte("stale")).
		Bytes()
	binary.BigEndian.PutUint32(buf[8:12], 1)

	c := New(buf)
	if !c.Lookup(SectionMetadata, 1).Found() {
		t.Fatalf("live entry missing")
	}
	if c.Lookup(SectionMetadata, 2).Found() {
		t.Fatalf("entry past used slot count should not be visible")
	}
}

func TestUsedSlotsClampedToSlotCount(t *testing.T) {
	t.Parallel()

	buf := xdbftest.New().Add(xdbftest.SectionMetadata, 1, []byte("x")).Bytes()
	binary.BigEndian.PutUint32(buf[8:12], 1000)

	c := New(buf)
	if !c.Valid() {
		t.Fatalf("container invalid: %v", c.Err())
	}
	if got := len(c.Entries()); got != 1 {
		t.Fatalf("entries: got %d want 1", got)
	}
}

func TestZeroLengthBlockIsFound(t *testing.T) {
	t.Parallel()

	buf := xdbftest.New().Add(xdbftest.SectionMetadata, 9, nil).Bytes()
	b := New(buf).Lookup(SectionMetadata, 9)
	if !b.Found() {
		t.Fatalf("zero-length block should be found: %v", b.Err())
	}
	if b.Len() != 0 {
		t.Fatalf("length: got %d want 0", b.Len())
	}
}

func TestLookupTruncatedBlock(t *testing.T) {
	t.Parallel()

	buf := xdbftest.New().
		Add(xdbftest.SectionMetadata, 1, []byte("ok")).
		Add(xdbftest.SectionMetadata, 2, []byte("runs past the end")).
		Bytes()
	buf = buf[:len(buf)-4]

	c := New(buf)
	if !c.Valid() {
		t.Fatalf("container invalid: %v", c.Err())
	}
	if got := c.Lookup(SectionMetadata, 1); string(got.Bytes()) != "ok" {
		t.Fatalf("intact block: got %q", got.Bytes())
	}
	b := c.Lookup(SectionMetadata, 2)
	if b.Found() {
		t.Fatalf("truncated block should not be found")
	}
	if !errors.Is(b.Err(), ErrTruncated) {
		t.Fatalf("error: got %v want ErrTruncated", b.Err())
	}
}

func TestInvalidContainers(t *testing.T) {
	t.Parallel()

	good := xdbftest.New().Add(xdbftest.SectionMetadata, 1, []byte("x")).Bytes()

	hugeDir := bytes.Clone(good)
	binary.BigEndian.PutUint32(hugeDir[4:8], 0xFFFFFFFF)

	hugeFree := bytes.Clone(good)
	binary.BigEndian.PutUint32(hugeFree[12:16], 0xFFFFFFFF)

	cases := []struct {
		name string
		buf  []byte
	}{
		{"nil", nil},
		{"short", good[:15]},
		{"bad magic", xdbftest.New().Magic(0x46424458).Bytes()},
		{"directory past end", hugeDir},
		{"free list past end", hugeFree},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := New(tc.buf)
			if c.Valid() {
				t.Fatalf("expected invalid container")
			}
			if !errors.Is(c.Err(), ErrInvalid) {
				t.Fatalf("error: got %v want ErrInvalid", c.Err())
			}
			assertEmptyContainer(t, c)
		})
	}
}

func TestNilContainerIsInvalid(t *testing.T) {
	t.Parallel()

	var c *Container
	if c.Valid() {
		t.Fatalf("nil container should be invalid")
	}
	assertEmptyContainer(t, c)
}

func assertEmptyContainer(t *testing.T, c *Container) {
	t.Helper()
	if c.Header() != (Header{}) {
		t.Fatalf("header should be zero")
	}
	if c.Entries() != nil || c.FreeList() != nil {
		t.Fatalf("entries and free list should be nil")
	}
	if c.ContentOffset() != 0 || c.Size() != 0 {
		t.Fatalf("offsets should be zero")
	}
	b := c.Lookup(SectionMetadata, 1)
	if b.Found() || b.Bytes() != nil {
		t.Fatalf("lookup on invalid container returned data")
	}
	if !errors.Is(b.Err(), ErrInvalid) {
		t.Fatalf("lookup error: got %v want ErrInvalid", b.Err())
	}
}

func TestBlockOf(t *testing.T) {
	t.Parallel()

	var zero Block
	if zero.Found() || !errors.Is(zero.Err(), ErrNotFound) {
		t.Fatalf("zero block should be a miss")
	}
	b := BlockOf([]byte{})
	if !b.Found() || b.Len() != 0 || b.Err() != nil {
		t.Fatalf("BlockOf(empty) should be a found empty block")
	}
}
