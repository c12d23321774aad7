package xdbf

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/samcharles93/xdbf/internal/xdbftest"
)

func helloWorldTable() []byte {
	return xdbftest.StringTable(
		xdbftest.String{ID: 1, Text: "Hello"},
		xdbftest.String{ID: 2, Text: "World"},
	)
}

func TestResolveStringHelloWorld(t *testing.T) {
	t.Parallel()

	buf := xdbftest.New().Add(xdbftest.SectionStringTable, 1, helloWorldTable()).Bytes()
	block := New(buf).Lookup(SectionStringTable, 1)

	cases := []struct {
		id   uint16
		want string
	}{
		{1, "Hello"},
		{2, "World"},
		{3, ""},
	}
	for _, tc := range cases {
		if got := ResolveString(block, tc.id); got != tc.want {
			t.Fatalf("id %d: got %q want %q", tc.id, got, tc.want)
		}
		// Repeated lookups return the same text.
		if got := ResolveString(block, tc.id); got != tc.want {
			t.Fatalf("id %d second lookup: got %q want %q", tc.id, got, tc.want)
		}
	}
}

func TestResolveStringFirstMatchWins(t *testing.T) {
	t.Parallel()

	b := BlockOf(xdbftest.StringTable(
		xdbftest.String{ID: 5, Text: "one"},
		xdbftest.String{ID: 5, Text: "two"},
	))
	if got := ResolveString(b, 5); got != "one" {
		t.Fatalf("got %q want one", got)
	}
}

func TestResolveStringRejectsBadHeaders(t *testing.T) {
	t.Parallel()

	badMagic := helloWorldTable()
	binary.BigEndian.PutUint32(badMagic[0:4], MagicXACH)

	badVersion := helloWorldTable()
	binary.BigEndian.PutUint32(badVersion[4:8], 2)

	cases := []struct {
		name    string
		block   Block
		wantErr error
	}{
		{"missing", Block{}, ErrNotFound},
		{"short header", BlockOf(helloWorldTable()[:8]), ErrTruncated},
		{"bad magic", BlockOf(badMagic), ErrBadMagic},
		{"bad version", BlockOf(badVersion), ErrUnsupportedVersion},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveString(tc.block, 1); got != "" {
				t.Fatalf("got %q want empty", got)
			}
			if _, err := ParseStringTable(tc.block); !errors.Is(err, tc.wantErr) {
				t.Fatalf("parse error: got %v want %v", err, tc.wantErr)
			}
		})
	}
}

func TestResolveStringTruncatedRecord(t *testing.T) {
	t.Parallel()

	full := helloWorldTable()
	// Cut into the second record's text.
	b := BlockOf(full[:len(full)-2])

	if got := ResolveString(b, 1); got != "Hello" {
		t.Fatalf("record before truncation: got %q want Hello", got)
	}
	if got := ResolveString(b, 2); got != "" {
		t.Fatalf("truncated record: got %q want empty", got)
	}
	if _, err := ParseStringTable(b); !errors.Is(err, ErrTruncated) {
		t.Fatalf("parse error: got %v want ErrTruncated", err)
	}
}

func TestResolveStringCountExceedsRecords(t *testing.T) {
	t.Parallel()

	raw := helloWorldTable()
	binary.BigEndian.PutUint32(raw[8:12], 0xFFFFFFFF)
	b := BlockOf(raw)

	if got := ResolveString(b, 2); got != "World" {
		t.Fatalf("got %q want World", got)
	}
	if got := ResolveString(b, 9); got != "" {
		t.Fatalf("absent id: got %q want empty", got)
	}
}

func TestParseStringTable(t *testing.T) {
	t.Parallel()

	st, err := ParseStringTable(BlockOf(helloWorldTable()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if st.Len() != 2 {
		t.Fatalf("len: got %d want 2", st.Len())
	}
	recs := st.Records()
	if recs[0] != (StringRecord{ID: 1, Text: "Hello"}) || recs[1] != (StringRecord{ID: 2, Text: "World"}) {
		t.Fatalf("records: got %+v", recs)
	}
	if text, ok := st.Lookup(2); !ok || text != "World" {
		t.Fatalf("lookup 2: got %q %v", text, ok)
	}
	if _, ok := st.Lookup(3); ok {
		t.Fatalf("lookup 3 should miss")
	}

	var nilTable *StringTable
	if _, ok := nilTable.Lookup(1); ok || nilTable.Len() != 0 || nilTable.Records() != nil {
		t.Fatalf("nil table should be empty")
	}
}

func TestResolveStringEmptyTable(t *testing.T) {
	t.Parallel()

	if got := ResolveString(BlockOf(xdbftest.StringTable()), 1); got != "" {
		t.Fatalf("got %q want empty", got)
	}
}
