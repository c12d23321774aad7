package xdbf

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/samcharles93/xdbf/internal/xdbftest"
)

// TestContainerProperties checks lookup, resolution and safety invariants
// against generated inputs.
func TestContainerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	sections := []uint16{xdbftest.SectionMetadata, xdbftest.SectionImage, xdbftest.SectionStringTable}

	properties.Property("lookup returns each live entry's range", prop.ForAll(
		func(payloads []string) bool {
			b := xdbftest.New()
			for i, p := range payloads {
				b.Add(sections[i%len(sections)], uint64(i), []byte(p))
			}
			c := New(b.Bytes())
			if !c.Valid() {
				return false
			}
			for i, p := range payloads {
				got := c.Lookup(Section(sections[i%len(sections)]), uint64(i))
				if !got.Found() || !bytes.Equal(got.Bytes(), []byte(p)) {
					return false
				}
			}
			return !c.Lookup(SectionMetadata, uint64(len(payloads))).Found()
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("string resolution is idempotent and first-match", prop.ForAll(
		func(ids []uint16, query uint16) bool {
			records := make([]xdbftest.String, len(ids))
			want := ""
			found := false
			for i, id := range ids {
				records[i] = xdbftest.String{ID: id, Text: fmt.Sprintf("s%d", i)}
				if !found && id == query {
					want, found = records[i].Text, true
				}
			}
			block := BlockOf(xdbftest.StringTable(records...))
			first := ResolveString(block, query)
			second := ResolveString(block, query)
			return first == want && first == second
		},
		gen.SliceOf(gen.UInt16Range(0, 16)),
		gen.UInt16Range(0, 16),
	))

	properties.Property("arbitrary bytes never escape the buffer", prop.ForAll(
		func(raw []byte) bool {
			exercise(t, raw)
			// Force a valid magic so the directory walk is exercised too.
			withMagic := append([]byte("XDBF"), raw...)
			exercise(t, withMagic)
			return true
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
