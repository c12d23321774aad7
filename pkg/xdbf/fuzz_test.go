package xdbf

import (
	"testing"

	"github.com/samcharles93/xdbf/internal/xdbftest"
)

// exercise runs every accessor over buf. Slices handed out must alias buf.
func exercise(t *testing.T, buf []byte) {
	g := NewGameData(buf)
	checkAliases := func(b Block) {
		if !b.Found() || b.Len() == 0 {
			return
		}
		data := b.Bytes()
		if cap(data) > len(buf) {
			t.Fatalf("block capacity %d exceeds buffer %d", cap(data), len(buf))
		}
	}

	_ = g.Header()
	_ = g.FreeList()
	for _, e := range g.Entries() {
		b := g.Block(e)
		checkAliases(b)
		_ = ResolveString(b, uint16(e.ID))
		_, _ = ParseStringTable(b)
		_, _ = ExtractAchievements(b, b)
	}
	checkAliases(g.Icon())
	_ = g.Title()
	for _, l := range g.Locales() {
		_, _ = g.Achievements(l)
	}
	_ = g.Summary()
}

func FuzzContainer(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("XDBF"))
	f.Add(xdbftest.Title("Seed"))
	f.Add(xdbftest.New().Add(xdbftest.SectionStringTable, 1, helloWorldTable()).Bytes())

	f.Fuzz(func(t *testing.T, buf []byte) {
		exercise(t, buf)
	})
}

func TestTruncatedPrefixesAreSafe(t *testing.T) {
	t.Parallel()

	full := xdbftest.Title("Prefix")
	for n := 0; n <= len(full); n++ {
		exercise(t, full[:n:n])
	}
}
