package xdbf

import "encoding/binary"

const localeBlockSize = 8

// GameData is the convenience layer over a title's container.
type GameData struct {
	*Container
}

// NewGameData indexes buf as a title container. Like New, it never fails.
func NewGameData(buf []byte) *GameData {
	return &GameData{Container: New(buf)}
}

// DefaultLocale returns the locale declared by the container's locale
// block. A missing, short or mis-tagged block yields DefaultLocale.
func (g *GameData) DefaultLocale() Locale {
	b := g.Lookup(SectionMetadata, IDLocale)
	if !b.Found() || b.Len() < localeBlockSize {
		return DefaultLocale
	}
	data := b.Bytes()
	if binary.BigEndian.Uint32(data[0:4]) != MagicXSTC {
		return DefaultLocale
	}
	return Locale(binary.BigEndian.Uint32(data[4:8]))
}

// StringTable returns the string table block for locale.
func (g *GameData) StringTable(locale Locale) Block {
	return g.Lookup(SectionStringTable, uint64(locale))
}

// String resolves id in the string table for locale.
func (g *GameData) String(locale Locale, id uint16) string {
	return ResolveString(g.StringTable(locale), id)
}

// Title returns the title name in the default locale, or "".
func (g *GameData) Title() string {
	return g.String(g.DefaultLocale(), uint16(IDTitle))
}

// Icon returns the raw title icon block. The payload is usually a PNG.
func (g *GameData) Icon() Block {
	return g.Lookup(SectionImage, IDTitle)
}

// Achievements returns the achievement list with text from locale.
func (g *GameData) Achievements(locale Locale) ([]Achievement, uint32) {
	return ExtractAchievements(g.Lookup(SectionMetadata, IDAchievements), g.StringTable(locale))
}

// AchievementCount returns the declared number of achievements.
func (g *GameData) AchievementCount() uint32 {
	return AchievementCount(g.Lookup(SectionMetadata, IDAchievements))
}

// Locales returns the locales that have a string table, in directory order.
func (g *GameData) Locales() []Locale {
	var out []Locale
	seen := make(map[Locale]bool)
	for _, e := range g.Entries() {
		if e.Section != SectionStringTable || e.ID > uint64(^uint32(0)) {
			continue
		}
		l := Locale(e.ID)
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// Summary is a snapshot of a title's headline metadata.
type Summary struct {
	Title            string
	DefaultLocale    Locale
	Locales          []Locale
	AchievementCount uint32
	Gamerscore       uint64
	HasIcon          bool
	IconSize         int
}

// Summary collects the headline metadata in the default locale.
func (g *GameData) Summary() Summary {
	locale := g.DefaultLocale()
	s := Summary{
		Title:         g.String(locale, uint16(IDTitle)),
		DefaultLocale: locale,
		Locales:       g.Locales(),
	}
	achievements, count := g.Achievements(locale)
	s.AchievementCount = count
	for _, a := range achievements {
		s.Gamerscore += uint64(a.Gamerscore)
	}
	icon := g.Icon()
	s.HasIcon = icon.Found()
	s.IconSize = icon.Len()
	return s
}
