// Package xdbf decodes XDBF title resource containers.
//
// An XDBF container is a read-only blob embedded in a game title's image. It
// holds localized string tables, the title icon and structured metadata such
// as the achievement list. The decoder never copies the backing buffer and
// never reads outside of it: malformed input yields empty results rather than
// errors or panics.
package xdbf

// Format constants must never change.
const (
	// MagicXDBF is the container magic, "XDBF" read as a big-endian uint32.
	MagicXDBF uint32 = 0x58444246
	// MagicXSTR tags a string table block.
	MagicXSTR uint32 = 0x58535452
	// MagicXACH tags an achievements block.
	MagicXACH uint32 = 0x58414348
	// MagicXSTC tags the locale configuration block.
	MagicXSTC uint32 = 0x58535443

	// StringTableVersion and AchievementsVersion are the only block
	// versions the decoder understands.
	StringTableVersion  uint32 = 1
	AchievementsVersion uint32 = 1
)

// Well-known entry ids.
const (
	IDTitle        uint64 = 0x8000
	IDAchievements uint64 = uint64(MagicXACH)
	IDLocale       uint64 = uint64(MagicXSTC)
)

// Section is the coarse category half of an entry's lookup key.
type Section uint16

const (
	SectionMetadata    Section = 0x0001
	SectionImage       Section = 0x0002
	SectionStringTable Section = 0x0003
)

func (s Section) String() string {
	switch s {
	case SectionMetadata:
		return "metadata"
	case SectionImage:
		return "image"
	case SectionStringTable:
		return "string-table"
	default:
		return "unknown"
	}
}
