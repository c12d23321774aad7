package xdbf

import (
	"encoding/binary"
	"fmt"
)

const (
	achievementsHeaderSize = 12
	achievementRecordSize  = 22
)

// AchievementType is the kind encoded in the low bits of Achievement.Flags.
type AchievementType uint32

const (
	AchievementTypeUnknown AchievementType = iota
	AchievementTypeCompletion
	AchievementTypeLeveling
	AchievementTypeUnlock
	AchievementTypeEvent
	AchievementTypeTournament
	AchievementTypeCheckpoint
	AchievementTypeOther
)

const (
	achievementTypeMask       = 0x7
	achievementShowUnachieved = 0x8
)

func (t AchievementType) String() string {
	switch t {
	case AchievementTypeCompletion:
		return "completion"
	case AchievementTypeLeveling:
		return "leveling"
	case AchievementTypeUnlock:
		return "unlock"
	case AchievementTypeEvent:
		return "event"
	case AchievementTypeTournament:
		return "tournament"
	case AchievementTypeCheckpoint:
		return "checkpoint"
	case AchievementTypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// Achievement is one record of the achievements block joined with its
// localized text. Text fields are empty when the string id is absent.
type Achievement struct {
	ID            uint32
	ImageID       uint32
	Gamerscore    uint32
	Flags         uint32
	LabelID       uint16
	DescriptionID uint16
	UnachievedID  uint16

	Label                 string
	Description           string
	UnachievedDescription string
}

// Type returns the achievement kind.
func (a Achievement) Type() AchievementType {
	return AchievementType(a.Flags & achievementTypeMask)
}

// ShowUnachieved reports whether the description is visible before unlock.
func (a Achievement) ShowUnachieved() bool {
	return a.Flags&achievementShowUnachieved != 0
}

// Secret is the inverse of ShowUnachieved.
func (a Achievement) Secret() bool {
	return !a.ShowUnachieved()
}

type achievementsHeader struct {
	Magic   uint32
	Version uint32
	Count   uint32
}

func decodeAchievementsHeader(b []byte) (achievementsHeader, error) {
	if len(b) < achievementsHeaderSize {
		return achievementsHeader{}, fmt.Errorf("%w: achievements header needs %d bytes, have %d",
			ErrTruncated, achievementsHeaderSize, len(b))
	}
	h := achievementsHeader{
		Magic:   binary.BigEndian.Uint32(b[0:4]),
		Version: binary.BigEndian.Uint32(b[4:8]),
		Count:   binary.BigEndian.Uint32(b[8:12]),
	}
	if h.Magic != MagicXACH {
		return h, fmt.Errorf("%w: achievements magic %#08x", ErrBadMagic, h.Magic)
	}
	if h.Version != AchievementsVersion {
		return h, fmt.Errorf("%w: achievements version %d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}

func decodeAchievement(b []byte) Achievement {
	return Achievement{
		ID:            binary.BigEndian.Uint32(b[0:4]),
		ImageID:       binary.BigEndian.Uint32(b[4:8]),
		Gamerscore:    binary.BigEndian.Uint32(b[8:12]),
		Flags:         binary.BigEndian.Uint32(b[12:16]),
		LabelID:       binary.BigEndian.Uint16(b[16:18]),
		DescriptionID: binary.BigEndian.Uint16(b[18:20]),
		UnachievedID:  binary.BigEndian.Uint16(b[20:22]),
	}
}

// AchievementCount returns the declared record count of an achievements
// block, or zero if the block is absent or fails validation.
func AchievementCount(ach Block) uint32 {
	if !ach.Found() {
		return 0
	}
	h, err := decodeAchievementsHeader(ach.Bytes())
	if err != nil {
		return 0
	}
	return h.Count
}

// ExtractAchievements decodes an achievements block and resolves each
// record's text against the string table block strs.
//
// The returned count is the header's declared count. Only records stored
// within the block are returned, so the slice may be shorter than count for
// a truncated block. An unusable string table leaves text fields empty.
func ExtractAchievements(ach, strs Block) ([]Achievement, uint32) {
	if !ach.Found() {
		return nil, 0
	}
	data := ach.Bytes()
	h, err := decodeAchievementsHeader(data)
	if err != nil {
		return nil, 0
	}

	// table is nil when strs is unusable, and Lookup on nil yields "".
	table, _ := decodeStringTable(strs)

	stored := uint64(len(data)-achievementsHeaderSize) / achievementRecordSize
	n := min(uint64(h.Count), stored)
	out := make([]Achievement, n)
	for i := range out {
		off := achievementsHeaderSize + i*achievementRecordSize
		a := decodeAchievement(data[off : off+achievementRecordSize])
		a.Label, _ = table.Lookup(a.LabelID)
		a.Description, _ = table.Lookup(a.DescriptionID)
		a.UnachievedDescription, _ = table.Lookup(a.UnachievedID)
		out[i] = a
	}
	return out, h.Count
}
