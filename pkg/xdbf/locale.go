package xdbf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Locale selects a string table. Values are fixed by the container format.
type Locale uint32

const (
	LocaleUnknown Locale = iota
	LocaleEnglish
	LocaleJapanese
	LocaleGerman
	LocaleFrench
	LocaleSpanish
	LocaleItalian
	LocaleKorean
	LocaleTraditionalChinese
	LocalePortuguese
	LocaleSimplifiedChinese
	LocalePolish
	LocaleRussian
)

// DefaultLocale is used when a container does not declare one.
const DefaultLocale = LocaleEnglish

var localeInfo = []struct {
	locale Locale
	name   string
	tag    language.Tag
}{
	{LocaleEnglish, "english", language.English},
	{LocaleJapanese, "japanese", language.Japanese},
	{LocaleGerman, "german", language.German},
	{LocaleFrench, "french", language.French},
	{LocaleSpanish, "spanish", language.Spanish},
	{LocaleItalian, "italian", language.Italian},
	{LocaleKorean, "korean", language.Korean},
	{LocaleTraditionalChinese, "traditional-chinese", language.TraditionalChinese},
	{LocalePortuguese, "portuguese", language.Portuguese},
	{LocaleSimplifiedChinese, "simplified-chinese", language.SimplifiedChinese},
	{LocalePolish, "polish", language.Polish},
	{LocaleRussian, "russian", language.Russian},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(localeInfo))
	for i, li := range localeInfo {
		tags[i] = li.tag
	}
	return language.NewMatcher(tags)
}()

// Locales lists every known locale in enumeration order.
func Locales() []Locale {
	out := make([]Locale, len(localeInfo))
	for i, li := range localeInfo {
		out[i] = li.locale
	}
	return out
}

func (l Locale) String() string {
	for _, li := range localeInfo {
		if li.locale == l {
			return li.name
		}
	}
	return "locale(" + strconv.FormatUint(uint64(l), 10) + ")"
}

// Known reports whether l is one of the enumerated locales.
func (l Locale) Known() bool {
	return l >= LocaleEnglish && l <= LocaleRussian
}

// Tag returns the BCP 47 tag for l, or language.Und for unknown values.
func (l Locale) Tag() language.Tag {
	for _, li := range localeInfo {
		if li.locale == l {
			return li.tag
		}
	}
	return language.Und
}

// ParseLocale accepts a numeric value, a locale name such as "japanese", or
// a BCP 47 tag such as "ja" or "zh-Hant".
func ParseLocale(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LocaleUnknown, errors.New("empty locale")
	}
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		l := Locale(n)
		if !l.Known() {
			return LocaleUnknown, fmt.Errorf("unknown locale value %d", n)
		}
		return l, nil
	}
	lower := strings.ToLower(s)
	for _, li := range localeInfo {
		if li.name == lower {
			return li.locale, nil
		}
	}
	tag, err := language.Parse(s)
	if err != nil {
		return LocaleUnknown, fmt.Errorf("parse locale %q: %w", s, err)
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return LocaleUnknown, fmt.Errorf("no locale matches %q", s)
	}
	return localeInfo[idx].locale, nil
}
