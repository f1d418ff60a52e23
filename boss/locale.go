package boss

import "golang.org/x/text/language"

// Locale identifies a supported message catalog language.
type Locale string

const (
	LocaleEN   Locale = "en"
	LocaleZhCN Locale = "zh-CN"
	LocaleZhTW Locale = "zh-TW"
	LocaleZhHK Locale = "zh-HK"
)

// DefaultLocale is used when a requested locale cannot be matched.
const DefaultLocale = LocaleEN

// ValidLocales returns all supported locale values.
func ValidLocales() []Locale {
	return []Locale{LocaleEN, LocaleZhCN, LocaleZhTW, LocaleZhHK}
}

// IsValid returns true if the locale is a known supported value.
func (l Locale) IsValid() bool {
	for _, valid := range ValidLocales() {
		if l == valid {
			return true
		}
	}
	return false
}

var localeMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.SimplifiedChinese,
	language.MustParse("zh-TW"),
	language.MustParse("zh-HK"),
})

var localeByMatchIndex = []Locale{LocaleEN, LocaleZhCN, LocaleZhTW, LocaleZhHK}

// MatchLocale resolves a BCP 47 tag or a weighted Accept-Language list
// to the nearest supported locale. Unparseable or unmatched input falls
// back to DefaultLocale.
func MatchLocale(value string) Locale {
	if value == "" {
		return DefaultLocale
	}
	if locale := Locale(value); locale.IsValid() {
		return locale
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return localeByMatchIndex[index]
}
