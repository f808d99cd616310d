package core

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first cased letter after any non-cased
// character and lower-cases every other cased letter. Apostrophes and
// digits break words, so "o'neil" becomes "O'Neil".
//
// Letters use their full case mappings, so "ß" titles to "Ss". Cased
// means the Unicode Cased property, which includes Other_Lowercase and
// Other_Uppercase characters such as "ª" and "ⓐ".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var title, lower cases.Caser
	if !isASCII(s) {
		title, lower = cases.Title(language.Und), cases.Lower(language.Und)
	}

	prevCased := false
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf && prevCased:
			b.WriteRune(unicode.ToLower(r))
		case r < utf8.RuneSelf:
			b.WriteRune(unicode.ToUpper(r))
		case prevCased:
			b.WriteString(lower.String(string(r)))
		default:
			b.WriteString(title.String(string(r)))
		}
		prevCased = isCased(r)
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r) ||
		unicode.Is(unicode.Other_Lowercase, r) || unicode.Is(unicode.Other_Uppercase, r)
}

// RemoveChars deletes every occurrence of the runes in chars.
func RemoveChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}

// TrimOneSpace removes at most one leading and one trailing space.
func TrimOneSpace(s string) string {
	s = strings.TrimPrefix(s, " ")
	return strings.TrimSuffix(s, " ")
}
