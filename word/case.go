package word

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A [cases.Caser] is stateful, so each call builds its own.

func lower(s string) string { return cases.Lower(language.Und).String(s) }

func upper(s string) string { return cases.Upper(language.Und).String(s) }

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}

	return upper(string(r)) + s[n:]
}

func mapJoin(words []string, sep string, fn func(int, string) string) string {
	for i, w := range words {
		words[i] = fn(i, w)
	}

	return strings.Join(words, sep)
}

// Upper converts s to SCREAMING_SNAKE_CASE.
func Upper(s string) string { return upper(strings.Join(Split(s), "_")) }

// Lower lower-cases all of s without splitting it into words.
func Lower(s string) string { return lower(s) }

// Label converts s to lower-case words separated by spaces.
func Label(s string) string { return lower(strings.Join(Split(s), " ")) }

// CapitalizedLabel is [Label] with the first rune upper-cased.
func CapitalizedLabel(s string) string { return Capitalize(Label(s)) }

// Camel converts s to camelCase.
func Camel(s string) string {
	return mapJoin(Split(s), "", func(i int, w string) string {
		if i == 0 {
			return lower(w)
		}

		return Capitalize(lower(w))
	})
}

// Pascal converts s to PascalCase.
func Pascal(s string) string {
	return mapJoin(Split(s), "", func(_ int, w string) string { return Capitalize(lower(w)) })
}

// Snake converts s to snake_case.
func Snake(s string) string { return lower(strings.Join(Split(s), "_")) }

// Kebab converts s to kebab-case.
func Kebab(s string) string { return lower(strings.Join(Split(s), "-")) }

// Dot converts s to dot.case.
func Dot(s string) string { return lower(strings.Join(Split(s), ".")) }

// Title converts s to Title Case.
func Title(s string) string {
	return mapJoin(Split(s), " ", func(_ int, w string) string { return Capitalize(lower(w)) })
}
