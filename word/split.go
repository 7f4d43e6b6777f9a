package word

import (
	"strings"
	"unicode"
)

// categories lists the two-letter Unicode general categories. A rune that is
// in none of them is unassigned.
var categories = [...]*unicode.RangeTable{
	unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo,
	unicode.Mn, unicode.Mc, unicode.Me,
	unicode.Nd, unicode.Nl, unicode.No,
	unicode.Pc, unicode.Pd, unicode.Ps, unicode.Pe, unicode.Pi, unicode.Pf, unicode.Po,
	unicode.Sm, unicode.Sc, unicode.Sk, unicode.So,
	unicode.Zs, unicode.Zl, unicode.Zp,
	unicode.Cc, unicode.Cf, unicode.Co, unicode.Cs,
}

const (
	categoryUpper = 0 // Lu
	categoryLower = 1 // Ll
	unassigned    = len(categories)
)

func category(r rune) int {
	// Fast path for the categories that drive splitting.
	switch {
	case r < 0x80 && 'A' <= r && r <= 'Z':
		return categoryUpper
	case r < 0x80 && 'a' <= r && r <= 'z':
		return categoryLower
	}

	for i, table := range categories {
		if unicode.Is(table, r) {
			return i
		}
	}

	return unassigned
}

// splitCamel splits s wherever a lowercase letter follows an uppercase
// letter, starting the new fragment at that uppercase letter, so "XMLParser"
// yields "XML" and "Parser".
func splitCamel(s string) []string {
	rs := []rune(s)
	if len(rs) == 0 {
		return nil
	}

	var (
		parts   []string
		start   int
		current = category(rs[0])
	)

	for pos := 1; pos < len(rs); pos++ {
		c := category(rs[pos])
		if c == current {
			continue
		}

		if c == categoryLower && current == categoryUpper && pos-1 != start {
			parts = append(parts, string(rs[start:pos-1]))
			start = pos - 1
		}

		current = c
	}

	return append(parts, string(rs[start:]))
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '.' || r == '_'
}

// Split returns the words of s. Words are delimited by camel-case boundaries
// and by the separators space, '-', '.' and '_'. Blank words are discarded
// and the rest are trimmed.
func Split(s string) []string {
	var words []string

	for _, part := range splitCamel(strings.TrimSpace(s)) {
		for _, w := range strings.FieldsFunc(part, isSeparator) {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, w)
			}
		}
	}

	return words
}
